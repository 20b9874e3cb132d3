// Package services holds the hierarchical service catalog used by the
// service-selection sub-workflow, and the fixed rental equipment checklist.
package services

// Node is one entry in the service tree. A node with children is a category;
// a node without children is a selectable leaf. The "Others" free-text leaf
// is offered by the controller at every level and is not part of the tree.
type Node struct {
	Name     string
	Children []Node
}

// IsLeaf reports whether the node can be selected and priced directly.
func (n Node) IsLeaf() bool { return len(n.Children) == 0 }

// MainCatalog is the first selection pass offered for sale documents.
var MainCatalog = []Node{
	{Name: "Registration & Ownership", Children: []Node{
		{Name: "Puspakom Inspection"},
		{Name: "Ownership Transfer"},
		{Name: "Own Puspakom"},
		{Name: "Own Tukar Nama"},
	}},
	{Name: "Road Tax", Children: []Node{
		{Name: "Road tax 6month"},
		{Name: "Road tax 1year"},
		{Name: "OWN Roadtax"},
	}},
	{Name: "Insurance", Children: []Node{
		{Name: "Insurance 1st party"},
		{Name: "Insurance 3rd party"},
		{Name: "Insurance 3rd party fire and theft"},
		{Name: "OWN Insurance"},
	}},
	{Name: "Body Work & Modifications", Children: []Node{
		{Name: "Body Repairs"},
		{Name: "Spray Painting", Children: []Node{
			{Name: "Spray Paint Cabin (Kepala)"},
			{Name: "Spray Paint Body (Box)"},
			{Name: "Spray Paint Full Body (Cabin & Box)"},
		}},
		{Name: "Chassis Extension", Children: []Node{
			{Name: "Chasis Extend (10ft to 13ft)"},
			{Name: "Chasis Extend (14ft to 17ft)"},
			{Name: "Chasis Extend (14ft to 20ft)"},
			{Name: "Chasis Extend (17ft to 20ft)"},
		}},
		{Name: "Change of Body", Children: []Node{
			{Name: "Body Tipper"},
			{Name: "Body Box"},
			{Name: "Body Foodtruck"},
			{Name: "Body Ro-ro"},
			{Name: "Body Kargo"},
			{Name: "Body Refrigerated Box"},
			{Name: "Body Container"},
			{Name: "Body Curtain Sider"},
			{Name: "Body Water Tank"},
		}},
	}},
}

// AdditionalCatalog is the second selection pass.
var AdditionalCatalog = []Node{
	{Name: "Aircond"},
	{Name: "Wiring"},
	{Name: "Tyre Botak Tukar"},
	{Name: "Service"},
}

// At walks a path of category names from the given roots and returns the
// nodes at that level. An invalid path yields the roots, so a stale menu
// path can never strand the user.
func At(roots []Node, path []string) []Node {
	level := roots
	for _, name := range path {
		next := []Node(nil)
		for _, n := range level {
			if n.Name == name && !n.IsLeaf() {
				next = n.Children
				break
			}
		}
		if next == nil {
			return roots
		}
		level = next
	}
	return level
}

// EquipmentCatalog is the fixed multi-select checklist for rentals.
var EquipmentCatalog = []string{
	"Spare Tyre",
	"Jack & Wheel Spanner",
	"Fire Extinguisher",
	"First Aid Kit",
	"Cargo Straps",
	"GPS Tracker",
	"Toolkit",
}

// DefaultRentalEquipment is pre-selected when the equipment sub-workflow
// starts for a rental draft.
var DefaultRentalEquipment = []string{
	"Spare Tyre",
	"Jack & Wheel Spanner",
	"Fire Extinguisher",
	"First Aid Kit",
}
