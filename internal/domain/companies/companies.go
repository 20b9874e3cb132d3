// Package companies is the catalog of legal entities that can issue a
// quotation, with the short codes used to derive document numbers.
package companies

// Company describes one issuing entity.
type Company struct {
	Name    string
	Address string
	BankRow string
	SSMNo   string
	Prefix  string
}

// DefaultPrefix is used in document numbers when the issuing company is not
// in the catalog.
const DefaultPrefix = "QT"

var catalog = []Company{
	{
		Name:    "UNIQUE ENTERPRISE",
		Address: "Lot 4906, Jalan SM6, Taman Sunway Batu Caves,\n68100, Batu Caves, Selangor\nTel: 0166616018 and 0166616019",
		BankRow: "Public Bank 3203946806",
		SSMNo:   "198803042277",
		Prefix:  "UE",
	},
	{
		Name:    "CARTRUCKVAN SDN. BHD.",
		Address: "Lot 4906, Jalan SM6, Taman Sunway Batu Caves,\n68100, Batu Caves, Selangor\nTel: 0166616018 and 0166616019",
		BankRow: "ALLIANCE BANK BERHAD : 140640010009752",
		SSMNo:   "199601008192",
		Prefix:  "CTV",
	},
}

// All returns the catalog in presentation order.
func All() []Company {
	out := make([]Company, len(catalog))
	copy(out, catalog)
	return out
}

// ByName looks a company up by its exact (upper-cased) name.
func ByName(name string) (Company, bool) {
	for _, c := range catalog {
		if c.Name == name {
			return c, true
		}
	}
	return Company{}, false
}

// PrefixFor returns the document-number prefix for an issuing company,
// falling back to DefaultPrefix for unknown names.
func PrefixFor(name string) string {
	if c, found := ByName(name); found {
		return c.Prefix
	}
	return DefaultPrefix
}
