package usecase

import (
	"slices"
	"strings"

	"quotedraft/internal/domain/entities"
	"quotedraft/internal/domain/services"
)

// Rental equipment checklist. Multi-select with the standard set
// pre-selected; a free-text "other" entry is always available.

func (u *ConversationUseCase) startEquipmentFlow(d *entities.Draft) entities.Prompt {
	if len(d.SelectedEquipment) == 0 && !d.EquipmentCollected {
		d.SelectedEquipment = slices.Clone(services.DefaultRentalEquipment)
	}
	u.transition(d, entities.StateSelectingEquipment)
	return equipmentPrompt(d)
}

func equipmentPrompt(d *entities.Draft) entities.Prompt {
	p := entities.Prompt{
		Text:  "Select the equipment included with the rental:",
		State: d.State,
	}
	for _, name := range services.EquipmentCatalog {
		label := name
		if slices.Contains(d.SelectedEquipment, name) {
			label = "✅ " + name
		}
		p = p.WithAction(label, entities.Action{Kind: entities.ActionEquipToggle, Arg: name})
	}
	// Custom entries show up in the checklist too so they can be removed.
	for _, name := range d.SelectedEquipment {
		if !slices.Contains(services.EquipmentCatalog, name) {
			p = p.WithAction("✅ "+name, entities.Action{Kind: entities.ActionEquipToggle, Arg: name})
		}
	}
	p = p.WithAction("Other...", entities.Action{Kind: entities.ActionEquipOther})
	p = p.WithAction("Done", entities.Action{Kind: entities.ActionEquipDone})
	return p
}

func (u *ConversationUseCase) handleEquipToggle(d *entities.Draft, name string) entities.Prompt {
	name = strings.TrimSpace(name)
	if idx := slices.Index(d.SelectedEquipment, name); idx >= 0 {
		d.SelectedEquipment = slices.Delete(d.SelectedEquipment, idx, idx+1)
	} else if name != "" {
		d.SelectedEquipment = append(d.SelectedEquipment, name)
	}
	return equipmentPrompt(d)
}
