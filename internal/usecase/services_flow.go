package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"quotedraft/internal/domain/entities"
	"quotedraft/internal/domain/lineitems"
	"quotedraft/internal/domain/services"
)

// Hierarchical service picker for sale documents. Two passes run back to
// back: the main catalog, then the additional catalog. Selecting a leaf
// prices it immediately; deselecting removes its priced entry.

// serviceRoots returns the catalog for the picker the draft is currently in.
func serviceRoots(d *entities.Draft) []services.Node {
	if d.State == entities.StateSelectingAdditionalServices {
		return services.AdditionalCatalog
	}
	return services.MainCatalog
}

func (u *ConversationUseCase) startMainServicesFlow(d *entities.Draft) entities.Prompt {
	d.ServiceMenuPath = nil
	u.transition(d, entities.StateSelectingMainServices)
	return servicePickerPrompt(d, pickerHeader(d))
}

func (u *ConversationUseCase) startAdditionalServicesFlow(d *entities.Draft) entities.Prompt {
	d.ServiceMenuPath = nil
	u.transition(d, entities.StateSelectingAdditionalServices)
	return servicePickerPrompt(d, pickerHeader(d))
}

func pickerHeader(d *entities.Draft) string {
	if d.State == entities.StateSelectingAdditionalServices {
		return "Any additional services?"
	}
	return "Select the services to include:"
}

func servicePickerPrompt(d *entities.Draft, header string) entities.Prompt {
	nodes := services.At(serviceRoots(d), d.ServiceMenuPath)

	text := header
	if len(d.ServiceMenuPath) > 0 {
		text = fmt.Sprintf("%s\n(%s)", header, strings.Join(d.ServiceMenuPath, " > "))
	}

	p := entities.Prompt{Text: text, State: d.State}
	for _, n := range nodes {
		if n.IsLeaf() {
			label := n.Name
			if slices.Contains(d.SelectedServices, n.Name) {
				label = "✅ " + n.Name
			}
			p = p.WithAction(label, entities.Action{Kind: entities.ActionServiceToggle, Arg: n.Name})
			continue
		}
		p = p.WithAction(n.Name+" »", entities.Action{Kind: entities.ActionServiceCat, Arg: n.Name})
	}
	p = p.WithAction("Others (type it in)", entities.Action{Kind: entities.ActionServiceOther})
	if len(d.ServiceMenuPath) > 0 {
		p = p.WithAction("Back", entities.Action{Kind: entities.ActionServiceBack})
	}
	p = p.WithAction("Done", entities.Action{Kind: entities.ActionServiceDone})
	return p
}

// pickerReturnPrompt re-renders whichever picker the draft is mid-way
// through, used after a pricing detour.
func (u *ConversationUseCase) pickerReturnPrompt(d *entities.Draft) entities.Prompt {
	if !d.MainServicesDone {
		d.State = entities.StateSelectingMainServices
	} else {
		d.State = entities.StateSelectingAdditionalServices
	}
	return servicePickerPrompt(d, pickerHeader(d))
}

func (u *ConversationUseCase) handleServiceCat(d *entities.Draft, name string) entities.Prompt {
	nodes := services.At(serviceRoots(d), d.ServiceMenuPath)
	for _, n := range nodes {
		if n.Name == name && !n.IsLeaf() {
			d.ServiceMenuPath = append(d.ServiceMenuPath, name)
			break
		}
	}
	return servicePickerPrompt(d, pickerHeader(d))
}

func (u *ConversationUseCase) handleServiceBack(d *entities.Draft) entities.Prompt {
	if len(d.ServiceMenuPath) > 0 {
		d.ServiceMenuPath = d.ServiceMenuPath[:len(d.ServiceMenuPath)-1]
	}
	return u.pickerReturnPrompt(d)
}

// handleServiceToggle selects or deselects a leaf. Selecting queues an
// immediate price prompt; deselecting removes the priced entry as well.
func (u *ConversationUseCase) handleServiceToggle(d *entities.Draft, name string) entities.Prompt {
	name = strings.TrimSpace(name)
	if name == "" {
		return u.pickerReturnPrompt(d)
	}

	if idx := slices.Index(d.SelectedServices, name); idx >= 0 {
		d.SelectedServices = slices.Delete(d.SelectedServices, idx, idx+1)
		d.ServiceLineItems = slices.DeleteFunc(d.ServiceLineItems, func(it entities.LineItem) bool {
			return it.Description == name
		})
		RecalculatePhases(d)
		return u.pickerReturnPrompt(d)
	}

	d.SelectedServices = append(d.SelectedServices, name)
	return u.promptServicePrice(d, name)
}

func (u *ConversationUseCase) handleServiceOther(d *entities.Draft) entities.Prompt {
	u.transition(d, entities.StateAwaitingServiceName)
	return entities.Prompt{Text: "Type the service name:", State: d.State}
}

func (u *ConversationUseCase) handleServiceDone(ctx context.Context, d *entities.Draft) entities.Prompt {
	d.ServiceMenuPath = nil
	if d.State == entities.StateSelectingAdditionalServices {
		d.AdditionalServicesDone = true
	} else {
		d.MainServicesDone = true
	}
	return u.resolve(ctx, d)
}

func (u *ConversationUseCase) promptServicePrice(d *entities.Draft, name string) entities.Prompt {
	d.ServicesToPrice = append(d.ServicesToPrice, name)
	u.transition(d, entities.StateAwaitingServicePrice)
	return entities.Prompt{
		Text:  fmt.Sprintf("Enter the price for %s:", name),
		State: d.State,
	}
}

// recordServicePrice prices the head of the pending queue and returns the
// next prompt: another price, or the picker.
func (u *ConversationUseCase) recordServicePrice(d *entities.Draft, price float64) entities.Prompt {
	if len(d.ServicesToPrice) == 0 {
		return u.pickerReturnPrompt(d)
	}
	name := d.ServicesToPrice[0]
	d.ServicesToPrice = d.ServicesToPrice[1:]
	d.ServiceLineItems = append(d.ServiceLineItems, entities.LineItem{
		Qty:         1,
		Description: name,
		UnitPrice:   price,
		GLCode:      lineitems.GLCodeFor(name),
	})
	RecalculatePhases(d)

	if len(d.ServicesToPrice) > 0 {
		return entities.Prompt{
			Text:  fmt.Sprintf("Enter the price for %s:", d.ServicesToPrice[0]),
			State: d.State,
		}
	}
	return u.pickerReturnPrompt(d)
}
