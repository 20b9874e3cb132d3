package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"quotedraft/internal/domain/entities"
	"quotedraft/internal/domain/validation"
)

// Edit sub-workflow. Each successful edit returns to the edit-selection
// menu, not to the resolver; Done hands control back to the resolver, which
// re-walks the draft and re-enters any sub-workflow the edit invalidated.

// Pseudo-fields used only by the edit flow; they share the Field namespace
// so EditingField can hold them.
const (
	editLorryPrice     entities.Field = "lorry_price"
	editRentalStart    entities.Field = "rental_start_date"
	editRentalEnd      entities.Field = "rental_end_date"
	editFeePrefix                     = "fee_"
	editArgServices                   = "services"
	editArgEquipment                  = "equipment"
	editArgPhases                     = "payment_phases"
	editArgLineItems                  = "line_items_retype"
	editArgIssuer                     = "issuing_company"
	editArgRemoveItems                = "remove_items"
)

func (u *ConversationUseCase) editMenuPrompt(d *entities.Draft) entities.Prompt {
	u.transition(d, entities.StateSelectingFieldToEdit)

	p := entities.Prompt{Text: "What would you like to change?", State: d.State}
	add := func(label, arg string) {
		p = p.WithAction(label, entities.Action{Kind: entities.ActionEditField, Arg: arg})
	}

	add("Customer Name", string(entities.FieldCustomerName))
	add("Customer Address", string(entities.FieldCustomerAddress))
	add("Customer Contact", string(entities.FieldCustomerContact))
	add("Salesperson", string(entities.FieldSalesperson))
	add("Truck Number", string(entities.FieldTruckNumber))
	if d.DocType != entities.DocTypeRental {
		add("Body Type", string(entities.FieldBodyType))
	}
	add("Issuing Company", editArgIssuer)

	switch d.DocType {
	case entities.DocTypeSale:
		if len(d.LineItems) > 0 {
			add("Lorry Price", string(editLorryPrice))
		}
		add("Services", editArgServices)
		add("Payment Phases", editArgPhases)
	case entities.DocTypeRental:
		add("Rental Amount", string(entities.FieldRentalAmount))
		add("Security Deposit", string(entities.FieldSecurityDeposit))
		if d.RentalPeriodType == entities.PeriodMonthly {
			add("Contract Period", string(entities.FieldContractPeriod))
		} else {
			add("Start Date", string(editRentalStart))
			add("End Date", string(editRentalEnd))
		}
		for _, kind := range entities.FeeOrder {
			if d.FeeState(kind).Resolved() {
				add(feeLabels[kind], editFeePrefix+string(kind))
			}
		}
		add("Equipment", editArgEquipment)
	case entities.DocTypeRefurbish:
		add("Line Items (retype)", editArgLineItems)
	}

	add("Remove Items", editArgRemoveItems)
	p = p.WithAction("Done", entities.Action{Kind: entities.ActionEditDone})
	return p
}

func (u *ConversationUseCase) onEdit(ctx context.Context, d *entities.Draft, arg string) (entities.Prompt, error) {
	switch arg {
	case editArgIssuer:
		d.IssuingCompany = ""
		return u.resolve(ctx, d), nil

	case editArgServices:
		d.MainServicesDone = false
		d.AdditionalServicesDone = false
		d.ServiceMenuPath = nil
		return u.startMainServicesFlow(d), nil

	case editArgEquipment:
		d.EquipmentCollected = false
		return u.startEquipmentFlow(d), nil

	case editArgPhases:
		d.PaymentPhases = nil
		d.PaymentPhaseCounter = 1
		d.PaymentPhasesComplete = false
		return u.phasePrompt(d), nil

	case editArgLineItems:
		d.LineItems = nil
		d.ItemsToClarify = nil
		RecalculatePhases(d)
		u.transition(d, entities.StateAwaitingField)
		d.WaitingForField = entities.FieldLineItems
		return entities.Prompt{
			Text:  "Send the full item list again, one per line, each ending with its price.",
			State: d.State,
		}, nil

	case editArgRemoveItems:
		return u.removeMenuPrompt(d), nil
	}

	f := entities.Field(arg)
	u.transition(d, entities.StateEditingField)
	d.EditingField = f
	return entities.Prompt{Text: editQuestion(f), State: d.State}, nil
}

func editQuestion(f entities.Field) string {
	if q, found := fieldQuestions[f]; found {
		return q
	}
	switch f {
	case entities.FieldRentalAmount:
		return "Enter the new rental amount:"
	case entities.FieldSecurityDeposit:
		return "Enter the new security deposit:"
	case entities.FieldContractPeriod:
		return "Enter the new contract period:"
	case editLorryPrice:
		return "Enter the new lorry price:"
	case editRentalStart:
		return "Enter the new start date:"
	case editRentalEnd:
		return "Enter the new end date:"
	}
	if strings.HasPrefix(string(f), editFeePrefix) {
		kind := entities.FeeKind(strings.TrimPrefix(string(f), editFeePrefix))
		return fmt.Sprintf("Enter the new price for %s:", feeLabels[kind])
	}
	return "Enter the new value:"
}

// handleEditInput applies one edited value and returns to the edit menu.
func (u *ConversationUseCase) handleEditInput(ctx context.Context, d *entities.Draft, text string) entities.Prompt {
	f := d.EditingField
	if f == "" {
		return u.editMenuPrompt(d)
	}

	switch {
	case f == editLorryPrice:
		price, res := validation.Price(text)
		if !res.OK {
			return entities.Prompt{Text: res.Err, State: d.State}
		}
		if len(d.LineItems) > 0 {
			d.LineItems[0].UnitPrice = price
		}
		RecalculatePhases(d)

	case f == editRentalStart, f == editRentalEnd:
		t, res := validation.Date(text)
		if !res.OK {
			return entities.Prompt{Text: res.Err, State: d.State}
		}
		if f == editRentalStart {
			d.RentalStartDate = t.Format("2006-01-02")
		} else {
			d.RentalEndDate = t.Format("2006-01-02")
		}
		if msg := recomputeRentalDays(d); msg != "" {
			return entities.Prompt{Text: msg, State: d.State}
		}

	case strings.HasPrefix(string(f), editFeePrefix):
		price, res := validation.Price(text)
		if !res.OK {
			return entities.Prompt{Text: res.Err, State: d.State}
		}
		kind := entities.FeeKind(strings.TrimPrefix(string(f), editFeePrefix))
		d.SetFee(kind, entities.FeeState{Amount: &price})
		RebuildFeeItems(d)
		RecalculatePhases(d)

	default:
		if msg := setScalarField(d, f, text); msg != "" {
			return entities.Prompt{Text: msg, State: d.State}
		}
	}

	d.EditingField = ""
	return u.editMenuPrompt(d)
}

func recomputeRentalDays(d *entities.Draft) string {
	if d.RentalStartDate == "" || d.RentalEndDate == "" {
		return ""
	}
	start, err1 := parseISODate(d.RentalStartDate)
	end, err2 := parseISODate(d.RentalEndDate)
	if err1 != nil || err2 != nil {
		return ""
	}
	if end.Before(start) {
		return "The end date cannot be before the start date."
	}
	// Both endpoints count: a same-day rental is 1 day.
	d.RentalDays = int(end.Sub(start).Hours()/24) + 1
	return ""
}

func parseISODate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func (u *ConversationUseCase) onEditDone(ctx context.Context, d *entities.Draft, _ string) (entities.Prompt, error) {
	d.EditingField = ""
	return u.resolve(ctx, d), nil
}

// ---- removal ----

func (u *ConversationUseCase) removeMenuPrompt(d *entities.Draft) entities.Prompt {
	u.transition(d, entities.StateSelectingItemRemoval)

	p := entities.Prompt{Text: "Select an item to remove:", State: d.State}
	for i, it := range d.LineItems {
		p = p.WithAction(
			fmt.Sprintf("%s (RM %.2f)", it.Description, it.Amount()),
			entities.Action{Kind: entities.ActionRemoveItem, Arg: fmt.Sprintf("main:%d", i)})
	}
	for i, it := range d.ServiceLineItems {
		p = p.WithAction(
			fmt.Sprintf("%s (RM %.2f)", it.Description, it.Amount()),
			entities.Action{Kind: entities.ActionRemoveItem, Arg: fmt.Sprintf("service:%d", i)})
	}
	for i, ph := range d.PaymentPhases {
		p = p.WithAction(
			fmt.Sprintf("%s (RM %.2f)", ph.Name, ph.Amount),
			entities.Action{Kind: entities.ActionRemoveItem, Arg: fmt.Sprintf("phase:%d", i)})
	}
	p = p.WithAction("Done", entities.Action{Kind: entities.ActionRemoveDone})
	return p
}

func (u *ConversationUseCase) onRemoveItem(_ context.Context, d *entities.Draft, arg string) (entities.Prompt, error) {
	bucket, idxStr, _ := strings.Cut(arg, ":")
	idx, err := strconv.Atoi(idxStr)
	if err != nil {
		return entities.Prompt{Text: "Item not found.", State: d.State}, nil
	}

	switch bucket {
	case "main":
		if idx < 0 || idx >= len(d.LineItems) {
			return entities.Prompt{Text: "Item not found.", State: d.State}, nil
		}
		d.LineItems = append(d.LineItems[:idx], d.LineItems[idx+1:]...)
		if d.DocType == entities.DocTypeSale && len(d.LineItems) == 0 {
			d.LorryItemCreated = false
		}

	case "service":
		if idx < 0 || idx >= len(d.ServiceLineItems) {
			return entities.Prompt{Text: "Item not found.", State: d.State}, nil
		}
		removed := d.ServiceLineItems[idx]
		if kind, isFee := feeKindForDescription(d, removed.Description); isFee {
			// A fee row is derived state: clear the scalar and rebuild so
			// the resolver re-offers the fee.
			d.ClearFee(kind)
			d.RentalFeesCollected = false
			RebuildFeeItems(d)
		} else {
			d.ServiceLineItems = append(d.ServiceLineItems[:idx], d.ServiceLineItems[idx+1:]...)
			for i, name := range d.SelectedServices {
				if name == removed.Description {
					d.SelectedServices = append(d.SelectedServices[:i], d.SelectedServices[i+1:]...)
					break
				}
			}
		}

	case "phase":
		if idx < 0 || idx >= len(d.PaymentPhases) {
			return entities.Prompt{Text: "Item not found.", State: d.State}, nil
		}
		d.PaymentPhases = append(d.PaymentPhases[:idx], d.PaymentPhases[idx+1:]...)

	default:
		return entities.Prompt{Text: "Item not found.", State: d.State}, nil
	}

	RecalculatePhases(d)
	return u.removeMenuPrompt(d), nil
}

// feeKindForDescription maps a derived fee row back to its fee kind by
// label prefix. Only meaningful for rental drafts.
func feeKindForDescription(d *entities.Draft, desc string) (entities.FeeKind, bool) {
	if d.DocType != entities.DocTypeRental {
		return "", false
	}
	for _, kind := range entities.FeeOrder {
		if strings.HasPrefix(desc, feeLabels[kind]) {
			return kind, true
		}
	}
	return "", false
}

func (u *ConversationUseCase) onRemoveDone(_ context.Context, d *entities.Draft, _ string) (entities.Prompt, error) {
	return u.editMenuPrompt(d), nil
}
