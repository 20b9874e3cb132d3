package usecase

import (
	"fmt"

	"quotedraft/internal/domain/entities"
	"quotedraft/internal/domain/lineitems"
)

// Rental fee sub-workflow. The derived ServiceLineItems/ExcludedLineItems
// lists are never edited directly: only the per-fee scalars are, and
// RebuildFeeItems recomputes both lists from them.

const (
	inspectionFixedPrice = 350.0
	maintenanceRow       = "Maintenance (Every 3month/5000km, which ever comes first)"
)

var feeLabels = map[entities.FeeKind]string{
	entities.FeeRoadTax:    "Road Tax",
	entities.FeeInsurance:  "Insurance",
	entities.FeeInspection: "PUSPAKOM Fee",
	entities.FeeSticker:    "Sticker",
	entities.FeeAgreement:  "Agreement Fee",
}

var feeGLCodes = map[entities.FeeKind]string{
	entities.FeeRoadTax:    "930-000",
	entities.FeeInsurance:  "931-000",
	entities.FeeInspection: "930-000",
	entities.FeeSticker:    "501-000",
	entities.FeeAgreement:  "501-000",
}

// RebuildFeeItems recomputes the derived service and excluded line items
// from the draft's fee scalars and rental period type. It is idempotent:
// the same scalar state always produces the same lists, regardless of how
// many times it runs.
func RebuildFeeItems(d *entities.Draft) {
	monthly := d.RentalPeriodType == entities.PeriodMonthly

	serviceItems := []entities.LineItem{}
	excludedItems := []entities.LineItem{}

	if monthly {
		excludedItems = append(excludedItems, entities.LineItem{
			Qty:         1,
			Description: maintenanceRow,
			UnitPrice:   0,
			GLCode:      lineitems.DefaultGLCode,
		})
	}

	for _, kind := range entities.FeeOrder {
		st := d.FeeState(kind)
		if !st.Resolved() {
			continue
		}

		amount := 0.0
		if st.Amount != nil {
			amount = *st.Amount
		}

		item := entities.LineItem{
			Qty:         1,
			Description: feeDescription(kind, amount, monthly, st.Excluded),
			UnitPrice:   amount,
			GLCode:      feeGLCodes[kind],
		}

		if st.Excluded {
			if monthly {
				excludedItems = append(excludedItems, item)
			}
			continue
		}
		serviceItems = append(serviceItems, item)
	}

	d.ServiceLineItems = serviceItems
	d.ExcludedLineItems = excludedItems
}

// feeDescription renders the fee row label. Monthly rentals carry the
// recurring-cycle markers; sticker and agreement are one-off either way.
// An excluded fee never reads as included, even with a zero amount.
func feeDescription(kind entities.FeeKind, amount float64, monthly, excluded bool) string {
	label := feeLabels[kind]
	if monthly {
		if kind == entities.FeeSticker || kind == entities.FeeAgreement {
			return label
		}
		if amount == 0 && !excluded {
			return label + " (Included every 6month)"
		}
		return label + " (Every 6 Month)"
	}
	if amount == 0 {
		return label + " (Included)"
	}
	return label
}

// startFeeFlow queues every unresolved fee and enters the fee sub-workflow.
func (u *ConversationUseCase) startFeeFlow(d *entities.Draft) entities.Prompt {
	queue := make([]entities.FeeKind, 0, len(entities.FeeOrder))
	for _, kind := range entities.FeeOrder {
		if !d.FeeState(kind).Resolved() {
			queue = append(queue, kind)
		}
	}
	d.FeeQueue = queue
	if len(queue) == 0 {
		return u.finishFeeFlow(d)
	}
	u.transition(d, entities.StateAwaitingFeeChoice)
	return feePrompt(d)
}

// finishFeeFlow rebuilds the derived lists, marks the fee sub-workflow
// exhausted and moves on to equipment selection.
func (u *ConversationUseCase) finishFeeFlow(d *entities.Draft) entities.Prompt {
	RebuildFeeItems(d)
	d.RentalFeesCollected = true
	RecalculatePhases(d)
	return u.startEquipmentFlow(d)
}

// advanceFeeQueue drops the head of the queue and asks about the next fee,
// or finishes the sub-workflow when the queue is empty.
func (u *ConversationUseCase) advanceFeeQueue(d *entities.Draft) entities.Prompt {
	if len(d.FeeQueue) > 0 {
		d.FeeQueue = d.FeeQueue[1:]
	}
	if len(d.FeeQueue) == 0 {
		return u.finishFeeFlow(d)
	}
	d.State = entities.StateAwaitingFeeChoice
	return feePrompt(d)
}

// currentFee is the fee being elicited, zero when the queue is empty.
func currentFee(d *entities.Draft) (entities.FeeKind, bool) {
	if len(d.FeeQueue) == 0 {
		return "", false
	}
	return d.FeeQueue[0], true
}

func feePrompt(d *entities.Draft) entities.Prompt {
	kind, found := currentFee(d)
	if !found {
		return entities.Prompt{Text: "All fees collected.", State: d.State}
	}

	label := feeLabels[kind]
	monthly := d.RentalPeriodType == entities.PeriodMonthly

	priceLabel, includedLabel, excludedLabel := "Enter Price", "Included in Package", "Excluded"
	if monthly {
		switch kind {
		case entities.FeeRoadTax, entities.FeeInsurance, entities.FeeInspection:
			priceLabel, includedLabel, excludedLabel = "Every 6 Month", "Included every 6month", "Not Included"
		}
	}
	if kind == entities.FeeSticker {
		excludedLabel = "Not Included"
	}

	p := entities.Prompt{
		Text:  fmt.Sprintf("What about %s?", label),
		State: d.State,
	}
	p = p.WithAction(priceLabel, entities.Action{Kind: entities.ActionFeePrice, Arg: string(kind)})
	p = p.WithAction(includedLabel, entities.Action{Kind: entities.ActionFeeIncluded, Arg: string(kind)})
	p = p.WithAction(excludedLabel, entities.Action{Kind: entities.ActionFeeExcluded, Arg: string(kind)})
	p = p.WithAction("Back", entities.Action{Kind: entities.ActionBack})
	return p
}
