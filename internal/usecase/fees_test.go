package usecase

import (
	"reflect"
	"testing"

	"quotedraft/internal/domain/entities"
)

func ptr(f float64) *float64 { return &f }

func rentalDraft(period entities.PeriodType) *entities.Draft {
	d := entities.NewDraft("conv-1")
	d.DocType = entities.DocTypeRental
	d.RentalPeriodType = period
	return d
}

func TestRebuildFeeItems(t *testing.T) {
	t.Run("monthly markers", func(t *testing.T) {
		d := rentalDraft(entities.PeriodMonthly)
		d.SetFee(entities.FeeRoadTax, entities.FeeState{Amount: ptr(0)})
		d.SetFee(entities.FeeInsurance, entities.FeeState{Amount: ptr(1800)})
		d.SetFee(entities.FeeAgreement, entities.FeeState{Amount: ptr(500)})

		RebuildFeeItems(d)

		descs := make([]string, 0, len(d.ServiceLineItems))
		for _, it := range d.ServiceLineItems {
			descs = append(descs, it.Description)
		}
		want := []string{
			"Road Tax (Included every 6month)",
			"Insurance (Every 6 Month)",
			"Agreement Fee",
		}
		if !reflect.DeepEqual(descs, want) {
			t.Fatalf("unexpected descriptions: %v", descs)
		}
	})

	t.Run("monthly always carries the maintenance exclusion", func(t *testing.T) {
		d := rentalDraft(entities.PeriodMonthly)
		RebuildFeeItems(d)
		if len(d.ExcludedLineItems) != 1 {
			t.Fatalf("expected 1 excluded item, got %d", len(d.ExcludedLineItems))
		}
		if d.ExcludedLineItems[0].Description != maintenanceRow {
			t.Fatalf("unexpected excluded row: %q", d.ExcludedLineItems[0].Description)
		}
	})

	t.Run("daily markers", func(t *testing.T) {
		d := rentalDraft(entities.PeriodDaily)
		d.SetFee(entities.FeeRoadTax, entities.FeeState{Amount: ptr(0)})
		d.SetFee(entities.FeeInsurance, entities.FeeState{Amount: ptr(350)})
		RebuildFeeItems(d)

		if d.ServiceLineItems[0].Description != "Road Tax (Included)" {
			t.Fatalf("unexpected: %q", d.ServiceLineItems[0].Description)
		}
		if d.ServiceLineItems[1].Description != "Insurance" {
			t.Fatalf("unexpected: %q", d.ServiceLineItems[1].Description)
		}
		if len(d.ExcludedLineItems) != 0 {
			t.Fatalf("daily rentals have no excluded bucket, got %v", d.ExcludedLineItems)
		}
	})

	t.Run("excluded fee lands in the excluded bucket for monthly only", func(t *testing.T) {
		monthly := rentalDraft(entities.PeriodMonthly)
		monthly.SetFee(entities.FeeSticker, entities.FeeState{Excluded: true})
		RebuildFeeItems(monthly)
		if len(monthly.ServiceLineItems) != 0 {
			t.Fatalf("excluded fee must not be billed: %v", monthly.ServiceLineItems)
		}
		found := false
		for _, it := range monthly.ExcludedLineItems {
			if it.Description == "Sticker" {
				found = true
			}
		}
		if !found {
			t.Fatal("expected sticker in the monthly excluded bucket")
		}

		daily := rentalDraft(entities.PeriodDaily)
		daily.SetFee(entities.FeeSticker, entities.FeeState{Excluded: true})
		RebuildFeeItems(daily)
		if len(daily.ExcludedLineItems) != 0 {
			t.Fatalf("daily excluded bucket should stay empty: %v", daily.ExcludedLineItems)
		}
	})

	t.Run("excluded monthly fee keeps the recurring marker", func(t *testing.T) {
		d := rentalDraft(entities.PeriodMonthly)
		d.SetFee(entities.FeeRoadTax, entities.FeeState{Excluded: true})
		RebuildFeeItems(d)

		var got string
		for _, it := range d.ExcludedLineItems {
			if it.GLCode == feeGLCodes[entities.FeeRoadTax] {
				got = it.Description
			}
		}
		if got != "Road Tax (Every 6 Month)" {
			t.Fatalf("excluded road tax must not read as included, got %q", got)
		}
	})

	t.Run("unresolved fees are skipped", func(t *testing.T) {
		d := rentalDraft(entities.PeriodDaily)
		d.SetFee(entities.FeeInsurance, entities.FeeState{Amount: ptr(900)})
		RebuildFeeItems(d)
		if len(d.ServiceLineItems) != 1 {
			t.Fatalf("expected only the resolved fee, got %v", d.ServiceLineItems)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		d := rentalDraft(entities.PeriodMonthly)
		d.SetFee(entities.FeeRoadTax, entities.FeeState{Amount: ptr(380)})
		d.SetFee(entities.FeeAgreement, entities.FeeState{Amount: ptr(500)})

		RebuildFeeItems(d)
		first := append([]entities.LineItem(nil), d.ServiceLineItems...)
		RebuildFeeItems(d)
		RebuildFeeItems(d)
		if !reflect.DeepEqual(first, d.ServiceLineItems) {
			t.Fatalf("rebuild is not idempotent: %v vs %v", first, d.ServiceLineItems)
		}
	})

	t.Run("fee order is stable", func(t *testing.T) {
		d := rentalDraft(entities.PeriodDaily)
		// Resolve in reverse order; output must still follow FeeOrder.
		d.SetFee(entities.FeeAgreement, entities.FeeState{Amount: ptr(500)})
		d.SetFee(entities.FeeRoadTax, entities.FeeState{Amount: ptr(380)})
		RebuildFeeItems(d)
		if d.ServiceLineItems[0].Description != "Road Tax" || d.ServiceLineItems[1].Description != "Agreement Fee" {
			t.Fatalf("unexpected order: %v", d.ServiceLineItems)
		}
	})
}

func TestStartFeeFlow(t *testing.T) {
	u := NewConversationUseCase(nil, nil, nil, nil, parserOpts())

	t.Run("queues only unresolved fees", func(t *testing.T) {
		d := rentalDraft(entities.PeriodMonthly)
		d.SetFee(entities.FeeRoadTax, entities.FeeState{Amount: ptr(380)})
		u.startFeeFlow(d)
		if len(d.FeeQueue) != 4 {
			t.Fatalf("expected 4 queued fees, got %v", d.FeeQueue)
		}
		if d.FeeQueue[0] != entities.FeeInsurance {
			t.Fatalf("expected insurance first, got %v", d.FeeQueue[0])
		}
		if d.State != entities.StateAwaitingFeeChoice {
			t.Fatalf("unexpected state: %v", d.State)
		}
	})

	t.Run("all resolved finishes immediately", func(t *testing.T) {
		d := rentalDraft(entities.PeriodDaily)
		for _, kind := range entities.FeeOrder {
			d.SetFee(kind, entities.FeeState{Amount: ptr(100)})
		}
		u.startFeeFlow(d)
		if !d.RentalFeesCollected {
			t.Fatal("expected fee flow to complete")
		}
		if d.State != entities.StateSelectingEquipment {
			t.Fatalf("expected equipment selection, got %v", d.State)
		}
	})
}
