package usecase

import (
	"math"
	"testing"

	"quotedraft/internal/domain/entities"
)

func TestToOrdinal(t *testing.T) {
	cases := map[int]string{
		1: "1st", 2: "2nd", 3: "3rd", 4: "4th",
		11: "11th", 12: "12th", 13: "13th",
		21: "21st", 22: "22nd", 23: "23rd", 101: "101st",
	}
	for n, want := range cases {
		if got := ToOrdinal(n); got != want {
			t.Fatalf("ToOrdinal(%d) = %q, want %q", n, got, want)
		}
	}
}

func saleDraftWithTotal(total float64) *entities.Draft {
	d := entities.NewDraft("conv-1")
	d.DocType = entities.DocTypeSale
	d.LineItems = []entities.LineItem{
		{Qty: 1, Description: "Used Lorry Sale", UnitPrice: total, GLCode: "500-000"},
	}
	return d
}

func TestRecalculatePhases(t *testing.T) {
	t.Run("renumbers after removal", func(t *testing.T) {
		d := saleDraftWithTotal(10000)
		d.PaymentPhases = []entities.PaymentPhase{
			{Name: "1st Payment", Amount: 2000},
			{Name: "3rd Payment", Amount: 1000},
			{Name: "2nd Payment", Amount: 500},
		}
		RecalculatePhases(d)
		for i, want := range []string{"1st Payment", "2nd Payment", "3rd Payment"} {
			if d.PaymentPhases[i].Name != want {
				t.Fatalf("phase %d named %q, want %q", i, d.PaymentPhases[i].Name, want)
			}
		}
	})

	t.Run("final payment covers the remainder", func(t *testing.T) {
		d := saleDraftWithTotal(10000)
		d.PaymentPhases = []entities.PaymentPhase{
			{Name: "1st Payment", Amount: 3000},
			{Name: entities.FinalPaymentName},
			{Name: "2nd Payment", Amount: 2500},
		}
		RecalculatePhases(d)

		last := d.PaymentPhases[len(d.PaymentPhases)-1]
		if !last.IsFinal() {
			t.Fatalf("final phase must be last, got %q", last.Name)
		}
		if math.Abs(last.Amount-4500) > 1e-9 {
			t.Fatalf("expected balance 4500, got %v", last.Amount)
		}

		sum := 0.0
		for _, p := range d.PaymentPhases {
			sum += p.Amount
		}
		if math.Abs(sum-d.TotalAmount()) > 1e-9 {
			t.Fatalf("phases sum %v, total %v", sum, d.TotalAmount())
		}
	})

	t.Run("final tracks a changed total", func(t *testing.T) {
		d := saleDraftWithTotal(10000)
		d.PaymentPhases = []entities.PaymentPhase{
			{Name: "1st Payment", Amount: 3000},
			{Name: entities.FinalPaymentName, Amount: 7000},
		}
		d.ServiceLineItems = append(d.ServiceLineItems, entities.LineItem{
			Qty: 1, Description: "Road tax 1year", UnitPrice: 380, GLCode: "930-000",
		})
		RecalculatePhases(d)
		if got := d.PaymentPhases[1].Amount; math.Abs(got-7380) > 1e-9 {
			t.Fatalf("expected 7380, got %v", got)
		}
	})

	t.Run("no phases is a no-op", func(t *testing.T) {
		d := saleDraftWithTotal(10000)
		RecalculatePhases(d)
		if len(d.PaymentPhases) != 0 {
			t.Fatalf("unexpected phases: %v", d.PaymentPhases)
		}
	})
}

func TestAddFinalBalance(t *testing.T) {
	t.Run("appends once", func(t *testing.T) {
		d := saleDraftWithTotal(5000)
		d.PaymentPhases = []entities.PaymentPhase{{Name: "1st Payment", Amount: 1000}}
		AddFinalBalance(d)
		AddFinalBalance(d)
		if len(d.PaymentPhases) != 2 {
			t.Fatalf("expected 2 phases, got %v", d.PaymentPhases)
		}
		if d.PaymentPhases[1].Amount != 4000 {
			t.Fatalf("expected balance 4000, got %v", d.PaymentPhases[1].Amount)
		}
	})
}

func TestParsePhaseInput(t *testing.T) {
	t.Run("amount only", func(t *testing.T) {
		amount, remarks, res := parsePhaseInput("1200")
		if !res.OK || amount != 1200 || remarks != "" {
			t.Fatalf("got %v %q ok=%v", amount, remarks, res.OK)
		}
	})

	t.Run("amount with remarks", func(t *testing.T) {
		amount, remarks, res := parsePhaseInput("1200, upon delivery")
		if !res.OK || amount != 1200 || remarks != "upon delivery" {
			t.Fatalf("got %v %q ok=%v", amount, remarks, res.OK)
		}
	})

	t.Run("thousands separator is not remarks", func(t *testing.T) {
		amount, remarks, res := parsePhaseInput("1,200.50")
		if !res.OK || amount != 1200.50 || remarks != "" {
			t.Fatalf("got %v %q ok=%v", amount, remarks, res.OK)
		}
	})

	t.Run("invalid amount", func(t *testing.T) {
		if _, _, res := parsePhaseInput("a lot"); res.OK {
			t.Fatal("expected rejection")
		}
	})
}
