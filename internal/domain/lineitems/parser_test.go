package lineitems

import (
	"math"
	"testing"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestParse(t *testing.T) {
	t.Run("quantity with trailing total", func(t *testing.T) {
		items := NewParser(Options{}).Parse("2 x Oil Filter - RM 45.50")
		if len(items) != 1 {
			t.Fatalf("expected 1 item, got %d", len(items))
		}
		it := items[0]
		if it.Qty != 2 {
			t.Fatalf("expected qty 2, got %d", it.Qty)
		}
		if it.Description != "Oil Filter" {
			t.Fatalf("unexpected description: %q", it.Description)
		}
		if !approxEqual(it.UnitPrice, 22.75) {
			t.Fatalf("expected unit price 22.75, got %v", it.UnitPrice)
		}
		if !approxEqual(it.Amount(), 45.50) {
			t.Fatalf("expected amount 45.50, got %v", it.Amount())
		}
	})

	t.Run("multiple lines", func(t *testing.T) {
		text := "Brake Pads 450\n3 pcs Mirror RM 150\nGearbox Overhaul 2,500.00"
		items := NewParser(Options{}).Parse(text)
		if len(items) != 3 {
			t.Fatalf("expected 3 items, got %d", len(items))
		}
		if items[0].Qty != 1 || !approxEqual(items[0].UnitPrice, 450) {
			t.Fatalf("unexpected first item: %+v", items[0])
		}
		if items[1].Qty != 3 || !approxEqual(items[1].UnitPrice, 50) {
			t.Fatalf("unexpected second item: %+v", items[1])
		}
		if !approxEqual(items[2].UnitPrice, 2500) {
			t.Fatalf("unexpected third item: %+v", items[2])
		}
	})

	t.Run("unit words", func(t *testing.T) {
		for _, line := range []string{"4 pcs Tyre 800", "4 unit Tyre 800", "4x Tyre 800"} {
			items := NewParser(Options{}).Parse(line)
			if len(items) != 1 || items[0].Qty != 4 {
				t.Fatalf("line %q: expected qty 4, got %+v", line, items)
			}
		}
	})

	t.Run("unpriced dropped by default", func(t *testing.T) {
		items := NewParser(Options{}).Parse("Wiring check\nBattery 320")
		if len(items) != 1 {
			t.Fatalf("expected only the priced line, got %d items", len(items))
		}
		if items[0].Description != "Battery" {
			t.Fatalf("unexpected item: %+v", items[0])
		}
	})

	t.Run("unpriced kept when configured", func(t *testing.T) {
		items := NewParser(Options{KeepUnpriced: true}).Parse("Wiring check")
		if len(items) != 1 {
			t.Fatalf("expected 1 item, got %d", len(items))
		}
		if items[0].UnitPrice != 0 || items[0].Qty != 1 {
			t.Fatalf("unexpected item: %+v", items[0])
		}
	})

	t.Run("every item carries a gl code", func(t *testing.T) {
		items := NewParser(Options{}).Parse("Road tax renewal 380\nRandom widget 10")
		for _, it := range items {
			if it.GLCode == "" {
				t.Fatalf("item %q missing gl code", it.Description)
			}
		}
		if items[0].GLCode != "930-000" {
			t.Fatalf("expected road tax code, got %q", items[0].GLCode)
		}
		if items[1].GLCode != DefaultGLCode {
			t.Fatalf("expected default code, got %q", items[1].GLCode)
		}
	})

	t.Run("empty description falls back", func(t *testing.T) {
		items := NewParser(Options{}).Parse("  - 99")
		if len(items) != 1 || items[0].Description != FallbackDescription {
			t.Fatalf("unexpected items: %+v", items)
		}
	})

	t.Run("blank input yields nothing", func(t *testing.T) {
		if items := NewParser(Options{}).Parse("  \n \n"); len(items) != 0 {
			t.Fatalf("expected no items, got %+v", items)
		}
	})
}

func TestGLCodeFor(t *testing.T) {
	cases := map[string]string{
		"Used Lorry Sale":        "500-000",
		"Monthly Rental":         "535-000",
		"Insurance 1st party":    "931-000",
		"Puspakom Inspection":    "930-000",
		"Sticker":                "501-000",
		"Something else":         DefaultGLCode,
		"ROAD TAX 1 YEAR":        "930-000",
		"Full engine refurbish":  "501-000",
		"Repair rear door hinge": "501-000",
	}
	for desc, want := range cases {
		if got := GLCodeFor(desc); got != want {
			t.Fatalf("GLCodeFor(%q) = %q, want %q", desc, got, want)
		}
	}
}
