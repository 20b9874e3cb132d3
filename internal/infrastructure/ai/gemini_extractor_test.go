package ai

import (
	"testing"
)

func TestParseModelJSON(t *testing.T) {
	t.Run("raw json object", func(t *testing.T) {
		details, ok := ParseModelJSON(`{"doc_type":"sale","truck_number":"WXY 1234"}`)
		if !ok {
			t.Fatalf("expected parse to succeed")
		}
		if details.DocType != "sale" || details.TruckNumber != "WXY 1234" {
			t.Fatalf("unexpected details: %+v", details)
		}
	})

	t.Run("markdown fenced", func(t *testing.T) {
		raw := "```json\n{\"customer_name\":\"ACME SDN BHD\"}\n```"
		details, ok := ParseModelJSON(raw)
		if !ok {
			t.Fatalf("expected parse to succeed")
		}
		if details.CustomerName != "ACME SDN BHD" {
			t.Fatalf("unexpected name: %q", details.CustomerName)
		}
	})

	t.Run("json buried in prose", func(t *testing.T) {
		raw := `Here are the details you asked for: {"doc_type":"rental","rental_amount":4500} hope that helps`
		details, ok := ParseModelJSON(raw)
		if !ok {
			t.Fatalf("expected parse to succeed")
		}
		if details.DocType != "rental" {
			t.Fatalf("unexpected doc type: %q", details.DocType)
		}
		if details.RentalAmount == nil || *details.RentalAmount != 4500 {
			t.Fatalf("unexpected rental amount: %+v", details.RentalAmount)
		}
	})

	t.Run("line items and fees", func(t *testing.T) {
		raw := `{"fee_amounts":{"road_tax":160},"line_items":[{"qty":2,"line_description":"Oil Filter","unit_price":45.5}]}`
		details, ok := ParseModelJSON(raw)
		if !ok {
			t.Fatalf("expected parse to succeed")
		}
		if details.FeeAmounts["road_tax"] != 160 {
			t.Fatalf("unexpected fee amounts: %+v", details.FeeAmounts)
		}
		if len(details.LineItems) != 1 || details.LineItems[0].Description != "Oil Filter" {
			t.Fatalf("unexpected line items: %+v", details.LineItems)
		}
	})

	t.Run("unparseable", func(t *testing.T) {
		for _, raw := range []string{"", "sorry, I could not read that image", "{broken"} {
			if _, ok := ParseModelJSON(raw); ok {
				t.Fatalf("expected parse to fail for %q", raw)
			}
		}
	})
}
