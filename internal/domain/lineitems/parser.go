// Package lineitems turns free-form multi-line text into structured,
// GL-coded line items, one candidate item per line.
package lineitems

import (
	"regexp"
	"strconv"
	"strings"

	"quotedraft/internal/domain/entities"
)

// FallbackDescription is used when a line reduces to an empty description
// after the price and quantity tokens are stripped.
const FallbackDescription = "Item"

var (
	// Trailing price, optionally preceded by a currency marker, commas allowed.
	priceRe = regexp.MustCompile(`(?i)(?:RM\s*)?([\d,]+\.?\d*)\s*$`)
	// Leading quantity followed by a unit word or multiplier mark.
	qtyRe = regexp.MustCompile(`(?i)^\s*(\d+)\s*(x|pcs?|pc|unit|units)\s*`)
)

// Options configures parsing policy.
//
// KeepUnpriced controls what happens to a line without a recognizable
// trailing price: false drops it, true keeps it as a zero-priced fallback
// item. Both behaviors exist in the field; the choice is configuration, not
// code.
type Options struct {
	KeepUnpriced bool
}

// Parser parses line-item text under a fixed policy.
type Parser struct {
	opts Options
}

func NewParser(opts Options) *Parser {
	return &Parser{opts: opts}
}

// Parse converts text into line items. The trailing numeric token of each
// line is read as the TOTAL price for that line; the unit price is the total
// divided by the quantity (default 1). Every produced item carries a GL code.
func (p *Parser) Parse(text string) []entities.LineItem {
	var items []entities.LineItem
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		m := priceRe.FindStringSubmatchIndex(line)
		if m == nil {
			if !p.opts.KeepUnpriced {
				continue
			}
			desc := cleanDescription(line)
			items = append(items, entities.LineItem{
				Qty:         1,
				Description: desc,
				UnitPrice:   0,
				GLCode:      GLCodeFor(desc),
			})
			continue
		}

		priceStr := strings.ReplaceAll(line[m[2]:m[3]], ",", "")
		total, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			continue
		}

		head := strings.TrimSpace(line[:m[0]])
		qty := 1
		if qm := qtyRe.FindStringSubmatch(head); qm != nil {
			if n, err := strconv.Atoi(qm[1]); err == nil && n >= 1 {
				qty = n
			}
			head = strings.TrimSpace(head[len(qm[0]):])
		}

		desc := cleanDescription(head)
		items = append(items, entities.LineItem{
			Qty:         qty,
			Description: desc,
			UnitPrice:   total / float64(qty),
			GLCode:      GLCodeFor(desc),
		})
	}
	return items
}

func cleanDescription(s string) string {
	s = strings.Trim(s, " ,-:")
	if s == "" {
		return FallbackDescription
	}
	return s
}
