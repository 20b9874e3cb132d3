package entities

// LineItem is one priced row of a quotation. Every item carries a GL
// category code assigned at creation; it is never left unset.
type LineItem struct {
	Qty         int     `json:"qty"`
	Description string  `json:"line_description"`
	UnitPrice   float64 `json:"unit_price"`
	GLCode      string  `json:"gl_code"`
}

// Amount is the extended price (unit price times quantity).
func (li LineItem) Amount() float64 {
	qty := li.Qty
	if qty < 1 {
		qty = 1
	}
	return float64(qty) * li.UnitPrice
}

// FinalPaymentName is the sentinel phase name. At most one phase carries it,
// and when present it is always the last element of the schedule.
const FinalPaymentName = "Final Payment"

// PaymentPhase is one installment of a phased payment schedule. Non-final
// phases are auto-named by ordinal position ("1st Payment", "2nd Payment").
type PaymentPhase struct {
	Name    string  `json:"name"`
	Amount  float64 `json:"amount"`
	Remarks string  `json:"remarks,omitempty"`
}

// IsFinal reports whether the phase is the balance-carrying sentinel.
func (p PaymentPhase) IsFinal() bool {
	return p.Name == FinalPaymentName
}
