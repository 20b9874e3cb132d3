package usecase

import (
	"fmt"
	"strings"

	"quotedraft/internal/domain/entities"
	"quotedraft/internal/domain/validation"
)

// ToOrdinal renders 1 -> "1st", 2 -> "2nd", 11 -> "11th" and so on.
func ToOrdinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// RecalculatePhases renumbers the non-final phases in order and, when a
// final balance phase exists, moves it last and sets its amount to the
// draft total minus the sum of the other phases. Owns the invariant that
// the final phase amount is always consistent with the current total.
func RecalculatePhases(d *entities.Draft) {
	if len(d.PaymentPhases) == 0 {
		return
	}

	others := make([]entities.PaymentPhase, 0, len(d.PaymentPhases))
	var final *entities.PaymentPhase
	for i := range d.PaymentPhases {
		p := d.PaymentPhases[i]
		if p.IsFinal() {
			final = &p
			continue
		}
		others = append(others, p)
	}

	sum := 0.0
	for i := range others {
		others[i].Name = fmt.Sprintf("%s Payment", ToOrdinal(i+1))
		sum += others[i].Amount
	}
	d.PaymentPhaseCounter = len(others) + 1

	if final != nil {
		final.Amount = d.TotalAmount() - sum
		others = append(others, *final)
	}
	d.PaymentPhases = others
}

// AddFinalBalance appends (or refreshes) the balance phase covering
// whatever the earlier phases leave of the total.
func AddFinalBalance(d *entities.Draft) {
	hasFinal := false
	for _, p := range d.PaymentPhases {
		if p.IsFinal() {
			hasFinal = true
			break
		}
	}
	if !hasFinal {
		d.PaymentPhases = append(d.PaymentPhases, entities.PaymentPhase{Name: entities.FinalPaymentName})
	}
	RecalculatePhases(d)
}

// parsePhaseInput accepts "1200" or "1200, upon delivery" style input:
// an amount with optional remarks after the first comma.
func parsePhaseInput(text string) (float64, string, validation.Result) {
	amountPart := text
	remarks := ""
	if idx := strings.Index(text, ","); idx >= 0 {
		// A comma may be a thousands separator; only treat the tail as
		// remarks when it contains something non-numeric.
		tail := strings.TrimSpace(text[idx+1:])
		if tail != "" && !isNumericTail(tail) {
			amountPart = text[:idx]
			remarks = tail
		}
	}
	amount, res := validation.Price(amountPart)
	return amount, remarks, res
}

func isNumericTail(s string) bool {
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' && r != ',' && r != ' ' {
			return false
		}
	}
	return true
}

func (u *ConversationUseCase) phasePrompt(d *entities.Draft) entities.Prompt {
	u.transition(d, entities.StateCollectingPhase)
	return entities.Prompt{
		Text: fmt.Sprintf(
			"Enter the amount for the %s Payment (add remarks after a comma if needed):",
			ToOrdinal(d.PaymentPhaseCounter)),
		State: d.State,
	}
}

func (u *ConversationUseCase) phaseReviewPrompt(d *entities.Draft) entities.Prompt {
	var b strings.Builder
	b.WriteString("Payment phases so far:\n")
	for _, p := range d.PaymentPhases {
		fmt.Fprintf(&b, "- %s: RM %.2f", p.Name, p.Amount)
		if p.Remarks != "" {
			fmt.Fprintf(&b, " (%s)", p.Remarks)
		}
		b.WriteString("\n")
	}
	prompt := entities.Prompt{Text: b.String(), State: d.State}
	prompt = prompt.WithAction("Add Another Phase", entities.Action{Kind: entities.ActionPhaseAdd})
	prompt = prompt.WithAction("Calculate Final Balance", entities.Action{Kind: entities.ActionPhaseBalance})
	return prompt
}
