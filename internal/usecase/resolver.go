package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"quotedraft/internal/domain/companies"
	"quotedraft/internal/domain/entities"
)

// The resolver walks the draft after every mutation and produces exactly one
// prompt: the next thing to ask for, or the confirmation summary once nothing
// is missing. It is the only place that decides "what next", so handlers
// never chain prompts themselves.

// maxResolveIterations bounds the resolve loop. Every non-prompting step
// makes monotonic progress on the draft, so the bound is never reached in
// practice; it exists so a logic bug degrades into a visible summary instead
// of a spin.
const maxResolveIterations = 25

func (u *ConversationUseCase) resolve(ctx context.Context, d *entities.Draft) entities.Prompt {
	for i := 0; i < maxResolveIterations; i++ {
		p, prompted := u.resolveStep(ctx, d)
		if prompted {
			return p
		}
	}
	log.Printf("[resolver][resolve] iteration guard hit conversation_id=%s state=%s", d.ConversationID, d.State)
	return u.confirmationPrompt(d)
}

// resolveStep performs one pass over the draft. It returns (prompt, true)
// when user input is needed, or (zero, false) after silently advancing the
// draft so the loop runs again.
func (u *ConversationUseCase) resolveStep(ctx context.Context, d *entities.Draft) (entities.Prompt, bool) {
	// 1. Document type.
	if d.DocType == "" {
		u.transition(d, entities.StateAwaitingDocType)
		return docTypePrompt(d), true
	}

	// 2. A company name pulled off an image: refurbish accepts it silently,
	// sale and rental ask first.
	if d.ExtractedCompanyName != "" {
		if d.DocType == entities.DocTypeRefurbish {
			if d.CustomerName == "" {
				d.CustomerName = d.ExtractedCompanyName
			}
			if d.CustomerAddress == "" {
				d.CustomerAddress = d.ExtractedCompanyAddress
			}
			d.ExtractedCompanyName = ""
			d.ExtractedCompanyAddress = ""
			return entities.Prompt{}, false
		}
		u.transition(d, entities.StateConfirmCompanyName)
		p := entities.Prompt{
			Text:  fmt.Sprintf("The image shows the company %q. Use it as the customer name?", d.ExtractedCompanyName),
			State: d.State,
		}
		p = p.WithAction("Yes, use it", entities.Action{Kind: entities.ActionNameConfirm})
		p = p.WithAction("No, I'll type it", entities.Action{Kind: entities.ActionNameReject})
		return p, true
	}

	// 3. Existing-customer lookup, once per provided name.
	if d.CustomerName != "" && !entities.IsSkipped(d.CustomerName) && !d.CustomerChecked {
		matches, err := u.searchCustomers(ctx, d.CustomerName)
		if err != nil {
			log.Printf("[resolver][customer_lookup] directory error conversation_id=%s err=%v", d.ConversationID, err)
		}
		if len(matches) == 0 {
			d.CustomerChecked = true
			return entities.Prompt{}, false
		}
		u.transition(d, entities.StateSelectingCustomer)
		p := entities.Prompt{
			Text:  fmt.Sprintf("Found %d existing customer(s) matching %q. Use one of them?", len(matches), d.CustomerName),
			State: d.State,
		}
		for _, m := range matches {
			p = p.WithAction(m.Name, entities.Action{Kind: entities.ActionCustomerUse, Arg: m.Name})
		}
		p = p.WithAction("New Customer", entities.Action{Kind: entities.ActionCustomerNew})
		return p, true
	}

	// 4. Required scalar fields, in a fixed order.
	if f, found := nextMissingField(d); found {
		u.transition(d, entities.StateAwaitingField)
		d.WaitingForField = f
		return fieldPrompt(d, f), true
	}

	// 5. Extracted multi-quantity items needing total-vs-per-piece
	// clarification.
	if len(d.ItemsToClarify) > 0 {
		idx := d.ItemsToClarify[0]
		if idx < 0 || idx >= len(d.LineItems) {
			d.ItemsToClarify = d.ItemsToClarify[1:]
			return entities.Prompt{}, false
		}
		it := d.LineItems[idx]
		u.transition(d, entities.StateClarifyingPrice)
		p := entities.Prompt{
			Text: fmt.Sprintf("%d x %s at RM %.2f: is RM %.2f the total, or the price per piece?",
				it.Qty, it.Description, it.UnitPrice, it.UnitPrice),
			State: d.State,
		}
		p = p.WithAction("Total", entities.Action{Kind: entities.ActionClarifyTotal, Arg: fmt.Sprintf("%d", idx)})
		p = p.WithAction("Per Piece", entities.Action{Kind: entities.ActionClarifyPer, Arg: fmt.Sprintf("%d", idx)})
		return p, true
	}

	// 6. Issuing company.
	if d.IssuingCompany == "" {
		u.transition(d, entities.StateSelectingCompany)
		p := entities.Prompt{Text: "Which company issues this document?", State: d.State}
		for _, c := range companies.All() {
			p = p.WithAction(c.Name, entities.Action{Kind: entities.ActionCompany, Arg: c.Name})
		}
		return p, true
	}

	// 7. Per-type sub-workflows.
	switch d.DocType {
	case entities.DocTypeRental:
		if p, prompted := u.resolveRental(d); prompted {
			return p, true
		}
	case entities.DocTypeSale:
		if p, prompted := u.resolveSale(ctx, d); prompted {
			return p, true
		}
	case entities.DocTypeRefurbish:
		if len(d.LineItems) == 0 {
			u.transition(d, entities.StateAwaitingField)
			d.WaitingForField = entities.FieldLineItems
			return entities.Prompt{
				Text:  "Send the repair items, one per line, each ending with its price.\nExample:\n2 x Oil Filter 91.00\nBrake Pads 450",
				State: d.State,
			}, true
		}
	}

	// 8. Nothing missing: show the summary.
	u.transition(d, entities.StateConfirmingDetails)
	return u.confirmationPrompt(d), true
}

func (u *ConversationUseCase) resolveRental(d *entities.Draft) (entities.Prompt, bool) {
	if d.RentalPeriodType == "" {
		u.transition(d, entities.StateAwaitingRentalPeriod)
		p := entities.Prompt{Text: "Is this a monthly or a daily rental?", State: d.State}
		p = p.WithAction("Monthly", entities.Action{Kind: entities.ActionRentalPeriod, Arg: string(entities.PeriodMonthly)})
		p = p.WithAction("Daily", entities.Action{Kind: entities.ActionRentalPeriod, Arg: string(entities.PeriodDaily)})
		return p, true
	}

	if d.RentalPeriodType == entities.PeriodMonthly && d.ContractPeriod == "" {
		u.transition(d, entities.StateAwaitingContractPeriod)
		p := entities.Prompt{Text: "What is the contract period?", State: d.State}
		for _, label := range []string{"6 Months", "1 Year", "2 Years"} {
			p = p.WithAction(label, entities.Action{Kind: entities.ActionContractPeriod, Arg: label})
		}
		p = p.WithAction("Other...", entities.Action{Kind: entities.ActionContractPeriod, Arg: "other"})
		return p, true
	}

	if d.RentalPeriodType == entities.PeriodDaily {
		if d.RentalStartDate == "" {
			u.transition(d, entities.StateAwaitingRentalStart)
			return entities.Prompt{Text: "What is the rental start date? (e.g. 2025-03-01 or 01/03/2025)", State: d.State}, true
		}
		if d.RentalEndDate == "" {
			u.transition(d, entities.StateAwaitingRentalEnd)
			return entities.Prompt{Text: "And the rental end date?", State: d.State}, true
		}
	}

	if d.RentalAmount == nil {
		u.transition(d, entities.StateAwaitingField)
		d.WaitingForField = entities.FieldRentalAmount
		label := "What is the monthly rental amount?"
		if d.RentalPeriodType == entities.PeriodDaily {
			label = "What is the total rental amount for the period?"
		}
		return entities.Prompt{Text: label, State: d.State}, true
	}

	if d.SecurityDeposit == nil {
		u.transition(d, entities.StateAwaitingField)
		d.WaitingForField = entities.FieldSecurityDeposit
		p := entities.Prompt{Text: "What is the security deposit?", State: d.State}
		p = p.WithAction("No Deposit", entities.Action{Kind: entities.ActionSkipField})
		return p, true
	}
	d.RentalDetailsCollected = true

	if !d.RentalFeesCollected {
		return u.startFeeFlow(d), true
	}
	if !d.EquipmentCollected {
		return u.startEquipmentFlow(d), true
	}
	return entities.Prompt{}, false
}

var lorrySaleTypes = []string{"Lorry Price OTR", "Lorry Harga SHJ", "Offroad"}

func (u *ConversationUseCase) resolveSale(ctx context.Context, d *entities.Draft) (entities.Prompt, bool) {
	if !d.LorryItemCreated {
		u.transition(d, entities.StateSelectingLorryType)
		text := "What type of lorry sale is this?"
		if len(d.LineItems) > 0 {
			// An extracted or typed item already carries the price; only the
			// description needs to be pinned to a sale type.
			text = fmt.Sprintf("I see the lorry price is RM %.2f. Please clarify the description:",
				d.LineItems[0].UnitPrice)
		}
		p := entities.Prompt{Text: text, State: d.State}
		for _, t := range lorrySaleTypes {
			p = p.WithAction(t, entities.Action{Kind: entities.ActionLorryType, Arg: t})
		}
		return p, true
	}

	if !d.MainServicesDone {
		return u.startMainServicesFlow(d), true
	}
	if !d.AdditionalServicesDone {
		return u.startAdditionalServicesFlow(d), true
	}

	if !d.PaymentPhasesComplete {
		u.transition(d, entities.StateAskPaymentPhases)
		p := entities.Prompt{Text: "Split the total into payment phases?", State: d.State}
		p = p.WithAction("Yes", entities.Action{Kind: entities.ActionPhasesYes})
		p = p.WithAction("No, single payment", entities.Action{Kind: entities.ActionPhasesNo})
		return p, true
	}
	return entities.Prompt{}, false
}

// requiredFields is the elicitation order for the shared scalar fields.
var requiredFields = []entities.Field{
	entities.FieldCustomerName,
	entities.FieldCustomerAddress,
	entities.FieldCustomerContact,
	entities.FieldSalesperson,
	entities.FieldTruckNumber,
	entities.FieldBodyType,
}

func nextMissingField(d *entities.Draft) (entities.Field, bool) {
	for _, f := range requiredFields {
		if f == entities.FieldBodyType && d.DocType == entities.DocTypeRental {
			continue
		}
		if fieldValue(d, f) == "" {
			return f, true
		}
	}
	return "", false
}

func fieldValue(d *entities.Draft, f entities.Field) string {
	switch f {
	case entities.FieldCustomerName:
		return d.CustomerName
	case entities.FieldCustomerAddress:
		return d.CustomerAddress
	case entities.FieldCustomerContact:
		return d.CustomerContact
	case entities.FieldSalesperson:
		return d.Salesperson
	case entities.FieldTruckNumber:
		return d.TruckNumber
	case entities.FieldBodyType:
		return d.BodyType
	}
	return ""
}

var fieldQuestions = map[entities.Field]string{
	entities.FieldCustomerName:    "What is the customer's name?",
	entities.FieldCustomerAddress: "What is the customer's address?",
	entities.FieldCustomerContact: "What is the customer's contact number?",
	entities.FieldSalesperson:     "Who is the salesperson?",
	entities.FieldTruckNumber:     "What is the truck number?",
	entities.FieldBodyType:        "What is the body type?",
}

func fieldPrompt(d *entities.Draft, f entities.Field) entities.Prompt {
	p := entities.Prompt{Text: fieldQuestions[f], State: d.State}
	p = p.WithAction("Skip", entities.Action{Kind: entities.ActionSkipField})
	return p
}

func docTypePrompt(d *entities.Draft) entities.Prompt {
	p := entities.Prompt{Text: "What would you like to create?", State: d.State}
	p = p.WithAction("Sales Quotation", entities.Action{Kind: entities.ActionDocType, Arg: "sale"})
	p = p.WithAction("Rental Quotation", entities.Action{Kind: entities.ActionDocType, Arg: "rental"})
	p = p.WithAction("Refurbish Quotation", entities.Action{Kind: entities.ActionDocType, Arg: "refurbish"})
	p = p.WithAction("Proforma (Sale)", entities.Action{Kind: entities.ActionDocType, Arg: "sale:proforma"})
	p = p.WithAction("Proforma (Rental)", entities.Action{Kind: entities.ActionDocType, Arg: "rental:proforma"})
	p = p.WithAction("Proforma (Refurbish)", entities.Action{Kind: entities.ActionDocType, Arg: "refurbish:proforma"})
	return p
}

func (u *ConversationUseCase) confirmationPrompt(d *entities.Draft) entities.Prompt {
	d.State = entities.StateConfirmingDetails

	var b strings.Builder
	title := capitalize(string(d.DocType)) + " Quotation"
	if d.IsProforma {
		title = "Proforma Invoice (" + capitalize(string(d.DocType)) + ")"
	}
	fmt.Fprintf(&b, "Please confirm the details for this %s:\n\n", title)
	fmt.Fprintf(&b, "Customer: %s\n", d.CustomerName)
	if d.CustomerAddress != "" && !entities.IsSkipped(d.CustomerAddress) {
		fmt.Fprintf(&b, "Address: %s\n", d.CustomerAddress)
	}
	if d.CustomerContact != "" && !entities.IsSkipped(d.CustomerContact) {
		fmt.Fprintf(&b, "Contact: %s\n", d.CustomerContact)
	}
	fmt.Fprintf(&b, "Salesperson: %s\n", d.Salesperson)
	fmt.Fprintf(&b, "Truck: %s\n", d.TruckNumber)
	if d.BodyType != "" && !entities.IsSkipped(d.BodyType) {
		fmt.Fprintf(&b, "Body: %s\n", d.BodyType)
	}
	fmt.Fprintf(&b, "Issuing Company: %s\n", d.IssuingCompany)

	if d.DocType == entities.DocTypeRental {
		fmt.Fprintf(&b, "\nRental: %s", d.RentalPeriodType)
		if d.RentalPeriodType == entities.PeriodMonthly && d.ContractPeriod != "" {
			fmt.Fprintf(&b, ", %s", d.ContractPeriod)
		}
		if d.RentalPeriodType == entities.PeriodDaily {
			fmt.Fprintf(&b, ", %s to %s (%d days)", d.RentalStartDate, d.RentalEndDate, d.RentalDays)
		}
		b.WriteString("\n")
		if d.RentalAmount != nil {
			fmt.Fprintf(&b, "Rental Amount: RM %.2f\n", *d.RentalAmount)
		}
		if d.SecurityDeposit != nil && *d.SecurityDeposit > 0 {
			fmt.Fprintf(&b, "Security Deposit: RM %.2f\n", *d.SecurityDeposit)
		}
		if len(d.SelectedEquipment) > 0 {
			fmt.Fprintf(&b, "Equipment: %s\n", strings.Join(d.SelectedEquipment, ", "))
		}
	}

	if len(d.LineItems) > 0 {
		b.WriteString("\nItems:\n")
		for _, it := range d.LineItems {
			fmt.Fprintf(&b, "- %d x %s @ RM %.2f = RM %.2f\n", it.Qty, it.Description, it.UnitPrice, it.Amount())
		}
	}
	if len(d.ServiceLineItems) > 0 {
		b.WriteString("\nServices / Fees:\n")
		for _, it := range d.ServiceLineItems {
			fmt.Fprintf(&b, "- %s: RM %.2f\n", it.Description, it.Amount())
		}
	}
	if len(d.ExcludedLineItems) > 0 {
		b.WriteString("\nExcluded:\n")
		for _, it := range d.ExcludedLineItems {
			fmt.Fprintf(&b, "- %s\n", it.Description)
		}
	}
	if len(d.PaymentPhases) > 0 {
		b.WriteString("\nPayment Phases:\n")
		for _, p := range d.PaymentPhases {
			fmt.Fprintf(&b, "- %s: RM %.2f\n", p.Name, p.Amount)
		}
	}
	fmt.Fprintf(&b, "\nTotal: RM %.2f", d.TotalAmount())

	p := entities.Prompt{Text: b.String(), State: d.State}
	p = p.WithAction("Generate Document", entities.Action{Kind: entities.ActionGenerate})
	p = p.WithAction("Edit", entities.Action{Kind: entities.ActionReviewEdit})
	return p
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// transition moves to a new state, pushing the old one exactly once so Back
// can retrace the path.
func (u *ConversationUseCase) transition(d *entities.Draft, s entities.ConversationState) {
	if d.State != "" && d.State != s {
		d.History = append(d.History, d.State)
	}
	d.State = s
}

// popState unwinds one history entry, staying put when there is nothing to
// unwind.
func popState(d *entities.Draft) {
	if len(d.History) == 0 {
		return
	}
	d.State = d.History[len(d.History)-1]
	d.History = d.History[:len(d.History)-1]
}
