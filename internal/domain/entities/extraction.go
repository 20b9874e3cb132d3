package entities

// ExtractedDetails is what the AI extraction collaborator returns for a text
// or image input. All fields are optional; an empty value means the model
// did not recognize that field. Unrecognized or malformed model output is
// dropped by the collaborator, never surfaced as an error.
type ExtractedDetails struct {
	DocType         string `json:"doc_type,omitempty"`
	TruckNumber     string `json:"truck_number,omitempty"`
	CustomerName    string `json:"customer_name,omitempty"`
	CustomerAddress string `json:"customer_address,omitempty"`
	CustomerContact string `json:"customer_contact,omitempty"`
	BodyType        string `json:"body_type,omitempty"`
	Salesperson     string `json:"salesperson,omitempty"`

	RentalPeriodType string   `json:"rental_period_type,omitempty"`
	ContractPeriod   string   `json:"contract_period,omitempty"`
	RentalAmount     *float64 `json:"rental_amount,omitempty"`
	SecurityDeposit  *float64 `json:"security_deposit,omitempty"`

	// Keyed by FeeKind string ("road_tax", "insurance", ...).
	FeeAmounts map[string]float64 `json:"fee_amounts,omitempty"`

	LineItems []LineItem `json:"line_items,omitempty"`
}

// Empty reports whether the extraction produced nothing usable.
func (e ExtractedDetails) Empty() bool {
	return e.DocType == "" && e.TruckNumber == "" && e.CustomerName == "" &&
		e.CustomerAddress == "" && e.CustomerContact == "" && e.BodyType == "" &&
		e.Salesperson == "" && e.RentalPeriodType == "" && e.ContractPeriod == "" &&
		e.RentalAmount == nil && e.SecurityDeposit == nil &&
		len(e.FeeAmounts) == 0 && len(e.LineItems) == 0
}

// CustomerMatch is one candidate returned by the customer-lookup
// collaborator.
type CustomerMatch struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Contact string `json:"contact"`
}
