package entities

// RenderPayload is the wire schema expected by the document-rendering
// collaborator. The normalizer fills defaults, recomputes the total and
// derives the document number before handing a draft over; nothing here is
// computed at render time.
type RenderPayload struct {
	Type            string `json:"type"`
	CustCode        string `json:"cust_code"`
	CustName        string `json:"cust_name"`
	CustomerAddress string `json:"company_address,omitempty"`
	CustContact     string `json:"cust_contact,omitempty"`
	TruckNumber     string `json:"truck_number"`
	Body            string `json:"body,omitempty"`
	IssuingCompany  string `json:"issuing_company"`
	DocNo           string `json:"doc_no"`
	Description     string `json:"description"`
	Salesperson     string `json:"salesperson,omitempty"`

	LineItems         []LineItem     `json:"line_items"`
	ServiceLineItems  []LineItem     `json:"service_line_items"`
	ExcludedLineItems []LineItem     `json:"excluded_line_items"`
	PaymentPhases     []PaymentPhase `json:"payment_phases"`

	TotalAmount float64 `json:"total_amount"`
	IsProforma  bool    `json:"is_proforma"`

	// Rental-only block.
	MainRentalItem    *LineItem `json:"main_rental_item,omitempty"`
	RentalPeriodType  string    `json:"rental_period_type,omitempty"`
	ContractPeriod    string    `json:"contract_period,omitempty"`
	RentalStartDate   string    `json:"rental_start_date,omitempty"`
	RentalEndDate     string    `json:"rental_end_date,omitempty"`
	RentalDays        int       `json:"rental_days,omitempty"`
	SecurityDeposit   float64   `json:"security_deposit,omitempty"`
	SelectedEquipment []string  `json:"selected_equipment,omitempty"`
}

// RenderResult is the rendering collaborator's success response.
type RenderResult struct {
	ArtifactRef string `json:"artifact_ref"`
}
