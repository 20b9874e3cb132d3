package entities

// DocType identifies which of the three business documents a draft produces.
//
// Domain notes:
//   - A proforma variant exists for every type; it is an orthogonal
//     presentation flag (IsProforma), not a fourth type.

type DocType string

const (
	DocTypeSale      DocType = "sale"
	DocTypeRental    DocType = "rental"
	DocTypeRefurbish DocType = "refurbish"
)

// PeriodType is the rental billing cadence.
type PeriodType string

const (
	PeriodMonthly PeriodType = "monthly"
	PeriodDaily   PeriodType = "daily"
)

// SkipSentinel marks a field the user deliberately left blank, as opposed
// to one that has not been asked for yet.
const SkipSentinel = "N/A"

// IsSkipped reports whether a scalar value carries a skip sentinel.
func IsSkipped(v string) bool {
	switch v {
	case "N/A", "NA", "0":
		return true
	}
	return false
}

// FeeKind enumerates the rental fees collected by the fee sub-workflow,
// in the order they are elicited.
type FeeKind string

const (
	FeeRoadTax    FeeKind = "road_tax"
	FeeInsurance  FeeKind = "insurance"
	FeeInspection FeeKind = "inspection"
	FeeSticker    FeeKind = "sticker"
	FeeAgreement  FeeKind = "agreement"
)

// FeeOrder is the elicitation order of the fee sub-workflow.
var FeeOrder = []FeeKind{FeeRoadTax, FeeInsurance, FeeInspection, FeeSticker, FeeAgreement}

// FeeState is the scalar resolution of a single rental fee. Amount nil means
// not yet resolved; Amount zero means included at no cost; Excluded means the
// fee was deliberately left out of the package.
type FeeState struct {
	Amount   *float64 `json:"amount,omitempty"`
	Excluded bool     `json:"excluded,omitempty"`
}

// Resolved reports whether the fee has been answered in any of the three ways.
func (f FeeState) Resolved() bool {
	return f.Amount != nil || f.Excluded
}

// Draft is the cumulative record of everything collected for one in-progress
// document. One draft exists per conversation; it is mutated only by the
// resolver and the sub-workflow controllers, and cleared only on explicit
// reset. A failed dispatch never clears it.
type Draft struct {
	ConversationID string  `json:"conversation_id"`
	DocType        DocType `json:"doc_type,omitempty"`
	IsProforma     bool    `json:"is_proforma,omitempty"`

	// Customer / truck scalars. Empty means not collected; a skip sentinel
	// ("N/A"/"0") means deliberately blank.
	CustomerName    string `json:"customer_name,omitempty"`
	CustomerAddress string `json:"customer_address,omitempty"`
	CustomerContact string `json:"customer_contact,omitempty"`
	Salesperson     string `json:"salesperson,omitempty"`
	TruckNumber     string `json:"truck_number,omitempty"`
	BodyType        string `json:"body_type,omitempty"`

	IssuingCompany string `json:"issuing_company,omitempty"`

	LineItems         []LineItem `json:"line_items,omitempty"`
	ServiceLineItems  []LineItem `json:"service_line_items,omitempty"`
	ExcludedLineItems []LineItem `json:"excluded_line_items,omitempty"`

	PaymentPhases       []PaymentPhase `json:"payment_phases,omitempty"`
	PaymentPhaseCounter int            `json:"payment_phase_counter,omitempty"`

	// Rental-only scalars.
	RentalPeriodType PeriodType           `json:"rental_period_type,omitempty"`
	ContractPeriod   string               `json:"contract_period,omitempty"`
	RentalStartDate  string               `json:"rental_start_date,omitempty"` // YYYY-MM-DD
	RentalEndDate    string               `json:"rental_end_date,omitempty"`   // YYYY-MM-DD
	RentalDays       int                  `json:"rental_days,omitempty"`
	RentalAmount     *float64             `json:"rental_amount,omitempty"`
	SecurityDeposit  *float64             `json:"security_deposit,omitempty"`
	Fees             map[FeeKind]FeeState `json:"fees,omitempty"`
	FeeQueue         []FeeKind            `json:"fee_queue,omitempty"`

	SelectedEquipment []string `json:"selected_equipment,omitempty"`

	// Service selection working state.
	SelectedServices []string `json:"selected_services,omitempty"`
	ServicesToPrice  []string `json:"services_to_price,omitempty"`
	ServiceMenuPath  []string `json:"service_menu_path,omitempty"`

	LorrySaleDescription string `json:"lorry_sale_description,omitempty"`

	// Completion flags. A sub-workflow with no data is ambiguous between
	// "not started" and "deliberately empty"; the flag disambiguates.
	RentalDetailsCollected bool `json:"rental_details_collected,omitempty"`
	RentalFeesCollected    bool `json:"rental_fees_collected,omitempty"`
	EquipmentCollected     bool `json:"equipment_collected,omitempty"`
	MainServicesDone       bool `json:"main_services_done,omitempty"`
	AdditionalServicesDone bool `json:"additional_services_done,omitempty"`
	PaymentPhasesComplete  bool `json:"payment_phases_complete,omitempty"`
	LorryItemCreated       bool `json:"lorry_item_created,omitempty"`

	// Customer-lookup working state.
	CustomerChecked     bool   `json:"customer_checked,omitempty"`
	MatchedCustomerName string `json:"matched_customer_name,omitempty"`

	// Image extraction working state: a company name pulled from a photo is
	// held here until the resolver accepts it (refurbish) or the user
	// confirms it (sale/rental).
	ExtractedCompanyName    string `json:"extracted_company_name,omitempty"`
	ExtractedCompanyAddress string `json:"extracted_company_address,omitempty"`

	// Indexes into LineItems awaiting total-vs-per-piece clarification.
	ItemsToClarify []int `json:"items_to_clarify,omitempty"`

	// Conversation state.
	State           ConversationState   `json:"state,omitempty"`
	WaitingForField Field               `json:"waiting_for_field,omitempty"`
	EditingField    Field               `json:"editing_field,omitempty"`
	History         []ConversationState `json:"history,omitempty"`
}

// NewDraft returns an empty draft owned by the given conversation.
func NewDraft(conversationID string) *Draft {
	return &Draft{
		ConversationID: conversationID,
		State:          StateStart,
		Fees:           map[FeeKind]FeeState{},
	}
}

// FeeState returns the recorded resolution for a fee kind, zero value when
// the fee has not been answered.
func (d *Draft) FeeState(kind FeeKind) FeeState {
	if d.Fees == nil {
		return FeeState{}
	}
	return d.Fees[kind]
}

// SetFee records a fee resolution, allocating the map on first use.
func (d *Draft) SetFee(kind FeeKind, state FeeState) {
	if d.Fees == nil {
		d.Fees = map[FeeKind]FeeState{}
	}
	d.Fees[kind] = state
}

// ClearFee forgets a fee resolution so the resolver re-offers it.
func (d *Draft) ClearFee(kind FeeKind) {
	delete(d.Fees, kind)
}

// TotalAmount is the running document total: line items plus service items,
// plus the rental amount and security deposit for rentals.
func (d *Draft) TotalAmount() float64 {
	total := 0.0
	for _, it := range d.LineItems {
		total += it.Amount()
	}
	for _, it := range d.ServiceLineItems {
		total += it.Amount()
	}
	if d.DocType == DocTypeRental {
		if d.RentalAmount != nil {
			total += *d.RentalAmount
		}
		if d.SecurityDeposit != nil {
			total += *d.SecurityDeposit
		}
	}
	return total
}
