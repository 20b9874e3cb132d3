package entities

// ConversationState enumerates where in the drafting flow a conversation is.
// The resolver owns all transitions; history is a push/pop stack also owned
// by the resolver, pushed exactly once per transition.

type ConversationState string

const (
	StateStart              ConversationState = "start"
	StateAwaitingDocType    ConversationState = "awaiting_doc_type"
	StateReviewingExtracted ConversationState = "reviewing_extracted"
	StateAwaitingField      ConversationState = "awaiting_field"
	StateConfirmCompanyName ConversationState = "confirm_company_name"
	StateSelectingCustomer  ConversationState = "selecting_customer"
	StateSelectingCompany   ConversationState = "selecting_issuing_company"

	StateAwaitingRentalPeriod   ConversationState = "awaiting_rental_period"
	StateAwaitingContractPeriod ConversationState = "awaiting_contract_period"
	StateAwaitingRentalStart    ConversationState = "awaiting_rental_start_date"
	StateAwaitingRentalEnd      ConversationState = "awaiting_rental_end_date"
	StateAwaitingFeeChoice      ConversationState = "awaiting_fee_choice"
	StateAwaitingFeePrice       ConversationState = "awaiting_fee_price"
	StateSelectingEquipment     ConversationState = "selecting_equipment"
	StateAwaitingEquipmentName  ConversationState = "awaiting_equipment_name"

	StateSelectingLorryType ConversationState = "selecting_lorry_sale_type"
	StateAwaitingLorryPrice ConversationState = "awaiting_lorry_price"
	StateClarifyingPrice    ConversationState = "clarifying_price"

	StateSelectingMainServices       ConversationState = "selecting_main_services"
	StateSelectingAdditionalServices ConversationState = "selecting_additional_services"
	StateAwaitingServiceName         ConversationState = "awaiting_service_name"
	StateAwaitingServicePrice        ConversationState = "awaiting_service_price"

	StateAskPaymentPhases     ConversationState = "ask_payment_phases"
	StateCollectingPhase      ConversationState = "collecting_phase_amount"
	StateReviewingPhases      ConversationState = "reviewing_payment_phases"
	StateSelectingFieldToEdit ConversationState = "selecting_field_to_edit"
	StateEditingField         ConversationState = "editing_field"
	StateSelectingItemRemoval ConversationState = "selecting_item_to_remove"

	StateConfirmingDetails ConversationState = "confirming_details"
	StatePostCompletion    ConversationState = "post_completion"
)

// Field names a scalar slot the conversation can wait on or edit. The same
// vocabulary is used by the AI extraction collaborator.
type Field string

const (
	FieldCustomerName    Field = "customer_name"
	FieldCustomerAddress Field = "customer_address"
	FieldCustomerContact Field = "customer_contact"
	FieldSalesperson     Field = "salesperson"
	FieldTruckNumber     Field = "truck_number"
	FieldBodyType        Field = "body_type"
	FieldLineItems       Field = "line_items"
	FieldContractPeriod  Field = "contract_period"
	FieldRentalAmount    Field = "rental_amount"
	FieldSecurityDeposit Field = "security_deposit"
)
