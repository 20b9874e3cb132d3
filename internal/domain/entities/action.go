package entities

import (
	"errors"
	"strings"
)

// ActionKind tags a button token. Tokens travel over the transport as opaque
// "kind:argument" strings; they are parsed once here and dispatched by exact
// tag, never by prefix scanning.

type ActionKind string

const (
	ActionDocType        ActionKind = "doc_type"        // arg: sale|rental|refurbish[:proforma]
	ActionSkipField      ActionKind = "skip_field"      // stores the skip sentinel
	ActionReviewOK       ActionKind = "review_ok"       // extracted data confirmed
	ActionReviewEdit     ActionKind = "review_edit"     // open the edit menu
	ActionCompany        ActionKind = "company"         // arg: issuing company name
	ActionCustomerUse    ActionKind = "customer_use"    // arg: matched customer name
	ActionCustomerNew    ActionKind = "customer_new"    // treat as new customer
	ActionNameConfirm    ActionKind = "name_confirm"    // accept image-extracted name
	ActionNameReject     ActionKind = "name_reject"     // discard image-extracted name
	ActionClarifyTotal   ActionKind = "clarify_total"   // arg: line item index
	ActionClarifyPer     ActionKind = "clarify_unit"    // arg: line item index
	ActionRentalPeriod   ActionKind = "rental_period"   // arg: monthly|daily
	ActionContractPeriod ActionKind = "contract_period" // arg: period label or "other"
	ActionFeePrice       ActionKind = "fee_price"       // arg: fee kind
	ActionFeeIncluded    ActionKind = "fee_included"    // arg: fee kind
	ActionFeeExcluded    ActionKind = "fee_excluded"    // arg: fee kind
	ActionEquipToggle    ActionKind = "equip_toggle"    // arg: equipment name
	ActionEquipOther     ActionKind = "equip_other"
	ActionEquipDone      ActionKind = "equip_done"
	ActionLorryType      ActionKind = "lorry_type" // arg: sale type description
	ActionServiceCat     ActionKind = "svc_cat"    // arg: category name
	ActionServiceBack    ActionKind = "svc_back"
	ActionServiceToggle  ActionKind = "svc_toggle" // arg: leaf service name
	ActionServiceOther   ActionKind = "svc_other"
	ActionServiceDone    ActionKind = "svc_done"
	ActionPhasesYes      ActionKind = "phases_yes"
	ActionPhasesNo       ActionKind = "phases_no"
	ActionPhaseAdd       ActionKind = "phase_add"
	ActionPhaseBalance   ActionKind = "phase_balance"
	ActionEditField      ActionKind = "edit"         // arg: field name
	ActionEditDone       ActionKind = "edit_done"
	ActionRemoveItem     ActionKind = "remove_item" // arg: bucket:index
	ActionRemoveDone     ActionKind = "remove_done"
	ActionGenerate       ActionKind = "generate"
	ActionResend         ActionKind = "resend"
	ActionStartNew       ActionKind = "start_new"
	ActionBack           ActionKind = "back"
)

// Action is a parsed button token.
type Action struct {
	Kind ActionKind
	Arg  string
}

var ErrMalformedAction = errors.New("malformed action token")

// ParseAction splits a transport token of the shape "kind" or
// "kind:argument" into its tagged form. The kind is not validated here; the
// dispatch table rejects unknown tags.
func ParseAction(token string) (Action, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Action{}, ErrMalformedAction
	}
	kind, arg, _ := strings.Cut(token, ":")
	if kind == "" {
		return Action{}, ErrMalformedAction
	}
	return Action{Kind: ActionKind(kind), Arg: arg}, nil
}

// Token renders the action back to its wire shape.
func (a Action) Token() string {
	if a.Arg == "" {
		return string(a.Kind)
	}
	return string(a.Kind) + ":" + a.Arg
}
