package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"quotedraft/internal/domain/companies"
	"quotedraft/internal/domain/entities"
	"quotedraft/internal/domain/lineitems"
	"quotedraft/internal/domain/validation"
	"quotedraft/internal/usecase/interfaces"
)

var (
	ErrInvalidConversationID = errors.New("invalid conversation id")
	ErrUnknownAction         = errors.New("unknown action")
)

// IConversationUseCase exposes the drafting flow operations.
//
// Every operation loads the conversation's draft, applies the event under a
// per-conversation lock, persists the draft and returns exactly one prompt.

type IConversationUseCase interface {
	HandleText(ctx context.Context, conversationID, text string) (entities.Prompt, error)
	HandleImage(ctx context.Context, conversationID string, image []byte, mimeType string) (entities.Prompt, error)
	HandleAction(ctx context.Context, conversationID, token string) (entities.Prompt, error)
	Reset(ctx context.Context, conversationID string) (entities.Prompt, error)
}

type actionHandler func(ctx context.Context, d *entities.Draft, arg string) (entities.Prompt, error)

type ConversationUseCase struct {
	sessions  interfaces.ISessionRepository
	extractor interfaces.IDetailExtractor
	customers interfaces.ICustomerDirectory
	renderer  interfaces.IDocumentRenderer

	parser *lineitems.Parser
	now    func() time.Time

	dispatch map[entities.ActionKind]actionHandler
	locks    sync.Map // conversation id -> *sync.Mutex
}

var _ IConversationUseCase = (*ConversationUseCase)(nil)

func NewConversationUseCase(
	sessions interfaces.ISessionRepository,
	extractor interfaces.IDetailExtractor,
	customers interfaces.ICustomerDirectory,
	renderer interfaces.IDocumentRenderer,
	parserOpts lineitems.Options,
) *ConversationUseCase {
	u := &ConversationUseCase{
		sessions:  sessions,
		extractor: extractor,
		customers: customers,
		renderer:  renderer,
		parser:    lineitems.NewParser(parserOpts),
		now:       time.Now,
	}
	u.dispatch = map[entities.ActionKind]actionHandler{
		entities.ActionDocType:        u.onDocType,
		entities.ActionSkipField:      u.onSkipField,
		entities.ActionReviewOK:       u.onReviewOK,
		entities.ActionReviewEdit:     u.onReviewEdit,
		entities.ActionCompany:        u.onCompany,
		entities.ActionCustomerUse:    u.onCustomerUse,
		entities.ActionCustomerNew:    u.onCustomerNew,
		entities.ActionNameConfirm:    u.onNameConfirm,
		entities.ActionNameReject:     u.onNameReject,
		entities.ActionClarifyTotal:   u.onClarifyTotal,
		entities.ActionClarifyPer:     u.onClarifyPer,
		entities.ActionRentalPeriod:   u.onRentalPeriod,
		entities.ActionContractPeriod: u.onContractPeriod,
		entities.ActionFeePrice:       u.onFeePrice,
		entities.ActionFeeIncluded:    u.onFeeIncluded,
		entities.ActionFeeExcluded:    u.onFeeExcluded,
		entities.ActionEquipToggle:    u.onEquipToggle,
		entities.ActionEquipOther:     u.onEquipOther,
		entities.ActionEquipDone:      u.onEquipDone,
		entities.ActionLorryType:      u.onLorryType,
		entities.ActionServiceCat:     u.onServiceCat,
		entities.ActionServiceBack:    u.onServiceBack,
		entities.ActionServiceToggle:  u.onServiceToggle,
		entities.ActionServiceOther:   u.onServiceOther,
		entities.ActionServiceDone:    u.onServiceDone,
		entities.ActionPhasesYes:      u.onPhasesYes,
		entities.ActionPhasesNo:       u.onPhasesNo,
		entities.ActionPhaseAdd:       u.onPhaseAdd,
		entities.ActionPhaseBalance:   u.onPhaseBalance,
		entities.ActionEditField:      u.onEdit,
		entities.ActionEditDone:       u.onEditDone,
		entities.ActionRemoveItem:     u.onRemoveItem,
		entities.ActionRemoveDone:     u.onRemoveDone,
		entities.ActionGenerate:       u.onGenerate,
		entities.ActionResend:         u.onGenerate,
		entities.ActionStartNew:       u.onStartNew,
		entities.ActionBack:           u.onBack,
	}
	return u
}

// lock serializes events per conversation so concurrent webhooks cannot
// interleave draft mutations.
func (u *ConversationUseCase) lock(conversationID string) func() {
	v, _ := u.locks.LoadOrStore(conversationID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (u *ConversationUseCase) loadDraft(ctx context.Context, conversationID string) (*entities.Draft, error) {
	d, err := u.sessions.Get(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if d.ConversationID == "" {
		return entities.NewDraft(conversationID), nil
	}
	return &d, nil
}

func (u *ConversationUseCase) save(ctx context.Context, d *entities.Draft) error {
	if err := u.sessions.Put(ctx, *d); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (u *ConversationUseCase) HandleText(ctx context.Context, conversationID, text string) (entities.Prompt, error) {
	conversationID = strings.TrimSpace(conversationID)
	if conversationID == "" {
		return entities.Prompt{}, ErrInvalidConversationID
	}
	unlock := u.lock(conversationID)
	defer unlock()

	d, err := u.loadDraft(ctx, conversationID)
	if err != nil {
		return entities.Prompt{}, err
	}
	p := u.handleText(ctx, d, strings.TrimSpace(text))
	if err := u.save(ctx, d); err != nil {
		return entities.Prompt{}, err
	}
	return p, nil
}

func (u *ConversationUseCase) HandleImage(ctx context.Context, conversationID string, image []byte, mimeType string) (entities.Prompt, error) {
	conversationID = strings.TrimSpace(conversationID)
	if conversationID == "" {
		return entities.Prompt{}, ErrInvalidConversationID
	}
	unlock := u.lock(conversationID)
	defer unlock()

	d, err := u.loadDraft(ctx, conversationID)
	if err != nil {
		return entities.Prompt{}, err
	}

	ext, err := u.extractImage(ctx, image, mimeType)
	if err != nil {
		log.Printf("[conversation][handle_image] extraction error conversation_id=%s err=%v", conversationID, err)
	}
	if ext.Empty() {
		p := entities.Prompt{
			Text:  "I couldn't read any details from that image. Please type the details instead.",
			State: d.State,
		}
		return p, u.save(ctx, d)
	}

	u.mergeExtracted(d, ext, true)
	p := u.reviewPrompt(d, ext)
	if err := u.save(ctx, d); err != nil {
		return entities.Prompt{}, err
	}
	return p, nil
}

func (u *ConversationUseCase) HandleAction(ctx context.Context, conversationID, token string) (entities.Prompt, error) {
	conversationID = strings.TrimSpace(conversationID)
	if conversationID == "" {
		return entities.Prompt{}, ErrInvalidConversationID
	}
	action, err := entities.ParseAction(token)
	if err != nil {
		return entities.Prompt{}, err
	}
	handler, found := u.dispatch[action.Kind]
	if !found {
		return entities.Prompt{}, fmt.Errorf("%w: %s", ErrUnknownAction, action.Kind)
	}

	unlock := u.lock(conversationID)
	defer unlock()

	d, err := u.loadDraft(ctx, conversationID)
	if err != nil {
		return entities.Prompt{}, err
	}

	p, err := handler(ctx, d, action.Arg)
	if err != nil {
		// The draft is not saved on a failed dispatch, so the persisted
		// state is exactly what it was before the event.
		return entities.Prompt{}, err
	}
	if err := u.save(ctx, d); err != nil {
		return entities.Prompt{}, err
	}
	return p, nil
}

func (u *ConversationUseCase) Reset(ctx context.Context, conversationID string) (entities.Prompt, error) {
	conversationID = strings.TrimSpace(conversationID)
	if conversationID == "" {
		return entities.Prompt{}, ErrInvalidConversationID
	}
	unlock := u.lock(conversationID)
	defer unlock()

	if err := u.sessions.Delete(ctx, conversationID); err != nil {
		return entities.Prompt{}, fmt.Errorf("delete session: %w", err)
	}
	log.Printf("[conversation][reset] conversation_id=%s", conversationID)
	return entities.Prompt{
		Text:  "Draft discarded. Send a message to start a new quotation.",
		State: entities.StateStart,
	}, nil
}

// ---- free text ----

func (u *ConversationUseCase) handleText(ctx context.Context, d *entities.Draft, text string) entities.Prompt {
	if text == "" {
		return u.resolve(ctx, d)
	}

	switch d.State {
	case entities.StateStart, "", entities.StateAwaitingDocType:
		return u.handleInitialText(ctx, d, text)

	case entities.StateAwaitingField:
		return u.handleFieldInput(ctx, d, text)

	case entities.StateAwaitingRentalStart:
		t, res := validation.Date(text)
		if !res.OK {
			return entities.Prompt{Text: res.Err, State: d.State}
		}
		d.RentalStartDate = t.Format("2006-01-02")
		return u.resolve(ctx, d)

	case entities.StateAwaitingRentalEnd:
		t, res := validation.Date(text)
		if !res.OK {
			return entities.Prompt{Text: res.Err, State: d.State}
		}
		start, _ := time.Parse("2006-01-02", d.RentalStartDate)
		if t.Before(start) {
			return entities.Prompt{Text: "The end date cannot be before the start date.", State: d.State}
		}
		d.RentalEndDate = t.Format("2006-01-02")
		// Both endpoints count: a same-day rental is 1 day.
		d.RentalDays = int(t.Sub(start).Hours()/24) + 1
		return u.resolve(ctx, d)

	case entities.StateAwaitingFeePrice:
		price, res := validation.Price(text)
		if !res.OK {
			return entities.Prompt{Text: res.Err, State: d.State}
		}
		if kind, found := currentFee(d); found {
			d.SetFee(kind, entities.FeeState{Amount: &price})
		}
		return u.advanceFeeQueue(d)

	case entities.StateAwaitingLorryPrice:
		price, res := validation.Price(text)
		if !res.OK {
			return entities.Prompt{Text: res.Err, State: d.State}
		}
		desc := d.LorrySaleDescription
		if desc == "" {
			desc = "Lorry Sale"
		}
		d.LineItems = append(d.LineItems, entities.LineItem{
			Qty: 1, Description: desc, UnitPrice: price, GLCode: "500-000",
		})
		d.LorryItemCreated = true
		RecalculatePhases(d)
		return u.resolve(ctx, d)

	case entities.StateAwaitingServicePrice:
		price, res := validation.Price(text)
		if !res.OK {
			return entities.Prompt{Text: res.Err, State: d.State}
		}
		return u.recordServicePrice(d, price)

	case entities.StateAwaitingServiceName:
		name := strings.TrimSpace(text)
		if name == "" {
			return entities.Prompt{Text: "Service name cannot be empty.", State: d.State}
		}
		d.SelectedServices = append(d.SelectedServices, name)
		return u.promptServicePrice(d, name)

	case entities.StateAwaitingEquipmentName:
		name := strings.TrimSpace(text)
		if name == "" {
			return entities.Prompt{Text: "Equipment name cannot be empty.", State: d.State}
		}
		d.SelectedEquipment = append(d.SelectedEquipment, name)
		d.State = entities.StateSelectingEquipment
		return equipmentPrompt(d)

	case entities.StateCollectingPhase:
		amount, remarks, res := parsePhaseInput(text)
		if !res.OK {
			return entities.Prompt{Text: res.Err, State: d.State}
		}
		if d.PaymentPhaseCounter < 1 {
			d.PaymentPhaseCounter = 1
		}
		d.PaymentPhases = append(d.PaymentPhases, entities.PaymentPhase{
			Name:    fmt.Sprintf("%s Payment", ToOrdinal(d.PaymentPhaseCounter)),
			Amount:  amount,
			Remarks: remarks,
		})
		d.PaymentPhaseCounter++
		d.State = entities.StateReviewingPhases
		return u.phaseReviewPrompt(d)

	case entities.StateEditingField:
		return u.handleEditInput(ctx, d, text)

	case entities.StatePostCompletion:
		return u.handlePostCompletionText(ctx, d, text)

	default:
		return u.resolve(ctx, d)
	}
}

// handleInitialText runs the opening free-text through keyword matching and
// AI extraction, then shows the review summary when anything was recognized.
func (u *ConversationUseCase) handleInitialText(ctx context.Context, d *entities.Draft, text string) entities.Prompt {
	if d.DocType == "" {
		d.DocType = docTypeFromKeywords(text)
	}

	ext, err := u.extractText(ctx, text)
	if err != nil {
		log.Printf("[conversation][handle_text] extraction error conversation_id=%s err=%v", d.ConversationID, err)
	}
	if ext.Empty() {
		return u.resolve(ctx, d)
	}

	u.mergeExtracted(d, ext, false)
	return u.reviewPrompt(d, ext)
}

func (u *ConversationUseCase) searchCustomers(ctx context.Context, name string) ([]entities.CustomerMatch, error) {
	if u.customers == nil {
		return nil, nil
	}
	return u.customers.SearchByName(ctx, name)
}

// extractText and extractImage tolerate a missing extractor: without one the
// conversation still works, it just asks for every field.
func (u *ConversationUseCase) extractText(ctx context.Context, text string) (entities.ExtractedDetails, error) {
	if u.extractor == nil {
		return entities.ExtractedDetails{}, nil
	}
	return u.extractor.ExtractFromText(ctx, text)
}

func (u *ConversationUseCase) extractImage(ctx context.Context, image []byte, mimeType string) (entities.ExtractedDetails, error) {
	if u.extractor == nil {
		return entities.ExtractedDetails{}, nil
	}
	return u.extractor.ExtractFromImage(ctx, image, mimeType)
}

func docTypeFromKeywords(text string) entities.DocType {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "rental"), strings.Contains(lower, "rent"):
		return entities.DocTypeRental
	case strings.Contains(lower, "refurbish"), strings.Contains(lower, "repair"):
		return entities.DocTypeRefurbish
	case strings.Contains(lower, "sale"), strings.Contains(lower, "sell"):
		return entities.DocTypeSale
	}
	return ""
}

func (u *ConversationUseCase) handleFieldInput(ctx context.Context, d *entities.Draft, text string) entities.Prompt {
	f := d.WaitingForField
	if f == "" {
		return u.resolve(ctx, d)
	}

	if f == entities.FieldLineItems {
		items := u.parser.Parse(text)
		if len(items) == 0 {
			return entities.Prompt{
				Text:  "I couldn't find any items in that. Send one item per line, each ending with its price.",
				State: d.State,
			}
		}
		d.LineItems = append(d.LineItems, items...)
		d.WaitingForField = ""
		RecalculatePhases(d)
		return u.resolve(ctx, d)
	}

	if msg := setScalarField(d, f, text); msg != "" {
		return entities.Prompt{Text: msg, State: d.State}
	}
	d.WaitingForField = ""
	return u.resolve(ctx, d)
}

// setScalarField validates and stores one scalar field, returning a
// user-facing message on rejection.
func setScalarField(d *entities.Draft, f entities.Field, text string) string {
	text = strings.TrimSpace(text)

	switch f {
	case entities.FieldCustomerName:
		if text == "" {
			return "Customer name cannot be empty."
		}
		d.CustomerName = text
		d.CustomerChecked = false
		d.MatchedCustomerName = ""
	case entities.FieldCustomerAddress:
		if text == "" {
			return "Address cannot be empty (use Skip to leave it blank)."
		}
		d.CustomerAddress = text
	case entities.FieldCustomerContact:
		v, res := validation.PhoneNumber(text)
		if !res.OK {
			return res.Err
		}
		d.CustomerContact = v
	case entities.FieldSalesperson:
		if text == "" {
			return "Salesperson cannot be empty (use Skip to leave it blank)."
		}
		d.Salesperson = text
	case entities.FieldTruckNumber:
		v, res := validation.TruckNumber(text)
		if !res.OK {
			return res.Err
		}
		d.TruckNumber = v
	case entities.FieldBodyType:
		if text == "" {
			return "Body type cannot be empty (use Skip to leave it blank)."
		}
		d.BodyType = text
	case entities.FieldContractPeriod:
		if text == "" {
			return "Contract period cannot be empty."
		}
		d.ContractPeriod = text
	case entities.FieldRentalAmount:
		price, res := validation.Price(text)
		if !res.OK {
			return res.Err
		}
		d.RentalAmount = &price
		RecalculatePhases(d)
	case entities.FieldSecurityDeposit:
		price, res := validation.Price(text)
		if !res.OK {
			return res.Err
		}
		d.SecurityDeposit = &price
		RecalculatePhases(d)
	default:
		return "I wasn't expecting that input here."
	}
	return ""
}

func (u *ConversationUseCase) handlePostCompletionText(ctx context.Context, d *entities.Draft, text string) entities.Prompt {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "edit"):
		return u.editMenuPrompt(d)
	case strings.Contains(lower, "resend"):
		p, _ := u.onGenerate(ctx, d, "")
		return p
	case strings.Contains(lower, "new"):
		p, _ := u.onStartNew(ctx, d, "")
		return p
	}
	p := entities.Prompt{Text: "The document is done. What next?", State: d.State}
	p = p.WithAction("Edit", entities.Action{Kind: entities.ActionReviewEdit})
	p = p.WithAction("Resend", entities.Action{Kind: entities.ActionResend})
	p = p.WithAction("Start New", entities.Action{Kind: entities.ActionStartNew})
	return p
}

// ---- extraction merge / review ----

// mergeExtracted folds AI-extracted details into the draft. Extracted values
// overwrite what they name; a company name read off an image is parked in
// the extracted-company slot until the resolver confirms it.
func (u *ConversationUseCase) mergeExtracted(d *entities.Draft, ext entities.ExtractedDetails, fromImage bool) {
	if d.DocType == "" {
		d.DocType = docTypeFromKeywords(ext.DocType)
	}

	if ext.CustomerName != "" {
		if fromImage {
			d.ExtractedCompanyName = ext.CustomerName
			d.ExtractedCompanyAddress = ext.CustomerAddress
		} else {
			d.CustomerName = ext.CustomerName
			d.CustomerChecked = false
		}
	}
	if ext.CustomerAddress != "" && !fromImage {
		d.CustomerAddress = ext.CustomerAddress
	}
	if ext.CustomerContact != "" {
		if v, res := validation.PhoneNumber(ext.CustomerContact); res.OK {
			d.CustomerContact = v
		}
	}
	if ext.Salesperson != "" {
		d.Salesperson = ext.Salesperson
	}
	if ext.TruckNumber != "" {
		if v, res := validation.TruckNumber(ext.TruckNumber); res.OK {
			d.TruckNumber = v
		}
	}
	if ext.BodyType != "" {
		d.BodyType = ext.BodyType
	}

	switch ext.RentalPeriodType {
	case string(entities.PeriodMonthly):
		d.RentalPeriodType = entities.PeriodMonthly
	case string(entities.PeriodDaily):
		d.RentalPeriodType = entities.PeriodDaily
	}
	if ext.ContractPeriod != "" {
		d.ContractPeriod = ext.ContractPeriod
	}
	if ext.RentalAmount != nil {
		d.RentalAmount = ext.RentalAmount
	}
	if ext.SecurityDeposit != nil {
		d.SecurityDeposit = ext.SecurityDeposit
	}
	for k, amount := range ext.FeeAmounts {
		kind := entities.FeeKind(k)
		for _, known := range entities.FeeOrder {
			if kind == known {
				a := amount
				d.SetFee(kind, entities.FeeState{Amount: &a})
				break
			}
		}
	}

	for _, it := range ext.LineItems {
		if it.Qty < 1 {
			it.Qty = 1
		}
		if it.GLCode == "" {
			it.GLCode = lineitems.GLCodeFor(it.Description)
		}
		d.LineItems = append(d.LineItems, it)
		if it.Qty > 1 {
			d.ItemsToClarify = append(d.ItemsToClarify, len(d.LineItems)-1)
		}
	}
	RecalculatePhases(d)
}

func (u *ConversationUseCase) reviewPrompt(d *entities.Draft, ext entities.ExtractedDetails) entities.Prompt {
	u.transition(d, entities.StateReviewingExtracted)

	var b strings.Builder
	b.WriteString("Here is what I picked up:\n")
	if ext.DocType != "" {
		fmt.Fprintf(&b, "- Type: %s\n", ext.DocType)
	}
	if ext.CustomerName != "" {
		fmt.Fprintf(&b, "- Customer: %s\n", ext.CustomerName)
	}
	if ext.CustomerAddress != "" {
		fmt.Fprintf(&b, "- Address: %s\n", ext.CustomerAddress)
	}
	if ext.CustomerContact != "" {
		fmt.Fprintf(&b, "- Contact: %s\n", ext.CustomerContact)
	}
	if ext.TruckNumber != "" {
		fmt.Fprintf(&b, "- Truck: %s\n", ext.TruckNumber)
	}
	if ext.BodyType != "" {
		fmt.Fprintf(&b, "- Body: %s\n", ext.BodyType)
	}
	if ext.Salesperson != "" {
		fmt.Fprintf(&b, "- Salesperson: %s\n", ext.Salesperson)
	}
	for _, it := range ext.LineItems {
		fmt.Fprintf(&b, "- Item: %d x %s @ RM %.2f\n", max(it.Qty, 1), it.Description, it.UnitPrice)
	}
	b.WriteString("\nShall I continue with these?")

	p := entities.Prompt{Text: b.String(), State: d.State}
	p = p.WithAction("Looks Good", entities.Action{Kind: entities.ActionReviewOK})
	p = p.WithAction("Edit", entities.Action{Kind: entities.ActionReviewEdit})
	return p
}

// ---- action handlers ----

func (u *ConversationUseCase) onDocType(ctx context.Context, d *entities.Draft, arg string) (entities.Prompt, error) {
	base, variant, _ := strings.Cut(arg, ":")
	switch entities.DocType(base) {
	case entities.DocTypeSale, entities.DocTypeRental, entities.DocTypeRefurbish:
		d.DocType = entities.DocType(base)
	default:
		return entities.Prompt{}, fmt.Errorf("%w: doc_type %q", ErrUnknownAction, arg)
	}
	d.IsProforma = variant == "proforma"
	return u.resolve(ctx, d), nil
}

func (u *ConversationUseCase) onSkipField(ctx context.Context, d *entities.Draft, _ string) (entities.Prompt, error) {
	switch d.WaitingForField {
	case "":
	case entities.FieldRentalAmount:
		zero := 0.0
		d.RentalAmount = &zero
	case entities.FieldSecurityDeposit:
		zero := 0.0
		d.SecurityDeposit = &zero
	case entities.FieldCustomerName:
		d.CustomerName = entities.SkipSentinel
		d.CustomerChecked = true
	default:
		setScalarRaw(d, d.WaitingForField, entities.SkipSentinel)
	}
	d.WaitingForField = ""
	return u.resolve(ctx, d), nil
}

// setScalarRaw stores a value bypassing validation, used for skip sentinels.
func setScalarRaw(d *entities.Draft, f entities.Field, v string) {
	switch f {
	case entities.FieldCustomerAddress:
		d.CustomerAddress = v
	case entities.FieldCustomerContact:
		d.CustomerContact = v
	case entities.FieldSalesperson:
		d.Salesperson = v
	case entities.FieldTruckNumber:
		d.TruckNumber = v
	case entities.FieldBodyType:
		d.BodyType = v
	case entities.FieldContractPeriod:
		d.ContractPeriod = v
	}
}

func (u *ConversationUseCase) onReviewOK(ctx context.Context, d *entities.Draft, _ string) (entities.Prompt, error) {
	return u.resolve(ctx, d), nil
}

func (u *ConversationUseCase) onReviewEdit(_ context.Context, d *entities.Draft, _ string) (entities.Prompt, error) {
	return u.editMenuPrompt(d), nil
}

func (u *ConversationUseCase) onCompany(ctx context.Context, d *entities.Draft, arg string) (entities.Prompt, error) {
	name := strings.ToUpper(strings.TrimSpace(arg))
	if name == "" {
		return entities.Prompt{}, fmt.Errorf("%w: empty company", ErrUnknownAction)
	}
	if c, found := companies.ByName(name); found {
		name = c.Name
	}
	d.IssuingCompany = name
	return u.resolve(ctx, d), nil
}

func (u *ConversationUseCase) onCustomerUse(ctx context.Context, d *entities.Draft, arg string) (entities.Prompt, error) {
	name := strings.TrimSpace(arg)
	matches, err := u.searchCustomers(ctx, name)
	if err != nil {
		log.Printf("[conversation][customer_use] directory error conversation_id=%s err=%v", d.ConversationID, err)
	}
	for _, m := range matches {
		if m.Name != name {
			continue
		}
		d.CustomerName = m.Name
		if m.Address != "" {
			d.CustomerAddress = m.Address
		}
		if m.Contact != "" {
			d.CustomerContact = m.Contact
		}
		break
	}
	d.MatchedCustomerName = name
	d.CustomerChecked = true
	return u.resolve(ctx, d), nil
}

func (u *ConversationUseCase) onCustomerNew(ctx context.Context, d *entities.Draft, _ string) (entities.Prompt, error) {
	d.CustomerChecked = true
	return u.resolve(ctx, d), nil
}

func (u *ConversationUseCase) onNameConfirm(ctx context.Context, d *entities.Draft, _ string) (entities.Prompt, error) {
	if d.ExtractedCompanyName != "" {
		d.CustomerName = d.ExtractedCompanyName
		d.CustomerChecked = false
		if d.CustomerAddress == "" && d.ExtractedCompanyAddress != "" {
			d.CustomerAddress = d.ExtractedCompanyAddress
		}
	}
	d.ExtractedCompanyName = ""
	d.ExtractedCompanyAddress = ""
	return u.resolve(ctx, d), nil
}

func (u *ConversationUseCase) onNameReject(ctx context.Context, d *entities.Draft, _ string) (entities.Prompt, error) {
	d.ExtractedCompanyName = ""
	d.ExtractedCompanyAddress = ""
	return u.resolve(ctx, d), nil
}

func (u *ConversationUseCase) onClarifyTotal(ctx context.Context, d *entities.Draft, arg string) (entities.Prompt, error) {
	return u.clarify(ctx, d, arg, true)
}

func (u *ConversationUseCase) onClarifyPer(ctx context.Context, d *entities.Draft, arg string) (entities.Prompt, error) {
	return u.clarify(ctx, d, arg, false)
}

func (u *ConversationUseCase) clarify(ctx context.Context, d *entities.Draft, arg string, isTotal bool) (entities.Prompt, error) {
	idx, err := strconv.Atoi(arg)
	if err != nil || idx < 0 || idx >= len(d.LineItems) {
		return entities.Prompt{}, fmt.Errorf("%w: clarify index %q", ErrUnknownAction, arg)
	}
	if isTotal {
		qty := d.LineItems[idx].Qty
		if qty < 1 {
			qty = 1
		}
		d.LineItems[idx].UnitPrice /= float64(qty)
	}
	remaining := d.ItemsToClarify[:0]
	for _, i := range d.ItemsToClarify {
		if i != idx {
			remaining = append(remaining, i)
		}
	}
	d.ItemsToClarify = remaining
	RecalculatePhases(d)
	return u.resolve(ctx, d), nil
}

func (u *ConversationUseCase) onRentalPeriod(ctx context.Context, d *entities.Draft, arg string) (entities.Prompt, error) {
	switch entities.PeriodType(arg) {
	case entities.PeriodMonthly, entities.PeriodDaily:
		d.RentalPeriodType = entities.PeriodType(arg)
	default:
		return entities.Prompt{}, fmt.Errorf("%w: rental period %q", ErrUnknownAction, arg)
	}
	return u.resolve(ctx, d), nil
}

func (u *ConversationUseCase) onContractPeriod(ctx context.Context, d *entities.Draft, arg string) (entities.Prompt, error) {
	if arg == "other" {
		u.transition(d, entities.StateAwaitingField)
		d.WaitingForField = entities.FieldContractPeriod
		return entities.Prompt{Text: "Type the contract period (e.g. 18 Months):", State: d.State}, nil
	}
	d.ContractPeriod = arg
	return u.resolve(ctx, d), nil
}

func (u *ConversationUseCase) onFeePrice(_ context.Context, d *entities.Draft, arg string) (entities.Prompt, error) {
	kind := entities.FeeKind(arg)
	if kind == entities.FeeInspection {
		// PUSPAKOM is a statutory flat fee.
		price := inspectionFixedPrice
		d.SetFee(kind, entities.FeeState{Amount: &price})
		return u.advanceFeeQueue(d), nil
	}
	u.transition(d, entities.StateAwaitingFeePrice)
	text := fmt.Sprintf("Enter the price for %s:", feeLabels[kind])
	if kind == entities.FeeAgreement {
		text = fmt.Sprintf("Enter the price for %s (standard is RM %.0f):", feeLabels[kind], 500.0)
	}
	return entities.Prompt{Text: text, State: d.State}, nil
}

func (u *ConversationUseCase) onFeeIncluded(_ context.Context, d *entities.Draft, arg string) (entities.Prompt, error) {
	zero := 0.0
	d.SetFee(entities.FeeKind(arg), entities.FeeState{Amount: &zero})
	return u.advanceFeeQueue(d), nil
}

func (u *ConversationUseCase) onFeeExcluded(_ context.Context, d *entities.Draft, arg string) (entities.Prompt, error) {
	d.SetFee(entities.FeeKind(arg), entities.FeeState{Excluded: true})
	return u.advanceFeeQueue(d), nil
}

func (u *ConversationUseCase) onEquipToggle(_ context.Context, d *entities.Draft, arg string) (entities.Prompt, error) {
	return u.handleEquipToggle(d, arg), nil
}

func (u *ConversationUseCase) onEquipOther(_ context.Context, d *entities.Draft, _ string) (entities.Prompt, error) {
	u.transition(d, entities.StateAwaitingEquipmentName)
	return entities.Prompt{Text: "Type the equipment name:", State: d.State}, nil
}

func (u *ConversationUseCase) onEquipDone(ctx context.Context, d *entities.Draft, _ string) (entities.Prompt, error) {
	d.EquipmentCollected = true
	return u.resolve(ctx, d), nil
}

func (u *ConversationUseCase) onLorryType(ctx context.Context, d *entities.Draft, arg string) (entities.Prompt, error) {
	d.LorrySaleDescription = strings.TrimSpace(arg)
	if len(d.LineItems) > 0 {
		// The price is already on the item; the sale type only pins its
		// description.
		d.LineItems[0].Description = d.LorrySaleDescription
		d.LorryItemCreated = true
		return u.resolve(ctx, d), nil
	}
	u.transition(d, entities.StateAwaitingLorryPrice)
	return entities.Prompt{
		Text:  fmt.Sprintf("Enter the price for the %s:", d.LorrySaleDescription),
		State: d.State,
	}, nil
}

func (u *ConversationUseCase) onServiceCat(_ context.Context, d *entities.Draft, arg string) (entities.Prompt, error) {
	return u.handleServiceCat(d, arg), nil
}

func (u *ConversationUseCase) onServiceBack(_ context.Context, d *entities.Draft, _ string) (entities.Prompt, error) {
	return u.handleServiceBack(d), nil
}

func (u *ConversationUseCase) onServiceToggle(_ context.Context, d *entities.Draft, arg string) (entities.Prompt, error) {
	return u.handleServiceToggle(d, arg), nil
}

func (u *ConversationUseCase) onServiceOther(_ context.Context, d *entities.Draft, _ string) (entities.Prompt, error) {
	return u.handleServiceOther(d), nil
}

func (u *ConversationUseCase) onServiceDone(ctx context.Context, d *entities.Draft, _ string) (entities.Prompt, error) {
	return u.handleServiceDone(ctx, d), nil
}

func (u *ConversationUseCase) onPhasesYes(_ context.Context, d *entities.Draft, _ string) (entities.Prompt, error) {
	d.PaymentPhases = nil
	d.PaymentPhaseCounter = 1
	return u.phasePrompt(d), nil
}

func (u *ConversationUseCase) onPhasesNo(ctx context.Context, d *entities.Draft, _ string) (entities.Prompt, error) {
	d.PaymentPhasesComplete = true
	return u.resolve(ctx, d), nil
}

func (u *ConversationUseCase) onPhaseAdd(_ context.Context, d *entities.Draft, _ string) (entities.Prompt, error) {
	return u.phasePrompt(d), nil
}

func (u *ConversationUseCase) onPhaseBalance(ctx context.Context, d *entities.Draft, _ string) (entities.Prompt, error) {
	AddFinalBalance(d)
	d.PaymentPhasesComplete = true
	return u.resolve(ctx, d), nil
}

func (u *ConversationUseCase) onGenerate(ctx context.Context, d *entities.Draft, _ string) (entities.Prompt, error) {
	payload := BuildRenderPayload(d, u.now())
	if u.renderer == nil {
		log.Printf("[conversation][generate] no renderer configured conversation_id=%s doc_no=%s",
			d.ConversationID, payload.DocNo)
		p := entities.Prompt{
			Text:  "Document generation is not available right now. Your draft is untouched, you can retry later or edit it.",
			State: d.State,
		}
		p = p.WithAction("Retry", entities.Action{Kind: entities.ActionGenerate})
		p = p.WithAction("Edit", entities.Action{Kind: entities.ActionReviewEdit})
		return p, nil
	}
	result, err := u.renderer.Render(ctx, payload)
	if err != nil {
		log.Printf("[conversation][generate] render failed conversation_id=%s doc_no=%s err=%v",
			d.ConversationID, payload.DocNo, err)
		p := entities.Prompt{
			Text:  fmt.Sprintf("Document generation failed: %v\nYour draft is untouched, you can retry or edit it.", err),
			State: d.State,
		}
		p = p.WithAction("Retry", entities.Action{Kind: entities.ActionGenerate})
		p = p.WithAction("Edit", entities.Action{Kind: entities.ActionReviewEdit})
		return p, nil
	}

	log.Printf("[conversation][generate] document ready conversation_id=%s doc_no=%s", d.ConversationID, payload.DocNo)
	u.transition(d, entities.StatePostCompletion)
	p := entities.Prompt{
		Text:        fmt.Sprintf("Your document %s is ready.", payload.DocNo),
		State:       d.State,
		ArtifactRef: result.ArtifactRef,
	}
	p = p.WithAction("Edit", entities.Action{Kind: entities.ActionReviewEdit})
	p = p.WithAction("Resend", entities.Action{Kind: entities.ActionResend})
	p = p.WithAction("Start New", entities.Action{Kind: entities.ActionStartNew})
	return p, nil
}

func (u *ConversationUseCase) onStartNew(ctx context.Context, d *entities.Draft, _ string) (entities.Prompt, error) {
	*d = *entities.NewDraft(d.ConversationID)
	return u.resolve(ctx, d), nil
}

func (u *ConversationUseCase) onBack(ctx context.Context, d *entities.Draft, _ string) (entities.Prompt, error) {
	popState(d)
	return u.promptForState(ctx, d), nil
}

// promptForState re-renders the question for the draft's current state,
// used after Back unwinds the history.
func (u *ConversationUseCase) promptForState(ctx context.Context, d *entities.Draft) entities.Prompt {
	switch d.State {
	case entities.StateAwaitingDocType:
		return docTypePrompt(d)
	case entities.StateAwaitingField:
		if d.WaitingForField != "" {
			return fieldPrompt(d, d.WaitingForField)
		}
	case entities.StateAwaitingFeeChoice:
		return feePrompt(d)
	case entities.StateSelectingEquipment:
		return equipmentPrompt(d)
	case entities.StateSelectingMainServices, entities.StateSelectingAdditionalServices:
		return u.pickerReturnPrompt(d)
	case entities.StateSelectingFieldToEdit:
		return u.editMenuPrompt(d)
	case entities.StateConfirmingDetails:
		return u.confirmationPrompt(d)
	}
	return u.resolve(ctx, d)
}
