package interaction

import (
	"strings"

	"github.com/google/uuid"

	"github.com/mume-dayo/kato-daikou/internal/notice"
)

// CashModalPrefix prefixes the custom id of every cash-out modal instance.
const CashModalPrefix = "cash_modal:"

// Cash-out form field ids.
const (
	FieldAmount      = "amount"
	FieldLTCAddress  = "ltc_address"
	FieldPayPayLink  = "paypay_link"
	cashModalTitle   = "LTC自動換金"
	cashFormMaxInput = 200
)

// FormState is the lifecycle state of a form instance.
type FormState int

const (
	FormPresented FormState = iota
	FormSubmitted
)

// CashForm is one presented cash-out form. A new instance is created for
// every button activation and it can be submitted once.
type CashForm struct {
	instance string
	state    FormState
}

// Submission is the result of a completed form: the notice and where it goes.
type Submission struct {
	ChannelID string
	Embed     notice.Embed
}

// NewCashForm creates a fresh form instance in the Presented state.
func NewCashForm() *CashForm {
	return &CashForm{instance: uuid.NewString()}
}

// ParseCashForm rebuilds the Presented form identified by a modal custom id.
func ParseCashForm(customID string) (*CashForm, error) {
	id, ok := strings.CutPrefix(customID, CashModalPrefix)
	if !ok {
		return nil, &ValidationError{Field: "custom_id", Reason: "not a cash-out form"}
	}
	if err := uuid.Validate(id); err != nil {
		return nil, &ValidationError{Field: "custom_id", Reason: "malformed form instance"}
	}
	return &CashForm{instance: id}, nil
}

// IsCashForm reports whether customID belongs to a cash-out modal.
func IsCashForm(customID string) bool {
	return strings.HasPrefix(customID, CashModalPrefix)
}

// Instance returns the form instance id.
func (f *CashForm) Instance() string { return f.instance }

// State returns the current lifecycle state.
func (f *CashForm) State() FormState { return f.state }

// CustomID returns the modal custom id that identifies this instance.
func (f *CashForm) CustomID() string { return CashModalPrefix + f.instance }

// Modal returns the three-field form to present.
func (f *CashForm) Modal() Modal {
	return Modal{
		CustomID: f.CustomID(),
		Title:    cashModalTitle,
		Fields: []ModalField{
			{ID: FieldAmount, Label: "LTC金額", Placeholder: "例: 0.01", Required: true, MaxLength: cashFormMaxInput},
			{ID: FieldLTCAddress, Label: "LTCアドレス", Placeholder: "LTCアドレス", Required: true, MaxLength: cashFormMaxInput},
			{ID: FieldPayPayLink, Label: "PayPayリンク", Placeholder: "https://pay.paypay", Required: true, MaxLength: cashFormMaxInput},
		},
	}
}

// Submit moves the form from Presented to Submitted and returns the notice
// for targetChannelID. Every field is required; nothing is defaulted. A
// failed validation leaves the form Presented.
func (f *CashForm) Submit(requesterMention string, values map[string]string, targetChannelID string) (Submission, error) {
	if f.state == FormSubmitted {
		return Submission{}, ErrFormSubmitted
	}
	amount, err := requiredValue(values, FieldAmount)
	if err != nil {
		return Submission{}, err
	}
	address, err := requiredValue(values, FieldLTCAddress)
	if err != nil {
		return Submission{}, err
	}
	link, err := requiredValue(values, FieldPayPayLink)
	if err != nil {
		return Submission{}, err
	}
	f.state = FormSubmitted
	return Submission{
		ChannelID: targetChannelID,
		Embed:     notice.CashRequest(requesterMention, amount, address, link),
	}, nil
}

func requiredValue(values map[string]string, field string) (string, error) {
	v := strings.TrimSpace(values[field])
	if v == "" {
		return "", &ValidationError{Field: field, Reason: "required"}
	}
	if len(v) > cashFormMaxInput {
		return "", &ValidationError{Field: field, Reason: "too long"}
	}
	return v, nil
}
