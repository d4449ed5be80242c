package interaction

import (
	"errors"
	"sync"
	"testing"
)

func completeFields() map[string]string {
	return map[string]string{
		FieldAmount:     " 0.01 ",
		FieldLTCAddress: "LTC1abc...",
		FieldPayPayLink: "https://pay.paypay/x",
	}
}

func TestCashFormSubmitOnce(t *testing.T) {
	f := NewCashForm()
	if f.State() != FormPresented {
		t.Fatalf("new form should be presented, got %v", f.State())
	}
	sub, err := f.Submit("<@1>", completeFields(), "42")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if sub.ChannelID != "42" {
		t.Fatalf("unexpected target channel: %s", sub.ChannelID)
	}
	if sub.Embed.Fields[1].Value != "0.01 LTC" {
		t.Fatalf("amount should be trimmed, got %q", sub.Embed.Fields[1].Value)
	}
	if f.State() != FormSubmitted {
		t.Fatal("form should be submitted")
	}
	if _, err := f.Submit("<@1>", completeFields(), "42"); !errors.Is(err, ErrFormSubmitted) {
		t.Fatalf("second submit should fail with ErrFormSubmitted, got %v", err)
	}
}

func TestCashFormValidationKeepsPresented(t *testing.T) {
	f := NewCashForm()
	fields := completeFields()
	delete(fields, FieldPayPayLink)

	_, err := f.Submit("<@1>", fields, "42")
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != FieldPayPayLink {
		t.Fatalf("expected validation error on %s, got %v", FieldPayPayLink, err)
	}
	if f.State() != FormPresented {
		t.Fatal("failed validation must not consume the form")
	}
}

func TestParseCashFormRoundTrip(t *testing.T) {
	f := NewCashForm()
	got, err := ParseCashForm(f.CustomID())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Instance() != f.Instance() {
		t.Fatalf("instance mismatch: %s vs %s", got.Instance(), f.Instance())
	}
}

func TestParseCashFormRejectsGarbage(t *testing.T) {
	for _, id := range []string{"", "cash_button", CashModalPrefix, CashModalPrefix + "not-a-uuid"} {
		if _, err := ParseCashForm(id); err == nil {
			t.Errorf("expected error for %q", id)
		}
	}
}

func TestCashFormModalFieldsRequired(t *testing.T) {
	m := NewCashForm().Modal()
	if len(m.Fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(m.Fields))
	}
	want := []string{FieldAmount, FieldLTCAddress, FieldPayPayLink}
	for i, fld := range m.Fields {
		if fld.ID != want[i] || !fld.Required {
			t.Errorf("field %d = %+v", i, fld)
		}
	}
}

func TestPanelRegistryConcurrentRegister(t *testing.T) {
	reg := NewPanelRegistry()
	var wg sync.WaitGroup
	added := make(chan bool, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			added <- reg.Register(CashPanel(), nil)
		}()
	}
	wg.Wait()
	close(added)

	wins := 0
	for ok := range added {
		if ok {
			wins++
		}
	}
	if wins != 1 || reg.Len() != 1 {
		t.Fatalf("expected exactly one registration, got wins=%d len=%d", wins, reg.Len())
	}
}
