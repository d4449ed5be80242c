package interaction

import (
	"errors"
	"fmt"
)

// ErrFormSubmitted is returned when a form instance is submitted twice.
var ErrFormSubmitted = errors.New("form already submitted")

// ValidationError reports a parameter outside its declared domain.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ResolutionError reports a channel that could not be resolved.
type ResolutionError struct {
	ChannelID string
	Err       error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve channel %s: %v", e.ChannelID, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// DeliveryError reports an outbound send that failed.
type DeliveryError struct {
	ChannelID string
	Err       error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("send to channel %s: %v", e.ChannelID, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// failureMessage renders err as the private reply shown to the invoker.
func failureMessage(err error) string {
	var (
		verr *ValidationError
		rerr *ResolutionError
		derr *DeliveryError
	)
	switch {
	case errors.As(err, &verr):
		return fmt.Sprintf("❌ 入力が不正です (%s): %s", verr.Field, verr.Reason)
	case errors.As(err, &rerr):
		return fmt.Sprintf("❌ チャンネル取得に失敗: %v", rerr.Err)
	case errors.As(err, &derr):
		return fmt.Sprintf("❌ 送信に失敗しました: %v", derr.Err)
	case errors.Is(err, ErrFormSubmitted):
		return "❌ この申請はすでに送信されています。"
	default:
		return fmt.Sprintf("❌ エラーが発生しました: %v", err)
	}
}
