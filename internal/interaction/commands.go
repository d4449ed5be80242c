package interaction

import "github.com/mume-dayo/kato-daikou/internal/notice"

// Command names. They are registered with the platform once per startup.
const (
	CmdSetupCashPanel   = "setup_cash_panel"
	CmdConnectPayPay    = "connect_paypay"
	CmdStakeCooperation = "stake_cooperation"
)

// OptionType is the declared type of a command parameter.
type OptionType int

const (
	OptionString OptionType = iota + 1
	OptionInteger
)

// OptionDescriptor declares one command parameter.
type OptionDescriptor struct {
	Name        string
	Description string
	Type        OptionType
	Required    bool
	// MinValue and MaxValue bound integer options when non-nil.
	MinValue *int
	MaxValue *int
}

// CommandDescriptor declares a slash command.
type CommandDescriptor struct {
	Name        string
	Description string
	Options     []OptionDescriptor
}

func intPtr(v int) *int { return &v }

// Commands returns the descriptors to register with the platform. The slice
// is freshly built on every call.
func Commands() []CommandDescriptor {
	return []CommandDescriptor{
		{
			Name:        CmdSetupCashPanel,
			Description: "換金パネルを設置します（管理者専用）",
		},
		{
			Name:        CmdConnectPayPay,
			Description: "デモ用の換金ログを指定チャンネルに投稿します（管理者専用）",
			Options: []OptionDescriptor{
				{Name: "user", Description: "表示する名前（@mentionでもOK）", Type: OptionString, Required: true},
				{Name: "amount", Description: "LTC金額", Type: OptionString, Required: true},
				{Name: "channel_id", Description: "送信先チャンネルID（IDで入力）", Type: OptionString, Required: true},
			},
		},
		{
			Name:        CmdStakeCooperation,
			Description: "デモ用の実績報告を投稿します（管理者専用）",
			Options: []OptionDescriptor{
				{Name: "user", Description: "対象ユーザー（名前や@mention）", Type: OptionString, Required: true},
				{Name: "title", Description: "実績タイトル", Type: OptionString, Required: true},
				{
					Name:        "rating",
					Description: "評価（1〜5）",
					Type:        OptionInteger,
					Required:    true,
					MinValue:    intPtr(notice.MinRating),
					MaxValue:    intPtr(notice.MaxRating),
				},
				{Name: "count", Description: "回数または個数", Type: OptionInteger, Required: true, MinValue: intPtr(0)},
			},
		},
	}
}

// LookupCommand returns the descriptor registered under name.
func LookupCommand(name string) (CommandDescriptor, bool) {
	for _, c := range Commands() {
		if c.Name == name {
			return c, true
		}
	}
	return CommandDescriptor{}, false
}
