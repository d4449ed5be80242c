// Package notice builds the structured embed payloads the bot posts.
//
// Builders never fail: every value is validated before it reaches this
// package, and each template has a fixed title, color, field order and footer.
package notice

import (
	"strconv"
	"strings"
)

// Template identifies one of the fixed embed layouts.
type Template string

const (
	TemplateCashRequest     Template = "cash_request"
	TemplateDemoLog         Template = "fake_log"
	TemplateDemoAchievement Template = "fake_achievement"
	TemplatePanelIntro      Template = "panel_intro"
)

// Colors per template.
const (
	ColorCashRequest     = 0x00cc99
	ColorDemoLog         = 0xff9933
	ColorDemoAchievement = 0xf1c40f
	ColorPanelIntro      = 0x3399ff
)

// StarGlyph is repeated once per rating point.
const StarGlyph = "★"

// DemoFooter marks log and achievement notices as sample output. It cannot be
// overridden by callers.
const DemoFooter = "※デモ表示です。実際の取引・評価の記録ではありません。"

// Field is one name/value row of an embed.
type Field struct {
	Name   string
	Value  string
	Inline bool
}

// Embed is an immutable display payload. Build one with the template
// functions below and hand it to exactly one delivery call.
type Embed struct {
	Template    Template
	Title       string
	Description string
	Color       int
	Fields      []Field
	Footer      string
}

// CashRequest builds the notice posted when a cash-out form is submitted.
func CashRequest(requesterMention, amount, address, paymentLink string) Embed {
	return Embed{
		Template: TemplateCashRequest,
		Title:    "💰換金",
		Color:    ColorCashRequest,
		Fields: []Field{
			{Name: "換金者", Value: requesterMention},
			{Name: "金額", Value: amount + " LTC"},
			{Name: "LTCアドレス", Value: address},
			{Name: "PayPayリンク", Value: paymentLink},
		},
	}
}

// DemoLog builds a sample cash-out log notice.
func DemoLog(actor, amount string) Embed {
	return Embed{
		Template: TemplateDemoLog,
		Title:    "🪙 換金ログ【デモ】",
		Color:    ColorDemoLog,
		Fields: []Field{
			{Name: "👤 換金者", Value: actor},
			{Name: "💰 金額", Value: amount + " LTC"},
		},
		Footer: DemoFooter,
	}
}

// DemoAchievement builds a sample achievement notice. rating must already be
// within [MinRating, MaxRating].
func DemoAchievement(actor, item string, rating, count int) Embed {
	return Embed{
		Template: TemplateDemoAchievement,
		Title:    "📦 実績報告【デモ】",
		Color:    ColorDemoAchievement,
		Fields: []Field{
			{Name: "👤 記入者", Value: actor},
			{Name: "🛒 商品名", Value: item},
			{Name: "✨ 評価", Value: Stars(rating)},
			{Name: "💰 個数", Value: strconv.Itoa(count) + " 回"},
		},
		Footer: DemoFooter,
	}
}

// PanelIntro is posted above the persistent cash-out button.
func PanelIntro() Embed {
	return Embed{
		Template:    TemplatePanelIntro,
		Title:       "LTC換金はこちら",
		Description: "以下のボタンを押して入力してください。",
		Color:       ColorPanelIntro,
	}
}

// Rating bounds accepted by DemoAchievement.
const (
	MinRating = 1
	MaxRating = 5
)

// Stars renders rating as that many StarGlyphs.
func Stars(rating int) string {
	if rating <= 0 {
		return ""
	}
	return strings.Repeat(StarGlyph, rating)
}
