package billing

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatVND groups the digits of n the Vietnamese way, e.g. 1.900.000
func FormatVND(n int64) string {
	return message.NewPrinter(language.Vietnamese).Sprintf("%d", n)
}

// CurrencyText is the spoken form shown under an amount, e.g. "một nghìn đồng".
// Negative amounts have no spoken form.
func CurrencyText(n int64) string {
	words := ToWords(n)
	if words == "" {
		return ""
	}
	return words + " đồng"
}

// Money is an amount together with its display forms
type Money struct {
	Amount    int64  `json:"amount" example:"1900000"`
	Formatted string `json:"formatted" example:"1.900.000"`
	Words     string `json:"words" example:"một triệu chín trăm nghìn đồng"`
}

// NewMoney builds the display forms of n
func NewMoney(n int64) Money {
	return Money{Amount: n, Formatted: FormatVND(n), Words: CurrencyText(n)}
}
