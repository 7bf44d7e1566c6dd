// Package money formats monetary amounts for user-facing messages, reports
// and emails. All amounts in the system are AUD.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Format renders an amount as "$12,345.67".
func Format(amount float64) string {
	return printer.Sprintf("$%.2f", amount)
}

// Round rounds an amount to cents for serialization.
func Round(amount float64) float64 {
	if amount >= 0 {
		return float64(int64(amount*100+0.5)) / 100
	}
	return -float64(int64(-amount*100+0.5)) / 100
}
