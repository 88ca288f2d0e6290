package pkgmoney

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const DefaultCurrency = "USD"

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CAD": "C$",
	"AUD": "A$",
	"CHF": "CHF ",
	"CNY": "¥",
	"INR": "₹",
	"NGN": "₦",
}

var printer = message.NewPrinter(language.English)

// Normalize upper-cases an ISO 4217 code and reports whether it is known.
func Normalize(code string) (string, bool) {
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		return "", false
	}
	return unit.String(), true
}

// Format renders amount in the given currency, e.g. "$1,234.50". Currencies
// without minor units (JPY) are rounded to whole numbers. Unknown codes fall
// back to "<amount> CODE".
func Format(amount float64, code string) string {
	iso, ok := Normalize(code)
	if !ok {
		return printer.Sprintf("%.2f", amount) + " " + strings.ToUpper(strings.TrimSpace(code))
	}

	scale, _ := currency.Standard.Rounding(currency.MustParseISO(iso))
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	var value string
	if scale == 0 {
		value = printer.Sprintf("%d", int64(math.Round(amount)))
	} else {
		value = printer.Sprintf(fmt.Sprintf("%%.%df", scale), amount)
	}

	if symbol, ok := symbols[iso]; ok {
		return sign + symbol + value
	}
	return sign + value + " " + iso
}

// Convert moves amount from one currency to another using rates quoted
// against a common base (rates[base] == 1). Missing rates leave amount as is.
func Convert(amount float64, from, to string, rates map[string]float64) float64 {
	if from == to {
		return amount
	}
	fromRate, ok := rates[from]
	if !ok || fromRate == 0 {
		return amount
	}
	toRate, ok := rates[to]
	if !ok {
		return amount
	}
	return amount / fromRate * toRate
}
