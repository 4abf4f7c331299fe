// Package render formats journal data for the terminal.
package render

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money formats value in currency using the currency's own symbol and
// fraction digits.
func Money(value float64, currency string) string {
	cur, minor := toMinor(value, currency)
	return cur.Formatter().Format(minor)
}

// SignedMoney is Money with an explicit + on positive values.
func SignedMoney(value float64, currency string) string {
	cur, minor := toMinor(value, currency)
	s := cur.Formatter().Format(minor)
	if minor > 0 {
		return "+" + s
	}
	return s
}

func toMinor(value float64, currency string) (*money.Currency, int64) {
	// money.New never returns a nil currency, even for unknown codes.
	cur := money.New(0, currency).Currency()
	return cur, decimal.NewFromFloat(value).Shift(int32(cur.Fraction)).Round(0).IntPart()
}

// Price formats a quote in dollars: up to 4 decimals below 1 (at least 2),
// 2 otherwise.
func Price(d decimal.Decimal) string {
	places := int32(2)
	if d.Abs().LessThan(decimal.NewFromInt(1)) {
		places = 4
		for places > 2 && d.Shift(places).Round(0).IntPart()%10 == 0 {
			places--
		}
	}
	minor := d.Shift(places).Round(0).IntPart()
	return money.NewFormatter(int(places), ".", ",", "$", "$1").Format(minor)
}

// Percent formats a change percentage with two decimals.
func Percent(d decimal.Decimal) string {
	return d.StringFixed(2) + "%"
}
