// Package util holds the display formatters shared by the HTTP layer and dashboard.
package util

import (
	"strings"
	"time"
	// Embedded zone database so formatting works on hosts without /usr/share/zoneinfo.
	_ "time/tzdata"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const (
	currencySymbol  = "S/ "
	dateLayout      = "Jan 2, 2006, 15:04"
	DefaultTimezone = "America/Lima"
)

// FormatCurrency renders an amount in soles with thousands separators, e.g. "S/ 1,234.50" or "-S/ 12.30".
func FormatCurrency(amount decimal.Decimal) string {
	rounded := amount.Round(2)

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}

	_, cents, _ := strings.Cut(rounded.StringFixed(2), ".")

	return sign + currencySymbol + humanize.BigComma(rounded.Truncate(0).BigInt()) + "." + cents
}

// FormatDate renders t in loc as "Jun 5, 2023, 10:15". A nil loc means UTC.
func FormatDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}

	return t.In(loc).Format(dateLayout)
}

// FormatTimeAgo renders the distance between t and now, e.g. "3 days ago" or "2 hours from now".
func FormatTimeAgo(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

// LoadLocation resolves an IANA zone name, falling back to America/Lima when name is empty.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimezone
	}

	return time.LoadLocation(name)
}
