// Package format renders monetary values for display. Totals themselves are
// plain float64 everywhere; formatting happens only at this boundary.
package format

import (
	"fmt"
	"strings"
)

// Currency formats an amount with a currency symbol, thousands separated in
// groups of three and no minor digits, matching the catalog's peso-style
// price display (e.g. "$1.234.568").
func Currency(symbol string, amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	// Round to whole units before grouping.
	raw := fmt.Sprintf("%.0f", amount)
	grouped := groupThousands(raw)

	result := symbol + grouped
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts dots every three digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteString(".")
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
