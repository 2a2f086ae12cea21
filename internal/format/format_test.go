package format

import "testing"

func TestCurrency(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "$0"},
		{950, "$950"},
		{1234, "$1.234"},
		{1234567.89, "$1.234.568"},
		{100.4, "$100"},
		{-45000, "-$45.000"},
	}
	for _, tc := range cases {
		if got := Currency("$", tc.amount); got != tc.want {
			t.Errorf("Currency(%v): expected %q, got %q", tc.amount, tc.want, got)
		}
	}
}

func TestCurrencyCustomSymbol(t *testing.T) {
	if got := Currency("COP ", 2500); got != "COP 2.500" {
		t.Errorf("expected %q, got %q", "COP 2.500", got)
	}
}
