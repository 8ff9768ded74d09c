package finance

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAmountFixedTwoDecimals(t *testing.T) {
	if got := Amount(decimal.RequireFromString("0")); got != "0.00" {
		t.Fatalf("expected 0.00, got %s", got)
	}
	if got := Amount(decimal.RequireFromString("1234.5")); got != "1234.50" {
		t.Fatalf("expected 1234.50, got %s", got)
	}
}

func TestFormatINRGrouping(t *testing.T) {
	got := FormatINR(decimal.RequireFromString("123456.78"))
	if !strings.HasPrefix(got, "₹ ") {
		t.Fatalf("expected rupee prefix, got %q", got)
	}
	if !strings.Contains(got, "1,23,456") {
		t.Fatalf("expected Indian digit grouping, got %q", got)
	}
}
