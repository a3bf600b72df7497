package solarroi

import (
	"math"
	"testing"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		value    float64
		str      string
		millions string
	}{
		{3200000, "$3,200,000.00", "$3.20M"},
		{635100, "$635,100.00", "$0.64M"},
		{-657552.62, "-$657,552.62", "-$0.66M"},
		{math.NaN(), "n/a", "n/a"},
		{math.Inf(1), "n/a", "n/a"},
	}
	for _, tt := range tests {
		m := Dollars(tt.value)
		if got := m.String(); got != tt.str {
			t.Errorf("Dollars(%v).String() = %q, want %q", tt.value, got, tt.str)
		}
		if got := m.Millions(2); got != tt.millions {
			t.Errorf("Dollars(%v).Millions(2) = %q, want %q", tt.value, got, tt.millions)
		}
	}
}

func TestPercentYears(t *testing.T) {
	if got := Percent(396.171875).String(); got != "396.2%" {
		t.Errorf("Percent.String() = %q", got)
	}
	if got := Years(5.038).String(); got != "5.0 yrs" {
		t.Errorf("Years.String() = %q", got)
	}
	if got := Percent(math.NaN()).String(); got != "n/a" {
		t.Errorf("Percent(NaN).String() = %q", got)
	}
}
