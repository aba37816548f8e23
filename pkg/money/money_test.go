package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRoundMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"100.005", "100.01"},
		{"100.004", "100"},
		{"-2.675", "-2.68"},
		{"0", "0"},
	}
	for _, tt := range tests {
		d, _ := decimal.NewFromString(tt.in)
		got := RoundMoney(d)
		if got.String() != tt.want {
			t.Errorf("RoundMoney(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestRoundUnitCost(t *testing.T) {
	d, _ := decimal.NewFromString("0.123456789")
	got := RoundUnitCost(d)
	if got.String() != "0.123457" {
		t.Errorf("RoundUnitCost = %s, want 0.123457", got)
	}
}
