package exchange

import (
	"math"
	"testing"
)

func TestConvertThroughUSDBase(t *testing.T) {
	rates := Rates{"USD": 1, "EUR": 0.9, "INR": 83.0}

	tests := []struct {
		name   string
		amount float64
		from   string
		to     string
		want   float64
	}{
		{name: "usd to inr", amount: 10, from: "USD", to: "INR", want: 830},
		{name: "eur to usd", amount: 9, from: "EUR", to: "USD", want: 10},
		{name: "eur to inr", amount: 0.9, from: "EUR", to: "INR", want: 83},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rates.Convert(tt.amount, tt.from, tt.to)
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Convert() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConvertUnknownCurrency(t *testing.T) {
	rates := Rates{"USD": 1}

	if _, err := rates.Convert(1, "XXX", "USD"); err == nil {
		t.Error("Convert() from unknown currency succeeded")
	}
	if _, err := rates.Convert(1, "USD", "XXX"); err == nil {
		t.Error("Convert() to unknown currency succeeded")
	}
}
