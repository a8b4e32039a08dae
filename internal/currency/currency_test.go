package currency

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestConvert_SameCurrency(t *testing.T) {
	amount := decimal.NewFromInt(100)
	got, err := Convert(amount, "USD", "usd")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !got.Equal(amount) {
		t.Errorf("Expected %s, got %s", amount, got)
	}
}

func TestConvert_ToBase(t *testing.T) {
	got, err := Convert(decimal.NewFromInt(10), "USD", "PKR")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	expected := decimal.RequireFromString("2805")
	if !got.Equal(expected) {
		t.Errorf("Expected %s, got %s", expected, got)
	}
}

func TestConvert_ThroughBase(t *testing.T) {
	// 100 USD -> PKR -> EUR
	got, err := Convert(decimal.NewFromInt(100), "USD", "EUR")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	expected := decimal.RequireFromString("28050").Div(decimal.RequireFromString("305.2"))
	if !got.Equal(expected) {
		t.Errorf("Expected %s, got %s", expected, got)
	}
}

func TestConvert_UnsupportedCurrency(t *testing.T) {
	_, err := Convert(decimal.NewFromInt(1), "XYZ", "PKR")
	if !errors.Is(err, ErrUnsupportedCurrency) {
		t.Errorf("Expected ErrUnsupportedCurrency, got %v", err)
	}
}

func TestRates_ReturnsCopy(t *testing.T) {
	snapshot := Rates()
	snapshot["USD"] = decimal.NewFromInt(1)

	rate, err := Rate("USD")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rate.Equal(decimal.NewFromInt(1)) {
		t.Error("Mutating the returned map should not change the table")
	}
}

func TestUpdate_MergesAndNormalizes(t *testing.T) {
	Update(map[string]decimal.Decimal{"jpy": decimal.RequireFromString("1.9")})

	rate, err := Rate("JPY")
	if err != nil {
		t.Fatalf("Expected JPY to be supported after update, got %v", err)
	}
	if !rate.Equal(decimal.RequireFromString("1.9")) {
		t.Errorf("Expected 1.9, got %s", rate)
	}

	// Existing codes survive a partial update.
	if !Supported("EUR") {
		t.Error("Expected EUR to remain supported")
	}
}
