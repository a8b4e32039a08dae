// Package currency holds the process-wide exchange rate table. Rates are
// expressed relative to the base currency: one unit of a foreign currency
// equals its rate in base units. The table initializes on first access with
// a documented default set and can be replaced at runtime through Update.
package currency

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// Base is the reference currency all rates are quoted against.
const Base = "PKR"

var ErrUnsupportedCurrency = errors.New("unsupported currency")

var (
	mu    sync.RWMutex
	rates map[string]decimal.Decimal
	once  sync.Once
)

// Default rate table, quoted in base units per foreign unit.
func defaultRates() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"PKR": decimal.NewFromInt(1),
		"USD": decimal.RequireFromString("280.5"),
		"EUR": decimal.RequireFromString("305.2"),
		"GBP": decimal.RequireFromString("355.8"),
		"SAR": decimal.RequireFromString("74.8"),
		"AED": decimal.RequireFromString("76.4"),
	}
}

func load() {
	once.Do(func() {
		rates = defaultRates()
	})
}

// Rate returns the base-units-per-unit rate for a currency code.
func Rate(code string) (decimal.Decimal, error) {
	load()
	mu.RLock()
	defer mu.RUnlock()
	rate, ok := rates[strings.ToUpper(code)]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, code)
	}
	return rate, nil
}

// Supported reports whether the table has a rate for the currency code.
func Supported(code string) bool {
	_, err := Rate(code)
	return err == nil
}

// Convert converts amount between two currencies by going through the base
// currency.
func Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)
	if from == to {
		return amount, nil
	}

	fromRate, err := Rate(from)
	if err != nil {
		return decimal.Zero, err
	}
	toRate, err := Rate(to)
	if err != nil {
		return decimal.Zero, err
	}

	return amount.Mul(fromRate).Div(toRate), nil
}

// Rates returns a copy of the current table.
func Rates() map[string]decimal.Decimal {
	load()
	mu.RLock()
	defer mu.RUnlock()
	out := make(map[string]decimal.Decimal, len(rates))
	for code, rate := range rates {
		out[code] = rate
	}
	return out
}

// Update merges new rates into the table. Codes are normalized to upper
// case; existing codes are overwritten, others kept.
func Update(newRates map[string]decimal.Decimal) {
	load()
	mu.Lock()
	defer mu.Unlock()
	for code, rate := range newRates {
		rates[strings.ToUpper(code)] = rate
	}
}
