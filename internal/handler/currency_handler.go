package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ledgerly/ledgerly-backend/internal/currency"
)

// CurrencyHandler handles exchange rate HTTP requests
type CurrencyHandler struct{}

// NewCurrencyHandler creates a new CurrencyHandler
func NewCurrencyHandler() *CurrencyHandler {
	return &CurrencyHandler{}
}

// RatesResponse represents the exchange rate table
type RatesResponse struct {
	Base  string            `json:"base"`
	Rates map[string]string `json:"rates"`
}

// GetRates returns the exchange rate table relative to the base currency
func (h *CurrencyHandler) GetRates(c echo.Context) error {
	rates := currency.Rates()
	response := RatesResponse{
		Base:  currency.Base,
		Rates: make(map[string]string, len(rates)),
	}
	for code, rate := range rates {
		response.Rates[code] = rate.String()
	}
	return c.JSON(http.StatusOK, response)
}
