package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/ledgerly/ledgerly-backend/internal/domain"
	"github.com/ledgerly/ledgerly-backend/internal/service"
	"github.com/ledgerly/ledgerly-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

func newReportTestHandler() (*ReportHandler, *testutil.MockTransactionRepository, *domain.User) {
	userRepo := testutil.NewMockUserRepository()
	transactionRepo := testutil.NewMockTransactionRepository()
	user := &domain.User{ID: uuid.New(), Username: "sana", Currency: "PKR", SavingsVault: decimal.RequireFromString("150")}
	userRepo.AddUser(user)
	return NewReportHandler(service.NewReportService(transactionRepo, userRepo)), transactionRepo, user
}

func addReportTx(repo *testutil.MockTransactionRepository, userID uuid.UUID, txType domain.TransactionType, category, amount, date string) {
	repo.AddTransaction(&domain.Transaction{
		ID:       uuid.New(),
		UserID:   userID,
		Type:     txType,
		Category: category,
		Amount:   decimal.RequireFromString(amount),
		Date:     date,
	})
}

func TestGetReport_MonthQuery(t *testing.T) {
	e := echo.New()
	handler, transactionRepo, user := newReportTestHandler()
	addReportTx(transactionRepo, user.ID, domain.TransactionTypeIncome, "Salary", "1000", "2025-01-05")
	addReportTx(transactionRepo, user.ID, domain.TransactionTypeExpense, "Food", "200", "2025-01-10")
	addReportTx(transactionRepo, user.ID, domain.TransactionTypeExpense, "Food", "300", "2025-02-02")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports?month=2025-01", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, user.ID, user.Username)

	if err := handler.GetReport(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response ReportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Balance != "500.00" {
		t.Errorf("Expected all-time balance '500.00', got %s", response.Balance)
	}
	if response.MonthlyBalance == nil || *response.MonthlyBalance != "800.00" {
		t.Errorf("Expected monthly balance '800.00', got %v", response.MonthlyBalance)
	}
	if response.TotalExpense != "200.00" {
		t.Errorf("Expected period expense '200.00', got %s", response.TotalExpense)
	}
	if response.CategoryBreakdown["Food"] != "200.00" {
		t.Errorf("Expected Food breakdown '200.00', got %s", response.CategoryBreakdown["Food"])
	}
	if response.SavingsVault != "150.00" {
		t.Errorf("Expected vault '150.00', got %s", response.SavingsVault)
	}
}

func TestGetReport_InvalidMonthQuery(t *testing.T) {
	e := echo.New()
	handler, _, user := newReportTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports?month=January", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, user.ID, user.Username)

	if err := handler.GetReport(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}
