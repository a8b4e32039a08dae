package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/ledgerly/ledgerly-backend/internal/domain"
	"github.com/ledgerly/ledgerly-backend/internal/service"
	"github.com/ledgerly/ledgerly-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

type goalHandlerFixture struct {
	handler         *GoalHandler
	transactionRepo *testutil.MockTransactionRepository
	goalRepo        *testutil.MockGoalRepository
	user            *domain.User
}

func newGoalTestHandler() *goalHandlerFixture {
	userRepo := testutil.NewMockUserRepository()
	transactionRepo := testutil.NewMockTransactionRepository()
	goalRepo := testutil.NewMockGoalRepository(transactionRepo)
	user := &domain.User{ID: uuid.New(), Username: "sana", Currency: "PKR"}
	userRepo.AddUser(user)
	goalService := service.NewGoalService(goalRepo, transactionRepo, userRepo, service.NewUserLocks())
	return &goalHandlerFixture{
		handler:         NewGoalHandler(goalService),
		transactionRepo: transactionRepo,
		goalRepo:        goalRepo,
		user:            user,
	}
}

func (f *goalHandlerFixture) addGoal(target, current string) *domain.Goal {
	goal := &domain.Goal{
		ID:            uuid.New(),
		UserID:        f.user.ID,
		Name:          "Trip",
		TargetAmount:  decimal.RequireFromString(target),
		CurrentAmount: decimal.RequireFromString(current),
		Deadline:      "2030-12-31",
		Currency:      "PKR",
	}
	f.goalRepo.AddGoal(goal)
	if goal.CurrentAmount.IsPositive() {
		contribution := &domain.Transaction{
			ID:       uuid.New(),
			UserID:   f.user.ID,
			Type:     domain.TransactionTypeExpense,
			Category: domain.CategorySavings,
			Amount:   goal.CurrentAmount,
			Date:     "2025-01-02",
			GoalID:   &goal.ID,
		}
		f.transactionRepo.AddTransaction(contribution)
	}
	return goal
}

func TestContribute_Success(t *testing.T) {
	e := echo.New()
	f := newGoalTestHandler()
	goal := f.addGoal("1000", "0")
	f.transactionRepo.AddTransaction(&domain.Transaction{
		ID:     uuid.New(),
		UserID: f.user.ID,
		Type:   domain.TransactionTypeIncome,
		Amount: decimal.RequireFromString("500"),
		Date:   "2025-01-01",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/goals/"+goal.ID.String()+"/contribute", strings.NewReader(`{"amount": "200"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(goal.ID.String())

	setupAuthContext(c, f.user.ID, f.user.Username)

	if err := f.handler.Contribute(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response ContributionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.NewGoalAmount != "200.00" {
		t.Errorf("Expected new goal amount '200.00', got %s", response.NewGoalAmount)
	}
	if response.NewBalance != "300.00" {
		t.Errorf("Expected new balance '300.00', got %s", response.NewBalance)
	}
}

func TestContribute_InsufficientBalance(t *testing.T) {
	e := echo.New()
	f := newGoalTestHandler()
	goal := f.addGoal("1000", "0")
	f.transactionRepo.AddTransaction(&domain.Transaction{
		ID:     uuid.New(),
		UserID: f.user.ID,
		Type:   domain.TransactionTypeIncome,
		Amount: decimal.RequireFromString("100"),
		Date:   "2025-01-01",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/goals/"+goal.ID.String()+"/contribute", strings.NewReader(`{"amount": "150"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(goal.ID.String())

	setupAuthContext(c, f.user.ID, f.user.Username)

	if err := f.handler.Contribute(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if !strings.Contains(problem.Detail, "100") {
		t.Errorf("Expected available balance in detail, got %q", problem.Detail)
	}
}

func TestContribute_OtherUsersGoal(t *testing.T) {
	e := echo.New()
	f := newGoalTestHandler()
	goal := f.addGoal("1000", "0")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/goals/"+goal.ID.String()+"/contribute", strings.NewReader(`{"amount": "50"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(goal.ID.String())

	setupAuthContext(c, uuid.New(), "intruder")

	if err := f.handler.Contribute(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestDeleteGoal_Cancel(t *testing.T) {
	e := echo.New()
	f := newGoalTestHandler()
	f.transactionRepo.AddTransaction(&domain.Transaction{
		ID:     uuid.New(),
		UserID: f.user.ID,
		Type:   domain.TransactionTypeIncome,
		Amount: decimal.RequireFromString("1000"),
		Date:   "2025-01-01",
	})
	goal := f.addGoal("500", "300")

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/goals/"+goal.ID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(goal.ID.String())

	setupAuthContext(c, f.user.ID, f.user.Username)

	if err := f.handler.DeleteGoal(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response GoalDeletionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.ReturnedAmount != "300.00" {
		t.Errorf("Expected returned amount '300.00', got %s", response.ReturnedAmount)
	}
	if response.WasComplete {
		t.Error("Expected wasComplete false")
	}
}

func TestGetGoals_Progress(t *testing.T) {
	e := echo.New()
	f := newGoalTestHandler()
	f.addGoal("1000", "250")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/goals", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, f.user.ID, f.user.Username)

	if err := f.handler.GetGoals(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response []GoalProgressResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response) != 1 {
		t.Fatalf("Expected 1 goal, got %d", len(response))
	}
	if response[0].ProgressPercentage != "25.00" {
		t.Errorf("Expected progress '25.00', got %s", response[0].ProgressPercentage)
	}
	if response[0].Remaining != "750.00" {
		t.Errorf("Expected remaining '750.00', got %s", response[0].Remaining)
	}
}
