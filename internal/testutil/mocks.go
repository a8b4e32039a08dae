package testutil

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerly/ledgerly-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users      map[uuid.UUID]*domain.User
	ByUsername map[string]*domain.User
	CreateFn   func(user *domain.User) (*domain.User, error)
	GetByIDFn  func(id uuid.UUID) (*domain.User, error)
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:      make(map[uuid.UUID]*domain.User),
		ByUsername: make(map[string]*domain.User),
	}
}

// Create creates a new user
func (m *MockUserRepository) Create(user *domain.User) (*domain.User, error) {
	if m.CreateFn != nil {
		return m.CreateFn(user)
	}
	if _, ok := m.ByUsername[user.Username]; ok {
		return nil, domain.ErrUserAlreadyExists
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	m.Users[user.ID] = user
	m.ByUsername[user.Username] = user
	return user, nil
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(id)
	}
	if user, ok := m.Users[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByUsername retrieves a user by username
func (m *MockUserRepository) GetByUsername(username string) (*domain.User, error) {
	if user, ok := m.ByUsername[username]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// UpdateFullName updates the user's display name
func (m *MockUserRepository) UpdateFullName(id uuid.UUID, fullName string) (*domain.User, error) {
	user, ok := m.Users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user.FullName = fullName
	return user, nil
}

// UpdatePasswordHash stores a new password hash
func (m *MockUserRepository) UpdatePasswordHash(id uuid.UUID, passwordHash string) error {
	user, ok := m.Users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

// UpdateCurrency updates the user's home currency
func (m *MockUserRepository) UpdateCurrency(id uuid.UUID, currency string) (*domain.User, error) {
	user, ok := m.Users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user.Currency = currency
	return user, nil
}

// UpdateSavingsVault replaces the vault balance
func (m *MockUserRepository) UpdateSavingsVault(id uuid.UUID, savingsVault decimal.Decimal) (*domain.User, error) {
	user, ok := m.Users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user.SavingsVault = savingsVault
	return user, nil
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.Users[user.ID] = user
	m.ByUsername[user.Username] = user
}

// MockTransactionRepository is a mock implementation of domain.TransactionRepository
type MockTransactionRepository struct {
	Transactions map[uuid.UUID]*domain.Transaction
	ByUser       map[uuid.UUID][]*domain.Transaction
	CreateFn     func(transaction *domain.Transaction) (*domain.Transaction, error)
	GetByUserFn  func(userID uuid.UUID) ([]*domain.Transaction, error)
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		Transactions: make(map[uuid.UUID]*domain.Transaction),
		ByUser:       make(map[uuid.UUID][]*domain.Transaction),
	}
}

// Create creates a new transaction
func (m *MockTransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	if m.CreateFn != nil {
		return m.CreateFn(transaction)
	}
	if transaction.ID == uuid.Nil {
		transaction.ID = uuid.New()
	}
	transaction.CreatedAt = time.Now()
	m.Transactions[transaction.ID] = transaction
	m.ByUser[transaction.UserID] = append(m.ByUser[transaction.UserID], transaction)
	return transaction, nil
}

// GetByID retrieves a transaction by its ID within a user's ledger
func (m *MockTransactionRepository) GetByID(userID, id uuid.UUID) (*domain.Transaction, error) {
	transaction, ok := m.Transactions[id]
	if !ok || transaction.UserID != userID {
		return nil, domain.ErrTransactionNotFound
	}
	return transaction, nil
}

// GetByUser retrieves all transactions for a user, newest date first
func (m *MockTransactionRepository) GetByUser(userID uuid.UUID) ([]*domain.Transaction, error) {
	if m.GetByUserFn != nil {
		return m.GetByUserFn(userID)
	}
	transactions := m.ByUser[userID]
	result := make([]*domain.Transaction, len(transactions))
	copy(result, transactions)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date > result[j].Date
	})
	return result, nil
}

// Delete removes a transaction
func (m *MockTransactionRepository) Delete(userID, id uuid.UUID) error {
	transaction, ok := m.Transactions[id]
	if !ok || transaction.UserID != userID {
		return domain.ErrTransactionNotFound
	}
	delete(m.Transactions, id)
	list := m.ByUser[userID]
	for i, t := range list {
		if t.ID == id {
			m.ByUser[userID] = append(list[:i], list[i+1:]...)
			break
		}
	}
	return nil
}

// AddTransaction adds a transaction to the mock repository (helper for tests)
func (m *MockTransactionRepository) AddTransaction(transaction *domain.Transaction) {
	if transaction.ID == uuid.Nil {
		transaction.ID = uuid.New()
	}
	m.Transactions[transaction.ID] = transaction
	m.ByUser[transaction.UserID] = append(m.ByUser[transaction.UserID], transaction)
}

// MockBudgetRepository is a mock implementation of domain.BudgetRepository
type MockBudgetRepository struct {
	Budgets  map[uuid.UUID]*domain.Budget
	UpsertFn func(budget *domain.Budget) (*domain.Budget, error)
}

// NewMockBudgetRepository creates a new MockBudgetRepository
func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{
		Budgets: make(map[uuid.UUID]*domain.Budget),
	}
}

// Upsert creates or replaces the budget for (user, category, month)
func (m *MockBudgetRepository) Upsert(budget *domain.Budget) (*domain.Budget, error) {
	if m.UpsertFn != nil {
		return m.UpsertFn(budget)
	}
	for _, existing := range m.Budgets {
		if existing.UserID == budget.UserID && existing.Category == budget.Category && existing.Month == budget.Month {
			existing.Amount = budget.Amount
			existing.Currency = budget.Currency
			return existing, nil
		}
	}
	if budget.ID == uuid.Nil {
		budget.ID = uuid.New()
	}
	budget.CreatedAt = time.Now()
	m.Budgets[budget.ID] = budget
	return budget, nil
}

// GetByUser retrieves a user's budgets, optionally filtered to one month
func (m *MockBudgetRepository) GetByUser(userID uuid.UUID, month string) ([]*domain.Budget, error) {
	result := make([]*domain.Budget, 0)
	for _, b := range m.Budgets {
		if b.UserID != userID {
			continue
		}
		if month != "" && b.Month != month {
			continue
		}
		result = append(result, b)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Category < result[j].Category
	})
	return result, nil
}

// GetByID retrieves a budget by id within a user's budgets
func (m *MockBudgetRepository) GetByID(userID, id uuid.UUID) (*domain.Budget, error) {
	budget, ok := m.Budgets[id]
	if !ok || budget.UserID != userID {
		return nil, domain.ErrBudgetNotFound
	}
	return budget, nil
}

// Delete removes a budget
func (m *MockBudgetRepository) Delete(userID, id uuid.UUID) error {
	budget, ok := m.Budgets[id]
	if !ok || budget.UserID != userID {
		return domain.ErrBudgetNotFound
	}
	delete(m.Budgets, id)
	return nil
}

// AddBudget adds a budget to the mock repository (helper for tests)
func (m *MockBudgetRepository) AddBudget(budget *domain.Budget) {
	if budget.ID == uuid.Nil {
		budget.ID = uuid.New()
	}
	m.Budgets[budget.ID] = budget
}

// MockGoalRepository is a mock implementation of domain.GoalRepository.
// It shares a MockTransactionRepository so the two-record bridge writes
// behave like the real store: both applied together or neither.
type MockGoalRepository struct {
	Goals               map[uuid.UUID]*domain.Goal
	TransactionRepo     *MockTransactionRepository
	ApplyContributionFn func(goalID uuid.UUID, amount decimal.Decimal, tx *domain.Transaction) (*domain.Goal, error)
	DeleteWithRefundFn  func(goalID uuid.UUID, refundTx *domain.Transaction) error
}

// NewMockGoalRepository creates a new MockGoalRepository backed by the
// given transaction repository
func NewMockGoalRepository(transactionRepo *MockTransactionRepository) *MockGoalRepository {
	return &MockGoalRepository{
		Goals:           make(map[uuid.UUID]*domain.Goal),
		TransactionRepo: transactionRepo,
	}
}

// Create creates a new goal
func (m *MockGoalRepository) Create(goal *domain.Goal) (*domain.Goal, error) {
	if goal.ID == uuid.Nil {
		goal.ID = uuid.New()
	}
	goal.CreatedAt = time.Now()
	m.Goals[goal.ID] = goal
	return goal, nil
}

// GetByID retrieves a goal by id
func (m *MockGoalRepository) GetByID(id uuid.UUID) (*domain.Goal, error) {
	if goal, ok := m.Goals[id]; ok {
		return goal, nil
	}
	return nil, domain.ErrGoalNotFound
}

// GetByUser retrieves all goals for a user
func (m *MockGoalRepository) GetByUser(userID uuid.UUID) ([]*domain.Goal, error) {
	result := make([]*domain.Goal, 0)
	for _, g := range m.Goals {
		if g.UserID == userID {
			result = append(result, g)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// ApplyContribution appends the transaction and increments the goal amount
func (m *MockGoalRepository) ApplyContribution(goalID uuid.UUID, amount decimal.Decimal, tx *domain.Transaction) (*domain.Goal, error) {
	if m.ApplyContributionFn != nil {
		return m.ApplyContributionFn(goalID, amount, tx)
	}
	goal, ok := m.Goals[goalID]
	if !ok {
		return nil, domain.ErrGoalNotFound
	}
	if _, err := m.TransactionRepo.Create(tx); err != nil {
		return nil, err
	}
	goal.CurrentAmount = goal.CurrentAmount.Add(amount)
	return goal, nil
}

// DeleteWithRefund appends the refund transaction and removes the goal
func (m *MockGoalRepository) DeleteWithRefund(goalID uuid.UUID, refundTx *domain.Transaction) error {
	if m.DeleteWithRefundFn != nil {
		return m.DeleteWithRefundFn(goalID, refundTx)
	}
	if _, ok := m.Goals[goalID]; !ok {
		return domain.ErrGoalNotFound
	}
	if _, err := m.TransactionRepo.Create(refundTx); err != nil {
		return err
	}
	delete(m.Goals, goalID)
	return nil
}

// Delete removes a goal without touching the ledger
func (m *MockGoalRepository) Delete(id uuid.UUID) error {
	if _, ok := m.Goals[id]; !ok {
		return domain.ErrGoalNotFound
	}
	delete(m.Goals, id)
	return nil
}

// AddGoal adds a goal to the mock repository (helper for tests)
func (m *MockGoalRepository) AddGoal(goal *domain.Goal) {
	if goal.ID == uuid.Nil {
		goal.ID = uuid.New()
	}
	m.Goals[goal.ID] = goal
}
