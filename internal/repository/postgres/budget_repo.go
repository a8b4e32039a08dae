package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerly/ledgerly-backend/internal/domain"
)

const budgetColumns = `id, user_id, category, amount, month, currency, created_at`

// BudgetRepository implements domain.BudgetRepository using PostgreSQL
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

// Upsert creates the budget for (user, category, month) or replaces its amount
func (r *BudgetRepository) Upsert(budget *domain.Budget) (*domain.Budget, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(budget.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO budgets (user_id, category, amount, month, currency)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, category, month)
		DO UPDATE SET amount = EXCLUDED.amount, currency = EXCLUDED.currency
		RETURNING `+budgetColumns,
		budget.UserID, budget.Category, amount, budget.Month, budget.Currency,
	)
	return scanBudget(row)
}

// GetByUser retrieves a user's budgets, optionally filtered to one month
func (r *BudgetRepository) GetByUser(userID uuid.UUID, month string) ([]*domain.Budget, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+budgetColumns+`
		FROM budgets
		WHERE user_id = $1 AND ($2 = '' OR month = $2)
		ORDER BY month DESC, category ASC`,
		userID, month,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	budgets := make([]*domain.Budget, 0)
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	return budgets, rows.Err()
}

// GetByID retrieves a budget by id within a user's budgets
func (r *BudgetRepository) GetByID(userID, id uuid.UUID) (*domain.Budget, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+budgetColumns+`
		FROM budgets
		WHERE user_id = $1 AND id = $2`,
		userID, id,
	)
	budget, err := scanBudget(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	return budget, nil
}

// Delete removes a budget
func (r *BudgetRepository) Delete(userID, id uuid.UUID) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM budgets
		WHERE user_id = $1 AND id = $2`,
		userID, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBudgetNotFound
	}
	return nil
}

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var (
		budget    domain.Budget
		amount    pgtype.Numeric
		createdAt pgtype.Timestamptz
	)
	err := row.Scan(
		&budget.ID, &budget.UserID, &budget.Category, &amount,
		&budget.Month, &budget.Currency, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	budget.Amount = pgNumericToDecimal(amount)
	budget.CreatedAt = createdAt.Time
	return &budget, nil
}
