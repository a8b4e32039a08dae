package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerly/ledgerly-backend/internal/domain"
	"github.com/shopspring/decimal"
)

const goalColumns = `id, user_id, name, target_amount, current_amount, deadline, currency, created_at`

// GoalRepository implements domain.GoalRepository using PostgreSQL
type GoalRepository struct {
	pool *pgxpool.Pool
}

// NewGoalRepository creates a new GoalRepository
func NewGoalRepository(pool *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{pool: pool}
}

// Create creates a new goal
func (r *GoalRepository) Create(goal *domain.Goal) (*domain.Goal, error) {
	ctx := context.Background()

	targetAmount, err := decimalToPgNumeric(goal.TargetAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid target amount: %w", err)
	}
	currentAmount, err := decimalToPgNumeric(goal.CurrentAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid current amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO goals (user_id, name, target_amount, current_amount, deadline, currency)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+goalColumns,
		goal.UserID, goal.Name, targetAmount, currentAmount, goal.Deadline, goal.Currency,
	)
	return scanGoal(row)
}

// GetByID retrieves a goal by id
func (r *GoalRepository) GetByID(id uuid.UUID) (*domain.Goal, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+goalColumns+`
		FROM goals
		WHERE id = $1`,
		id,
	)
	goal, err := scanGoal(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}
	return goal, nil
}

// GetByUser retrieves all goals for a user
func (r *GoalRepository) GetByUser(userID uuid.UUID) ([]*domain.Goal, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+goalColumns+`
		FROM goals
		WHERE user_id = $1
		ORDER BY created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := make([]*domain.Goal, 0)
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

// ApplyContribution inserts the contribution transaction and increments the
// goal's saved amount in one database transaction. Both writes succeed
// together or not at all.
func (r *GoalRepository) ApplyContribution(goalID uuid.UUID, amount decimal.Decimal, contribution *domain.Transaction) (*domain.Goal, error) {
	ctx := context.Background()

	amountNum, err := decimalToPgNumeric(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := insertTransactionTx(ctx, tx, contribution); err != nil {
		return nil, err
	}

	row := tx.QueryRow(ctx, `
		UPDATE goals
		SET current_amount = current_amount + $2
		WHERE id = $1
		RETURNING `+goalColumns,
		goalID, amountNum,
	)
	goal, err := scanGoal(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return goal, nil
}

// DeleteWithRefund inserts the refund transaction and removes the goal in one
// database transaction. Both writes succeed together or not at all.
func (r *GoalRepository) DeleteWithRefund(goalID uuid.UUID, refund *domain.Transaction) error {
	ctx := context.Background()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := insertTransactionTx(ctx, tx, refund); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM goals WHERE id = $1`, goalID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGoalNotFound
	}

	return tx.Commit(ctx)
}

// Delete removes a goal without touching the ledger
func (r *GoalRepository) Delete(id uuid.UUID) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}

// insertTransactionTx inserts a ledger row within an open database transaction
func insertTransactionTx(ctx context.Context, tx pgx.Tx, transaction *domain.Transaction) error {
	amount, err := decimalToPgNumeric(transaction.Amount)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	originalAmount, err := decimalToPgNumeric(transaction.OriginalAmount)
	if err != nil {
		return fmt.Errorf("invalid original amount: %w", err)
	}

	var goalID pgtype.UUID
	if transaction.GoalID != nil {
		goalID.Bytes = *transaction.GoalID
		goalID.Valid = true
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO transactions (user_id, type, category, amount, original_amount, original_currency, description, date, goal_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		transaction.UserID, string(transaction.Type), transaction.Category, amount,
		originalAmount, transaction.OriginalCurrency, transaction.Description,
		transaction.Date, goalID,
	)
	return err
}

func scanGoal(row pgx.Row) (*domain.Goal, error) {
	var (
		goal          domain.Goal
		targetAmount  pgtype.Numeric
		currentAmount pgtype.Numeric
		createdAt     pgtype.Timestamptz
	)
	err := row.Scan(
		&goal.ID, &goal.UserID, &goal.Name, &targetAmount, &currentAmount,
		&goal.Deadline, &goal.Currency, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	goal.TargetAmount = pgNumericToDecimal(targetAmount)
	goal.CurrentAmount = pgNumericToDecimal(currentAmount)
	goal.CreatedAt = createdAt.Time
	return &goal, nil
}
