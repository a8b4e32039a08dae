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

const transactionColumns = `id, user_id, type, category, amount, original_amount, original_currency, description, date, goal_id, created_at`

// TransactionRepository implements domain.TransactionRepository using PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create creates a new transaction
func (r *TransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(transaction.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}
	originalAmount, err := decimalToPgNumeric(transaction.OriginalAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid original amount: %w", err)
	}

	var goalID pgtype.UUID
	if transaction.GoalID != nil {
		goalID.Bytes = *transaction.GoalID
		goalID.Valid = true
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO transactions (user_id, type, category, amount, original_amount, original_currency, description, date, goal_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+transactionColumns,
		transaction.UserID, string(transaction.Type), transaction.Category, amount,
		originalAmount, transaction.OriginalCurrency, transaction.Description,
		transaction.Date, goalID,
	)
	return scanTransaction(row)
}

// GetByID retrieves a transaction by its ID within a user's ledger
func (r *TransactionRepository) GetByID(userID, id uuid.UUID) (*domain.Transaction, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE user_id = $1 AND id = $2`,
		userID, id,
	)
	transaction, err := scanTransaction(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return transaction, nil
}

// GetByUser retrieves all transactions for a user, newest date first
func (r *TransactionRepository) GetByUser(userID uuid.UUID) ([]*domain.Transaction, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]*domain.Transaction, 0)
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}
	return transactions, rows.Err()
}

// Delete removes a transaction
func (r *TransactionRepository) Delete(userID, id uuid.UUID) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM transactions
		WHERE user_id = $1 AND id = $2`,
		userID, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// scanTransaction reads one transaction row
func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		transaction domain.Transaction
		txType      string
		amount      pgtype.Numeric
		original    pgtype.Numeric
		goalID      pgtype.UUID
		createdAt   pgtype.Timestamptz
	)
	err := row.Scan(
		&transaction.ID, &transaction.UserID, &txType, &transaction.Category,
		&amount, &original, &transaction.OriginalCurrency,
		&transaction.Description, &transaction.Date, &goalID, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	transaction.Type = domain.TransactionType(txType)
	transaction.Amount = pgNumericToDecimal(amount)
	transaction.OriginalAmount = pgNumericToDecimal(original)
	transaction.CreatedAt = createdAt.Time
	if goalID.Valid {
		id := uuid.UUID(goalID.Bytes)
		transaction.GoalID = &id
	}
	return &transaction, nil
}

// Helper functions

func decimalToPgNumeric(d decimal.Decimal) (pgtype.Numeric, error) {
	var num pgtype.Numeric
	if err := num.Scan(d.String()); err != nil {
		return num, err
	}
	return num, nil
}

func pgNumericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}
