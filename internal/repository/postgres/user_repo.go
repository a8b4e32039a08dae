package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerly/ledgerly-backend/internal/domain"
	"github.com/shopspring/decimal"
)

const userColumns = `id, username, email, full_name, password_hash, currency, savings_vault, created_at`

const uniqueViolationCode = "23505"

// UserRepository implements domain.UserRepository using PostgreSQL
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create creates a new user
func (r *UserRepository) Create(user *domain.User) (*domain.User, error) {
	ctx := context.Background()

	savingsVault, err := decimalToPgNumeric(user.SavingsVault)
	if err != nil {
		return nil, fmt.Errorf("invalid savings vault: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, full_name, password_hash, currency, savings_vault)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns,
		user.Username, user.Email, user.FullName, user.PasswordHash, user.Currency, savingsVault,
	)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, domain.ErrUserAlreadyExists
		}
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1`,
		id,
	)
	return scanUserOrNotFound(row)
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(username string) (*domain.User, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE username = $1`,
		username,
	)
	return scanUserOrNotFound(row)
}

// UpdateFullName updates the user's display name
func (r *UserRepository) UpdateFullName(id uuid.UUID, fullName string) (*domain.User, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET full_name = $2
		WHERE id = $1
		RETURNING `+userColumns,
		id, fullName,
	)
	return scanUserOrNotFound(row)
}

// UpdatePasswordHash stores a new password hash
func (r *UserRepository) UpdatePasswordHash(id uuid.UUID, passwordHash string) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `
		UPDATE users
		SET password_hash = $2
		WHERE id = $1`,
		id, passwordHash,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdateCurrency updates the user's home currency
func (r *UserRepository) UpdateCurrency(id uuid.UUID, currency string) (*domain.User, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET currency = $2
		WHERE id = $1
		RETURNING `+userColumns,
		id, currency,
	)
	return scanUserOrNotFound(row)
}

// UpdateSavingsVault replaces the vault balance
func (r *UserRepository) UpdateSavingsVault(id uuid.UUID, savingsVault decimal.Decimal) (*domain.User, error) {
	ctx := context.Background()

	vault, err := decimalToPgNumeric(savingsVault)
	if err != nil {
		return nil, fmt.Errorf("invalid savings vault: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET savings_vault = $2
		WHERE id = $1
		RETURNING `+userColumns,
		id, vault,
	)
	return scanUserOrNotFound(row)
}

func scanUserOrNotFound(row pgx.Row) (*domain.User, error) {
	user, err := scanUser(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		user         domain.User
		savingsVault pgtype.Numeric
		createdAt    pgtype.Timestamptz
	)
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.FullName,
		&user.PasswordHash, &user.Currency, &savingsVault, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	user.SavingsVault = pgNumericToDecimal(savingsVault)
	user.CreatedAt = createdAt.Time
	return &user, nil
}
