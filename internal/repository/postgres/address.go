package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/SONUshilla/CartBackend/internal/domain"
	"github.com/SONUshilla/CartBackend/pkg/database"
	apperrors "github.com/SONUshilla/CartBackend/pkg/errors"
)

// querier is the statement-level surface shared by pgxpool.Pool, pgx.Tx and
// pgxmock, so address resolution can run standalone or inside the checkout
// transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const addressColumns = `id, user_id, label, full_name, phone, address_line1, address_line2, city, state, postal_code, is_default, created_at, updated_at`

func scanAddress(row pgx.Row) (*domain.Address, error) {
	var a domain.Address
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Label,
		&a.FullName,
		&a.Phone,
		&a.AddressLine1,
		&a.AddressLine2,
		&a.City,
		&a.State,
		&a.PostalCode,
		&a.IsDefault,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// AddressRepository implements repository.AddressRepository using PostgreSQL.
type AddressRepository struct {
	pool database.DBTX
}

// NewAddressRepository creates a new PostgreSQL-backed address repository.
func NewAddressRepository(pool database.DBTX) *AddressRepository {
	return &AddressRepository{pool: pool}
}

// resolveOrCreateAddress resolves a submitted address against q. When an id is
// supplied it must reference a live address owned by userID; anything else is
// a not-found, never a silent insert of a near-duplicate. Without an id a new
// row is inserted from the submitted fields.
func resolveOrCreateAddress(ctx context.Context, q querier, userID string, in domain.AddressInput) (string, error) {
	if in.ID != "" {
		var id string
		err := q.QueryRow(ctx,
			`SELECT id FROM addresses WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`,
			in.ID, userID,
		).Scan(&id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return "", apperrors.NotFound("address", in.ID)
			}
			return "", fmt.Errorf("resolve address: %w", err)
		}
		return id, nil
	}

	if in.IsDefault {
		if err := unsetDefaultAddress(ctx, q, userID); err != nil {
			return "", err
		}
	}

	var id string
	err := q.QueryRow(ctx, `
		INSERT INTO addresses (user_id, label, full_name, phone, address_line1, address_line2, city, state, postal_code, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		userID,
		in.Label,
		in.FullName,
		in.Phone,
		in.AddressLine1,
		in.AddressLine2,
		in.City,
		in.State,
		in.PostalCode,
		in.IsDefault,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("insert address: %w", err)
	}
	return id, nil
}

func unsetDefaultAddress(ctx context.Context, q querier, userID string) error {
	_, err := q.Exec(ctx,
		`UPDATE addresses SET is_default = FALSE, updated_at = now() WHERE user_id = $1 AND is_default AND deleted_at IS NULL`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("unset default address: %w", err)
	}
	return nil
}

// ResolveOrCreate resolves or inserts an address outside any caller transaction.
func (r *AddressRepository) ResolveOrCreate(ctx context.Context, userID string, in domain.AddressInput) (string, error) {
	return resolveOrCreateAddress(ctx, r.pool, userID, in)
}

// GetByID retrieves a live address owned by userID.
func (r *AddressRepository) GetByID(ctx context.Context, userID, addressID string) (*domain.Address, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM addresses WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`,
		addressColumns,
	)
	a, err := scanAddress(r.pool.QueryRow(ctx, query, addressID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("address", addressID)
		}
		return nil, fmt.Errorf("get address: %w", err)
	}
	return a, nil
}

// List returns the user's live addresses, default first, then most recently updated.
func (r *AddressRepository) List(ctx context.Context, userID string) ([]domain.Address, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM addresses WHERE user_id = $1 AND deleted_at IS NULL ORDER BY is_default DESC, updated_at DESC`,
		addressColumns,
	)
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()

	addresses := make([]domain.Address, 0)
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan address row: %w", err)
		}
		addresses = append(addresses, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate address rows: %w", err)
	}
	return addresses, nil
}

// SetDefault makes addressID the user's only default address. The unset and
// set run in one transaction so no default-less or dual-default state is ever
// observable.
func (r *AddressRepository) SetDefault(ctx context.Context, userID, addressID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := unsetDefaultAddress(ctx, tx, userID); err != nil {
		return err
	}

	ct, err := tx.Exec(ctx,
		`UPDATE addresses SET is_default = TRUE, updated_at = now() WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`,
		addressID, userID,
	)
	if err != nil {
		return fmt.Errorf("set default address: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("address", addressID)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Update applies the submitted non-empty fields to a live address and returns
// the updated row. Default flipping is handled by SetDefault, not here.
func (r *AddressRepository) Update(ctx context.Context, userID, addressID string, in domain.AddressInput) (*domain.Address, error) {
	var (
		sets     []string
		args     []any
		argIndex = 1
	)

	add := func(column, value string) {
		if value != "" {
			sets = append(sets, fmt.Sprintf("%s = $%d", column, argIndex))
			args = append(args, value)
			argIndex++
		}
	}
	add("label", in.Label)
	add("full_name", in.FullName)
	add("phone", in.Phone)
	add("address_line1", in.AddressLine1)
	add("address_line2", in.AddressLine2)
	add("city", in.City)
	add("state", in.State)
	add("postal_code", in.PostalCode)

	if len(sets) == 0 {
		return r.GetByID(ctx, userID, addressID)
	}

	sets = append(sets, "updated_at = now()")
	query := fmt.Sprintf(
		`UPDATE addresses SET %s WHERE id = $%d AND user_id = $%d AND deleted_at IS NULL RETURNING %s`,
		strings.Join(sets, ", "), argIndex, argIndex+1, addressColumns,
	)
	args = append(args, addressID, userID)

	a, err := scanAddress(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("address", addressID)
		}
		return nil, fmt.Errorf("update address: %w", err)
	}
	return a, nil
}

// SoftDelete marks a live address deleted. The row stays behind for order
// history; a second delete of the same id reports not found.
func (r *AddressRepository) SoftDelete(ctx context.Context, userID, addressID string) (*domain.Address, error) {
	query := fmt.Sprintf(
		`UPDATE addresses SET deleted_at = now(), is_default = FALSE, updated_at = now()
		 WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
		 RETURNING %s`,
		addressColumns,
	)
	a, err := scanAddress(r.pool.QueryRow(ctx, query, addressID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("address", addressID)
		}
		return nil, fmt.Errorf("soft delete address: %w", err)
	}
	return a, nil
}
