package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SONUshilla/CartBackend/internal/domain"
	apperrors "github.com/SONUshilla/CartBackend/pkg/errors"
)

func newAddressTestFixture(t *testing.T) (*AddressRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := NewAddressRepository(mock)
	return repo, mock
}

func sampleAddress() *domain.Address {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Address{
		ID:           "addr-1",
		UserID:       "user-1",
		Label:        "home",
		FullName:     "Alice Smith",
		Phone:        "+1234567890",
		AddressLine1: "1 Main St",
		AddressLine2: "Apt 2",
		City:         "Springfield",
		State:        "IL",
		PostalCode:   "62701",
		IsDefault:    true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func addressRow(a *domain.Address) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "user_id", "label", "full_name", "phone",
		"address_line1", "address_line2", "city", "state", "postal_code",
		"is_default", "created_at", "updated_at",
	}).AddRow(
		a.ID, a.UserID, a.Label, a.FullName, a.Phone,
		a.AddressLine1, a.AddressLine2, a.City, a.State, a.PostalCode,
		a.IsDefault, a.CreatedAt, a.UpdatedAt,
	)
}

// ---------------------------------------------------------------------------
// ResolveOrCreate
// ---------------------------------------------------------------------------

func TestAddressRepository_ResolveOrCreate_ExistingID(t *testing.T) {
	repo, mock := newAddressTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT id FROM addresses WHERE id =").
		WithArgs("addr-1", "user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("addr-1"))

	id, err := repo.ResolveOrCreate(context.Background(), "user-1", domain.AddressInput{ID: "addr-1"})
	assert.NoError(t, err)
	assert.Equal(t, "addr-1", id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddressRepository_ResolveOrCreate_ForeignIDRejected(t *testing.T) {
	repo, mock := newAddressTestFixture(t)
	defer mock.Close()

	// An id owned by another user (or deleted) scans no rows; it must be
	// reported as not found, not quietly turned into a fresh insert.
	mock.ExpectQuery("SELECT id FROM addresses WHERE id =").
		WithArgs("addr-other", "user-1").
		WillReturnError(pgx.ErrNoRows)

	id, err := repo.ResolveOrCreate(context.Background(), "user-1", domain.AddressInput{ID: "addr-other"})
	require.Error(t, err)
	assert.Empty(t, id)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound), "expected ErrNotFound, got: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddressRepository_ResolveOrCreate_InsertsWithoutID(t *testing.T) {
	repo, mock := newAddressTestFixture(t)
	defer mock.Close()

	in := domain.AddressInput{
		FullName:     "Alice Smith",
		AddressLine1: "1 Main St",
		City:         "Springfield",
		PostalCode:   "62701",
	}

	mock.ExpectQuery("INSERT INTO addresses").
		WithArgs("user-1", "", "Alice Smith", "", "1 Main St", "", "Springfield", "", "62701", false).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("addr-new"))

	id, err := repo.ResolveOrCreate(context.Background(), "user-1", in)
	assert.NoError(t, err)
	assert.Equal(t, "addr-new", id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddressRepository_ResolveOrCreate_DefaultInsertUnsetsOthers(t *testing.T) {
	repo, mock := newAddressTestFixture(t)
	defer mock.Close()

	in := domain.AddressInput{
		FullName:     "Alice Smith",
		AddressLine1: "1 Main St",
		City:         "Springfield",
		PostalCode:   "62701",
		IsDefault:    true,
	}

	mock.ExpectExec("UPDATE addresses SET is_default = FALSE").
		WithArgs("user-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery("INSERT INTO addresses").
		WithArgs("user-1", "", "Alice Smith", "", "1 Main St", "", "Springfield", "", "62701", true).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("addr-new"))

	id, err := repo.ResolveOrCreate(context.Background(), "user-1", in)
	assert.NoError(t, err)
	assert.Equal(t, "addr-new", id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// SetDefault
// ---------------------------------------------------------------------------

func TestAddressRepository_SetDefault_Success(t *testing.T) {
	repo, mock := newAddressTestFixture(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE addresses SET is_default = FALSE").
		WithArgs("user-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE addresses SET is_default = TRUE").
		WithArgs("addr-2", "user-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err := repo.SetDefault(context.Background(), "user-1", "addr-2")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddressRepository_SetDefault_NotFoundRollsBack(t *testing.T) {
	repo, mock := newAddressTestFixture(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE addresses SET is_default = FALSE").
		WithArgs("user-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE addresses SET is_default = TRUE").
		WithArgs("addr-missing", "user-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	err := repo.SetDefault(context.Background(), "user-1", "addr-missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound), "expected ErrNotFound, got: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func TestAddressRepository_Update_Success(t *testing.T) {
	repo, mock := newAddressTestFixture(t)
	defer mock.Close()

	a := sampleAddress()
	a.City = "Shelbyville"

	mock.ExpectQuery("UPDATE addresses SET city =").
		WithArgs("Shelbyville", a.ID, a.UserID).
		WillReturnRows(addressRow(a))

	got, err := repo.Update(context.Background(), a.UserID, a.ID, domain.AddressInput{City: "Shelbyville"})
	require.NoError(t, err)
	assert.Equal(t, "Shelbyville", got.City)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddressRepository_Update_NotFound(t *testing.T) {
	repo, mock := newAddressTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("UPDATE addresses SET city =").
		WithArgs("Shelbyville", "addr-missing", "user-1").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.Update(context.Background(), "user-1", "addr-missing", domain.AddressInput{City: "Shelbyville"})
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound), "expected ErrNotFound, got: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddressRepository_Update_NoFieldsReadsCurrent(t *testing.T) {
	repo, mock := newAddressTestFixture(t)
	defer mock.Close()

	a := sampleAddress()

	mock.ExpectQuery("SELECT .+ FROM addresses WHERE id =").
		WithArgs(a.ID, a.UserID).
		WillReturnRows(addressRow(a))

	got, err := repo.Update(context.Background(), a.UserID, a.ID, domain.AddressInput{})
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// SoftDelete
// ---------------------------------------------------------------------------

func TestAddressRepository_SoftDelete_Success(t *testing.T) {
	repo, mock := newAddressTestFixture(t)
	defer mock.Close()

	a := sampleAddress()
	a.IsDefault = false

	mock.ExpectQuery("UPDATE addresses SET deleted_at = now").
		WithArgs(a.ID, a.UserID).
		WillReturnRows(addressRow(a))

	got, err := repo.SoftDelete(context.Background(), a.UserID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddressRepository_SoftDelete_AlreadyDeleted(t *testing.T) {
	repo, mock := newAddressTestFixture(t)
	defer mock.Close()

	// The deleted_at IS NULL guard makes a repeated delete scan no rows.
	mock.ExpectQuery("UPDATE addresses SET deleted_at = now").
		WithArgs("addr-1", "user-1").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.SoftDelete(context.Background(), "user-1", "addr-1")
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound), "expected ErrNotFound, got: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestAddressRepository_List_Success(t *testing.T) {
	repo, mock := newAddressTestFixture(t)
	defer mock.Close()

	a := sampleAddress()
	b := sampleAddress()
	b.ID = "addr-2"
	b.IsDefault = false

	mock.ExpectQuery("SELECT .+ FROM addresses WHERE user_id =").
		WithArgs("user-1").
		WillReturnRows(addressRow(a).AddRow(
			b.ID, b.UserID, b.Label, b.FullName, b.Phone,
			b.AddressLine1, b.AddressLine2, b.City, b.State, b.PostalCode,
			b.IsDefault, b.CreatedAt, b.UpdatedAt,
		))

	got, err := repo.List(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].IsDefault)
	assert.Equal(t, "addr-2", got[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddressRepository_List_Empty(t *testing.T) {
	repo, mock := newAddressTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM addresses WHERE user_id =").
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "user_id", "label", "full_name", "phone",
			"address_line1", "address_line2", "city", "state", "postal_code",
			"is_default", "created_at", "updated_at",
		}))

	got, err := repo.List(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
