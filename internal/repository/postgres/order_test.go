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

func newOrderTestFixture(t *testing.T) (*OrderRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := NewOrderRepository(mock)
	return repo, mock
}

func orderRow(o *domain.Order) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "user_id", "address_id", "status", "total_amount", "payment_method", "created_at", "updated_at",
	}).AddRow(
		o.ID, o.UserID, o.AddressID, o.Status, o.TotalAmount, o.PaymentMethod, o.CreatedAt, o.UpdatedAt,
	)
}

func sampleOrder() *domain.Order {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Order{
		ID:            "order-1",
		UserID:        "user-1",
		AddressID:     "addr-1",
		Status:        domain.OrderStatusProcessing,
		TotalAmount:   4498,
		PaymentMethod: "cod",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func itemRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"order_id", "product_id", "name", "image_url", "price", "quantity"})
}

// ---------------------------------------------------------------------------
// ListByUser
// ---------------------------------------------------------------------------

func TestOrderRepository_ListByUser_WithItems(t *testing.T) {
	repo, mock := newOrderTestFixture(t)
	defer mock.Close()

	o := sampleOrder()

	mock.ExpectQuery("SELECT .+ FROM orders WHERE user_id =").
		WithArgs("user-1").
		WillReturnRows(orderRow(o))
	mock.ExpectQuery("SELECT oi.order_id, oi.product_id").
		WithArgs([]string{"order-1"}).
		WillReturnRows(itemRows().
			AddRow("order-1", "prod-1", "Widget", "widget.png", int64(1999), 2).
			AddRow("order-1", "prod-2", "Gadget", "", int64(500), 1))

	got, err := repo.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].Items, 2)
	assert.Equal(t, "Widget", got[0].Items[0].Name)
	assert.Equal(t, int64(1999), got[0].Items[0].Price)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_ListByUser_Empty(t *testing.T) {
	repo, mock := newOrderTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM orders WHERE user_id =").
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "user_id", "address_id", "status", "total_amount", "payment_method", "created_at", "updated_at",
		}))

	got, err := repo.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// GetByID
// ---------------------------------------------------------------------------

func TestOrderRepository_GetByID_Success(t *testing.T) {
	repo, mock := newOrderTestFixture(t)
	defer mock.Close()

	o := sampleOrder()
	a := sampleAddress()

	mock.ExpectQuery("SELECT .+ FROM orders WHERE id =").
		WithArgs("order-1", "user-1").
		WillReturnRows(orderRow(o))
	mock.ExpectQuery("SELECT oi.order_id, oi.product_id").
		WithArgs([]string{"order-1"}).
		WillReturnRows(itemRows().AddRow("order-1", "prod-1", "Widget", "", int64(1999), 2))
	mock.ExpectQuery("SELECT .+ FROM addresses WHERE id =").
		WithArgs("addr-1").
		WillReturnRows(addressRow(a))

	gotOrder, gotAddr, err := repo.GetByID(context.Background(), "user-1", "order-1")
	require.NoError(t, err)
	assert.Equal(t, "order-1", gotOrder.ID)
	require.Len(t, gotOrder.Items, 1)
	require.NotNil(t, gotAddr)
	assert.Equal(t, "addr-1", gotAddr.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetByID_OtherUsersOrder(t *testing.T) {
	repo, mock := newOrderTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM orders WHERE id =").
		WithArgs("order-1", "user-2").
		WillReturnError(pgx.ErrNoRows)

	gotOrder, gotAddr, err := repo.GetByID(context.Background(), "user-2", "order-1")
	require.Error(t, err)
	assert.Nil(t, gotOrder)
	assert.Nil(t, gotAddr)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound), "expected ErrNotFound, got: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// Cancel
// ---------------------------------------------------------------------------

func TestOrderRepository_Cancel_Success(t *testing.T) {
	repo, mock := newOrderTestFixture(t)
	defer mock.Close()

	o := sampleOrder()
	o.Status = domain.OrderStatusCancelled

	mock.ExpectQuery("UPDATE orders").
		WithArgs(domain.OrderStatusCancelled, "order-1", "user-1").
		WillReturnRows(orderRow(o))

	got, err := repo.Cancel(context.Background(), "user-1", "order-1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, got.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_Cancel_OtherUsersOrder(t *testing.T) {
	repo, mock := newOrderTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("UPDATE orders").
		WithArgs(domain.OrderStatusCancelled, "order-1", "user-2").
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.Cancel(context.Background(), "user-2", "order-1")
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound), "expected ErrNotFound, got: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
