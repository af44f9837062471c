package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGormMethodRegistry_IsCarrierActive(t *testing.T) {
	tests := []struct {
		name   string
		count  int64
		active bool
	}{
		{"active carrier", 1, true},
		{"inactive carrier", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, mockDB := newMockGormDB(t)
			defer mockDB.Close()
			registry := NewGormMethodRegistry(db)

			storeID := uuid.New()
			mock.ExpectQuery(`SELECT count\(\*\) FROM "store_carriers" WHERE store_id = \$1 AND carrier = \$2 AND active = \$3`).
				WithArgs(storeID, "flatrate", true).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.count))

			active, err := registry.IsCarrierActive(context.Background(), storeID, "flatrate")

			assert.NoError(t, err)
			assert.Equal(t, tt.active, active)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGormMethodRegistry_IsPaymentMethodActive(t *testing.T) {
	db, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	registry := NewGormMethodRegistry(db)

	storeID := uuid.New()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "store_payment_methods" WHERE store_id = \$1 AND code = \$2 AND active = \$3`).
		WithArgs(storeID, "checkmo", true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))

	active, err := registry.IsPaymentMethodActive(context.Background(), storeID, "checkmo")

	assert.NoError(t, err)
	assert.True(t, active)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormMethodRegistry_ActivePaymentMethods(t *testing.T) {
	db, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	registry := NewGormMethodRegistry(db)

	storeID := uuid.New()
	rows := sqlmock.NewRows([]string{"code"}).
		AddRow("banktransfer").
		AddRow("checkmo")

	mock.ExpectQuery(`SELECT "code" FROM "store_payment_methods" WHERE store_id = \$1 AND active = \$2 ORDER BY code asc`).
		WithArgs(storeID, true).
		WillReturnRows(rows)

	codes, err := registry.ActivePaymentMethods(context.Background(), storeID)

	assert.NoError(t, err)
	assert.Equal(t, []string{"banktransfer", "checkmo"}, codes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormMethodRegistry_ActiveCarriers(t *testing.T) {
	db, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	registry := NewGormMethodRegistry(db)

	storeID := uuid.New()
	rows := sqlmock.NewRows([]string{"carrier"}).
		AddRow("flatrate").
		AddRow("freeshipping")

	mock.ExpectQuery(`SELECT "carrier" FROM "store_carriers" WHERE store_id = \$1 AND active = \$2 ORDER BY carrier asc`).
		WithArgs(storeID, true).
		WillReturnRows(rows)

	carriers, err := registry.ActiveCarriers(context.Background(), storeID)

	assert.NoError(t, err)
	assert.Equal(t, []string{"flatrate", "freeshipping"}, carriers)
	assert.NoError(t, mock.ExpectationsWereMet())
}
