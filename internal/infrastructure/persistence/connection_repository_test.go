package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/wms/backend/internal/domain/accounting"
	"github.com/wms/backend/internal/domain/shared"
)

func newMockConnectionRepository(t *testing.T) (*GormConnectionRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormConnectionRepository(gormDB), mock, mockDB
}

func TestGormConnectionRepository_FindByRealmID(t *testing.T) {
	t.Run("finds existing connection", func(t *testing.T) {
		repo, mock, mockDB := newMockConnectionRepository(t)
		defer mockDB.Close()

		id := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "realm_id", "company_name", "access_token", "refresh_token", "token_expires_at", "is_active", "error_count"}).
			AddRow(id, "9341452", "Craft Supply Co", "at", "rt", time.Now().Add(time.Hour), true, 0)

		mock.ExpectQuery(`SELECT \* FROM "quickbooks_connections" WHERE realm_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("9341452", 1).
			WillReturnRows(rows)

		conn, err := repo.FindByRealmID(context.Background(), "9341452")

		require.NoError(t, err)
		assert.Equal(t, "Craft Supply Co", conn.CompanyName)
		assert.True(t, conn.IsActive)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to ErrNotFound", func(t *testing.T) {
		repo, mock, mockDB := newMockConnectionRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "quickbooks_connections" WHERE realm_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("unknown", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByRealmID(context.Background(), "unknown")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormConnectionRepository_FindActive(t *testing.T) {
	repo, mock, mockDB := newMockConnectionRepository(t)
	defer mockDB.Close()

	rows := sqlmock.NewRows([]string{"id", "realm_id", "is_active"}).
		AddRow(uuid.New(), "100", true).
		AddRow(uuid.New(), "200", true)
	mock.ExpectQuery(`SELECT \* FROM "quickbooks_connections" WHERE is_active = \$1 ORDER BY created_at ASC`).
		WithArgs(true).
		WillReturnRows(rows)

	conns, err := repo.FindActive(context.Background())

	require.NoError(t, err)
	assert.Len(t, conns, 2)
}

func TestGormConnectionRepository_Upsert(t *testing.T) {
	repo, mock, mockDB := newMockConnectionRepository(t)
	defer mockDB.Close()

	conn := accounting.NewConnection("9341452", "Craft Supply Co", accounting.TokenSet{
		AccessToken:  "at",
		RefreshToken: "rt",
		ExpiresAt:    time.Now().Add(time.Hour),
	})

	mock.ExpectExec(`INSERT INTO "quickbooks_connections" .* ON CONFLICT \("realm_id"\) DO UPDATE SET .*`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), conn)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormConnectionRepository_Delete(t *testing.T) {
	t.Run("deletes existing row", func(t *testing.T) {
		repo, mock, mockDB := newMockConnectionRepository(t)
		defer mockDB.Close()

		id := uuid.New()
		mock.ExpectExec(`DELETE FROM "quickbooks_connections" WHERE id = \$1`).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), id))
	})

	t.Run("missing row maps to ErrNotFound", func(t *testing.T) {
		repo, mock, mockDB := newMockConnectionRepository(t)
		defer mockDB.Close()

		id := uuid.New()
		mock.ExpectExec(`DELETE FROM "quickbooks_connections" WHERE id = \$1`).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), id), shared.ErrNotFound)
	})
}
