package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"bistro/internal/model"
)

// setupMockDB opens a GORM handle over sqlmock using the MySQL dialect.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return openGorm(t, sqlDB), mock
}

func openGorm(t *testing.T, sqlDB *sql.DB) *gorm.DB {
	t.Helper()
	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gormDB
}

func TestUserRepository_FindByEmail(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
		expectedRole  model.Role
	}{
		{
			name: "found",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "name", "email", "role"}).
					AddRow(1, "Admin", "admin@bistro.test", "admin")
				mock.ExpectQuery("SELECT \\* FROM `users` WHERE email = \\?").
					WillReturnRows(rows)
			},
			expectedRole: model.RoleAdmin,
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM `users` WHERE email = \\?").
					WillReturnRows(sqlmock.NewRows([]string{"id", "email"}))
			},
			expectedError: gorm.ErrRecordNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			tt.setupMock(mock)
			repo := NewUserRepository(db)

			user, err := repo.FindByEmail(context.Background(), "admin@bistro.test")
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedRole, user.Role)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry 'guest@bistro.test' for key 'users.idx_users_email'"})

	err := NewUserRepository(db).Create(context.Background(), &model.User{Email: "guest@bistro.test", Role: model.RoleUser})

	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_SetRole(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectExec("UPDATE `users` SET `role`=\\?.*WHERE email = \\?").
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := NewUserRepository(db).SetRole(context.Background(), "guest@bistro.test", model.RoleAdmin)

	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_DeleteByEmail(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectExec("DELETE FROM `users` WHERE email = \\?").
		WithArgs("gone@bistro.test").
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := NewUserRepository(db).DeleteByEmail(context.Background(), "gone@bistro.test")

	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMenuRepository_List(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		filter    MenuFilter
		setupMock func(sqlmock.Sqlmock)
		expected  int
	}{
		{
			name:   "all items newest first",
			filter: MenuFilter{},
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "name", "category", "price", "created_at"}).
					AddRow("m2", "Pizza", "pizza", "14.99", now).
					AddRow("m1", "Salad", "salad", "10.00", now.Add(-time.Hour))
				mock.ExpectQuery("SELECT \\* FROM `menu_items` ORDER BY created_at DESC").
					WillReturnRows(rows)
			},
			expected: 2,
		},
		{
			name:   "category filter",
			filter: MenuFilter{Category: "salad"},
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "name", "category", "price", "created_at"}).
					AddRow("m1", "Salad", "salad", "10.00", now)
				mock.ExpectQuery("SELECT \\* FROM `menu_items` WHERE category = \\? ORDER BY created_at DESC").
					WithArgs("salad").
					WillReturnRows(rows)
			},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			tt.setupMock(mock)

			items, err := NewMenuRepository(db).List(context.Background(), tt.filter)

			require.NoError(t, err)
			assert.Len(t, items, tt.expected)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMenuRepository_Update(t *testing.T) {
	t.Run("empty patch skips the database", func(t *testing.T) {
		db, mock := setupMockDB(t)

		affected, err := NewMenuRepository(db).Update(context.Background(), "m1", model.MenuItemPatch{})

		require.NoError(t, err)
		assert.Equal(t, int64(0), affected)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("partial update", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectExec("UPDATE `menu_items` SET .*`name`=\\?.*WHERE id = \\?").
			WillReturnResult(sqlmock.NewResult(0, 1))

		name := "Greek Salad"
		affected, err := NewMenuRepository(db).Update(context.Background(), "m1", model.MenuItemPatch{Name: &name})

		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCartRepository_DeleteByIDs(t *testing.T) {
	t.Run("empty list never reaches the database", func(t *testing.T) {
		db, mock := setupMockDB(t)

		affected, err := NewCartRepository(db).DeleteByIDs(context.Background(), "guest@bistro.test", nil)

		require.NoError(t, err)
		assert.Equal(t, int64(0), affected)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("deletes the listed ids owned by the payer", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectExec("DELETE FROM `carts` WHERE id IN \\(\\?,\\?\\) AND email = \\?$").
			WithArgs("A", "B", "guest@bistro.test").
			WillReturnResult(sqlmock.NewResult(0, 1))

		affected, err := NewCartRepository(db).DeleteByIDs(context.Background(), "guest@bistro.test", []string{"A", "B"})

		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("store failure is returned", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectExec("DELETE FROM `carts`").WillReturnError(errors.New("connection reset"))

		_, err := NewCartRepository(db).DeleteByIDs(context.Background(), "guest@bistro.test", []string{"A"})

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCartRepository_DeleteOwned(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectExec("DELETE FROM `carts` WHERE id = \\? AND email = \\?$").
		WithArgs("c1", "guest@bistro.test").
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := NewCartRepository(db).DeleteOwned(context.Background(), "c1", "guest@bistro.test")

	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.MatchExpectationsInOrder(false)
	mock.ExpectExec("INSERT INTO `payments`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `payment_cart_items`").WillReturnResult(sqlmock.NewResult(1, 2))
	mock.ExpectExec("INSERT INTO `payment_menu_items`").WillReturnResult(sqlmock.NewResult(1, 2))

	payment := &model.Payment{
		Email:  "guest@bistro.test",
		Price:  decimal.RequireFromString("20.00"),
		Status: model.PaymentStatusPending,
	}
	payment.SetSettledCartIDs([]string{"c1", "c2"})
	payment.SetMenuItemIDs([]string{"m1", "m1"})

	err := NewPaymentRepository(db).Create(context.Background(), payment)

	require.NoError(t, err)
	assert.NotEmpty(t, payment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsRepository_TotalRevenue(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		expected decimal.Decimal
	}{
		{name: "no payments", value: "0", expected: decimal.Zero},
		{name: "null sum", value: nil, expected: decimal.Zero},
		{name: "some payments", value: "42.50", expected: decimal.RequireFromString("42.5")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			mock.ExpectQuery("SELECT COALESCE\\(SUM\\(price\\), 0\\) FROM `payments`").
				WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(tt.value))

			total, err := NewStatsRepository(db).TotalRevenue(context.Background())

			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(total), "expected %s, got %s", tt.expected, total)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStatsRepository_Counts(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `menu_items`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(12)))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `payments`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(5)))

	repo := NewStatsRepository(db)
	ctx := context.Background()

	menuItems, err := repo.CountMenuItems(ctx)
	require.NoError(t, err)
	payments, err := repo.CountPayments(ctx)
	require.NoError(t, err)
	users, err := repo.CountUsers(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(12), menuItems)
	assert.Equal(t, int64(3), payments)
	assert.Equal(t, int64(5), users)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsRepository_OrderStats(t *testing.T) {
	db, mock := setupMockDB(t)
	rows := sqlmock.NewRows([]string{"category", "count", "revenue"}).
		AddRow("Salad", int64(2), "20.00")
	mock.ExpectQuery("SELECT m.category AS category, COUNT\\(\\*\\) AS count.* FROM payment_menu_items AS pmi JOIN menu_items AS m ON m.id = pmi.menu_item_id GROUP BY .*category").
		WillReturnRows(rows)

	stats, err := NewStatsRepository(db).OrderStats(context.Background())

	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "Salad", stats[0].Category)
	assert.Equal(t, int64(2), stats[0].Count)
	assert.True(t, decimal.NewFromInt(20).Equal(stats[0].Revenue))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsRepository_OrderStats_DropsUnknownMenuIDs(t *testing.T) {
	// The matcher rejects any outer join so ids with no menu row never form
	// a category group.
	matcher := sqlmock.QueryMatcherFunc(func(expected, actual string) error {
		if strings.Contains(actual, "LEFT JOIN") || strings.Contains(actual, "RIGHT JOIN") {
			return fmt.Errorf("order stats must use an inner join: %s", actual)
		}
		if !strings.Contains(actual, " JOIN menu_items AS m ON m.id = pmi.menu_item_id") {
			return fmt.Errorf("order stats must join the menu: %s", actual)
		}
		return sqlmock.QueryMatcherRegexp.Match(expected, actual)
	})
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(matcher))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	db := openGorm(t, sqlDB)

	// payment_menu_items holds m1, m1 and ghost; only the m1 rows join the
	// Salad item priced 10.
	mock.ExpectQuery("FROM payment_menu_items AS pmi").
		WillReturnRows(sqlmock.NewRows([]string{"category", "count", "revenue"}).
			AddRow("Salad", int64(2), "20.00"))

	stats, err := NewStatsRepository(db).OrderStats(context.Background())

	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "Salad", stats[0].Category)
	assert.Equal(t, int64(2), stats[0].Count)
	assert.True(t, decimal.NewFromInt(20).Equal(stats[0].Revenue))
	assert.NoError(t, mock.ExpectationsWereMet())
}
