package repository

import (
	"context"
	"testing"
	"time"

	"aptilab/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var resultRowColumns = []string{"id", "user_email", "user_name", "score", "total_questions", "percentage", "topic", "time_spent", "created_at"}

func TestResultDatabaseAdapter_Create(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewResultDatabaseAdapter(db)

	result := &domain.TestResult{
		UserEmail: "a@b.c", UserName: "Ann", Score: 7, TotalQuestions: 10,
		Percentage: 70, Topic: "Maths", TimeSpent: 95,
	}

	mock.ExpectExec("INSERT INTO test_results").
		WithArgs("a@b.c", "Ann", 7, 10, "70", "Maths", 95).
		WillReturnResult(sqlmock.NewResult(42, 1))

	id, err := repo.Create(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, int64(42), result.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResultDatabaseAdapter_ListByEmail(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewResultDatabaseAdapter(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM test_results WHERE user_email = \? ORDER BY created_at DESC, id DESC LIMIT \?`).
		WithArgs("a@b.c", 10).
		WillReturnRows(sqlmock.NewRows(resultRowColumns).
			AddRow(2, "a@b.c", "Ann", 9, 10, "90.00", "Logic", 80, now).
			AddRow(1, "a@b.c", "Ann", 7, 10, "70.00", "Maths", 95, now.Add(-time.Hour)))

	results, err := repo.ListByEmail(context.Background(), "a@b.c", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, int64(2), results[0].ID)
	assert.Equal(t, 90.0, results[0].Percentage)
	assert.Equal(t, 70.0, results[1].Percentage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResultDatabaseAdapter_ListAll(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewResultDatabaseAdapter(db)

	mock.ExpectQuery(`SELECT .+ FROM test_results ORDER BY created_at DESC, id DESC$`).
		WillReturnRows(sqlmock.NewRows(resultRowColumns))

	results, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResultDatabaseAdapter_LatestByEmail(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewResultDatabaseAdapter(db)

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT .+ FROM test_results WHERE user_email = .+ LIMIT 1").
			WithArgs("a@b.c").
			WillReturnRows(sqlmock.NewRows(resultRowColumns).
				AddRow(5, "a@b.c", "Ann", 3, 4, "75.00", "Cloud", 40, time.Now()))

		res, err := repo.LatestByEmail(context.Background(), "a@b.c")
		require.NoError(t, err)
		require.NotNil(t, res)
		assert.Equal(t, 75.0, res.Percentage)
	})

	t.Run("none", func(t *testing.T) {
		mock.ExpectQuery("SELECT .+ FROM test_results WHERE user_email = .+ LIMIT 1").
			WithArgs("nobody@b.c").
			WillReturnRows(sqlmock.NewRows(resultRowColumns))

		res, err := repo.LatestByEmail(context.Background(), "nobody@b.c")
		assert.NoError(t, err)
		assert.Nil(t, res)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
