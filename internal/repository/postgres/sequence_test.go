package postgres

import (
	"context"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSequenceTestFixture(t *testing.T) (*SequenceRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := NewSequenceRepository(mock)
	return repo, mock
}

func TestSequenceRepository_Next_FreshCounterStartsAtOne(t *testing.T) {
	repo, mock := newSequenceTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO sequence_counters .+ ON CONFLICT .+ RETURNING last_value").
		WithArgs("productId").
		WillReturnRows(pgxmock.NewRows([]string{"last_value"}).AddRow(int64(1)))

	next, err := repo.Next(context.Background(), "productId")
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSequenceRepository_Next_IncrementsExistingCounter(t *testing.T) {
	repo, mock := newSequenceTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO sequence_counters").
		WithArgs("ratingId").
		WillReturnRows(pgxmock.NewRows([]string{"last_value"}).AddRow(int64(58)))

	next, err := repo.Next(context.Background(), "ratingId")
	require.NoError(t, err)
	assert.Equal(t, int64(58), next)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSequenceRepository_Next_QueryError(t *testing.T) {
	repo, mock := newSequenceTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO sequence_counters").
		WithArgs("userId").
		WillReturnError(assert.AnError)

	next, err := repo.Next(context.Background(), "userId")
	assert.Zero(t, next)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
