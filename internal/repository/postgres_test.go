package repository_test

import (
	"log/slog"
	"regexp"
	"testing"

	"github.com/UnknownOlympus/dispatch/internal/models"
	"github.com/UnknownOlympus/dispatch/internal/repository"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	fetchDriversQuery = `
	SELECT name
	FROM public.drivers
	WHERE is_active = true
	ORDER BY driver_id ASC;
`
	fetchAddressesQuery = `
	SELECT address
	FROM public.destinations
	ORDER BY address_id ASC;
`
	insertRunQuery = `
	INSERT INTO assignment_runs (run_id, strategy, total_score, match_count)
	VALUES ($1, $2, $3, $4);
`
	insertMatchQuery = `
	INSERT INTO assignment_matches (run_id, seq, driver, address, score)
	VALUES ($1, $2, $3, $4, $5);
`
	insertLeftoverQuery = `
	INSERT INTO assignment_leftovers (run_id, kind, seq, value)
	VALUES ($1, $2, $3, $4);
`
)

func TestFetchDriverNames(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()

	t.Run("error - query drivers", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(fetchDriversQuery)).WillReturnError(assert.AnError)

		names, err := repo.FetchDriverNames(ctx)

		require.Nil(t, names)
		require.ErrorContains(t, err, "failed to fetch drivers")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - scan driver", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(fetchDriversQuery)).
			WillReturnRows(pgxmock.NewRows([]string{"name", "extra"}).AddRow("Bob Obb", "unexpected"))

		names, err := repo.FetchDriverNames(ctx)

		require.Nil(t, names)
		require.ErrorContains(t, err, "failed to scan row")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - rows error", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(fetchDriversQuery)).
			WillReturnRows(
				pgxmock.NewRows([]string{"name"}).AddRow("Bob Obb").RowError(1, assert.AnError),
			)

		names, err := repo.FetchDriverNames(ctx)

		require.Nil(t, names)
		require.ErrorContains(t, err, "failed to read row")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - drivers in order", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(fetchDriversQuery)).
			WillReturnRows(pgxmock.NewRows([]string{"name"}).AddRow("Daniel Davidson").AddRow("Bob Obb"))

		names, err := repo.FetchDriverNames(ctx)

		require.NoError(t, err)
		assert.Equal(t, []string{"Daniel Davidson", "Bob Obb"}, names)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - no drivers", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(fetchDriversQuery)).
			WillReturnRows(pgxmock.NewRows([]string{"name"}))

		names, err := repo.FetchDriverNames(ctx)

		require.NoError(t, err)
		assert.Empty(t, names)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFetchAddressLines(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()

	t.Run("error - query destinations", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(fetchAddressesQuery)).WillReturnError(assert.AnError)

		lines, err := repo.FetchAddressLines(ctx)

		require.Nil(t, lines)
		require.ErrorContains(t, err, "failed to fetch destinations")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - destinations in order", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(fetchAddressesQuery)).
			WillReturnRows(pgxmock.NewRows([]string{"address"}).
				AddRow("44 Fake Dr., San Diego, CA, 92122").
				AddRow("123 Moneybags Lane, San Diego, CA, 92122"))

		lines, err := repo.FetchAddressLines(ctx)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"44 Fake Dr., San Diego, CA, 92122",
			"123 Moneybags Lane, San Diego, CA, 92122",
		}, lines)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSaveResult(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	runID := uuid.MustParse("6f1c2d1e-8c43-4a7e-9b5e-3f0f1b2a9c10")
	result := models.Result{
		TotalScore: 9,
		Matches: []models.Match{
			{Driver: "Daniel Davidson", Address: "44 Fake Dr., San Diego, CA, 92122", Score: 9},
		},
		LeftoverDrivers:   []models.Driver{models.NewDriver("Bob Obb")},
		LeftoverAddresses: []models.Address{{Full: "990 Paseo Roberto, Chula Vista, CA, 91910"}},
	}
	insertResult := pgxmock.NewResult("INSERT", 1)

	t.Run("success - everything in one transaction", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(insertRunQuery)).
			WithArgs(runID, "greedy", 9.0, 1).WillReturnResult(insertResult)
		mock.ExpectExec(regexp.QuoteMeta(insertMatchQuery)).
			WithArgs(runID, 0, "Daniel Davidson", "44 Fake Dr., San Diego, CA, 92122", 9.0).
			WillReturnResult(insertResult)
		mock.ExpectExec(regexp.QuoteMeta(insertLeftoverQuery)).
			WithArgs(runID, "driver", 0, "Bob Obb").WillReturnResult(insertResult)
		mock.ExpectExec(regexp.QuoteMeta(insertLeftoverQuery)).
			WithArgs(runID, "address", 0, "990 Paseo Roberto, Chula Vista, CA, 91910").
			WillReturnResult(insertResult)
		mock.ExpectCommit()

		err = repo.SaveResult(ctx, runID, "greedy", result)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - begin transaction", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectBegin().WillReturnError(assert.AnError)

		err = repo.SaveResult(ctx, runID, "greedy", result)

		require.ErrorContains(t, err, "failed to begin transaction")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - insert run rolls back", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(insertRunQuery)).
			WithArgs(runID, "optimal", 9.0, 1).WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err = repo.SaveResult(ctx, runID, "optimal", result)

		require.ErrorContains(t, err, "failed to insert run")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - insert match rolls back", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(insertRunQuery)).
			WithArgs(runID, "greedy", 9.0, 1).WillReturnResult(insertResult)
		mock.ExpectExec(regexp.QuoteMeta(insertMatchQuery)).
			WithArgs(runID, 0, "Daniel Davidson", "44 Fake Dr., San Diego, CA, 92122", 9.0).
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err = repo.SaveResult(ctx, runID, "greedy", result)

		require.ErrorContains(t, err, "failed to insert match")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - rollback fails too", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(insertRunQuery)).
			WithArgs(runID, "greedy", 9.0, 1).WillReturnError(assert.AnError)
		mock.ExpectRollback().WillReturnError(assert.AnError)

		err = repo.SaveResult(ctx, runID, "greedy", result)

		require.ErrorContains(t, err, "failed to insert run")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - commit", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)
		empty := models.Result{Matches: []models.Match{}}

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(insertRunQuery)).
			WithArgs(runID, "greedy", 0.0, 0).WillReturnResult(insertResult)
		mock.ExpectCommit().WillReturnError(assert.AnError)

		err = repo.SaveResult(ctx, runID, "greedy", empty)

		require.ErrorContains(t, err, "failed to commit transaction")
		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
