package repository_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinique-ouest/planning-infirmier/backend/internal/config"
	"github.com/clinique-ouest/planning-infirmier/backend/internal/domain"
	"github.com/clinique-ouest/planning-infirmier/backend/internal/repository"
)

func newTestRepository(t *testing.T) (*repository.Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{}
	cfg.Database.QueryTimeout = 5

	return repository.NewRepository(cfg, db), mock
}

func TestFetchMonthScheduleFillsMissingDays(t *testing.T) {
	repo, mock := newTestRepository(t)

	rows := sqlmock.NewRows([]string{"day", "status", "notes"}).
		AddRow(10, "travail", []byte(`[{"text":"mal de dos","author":"alice","authorId":"u1","timestamp":1709990000000}]`)).
		AddRow(15, "vacances", []byte(`[]`))
	mock.ExpectQuery(`SELECT day, status, notes\s+FROM schedules`).
		WithArgs("n1", 2024, 3).
		WillReturnRows(rows)

	schedule, err := repo.FetchMonthSchedule(context.Background(), "n1", 2024, 3)
	require.NoError(t, err)
	require.Len(t, schedule, 31)

	assert.Equal(t, domain.StatusTravail, schedule[9].Status)
	require.Len(t, schedule[9].Notes, 1)
	assert.Equal(t, "mal de dos", schedule[9].Notes[0].Text)
	assert.Equal(t, int64(1709990000000), schedule[9].Notes[0].Timestamp)

	assert.Equal(t, domain.StatusVacances, schedule[14].Status)
	assert.Empty(t, schedule[14].Notes)

	// tous les autres jours sont comblés par la journée par défaut
	assert.Equal(t, domain.EmptyDay(), schedule[0])
	assert.Equal(t, domain.EmptyDay(), schedule[30])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchMonthScheduleSkipsOutOfMonthRows(t *testing.T) {
	repo, mock := newTestRepository(t)

	rows := sqlmock.NewRows([]string{"day", "status", "notes"}).
		AddRow(31, "travail", []byte(`[]`)).
		AddRow(3, "repos", []byte(`[]`))
	mock.ExpectQuery(`SELECT day, status, notes\s+FROM schedules`).
		WithArgs("n1", 2024, 4).
		WillReturnRows(rows)

	schedule, err := repo.FetchMonthSchedule(context.Background(), "n1", 2024, 4)
	require.NoError(t, err)
	require.Len(t, schedule, 30)
	assert.Equal(t, domain.StatusRepos, schedule[2].Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchMonthScheduleNormalizesUnknownStatus(t *testing.T) {
	repo, mock := newTestRepository(t)

	rows := sqlmock.NewRows([]string{"day", "status", "notes"}).
		AddRow(1, "garde_de_nuit", nil)
	mock.ExpectQuery(`SELECT day, status, notes\s+FROM schedules`).
		WithArgs("n1", 2024, 3).
		WillReturnRows(rows)

	schedule, err := repo.FetchMonthSchedule(context.Background(), "n1", 2024, 3)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNone, schedule[0].Status)
	assert.NotNil(t, schedule[0].Notes)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchMonthScheduleRejectsInvalidMonth(t *testing.T) {
	repo, _ := newTestRepository(t)

	_, err := repo.FetchMonthSchedule(context.Background(), "n1", 2024, 13)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestWriteDayUpserts(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectExec(`INSERT INTO schedules`).
		WithArgs("n1", 2024, 3, 10, "travail", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.WriteDay(context.Background(), "n1", 2024, 3, 10, domain.StatusTravail, []domain.Note{
		{Text: "mal de dos", Author: "alice", AuthorID: "u1", Timestamp: 1709990000000},
	})
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWriteDayRejectsInvalidInput(t *testing.T) {
	repo, mock := newTestRepository(t)

	err := repo.WriteDay(context.Background(), "n1", 2024, 4, 31, domain.StatusTravail, nil)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	err = repo.WriteDay(context.Background(), "n1", 2024, 4, 3, domain.ShiftStatus("nuit"), nil)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	// aucune requête ne doit partir vers la base
	assert.NoError(t, mock.ExpectationsWereMet())
}
