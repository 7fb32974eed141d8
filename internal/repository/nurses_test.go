package repository_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinique-ouest/planning-infirmier/backend/internal/domain"
)

func TestFetchNurses(t *testing.T) {
	repo, mock := newTestRepository(t)

	rows := sqlmock.NewRows([]string{"id", "name", "user_id"}).
		AddRow("n1", "Alice Moreau", "u1").
		AddRow("n2", "Berthe Lefèvre", nil)
	mock.ExpectQuery(`SELECT id, name, user_id\s+FROM nurses ORDER BY name`).
		WillReturnRows(rows)

	nurses, err := repo.FetchNurses(context.Background())
	require.NoError(t, err)
	require.Len(t, nurses, 2)

	assert.Equal(t, domain.Nurse{ID: "n1", Name: "Alice Moreau", UserID: "u1"}, nurses[0])
	// user_id NULL laisse le rattachement vide
	assert.Equal(t, domain.Nurse{ID: "n2", Name: "Berthe Lefèvre"}, nurses[1])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateNurseGeneratesID(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectExec(`INSERT INTO nurses`).
		WithArgs(sqlmock.AnyArg(), "Alice Moreau", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	nurse := domain.Nurse{Name: "Alice Moreau"}
	require.NoError(t, repo.CreateNurse(context.Background(), &nurse))
	assert.NotEmpty(t, nurse.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateNurseKeepsProvidedID(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectExec(`INSERT INTO nurses`).
		WithArgs("n1", "Alice Moreau", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	nurse := domain.Nurse{ID: "n1", Name: "Alice Moreau", UserID: "u1"}
	require.NoError(t, repo.CreateNurse(context.Background(), &nurse))
	assert.Equal(t, "n1", nurse.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteNurse(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectExec(`DELETE FROM nurses WHERE id = \$1`).
		WithArgs("n1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteNurse(context.Background(), "n1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteNurseAbsentSignalsNoRows(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectExec(`DELETE FROM nurses WHERE id = \$1`).
		WithArgs("fantome").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteNurse(context.Background(), "fantome")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
