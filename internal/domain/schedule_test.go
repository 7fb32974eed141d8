package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinique-ouest/planning-infirmier/backend/internal/domain"
)

func TestScheduleKey(t *testing.T) {
	assert.Equal(t, "2024-3-alice-id", domain.ScheduleKey(2024, 3, "alice-id"))
	assert.Equal(t, "2025-12-n1", domain.ScheduleKey(2025, 12, "n1"))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, domain.DaysInMonth(2024, 2))
	assert.Equal(t, 28, domain.DaysInMonth(2023, 2))
	assert.Equal(t, 30, domain.DaysInMonth(2024, 4))
	assert.Equal(t, 31, domain.DaysInMonth(2024, 12))
	assert.Equal(t, 31, domain.DaysInMonth(2024, 1))
}

func TestDayIndex(t *testing.T) {
	idx, err := domain.DayIndex(2024, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	idx, err = domain.DayIndex(2024, 3, 31)
	require.NoError(t, err)
	assert.Equal(t, 30, idx)

	_, err = domain.DayIndex(2024, 3, 0)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = domain.DayIndex(2024, 4, 31)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = domain.DayIndex(2024, 13, 1)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestEmptyDay(t *testing.T) {
	day := domain.EmptyDay()
	assert.Equal(t, domain.StatusNone, day.Status)
	assert.NotNil(t, day.Notes)
	assert.Empty(t, day.Notes)
}

func TestAppendNote(t *testing.T) {
	now := time.Now()

	notes, err := domain.AppendNote(nil, "  mal de dos  ", "alice", "u1", now)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "mal de dos", notes[0].Text)
	assert.Equal(t, "alice", notes[0].Author)
	assert.Equal(t, "u1", notes[0].AuthorID)
	assert.Equal(t, now.UnixMilli(), notes[0].Timestamp)
}

func TestAppendNoteRejectsBlankText(t *testing.T) {
	notes := []domain.Note{{Text: "existante", Timestamp: 1}}

	out, err := domain.AppendNote(notes, "   ", "alice", "u1", time.Now())
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Equal(t, notes, out)
}

func TestAppendNoteSameMillisecondStaysDistinct(t *testing.T) {
	now := time.Now()

	notes, err := domain.AppendNote(nil, "première", "alice", "u1", now)
	require.NoError(t, err)
	notes, err = domain.AppendNote(notes, "deuxième", "alice", "u1", now)
	require.NoError(t, err)

	require.Len(t, notes, 2)
	assert.NotEqual(t, notes[0].Timestamp, notes[1].Timestamp)
	assert.Greater(t, notes[1].Timestamp, notes[0].Timestamp)

	// chacune reste supprimable indépendamment par son timestamp
	actor := &domain.User{ID: "u1", Role: domain.RoleNurse}
	rest, err := domain.RemoveNote(notes, notes[0].Timestamp, actor)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "deuxième", rest[0].Text)

	rest, err = domain.RemoveNote(rest, notes[1].Timestamp, actor)
	require.NoError(t, err)
	assert.Empty(t, rest)
}

func TestAppendNotePreservesInsertionOrder(t *testing.T) {
	now := time.Now()
	var notes []domain.Note
	var err error
	for _, text := range []string{"a", "b", "c"} {
		notes, err = domain.AppendNote(notes, text, "alice", "u1", now)
		require.NoError(t, err)
	}

	require.Len(t, notes, 3)
	assert.Equal(t, "a", notes[0].Text)
	assert.Equal(t, "b", notes[1].Text)
	assert.Equal(t, "c", notes[2].Text)
}

func TestRemoveNoteByAuthor(t *testing.T) {
	notes := []domain.Note{
		{Text: "a", AuthorID: "u1", Timestamp: 10},
		{Text: "b", AuthorID: "u2", Timestamp: 20},
	}
	actor := &domain.User{ID: "u1", Role: domain.RoleNurse}

	out, err := domain.RemoveNote(notes, 10, actor)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "b", out[0].Text)
}

func TestRemoveNoteByAdmin(t *testing.T) {
	notes := []domain.Note{{Text: "a", AuthorID: "u1", Timestamp: 10}}
	admin := &domain.User{ID: "boss", Role: domain.RoleAdmin}

	out, err := domain.RemoveNote(notes, 10, admin)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRemoveNoteUnauthorizedLeavesSequenceUnchanged(t *testing.T) {
	notes := []domain.Note{
		{Text: "a", AuthorID: "u1", Timestamp: 10},
		{Text: "b", AuthorID: "u1", Timestamp: 20},
	}
	intrus := &domain.User{ID: "u2", Role: domain.RoleNurse}

	out, err := domain.RemoveNote(notes, 10, intrus)
	assert.Equal(t, domain.KindAuthorization, domain.KindOf(err))
	assert.Equal(t, notes, out)
}

func TestRemoveNoteMissingTimestamp(t *testing.T) {
	notes := []domain.Note{{Text: "a", AuthorID: "u1", Timestamp: 10}}
	actor := &domain.User{ID: "u1", Role: domain.RoleNurse}

	out, err := domain.RemoveNote(notes, 99, actor)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Equal(t, notes, out)
}
