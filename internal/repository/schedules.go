package repository

import (
	"context"
	"encoding/json"

	"github.com/clinique-ouest/planning-infirmier/backend/internal/domain"
)

// FetchMonthSchedule renvoie toujours un tableau de la longueur exacte du
// mois : les jours sans ligne en base sont comblés par la journée par
// défaut {none, []} avant d'être renvoyés.
func (r *Repository) FetchMonthSchedule(ctx context.Context, nurseID string, year, month int) ([]domain.DaySchedule, error) {
	if err := domain.ValidateMonth(year, month); err != nil {
		return nil, err
	}

	query := `
		SELECT day, status, notes
		FROM schedules
		WHERE nurse_id = $1 AND year = $2 AND month = $3
		ORDER BY day
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, nurseID, year, month)
	if err != nil {
		return nil, wrapError("impossible de récupérer le planning du mois", err)
	}
	defer rows.Close()

	days := domain.DaysInMonth(year, month)
	schedule := make([]domain.DaySchedule, days)
	for i := range schedule {
		schedule[i] = domain.EmptyDay()
	}

	for rows.Next() {
		var day int
		var status string
		var rawNotes []byte
		if err := rows.Scan(&day, &status, &rawNotes); err != nil {
			return nil, wrapError("impossible de récupérer le planning du mois", err)
		}

		if day < 1 || day > days {
			// ligne hors du mois, ignorée comme dans les anciens imports
			continue
		}

		st := domain.ShiftStatus(status)
		if !st.Valid() {
			st = domain.StatusNone
		}

		var notes []domain.Note
		if len(rawNotes) > 0 {
			if err := json.Unmarshal(rawNotes, &notes); err != nil {
				return nil, wrapError("notes illisibles dans le planning", err)
			}
		}
		if notes == nil {
			notes = []domain.Note{}
		}

		schedule[day-1] = domain.DaySchedule{Status: st, Notes: notes}
	}

	if err := rows.Err(); err != nil {
		return nil, wrapError("impossible de récupérer le planning du mois", err)
	}

	return schedule, nil
}

// WriteDay est un upsert sur (nurse_id, year, month, day) : la dernière
// écriture gagne, il n'y a pas de fusion des listes de notes côté base.
func (r *Repository) WriteDay(ctx context.Context, nurseID string, year, month, day int, status domain.ShiftStatus, notes []domain.Note) error {
	if _, err := domain.DayIndex(year, month, day); err != nil {
		return err
	}
	if !status.Valid() {
		return domain.NewValidationError("statut de service inconnu : " + string(status))
	}

	if notes == nil {
		notes = []domain.Note{}
	}
	rawNotes, err := json.Marshal(notes)
	if err != nil {
		return domain.NewBackendError("notes insérialisables", err)
	}

	query := `
		INSERT INTO schedules (nurse_id, year, month, day, status, notes, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (nurse_id, year, month, day)
		DO UPDATE SET status = EXCLUDED.status, notes = EXCLUDED.notes, updated_at = NOW()
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, nurseID, year, month, day, string(status), rawNotes); err != nil {
		return wrapError("impossible d'enregistrer la journée", err)
	}

	return nil
}
