package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/clinique-ouest/planning-infirmier/backend/internal/domain"
)

func (r *Repository) FetchNurses(ctx context.Context) ([]domain.Nurse, error) {
	query := `
		SELECT id, name, user_id
		FROM nurses ORDER BY name
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, wrapError("impossible de récupérer la liste des infirmières", err)
	}
	defer rows.Close()

	nurses := make([]domain.Nurse, 0)
	for rows.Next() {
		var nurse domain.Nurse
		var userID sql.NullString
		if err := rows.Scan(&nurse.ID, &nurse.Name, &userID); err != nil {
			return nil, wrapError("impossible de récupérer la liste des infirmières", err)
		}
		if userID.Valid {
			nurse.UserID = userID.String
		}
		nurses = append(nurses, nurse)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapError("impossible de récupérer la liste des infirmières", err)
	}

	return nurses, nil
}

// CreateNurse est un upsert sur l'identifiant : rejouer la création d'une
// infirmière existante est sans effet destructeur.
func (r *Repository) CreateNurse(ctx context.Context, nurse *domain.Nurse) error {
	if nurse.ID == "" {
		nurse.ID = uuid.NewString()
	}

	query := `
		INSERT INTO nurses (id, name, user_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, user_id = EXCLUDED.user_id
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	var userID any
	if nurse.UserID != "" {
		userID = nurse.UserID
	}

	if _, err := r.dbpool.ExecContext(ctx, query, nurse.ID, nurse.Name, userID); err != nil {
		return wrapError("impossible d'enregistrer l'infirmière", err)
	}

	return nil
}

// DeleteNurse supprime l'infirmière ; les lignes de planning suivent en
// cascade via la clé étrangère. Une infirmière déjà absente est signalée
// par sql.ErrNoRows.
func (r *Repository) DeleteNurse(ctx context.Context, nurseID string) error {
	query := `
		DELETE FROM nurses WHERE id = $1
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, query, nurseID)
	if err != nil {
		return wrapError("impossible de supprimer l'infirmière", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}

	return nil
}
