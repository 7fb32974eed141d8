package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinique-ouest/planning-infirmier/backend/internal/domain"
)

func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT id, password_hash, role, created_at
		FROM users WHERE username = $1
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	user := &domain.User{
		Username: username,
	}

	dst := []any{&user.ID, &user.PasswordHash, &user.Role, &user.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, username).Scan(dst...); err != nil {
		return nil, wrapError("impossible de récupérer l'utilisateur", err)
	}

	return user, nil
}

func (r *Repository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT username, password_hash, role, created_at
		FROM users WHERE id = $1
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	user := &domain.User{
		ID: id,
	}

	dst := []any{&user.Username, &user.PasswordHash, &user.Role, &user.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, wrapError("impossible de récupérer l'utilisateur", err)
	}

	return user, nil
}

// CreateAccount insère un compte et renvoie son identifiant. L'opération
// n'est PAS idempotente : deux appels créent deux comptes distincts, les
// appelants ne doivent jamais la retenter aveuglément.
func (r *Repository) CreateAccount(ctx context.Context, username, passwordHash string, role domain.Role) (string, error) {
	query := `
		INSERT INTO users (id, username, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	id := uuid.NewString()
	if err := r.dbpool.QueryRowContext(ctx, query, id, username, passwordHash, role).Scan(&id); err != nil {
		return "", wrapError("impossible de créer le compte", err)
	}

	return id, nil
}

func (r *Repository) GetAllUsers(ctx context.Context) ([]*domain.User, error) {
	query := `
		SELECT id, username, password_hash, role, created_at
		FROM users ORDER BY username
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, wrapError("impossible de récupérer les utilisateurs", err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user := &domain.User{}
		dst := []any{&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, wrapError("impossible de récupérer les utilisateurs", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapError("impossible de récupérer les utilisateurs", err)
	}

	return users, nil
}
