package repository

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/clinique-ouest/planning-infirmier/backend/internal/config"
	"github.com/clinique-ouest/planning-infirmier/backend/internal/domain"
)

// Repository est la frontière de stockage durable : il implémente la
// passerelle consommée par le magasin (voir store.Gateway) ainsi que la
// gestion des comptes.
type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}

func (r *Repository) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
}

func (r *Repository) Ping(ctx context.Context) error {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	if err := r.dbpool.PingContext(ctx); err != nil {
		return domain.NewConnectivityError("base de données inaccessible", err)
	}
	return nil
}

// wrapError catégorise les défaillances du pilote : erreurs de transport en
// Connectivity, le reste en Backend. sql.ErrNoRows passe tel quel pour que
// les handlers puissent continuer à le distinguer.
func wrapError(message string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return err
	}

	var netErr net.Error
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr):
		return domain.NewBackendError(message, err)
	case errors.As(err, &netErr),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, sql.ErrConnDone):
		return domain.NewConnectivityError(message, err)
	default:
		return domain.NewBackendError(message, err)
	}
}
