package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/clinique-ouest/planning-infirmier/backend/internal/config"
	"github.com/clinique-ouest/planning-infirmier/backend/internal/repository"
	"github.com/clinique-ouest/planning-infirmier/backend/internal/seed"
	"github.com/clinique-ouest/planning-infirmier/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var year int
	var month int

	flag.IntVar(&op, "op", 0, "opération à exécuter (1 : initialiser le schéma, 2 : insérer des infirmières aléatoires, 3 : remplir un mois aléatoire)")
	flag.IntVar(&n, "n", 5, "nombre d'infirmières à insérer")
	flag.IntVar(&year, "year", time.Now().Year(), "année du mois à remplir")
	flag.IntVar(&month, "month", int(time.Now().Month()), "mois à remplir")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// lecture de la configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("impossible de charger la configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// création du pool de connexions
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("impossible de créer le pool de connexions", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbpool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("impossible de joindre la base de données", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 1:
		if err := repo.InitSchema(context.Background()); err != nil {
			logger.Error("initialisation du schéma en échec", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("schéma initialisé")
	case 2:
		password := cfg.Seed.NursePassword
		if password == "" {
			password = utils.GenerateRandomPassword(12)
		}
		seed.InsertRandomNurses(context.Background(), repo, n, password)
	case 3:
		seed.InsertRandomMonth(context.Background(), repo, year, month)
	default:
		logger.Error("opération inconnue", "op", op)
		os.Exit(1)
	}
}
