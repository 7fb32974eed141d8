package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinique-ouest/planning-infirmier/backend/internal/config"
	"github.com/clinique-ouest/planning-infirmier/backend/internal/domain"
	"github.com/clinique-ouest/planning-infirmier/backend/internal/handler"
	"github.com/clinique-ouest/planning-infirmier/backend/internal/realtime"
	"github.com/clinique-ouest/planning-infirmier/backend/internal/repository"
	"github.com/clinique-ouest/planning-infirmier/backend/internal/store"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	/**********************************************
	 * création du logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * chargement de la configuration
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("impossible de charger la configuration", "error", err)
		return
	}

	/**********************************************
	 * connexion à la base de données
	 **********************************************/
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("impossible de créer le pool de connexions", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open ne fait que créer le pool, il faut un ping explicite
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("impossible de joindre la base de données", "error", err)
		return
	}

	/**********************************************
	 * création du repository
	 **********************************************/
	repo := repository.NewRepository(cfg, dbpool)

	/**********************************************
	 * garantir l'existence de l'administrateur initial
	 **********************************************/
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.InitialAdmin.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("impossible de hacher le mot de passe de l'administrateur initial", "error", err)
		return
	}
	if _, err := repo.CreateAccount(context.Background(), cfg.InitialAdmin.Username, string(passwordHash), domain.RoleAdmin); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "users_username_key":
			// l'administrateur initial existe déjà, rien à faire
		default:
			logger.Error("impossible de créer l'administrateur initial", "error", err)
			return
		}
	}

	/**********************************************
	 * connexion à redis
	 **********************************************/
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})
	defer rdb.Close()

	ctx, cancel = context.WithTimeout(context.Background(), time.Duration(cfg.Redis.ConnectTimeout)*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Error("impossible de joindre redis", "error", err)
		return
	}

	/**********************************************
	 * création du magasin et chargement initial
	 **********************************************/
	st := store.New(repo)
	if err := st.LoadData(context.Background()); err != nil {
		// le magasin garde un état vide cohérent, les rechargements
		// suivants rattraperont
		logger.Warn("chargement initial du planning en échec", "error", err)
	}

	/**********************************************
	 * abonnement aux changements distants
	 **********************************************/
	subscriber := realtime.NewSubscriber(rdb, cfg.Realtime.ChannelPrefix, time.Duration(cfg.Realtime.DebounceMs)*time.Millisecond)
	unsubscribe, err := subscriber.Subscribe(context.Background(), func() {
		logger.Info("changements détectés, actualisation des données")
		if err := st.LoadData(context.Background()); err != nil {
			logger.Error("resynchronisation en échec", "error", err)
		}
	})
	if err != nil {
		logger.Error("impossible de s'abonner aux changements", "error", err)
		return
	}
	defer unsubscribe()

	/**********************************************
	 * création du handler
	 **********************************************/
	publisher := realtime.NewPublisher(rdb, cfg.Realtime.ChannelPrefix)
	handler, err := handler.NewHandler(cfg, repo, st, publisher)
	if err != nil {
		logger.Error("impossible de créer le handler", "error", err)
		return
	}
	handler.RegisterRoutes()

	/**********************************************
	 * démarrage du serveur HTTP
	 **********************************************/
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      handler.Mux,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("démarrage du serveur...", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("impossible de démarrer le serveur", slog.String("error", err.Error()))
			return
		}
	}()

	<-quit
	logger.Info("arrêt du serveur...")

	ctx, cancel = context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("échec de l'arrêt du serveur", slog.String("error", err.Error()))
	}
	logger.Info("serveur arrêté proprement")
}
