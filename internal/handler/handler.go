package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/fr"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	fr_translations "github.com/go-playground/validator/v10/translations/fr"

	"github.com/clinique-ouest/planning-infirmier/backend/internal/config"
	"github.com/clinique-ouest/planning-infirmier/backend/internal/domain"
	"github.com/clinique-ouest/planning-infirmier/backend/internal/realtime"
	"github.com/clinique-ouest/planning-infirmier/backend/internal/repository"
	"github.com/clinique-ouest/planning-infirmier/backend/internal/store"
)

type Handler struct {
	validate   *validator.Validate
	config     *config.Config
	repository *repository.Repository
	store      *store.Store
	publisher  *realtime.Publisher
	translator ut.Translator

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, st *store.Store, pub *realtime.Publisher) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	fr := fr.New()
	uni := ut.New(fr, fr)
	trans, _ := uni.GetTranslator("fr")
	if err := fr_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:   validate,
		config:     cfg,
		repository: repo,
		store:      st,
		publisher:  pub,
		translator: trans,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Get("/healthz", h.Health)

	// authentification
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// tout le reste exige une session valide
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.With(h.myInfo).Get("/my-info", h.GetMyInfo)

		r.Route("/nurses", func(r chi.Router) {
			r.Get("/", h.GetAllNurses)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateNurse)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.nurseInfo)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteNurse)

				r.Route("/schedule/{year}/{month}/{day}", func(r chi.Router) {
					r.Use(h.myInfo)
					r.Get("/", h.GetDay)
					r.Put("/", h.UpdateDay)
					r.Route("/notes", func(r chi.Router) {
						r.Post("/", h.AddNote)
						r.Delete("/{timestamp}", h.DeleteNote)
					})
				})
			})
		})

		r.Route("/schedule", func(r chi.Router) {
			r.Get("/", h.GetSchedule)
			r.Put("/month", h.SetMonth)
		})
	})
}
