package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinique-ouest/planning-infirmier/backend/internal/domain"
	"github.com/clinique-ouest/planning-infirmier/backend/internal/realtime"
	"github.com/clinique-ouest/planning-infirmier/backend/internal/utils"
)

func (h *Handler) GetAllNurses(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "liste des infirmières récupérée", h.store.Nurses())
}

func (h *Handler) CreateNurse(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name" validate:"required"`
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// créer d'abord le compte de connexion lorsqu'il est demandé
	var userID string
	if req.Username != "" {
		if !utils.ValidateUsername(req.Username) {
			h.errorResponse(w, r, "le nom d'utilisateur ne doit contenir que des lettres, des chiffres et des underscores (3 caractères minimum)")
			return
		}
		if err := utils.ValidatePassword(req.Password); err != nil {
			h.errorResponse(w, r, err.Error())
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		userID, err = h.repository.CreateAccount(r.Context(), strings.ToLower(req.Username), string(hashedPassword), domain.RoleNurse)
		if err != nil {
			var pgErr *pgconn.PgError
			switch {
			case errors.As(err, &pgErr) && pgErr.ConstraintName == "users_username_key":
				h.errorResponse(w, r, "le nom d'utilisateur existe déjà")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}
	}

	nurse, err := h.store.AddNurse(r.Context(), domain.Nurse{
		Name:   req.Name,
		UserID: userID,
	})
	if err != nil {
		if userID != "" {
			// le compte vient d'être créé mais l'infirmière non : compte
			// orphelin. CreateAccount n'étant pas idempotente, on ne retente
			// rien ; l'incohérence est tracée pour nettoyage manuel.
			slog.Error("compte orphelin après échec de la création de l'infirmière",
				"userId", userID, "username", strings.ToLower(req.Username), "error", err)
		}
		h.errorResponse(w, r, "impossible d'ajouter l'infirmière")
		return
	}

	h.publishChange(r.Context(), realtime.TableNurses)
	if userID != "" {
		h.publishChange(r.Context(), realtime.TableUsers)
	}

	h.successResponse(w, r, "infirmière ajoutée", nurse)
}

func (h *Handler) DeleteNurse(w http.ResponseWriter, r *http.Request) {
	nurse := r.Context().Value(NurseCtx).(*domain.Nurse)

	if err := h.store.DeleteNurse(r.Context(), nurse.ID); err != nil {
		h.errorResponse(w, r, "impossible de supprimer l'infirmière")
		return
	}

	h.publishChange(r.Context(), realtime.TableNurses)
	h.publishChange(r.Context(), realtime.TableSchedules)

	h.successResponse(w, r, "infirmière supprimée", nil)
}

func (h *Handler) publishChange(ctx context.Context, table string) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.Changed(ctx, table); err != nil {
		slog.Warn("notification de changement non diffusée", "table", table, "error", err)
	}
}
