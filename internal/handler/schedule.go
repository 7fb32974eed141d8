package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/clinique-ouest/planning-infirmier/backend/internal/domain"
	"github.com/clinique-ouest/planning-infirmier/backend/internal/realtime"
)

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()

	data := struct {
		Nurses    []domain.Nurse         `json:"nurses"`
		Schedule  domain.MonthlySchedule `json:"schedule"`
		Year      int                    `json:"year"`
		Month     int                    `json:"month"`
		Loading   bool                   `json:"loading"`
		LastError string                 `json:"lastError,omitempty"`
	}{
		Nurses:   snap.Nurses,
		Schedule: snap.Schedule,
		Year:     snap.Year,
		Month:    snap.Month,
		Loading:  snap.Loading,
	}
	if snap.LastError != nil {
		data.LastError = snap.LastError.Message
	}

	h.successResponse(w, r, "planning récupéré", data)
}

func (h *Handler) SetMonth(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Year  int `json:"year" validate:"required"`
		Month int `json:"month" validate:"required,min=1,max=12"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.store.SetMonth(r.Context(), req.Year, req.Month); err != nil {
		h.errorResponse(w, r, "impossible de changer de mois")
		return
	}

	h.successResponse(w, r, "mois affiché modifié", nil)
}

func (h *Handler) dayParams(r *http.Request) (year, month, day int, err error) {
	year, err = strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		return 0, 0, 0, domain.NewValidationError("année invalide")
	}
	month, err = strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		return 0, 0, 0, domain.NewValidationError("mois invalide")
	}
	day, err = strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil {
		return 0, 0, 0, domain.NewValidationError("jour invalide")
	}
	if _, err := domain.DayIndex(year, month, day); err != nil {
		return 0, 0, 0, err
	}
	return year, month, day, nil
}

func (h *Handler) GetDay(w http.ResponseWriter, r *http.Request) {
	nurse := r.Context().Value(NurseCtx).(*domain.Nurse)

	year, month, day, err := h.dayParams(r)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	h.successResponse(w, r, "journée récupérée", h.store.GetDay(nurse.ID, year, month, day))
}

// UpdateDay change le statut d'une journée. Les notes fournies remplacent
// la séquence existante ; si le champ est omis, les notes courantes sont
// conservées.
func (h *Handler) UpdateDay(w http.ResponseWriter, r *http.Request) {
	nurse := r.Context().Value(NurseCtx).(*domain.Nurse)
	actor := r.Context().Value(MyInfoCtx).(*domain.User)

	if !domain.CanEditDay(actor, nurse) {
		h.errorResponse(w, r, "vous n'êtes pas autorisé à modifier ce planning")
		return
	}

	var req struct {
		Status string        `json:"status" validate:"required"`
		Notes  []domain.Note `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	year, month, day, err := h.dayParams(r)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	status := domain.ShiftStatus(req.Status)
	if !status.Valid() {
		h.errorResponse(w, r, "statut de service inconnu")
		return
	}

	// se composer sur l'état connu de la passerelle : le miroir local ne
	// couvre que le mois affiché
	current, err := h.store.FetchDay(r.Context(), nurse.ID, year, month, day)
	if err != nil {
		h.errorResponse(w, r, "impossible de charger la journée")
		return
	}

	notes := req.Notes
	if notes == nil {
		notes = current.Notes
	} else if err := domain.CanReplaceNotes(actor, current.Notes, notes); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	if err := h.store.UpdateSchedule(r.Context(), nurse.ID, year, month, day, status, notes); err != nil {
		h.errorResponse(w, r, "impossible d'enregistrer la journée")
		return
	}

	h.publishChange(r.Context(), realtime.TableSchedules)

	h.successResponse(w, r, "planning mis à jour", domain.DaySchedule{Status: status, Notes: notes})
}

func (h *Handler) AddNote(w http.ResponseWriter, r *http.Request) {
	nurse := r.Context().Value(NurseCtx).(*domain.Nurse)
	actor := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		Text string `json:"text" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	year, month, day, err := h.dayParams(r)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	// la mutation se compose sur la journée que la passerelle connaît,
	// pas sur le miroir local qui peut refléter un autre mois
	current, err := h.store.FetchDay(r.Context(), nurse.ID, year, month, day)
	if err != nil {
		h.errorResponse(w, r, "impossible de charger la journée")
		return
	}

	notes, err := domain.AppendNote(current.Notes, req.Text, actor.Username, actor.ID, time.Now())
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	if err := h.store.UpdateSchedule(r.Context(), nurse.ID, year, month, day, current.Status, notes); err != nil {
		h.errorResponse(w, r, "impossible d'ajouter la note")
		return
	}

	h.publishChange(r.Context(), realtime.TableSchedules)

	h.successResponse(w, r, "note ajoutée", domain.DaySchedule{Status: current.Status, Notes: notes})
}

func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	nurse := r.Context().Value(NurseCtx).(*domain.Nurse)
	actor := r.Context().Value(MyInfoCtx).(*domain.User)

	timestamp, err := strconv.ParseInt(chi.URLParam(r, "timestamp"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, "identifiant de note invalide")
		return
	}

	year, month, day, err := h.dayParams(r)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	current, err := h.store.FetchDay(r.Context(), nurse.ID, year, month, day)
	if err != nil {
		h.errorResponse(w, r, "impossible de charger la journée")
		return
	}

	notes, err := domain.RemoveNote(current.Notes, timestamp, actor)
	if err != nil {
		// refus d'autorisation ou note introuvable : la séquence de notes
		// reste inchangée, aucune écriture n'est émise
		h.errorResponse(w, r, err.Error())
		return
	}

	if err := h.store.UpdateSchedule(r.Context(), nurse.ID, year, month, day, current.Status, notes); err != nil {
		h.errorResponse(w, r, "impossible de supprimer la note")
		return
	}

	h.publishChange(r.Context(), realtime.TableSchedules)

	h.successResponse(w, r, "note supprimée", domain.DaySchedule{Status: current.Status, Notes: notes})
}
