package seed

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/clinique-ouest/planning-infirmier/backend/internal/domain"
	"github.com/clinique-ouest/planning-infirmier/backend/internal/repository"
	"github.com/clinique-ouest/planning-infirmier/backend/internal/utils"
)

// InsertRandomNurses crée n infirmières, chacune avec son compte de
// connexion protégé par le mot de passe fourni.
func InsertRandomNurses(ctx context.Context, r *repository.Repository, n int, password string) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("impossible de hacher le mot de passe de seed", "error", err)
		return
	}

	for i := 0; i < n; i++ {
		name := utils.GenerateRandomFrenchName()
		username := utils.GenerateUsernameFromName(name)

		userID, err := r.CreateAccount(ctx, username, string(passwordHash), domain.RoleNurse)
		if err != nil {
			slog.Error("impossible de créer le compte", "username", username, "error", err)
			continue
		}

		nurse := domain.Nurse{Name: name, UserID: userID}
		if err := r.CreateNurse(ctx, &nurse); err != nil {
			slog.Error("impossible de créer l'infirmière", "name", name, "error", err)
			continue
		}

		slog.Info("infirmière insérée", "name", name, "username", username, "password", password)
	}
}

// InsertRandomMonth remplit le mois donné pour toutes les infirmières
// existantes : statuts aléatoires et quelques notes.
func InsertRandomMonth(ctx context.Context, r *repository.Repository, year, month int) {
	nurses, err := r.FetchNurses(ctx)
	if err != nil {
		slog.Error("impossible de récupérer les infirmières", "error", err)
		return
	}

	days := domain.DaysInMonth(year, month)
	for _, nurse := range nurses {
		for day := 1; day <= days; day++ {
			status := utils.GenerateRandomStatus()
			if status == domain.StatusNone {
				// les journées sans statut restent absentes de la base,
				// le magasin les synthétise
				continue
			}

			notes := []domain.Note{}
			if rand.Intn(10) == 0 {
				notes, _ = domain.AppendNote(notes, utils.GenerateRandomNoteText(), "seed", "", time.Now())
			}

			if err := r.WriteDay(ctx, nurse.ID, year, month, day, status, notes); err != nil {
				slog.Error("impossible d'écrire la journée", "nurse", nurse.Name, "day", day, "error", err)
			}
		}
		slog.Info("planning du mois inséré", "nurse", nurse.Name, "year", year, "month", month)
	}
}
