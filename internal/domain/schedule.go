package domain

import (
	"fmt"
	"strings"
	"time"
)

// Nurse est un membre du personnel planifié. UserID rattache l'infirmière
// à son compte de connexion lorsqu'il existe.
type Nurse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	UserID string `json:"userId,omitempty"`
}

// Note est une annotation libre attachée à la journée d'une infirmière.
// Le timestamp, unique au sein de la journée, sert d'identité pour la
// suppression ; une note n'est jamais modifiée en place.
type Note struct {
	Text      string `json:"text"`
	Author    string `json:"author"`
	AuthorID  string `json:"authorId"`
	Timestamp int64  `json:"timestamp"`
}

type DaySchedule struct {
	Status ShiftStatus `json:"status"`
	Notes  []Note      `json:"notes"`
}

// MonthlySchedule associe la clé "{année}-{mois}-{id infirmière}" à un
// tableau de journées indexé par jour-1, toujours de la longueur exacte
// du mois calendaire.
type MonthlySchedule map[string][]DaySchedule

// EmptyDay est la journée synthétisée pour toute entrée absente.
func EmptyDay() DaySchedule {
	return DaySchedule{Status: StatusNone, Notes: []Note{}}
}

// ScheduleKey est l'unique schéma d'adressage dans MonthlySchedule.
func ScheduleKey(year, month int, nurseID string) string {
	return fmt.Sprintf("%d-%d-%s", year, month, nurseID)
}

func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DayIndex convertit un jour calendaire (1..jours du mois) en index de
// tableau. Un jour hors du mois est une erreur de validation.
func DayIndex(year, month, day int) (int, error) {
	if err := ValidateMonth(year, month); err != nil {
		return 0, err
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return 0, NewValidationError(fmt.Sprintf("le jour %d n'existe pas pour %d-%d", day, year, month))
	}
	return day - 1, nil
}

func ValidateMonth(year, month int) error {
	if year < 1 {
		return NewValidationError(fmt.Sprintf("année invalide : %d", year))
	}
	if month < 1 || month > 12 {
		return NewValidationError(fmt.Sprintf("mois invalide : %d", month))
	}
	return nil
}

// AppendNote ajoute une note en fin de séquence. Le texte doit être non
// vide une fois les espaces retirés. Le timestamp est pris sur l'horloge
// en millisecondes ; deux notes créées dans la même milliseconde restent
// distinctes grâce à l'incrément monotone.
func AppendNote(notes []Note, text, author, authorID string, now time.Time) ([]Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return notes, NewValidationError("le texte de la note ne peut pas être vide")
	}

	ts := now.UnixMilli()
	for _, n := range notes {
		if n.Timestamp >= ts {
			ts = n.Timestamp + 1
		}
	}

	out := make([]Note, 0, len(notes)+1)
	out = append(out, notes...)
	out = append(out, Note{
		Text:      text,
		Author:    author,
		AuthorID:  authorID,
		Timestamp: ts,
	})
	return out, nil
}

// RemoveNote supprime la note identifiée par son timestamp si l'acteur y
// est autorisé. En cas de refus ou de note introuvable, la séquence est
// renvoyée inchangée avec l'erreur correspondante.
func RemoveNote(notes []Note, timestamp int64, actor *User) ([]Note, error) {
	for i, n := range notes {
		if n.Timestamp != timestamp {
			continue
		}
		if !CanDeleteNote(actor, n) {
			return notes, NewAuthorizationError("seul l'auteur de la note ou un administrateur peut la supprimer")
		}
		out := make([]Note, 0, len(notes)-1)
		out = append(out, notes[:i]...)
		out = append(out, notes[i+1:]...)
		return out, nil
	}
	return notes, NewValidationError("note introuvable")
}
