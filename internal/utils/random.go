package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/clinique-ouest/planning-infirmier/backend/internal/domain"
)

var commonFirstNames = []string{
	"Camille", "Julie", "Sophie", "Claire", "Lucie", "Manon", "Chloé",
	"Émilie", "Laura", "Marine", "Pauline", "Sarah", "Audrey", "Céline",
	"Antoine", "Julien", "Nicolas", "Thomas", "Maxime", "Romain",
}

var commonLastNames = []string{
	"Martin", "Bernard", "Dubois", "Thomas", "Robert", "Richard",
	"Petit", "Durand", "Leroy", "Moreau", "Simon", "Laurent",
	"Lefebvre", "Michel", "Garcia", "David", "Bertrand", "Roux",
}

func GenerateRandomFrenchName() string {
	first := commonFirstNames[rand.Intn(len(commonFirstNames))]
	last := commonLastNames[rand.Intn(len(commonLastNames))]
	return first + " " + last
}

var accentReplacer = strings.NewReplacer("é", "e", "è", "e", "ê", "e", "ë", "e", "à", "a", "ç", "c", "î", "i", "ô", "o", "û", "u")

var digits = "0123456789"

// GenerateUsernameFromName dérive un nom d'utilisateur ASCII du prénom,
// suffixé de quelques chiffres pour limiter les collisions.
func GenerateUsernameFromName(name string) string {
	first, _, _ := strings.Cut(name, " ")
	username := accentReplacer.Replace(strings.ToLower(first))

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

var seedStatuses = []domain.ShiftStatus{
	domain.StatusTravail,
	domain.StatusTravail,
	domain.StatusTravail,
	domain.StatusRepos,
	domain.StatusVacances,
	domain.StatusFormation,
	domain.StatusIndisponible,
	domain.StatusNone,
}

// GenerateRandomStatus est biaisé vers travail, comme un vrai planning.
func GenerateRandomStatus() domain.ShiftStatus {
	return seedStatuses[rand.Intn(len(seedStatuses))]
}

var seedNoteTexts = []string{
	"remplacement à confirmer",
	"formation incendie le matin",
	"rendez-vous médical à 14h",
	"demande d'échange avec l'équipe de nuit",
	"arrive à 9h exceptionnellement",
}

func GenerateRandomNoteText() string {
	return fmt.Sprintf("%s (%d)", seedNoteTexts[rand.Intn(len(seedNoteTexts))], rand.Intn(100))
}
