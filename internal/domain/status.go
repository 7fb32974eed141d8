package domain

import "strings"

// ShiftStatus représente l'état de service d'une infirmière pour un jour donné.
// "none" est une valeur à part entière, jamais un marqueur d'absence de donnée.
type ShiftStatus string

const (
	StatusTravail      ShiftStatus = "travail"
	StatusRepos        ShiftStatus = "repos"
	StatusVacances     ShiftStatus = "vacances"
	StatusFormation    ShiftStatus = "formation"
	StatusIndisponible ShiftStatus = "indisponible"
	StatusNone         ShiftStatus = "none"
)

var statusConfig = map[ShiftStatus]struct {
	displayName string
	styleToken  string
}{
	StatusTravail:      {"Travail", "bg-green-500 text-white"},
	StatusRepos:        {"Repos", "bg-blue-500 text-white"},
	StatusVacances:     {"Vacances", "bg-yellow-500 text-white"},
	StatusFormation:    {"Formation", "bg-purple-500 text-white"},
	StatusIndisponible: {"Indisponible", "bg-red-500 text-white"},
	StatusNone:         {"Non défini", "bg-gray-400 text-white"},
}

func (s ShiftStatus) Valid() bool {
	_, ok := statusConfig[s]
	return ok
}

// Label renvoie la lettre affichée dans une cellule de la grille.
// repos, formation et none suivent la règle « première lettre en majuscule » :
// les collisions R/F/N entre statuts sont assumées.
func (s ShiftStatus) Label() string {
	switch s {
	case StatusTravail:
		return "T"
	case StatusVacances:
		return "V"
	case StatusIndisponible:
		return "I"
	}
	if !s.Valid() {
		s = StatusNone
	}
	return strings.ToUpper(string(s)[:1])
}

// StyleToken renvoie le jeton de style associé au statut ; un statut
// inconnu retombe sur celui de "none".
func (s ShiftStatus) StyleToken() string {
	if cfg, ok := statusConfig[s]; ok {
		return cfg.styleToken
	}
	return statusConfig[StatusNone].styleToken
}

// DisplayName renvoie le libellé complet du statut pour la légende.
func (s ShiftStatus) DisplayName() string {
	if cfg, ok := statusConfig[s]; ok {
		return cfg.displayName
	}
	return statusConfig[StatusNone].displayName
}

// AllStatuses liste les statuts dans l'ordre d'affichage de la légende.
func AllStatuses() []ShiftStatus {
	return []ShiftStatus{
		StatusTravail,
		StatusRepos,
		StatusVacances,
		StatusFormation,
		StatusIndisponible,
		StatusNone,
	}
}
