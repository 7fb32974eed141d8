package domain

import (
	"time"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleNurse Role = "nurse"
)

// User est un compte de connexion, distinct de l'infirmière planifiée
// à laquelle il peut être rattaché.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
