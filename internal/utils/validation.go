package utils

import (
	"errors"
	"regexp"
	"strings"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,}$`)

func ValidateUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

const specialCharacters = `!@#$%^&*(),.?":{}|<>`

// ValidatePassword applique les règles de robustesse des codes d'accès :
// 8 caractères minimum, une majuscule, une minuscule, un chiffre et un
// caractère spécial.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("le mot de passe doit contenir au moins 8 caractères")
	}
	if strings.ToLower(password) == password {
		return errors.New("le mot de passe doit contenir au moins une majuscule")
	}
	if strings.ToUpper(password) == password {
		return errors.New("le mot de passe doit contenir au moins une minuscule")
	}
	if !strings.ContainsAny(password, "0123456789") {
		return errors.New("le mot de passe doit contenir au moins un chiffre")
	}
	if !strings.ContainsAny(password, specialCharacters) {
		return errors.New("le mot de passe doit contenir au moins un caractère spécial")
	}
	return nil
}
