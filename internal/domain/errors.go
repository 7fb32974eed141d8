package domain

import (
	"errors"
	"fmt"
)

// ErrorKind catégorise une défaillance pour la couche de présentation.
type ErrorKind string

const (
	KindConnectivity  ErrorKind = "connectivity"
	KindBackend       ErrorKind = "backend"
	KindValidation    ErrorKind = "validation"
	KindAuthorization ErrorKind = "authorization"
)

// Error porte la catégorie d'une défaillance en plus du message lisible
// destiné à l'utilisateur.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func NewConnectivityError(message string, err error) *Error {
	return &Error{Kind: KindConnectivity, Message: message, Err: err}
}

func NewBackendError(message string, err error) *Error {
	return &Error{Kind: KindBackend, Message: message, Err: err}
}

func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NewAuthorizationError(message string) *Error {
	return &Error{Kind: KindAuthorization, Message: message}
}

// WrapError remplace le message tout en conservant la catégorie d'origine ;
// une erreur non catégorisée est considérée comme une erreur du backend.
func WrapError(message string, err error) *Error {
	var de *Error
	if errors.As(err, &de) {
		return &Error{Kind: de.Kind, Message: message, Err: err}
	}
	return &Error{Kind: KindBackend, Message: message, Err: err}
}

// KindOf renvoie la catégorie d'une erreur quelconque.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindBackend
}
