package services

import "errors"

// Sentinel errors of the service layer. Handlers translate them to HTTP
// status codes with errors.Is; repositories surface row absence as
// pgx.ErrNoRows, which services rewrap into ErrNotFound.
var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("invalid input")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
