package models

import "errors"

var (
	// ErrValidation is returned when user input is rejected (empty name).
	ErrValidation = errors.New("validation error")

	// ErrStorageRead is returned when the saved list cannot be read or decoded.
	ErrStorageRead = errors.New("storage read error")

	// ErrStorageWrite is returned when the list cannot be written to storage.
	ErrStorageWrite = errors.New("storage write error")
)
