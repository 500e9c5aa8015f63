package models

import (
	"errors"
)

var (
	ErrGeneral = errors.New("an error occurred on the server during your request")

	// ErrResourceNotFound is extended with the resource name by the gorm callbacks.
	ErrResourceNotFound = errors.New("there is no")
)
