package service

import "errors"

var (
	// ErrNotFound is returned when a record is not found
	ErrNotFound = errors.New("record not found")

	// ErrAlreadySettled is returned when paying or receiving a record that
	// already left PENDING
	ErrAlreadySettled = errors.New("record already settled")

	// ErrInvalidCredentials is returned when authentication fails
	ErrInvalidCredentials = errors.New("invalid credentials")
)
