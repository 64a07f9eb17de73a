package domain

import "errors"

var (
	// Ledger errors
	ErrLimitExceeded       = errors.New("category spending limit exceeded")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrIndexOutOfRange     = errors.New("transaction index out of range")

	// Validation errors
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrEmptyName        = errors.New("transaction name cannot be empty")
	ErrNegativeLimit    = errors.New("category limit cannot be negative")
	ErrReservedCategory = errors.New("category name is reserved for income")
	ErrEmptyCategory    = errors.New("category cannot be empty")

	// Session errors
	ErrNoActiveSession = errors.New("no active session")
	ErrEmptyUsername   = errors.New("username cannot be empty")
)
