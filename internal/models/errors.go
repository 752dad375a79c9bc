package models

import "errors"

// Domain errors. Handlers translate these into HTTP status codes; nothing
// here is fatal and a rejected operation leaves the account untouched.
var (
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInsufficientShares = errors.New("insufficient shares")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotFound    = errors.New("account not found")
	ErrUnknownSymbol      = errors.New("unknown symbol")
)
