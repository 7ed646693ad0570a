package domain

import "errors"

// Sentinel errors shared by every vertical. Services translate storage-level
// misses into ErrNotFound so the API layer maps failures uniformly.
var (
	ErrNotFound             = errors.New("not found")                       // Entity absent for the given identifier
	ErrInvalidTransition    = errors.New("invalid state transition")       // Status change not allowed from the current state
	ErrInsufficientPoints   = errors.New("insufficient points balance")    // Reward costs more than the member has
	ErrInsufficientQuantity = errors.New("insufficient holding quantity")  // Sell or reversal would drive a holding negative
)
