package storage

import "errors"

// Errors shared by storage implementations.
var (
	// ErrAlreadyInTx is returned by Begin when the handle is already
	// transactional.
	ErrAlreadyInTx = errors.New("storage handle is already in a transaction")
	// ErrNotInTx is returned by Commit and Rollback when the handle is not
	// transactional.
	ErrNotInTx = errors.New("storage handle is not in a transaction")
)
