package domain

import "errors"

// Transfer workflow error taxonomy. All of these are recoverable and are
// returned to the API boundary as typed results, never panics.
var (
	ErrSelfTransfer           = errors.New("cannot transfer a vehicle to yourself")
	ErrNotOwner               = errors.New("only the current owner can transfer this vehicle")
	ErrTransferAlreadyPending = errors.New("vehicle already has a pending transfer request")
	ErrNotFound               = errors.New("record not found")
	ErrNotRecipient           = errors.New("only the recipient can act on this transfer request")
	ErrAlreadyResolved        = errors.New("transfer request has already been resolved")
	ErrRequestExpired         = errors.New("transfer request has expired")
	ErrConcurrencyConflict    = errors.New("concurrent update conflict, retry the operation")
)
