package signers

import "github.com/iov-one/multiclique/errors"

var (
	ErrAlreadyInitialized  = errors.Register(1000, "already initialized")
	ErrInvalidThreshold    = errors.Register(1001, "invalid threshold")
	ErrSignerLimitExceeded = errors.Register(1002, "signer limit exceeded")
	ErrSignerAlreadyAdded  = errors.Register(1003, "signer already added")
	ErrSignerDoesNotExist  = errors.Register(1004, "signer does not exist")
)
