package clique

import "github.com/iov-one/multiclique/errors"

var (
	ErrUnknownSigner          = errors.Register(1020, "unknown signer")
	ErrDefaultThresholdNotMet = errors.Register(1021, "default threshold not met")
	ErrPolicyThresholdNotMet  = errors.Register(1022, "policy threshold not met")
	ErrInvalidSignature       = errors.Register(1023, "invalid signature")
)
