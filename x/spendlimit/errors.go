package spendlimit

import "github.com/iov-one/multiclique/errors"

var (
	ErrSpendLimitExceeded = errors.Register(1030, "spend limit exceeded")
)
