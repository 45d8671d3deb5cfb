package policy

import "github.com/iov-one/multiclique/errors"

var (
	ErrContractPolicyExists       = errors.Register(1010, "contract policy exists")
	ErrContractPolicyDoesNotExist = errors.Register(1011, "contract policy does not exist")
)
