package utils

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/iov-one/multiclique"
	"github.com/iov-one/multiclique/errors"
	"github.com/iov-one/multiclique/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestRecoveryConvertsPanic(t *testing.T) {
	var out bytes.Buffer
	ctx := multiclique.WithLogger(context.Background(), log.NewTMLogger(&out))
	db := store.MemStore()

	var boom explodingHandler
	require.Panics(t, func() { boom.Deliver(ctx, db, nil) })

	_, err := NewRecovery().Check(ctx, db, nil, boom)
	assert.True(t, errors.ErrPanic.Is(err), "got %+v", err)
	assert.Contains(t, err.Error(), "boom on check")

	_, err = NewRecovery().Deliver(ctx, db, nil, boom)
	assert.True(t, errors.ErrPanic.Is(err), "got %+v", err)

	assert.True(t, strings.Contains(out.String(), "recovered from panic"), out.String())
	assert.Contains(t, out.String(), "path=<nil>")
}

func TestRecoveryPassesResult(t *testing.T) {
	ctx := context.Background()
	_, err := NewRecovery().Deliver(ctx, store.MemStore(), nil, explodingHandler{quiet: true})
	assert.NoError(t, err)
}

type explodingHandler struct {
	quiet bool
}

var _ multiclique.Handler = explodingHandler{}

func (h explodingHandler) Check(multiclique.Context, multiclique.KVStore, multiclique.Tx) (*multiclique.CheckResult, error) {
	if h.quiet {
		return &multiclique.CheckResult{}, nil
	}
	panic("boom on check")
}

func (h explodingHandler) Deliver(multiclique.Context, multiclique.KVStore, multiclique.Tx) (*multiclique.DeliverResult, error) {
	if h.quiet {
		return &multiclique.DeliverResult{}, nil
	}
	panic("boom on deliver")
}
