package app

import (
	"context"
	"testing"

	"github.com/iov-one/multiclique/errors"
	"github.com/iov-one/multiclique/mctest"
	"github.com/iov-one/multiclique/mctest/assert"
	"github.com/iov-one/multiclique/store"
)

func TestRouter(t *testing.T) {
	r := NewRouter()
	good := &mctest.Handler{}
	bad := &mctest.Handler{CheckErr: errors.ErrState, DeliverErr: errors.ErrState}
	r.Handle("signers/good", good)
	r.Handle("signers/bad", bad)

	// make sure invalid registrations panic
	assert.Panics(t, func() { r.Handle("signers/good", good) })
	assert.Panics(t, func() { r.Handle("l:7", good) })

	ctx := context.Background()
	db := store.MemStore()
	tx := func(path string) *mctest.Tx {
		return &mctest.Tx{Msg: &mctest.Msg{RoutePath: path}}
	}

	_, err := r.Check(ctx, db, tx("signers/good"))
	assert.Nil(t, err)
	_, err = r.Deliver(ctx, db, tx("signers/good"))
	assert.Nil(t, err)
	assert.Equal(t, 2, good.CallCount())

	_, err = r.Deliver(ctx, db, tx("signers/bad"))
	assert.IsErr(t, errors.ErrState, err)
	assert.Equal(t, 1, bad.CallCount())

	// make sure not found returns an error handler as well
	_, err = r.Check(ctx, db, tx("signers/missing"))
	assert.IsErr(t, errors.ErrNotFound, err)
	_, err = r.Handler("signers/missing").Deliver(ctx, db, nil)
	assert.IsErr(t, errors.ErrNotFound, err)
	assert.Equal(t, 2, good.CallCount())

	// a transaction without a message cannot be routed
	_, err = r.Deliver(ctx, db, &mctest.Tx{Err: errors.ErrEmpty})
	assert.IsErr(t, errors.ErrEmpty, err)
}
