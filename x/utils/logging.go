package utils

import (
	"time"

	"github.com/iov-one/multiclique"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ multiclique.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> error, success -> debug
func (Logging) Check(ctx multiclique.Context, store multiclique.KVStore, tx multiclique.Tx, next multiclique.Checker) (*multiclique.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (Logging) Deliver(ctx multiclique.Context, store multiclique.KVStore, tx multiclique.Tx, next multiclique.Deliverer) (*multiclique.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, false)
	return res, err
}

// logDuration writes information about the time and result to the logger
func logDuration(ctx multiclique.Context, tx multiclique.Tx, start time.Time, msg string, err error, lowPrio bool) {
	delta := time.Since(start)
	logger := multiclique.GetLogger(ctx).With(
		"path", multiclique.GetPath(tx),
		"duration", delta/time.Microsecond)

	// Although message can be empty, we still want to emit a log entry
	// because it contains other relevant information beside the message.
	switch {
	case err != nil:
		logger.Error(msg, "err", err)
	case lowPrio:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
