package utils

import (
	"time"

	"github.com/tokenswap/swapper"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ swapper.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> error, success -> debug
func (r Logging) Check(ctx swapper.Context, store swapper.KVStore, tx swapper.Tx, next swapper.Checker) (*swapper.CheckResult, error) {
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
func (r Logging) Deliver(ctx swapper.Context, store swapper.KVStore, tx swapper.Tx, next swapper.Deliverer) (*swapper.DeliverResult, error) {
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
func logDuration(ctx swapper.Context, tx swapper.Tx, start time.Time, msg string, err error, lowPrio bool) {
	delta := time.Since(start)
	logger := swapper.GetLogger(ctx).With(
		"path", swapper.GetPath(tx),
		"duration", delta/time.Microsecond,
	)

	// Message can be empty, the entry still carries the path and timing.
	switch {
	case err != nil:
		logger.With("err", err).Error(msg)
	case lowPrio:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
