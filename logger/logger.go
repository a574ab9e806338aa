package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu  sync.Mutex
	log *zap.Logger
)

// Init builds the process-wide logger. Production encoding when env is
// "production", human-readable development output otherwise.
func Init(env string) *zap.Logger {
	mu.Lock()
	defer mu.Unlock()

	var (
		l   *zap.Logger
		err error
	)
	if env == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		l = zap.NewNop()
	}

	log = l
	zap.ReplaceGlobals(l)
	return l
}

// L returns the process logger, initializing a development logger on first
// use if Init was never called.
func L() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	if log == nil {
		l, err := zap.NewDevelopment()
		if err != nil {
			l = zap.NewNop()
		}
		log = l
	}
	return log
}
