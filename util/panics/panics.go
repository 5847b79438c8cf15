package panics

import (
	"runtime/debug"

	"github.com/kaspanet/scriptvm/infrastructure/logger"
	"github.com/pkg/errors"
)

// HandlePanic recovers a panic, logs it together with the stack trace of the
// goroutine that spawned the panicking one, and re-panics so the process
// still terminates on programming errors.
func HandlePanic(log *logger.Logger, goroutineStackTrace []byte) {
	err := recover()
	if err == nil {
		return
	}

	log.Criticalf("Fatal error: %+v", err)
	if goroutineStackTrace != nil {
		log.Criticalf("Goroutine stack trace: %s", goroutineStackTrace)
	}
	log.Criticalf("Stack trace: %s", debug.Stack())
	panic(err)
}

// GoroutineWrapperFunc returns a goroutine wrapper function that handles panics and writes them to the log.
func GoroutineWrapperFunc(log *logger.Logger) func(func()) {
	return func(f func()) {
		stackTrace := debug.Stack()
		go func() {
			defer HandlePanic(log, stackTrace)
			f()
		}()
	}
}

// RecoverToError runs f and converts a panic raised inside it into an error
// that carries the panic value, logging the stack trace at critical level.
func RecoverToError(log *logger.Logger, f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Criticalf("Recovered from panic: %+v\nStack trace: %s", r, debug.Stack())
			err = errors.Errorf("recovered from panic: %+v", r)
		}
	}()
	return f()
}
