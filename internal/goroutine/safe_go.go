package goroutine

import (
	"context"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/skillswap-backend/internal/logger"
)

// RecoveryHandler запускает горутины, перехватывая panic и записывая их в лог.
type RecoveryHandler struct {
	log logrus.FieldLogger
}

func NewRecoveryHandler(log logrus.FieldLogger) *RecoveryHandler {
	return &RecoveryHandler{log: log}
}

// SafeGo запускает горутину с обработкой panic.
func (rh *RecoveryHandler) SafeGo(name string, fn func()) {
	go func() {
		defer rh.recover(name)
		fn()
	}()
}

// SafeGoWithContext запускает горутину с контекстом и обработкой panic.
func (rh *RecoveryHandler) SafeGoWithContext(ctx context.Context, name string, fn func(context.Context)) {
	go func() {
		defer rh.recover(name)
		fn(ctx)
	}()
}

func (rh *RecoveryHandler) recover(name string) {
	if r := recover(); r != nil {
		rh.log.WithFields(logrus.Fields{
			"goroutine": name,
			"panic":     r,
			"stack":     string(debug.Stack()),
		}).Error("panic in goroutine")
	}
}

// SafeGo запускает безопасную горутину с общим логгером.
func SafeGo(name string, fn func()) {
	NewRecoveryHandler(logger.Log).SafeGo(name, fn)
}

// SafeGoWithContext запускает безопасную горутину с контекстом и общим логгером.
func SafeGoWithContext(ctx context.Context, name string, fn func(context.Context)) {
	NewRecoveryHandler(logger.Log).SafeGoWithContext(ctx, name, fn)
}
