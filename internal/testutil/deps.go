package testutil

import (
	"testing"
	"time"

	"github.com/jwalitptl/hims-api/internal/service"
	"github.com/jwalitptl/hims-api/internal/service/audit"
	"github.com/jwalitptl/hims-api/internal/service/confirm"
	"github.com/jwalitptl/hims-api/pkg/logger"
	"github.com/jwalitptl/hims-api/pkg/messaging"
)

// NewDeps wires service dependencies over a fresh store, reading time from clock.
func NewDeps(t testing.TB, clock *Clock) service.Deps {
	t.Helper()
	log := logger.Nop()
	return service.Deps{
		Store:   NewStore(t),
		Audit:   audit.NewService(messaging.NopBroker{}, "hims.test", NewMetrics(), log, clock.Now),
		Confirm: confirm.NewService(time.Minute),
		Logger:  log,
		Now:     clock.Now,
	}
}

// StrPtr returns a pointer to s.
func StrPtr(s string) *string { return &s }

// IntPtr returns a pointer to n.
func IntPtr(n int) *int { return &n }
