package node

import (
	"context"
	"time"

	"github.com/uiachain/uianode/internal/amount"

	"github.com/google/uuid"
)

// ctxKey represents the type of value for the context key.
type ctxKey int

// KeyValues is how request values are stored/retrieved.
const KeyValues ctxKey = 1

// Values represent state for each request through the transaction pipeline.
type Values struct {
	TraceID string
	Now     time.Time
}

// Config holds node level configuration for the transaction handlers.
type Config struct {
	OperatorName string
	Version      string
	FeeValue     amount.Amount // Flat fee from the global fee schedule.
	IsTest       bool
}

// ContextWithValues returns a context holding fresh request values.
func ContextWithValues(ctx context.Context, now time.Time) context.Context {
	uid, _ := uuid.NewRandom()
	return context.WithValue(ctx, KeyValues, &Values{
		TraceID: uid.String(),
		Now:     now,
	})
}
