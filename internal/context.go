package internal

import (
	"context"
	"time"
)

type ctxKey string

const contextActorKey ctxKey = "actor"

// ActorContext identifies the staff member performing a request and the
// school (tenant) they act within. It is passed explicitly so that nothing
// in the core reads ambient session state.
type ActorContext struct {
	StaffID    int64
	SchoolCode string
	Role       string
}

func ActorFromContext(ctx context.Context) (ActorContext, bool) {
	if ctx == nil {
		return ActorContext{}, false
	}
	actor, ok := ctx.Value(contextActorKey).(ActorContext)
	return actor, ok
}

func ContextWithActor(ctx context.Context, actor ActorContext) context.Context {
	return context.WithValue(ctx, contextActorKey, actor)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if
// duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
