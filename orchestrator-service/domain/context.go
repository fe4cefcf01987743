package domain

import "context"

type correlatorKey struct{}

// WithCorrelatorID tags ctx with the saga's correlator id
func WithCorrelatorID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, correlatorKey{}, id)
}

func CorrelatorIDFrom(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(correlatorKey{}).(int)
	return id, ok
}
