package trace

import "context"

type (
	tracerKey struct{}
	parentKey struct{}
)

// WithTracer returns ctx carrying t. A nil t is stored as Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// FromContext returns the tracer of ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
			return t
		}
	}
	return Nop
}

// WithParent returns ctx under which new spans nest below span.
func WithParent(ctx context.Context, span uint64) context.Context {
	return context.WithValue(ctx, parentKey{}, span)
}

// Parent returns the span set by WithParent, or 0.
func Parent(ctx context.Context) uint64 {
	if ctx == nil {
		return 0
	}
	id, _ := ctx.Value(parentKey{}).(uint64)
	return id
}
