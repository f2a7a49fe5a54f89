package inbox

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/vango-dev/techcorp/pkg/inbox"

type traced struct {
	next   Sink
	name   string
	tracer trace.Tracer
}

// Traced wraps next with an "inbox.deliver" span per delivery.
// The global tracer provider is used.
func Traced(next Sink) Sink {
	return &traced{
		next:   next,
		name:   fmt.Sprintf("%T", next),
		tracer: otel.Tracer(tracerName),
	}
}

func (t *traced) Deliver(ctx context.Context, inq *Inquiry) error {
	ctx, span := t.tracer.Start(ctx, "inbox.deliver",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(attribute.String("inbox.sink", t.name)),
	)
	defer span.End()

	if inq != nil {
		span.SetAttributes(
			attribute.String("inbox.inquiry_id", inq.ID),
			attribute.String("inbox.subject", inq.Subject),
		)
	}

	if err := t.next.Deliver(ctx, inq); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

// Unwrap returns the wrapped sink.
func (t *traced) Unwrap() Sink {
	return t.next
}
