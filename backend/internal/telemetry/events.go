package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Events traces domain operations on top of the HTTP and database spans
type Events struct {
	tracer trace.Tracer
}

// NewEvents creates an events tracer on the global provider
func NewEvents() *Events {
	return &Events{tracer: otel.Tracer("varta-events")}
}

// FeedAttrs describes a post listing
type FeedAttrs struct {
	Kind      string // "page", "trending", "top_rated", "search"
	Category  string
	Page      int
	Limit     int
	ItemCount int
}

// TraceFeed creates a span for a post listing
func (e *Events) TraceFeed(ctx context.Context, attrs FeedAttrs) (context.Context, trace.Span) {
	ctx, span := e.tracer.Start(ctx, "feed."+attrs.Kind,
		trace.WithAttributes(
			attribute.String("feed.kind", attrs.Kind),
			attribute.Int("feed.page", attrs.Page),
			attribute.Int("feed.limit", attrs.Limit),
		),
	)
	if attrs.Category != "" {
		span.SetAttributes(attribute.String("feed.category", attrs.Category))
	}
	return ctx, span
}

// TraceCreatePost creates a span for publishing a post
func (e *Events) TraceCreatePost(ctx context.Context, userID, category string) (context.Context, trace.Span) {
	return e.tracer.Start(ctx, "feed.create_post",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("post.category", category),
		),
	)
}

// TraceInteraction creates a span for a like, comment, rating or follow.
// targetType is "post" or "user".
func (e *Events) TraceInteraction(ctx context.Context, action, userID, targetType, targetID string) (context.Context, trace.Span) {
	return e.tracer.Start(ctx, "social."+action,
		trace.WithAttributes(
			attribute.String("action.type", action),
			attribute.String("user.id", userID),
			attribute.String("target.type", targetType),
			attribute.String("target.id", targetID),
		),
	)
}

// EndSpan records err on span, if any, and ends it
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
