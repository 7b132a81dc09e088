package telemetry

import (
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const (
	spanKey  = "varta:span"
	startKey = "varta:start"

	maxStatementLength = 500
)

// hook is a single gorm callback registration point
type hook interface {
	Register(name string, fn func(*gorm.DB)) error
}

// statementKinds pairs each span operation with the gorm callbacks around its statement
var statementKinds = []struct {
	operation string
	hooks     func(db *gorm.DB) (before, after hook)
}{
	{"select", func(db *gorm.DB) (hook, hook) {
		return db.Callback().Query().Before("gorm:query"), db.Callback().Query().After("gorm:query")
	}},
	{"insert", func(db *gorm.DB) (hook, hook) {
		return db.Callback().Create().Before("gorm:create"), db.Callback().Create().After("gorm:create")
	}},
	{"update", func(db *gorm.DB) (hook, hook) {
		return db.Callback().Update().Before("gorm:update"), db.Callback().Update().After("gorm:update")
	}},
	{"delete", func(db *gorm.DB) (hook, hook) {
		return db.Callback().Delete().Before("gorm:delete"), db.Callback().Delete().After("gorm:delete")
	}},
	{"row", func(db *gorm.DB) (hook, hook) {
		return db.Callback().Row().Before("gorm:row"), db.Callback().Row().After("gorm:row")
	}},
	{"raw", func(db *gorm.DB) (hook, hook) {
		return db.Callback().Raw().Before("gorm:raw"), db.Callback().Raw().After("gorm:raw")
	}},
}

// GORMTracingPlugin returns a GORM plugin that opens a span per statement.
// Only statements that run under a traced request get a span.
func GORMTracingPlugin() gorm.Plugin {
	return &tracingPlugin{tracer: otel.Tracer("varta-store")}
}

type tracingPlugin struct {
	tracer trace.Tracer
}

func (p *tracingPlugin) Name() string {
	return "varta:tracing"
}

func (p *tracingPlugin) Initialize(db *gorm.DB) error {
	for _, kind := range statementKinds {
		operation := kind.operation
		before, after := kind.hooks(db)

		if err := before.Register("varta:before_"+operation, func(tx *gorm.DB) { p.begin(tx, operation) }); err != nil {
			return fmt.Errorf("registering %s tracing: %w", operation, err)
		}
		if err := after.Register("varta:after_"+operation, p.end); err != nil {
			return fmt.Errorf("registering %s tracing: %w", operation, err)
		}
	}
	return nil
}

func (p *tracingPlugin) begin(tx *gorm.DB, operation string) {
	ctx := tx.Statement.Context
	if ctx == nil || !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return
	}

	table := tx.Statement.Table
	if table == "" {
		table = "-"
	}

	_, span := p.tracer.Start(ctx, "sqlite."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "sqlite"),
			attribute.String("db.operation", operation),
			attribute.String("db.table", table),
		),
	)
	tx.InstanceSet(spanKey, span)
	tx.InstanceSet(startKey, time.Now())
}

func (p *tracingPlugin) end(tx *gorm.DB) {
	value, ok := tx.InstanceGet(spanKey)
	if !ok {
		return
	}
	span, ok := value.(trace.Span)
	if !ok {
		return
	}
	defer span.End()

	if started, ok := tx.InstanceGet(startKey); ok {
		if at, ok := started.(time.Time); ok {
			span.SetAttributes(attribute.Int64("db.duration_ms", time.Since(at).Milliseconds()))
		}
	}

	span.SetAttributes(
		attribute.String("db.statement", truncateStatement(tx.Statement.SQL.String())),
		attribute.Int64("db.rows_affected", tx.RowsAffected),
	)

	if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		span.RecordError(tx.Error)
		span.SetStatus(codes.Error, tx.Error.Error())
	}
}

func truncateStatement(sql string) string {
	if len(sql) <= maxStatementLength {
		return sql
	}
	return sql[:maxStatementLength] + "..."
}
