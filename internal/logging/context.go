package logging

import (
	"context"
	"maps"
)

type contextKey string

const (
	fieldsKey contextKey = "folio.logging.fields"

	// FieldRequestID is the field carrying the HTTP request id.
	FieldRequestID = "request_id"
)

// ContextWithFields returns a child context carrying fields merged over any
// fields already attached to ctx. Console loggers add them to every entry.
func ContextWithFields(ctx context.Context, fields map[string]any) context.Context {
	if ctx == nil || len(fields) == 0 {
		return ctx
	}
	merged := ContextFields(ctx)
	if merged == nil {
		merged = make(map[string]any, len(fields))
	}
	maps.Copy(merged, fields)
	return context.WithValue(ctx, fieldsKey, merged)
}

// ContextFields returns a copy of the fields stored on ctx, or nil.
func ContextFields(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	fields, ok := ctx.Value(fieldsKey).(map[string]any)
	if !ok || len(fields) == 0 {
		return nil
	}
	return maps.Clone(fields)
}

// ContextWithRequestID stores the request id as a logging field.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		return ctx
	}
	return ContextWithFields(ctx, map[string]any{FieldRequestID: requestID})
}

// RequestIDFromContext returns the request id stored by ContextWithRequestID.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	fields, _ := ctx.Value(fieldsKey).(map[string]any)
	id, _ := fields[FieldRequestID].(string)
	return id
}
