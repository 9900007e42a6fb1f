package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/facegate/facegate/internal/entity"
)

const originService = "facegate"

type ctxKey uint8

const (
	ctxKeyRequestID ctxKey = iota
	ctxKeyEmployeeID
	ctxKeyIP
	ctxKeyDevice
	ctxKeyAreaID
	ctxKeyLogType
	ctxKeyMethod
	ctxKeyURL
)

type Handler struct {
	slog.Handler
}

func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	if v, ok := ctx.Value(ctxKeyRequestID).(string); ok && v != "" {
		record.Add("request_id", v)
	}

	// employee_id is present on every record, null until an identity
	// has been resolved for the request
	if v, ok := ctx.Value(ctxKeyEmployeeID).(string); ok && v != "" {
		record.Add("employee_id", v)
	} else {
		record.Add("employee_id", nil)
	}

	if v, ok := ctx.Value(ctxKeyIP).(string); ok && v != "" {
		record.Add("ip", v)
	}

	if v, ok := ctx.Value(ctxKeyDevice).(string); ok && v != "" {
		record.Add("device", v)
	}

	if v, ok := ctx.Value(ctxKeyAreaID).(string); ok && v != "" {
		record.Add("area_id", v)
	}

	if v, ok := ctx.Value(ctxKeyLogType).(string); ok && v != "" {
		record.Add("type", v)
	}

	if v, ok := ctx.Value(ctxKeyMethod).(string); ok && v != "" {
		record.Add("method", v)
	}

	if v, ok := ctx.Value(ctxKeyURL).(string); ok && v != "" {
		record.Add("url", v)
	}

	record.Add("origin_service", originService)

	return h.Handler.Handle(ctx, record)
}

func New(level slog.Level) *slog.Logger {
	log := slog.New(&Handler{
		Handler: slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}),
	})

	return log
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func FromContext(ctx context.Context) *slog.Logger {
	log, ok := ctx.Value(entity.CtxKeyLogger{}).(*slog.Logger)
	if !ok {
		return slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	return log
}

func SetRequestID(ctx context.Context, reqID string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, reqID)
}

func SetEmployeeID(ctx context.Context, employeeID string) context.Context {
	return context.WithValue(ctx, ctxKeyEmployeeID, employeeID)
}

func SetIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ctxKeyIP, ip)
}

func SetDevice(ctx context.Context, device string) context.Context {
	return context.WithValue(ctx, ctxKeyDevice, device)
}

func SetAreaID(ctx context.Context, areaID string) context.Context {
	return context.WithValue(ctx, ctxKeyAreaID, areaID)
}

func SetLogType(ctx context.Context, logType string) context.Context {
	return context.WithValue(ctx, ctxKeyLogType, logType)
}

func SetMethod(ctx context.Context, method string) context.Context {
	return context.WithValue(ctx, ctxKeyMethod, method)
}

func SetURL(ctx context.Context, url string) context.Context {
	return context.WithValue(ctx, ctxKeyURL, url)
}
