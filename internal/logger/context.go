package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey struct{}

// WithContext 将带字段的 SugaredLogger 绑定到 context
func WithContext(ctx context.Context, log *zap.SugaredLogger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey{}, log)
}

// FromContext 取出请求级 logger，未绑定时返回全局 logger
func FromContext(ctx context.Context) *zap.SugaredLogger {
	if ctx != nil {
		if log, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger); ok && log != nil {
			return log
		}
	}
	return S()
}

// Bound 返回 context 上绑定的 logger，未绑定时 ok 为 false
func Bound(ctx context.Context) (*zap.SugaredLogger, bool) {
	if ctx == nil {
		return nil, false
	}
	log, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger)
	return log, ok && log != nil
}
