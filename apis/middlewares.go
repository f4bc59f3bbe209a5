package apis

import (
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/supakorn-kn/book-catalog/errors"
	"go.uber.org/zap"
)

const (
	RequestIDHeader = "X-Request-ID"

	requestIDContextKey = "request_id"
)

var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9_.\-]{1,64}$`)

// RequestID reuses a well-formed incoming X-Request-ID or generates a new one.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {

		rid := ctx.GetHeader(RequestIDHeader)
		if !requestIDPattern.MatchString(rid) {
			rid = uuid.NewString()
		}

		ctx.Set(requestIDContextKey, rid)
		ctx.Header(RequestIDHeader, rid)

		ctx.Next()
	}
}

func GetRequestID(ctx *gin.Context) string {
	return ctx.GetString(requestIDContextKey)
}

func Logger(log *zap.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {

		start := time.Now()

		ctx.Next()

		log.Info("request",
			zap.String("request_id", GetRequestID(ctx)),
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.String("route", ctx.FullPath()),
			zap.Int("status", ctx.Writer.Status()),
			zap.Int("bytes", ctx.Writer.Size()),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote", ctx.ClientIP()),
		)
	}
}

// Recovery turns a panic into an UnknownError response and logs it.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(ctx *gin.Context, recovered any) {

		log.Error("panic recovered",
			zap.String("request_id", GetRequestID(ctx)),
			zap.Any("panic", recovered),
			zap.Stack("stack"),
		)

		err := errors.UnknownError.New(fmt.Sprint(recovered))
		ctx.AbortWithStatusJSON(StatusCode(err), newErrorResponse(err))
	})
}
