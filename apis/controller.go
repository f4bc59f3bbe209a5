package apis

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/supakorn-kn/book-catalog/errors"
	"go.uber.org/zap"
)

const readyTimeout = 1 * time.Second

func RegisterCatalogAPI(api CatalogAPI, group *gin.RouterGroup, log *zap.Logger) {

	group.GET("", func(ctx *gin.Context) {

		result, err := api.List(ctx)
		if err != nil {
			writeErrorJSON(ctx, log, err)
			return
		}

		ctx.JSON(http.StatusOK, result)
	})

	group.GET(":id", func(ctx *gin.Context) {

		book, err := api.ReadOne(ctx)
		if err != nil {
			writeErrorJSON(ctx, log, err)
			return
		}

		ctx.JSON(http.StatusOK, book)
	})

	group.POST("", func(ctx *gin.Context) {

		book, err := api.Insert(ctx)
		if err != nil {
			writeErrorJSON(ctx, log, err)
			return
		}

		ctx.JSON(http.StatusCreated, BookResponse{Message: BookCreatedMessage, Book: *book})
	})

	group.PUT(":id", func(ctx *gin.Context) {

		book, err := api.Update(ctx)
		if err != nil {
			writeErrorJSON(ctx, log, err)
			return
		}

		ctx.JSON(http.StatusOK, BookResponse{Message: BookUpdatedMessage, Book: *book})
	})

	group.DELETE(":id", func(ctx *gin.Context) {

		book, err := api.Delete(ctx)
		if err != nil {
			writeErrorJSON(ctx, log, err)
			return
		}

		ctx.JSON(http.StatusOK, DeletedBookResponse{Message: BookDeletedMessage, DeletedBook: *book})
	})
}

// RegisterProbes adds the liveness and readiness endpoints.
func RegisterProbes(api CatalogAPI, g gin.IRoutes, log *zap.Logger) {

	g.GET("/healthz", func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})

	g.GET("/readyz", func(ctx *gin.Context) {

		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), readyTimeout)
		defer cancel()

		if err := api.Ping(pingCtx); err != nil {
			log.Warn("readyz failed", zap.Error(err))
			ctx.JSON(http.StatusServiceUnavailable, newErrorResponse(errors.UnknownError.New("not ready")))
			return
		}

		ctx.Status(http.StatusOK)
	})
}

func StatusCode(err errors.BaseError) int {

	switch err.Code {
	case errors.BookIDNotFoundErrorCode:
		return http.StatusNotFound
	case errors.ValidationErrorCode:
		return http.StatusUnprocessableEntity
	case errors.UnknownErrorCode:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func newErrorResponse(err errors.BaseError) ErrorResponse {
	return ErrorResponse{Detail: err.Message, Error: err}
}

func writeErrorJSON(ctx *gin.Context, log *zap.Logger, err error) {

	assertedError, ok := errors.TryAssertError(err)
	if !ok {
		log.Error("request failed",
			zap.String("request_id", GetRequestID(ctx)),
			zap.String("path", ctx.FullPath()),
			zap.Error(err),
		)
		assertedError = errors.UnknownError.New(err)
	}

	ctx.JSON(StatusCode(assertedError), newErrorResponse(assertedError))
}
