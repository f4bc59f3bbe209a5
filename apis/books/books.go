package books

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/supakorn-kn/book-catalog/apis"
	"github.com/supakorn-kn/book-catalog/metrics"
	"github.com/supakorn-kn/book-catalog/models"
	"github.com/supakorn-kn/book-catalog/objects"
	"go.uber.org/zap"
)

type bookURI struct {
	BookID int `uri:"id"`
}

// listQuery keeps available as text so that an empty value means no filter, like an empty genre.
type listQuery struct {
	Genre     string `form:"genre" json:"genre"`
	Available string `form:"available" json:"available" binding:"omitempty,boolean"`
}

func (q listQuery) ListOption() models.ListOption {

	opt := models.ListOption{Genre: q.Genre}

	if available, err := strconv.ParseBool(q.Available); err == nil {
		opt.Available = &available
	}

	return opt
}

type BooksCatalogAPI struct {
	store   models.Store
	metrics *metrics.Metrics
	log     *zap.Logger
}

var _ apis.CatalogAPI = (*BooksCatalogAPI)(nil)

// NewBooksAPI serves store over HTTP. m may be nil when metrics are disabled.
func NewBooksAPI(store models.Store, m *metrics.Metrics, log *zap.Logger) *BooksCatalogAPI {

	api := &BooksCatalogAPI{
		store:   store,
		metrics: m,
		log:     log,
	}

	api.refreshBookCount(context.Background())

	return api
}

func (api *BooksCatalogAPI) Ping(ctx context.Context) error {
	return api.store.Ping(ctx)
}

func (api *BooksCatalogAPI) List(ctx *gin.Context) (*apis.ListResponse, error) {

	var query listQuery
	if err := apis.BindQuery(ctx, &query); err != nil {
		return nil, err
	}

	total, err := api.store.Count(ctx.Request.Context())
	if err != nil {
		return nil, err
	}

	if total == 0 {
		return &apis.ListResponse{Message: apis.EmptyCatalogMessage, Books: []objects.Book{}}, nil
	}

	books, err := api.store.List(ctx.Request.Context(), query.ListOption())
	if err != nil {
		return nil, err
	}

	return &apis.ListResponse{TotalBooks: len(books), Books: books}, nil
}

func (api *BooksCatalogAPI) ReadOne(ctx *gin.Context) (*objects.Book, error) {

	var uri bookURI
	if err := apis.BindURI(ctx, &uri); err != nil {
		return nil, err
	}

	book, err := api.store.GetByID(ctx.Request.Context(), uri.BookID)
	if err != nil {
		return nil, err
	}

	return &book, nil
}

func (api *BooksCatalogAPI) Insert(ctx *gin.Context) (*objects.Book, error) {

	var input objects.BookInput
	if err := apis.BindJSON(ctx, &input); err != nil {
		return nil, err
	}

	book, err := api.store.Insert(ctx.Request.Context(), input.Book())
	if err != nil {
		return nil, err
	}

	api.log.Info("book created", zap.Int("book_id", book.ID), zap.String("isbn", book.ISBN))
	api.refreshBookCount(ctx.Request.Context())

	return &book, nil
}

func (api *BooksCatalogAPI) Update(ctx *gin.Context) (*objects.Book, error) {

	var uri bookURI
	if err := apis.BindURI(ctx, &uri); err != nil {
		return nil, err
	}

	var patch objects.BookPatch
	if err := apis.BindJSON(ctx, &patch); err != nil {
		return nil, err
	}

	book, err := api.store.Update(ctx.Request.Context(), uri.BookID, patch)
	if err != nil {
		return nil, err
	}

	api.log.Info("book updated", zap.Int("book_id", book.ID))

	return &book, nil
}

func (api *BooksCatalogAPI) Delete(ctx *gin.Context) (*objects.Book, error) {

	var uri bookURI
	if err := apis.BindURI(ctx, &uri); err != nil {
		return nil, err
	}

	book, err := api.store.Delete(ctx.Request.Context(), uri.BookID)
	if err != nil {
		return nil, err
	}

	api.log.Info("book deleted", zap.Int("book_id", book.ID))
	api.refreshBookCount(ctx.Request.Context())

	return &book, nil
}

func (api *BooksCatalogAPI) refreshBookCount(ctx context.Context) {

	if api.metrics == nil {
		return
	}

	count, err := api.store.Count(ctx)
	if err != nil {
		api.log.Warn("count books failed", zap.Error(err))
		return
	}

	api.metrics.SetBooks(count)
}
