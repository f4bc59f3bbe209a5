package apis

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/supakorn-kn/book-catalog/errors"
	"github.com/supakorn-kn/book-catalog/objects"
)

const (
	BookCreatedMessage  = "Book created successfully"
	BookUpdatedMessage  = "Book updated successfully"
	BookDeletedMessage  = "Book deleted successfully"
	EmptyCatalogMessage = "No books in catalog"
)

type WelcomeResponse struct {
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
}

type ListResponse struct {
	Message    string         `json:"message,omitempty"`
	TotalBooks int            `json:"total_books"`
	Books      []objects.Book `json:"books"`
}

type BookResponse struct {
	Message string       `json:"message"`
	Book    objects.Book `json:"book"`
}

type DeletedBookResponse struct {
	Message     string       `json:"message"`
	DeletedBook objects.Book `json:"deleted_book"`
}

// ErrorResponse carries the human readable detail next to the coded error.
type ErrorResponse struct {
	Detail string           `json:"detail"`
	Error  errors.BaseError `json:"error"`
}

type CatalogAPI interface {
	Ping(ctx context.Context) error
	List(ctx *gin.Context) (*ListResponse, error)
	ReadOne(ctx *gin.Context) (*objects.Book, error)
	Insert(ctx *gin.Context) (*objects.Book, error)
	Update(ctx *gin.Context) (*objects.Book, error)
	Delete(ctx *gin.Context) (*objects.Book, error)
}

var Welcome = WelcomeResponse{
	Message: "Welcome to Book Catalog API",
	Endpoints: map[string]string{
		"GET /books":              "Get all books",
		"GET /books/{book_id}":    "Get specific book",
		"POST /books":             "Add new book",
		"PUT /books/{book_id}":    "Update book",
		"DELETE /books/{book_id}": "Delete book",
	},
}
