package models

import (
	"context"

	"github.com/supakorn-kn/book-catalog/objects"
)

// Store is the catalog contract served by the HTTP layer. Implementations report
// failures with the coded errors of the errors package.
type Store interface {
	Ping(ctx context.Context) error
	Count(ctx context.Context) (int, error)
	List(ctx context.Context, opt ListOption) ([]objects.Book, error)
	GetByID(ctx context.Context, bookID int) (objects.Book, error)
	Insert(ctx context.Context, book objects.Book) (objects.Book, error)
	Update(ctx context.Context, bookID int, patch objects.BookPatch) (objects.Book, error)
	Delete(ctx context.Context, bookID int) (objects.Book, error)
}

// SeedBooks returns the records every new catalog starts with, ids included.
func SeedBooks() []objects.Book {
	return []objects.Book{
		{
			ID:              1,
			Title:           "To Kill a Mockingbird",
			Author:          "Harper Lee",
			ISBN:            "978-0-06-112008-4",
			PublicationYear: 1960,
			Genre:           "Fiction",
			Available:       true,
		},
		{
			ID:              2,
			Title:           "1984",
			Author:          "George Orwell",
			ISBN:            "978-0-452-28423-4",
			PublicationYear: 1949,
			Genre:           "Dystopian",
			Available:       true,
		},
	}
}
