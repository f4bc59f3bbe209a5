package models

import (
	"context"
	"slices"
	"sync"

	serverError "github.com/supakorn-kn/book-catalog/errors"
	"github.com/supakorn-kn/book-catalog/objects"
)

// MemoryModel keeps the catalog in a map owned by the value, so each instance is an
// independent catalog.
type MemoryModel struct {
	mu     sync.RWMutex
	books  map[int]objects.Book
	nextID int
}

// NewMemoryModel returns a catalog holding the given books. The id counter starts above
// the highest preloaded id.
func NewMemoryModel(seed ...objects.Book) *MemoryModel {

	m := &MemoryModel{
		books:  make(map[int]objects.Book, len(seed)),
		nextID: 1,
	}

	for _, book := range seed {
		m.books[book.ID] = book
		if book.ID >= m.nextID {
			m.nextID = book.ID + 1
		}
	}

	return m
}

// NewSeededMemoryModel returns a catalog holding SeedBooks.
func NewSeededMemoryModel() *MemoryModel {
	return NewMemoryModel(SeedBooks()...)
}

func (m *MemoryModel) Ping(ctx context.Context) error { return nil }

func (m *MemoryModel) Count(ctx context.Context) (int, error) {

	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.books), nil
}

func (m *MemoryModel) List(ctx context.Context, opt ListOption) ([]objects.Book, error) {

	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]objects.Book, 0, len(m.books))
	bookIDs := make([]int, 0, len(m.books))
	for bookID := range m.books {
		bookIDs = append(bookIDs, bookID)
	}
	slices.Sort(bookIDs)

	for _, bookID := range bookIDs {

		book := m.books[bookID]
		if opt.Match(book) {
			result = append(result, book)
		}
	}

	return result, nil
}

func (m *MemoryModel) GetByID(ctx context.Context, bookID int) (objects.Book, error) {

	m.mu.RLock()
	defer m.mu.RUnlock()

	book, ok := m.books[bookID]
	if !ok {
		return objects.Book{}, serverError.BookIDNotFoundError.New(bookID)
	}

	return book, nil
}

func (m *MemoryModel) Insert(ctx context.Context, book objects.Book) (objects.Book, error) {

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, used := m.findISBN(book.ISBN); used {
		return objects.Book{}, serverError.DuplicatedISBNError.New(book.ISBN)
	}

	book.ID = m.nextID
	m.books[book.ID] = book
	m.nextID++

	return book, nil
}

func (m *MemoryModel) Update(ctx context.Context, bookID int, patch objects.BookPatch) (objects.Book, error) {

	m.mu.Lock()
	defer m.mu.Unlock()

	book, ok := m.books[bookID]
	if !ok {
		return objects.Book{}, serverError.BookIDNotFoundError.New(bookID)
	}

	if patch.ISBN != nil {
		if ownerID, used := m.findISBN(*patch.ISBN); used && ownerID != bookID {
			return objects.Book{}, serverError.ISBNInUsedError.New(*patch.ISBN)
		}
	}

	book = patch.ApplyTo(book)
	m.books[bookID] = book

	return book, nil
}

func (m *MemoryModel) Delete(ctx context.Context, bookID int) (objects.Book, error) {

	m.mu.Lock()
	defer m.mu.Unlock()

	book, ok := m.books[bookID]
	if !ok {
		return objects.Book{}, serverError.BookIDNotFoundError.New(bookID)
	}

	delete(m.books, bookID)

	return book, nil
}

// findISBN must be called with mu held.
func (m *MemoryModel) findISBN(isbn string) (int, bool) {

	for bookID, book := range m.books {
		if book.ISBN == isbn {
			return bookID, true
		}
	}

	return 0, false
}
