package errors

const (
	BookIDNotFoundErrorCode = 200_001
	DuplicatedISBNErrorCode = 200_002
	ISBNInUsedErrorCode     = 200_003
)

// BookIDNotFoundError indicates user gives a book ID that is not in the catalog
var BookIDNotFoundError = new(BookIDNotFoundErrorCode, "BookIDNotFound", "Book with ID %d not found")

// DuplicatedISBNError indicates user creates a book using an ISBN that is already in the catalog
var DuplicatedISBNError = new(DuplicatedISBNErrorCode, "DuplicatedISBN", "Book with ISBN %s already exists")

// ISBNInUsedError indicates user updates a book to an ISBN owned by another book
var ISBNInUsedError = new(ISBNInUsedErrorCode, "ISBNInUsed", "ISBN %s already exists for another book")
