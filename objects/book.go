package objects

import "reflect"

type Book struct {
	ID              int    `json:"id" bson:"id"`
	Title           string `json:"title" bson:"title"`
	Author          string `json:"author" bson:"author"`
	ISBN            string `json:"isbn" bson:"isbn"`
	PublicationYear int    `json:"publication_year" bson:"publication_year"`
	Genre           string `json:"genre" bson:"genre"`
	Available       bool   `json:"available" bson:"available"`
}

// BookInput is the create payload. Fields are pointers so that "required" means present,
// an empty title is still a title.
type BookInput struct {
	Title           *string `json:"title" binding:"required"`
	Author          *string `json:"author" binding:"required"`
	ISBN            *string `json:"isbn" binding:"required"`
	PublicationYear *int    `json:"publication_year" binding:"required"`
	Genre           *string `json:"genre" binding:"required"`
	Available       *bool   `json:"available"`
}

// Book converts the input into a record without an ID. Available defaults to true.
func (in BookInput) Book() Book {

	book := Book{Available: true}

	if in.Title != nil {
		book.Title = *in.Title
	}
	if in.Author != nil {
		book.Author = *in.Author
	}
	if in.ISBN != nil {
		book.ISBN = *in.ISBN
	}
	if in.PublicationYear != nil {
		book.PublicationYear = *in.PublicationYear
	}
	if in.Genre != nil {
		book.Genre = *in.Genre
	}
	if in.Available != nil {
		book.Available = *in.Available
	}

	return book
}

// BookPatch holds the fields of a partial update. A nil field was not supplied.
type BookPatch struct {
	Title           *string `json:"title"`
	Author          *string `json:"author"`
	ISBN            *string `json:"isbn"`
	PublicationYear *int    `json:"publication_year"`
	Genre           *string `json:"genre"`
	Available       *bool   `json:"available"`
}

func (p BookPatch) IsNil() bool {
	return reflect.ValueOf(p).IsZero()
}

// ApplyTo returns a copy of book with every supplied field overwritten.
func (p BookPatch) ApplyTo(book Book) Book {

	if p.Title != nil {
		book.Title = *p.Title
	}
	if p.Author != nil {
		book.Author = *p.Author
	}
	if p.ISBN != nil {
		book.ISBN = *p.ISBN
	}
	if p.PublicationYear != nil {
		book.PublicationYear = *p.PublicationYear
	}
	if p.Genre != nil {
		book.Genre = *p.Genre
	}
	if p.Available != nil {
		book.Available = *p.Available
	}

	return book
}
