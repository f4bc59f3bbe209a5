package models

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/suite"
	"github.com/supakorn-kn/book-catalog/errors"
	"github.com/supakorn-kn/book-catalog/objects"
)

type MemoryModelTestSuite struct {
	suite.Suite
	ctx   context.Context
	model *MemoryModel
}

func (s *MemoryModelTestSuite) SetupTest() {

	s.ctx = context.Background()
	s.model = NewSeededMemoryModel()
}

func (s *MemoryModelTestSuite) TestList() {

	s.Run("Should list seeded books ordered by ID", func() {

		actual, err := s.model.List(s.ctx, ListOption{})
		s.Require().NoError(err)
		s.Require().Equal(SeedBooks(), actual)
	})

	s.Run("Should filter by genre case-insensitively", func() {

		for _, genre := range []string{"Fiction", "fiction", "FICTION"} {

			actual, err := s.model.List(s.ctx, ListOption{Genre: genre})
			s.Require().NoError(err)
			s.Require().Len(actual, 1)
			s.Require().Equal("To Kill a Mockingbird", actual[0].Title)
		}
	})

	s.Run("Should not match genre partially", func() {

		actual, err := s.model.List(s.ctx, ListOption{Genre: "Fict"})
		s.Require().NoError(err)
		s.Require().NotNil(actual)
		s.Require().Empty(actual)
	})

	s.Run("Should filter by availability", func() {

		available := true
		actual, err := s.model.List(s.ctx, ListOption{Available: &available})
		s.Require().NoError(err)
		s.Require().Len(actual, 2)

		unavailable := false
		actual, err = s.model.List(s.ctx, ListOption{Available: &unavailable})
		s.Require().NoError(err)
		s.Require().Empty(actual)
	})

	s.Run("Should combine genre and availability", func() {

		_, err := s.model.Update(s.ctx, 2, objects.BookPatch{Available: ptr(false)})
		s.Require().NoError(err)

		actual, err := s.model.List(s.ctx, ListOption{Genre: "dystopian", Available: ptr(false)})
		s.Require().NoError(err)
		s.Require().Len(actual, 1)
		s.Require().Equal(2, actual[0].ID)

		actual, err = s.model.List(s.ctx, ListOption{Genre: "dystopian", Available: ptr(true)})
		s.Require().NoError(err)
		s.Require().Empty(actual)
	})

	s.Run("Should return empty list from empty catalog", func() {

		empty := NewMemoryModel()

		actual, err := empty.List(s.ctx, ListOption{})
		s.Require().NoError(err)
		s.Require().NotNil(actual)
		s.Require().Empty(actual)

		count, err := empty.Count(s.ctx)
		s.Require().NoError(err)
		s.Require().Zero(count)
	})
}

func (s *MemoryModelTestSuite) TestGetByID() {

	s.Run("Should get seeded book by ID", func() {

		actual, err := s.model.GetByID(s.ctx, 1)
		s.Require().NoError(err)
		s.Require().Equal(SeedBooks()[0], actual)
	})

	s.Run("Should throw error when give non-exist ID", func() {

		actual, err := s.model.GetByID(s.ctx, 99)
		s.Require().Equal(errors.BookIDNotFoundError.New(99), err)
		s.Require().Empty(actual)
	})
}

func (s *MemoryModelTestSuite) TestInsert() {

	s.Run("Should insert book and read it back by assigned ID", func() {

		book := fakeBook()

		inserted, err := s.model.Insert(s.ctx, book)
		s.Require().NoError(err)
		s.Require().Equal(3, inserted.ID)

		actual, err := s.model.GetByID(s.ctx, inserted.ID)
		s.Require().NoError(err)

		book.ID = inserted.ID
		s.Require().Equal(book, actual)
	})

	s.Run("Should ignore client supplied ID", func() {

		book := fakeBook()
		book.ID = 1

		inserted, err := s.model.Insert(s.ctx, book)
		s.Require().NoError(err)
		s.Require().Equal(4, inserted.ID)

		seeded, err := s.model.GetByID(s.ctx, 1)
		s.Require().NoError(err)
		s.Require().Equal(SeedBooks()[0], seeded)
	})

	s.Run("Should throw error when insert existed ISBN without changing catalog", func() {

		before, err := s.model.List(s.ctx, ListOption{})
		s.Require().NoError(err)

		book := fakeBook()
		book.ISBN = SeedBooks()[0].ISBN

		inserted, err := s.model.Insert(s.ctx, book)
		s.Require().Equal(errors.DuplicatedISBNError.New(book.ISBN), err)
		s.Require().Empty(inserted)

		after, err := s.model.List(s.ctx, ListOption{})
		s.Require().NoError(err)
		s.Require().Equal(before, after)

		next, err := s.model.Insert(s.ctx, fakeBook())
		s.Require().NoError(err)
		s.Require().Equal(5, next.ID, "Failed insert should not consume an ID")
	})

	s.Run("Should start counter at one for empty catalog", func() {

		inserted, err := NewMemoryModel().Insert(s.ctx, fakeBook())
		s.Require().NoError(err)
		s.Require().Equal(1, inserted.ID)
	})
}

func (s *MemoryModelTestSuite) TestUpdate() {

	s.Run("Should update only availability", func() {

		actual, err := s.model.Update(s.ctx, 1, objects.BookPatch{Available: ptr(false)})
		s.Require().NoError(err)

		expected := SeedBooks()[0]
		expected.Available = false
		s.Require().Equal(expected, actual)

		stored, err := s.model.GetByID(s.ctx, 1)
		s.Require().NoError(err)
		s.Require().Equal(expected, stored)
	})

	s.Run("Should update every supplied field", func() {

		book := fakeBook()
		patch := objects.BookPatch{
			Title:           &book.Title,
			Author:          &book.Author,
			ISBN:            &book.ISBN,
			PublicationYear: &book.PublicationYear,
			Genre:           &book.Genre,
			Available:       &book.Available,
		}

		actual, err := s.model.Update(s.ctx, 2, patch)
		s.Require().NoError(err)

		book.ID = 2
		s.Require().Equal(book, actual)
	})

	s.Run("Should allow keeping own ISBN", func() {

		isbn := SeedBooks()[0].ISBN
		_, err := s.model.Update(s.ctx, 1, objects.BookPatch{ISBN: &isbn, Title: ptr("Go Set a Watchman")})
		s.Require().NoError(err)
	})

	s.Run("Should throw error when ISBN belongs to another book", func() {

		before, err := s.model.GetByID(s.ctx, 1)
		s.Require().NoError(err)

		inserted, err := s.model.Insert(s.ctx, fakeBook())
		s.Require().NoError(err)

		actual, err := s.model.Update(s.ctx, 1, objects.BookPatch{ISBN: &inserted.ISBN, Title: ptr("Changed")})
		s.Require().Equal(errors.ISBNInUsedError.New(inserted.ISBN), err)
		s.Require().Empty(actual)

		after, err := s.model.GetByID(s.ctx, 1)
		s.Require().NoError(err)
		s.Require().Equal(before, after)
	})

	s.Run("Should throw error when update non-exist book", func() {

		actual, err := s.model.Update(s.ctx, 99, objects.BookPatch{Available: ptr(false)})
		s.Require().Equal(errors.BookIDNotFoundError.New(99), err)
		s.Require().Empty(actual)
	})

	s.Run("Should report missing book before ISBN conflict", func() {

		isbn := SeedBooks()[0].ISBN
		_, err := s.model.Update(s.ctx, 99, objects.BookPatch{ISBN: &isbn})
		s.Require().Equal(errors.BookIDNotFoundError.New(99), err)
	})
}

func (s *MemoryModelTestSuite) TestDelete() {

	s.Run("Should delete exist book and return it", func() {

		deleted, err := s.model.Delete(s.ctx, 1)
		s.Require().NoError(err)
		s.Require().Equal(SeedBooks()[0], deleted)

		_, err = s.model.GetByID(s.ctx, 1)
		s.Require().Equal(errors.BookIDNotFoundError.New(1), err)

		count, err := s.model.Count(s.ctx)
		s.Require().NoError(err)
		s.Require().Equal(1, count)
	})

	s.Run("Should throw error when delete non-exist book", func() {

		_, err := s.model.Delete(s.ctx, 1)
		s.Require().Equal(errors.BookIDNotFoundError.New(1), err)
	})

	s.Run("Should never reuse deleted IDs", func() {

		inserted, err := s.model.Insert(s.ctx, fakeBook())
		s.Require().NoError(err)

		_, err = s.model.Delete(s.ctx, inserted.ID)
		s.Require().NoError(err)

		next, err := s.model.Insert(s.ctx, fakeBook())
		s.Require().NoError(err)
		s.Require().Equal(inserted.ID+1, next.ID)
	})

	s.Run("Should free ISBN of deleted book", func() {

		_, err := s.model.Insert(s.ctx, SeedBooks()[0])
		s.Require().NoError(err)
	})
}

func (s *MemoryModelTestSuite) TestConcurrentInsert() {

	const workers = 50

	var wg sync.WaitGroup
	ids := make(chan int, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			book := fakeBook()
			book.ISBN = fmt.Sprintf("concurrent-%d", i)

			inserted, err := s.model.Insert(s.ctx, book)
			if s.NoError(err) {
				ids <- inserted.ID
			}
		}(i)
	}

	wg.Wait()
	close(ids)

	seen := map[int]bool{}
	for id := range ids {
		s.Require().False(seen[id], "ID %d assigned twice", id)
		seen[id] = true
	}

	count, err := s.model.Count(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(workers+2, count)
}

func TestMemoryModel(t *testing.T) {
	suite.Run(t, new(MemoryModelTestSuite))
}

func fakeBook() objects.Book {

	fakeInfo := gofakeit.Book()

	return objects.Book{
		Title:           fakeInfo.Title,
		Author:          fakeInfo.Author,
		ISBN:            fmt.Sprintf("978-%s", gofakeit.Numerify("#-###-#####-#")),
		PublicationYear: gofakeit.Number(1800, 2024),
		Genre:           fakeInfo.Genre,
		Available:       gofakeit.Bool(),
	}
}

func ptr[T any](v T) *T {
	return &v
}
