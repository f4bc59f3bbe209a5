package books

import (
	"context"
	"errors"
	"slices"
	"time"

	serverError "github.com/supakorn-kn/book-catalog/errors"
	"github.com/supakorn-kn/book-catalog/models"
	"github.com/supakorn-kn/book-catalog/mongodb"
	"github.com/supakorn-kn/book-catalog/objects"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	booksCollectionName    = "books"
	countersCollectionName = "counters"
	bookIDCounterKey       = "book_id"

	queryTimeout = 3 * time.Second
)

// BooksModel stores the catalog in MongoDB. IDs come from a counter document so they
// survive deletes and restarts.
type BooksModel struct {
	coll     *mongo.Collection
	counters *mongo.Collection
}

var _ models.Store = (*BooksModel)(nil)

type counter struct {
	Seq int `bson:"seq"`
}

func NewBooksModel(ctx context.Context, conn *mongodb.MongoDBConn) (*BooksModel, error) {

	m := &BooksModel{
		coll:     conn.GetCollection(booksCollectionName),
		counters: conn.GetCollection(countersCollectionName),
	}

	if err := m.initIndexes(ctx); err != nil {
		return nil, err
	}

	if err := m.seed(ctx, models.SeedBooks()); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *BooksModel) initIndexes(ctx context.Context) error {

	cur, err := m.coll.Indexes().List(ctx)
	if err != nil {
		return err
	}

	var indexes []bson.M
	if err := cur.All(ctx, &indexes); err != nil {
		return err
	}

	for _, key := range []string{"id", "isbn"} {

		indexName := key + "_1"

		contains := slices.ContainsFunc(indexes, func(m primitive.M) bool {
			return m["name"] == indexName
		})

		if contains {
			continue
		}

		indexModelOption := options.Index()
		indexModelOption.SetName(indexName)
		indexModelOption.SetUnique(true)

		indexModel := mongo.IndexModel{
			Keys:    bson.D{{Key: key, Value: 1}},
			Options: indexModelOption,
		}

		if _, err := m.coll.Indexes().CreateOne(ctx, indexModel, options.CreateIndexes()); err != nil {
			return err
		}
	}

	return nil
}

// seed loads the seed books into a database that has never allocated an ID.
func (m *BooksModel) seed(ctx context.Context, seed []objects.Book) error {

	err := m.counters.FindOne(ctx, bson.D{{Key: "_id", Value: bookIDCounterKey}}).Err()
	if err == nil {
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	docs := make([]any, 0, len(seed))
	maxID := 0
	for _, book := range seed {
		docs = append(docs, book)
		maxID = max(maxID, book.ID)
	}

	if len(docs) > 0 {
		if _, err := m.coll.InsertMany(ctx, docs); err != nil && !mongo.IsDuplicateKeyError(err) {
			return err
		}
	}

	_, err = m.counters.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: bookIDCounterKey}},
		bson.D{{Key: "$max", Value: bson.D{{Key: "seq", Value: maxID}}}},
		options.Update().SetUpsert(true),
	)

	return err
}

func (m *BooksModel) Ping(ctx context.Context) error {
	return withTimeout(ctx, func(ctx context.Context) error {
		return m.coll.Database().Client().Ping(ctx, nil)
	})
}

func (m *BooksModel) Count(ctx context.Context) (count int, err error) {

	err = withTimeout(ctx, func(ctx context.Context) error {
		total, err := m.coll.CountDocuments(ctx, bson.D{})
		count = int(total)
		return err
	})

	return
}

func (m *BooksModel) List(ctx context.Context, opt models.ListOption) ([]objects.Book, error) {

	books := []objects.Book{}

	err := withTimeout(ctx, func(ctx context.Context) error {

		option := options.Find().SetSort(bson.D{{Key: "id", Value: 1}})
		cur, err := m.coll.Find(ctx, opt.FilterBson(), option)
		if err != nil {
			return err
		}

		return cur.All(ctx, &books)
	})
	if err != nil {
		return nil, err
	}

	if books == nil {
		books = []objects.Book{}
	}

	return books, nil
}

func (m *BooksModel) GetByID(ctx context.Context, bookID int) (book objects.Book, err error) {

	err = withTimeout(ctx, func(ctx context.Context) error {
		return m.coll.FindOne(ctx, models.EqualMatchBson("id", bookID)).Decode(&book)
	})

	if errors.Is(err, mongo.ErrNoDocuments) {
		err = serverError.BookIDNotFoundError.New(bookID)
	}

	return
}

func (m *BooksModel) Insert(ctx context.Context, book objects.Book) (objects.Book, error) {

	err := withTimeout(ctx, func(ctx context.Context) error {

		used, err := m.isbnUsed(ctx, book.ISBN, 0)
		if err != nil {
			return err
		}
		if used {
			return serverError.DuplicatedISBNError.New(book.ISBN)
		}

		book.ID, err = m.nextID(ctx)
		if err != nil {
			return err
		}

		_, err = m.coll.InsertOne(ctx, book)
		if mongo.IsDuplicateKeyError(err) {
			return serverError.DuplicatedISBNError.New(book.ISBN)
		}

		return err
	})
	if err != nil {
		return objects.Book{}, err
	}

	return book, nil
}

func (m *BooksModel) Update(ctx context.Context, bookID int, patch objects.BookPatch) (objects.Book, error) {

	book, err := m.GetByID(ctx, bookID)
	if err != nil {
		return objects.Book{}, err
	}

	if patch.IsNil() {
		return book, nil
	}

	err = withTimeout(ctx, func(ctx context.Context) error {

		if patch.ISBN != nil {
			used, err := m.isbnUsed(ctx, *patch.ISBN, bookID)
			if err != nil {
				return err
			}
			if used {
				return serverError.ISBNInUsedError.New(*patch.ISBN)
			}
		}

		option := options.FindOneAndUpdate().SetReturnDocument(options.After)
		update := bson.D{{Key: "$set", Value: patchBson(patch)}}

		result := m.coll.FindOneAndUpdate(ctx, models.EqualMatchBson("id", bookID), update, option)
		err := result.Decode(&book)

		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return serverError.BookIDNotFoundError.New(bookID)
		case mongo.IsDuplicateKeyError(err):
			return serverError.ISBNInUsedError.New(*patch.ISBN)
		}

		return err
	})
	if err != nil {
		return objects.Book{}, err
	}

	return book, nil
}

func (m *BooksModel) Delete(ctx context.Context, bookID int) (book objects.Book, err error) {

	err = withTimeout(ctx, func(ctx context.Context) error {
		return m.coll.FindOneAndDelete(ctx, models.EqualMatchBson("id", bookID)).Decode(&book)
	})

	if errors.Is(err, mongo.ErrNoDocuments) {
		err = serverError.BookIDNotFoundError.New(bookID)
	}

	return
}

func (m *BooksModel) nextID(ctx context.Context) (int, error) {

	option := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	result := m.counters.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: bookIDCounterKey}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "seq", Value: 1}}}},
		option,
	)

	var c counter
	if err := result.Decode(&c); err != nil {
		return 0, err
	}

	return c.Seq, nil
}

// isbnUsed reports whether a book other than exceptID holds isbn. Catalog IDs start at 1,
// so 0 excludes nothing.
func (m *BooksModel) isbnUsed(ctx context.Context, isbn string, exceptID int) (bool, error) {

	filter := bson.D{
		{Key: "isbn", Value: isbn},
		{Key: "id", Value: bson.M{"$ne": exceptID}},
	}

	total, err := m.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	return total > 0, err
}

func patchBson(patch objects.BookPatch) bson.D {

	set := bson.D{}

	if patch.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *patch.Title})
	}
	if patch.Author != nil {
		set = append(set, bson.E{Key: "author", Value: *patch.Author})
	}
	if patch.ISBN != nil {
		set = append(set, bson.E{Key: "isbn", Value: *patch.ISBN})
	}
	if patch.PublicationYear != nil {
		set = append(set, bson.E{Key: "publication_year", Value: *patch.PublicationYear})
	}
	if patch.Genre != nil {
		set = append(set, bson.E{Key: "genre", Value: *patch.Genre})
	}
	if patch.Available != nil {
		set = append(set, bson.E{Key: "available", Value: *patch.Available})
	}

	return set
}

func withTimeout(parent context.Context, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, queryTimeout)
	defer cancel()
	return fn(ctx)
}
