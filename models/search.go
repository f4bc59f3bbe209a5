package models

import (
	"fmt"
	"regexp"

	"github.com/supakorn-kn/book-catalog/objects"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/text/cases"
)

// ListOption filters a catalog listing. An empty Genre and a nil Available match everything.
type ListOption struct {
	Genre     string
	Available *bool
}

// Match reports whether book passes the filter. Genre is compared case-insensitively.
func (opt ListOption) Match(book objects.Book) bool {

	if opt.Genre != "" {
		// cases.Caser keeps state, so every call folds with its own.
		fold := cases.Fold()
		if fold.String(book.Genre) != fold.String(opt.Genre) {
			return false
		}
	}

	if opt.Available != nil && book.Available != *opt.Available {
		return false
	}

	return true
}

// FilterBson builds the equivalent MongoDB filter document.
func (opt ListOption) FilterBson() bson.D {

	filter := bson.D{}

	if opt.Genre != "" {
		filter = append(filter, EqualFoldMatchBson("genre", opt.Genre)...)
	}

	if opt.Available != nil {
		filter = append(filter, EqualMatchBson("available", *opt.Available)...)
	}

	return filter
}

// EqualMatchBson creates BSON for equal search (Case-sensitive)
func EqualMatchBson(key string, value any) bson.D {
	return bson.D{{Key: key, Value: value}}
}

// EqualFoldMatchBson creates BSON for whole-value search (Case-insensitive)
func EqualFoldMatchBson(key string, value string) bson.D {
	format := fmt.Sprintf("^%s$", regexp.QuoteMeta(value))
	return bson.D{{Key: key, Value: bson.M{"$regex": format, "$options": "i"}}}
}
