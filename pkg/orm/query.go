// Package orm is a thin chainable facade over GORM. It keeps repositories
// free of *gorm.DB plumbing and provides the cache read-through hook.
package orm

import (
	"time"

	"github.com/soutoura/soutoura/pkg/database"
	"gorm.io/gorm"
)

// Cacher is implemented by the cache layer and injected at boot. Keeping it
// an interface here avoids an orm→cache import cycle.
type Cacher interface {
	Get(key string, dest interface{}) bool
	Set(key string, value interface{}, ttl time.Duration) error
	Del(keys ...string) error
}

// CacheStore is set once during server boot. Nil disables read-through.
var CacheStore Cacher

type Query struct {
	db *gorm.DB
}

// DB starts a query chain on the global connection.
func DB() *Query {
	return &Query{db: database.DB}
}

// Wrap starts a query chain on an explicit *gorm.DB (used inside
// transactions and by tests).
func Wrap(db *gorm.DB) *Query {
	return &Query{db: db}
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Order(value string) *Query {
	return &Query{db: q.db.Order(value)}
}

func (q *Query) Preload(association string) *Query {
	return &Query{db: q.db.Preload(association)}
}

// Get loads all matching rows into dest.
func (q *Query) Get(dest interface{}) error {
	return q.db.Find(dest).Error
}

// First loads the first matching row; returns gorm.ErrRecordNotFound on miss.
func (q *Query) First(dest interface{}) error {
	return q.db.First(dest).Error
}

func (q *Query) Create(value interface{}) error {
	return q.db.Create(value).Error
}

func (q *Query) Save(value interface{}) error {
	return q.db.Save(value).Error
}

// Updates applies a partial column update from a map or struct.
func (q *Query) Updates(values interface{}) error {
	return q.db.Updates(values).Error
}

func (q *Query) Delete(value interface{}) error {
	return q.db.Delete(value).Error
}

func (q *Query) Count(n *int64) error {
	return q.db.Count(n).Error
}

// Transaction runs fn inside a database transaction. Any error returned by
// fn rolls back every write made through the passed Query.
func (q *Query) Transaction(fn func(tx *Query) error) error {
	return q.db.Transaction(func(tx *gorm.DB) error {
		return fn(Wrap(tx))
	})
}

// Cache loads dest from the cache under key, falling back to the database
// and populating the cache on a miss. With no CacheStore it is a plain Get.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if CacheStore != nil && CacheStore.Get(key, dest) {
		return nil
	}

	if err := q.db.Find(dest).Error; err != nil {
		return err
	}

	if CacheStore != nil {
		CacheStore.Set(key, dest, ttl) //nolint:errcheck
	}
	return nil
}

// Forget drops cache keys after a write. No-op without a CacheStore.
func Forget(keys ...string) {
	if CacheStore != nil {
		CacheStore.Del(keys...) //nolint:errcheck
	}
}
