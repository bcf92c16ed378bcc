// Package cleanup empties the document store collections backing the Events API so each
// test starts from a known state.
package cleanup

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/eventsqa/harness/internal/config"
)

// DefaultCollections are the collections of every Events entity.
var DefaultCollections = []string{
	"accounts", "users", "profiles", "tagaffinities",
	"events", "userevents", "urls", "crawls",
}

// Collections abstracts the operations the cleaner needs from a database.
type Collections interface {
	DeleteAll(ctx context.Context, collection string) (int64, error)
	Count(ctx context.Context, collection string) (int64, error)
}

type mongoCollections struct {
	db *mongo.Database
}

func (m mongoCollections) DeleteAll(ctx context.Context, collection string) (int64, error) {
	res, err := m.db.Collection(collection).DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (m mongoCollections) Count(ctx context.Context, collection string) (int64, error) {
	return m.db.Collection(collection).CountDocuments(ctx, bson.M{})
}

type Cleaner struct {
	uri         string
	database    string
	collections []string

	mu     sync.Mutex
	client *mongo.Client
	db     Collections
	log    *zap.SugaredLogger
}

func NewCleaner(cfg config.Mongo) *Cleaner {
	collections := cfg.Collections
	if len(collections) == 0 {
		collections = DefaultCollections
	}
	return &Cleaner{
		uri:         cfg.URI,
		database:    cfg.Database,
		collections: collections,
		log:         zap.S().Named("cleanup"),
	}
}

// NewCleanerWithCollections returns a cleaner working on db instead of a MongoDB connection.
func NewCleanerWithCollections(db Collections, collections ...string) *Cleaner {
	if len(collections) == 0 {
		collections = DefaultCollections
	}
	return &Cleaner{
		collections: collections,
		db:          db,
		log:         zap.S().Named("cleanup"),
	}
}

func (c *Cleaner) Collections() []string {
	return append([]string{}, c.collections...)
}

func (c *Cleaner) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connectLocked(ctx)
}

func (c *Cleaner) connectLocked(ctx context.Context) error {
	if c.db != nil {
		return nil
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(c.uri))
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", c.uri, err)
	}
	c.client = client
	c.db = mongoCollections{db: client.Database(c.database)}
	c.log.Infow("connected", "database", c.database)
	return nil
}

func (c *Cleaner) Disconnect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client == nil {
		return nil
	}
	err := c.client.Disconnect(ctx)
	c.client = nil
	c.db = nil
	return err
}

func (c *Cleaner) collectionsDB(ctx context.Context) (Collections, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.connectLocked(ctx); err != nil {
		return nil, err
	}
	return c.db, nil
}

// CleanAll deletes every document of every tracked collection. A collection that
// cannot be cleaned is logged and skipped; only a failed connection is returned.
func (c *Cleaner) CleanAll(ctx context.Context) error {
	db, err := c.collectionsDB(ctx)
	if err != nil {
		return err
	}
	for _, name := range c.collections {
		n, err := db.DeleteAll(ctx, name)
		if err != nil {
			c.log.Warnw("could not clean collection", "collection", name, "error", err)
			continue
		}
		c.log.Debugw("cleaned collection", "collection", name, "deleted", n)
	}
	return nil
}

// CleanCollection deletes every document of one collection.
func (c *Cleaner) CleanCollection(ctx context.Context, name string) (int64, error) {
	db, err := c.collectionsDB(ctx)
	if err != nil {
		return 0, err
	}
	n, err := db.DeleteAll(ctx, name)
	if err != nil {
		c.log.Warnw("could not clean collection", "collection", name, "error", err)
		return 0, fmt.Errorf("failed to clean %s: %w", name, err)
	}
	c.log.Infow("cleaned collection", "collection", name, "deleted", n)
	return n, nil
}

// Counts returns the number of documents in every tracked collection.
func (c *Cleaner) Counts(ctx context.Context) (map[string]int64, error) {
	db, err := c.collectionsDB(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(c.collections))
	var errs []error
	for _, name := range c.collections {
		n, err := db.Count(ctx, name)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		counts[name] = n
	}
	return counts, errors.Join(errs...)
}
