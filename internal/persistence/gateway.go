package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/bucketlist/internal/dbx"
	"github.com/dmitrijs2005/bucketlist/internal/logging"
	"github.com/dmitrijs2005/bucketlist/internal/models"
	"github.com/dmitrijs2005/bucketlist/internal/repositories/metadata"
)

// StorageKey is the single slot holding the serialized destination list.
const StorageKey = "@travel_bucket_list:destinations"

type Gateway struct {
	repo metadata.Repository
	txDB dbx.TxBeginner
	key  string
	log  logging.Logger
}

type Option func(*Gateway)

// WithLogger sets the gateway logger.
func WithLogger(l logging.Logger) Option {
	return func(g *Gateway) { g.log = l }
}

// WithKey overrides StorageKey.
func WithKey(key string) Option {
	return func(g *Gateway) { g.key = key }
}

// NewGateway builds a gateway over any key/value repository.
func NewGateway(repo metadata.Repository, opts ...Option) *Gateway {
	g := &Gateway{repo: repo, key: StorageKey, log: logging.Discard()}
	for _, o := range opts {
		o(g)
	}
	return g
}

// NewSQLiteGateway builds a gateway over the metadata table of db. Saves run
// inside a transaction.
func NewSQLiteGateway(db *sql.DB, opts ...Option) *Gateway {
	g := NewGateway(metadata.NewSQLiteRepository(db), opts...)
	g.txDB = db
	return g
}

// Key returns the storage key in use.
func (g *Gateway) Key() string { return g.key }

// Load reads the saved list. An absent slot is an empty list.
func (g *Gateway) Load(ctx context.Context) ([]models.Destination, error) {
	blob, err := g.repo.Get(ctx, g.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrStorageRead, err)
	}
	if blob == nil {
		g.log.Debug(ctx, "no saved destinations", "key", g.key)
		return []models.Destination{}, nil
	}

	list, err := Decode(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrStorageRead, err)
	}

	g.log.Debug(ctx, "destinations loaded", "key", g.key, "count", len(list))
	return list, nil
}

// Save overwrites the slot with the full list.
func (g *Gateway) Save(ctx context.Context, list []models.Destination) error {
	blob, err := Encode(list)
	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrStorageWrite, err)
	}

	if g.txDB != nil {
		err = dbx.WithTx(ctx, g.txDB, nil, func(ctx context.Context, tx dbx.DBTX) error {
			return metadata.NewSQLiteRepository(tx).Set(ctx, g.key, blob)
		})
	} else {
		err = g.repo.Set(ctx, g.key, blob)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrStorageWrite, err)
	}

	g.log.Debug(ctx, "destinations saved", "key", g.key, "count", len(list), "bytes", len(blob))
	return nil
}

// Encode serializes a list into the stored format. A nil list encodes as [].
func Encode(list []models.Destination) ([]byte, error) {
	if list == nil {
		list = []models.Destination{}
	}
	return json.Marshal(list)
}

// Decode parses the stored format. JSON null is an empty list; duplicate ids
// are rejected.
func Decode(blob []byte) ([]models.Destination, error) {
	var list []models.Destination
	if err := json.Unmarshal(blob, &list); err != nil {
		return nil, fmt.Errorf("decode destinations: %w", err)
	}

	seen := make(map[string]struct{}, len(list))
	for _, d := range list {
		if _, dup := seen[d.ID]; dup {
			return nil, fmt.Errorf("decode destinations: duplicate id %q", d.ID)
		}
		seen[d.ID] = struct{}{}
	}

	return models.Clone(list), nil
}
