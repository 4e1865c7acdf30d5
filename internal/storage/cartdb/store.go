package cartdb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/nebulaeats/nebula/internal/domain/model"
)

// bucketName is the fixed namespace the cart state is persisted under.
const bucketName = "nebula-cart-storage"

// Store durably persists carts in a local bbolt file, one JSON record
// per user. The cart survives process restarts independently of the
// remote backend.
type Store struct {
	db *bolt.DB
}

// Open creates or opens the cart store at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open cart store: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init cart store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying file.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load returns the persisted cart for userID, or an empty cart when none
// was saved yet.
func (s *Store) Load(ctx context.Context, userID string) (*model.Cart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var cart model.Cart
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket([]byte(bucketName)).Get([]byte(userID))
		if raw == nil {
			return nil
		}
		return json.Unmarshal(raw, &cart)
	})
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return &cart, nil
}

// Save writes the whole cart state as one record. The write is atomic:
// a reader after Save returns observes either the previous or the new
// state, never a partial one.
func (s *Store) Save(ctx context.Context, userID string, cart *model.Cart) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(userID), raw)
	})
	if err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}
