package cart

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nkhandel/dietplanner-backend/pkg/config"
	pkgerrors "github.com/nkhandel/dietplanner-backend/pkg/errors"
	"github.com/nkhandel/dietplanner-backend/pkg/redis"
)

type sessionStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(userID string) string
}

// Store persists carts as JSON documents in the session store, one key per
// user. An absent key is an empty cart.
type Store struct {
	store sessionStore
	ttl   time.Duration
}

// NewStore wires the cart persistence layer.
func NewStore(store sessionStore, cfg config.CartConfig) (*Store, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "session store required")
	}
	return &Store{store: store, ttl: cfg.TTL}, nil
}

// Load returns the user's cart, empty when nothing is stored.
func (s *Store) Load(ctx context.Context, userID string) (Cart, error) {
	raw, err := s.store.Get(ctx, s.store.CartKey(userID))
	if err != nil {
		if redis.IsNil(err) {
			return Cart{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	var loaded Cart
	if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode cart")
	}
	return loaded, nil
}

// Save writes the cart back, refreshing its TTL. An empty cart deletes the
// key instead of storing an empty document.
func (s *Store) Save(ctx context.Context, userID string, c Cart) error {
	if c.IsEmpty() {
		return s.Clear(ctx, userID)
	}
	payload, err := json.Marshal(c)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.store.Set(ctx, s.store.CartKey(userID), string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return nil
}

// Clear removes the user's cart entirely.
func (s *Store) Clear(ctx context.Context, userID string) error {
	if err := s.store.Del(ctx, s.store.CartKey(userID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}
