package repository

import (
	"context"

	"github.com/vytor/flashdeck/internal/models"
)

// KeyValueStore is the local string store every piece of state lives in.
// Get reports found=false for a key that was never set.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Ping(ctx context.Context) error
}

// DeckRepository persists class decks and the last used class id.
type DeckRepository interface {
	Load(ctx context.Context, classID string) (*models.DeckSnapshot, error)
	Save(ctx context.Context, classID string, snapshot models.DeckSnapshot) error
	LoadClassID(ctx context.Context) (string, bool, error)
	SaveClassID(ctx context.Context, classID string) error
}
