package kvdeck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vytor/flashdeck/internal/flashcard"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/repository"
)

const (
	// ClassIDKey holds the last class id entered, unscoped.
	ClassIDKey = "classId"
	// DeckKeyPrefix is joined with the class id to form the deck key.
	DeckKeyPrefix = "studentState_"
)

// ErrCorruptSnapshot is returned when a stored deck cannot be decoded.
// The stored value is left untouched.
var ErrCorruptSnapshot = errors.New("stored deck snapshot is corrupt")

// DeckKey derives the storage key of a class deck.
func DeckKey(classID string) string {
	return DeckKeyPrefix + classID
}

type deckRepository struct {
	store repository.KeyValueStore
}

// NewDeckRepository creates a DeckRepository on top of a key-value store.
func NewDeckRepository(store repository.KeyValueStore) repository.DeckRepository {
	return &deckRepository{store: store}
}

// Load returns the stored deck of classID, or the seeded deck when nothing
// (or an empty string) is stored. Stored snapshots are adopted verbatim.
func (r *deckRepository) Load(ctx context.Context, classID string) (*models.DeckSnapshot, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	key := DeckKey(classID)
	log.Debug("loading deck: key=%s", key)

	raw, found, err := r.store.Get(ctx, key)
	if err != nil {
		log.Error("failed to read deck %s: %v", key, err)
		return nil, err
	}
	if !found || raw == "" {
		log.Info("no stored deck for class %q, installing seed deck", classID)
		snapshot := flashcard.SeedSnapshot()
		return &snapshot, nil
	}

	var snapshot models.DeckSnapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		log.Error("failed to decode deck %s: %v", key, err)
		return nil, fmt.Errorf("%w: class %q: %v", ErrCorruptSnapshot, classID, err)
	}
	log.Debug("deck loaded: cards=%d, index=%d", len(snapshot.Flashcards), snapshot.CurrentFlashcardIndex)
	return &snapshot, nil
}

func (r *deckRepository) Save(ctx context.Context, classID string, snapshot models.DeckSnapshot) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	key := DeckKey(classID)

	if snapshot.Flashcards == nil {
		snapshot.Flashcards = []models.Flashcard{}
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		log.Error("failed to encode deck %s: %v", key, err)
		return err
	}

	log.Debug("saving deck: key=%s, cards=%d, index=%d", key, len(snapshot.Flashcards), snapshot.CurrentFlashcardIndex)
	if err := r.store.Set(ctx, key, string(payload)); err != nil {
		log.Error("failed to save deck %s: %v", key, err)
		return err
	}
	return nil
}

func (r *deckRepository) LoadClassID(ctx context.Context) (string, bool, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")

	classID, found, err := r.store.Get(ctx, ClassIDKey)
	if err != nil {
		log.Error("failed to read class id: %v", err)
		return "", false, err
	}
	if !found || classID == "" {
		log.Debug("no cached class id")
		return "", false, nil
	}
	log.Debug("cached class id: %s", classID)
	return classID, true, nil
}

func (r *deckRepository) SaveClassID(ctx context.Context, classID string) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("caching class id: %s", classID)

	if err := r.store.Set(ctx, ClassIDKey, classID); err != nil {
		log.Error("failed to save class id: %v", err)
		return err
	}
	return nil
}
