package flashcard

import (
	"errors"

	"github.com/vytor/flashdeck/internal/models"
)

var (
	// ErrEmptyDeck is returned by operations that need at least one card.
	ErrEmptyDeck = errors.New("deck is empty")
	// ErrNoCurrentCard is returned when the stored index points past the deck.
	ErrNoCurrentCard = errors.New("current index does not point at a card")
	// ErrInvalidOutcome is returned when marking with something other than pass or fail.
	ErrInvalidOutcome = errors.New("outcome must be pass or fail")
)

// Every function below treats its input slice as immutable and returns a new
// slice, so callers can hand the previous deck to a renderer without copying.

// Add appends a card with id len(cards)+1. Ids are not reused after a delete,
// so a later Add may collide with an existing id.
func Add(cards []models.Flashcard, front, back string) ([]models.Flashcard, models.Flashcard) {
	card := models.Flashcard{
		ID:      len(cards) + 1,
		Front:   front,
		Back:    back,
		History: []models.Outcome{},
	}
	out := make([]models.Flashcard, 0, len(cards)+1)
	out = append(out, cards...)
	out = append(out, card)
	return out, card
}

// Edit replaces front and back of every card with the given id. The second
// return value reports whether any card matched.
func Edit(cards []models.Flashcard, id int, front, back string) ([]models.Flashcard, bool) {
	out := make([]models.Flashcard, len(cards))
	found := false
	for i, c := range cards {
		if c.ID == id {
			c.Front = front
			c.Back = back
			found = true
		}
		out[i] = c
	}
	return out, found
}

// Delete removes every card with the given id.
func Delete(cards []models.Flashcard, id int) ([]models.Flashcard, int) {
	out := make([]models.Flashcard, 0, len(cards))
	removed := 0
	for _, c := range cards {
		if c.ID == id {
			removed++
			continue
		}
		out = append(out, c)
	}
	return out, removed
}

// Find returns the first card with the given id.
func Find(cards []models.Flashcard, id int) (models.Flashcard, bool) {
	for _, c := range cards {
		if c.ID == id {
			return c, true
		}
	}
	return models.Flashcard{}, false
}

// Current returns the card at index, guarding against empty decks and
// out-of-range indices from stored snapshots.
func Current(cards []models.Flashcard, index int) (models.Flashcard, error) {
	if len(cards) == 0 {
		return models.Flashcard{}, ErrEmptyDeck
	}
	if index < 0 || index >= len(cards) {
		return models.Flashcard{}, ErrNoCurrentCard
	}
	return cards[index], nil
}

// Mark appends outcome to the history of the card at index and returns the
// new deck together with the next index, (index+1) mod len(cards).
func Mark(cards []models.Flashcard, index int, outcome models.Outcome) ([]models.Flashcard, int, error) {
	if _, err := Current(cards, index); err != nil {
		return nil, 0, err
	}
	if _, err := models.ParseOutcome(string(outcome)); err != nil {
		return nil, 0, ErrInvalidOutcome
	}

	out := make([]models.Flashcard, len(cards))
	copy(out, cards)
	marked := out[index]
	history := make([]models.Outcome, len(marked.History), len(marked.History)+1)
	copy(history, marked.History)
	marked.History = append(history, outcome)
	out[index] = marked

	return out, (index + 1) % len(out), nil
}

// CardsLeft is the counter shown under the study card.
func CardsLeft(cards []models.Flashcard, index int) int {
	left := len(cards) - index
	if left < 0 {
		return 0
	}
	return left
}
