package models

// DeckSnapshot is the persisted state of one class deck.
type DeckSnapshot struct {
	Flashcards            []Flashcard `json:"flashcards"`
	CurrentFlashcardIndex int         `json:"currentFlashcardIndex"`
}

// Clone deep-copies the snapshot.
func (d DeckSnapshot) Clone() DeckSnapshot {
	cards := make([]Flashcard, len(d.Flashcards))
	for i, c := range d.Flashcards {
		cards[i] = c.Clone()
	}
	return DeckSnapshot{Flashcards: cards, CurrentFlashcardIndex: d.CurrentFlashcardIndex}
}
