package flashcard

import "github.com/vytor/flashdeck/internal/models"

var seedCards = [...]struct{ front, back string }{
	{"Was ist die Hauptstadt von Frankreich?", "Paris"},
	{"Was ist 2 + 2?", "4"},
	{"Was ist die Hauptstadt von Deutschland?", "Berlin"},
	{"Was ist die Hauptstadt von Italien?", "Rom"},
	{"Was ist die Hauptstadt von Spanien?", "Madrid"},
	{"Was ist die Hauptstadt von Portugal?", "Lissabon"},
	{"Was ist die Hauptstadt von Griechenland?", "Athen"},
	{"Was ist die Hauptstadt von Polen?", "Warschau"},
	{"Was ist die Hauptstadt von Ungarn?", "Budapest"},
	{"Was ist die Hauptstadt von Tschechien?", "Prag"},
	{"Was ist die Hauptstadt von Slowakei?", "Bratislava"},
	{"Was ist die Hauptstadt von Rumänien?", "Bukarest"},
	{"Was ist die Hauptstadt von Bulgarien?", "Sofia"},
	{"Was ist die Hauptstadt von Kroatien?", "Zagreb"},
	{"Was ist die Hauptstadt von Serbien?", "Belgrad"},
	{"Was ist die Hauptstadt von Bosnien und Herzegowina?", "Sarajevo"},
	{"Was ist die Hauptstadt von Montenegro?", "Podgorica"},
	{"Was ist die Hauptstadt von Albanien?", "Tirana"},
	// 19 and 20 repeat 12 and 13; kept so existing decks keep their ids.
	{"Was ist die Hauptstadt von Rumänien?", "Bukarest"},
	{"Was ist die Hauptstadt von Bulgarien?", "Sofia"},
}

// SeedDeckSize is the number of cards installed for a class with no stored deck.
const SeedDeckSize = len(seedCards)

// SeedDeck returns a fresh copy of the built-in deck with ids 1..SeedDeckSize
// and empty histories.
func SeedDeck() []models.Flashcard {
	cards := make([]models.Flashcard, 0, len(seedCards))
	for i, s := range seedCards {
		cards = append(cards, models.Flashcard{
			ID:      i + 1,
			Front:   s.front,
			Back:    s.back,
			History: []models.Outcome{},
		})
	}
	return cards
}

// SeedSnapshot returns the seeded deck positioned at the first card.
func SeedSnapshot() models.DeckSnapshot {
	return models.DeckSnapshot{Flashcards: SeedDeck(), CurrentFlashcardIndex: 0}
}
