package session

import "github.com/vytor/flashdeck/internal/models"

// Screen is the top-level view. Exactly one is active at a time.
type Screen int

const (
	ScreenClassIDEntry Screen = iota
	ScreenStudy
	ScreenStatistics
)

func (s Screen) String() string {
	switch s {
	case ScreenClassIDEntry:
		return "class_id_entry"
	case ScreenStudy:
		return "study"
	case ScreenStatistics:
		return "statistics"
	default:
		return "unknown"
	}
}

// PanelKind is the admin form currently open.
type PanelKind int

const (
	PanelIdle PanelKind = iota
	PanelAdding
	PanelEditing
)

func (k PanelKind) String() string {
	switch k {
	case PanelIdle:
		return "idle"
	case PanelAdding:
		return "adding"
	case PanelEditing:
		return "editing"
	default:
		return "unknown"
	}
}

// Panel holds the single admin form. Opening one form replaces the other,
// so add and edit can never be open together.
type Panel struct {
	Kind   PanelKind
	CardID int
	Front  string
	Back   string
}

// View is an immutable copy of the session for rendering.
type View struct {
	Screen     Screen
	Admin      bool
	Revealed   bool
	Panel      Panel
	ClassID    string
	Flashcards []models.Flashcard
	Index      int
	Current    *models.Flashcard
	CardsLeft  int
	Stats      models.DeckStat
}

// Snapshot returns the deck portion of the view in its persisted shape.
func (v View) Snapshot() models.DeckSnapshot {
	return models.DeckSnapshot{Flashcards: v.Flashcards, CurrentFlashcardIndex: v.Index}
}

func (v View) IsAdding() bool  { return v.Panel.Kind == PanelAdding }
func (v View) IsEditing() bool { return v.Panel.Kind == PanelEditing }
