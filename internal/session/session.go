package session

import (
	"context"
	"errors"
	"strings"

	"github.com/vytor/flashdeck/internal/flashcard"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/repository"
)

var (
	ErrClassIDRequired   = errors.New("class id is required")
	ErrNoClass           = errors.New("no class selected")
	ErrNotStudying       = errors.New("action is only available in study mode")
	ErrAdminModeRequired = errors.New("action is only available in admin mode")
	ErrNoOpenForm        = errors.New("no matching admin form is open")
)

// Session is the in-memory view state of one learner. It holds the only
// in-memory copy of the deck; every mutation builds a new deck, persists it
// through the repository and only then replaces the held copy.
//
// Session is not safe for concurrent use.
type Session struct {
	repo repository.DeckRepository

	classID  string
	cards    []models.Flashcard
	index    int
	screen   Screen
	revealed bool
	admin    bool
	panel    Panel
}

// New returns a session waiting for a class id.
func New(repo repository.DeckRepository) *Session {
	return &Session{repo: repo, screen: ScreenClassIDEntry}
}

// Restore resumes the last used class without prompting. It reports whether
// a cached class id was found.
func (s *Session) Restore(ctx context.Context) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("session")

	classID, found, err := s.repo.LoadClassID(ctx)
	if err != nil {
		return false, err
	}
	if !found {
		log.Debug("no cached class id, showing class id entry")
		return false, nil
	}
	if err := s.open(ctx, classID); err != nil {
		return true, err
	}
	log.Info("restored class %q", classID)
	return true, nil
}

// SubmitClassID persists the class id, then loads its deck. An unknown class
// gets the seeded deck.
func (s *Session) SubmitClassID(ctx context.Context, classID string) error {
	if strings.TrimSpace(classID) == "" {
		return ErrClassIDRequired
	}
	if err := s.repo.SaveClassID(ctx, classID); err != nil {
		return err
	}
	return s.open(ctx, classID)
}

func (s *Session) open(ctx context.Context, classID string) error {
	s.classID = classID
	snapshot, err := s.repo.Load(ctx, classID)
	if err != nil {
		s.screen = ScreenClassIDEntry
		s.cards = nil
		s.index = 0
		s.admin = false
		s.panel = Panel{}
		return err
	}
	s.cards = snapshot.Flashcards
	s.index = snapshot.CurrentFlashcardIndex
	s.screen = ScreenStudy
	s.revealed = false
	s.panel = Panel{}
	return nil
}

func (s *Session) requireClass() error {
	if s.screen == ScreenClassIDEntry {
		return ErrNoClass
	}
	return nil
}

func (s *Session) requireStudy() error {
	if err := s.requireClass(); err != nil {
		return err
	}
	if s.screen != ScreenStudy {
		return ErrNotStudying
	}
	return nil
}

func (s *Session) requireAdmin() error {
	if err := s.requireClass(); err != nil {
		return err
	}
	if !s.admin {
		return ErrAdminModeRequired
	}
	return nil
}

// commit persists the new deck and index, then adopts them.
func (s *Session) commit(ctx context.Context, cards []models.Flashcard, index int) error {
	snapshot := models.DeckSnapshot{Flashcards: cards, CurrentFlashcardIndex: index}
	if err := s.repo.Save(ctx, s.classID, snapshot); err != nil {
		return err
	}
	s.cards = cards
	s.index = index
	return nil
}

// Reveal shows the back of the current card.
func (s *Session) Reveal() error {
	if err := s.requireStudy(); err != nil {
		return err
	}
	if _, err := flashcard.Current(s.cards, s.index); err != nil {
		return err
	}
	s.revealed = true
	return nil
}

// Mark records outcome on the current card, hides the answer and moves to
// the next card, wrapping after the last one.
func (s *Session) Mark(ctx context.Context, outcome models.Outcome) error {
	if err := s.requireStudy(); err != nil {
		return err
	}
	cards, next, err := flashcard.Mark(s.cards, s.index, outcome)
	if err != nil {
		return err
	}
	if err := s.commit(ctx, cards, next); err != nil {
		return err
	}
	s.revealed = false
	logger.FromContext(ctx).WithPrefix("session").Debug("marked %s, next index=%d", outcome, next)
	return nil
}

// ToggleAdmin flips admin mode. Study progress and the reveal flag are kept;
// leaving admin mode discards any open form.
func (s *Session) ToggleAdmin() error {
	if err := s.requireClass(); err != nil {
		return err
	}
	s.admin = !s.admin
	if !s.admin {
		s.panel = Panel{}
	}
	return nil
}

func (s *Session) OpenStatistics() error {
	if err := s.requireStudy(); err != nil {
		return err
	}
	s.screen = ScreenStatistics
	return nil
}

// CloseStatistics returns to study mode. It is a no-op outside statistics.
func (s *Session) CloseStatistics() error {
	if err := s.requireClass(); err != nil {
		return err
	}
	s.screen = ScreenStudy
	return nil
}

// StartAdding opens an empty add form, replacing any open edit form.
func (s *Session) StartAdding() error {
	if err := s.requireAdmin(); err != nil {
		return err
	}
	s.panel = Panel{Kind: PanelAdding}
	return nil
}

// StartEditing opens the edit form prefilled with the card's text. An unknown
// id leaves the panel as it is.
func (s *Session) StartEditing(id int) error {
	if err := s.requireAdmin(); err != nil {
		return err
	}
	card, ok := flashcard.Find(s.cards, id)
	if !ok {
		return nil
	}
	s.panel = Panel{Kind: PanelEditing, CardID: id, Front: card.Front, Back: card.Back}
	return nil
}

// CancelPanel closes whichever admin form is open.
func (s *Session) CancelPanel() error {
	if err := s.requireAdmin(); err != nil {
		return err
	}
	s.panel = Panel{}
	return nil
}

// AddCard appends a card built from front and back, then closes the add form.
// Empty strings are accepted.
func (s *Session) AddCard(ctx context.Context, front, back string) (models.Flashcard, error) {
	if err := s.requireAdmin(); err != nil {
		return models.Flashcard{}, err
	}
	if s.panel.Kind != PanelAdding {
		return models.Flashcard{}, ErrNoOpenForm
	}
	cards, card := flashcard.Add(s.cards, front, back)
	if err := s.commit(ctx, cards, s.index); err != nil {
		return models.Flashcard{}, err
	}
	s.panel = Panel{}
	return card, nil
}

// EditCard replaces front and back of the card being edited. When the card
// was deleted meanwhile the edit is dropped silently.
func (s *Session) EditCard(ctx context.Context, id int, front, back string) error {
	if err := s.requireAdmin(); err != nil {
		return err
	}
	if s.panel.Kind != PanelEditing || s.panel.CardID != id {
		return ErrNoOpenForm
	}
	cards, found := flashcard.Edit(s.cards, id, front, back)
	if found {
		if err := s.commit(ctx, cards, s.index); err != nil {
			return err
		}
	}
	s.panel = Panel{}
	return nil
}

// DeleteCard removes every card with id and resets the index to 0, even when
// another card was current or nothing matched. An edit form left open for
// the deleted card stays open; saving it later is dropped by EditCard.
func (s *Session) DeleteCard(ctx context.Context, id int) error {
	if err := s.requireAdmin(); err != nil {
		return err
	}
	cards, removed := flashcard.Delete(s.cards, id)
	if err := s.commit(ctx, cards, 0); err != nil {
		return err
	}
	logger.FromContext(ctx).WithPrefix("session").Debug("deleted card id=%d (removed=%d)", id, removed)
	return nil
}

// View returns a copy of the current state.
func (s *Session) View() View {
	cards := make([]models.Flashcard, len(s.cards))
	for i, c := range s.cards {
		cards[i] = c.Clone()
	}
	v := View{
		Screen:     s.screen,
		Admin:      s.admin,
		Revealed:   s.revealed,
		Panel:      s.panel,
		ClassID:    s.classID,
		Flashcards: cards,
		Index:      s.index,
		CardsLeft:  flashcard.CardsLeft(cards, s.index),
		Stats:      flashcard.Statistics(cards),
	}
	if current, err := flashcard.Current(cards, s.index); err == nil {
		v.Current = &current
	}
	return v
}
