package services

import (
	"context"
	stderrors "errors"
	"sync"

	"github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/flashcard"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/repository"
	"github.com/vytor/flashdeck/internal/repository/kvdeck"
	"github.com/vytor/flashdeck/internal/session"
)

// StudyService drives the single study session of this process.
type StudyService interface {
	Restore(ctx context.Context) error
	View(ctx context.Context) session.View
	SubmitClassID(ctx context.Context, classID string) error
	Reveal(ctx context.Context) error
	Mark(ctx context.Context, outcome string) error
	ToggleAdmin(ctx context.Context) error
	OpenStatistics(ctx context.Context) error
	CloseStatistics(ctx context.Context) error
	StartAdding(ctx context.Context) error
	StartEditing(ctx context.Context, id int) error
	CancelPanel(ctx context.Context) error
	AddCard(ctx context.Context, front, back string) (*models.Flashcard, error)
	EditCard(ctx context.Context, id int, front, back string) error
	DeleteCard(ctx context.Context, id int) error
	Deck(ctx context.Context) (*models.DeckSnapshot, error)
	Statistics(ctx context.Context) (*models.DeckStat, error)
}

// studyService serializes every call so the session sees one event at a time,
// however many HTTP requests arrive concurrently.
type studyService struct {
	mu   sync.Mutex
	sess *session.Session
}

// NewStudyService creates a StudyService over a fresh session.
func NewStudyService(deckRepo repository.DeckRepository) StudyService {
	return &studyService{sess: session.New(deckRepo)}
}

func (s *studyService) Restore(ctx context.Context) error {
	log := logger.FromContext(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	found, err := s.sess.Restore(ctx)
	if err != nil {
		log.Error("failed to restore session: %v", err)
		return s.appErrorFor(s.sess.View().ClassID, err)
	}
	if found {
		log.Info("resumed class %q", s.sess.View().ClassID)
	}
	return nil
}

func (s *studyService) View(ctx context.Context) session.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.View()
}

func (s *studyService) SubmitClassID(ctx context.Context, classID string) error {
	log := logger.FromContext(ctx)
	log.Debug("submitting class id: %s", classID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sess.SubmitClassID(ctx, classID); err != nil {
		return s.appErrorFor(classID, err)
	}
	log.Info("class %q selected, %d cards loaded", classID, len(s.sess.View().Flashcards))
	return nil
}

func (s *studyService) Reveal(ctx context.Context) error {
	return s.do(ctx, "reveal answer", func() error { return s.sess.Reveal() })
}

func (s *studyService) Mark(ctx context.Context, outcome string) error {
	parsed, err := models.ParseOutcome(outcome)
	if err != nil {
		return errors.NewValidationError("outcome", "must be pass or fail")
	}
	return s.do(ctx, "mark "+outcome, func() error { return s.sess.Mark(ctx, parsed) })
}

func (s *studyService) ToggleAdmin(ctx context.Context) error {
	return s.do(ctx, "toggle admin mode", func() error { return s.sess.ToggleAdmin() })
}

func (s *studyService) OpenStatistics(ctx context.Context) error {
	return s.do(ctx, "open statistics", func() error { return s.sess.OpenStatistics() })
}

func (s *studyService) CloseStatistics(ctx context.Context) error {
	return s.do(ctx, "close statistics", func() error { return s.sess.CloseStatistics() })
}

func (s *studyService) StartAdding(ctx context.Context) error {
	return s.do(ctx, "open add form", func() error { return s.sess.StartAdding() })
}

func (s *studyService) StartEditing(ctx context.Context, id int) error {
	return s.do(ctx, "open edit form", func() error { return s.sess.StartEditing(id) })
}

func (s *studyService) CancelPanel(ctx context.Context) error {
	return s.do(ctx, "close admin form", func() error { return s.sess.CancelPanel() })
}

func (s *studyService) AddCard(ctx context.Context, front, back string) (*models.Flashcard, error) {
	var card models.Flashcard
	err := s.do(ctx, "add card", func() error {
		var err error
		card, err = s.sess.AddCard(ctx, front, back)
		return err
	})
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("card added: id=%d", card.ID)
	return &card, nil
}

func (s *studyService) EditCard(ctx context.Context, id int, front, back string) error {
	return s.do(ctx, "edit card", func() error { return s.sess.EditCard(ctx, id, front, back) })
}

func (s *studyService) DeleteCard(ctx context.Context, id int) error {
	return s.do(ctx, "delete card", func() error { return s.sess.DeleteCard(ctx, id) })
}

func (s *studyService) Deck(ctx context.Context) (*models.DeckSnapshot, error) {
	v := s.View(ctx)
	if v.Screen == session.ScreenClassIDEntry {
		return nil, s.appErrorFor(v.ClassID, session.ErrNoClass)
	}
	snapshot := v.Snapshot()
	return &snapshot, nil
}

func (s *studyService) Statistics(ctx context.Context) (*models.DeckStat, error) {
	v := s.View(ctx)
	if v.Screen == session.ScreenClassIDEntry {
		return nil, s.appErrorFor(v.ClassID, session.ErrNoClass)
	}
	return &v.Stats, nil
}

func (s *studyService) do(ctx context.Context, action string, fn func() error) error {
	log := logger.FromContext(ctx)
	log.Debug("session action: %s", action)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(); err != nil {
		log.Debug("session action %s failed: %v", action, err)
		return s.appErrorFor(s.sess.View().ClassID, err)
	}
	return nil
}

// appErrorFor maps session and repository errors onto AppErrors.
func (s *studyService) appErrorFor(classID string, err error) error {
	switch {
	case stderrors.Is(err, session.ErrClassIDRequired):
		return errors.NewValidationError("class_id", "is required")
	case stderrors.Is(err, session.ErrNoClass):
		return errors.NewConflictError(errors.ErrCodeNoClass, "enter a class id first", err)
	case stderrors.Is(err, flashcard.ErrEmptyDeck):
		return errors.NewConflictError(errors.ErrCodeEmptyDeck, "the deck has no cards, add one in admin mode", err)
	case stderrors.Is(err, flashcard.ErrNoCurrentCard):
		return errors.NewConflictError(errors.ErrCodeEmptyDeck, "the current card no longer exists", err)
	case stderrors.Is(err, flashcard.ErrInvalidOutcome):
		return errors.NewValidationError("outcome", "must be pass or fail")
	case stderrors.Is(err, session.ErrNotStudying):
		return errors.NewBadRequestError("only available in study mode")
	case stderrors.Is(err, session.ErrAdminModeRequired):
		return errors.NewBadRequestError("only available in admin mode")
	case stderrors.Is(err, session.ErrNoOpenForm):
		return errors.NewBadRequestError("the form was closed, open it again")
	case stderrors.Is(err, kvdeck.ErrCorruptSnapshot):
		return errors.NewCorruptDeckError(classID, err)
	default:
		return errors.NewInternalError(err)
	}
}
