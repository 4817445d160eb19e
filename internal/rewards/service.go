// Package rewards implements the gamification core: the persisted
// progress record, the daily quiz, the spin wheel, flash sales and the
// badge evaluator.
package rewards

import (
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/playmart/internal/cart"
	"github.com/example/playmart/internal/catalog"
	"github.com/example/playmart/internal/notify"
)

// Config carries the engine knobs.
type Config struct {
	QuestionsPerQuiz int
	QuestionTime     time.Duration
	SpinDuration     time.Duration
	MaxSpinsPerDay   int
}

// Service drives all reward state transitions. Mutations are atomic
// under a single mutex; the persisted record is written through on
// every change.
type Service struct {
	cfg      Config
	storage  Storage
	notifier notify.Notifier
	cat      *catalog.Catalog
	carts    *cart.Store
	clock    func() time.Time
	rng      *rand.Rand

	mu       sync.Mutex
	sessions map[uuid.UUID]*quizSession
	spinning map[uuid.UUID]bool
	sales    map[string]*saleState
}

// Option adjusts Service construction, mainly for tests.
type Option func(*Service)

// WithClock substitutes the time source.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

// WithRand substitutes the random source.
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) { s.rng = rng }
}

// NewService wires the engines to their collaborators.
func NewService(cfg Config, storage Storage, notifier notify.Notifier, cat *catalog.Catalog, carts *cart.Store, opts ...Option) *Service {
	if cfg.QuestionsPerQuiz <= 0 {
		cfg.QuestionsPerQuiz = 3
	}
	if cfg.QuestionTime <= 0 {
		cfg.QuestionTime = 30 * time.Second
	}
	if cfg.MaxSpinsPerDay <= 0 {
		cfg.MaxSpinsPerDay = 1
	}

	s := &Service{
		cfg:      cfg,
		storage:  storage,
		notifier: notifier,
		cat:      cat,
		carts:    carts,
		clock:    time.Now,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		sessions: make(map[uuid.UUID]*quizSession),
		spinning: make(map[uuid.UUID]bool),
		sales:    make(map[string]*saleState),
	}

	for _, opt := range opts {
		opt(s)
	}

	for _, fs := range cat.FlashSales {
		item := fs
		s.sales[fs.ID] = &saleState{item: item, claimed: fs.Claimed}
	}

	return s
}

// Progress returns the user's current record, falling back to the
// documented defaults when nothing usable is stored.
func (s *Service) Progress(userID uuid.UUID) Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadProgress(userID)
}

// RecordOrder registers a completed checkout and re-evaluates badges.
func (s *Service) RecordOrder(userID uuid.UUID) Progress {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.loadProgress(userID)
	p.TotalOrders++
	s.awardBadges(userID, &p)
	s.saveProgress(userID, p)
	return p
}

func (s *Service) loadProgress(userID uuid.UUID) Progress {
	p, ok, err := s.storage.Load(userID)
	if err != nil {
		log.Printf("[Rewards] Failed to load progress for %s, using defaults: %v", userID, err)
		ok = false
	}
	if !ok {
		p = Progress{MaxSpinsPerDay: s.cfg.MaxSpinsPerDay}
	}
	if p.MaxSpinsPerDay < 1 {
		p.MaxSpinsPerDay = s.cfg.MaxSpinsPerDay
	}
	return p
}

// saveProgress writes through to storage. A failing save degrades to a
// warning; the in-memory state stays authoritative for the session.
func (s *Service) saveProgress(userID uuid.UUID, p Progress) {
	if err := s.storage.Save(userID, p); err != nil {
		log.Printf("[Rewards] Failed to persist progress for %s: %v", userID, err)
		s.notify(userID, notify.KindWarning, "Progress not saved",
			"Your progress could not be saved and may be lost when the session ends.")
	}
}

func (s *Service) notify(userID uuid.UUID, kind, title, description string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(notify.Event{
		UserID:      userID,
		Kind:        kind,
		Title:       title,
		Description: description,
		CreatedAt:   s.clock(),
	})
}

func (s *Service) today() string {
	return dayStamp(s.clock())
}

func (s *Service) yesterday() string {
	return dayStamp(s.clock().AddDate(0, 0, -1))
}
