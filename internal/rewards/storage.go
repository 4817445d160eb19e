package rewards

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/playmart/internal/models"
)

// Storage is the persistence port for reward progress. Load reports
// whether a record existed; a tolerant implementation returns ok=false
// instead of failing on unreadable records.
type Storage interface {
	Load(userID uuid.UUID) (Progress, bool, error)
	Save(userID uuid.UUID, progress Progress) error
}

// MemoryStorage keeps progress records in memory. Used by tests and as
// a fallback when no database is configured.
type MemoryStorage struct {
	mu      sync.Mutex
	records map[uuid.UUID]Progress
}

// NewMemoryStorage returns an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{records: make(map[uuid.UUID]Progress)}
}

func (s *MemoryStorage) Load(userID uuid.UUID) (Progress, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.records[userID]
	return p, ok, nil
}

func (s *MemoryStorage) Save(userID uuid.UUID, progress Progress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[userID] = progress
	return nil
}

// GormStorage persists progress as one RewardRecord row per user.
type GormStorage struct {
	db *gorm.DB
}

// NewGormStorage wraps the database connection.
func NewGormStorage(db *gorm.DB) *GormStorage {
	return &GormStorage{db: db}
}

func (s *GormStorage) Load(userID uuid.UUID) (Progress, bool, error) {
	var record models.RewardRecord
	if err := s.db.Where("user_id = ?", userID).First(&record).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return Progress{}, false, nil
		}
		return Progress{}, false, err
	}
	return progressFromRecord(record), true, nil
}

func (s *GormStorage) Save(userID uuid.UUID, progress Progress) error {
	var record models.RewardRecord
	err := s.db.Where("user_id = ?", userID).First(&record).Error
	if err == gorm.ErrRecordNotFound {
		record = models.RewardRecord{UserID: userID}
		applyProgress(&record, progress)
		return s.db.Create(&record).Error
	}
	if err != nil {
		return err
	}

	applyProgress(&record, progress)
	return s.db.Save(&record).Error
}

func progressFromRecord(record models.RewardRecord) Progress {
	p := Progress{
		TotalPoints:    record.TotalPoints,
		LastQuizDate:   record.LastQuizDate,
		LastSpinDate:   record.LastSpinDate,
		QuizStreak:     record.QuizStreak,
		TotalOrders:    record.TotalOrders,
		SpinsUsed:      record.SpinsUsed,
		MaxSpinsPerDay: record.MaxSpinsPerDay,
	}
	if record.Badges != "" {
		p.Badges = strings.Split(record.Badges, ",")
	}
	if p.TotalPoints < 0 {
		p.TotalPoints = 0
	}
	if p.QuizStreak < 0 {
		p.QuizStreak = 0
	}
	if p.SpinsUsed < 0 {
		p.SpinsUsed = 0
	}
	return p
}

func applyProgress(record *models.RewardRecord, p Progress) {
	record.TotalPoints = p.TotalPoints
	record.Badges = strings.Join(p.Badges, ",")
	record.LastQuizDate = p.LastQuizDate
	record.LastSpinDate = p.LastSpinDate
	record.QuizStreak = p.QuizStreak
	record.TotalOrders = p.TotalOrders
	record.SpinsUsed = p.SpinsUsed
	record.MaxSpinsPerDay = p.MaxSpinsPerDay
}
