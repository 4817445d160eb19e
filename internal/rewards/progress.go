package rewards

import "time"

const pointsPerLevel = 100

// Progress is the per-user gamification record. Date stamps hold
// calendar days ("2006-01-02", local time); once-per-day gates compare
// them against today.
type Progress struct {
	TotalPoints    int      `json:"total_points"`
	Badges         []string `json:"badges"`
	LastQuizDate   string   `json:"last_quiz_date"`
	LastSpinDate   string   `json:"last_spin_date"`
	QuizStreak     int      `json:"quiz_streak"`
	TotalOrders    int      `json:"total_orders"`
	SpinsUsed      int      `json:"spins_used"`
	MaxSpinsPerDay int      `json:"max_spins_per_day"`
}

// Level is derived from total points and never stored.
func (p Progress) Level() int {
	return p.TotalPoints/pointsPerLevel + 1
}

// HasBadge reports whether the badge id was already earned.
func (p Progress) HasBadge(id string) bool {
	for _, b := range p.Badges {
		if b == id {
			return true
		}
	}
	return false
}

// QuizAvailable reports whether today's quiz has not been taken yet.
func (p Progress) QuizAvailable(today string) bool {
	return p.LastQuizDate != today
}

// SpinAvailable reports whether the user may spin today.
func (p Progress) SpinAvailable(today string) bool {
	return p.LastSpinDate != today || p.SpinsUsed < p.MaxSpinsPerDay
}

func dayStamp(t time.Time) string {
	return t.Format("2006-01-02")
}
