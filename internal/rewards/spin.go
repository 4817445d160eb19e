package rewards

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/example/playmart/internal/catalog"
	"github.com/example/playmart/internal/notify"
)

// SpinResult reports the selected reward. Rotation is the wheel's
// visual target in degrees; it is presentation only and has no bearing
// on which reward was drawn.
type SpinResult struct {
	Reward         catalog.SpinReward `json:"reward"`
	Rotation       float64            `json:"rotation"`
	SettlesIn      float64            `json:"settles_in_seconds"`
	SpinsUsed      int                `json:"spins_used"`
	SpinsLeftToday int                `json:"spins_left_today"`
}

// Spin draws a weighted-random reward. The outcome is settled into the
// progress record after the configured delay; a non-positive delay
// settles synchronously. Only one spin may be pending per user.
func (s *Service) Spin(userID uuid.UUID) (SpinResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.spinning[userID] {
		return SpinResult{}, ErrSpinInProgress
	}

	p := s.loadProgress(userID)
	if !p.SpinAvailable(s.today()) {
		return SpinResult{}, ErrSpinNotAvailable
	}

	reward := pickReward(s.rng, s.cat.Rewards)
	turns := 5 + s.rng.Float64()*5
	rotation := turns*360 + s.rng.Float64()*360

	s.spinning[userID] = true
	if s.cfg.SpinDuration <= 0 {
		p = s.settleSpinLocked(userID, reward)
	} else {
		time.AfterFunc(s.cfg.SpinDuration, func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.settleSpinLocked(userID, reward)
		})
		if p.LastSpinDate == s.today() {
			p.SpinsUsed++
		} else {
			p.SpinsUsed = 1
		}
	}

	left := p.MaxSpinsPerDay - p.SpinsUsed
	if left < 0 {
		left = 0
	}

	return SpinResult{
		Reward:         reward,
		Rotation:       rotation,
		SettlesIn:      s.cfg.SpinDuration.Seconds(),
		SpinsUsed:      p.SpinsUsed,
		SpinsLeftToday: left,
	}, nil
}

// settleSpinLocked applies the spin outcome to the progress record
// once the wheel has stopped.
func (s *Service) settleSpinLocked(userID uuid.UUID, reward catalog.SpinReward) Progress {
	delete(s.spinning, userID)

	p := s.loadProgress(userID)
	if p.LastSpinDate == s.today() {
		p.SpinsUsed++
	} else {
		p.SpinsUsed = 1
	}
	p.LastSpinDate = s.today()

	if reward.Type == catalog.RewardPoints {
		if points, err := strconv.Atoi(reward.Value); err == nil {
			p.TotalPoints += points
		}
	}

	s.awardBadges(userID, &p)
	s.saveProgress(userID, p)

	s.notify(userID, notify.KindSpin, "Congratulations!",
		fmt.Sprintf("You won: %s - %s", reward.Title, reward.Description))
	return p
}

// pickReward walks the catalog in order accumulating weights and picks
// the first entry whose cumulative weight covers the draw. The final
// entry catches any mass left by weights that do not sum to 100.
func pickReward(rng *rand.Rand, rewards []catalog.SpinReward) catalog.SpinReward {
	draw := rng.Float64() * 100

	cumulative := 0.0
	for _, reward := range rewards {
		cumulative += float64(reward.Probability)
		if draw < cumulative {
			return reward
		}
	}
	return rewards[len(rewards)-1]
}
