package rewards

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/example/playmart/internal/catalog"
	"github.com/example/playmart/internal/notify"
)

// EvaluateBadges returns the ids of badges newly earned by the given
// progress, skipping badges already held. It is a pure function; the
// caller appends the result and persists.
//
// The big_spender predicate deliberately checks order count, not
// cumulative spend, matching the storefront's observed behavior.
func EvaluateBadges(p Progress, badges []catalog.Badge) []string {
	var earned []string
	for _, badge := range badges {
		if p.HasBadge(badge.ID) {
			continue
		}
		if badgeEarned(badge.ID, p) {
			earned = append(earned, badge.ID)
		}
	}
	return earned
}

func badgeEarned(id string, p Progress) bool {
	switch id {
	case "quiz_master":
		return p.TotalPoints >= 100
	case "spin_champion":
		return p.SpinsUsed >= 5
	case "streak_master":
		return p.QuizStreak >= 7
	case "loyal_shopper":
		return p.TotalOrders >= 5
	case "first_order":
		return p.TotalOrders >= 1
	case "big_spender":
		return p.TotalOrders >= 10
	default:
		return false
	}
}

// awardBadges appends newly earned badges to the progress record and
// notifies once per badge. The caller persists.
func (s *Service) awardBadges(userID uuid.UUID, p *Progress) {
	for _, id := range EvaluateBadges(*p, s.cat.Badges) {
		p.Badges = append(p.Badges, id)

		name := id
		for _, badge := range s.cat.Badges {
			if badge.ID == id {
				name = badge.Name
				break
			}
		}
		s.notify(userID, notify.KindBadge, "Badge Earned!",
			fmt.Sprintf("You've earned the %q badge!", name))
	}
}
