package rewards

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/playmart/internal/cart"
	"github.com/example/playmart/internal/catalog"
	"github.com/example/playmart/internal/notify"
)

// saleState tracks the live claim counter for one flash-sale item.
type saleState struct {
	item    catalog.FlashSale
	claimed int
}

// TimeBreakdown is a clamped hours/minutes/seconds countdown view.
type TimeBreakdown struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// RemainingTime breaks the span until endTime into hours, minutes and
// seconds, clamped to zero once the sale has ended.
func RemainingTime(endTime, now time.Time) TimeBreakdown {
	diff := endTime.Sub(now)
	if diff <= 0 {
		return TimeBreakdown{}
	}
	return TimeBreakdown{
		Hours:   int(diff / time.Hour),
		Minutes: int(diff % time.Hour / time.Minute),
		Seconds: int(diff % time.Minute / time.Second),
	}
}

// FlashSaleView is a flash-sale item with its live counters. The
// countdown is advisory; claims are checked against the live clock.
type FlashSaleView struct {
	catalog.FlashSale
	Claimed   int           `json:"claimed"`
	Remaining int           `json:"remaining"`
	TimeLeft  TimeBreakdown `json:"time_left"`
	SoldOut   bool          `json:"sold_out"`
	Expired   bool          `json:"expired"`
}

// FlashSales lists all flash-sale items with current claim counts and
// countdowns.
func (s *Service) FlashSales() []FlashSaleView {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	views := make([]FlashSaleView, 0, len(s.cat.FlashSales))
	for _, fs := range s.cat.FlashSales {
		views = append(views, s.saleViewLocked(fs.ID, now))
	}
	return views
}

// ClaimFlashSale converts one unit of the sale into a cart line at the
// sale price. Expiry is checked against the current clock, not a
// cached flag; sold-out and expired claims are rejected untouched.
func (s *Service) ClaimFlashSale(userID uuid.UUID, saleID string) (FlashSaleView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sales[saleID]
	if !ok {
		return FlashSaleView{}, ErrUnknownSale
	}

	now := s.clock()
	if !now.Before(state.item.EndTime) {
		return FlashSaleView{}, ErrSaleExpired
	}
	if state.claimed >= state.item.Total {
		return FlashSaleView{}, ErrSaleSoldOut
	}

	if err := s.carts.Add(userID, cart.Line{
		ProductID:     state.item.ID,
		Name:          state.item.Name,
		UnitPrice:     state.item.SalePrice,
		OriginalPrice: state.item.OriginalPrice,
		Quantity:      1,
	}); err != nil {
		return FlashSaleView{}, err
	}

	state.claimed++

	s.notify(userID, notify.KindFlashSale, "Added to Cart!",
		fmt.Sprintf("%s added to your cart at flash sale price!", state.item.Name))

	return s.saleViewLocked(saleID, now), nil
}

func (s *Service) saleViewLocked(saleID string, now time.Time) FlashSaleView {
	state := s.sales[saleID]
	return FlashSaleView{
		FlashSale: state.item,
		Claimed:   state.claimed,
		Remaining: state.item.Total - state.claimed,
		TimeLeft:  RemainingTime(state.item.EndTime, now),
		SoldOut:   state.claimed >= state.item.Total,
		Expired:   !now.Before(state.item.EndTime),
	}
}
