package rewards

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/playmart/internal/catalog"
	"github.com/example/playmart/internal/notify"
)

func TestSpinRespectsDailyCap(t *testing.T) {
	f := newFixture(t, Config{MaxSpinsPerDay: 1})
	user := uuid.New()

	_, err := f.svc.Spin(user)
	require.NoError(t, err)

	_, err = f.svc.Spin(user)
	assert.ErrorIs(t, err, ErrSpinNotAvailable)

	f.clock.advanceDays(1)
	_, err = f.svc.Spin(user)
	require.NoError(t, err)

	p := f.svc.Progress(user)
	assert.Equal(t, 1, p.SpinsUsed, "spins used resets on a new day")
	assert.Equal(t, "2026-03-15", p.LastSpinDate)
}

func TestSpinAllowsMultiplePerDayWhenConfigured(t *testing.T) {
	f := newFixture(t, Config{MaxSpinsPerDay: 3})
	user := uuid.New()

	for i := 1; i <= 3; i++ {
		result, err := f.svc.Spin(user)
		require.NoError(t, err)
		assert.Equal(t, i, result.SpinsUsed)
	}

	_, err := f.svc.Spin(user)
	assert.ErrorIs(t, err, ErrSpinNotAvailable)
}

func TestSpinCreditsPointRewards(t *testing.T) {
	f := newFixture(t, Config{})
	// a single 100-weight points segment makes the outcome deterministic
	f.cat.Rewards = []catalog.SpinReward{
		{ID: "r1", Title: "10 Points", Value: "10", Type: catalog.RewardPoints, Probability: 100},
	}

	user := uuid.New()
	result, err := f.svc.Spin(user)
	require.NoError(t, err)
	assert.Equal(t, "r1", result.Reward.ID)

	p := f.svc.Progress(user)
	assert.Equal(t, 10, p.TotalPoints)
	assert.Equal(t, "2026-03-14", p.LastSpinDate)

	assert.Contains(t, kinds(f.feed.List(user)), notify.KindSpin)
}

func TestSpinNonPointRewardsCreditNothing(t *testing.T) {
	f := newFixture(t, Config{})
	f.cat.Rewards = []catalog.SpinReward{
		{ID: "r3", Title: "Free Shipping", Value: "free", Type: catalog.RewardFreeShipping, Probability: 100},
	}

	user := uuid.New()
	_, err := f.svc.Spin(user)
	require.NoError(t, err)

	assert.Zero(t, f.svc.Progress(user).TotalPoints)
}

func TestSpinRotationIsPresentationOnly(t *testing.T) {
	f := newFixture(t, Config{})
	user := uuid.New()

	result, err := f.svc.Spin(user)
	require.NoError(t, err)

	// 5-10 full turns plus an offset under one turn
	assert.GreaterOrEqual(t, result.Rotation, 5.0*360)
	assert.Less(t, result.Rotation, 11.0*360)
}

func TestPendingSpinRejectsSecondCall(t *testing.T) {
	f := newFixture(t, Config{SpinDuration: 50 * time.Millisecond, MaxSpinsPerDay: 5})
	user := uuid.New()

	_, err := f.svc.Spin(user)
	require.NoError(t, err)

	_, err = f.svc.Spin(user)
	assert.ErrorIs(t, err, ErrSpinInProgress)

	// the pending spin settles after the configured delay
	require.Eventually(t, func() bool {
		return f.svc.Progress(user).SpinsUsed == 1
	}, 2*time.Second, 10*time.Millisecond)

	_, err = f.svc.Spin(user)
	require.NoError(t, err)
}

// Over many draws the empirical frequencies converge to the configured
// weights, and the walk never fails even when weights do not sum to 100.
func TestPickRewardDistribution(t *testing.T) {
	rewards := catalog.Default(time.Now()).Rewards
	require.Len(t, rewards, 4)

	rng := rand.New(rand.NewSource(42))
	counts := make(map[string]int)
	const trials = 100000
	for i := 0; i < trials; i++ {
		counts[pickReward(rng, rewards).ID]++
	}

	expected := map[string]float64{"r1": 0.40, "r2": 0.30, "r3": 0.20, "r4": 0.10}
	for id, want := range expected {
		got := float64(counts[id]) / trials
		assert.InDelta(t, want, got, 0.01, "reward %s frequency", id)
	}
}

func TestPickRewardToleratesWeightGap(t *testing.T) {
	rewards := []catalog.SpinReward{
		{ID: "a", Probability: 10},
		{ID: "b", Probability: 10},
	}

	rng := rand.New(rand.NewSource(11))
	counts := make(map[string]int)
	for i := 0; i < 10000; i++ {
		counts[pickReward(rng, rewards).ID]++
	}

	// the last entry catches the 80% of mass the weights leave uncovered
	assert.Greater(t, counts["b"], counts["a"])
	assert.Equal(t, 10000, counts["a"]+counts["b"])
}

func TestPickRewardZeroWeightsFallBackToLast(t *testing.T) {
	rewards := []catalog.SpinReward{
		{ID: "a", Probability: 0},
		{ID: "b", Probability: 0},
	}

	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		assert.Equal(t, "b", pickReward(rng, rewards).ID)
	}
}
