package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		totalXP int64
		level   int
	}{
		{0, 1},
		{499, 1},
		{500, 2},
		{999, 2},
		{1000, 3},
		{5000, 11},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.level, levelForXP(tt.totalXP), "totalXP=%d", tt.totalXP)
	}
}

func TestAddXPLevelUpReward(t *testing.T) {
	s := newTestSession(t)
	coinsBefore := s.Progress().Coins

	s.AddXP(500)

	p := s.Progress()
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, coinsBefore+2000, p.Coins, "level 2 reward is 2*1000")

	state := s.RenderState()
	require.NotNil(t, state.Notification)
	assert.Equal(t, NoteLevelUp, state.Notification.Kind)
	assert.Equal(t, 2, state.Notification.Level)
	assert.Equal(t, int64(2000), state.Notification.Coins)
}

func TestAddXPCrossingMultipleThresholds(t *testing.T) {
	s := newTestSession(t)
	coinsBefore := s.Progress().Coins

	// 0 -> 1500 XP jumps level 1 -> 4: rewards 2000 + 3000 + 4000.
	s.AddXP(1500)

	p := s.Progress()
	assert.Equal(t, 4, p.Level)
	assert.Equal(t, coinsBefore+9000, p.Coins)

	// Exactly one notification for the whole jump.
	state := s.RenderState()
	require.NotNil(t, state.Notification)
	assert.Equal(t, 4, state.Notification.Level)
	assert.Equal(t, int64(9000), state.Notification.Coins)
	s.CloseNotification()
	assert.Nil(t, s.RenderState().Notification)
}

func TestAddXPIgnoresNonPositive(t *testing.T) {
	s := newTestSession(t)
	before := s.Progress()
	s.AddXP(0)
	s.AddXP(-100)
	assert.Equal(t, before, s.Progress())
}

func TestExchangeXPForCoins(t *testing.T) {
	s := newTestSession(t)
	s.AddXP(300)
	p := s.Progress()

	res := s.ExchangeXPForCoins(100)
	require.True(t, res.OK)

	after := s.Progress()
	assert.Equal(t, p.SpendableXP-100, after.SpendableXP)
	assert.Equal(t, p.Coins+1000, after.Coins)
	// Lifetime XP and level are untouched by spending.
	assert.Equal(t, p.TotalXP, after.TotalXP)
	assert.Equal(t, p.Level, after.Level)
}

func TestExchangeXPInsufficient(t *testing.T) {
	s := newTestSession(t)
	s.AddXP(50)
	before := s.Progress()

	for _, amount := range []int64{51, 0, -10} {
		res := s.ExchangeXPForCoins(amount)
		assert.False(t, res.OK, "amount=%d", amount)
		assert.Equal(t, ReasonInsufficientXP, res.Reason)
	}
	assert.Equal(t, before, s.Progress())
}

func TestAddCoinsClampsAtZero(t *testing.T) {
	s := newTestSession(t)
	s.AddCoins(-999999)
	assert.Equal(t, int64(0), s.Progress().Coins)
	s.AddCoins(123)
	assert.Equal(t, int64(123), s.Progress().Coins)
}

func TestUpdatePlayerName(t *testing.T) {
	s := newTestSession(t)
	assert.Equal(t, "Mayor", s.Progress().PlayerName)

	s.UpdatePlayerName("Robin")
	assert.Equal(t, "Robin", s.Progress().PlayerName)

	s.UpdatePlayerName("")
	assert.Equal(t, "Robin", s.Progress().PlayerName)
}

func TestApplyIdentity(t *testing.T) {
	s := newTestSession(t)
	coinsBefore := s.Progress().Coins

	s.ApplyIdentity("u-123", "Alex", true)

	p := s.Progress()
	assert.Equal(t, "u-123", p.PlayerID)
	assert.Equal(t, "Alex", p.PlayerName)
	assert.Equal(t, 1, p.Referrals)
	assert.True(t, p.ReferralCredited)
	assert.Equal(t, coinsBefore+2500, p.Coins)

	state := s.RenderState()
	require.NotNil(t, state.Notification)
	assert.Equal(t, NoteReferral, state.Notification.Kind)
}

func TestApplyIdentityReferralCreditedOnce(t *testing.T) {
	s := newTestSession(t)
	s.ApplyIdentity("u-123", "Alex", true)
	p := s.Progress()

	// A host replaying the same start parameter must not pay twice.
	s.ApplyIdentity("u-123", "Alex", true)
	after := s.Progress()
	assert.Equal(t, p.Coins, after.Coins)
	assert.Equal(t, 1, after.Referrals)
}

func TestApplyIdentityKeepsChosenName(t *testing.T) {
	s := newTestSession(t)
	s.UpdatePlayerName("Robin")

	// The host display name only fills in the untouched default.
	s.ApplyIdentity("u-123", "Alex", false)
	assert.Equal(t, "Robin", s.Progress().PlayerName)
}
