package game

import "time"

// Progress is the player's resources and progression. Coins and
// SpendableXP never go negative; TotalXP and Level never decrease.
type Progress struct {
	PlayerID         string    `json:"player_id,omitempty"`
	PlayerName       string    `json:"player_name"`
	Coins            int64     `json:"coins"`
	SpendableXP      int64     `json:"spendable_xp"`
	TotalXP          int64     `json:"total_xp"`
	Level            int       `json:"level"`
	Referrals        int       `json:"referrals"`
	ReferralCredited bool      `json:"referral_credited"`
	LastSave         time.Time `json:"last_save"`
}

// levelForXP derives the level from lifetime XP: one level per 500 XP.
func levelForXP(totalXP int64) int {
	return int(totalXP/xpPerLevel) + 1
}

// addXPLocked credits experience and handles level-ups. The level is a
// pure function of lifetime XP, clamped so it never regresses; each
// threshold crossed grants a one-shot coin reward and exactly one level-up
// notification. Caller holds the lock.
func (s *Session) addXPLocked(amount int64) {
	if amount <= 0 {
		return
	}
	s.progress.SpendableXP += amount
	s.progress.TotalXP += amount

	newLevel := levelForXP(s.progress.TotalXP)
	if newLevel <= s.progress.Level {
		return
	}
	var reward int64
	for l := s.progress.Level + 1; l <= newLevel; l++ {
		reward += int64(l) * levelRewardCoins
	}
	s.progress.Level = newLevel
	s.progress.Coins += reward
	s.pushNote(Notification{Kind: NoteLevelUp, Level: newLevel, Coins: reward})
}

// AddXP credits experience from outside the builder (debug/reward hook).
func (s *Session) AddXP(amount int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addXPLocked(amount)
}

// AddCoins adjusts the balance, clamping at zero (debug/reward hook).
func (s *Session) AddCoins(amount int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress.Coins += amount
	if s.progress.Coins < 0 {
		s.progress.Coins = 0
	}
}

// ExchangeXPForCoins trades spendable XP for coins at 1 XP : 10 coins,
// atomically. Lifetime XP (and therefore level) is unaffected.
func (s *Session) ExchangeXPForCoins(amount int64) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if amount <= 0 || s.progress.SpendableXP < amount {
		return fail(ReasonInsufficientXP)
	}
	s.progress.SpendableXP -= amount
	s.progress.Coins += amount * xpToCoinRate
	return ok()
}

// UpdatePlayerName renames the player. Empty names are ignored.
func (s *Session) UpdatePlayerName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name != "" {
		s.progress.PlayerName = name
	}
}

// ApplyIdentity consumes the host-supplied identity event at session
// start. The referral reward is credited at most once per save, guarded by
// a persisted flag, so a host replaying the same start parameter on every
// reload cannot re-trigger it.
func (s *Session) ApplyIdentity(playerID, displayName string, referred bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if playerID != "" {
		s.progress.PlayerID = playerID
	}
	if displayName != "" && s.progress.PlayerName == defaultPlayerName {
		s.progress.PlayerName = displayName
	}
	if referred && !s.progress.ReferralCredited {
		s.progress.ReferralCredited = true
		s.progress.Referrals++
		s.progress.Coins += referralReward
		s.pushNote(Notification{Kind: NoteReferral, Coins: referralReward})
	}
}

// Progress returns a copy of the player's progression state.
func (s *Session) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}
