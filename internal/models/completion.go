package models

// CompletionResult is the full outcome of completing one quest, including any
// boss side effects that happened in the same transaction.
type CompletionResult struct {
	Quest           *Quest  `json:"quest"`
	XPAwarded       int     `json:"xp_awarded"`
	CurrencyAwarded int     `json:"currency_awarded"`
	TotalXP         int     `json:"total_xp"`
	Level           int     `json:"level"`
	Streak          *Streak `json:"streak,omitempty"`

	BossDamage   int     `json:"boss_damage,omitempty"`
	BossDefeated bool    `json:"boss_defeated,omitempty"`
	BossID       *string `json:"boss_id,omitempty"`
}
