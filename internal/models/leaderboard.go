package models

type DamageRank struct {
	OwnerID int64 `json:"owner_id"`
	Damage  int   `json:"damage"`
	Rank    int   `json:"rank"`
}

type BossLeaderboardResponse struct {
	Boss        *BossEncounter `json:"boss"`
	Leaderboard []*DamageRank  `json:"leaderboard"`
	Me          *DamageRank    `json:"me,omitempty"`
}
