package redis_store

import (
	"context"
	"fmt"
	"time"

	"xplife/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

const bossSnapshotTTL = 30 * time.Second

func keyBossDamage(bossID string) string {
	return fmt.Sprintf("boss:%s:damage", bossID)
}

func keyBossSnapshot() string {
	return "boss:active:snapshot"
}

// AddBossDamage bumps the owner's score on the per-boss damage leaderboard.
func AddBossDamage(ctx context.Context, client redis.UniversalClient, bossID string, ownerID int64, damage int) error {
	return client.ZIncrBy(ctx, keyBossDamage(bossID), float64(damage), fmt.Sprintf("%d", ownerID)).Err()
}

func GetTopDamage(ctx context.Context, client redis.UniversalClient, bossID string, limit int) ([]*models.DamageRank, error) {
	items, err := client.ZRevRangeWithScores(ctx, keyBossDamage(bossID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	ranks := make([]*models.DamageRank, 0, len(items))
	for i, item := range items {
		var ownerID int64
		_, err := fmt.Sscanf(item.Member.(string), "%d", &ownerID)
		if err != nil {
			continue
		}
		ranks = append(ranks, &models.DamageRank{
			OwnerID: ownerID,
			Damage:  int(item.Score),
			Rank:    i + 1,
		})
	}

	return ranks, nil
}

// GetDamageRank returns the owner's 1-based rank and damage on the per-boss
// leaderboard.
func GetDamageRank(ctx context.Context, client redis.UniversalClient, bossID string, ownerID int64) (*models.DamageRank, error) {
	member := fmt.Sprintf("%d", ownerID)
	rank, err := client.ZRevRank(ctx, keyBossDamage(bossID), member).Result()
	if err != nil {
		return nil, err
	}
	score, err := client.ZScore(ctx, keyBossDamage(bossID), member).Result()
	if err != nil {
		return nil, err
	}
	return &models.DamageRank{
		OwnerID: ownerID,
		Damage:  int(score),
		Rank:    int(rank) + 1,
	}, nil
}

func SetBossSnapshot(ctx context.Context, client redis.UniversalClient, boss *models.BossEncounter) error {
	b, err := msgpack.Marshal(boss)
	if err != nil {
		return err
	}
	return client.Set(ctx, keyBossSnapshot(), b, bossSnapshotTTL).Err()
}

func GetBossSnapshot(ctx context.Context, client redis.UniversalClient) (*models.BossEncounter, error) {
	b, err := client.Get(ctx, keyBossSnapshot()).Bytes()
	if err != nil {
		return nil, err
	}

	var boss models.BossEncounter
	if err := msgpack.Unmarshal(b, &boss); err != nil {
		return nil, err
	}
	return &boss, nil
}

func DeleteBossSnapshot(ctx context.Context, client redis.UniversalClient) error {
	return client.Del(ctx, keyBossSnapshot()).Err()
}
