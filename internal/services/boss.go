package services

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"xplife/internal/datastore"
	"xplife/internal/datastore/redis_store"
	"xplife/internal/models"
	"xplife/internal/pkg/caching"

	"github.com/go-redsync/redsync/v4"
	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	wr "github.com/mroth/weightedrand/v2"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type bossTemplate struct {
	Name           string
	MaxHP          int
	XPReward       int
	CurrencyReward int
	Weight         int
}

// heavier bosses are rarer
var bossTemplates = []bossTemplate{
	{Name: "Procrastination Hydra", MaxHP: 5000, XPReward: 200, CurrencyReward: 60, Weight: 5},
	{Name: "Doomscroll Wraith", MaxHP: 8000, XPReward: 300, CurrencyReward: 90, Weight: 4},
	{Name: "Burnout Golem", MaxHP: 12000, XPReward: 450, CurrencyReward: 140, Weight: 2},
	{Name: "Entropy Dragon", MaxHP: 20000, XPReward: 700, CurrencyReward: 220, Weight: 1},
}

type ServiceBoss struct {
	container   *do.Injector
	postgresDB  *bun.DB
	redisClient redis.UniversalClient
	cache       caching.Cache
	rs          *redsync.Redsync

	serviceConfig *ServiceConfig
}

func NewServiceBoss(container *do.Injector) (*ServiceBoss, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	redisClient, err := do.Invoke[redis.UniversalClient](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	rs, err := do.Invoke[*redsync.Redsync](container)
	if err != nil {
		return nil, err
	}

	serviceConfig, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	return &ServiceBoss{container, postgresDB, redisClient, cache, rs, serviceConfig}, nil
}

// GetActiveBoss reads the short-lived redis snapshot first; on a miss it falls
// back to the database and refreshes the snapshot. Returns nil with no error
// when no encounter is running.
func (service *ServiceBoss) GetActiveBoss(ctx context.Context) (*models.BossEncounter, error) {
	boss, err := redis_store.GetBossSnapshot(ctx, service.redisClient)
	if err == nil {
		return boss, nil
	}
	if !errors.Is(err, redis.Nil) {
		log.Println("boss: snapshot read failed:", err)
	}

	boss, err = datastore.FindActiveBoss(ctx, service.postgresDB)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err := redis_store.SetBossSnapshot(ctx, service.redisClient, boss); err != nil {
		log.Println("boss: snapshot write failed:", err)
	}
	return boss, nil
}

// Leaderboard returns the top damage dealers of the active encounter plus the
// caller's own entry when they rank outside the page.
func (service *ServiceBoss) Leaderboard(ctx context.Context, user *models.UserProfile) (*models.BossLeaderboardResponse, error) {
	boss, err := service.GetActiveBoss(ctx)
	if err != nil {
		return nil, err
	}
	if boss == nil {
		return &models.BossLeaderboardResponse{}, nil
	}

	limit, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_BOSS_LEADERBOARD_LIMIT, BOSS_LEADERBOARD_DEFAULT_LIMIT)

	callback := func() ([]*models.DamageRank, error) {
		ranks, err := redis_store.GetTopDamage(ctx, service.redisClient, boss.ID, limit)
		if err == nil {
			return ranks, nil
		}
		log.Println("boss: redis leaderboard failed, falling back to db:", err)

		contributions, err := datastore.ListBossContributions(ctx, service.postgresDB, boss.ID, limit)
		if err != nil {
			return nil, err
		}
		ranks = make([]*models.DamageRank, 0, len(contributions))
		for i, contribution := range contributions {
			ranks = append(ranks, &models.DamageRank{
				OwnerID: contribution.OwnerID,
				Damage:  contribution.DamageDealt,
				Rank:    i + 1,
			})
		}
		return ranks, nil
	}

	ranks, err := caching.UseCache(ctx, service.cache, DBKeyBossLeaderboard(boss.ID, limit), CACHE_TTL_15_SECONDS, callback)
	if err != nil {
		return nil, err
	}

	response := &models.BossLeaderboardResponse{Boss: boss, Leaderboard: ranks}
	if user == nil {
		return response, nil
	}

	for _, rank := range ranks {
		if rank.OwnerID == user.ID {
			response.Me = rank
			return response, nil
		}
	}

	me, err := redis_store.GetDamageRank(ctx, service.redisClient, boss.ID, user.ID)
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Println("boss: rank lookup failed:", err)
		}
		return response, nil
	}
	response.Me = me
	return response, nil
}

// SpawnNext creates a new encounter from a weighted template pick. The redsync
// lock and the partial unique index together keep concurrent cron runs from
// doubling up.
func (service *ServiceBoss) SpawnNext(ctx context.Context) (*models.BossEncounter, error) {
	mutex := service.rs.NewMutex(LockKeyBossSpawn())
	if err := mutex.TryLock(); err != nil {
		return nil, errorx.Wrap(ErrBossSpawnLock, errorx.Invalid)
	}
	//nolint:errcheck
	defer mutex.Unlock()

	boss, err := datastore.FindActiveBoss(ctx, service.postgresDB)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if boss != nil {
		return boss, nil
	}

	choices := make([]wr.Choice[bossTemplate, int], 0, len(bossTemplates))
	for _, template := range bossTemplates {
		choices = append(choices, wr.NewChoice(template, template.Weight))
	}
	chooser, err := wr.NewChooser(choices...)
	if err != nil {
		return nil, err
	}
	template := chooser.Pick()

	durationDays, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_BOSS_DURATION_DAYS, BOSS_DURATION_DAYS_DEFAULT)
	now := time.Now()
	endsAt := now.AddDate(0, 0, durationDays)

	boss = &models.BossEncounter{
		ID:             uuid.NewString(),
		Name:           template.Name,
		MaxHP:          template.MaxHP,
		CurrentHP:      template.MaxHP,
		Status:         models.BossStatusActive,
		XPReward:       template.XPReward,
		CurrencyReward: template.CurrencyReward,
		CreatedAt:      now,
		EndsAt:         &endsAt,
	}

	if err := datastore.InsertBoss(ctx, service.postgresDB, boss); err != nil {
		return nil, err
	}

	if err := redis_store.SetBossSnapshot(ctx, service.redisClient, boss); err != nil {
		log.Println("boss: snapshot write failed:", err)
	}

	log.Println("spawned boss:", boss.Name, "hp:", boss.MaxHP, "ends:", endsAt.Format(time.RFC3339))
	return boss, nil
}

// ExpireAndRotate closes out overdue encounters and spawns the next one. Cron
// entry point.
func (service *ServiceBoss) ExpireAndRotate(ctx context.Context) error {
	expired, err := datastore.ExpireBosses(ctx, service.postgresDB, time.Now())
	if err != nil {
		return err
	}
	if expired > 0 {
		log.Println("expired bosses:", expired)
		if err := redis_store.DeleteBossSnapshot(ctx, service.redisClient); err != nil {
			log.Println("boss: snapshot delete failed:", err)
		}
	}

	_, err = service.SpawnNext(ctx)
	if err != nil && !errors.Is(err, ErrBossSpawnLock) {
		return err
	}
	return nil
}
