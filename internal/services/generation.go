package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"xplife/internal/datastore"
	"xplife/internal/interfaces"
	"xplife/internal/models"
	"xplife/internal/pkg/limiter"
	"xplife/internal/pkg/period"

	"github.com/go-redis/redis_rate/v10"
	"github.com/go-redsync/redsync/v4"
	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

// cascade runs top-down, one child level per invocation
var cascadeOrder = []models.Timeframe{
	models.TimeframeMonthly,
	models.TimeframeWeekly,
	models.TimeframeDaily,
}

type ServiceGeneration struct {
	*ServiceHTTP
	container  *do.Injector
	postgresDB *bun.DB
	rs         *redsync.Redsync
	limiter    interfaces.Limiter

	serviceQuota      *ServiceQuota
	serviceDifficulty *ServiceDifficulty
	serviceConfig     *ServiceConfig

	generatorURL string
}

func NewServiceGeneration(container *do.Injector) (*ServiceGeneration, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	rs, err := do.Invoke[*redsync.Redsync](container)
	if err != nil {
		return nil, err
	}

	rateLimiter, err := do.Invoke[interfaces.Limiter](container)
	if err != nil {
		return nil, err
	}

	serviceQuota, err := do.Invoke[*ServiceQuota](container)
	if err != nil {
		return nil, err
	}

	serviceDifficulty, err := do.Invoke[*ServiceDifficulty](container)
	if err != nil {
		return nil, err
	}

	serviceConfig, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	vs := do.MustInvokeNamed[map[string]string](container, "envs")

	return &ServiceGeneration{
		ServiceHTTP:       &ServiceHTTP{},
		container:         container,
		postgresDB:        postgresDB,
		rs:                rs,
		limiter:           rateLimiter,
		serviceQuota:      serviceQuota,
		serviceDifficulty: serviceDifficulty,
		serviceConfig:     serviceConfig,
		generatorURL:      vs["GENERATOR_URL"],
	}, nil
}

// Generate runs one quota-guarded generation batch for the timeframe and
// persists the returned quests. A duplicate-period refusal is reported as
// success with zero count.
func (service *ServiceGeneration) Generate(ctx context.Context, user *models.UserProfile, tf models.Timeframe, mode models.GenerationMode, userGoals string, parentIDs []string) (*models.GenerationResult, error) {
	if !tf.Valid() {
		return nil, errorx.Wrap(errors.New("invalid timeframe"), errorx.Invalid)
	}

	quota := service.serviceQuota.CanGenerate(ctx, user, tf)
	if !quota.Allowed {
		if quota.Reason == models.ReasonAlreadyGenerated {
			return &models.GenerationResult{Count: 0, AlreadyExists: true, Reason: quota.Reason}, nil
		}
		// the error message is the reason code so clients can branch on it
		return &models.GenerationResult{
			Reason:       quota.Reason,
			CurrentCount: quota.CurrentCount,
			Limit:        quota.Limit,
		}, errorx.Wrap(errors.New(quota.Reason), errorx.Invalid)
	}

	// advisory lock; concurrent duplicates past it are rare and harmless
	mutex := service.rs.NewMutex(LockKeyGeneration(user.ID, tf))
	if err := mutex.TryLock(); err != nil {
		return nil, errorx.Wrap(ErrGenerationLock, errorx.Invalid)
	}
	//nolint:errcheck
	defer mutex.Unlock()

	err := service.limiter.Allow(ctx, LimitKeyGenerator(user.ID), redis_rate.PerMinute(GENERATOR_RATE_LIMIT_PER_MINUTE))
	if err != nil {
		if errors.Is(err, limiter.ErrRateLimited) {
			return nil, errorx.Wrap(err, errorx.RateLimiting)
		}
		log.Println("generation: limiter failed, allowing:", err)
	}

	request := service.buildRequest(ctx, user, tf, mode, userGoals, parentIDs)
	descriptors, err := service.callGenerator(ctx, request)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	quests := QuestsFromDescriptors(user.ID, tf, parentIDs, descriptors, now)
	if len(quests) == 0 {
		return nil, errorx.Wrap(ErrGeneratorMalformed, errorx.Invalid)
	}

	if err := datastore.InsertQuests(ctx, service.postgresDB, quests); err != nil {
		return nil, err
	}

	log.Println("generated quests:", "user:", user.ID, "timeframe:", tf, "count:", len(quests))
	return &models.GenerationResult{Count: len(quests)}, nil
}

// Cascade walks monthly -> weekly -> daily and fills the first level whose
// period is empty while its parent period is not. At most one generation call
// per invocation bounds the side effects of a single request.
func (service *ServiceGeneration) Cascade(ctx context.Context, user *models.UserProfile) (*models.GenerationResult, error) {
	now := time.Now()

	counts := map[models.Timeframe]int{}
	for _, tf := range []models.Timeframe{models.TimeframeYearly, models.TimeframeMonthly, models.TimeframeWeekly, models.TimeframeDaily} {
		count, err := datastore.CountQuestsInPeriod(ctx, service.postgresDB, user.ID, tf, period.Start(tf, now))
		if err != nil {
			return nil, err
		}
		counts[tf] = count
	}

	target, ok := NextCascadeTarget(counts)
	if !ok {
		return &models.GenerationResult{Count: 0}, nil
	}

	parentTf, _ := period.Parent(target)
	parents, err := datastore.ListQuestsInPeriod(ctx, service.postgresDB, user.ID, parentTf, period.Start(parentTf, now))
	if err != nil {
		return nil, err
	}

	parentIDs := make([]string, 0, len(parents))
	for _, parent := range parents {
		parentIDs = append(parentIDs, parent.ID)
	}

	return service.Generate(ctx, user, target, models.GenerationModeCascade, "", parentIDs)
}

// NextCascadeTarget picks the first timeframe with an empty current period
// and a non-empty parent period.
func NextCascadeTarget(counts map[models.Timeframe]int) (models.Timeframe, bool) {
	for _, tf := range cascadeOrder {
		if counts[tf] > 0 {
			continue
		}
		parentTf, _ := period.Parent(tf)
		if counts[parentTf] == 0 {
			continue
		}
		return tf, true
	}
	return "", false
}

func (service *ServiceGeneration) buildRequest(ctx context.Context, user *models.UserProfile, tf models.Timeframe, mode models.GenerationMode, userGoals string, parentIDs []string) *models.GeneratorRequest {
	windowDays, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_HISTORY_WINDOW_DAYS, HISTORY_WINDOW_DAYS_DEFAULT)
	countMin, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_TASK_COUNT_MIN, TASK_COUNT_MIN_DEFAULT)
	countMax, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_TASK_COUNT_MAX, TASK_COUNT_MAX_DEFAULT)

	// the hint is advisory; losing it must not block generation
	hint := &models.DifficultyHint{Recommendation: models.RecommendationBalanced}
	window, err := service.serviceDifficulty.Aggregate(ctx, user.ID, windowDays)
	if err != nil {
		log.Println("generation: history window failed, using balanced:", err)
	} else {
		hint = Recommend(window)
	}

	return &models.GeneratorRequest{
		OwnerID:           user.ID,
		Timeframe:         tf,
		GenerationMode:    mode,
		ParentContext:     parentIDs,
		UserGoals:         userGoals,
		TaskCountRange:    models.TaskCountRange{Min: countMin, Max: countMax},
		DifficultyHint:    hint.Recommendation,
		CategoryOverrides: hint.CategoryOverrides,
		ClassProfile:      user.PersonalityClass,
	}
}

func (service *ServiceGeneration) callGenerator(ctx context.Context, request *models.GeneratorRequest) ([]models.QuestDescriptor, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")

	resp, err := service.httpClient(GENERATOR_TIMEOUT).Post(service.generatorURL, bytes.NewReader(body), header)
	if err != nil {
		// nothing was inserted; the caller may simply retry
		return nil, errorx.Wrap(ErrGeneratorUnavailable, errorx.Other)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Println("generator returned status", resp.StatusCode)
		return nil, errorx.Wrap(ErrGeneratorUnavailable, errorx.Other)
	}

	var parsed models.GeneratorResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, errorx.Wrap(ErrGeneratorMalformed, errorx.Invalid)
	}

	return parsed.Quests, nil
}

// QuestsFromDescriptors materializes generator output into quest rows.
// Missing or invalid difficulty falls back to medium, xp_reward to the fixed
// default; descriptors without a title are dropped.
func QuestsFromDescriptors(ownerID int64, tf models.Timeframe, parentIDs []string, descriptors []models.QuestDescriptor, now time.Time) []*models.Quest {
	var parentID *string
	if len(parentIDs) > 0 {
		parentID = &parentIDs[0]
	}

	quests := make([]*models.Quest, 0, len(descriptors))
	for _, descriptor := range descriptors {
		if strings.TrimSpace(descriptor.Title) == "" {
			continue
		}

		difficulty := descriptor.Difficulty
		if !difficulty.Valid() {
			difficulty = models.DifficultyMedium
		}

		xp := descriptor.XPReward
		if xp <= 0 {
			xp = DEFAULT_XP_REWARD
		}

		category := descriptor.Category
		if !category.Valid() {
			category = models.CategoryProductivity
		}

		quests = append(quests, &models.Quest{
			ID:            uuid.NewString(),
			OwnerID:       ownerID,
			Title:         descriptor.Title,
			Description:   descriptor.Description,
			Category:      category,
			Difficulty:    difficulty,
			XPReward:      xp,
			Status:        models.QuestStatusPending,
			Timeframe:     tf,
			ParentQuestID: parentID,
			CreatedAt:     now,
		})
	}

	return quests
}
