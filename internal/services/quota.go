package services

import (
	"context"
	"log"
	"time"

	"xplife/internal/datastore"
	"xplife/internal/models"
	"xplife/internal/pkg/period"

	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceQuota struct {
	container  *do.Injector
	postgresDB *bun.DB

	serviceConfig *ServiceConfig
}

func NewServiceQuota(container *do.Injector) (*ServiceQuota, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	serviceConfig, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	return &ServiceQuota{container, postgresDB, serviceConfig}, nil
}

// CanGenerate decides whether a generation batch may run. Quotas are a UX
// throttle, not a security boundary: a failed count logs and allows.
func (service *ServiceQuota) CanGenerate(ctx context.Context, user *models.UserProfile, tf models.Timeframe) *models.GenerationQuota {
	now := time.Now()

	// duplicate-period suppression; yearly quests have no period
	if tf != models.TimeframeYearly {
		count, err := datastore.CountQuestsInPeriod(ctx, service.postgresDB, user.ID, tf, period.Start(tf, now))
		if err != nil {
			log.Println("quota: period count failed, allowing:", err)
		} else if count > 0 {
			return &models.GenerationQuota{
				Allowed:      false,
				Reason:       models.ReasonAlreadyGenerated,
				CurrentCount: count,
			}
		}
	}

	// the weekly cap counts every timeframe created this ISO week, on
	// purpose: a daily generation call consumes weekly budget too
	weeklyCap := service.weeklyCap(ctx, user.PlanTier)
	if weeklyCap >= 0 {
		count, err := datastore.CountQuestsCreatedSince(ctx, service.postgresDB, user.ID, period.Start(models.TimeframeWeekly, now))
		if err != nil {
			log.Println("quota: weekly count failed, allowing:", err)
		} else if count >= weeklyCap {
			return &models.GenerationQuota{
				Allowed:      false,
				Reason:       models.ReasonWeeklyLimitReached,
				CurrentCount: count,
				Limit:        weeklyCap,
			}
		}
	}

	if tf == models.TimeframeYearly {
		yearlyCap := service.yearlyCap(ctx, user.PlanTier)
		if yearlyCap >= 0 {
			count, err := datastore.CountYearlyQuests(ctx, service.postgresDB, user.ID)
			if err != nil {
				log.Println("quota: yearly count failed, allowing:", err)
			} else if count >= yearlyCap {
				return &models.GenerationQuota{
					Allowed:      false,
					Reason:       models.ReasonYearlyLimitReached,
					CurrentCount: count,
					Limit:        yearlyCap,
				}
			}
		}
	}

	return &models.GenerationQuota{Allowed: true, Limit: weeklyCap}
}

func (service *ServiceQuota) weeklyCap(ctx context.Context, tier models.PlanTier) int {
	key, fallback := WeeklyCapConfig(tier)
	cap, _ := service.serviceConfig.GetIntConfig(ctx, key, fallback)
	return cap
}

func (service *ServiceQuota) yearlyCap(ctx context.Context, tier models.PlanTier) int {
	key, fallback := YearlyCapConfig(tier)
	cap, _ := service.serviceConfig.GetIntConfig(ctx, key, fallback)
	return cap
}

// WeeklyCapConfig maps a plan tier to its config key and built-in default.
func WeeklyCapConfig(tier models.PlanTier) (string, int) {
	switch tier {
	case models.PlanPremium:
		return CONFIG_WEEKLY_QUEST_CAP_PREMIUM, WEEKLY_QUEST_CAP_PREMIUM_DEFAULT
	case models.PlanLifetime:
		return CONFIG_WEEKLY_QUEST_CAP_LIFETIME, WEEKLY_QUEST_CAP_LIFETIME_DEFAULT
	}
	return CONFIG_WEEKLY_QUEST_CAP_FREE, WEEKLY_QUEST_CAP_FREE_DEFAULT
}

func YearlyCapConfig(tier models.PlanTier) (string, int) {
	switch tier {
	case models.PlanPremium:
		return CONFIG_YEARLY_QUEST_CAP_PREMIUM, YEARLY_QUEST_CAP_PREMIUM_DEFAULT
	case models.PlanLifetime:
		return CONFIG_YEARLY_QUEST_CAP_LIFETIME, YEARLY_QUEST_CAP_LIFETIME_DEFAULT
	}
	return CONFIG_YEARLY_QUEST_CAP_FREE, YEARLY_QUEST_CAP_FREE_DEFAULT
}
