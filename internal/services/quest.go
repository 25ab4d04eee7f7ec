package services

import (
	"context"
	"time"

	"xplife/internal/datastore"
	"xplife/internal/models"
	"xplife/internal/pkg/period"

	"github.com/samber/do"
	"github.com/uptrace/bun"
)

const (
	HISTORY_PAGE_DEFAULT = 20
	HISTORY_PAGE_MAX     = 100
)

type ServiceQuest struct {
	container  *do.Injector
	postgresDB *bun.DB
}

func NewServiceQuest(container *do.Injector) (*ServiceQuest, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	return &ServiceQuest{container, postgresDB}, nil
}

// List returns the owner's quests for the timeframe's current period. Yearly
// quests have no period, so every non-skipped yearly quest comes back.
func (service *ServiceQuest) List(ctx context.Context, user *models.UserProfile, tf models.Timeframe) ([]*models.Quest, error) {
	since := time.Time{}
	if tf != models.TimeframeYearly {
		since = period.Start(tf, time.Now())
	}
	return datastore.ListQuestsInPeriod(ctx, service.postgresDB, user.ID, tf, since)
}

// ListAll returns the current-period quests of every timeframe keyed by
// timeframe.
func (service *ServiceQuest) ListAll(ctx context.Context, user *models.UserProfile) (map[models.Timeframe][]*models.Quest, error) {
	out := map[models.Timeframe][]*models.Quest{}
	for _, tf := range []models.Timeframe{models.TimeframeYearly, models.TimeframeMonthly, models.TimeframeWeekly, models.TimeframeDaily} {
		quests, err := service.List(ctx, user, tf)
		if err != nil {
			return nil, err
		}
		out[tf] = quests
	}
	return out, nil
}

// History pages through the owner's decided quests, newest first.
func (service *ServiceQuest) History(ctx context.Context, user *models.UserProfile, limit, offset int) ([]*models.Quest, error) {
	if limit <= 0 {
		limit = HISTORY_PAGE_DEFAULT
	}
	if limit > HISTORY_PAGE_MAX {
		limit = HISTORY_PAGE_MAX
	}
	if offset < 0 {
		offset = 0
	}
	return datastore.ListQuestHistory(ctx, service.postgresDB, user.ID, limit, offset)
}
