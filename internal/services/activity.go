package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"xplife/internal/datastore"
	"xplife/internal/models"

	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

const MAX_EVENT_PAYLOAD_BYTES = 4096

type ServiceActivity struct {
	container  *do.Injector
	postgresDB *bun.DB
}

func NewServiceActivity(container *do.Injector) (*ServiceActivity, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	return &ServiceActivity{container, postgresDB}, nil
}

// Record persists one client event. The owner is optional since the endpoint
// accepts anonymous traffic.
func (service *ServiceActivity) Record(ctx context.Context, ownerID *int64, clientIP, kind, payload string) (*models.ActivityEvent, error) {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return nil, errorx.Wrap(errors.New("event kind is required"), errorx.Invalid)
	}
	if len(payload) > MAX_EVENT_PAYLOAD_BYTES {
		return nil, errorx.Wrap(errors.New("event payload too large"), errorx.Invalid)
	}

	event := &models.ActivityEvent{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		ClientIP:  clientIP,
		Kind:      kind,
		Payload:   payload,
		CreatedAt: time.Now(),
	}

	if err := datastore.InsertActivityEvent(ctx, service.postgresDB, event); err != nil {
		return nil, err
	}
	return event, nil
}
