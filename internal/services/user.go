package services

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strings"
	"time"

	"xplife/internal/datastore"
	"xplife/internal/models"
	"xplife/internal/pkg/caching"

	"github.com/samber/do"
	"github.com/uptrace/bun"
)

const DEFAULT_PERSONALITY_CLASS = "adventurer"

type ServiceUser struct {
	container  *do.Injector
	postgresDB *bun.DB
	cache      caching.Cache
}

func NewServiceUser(container *do.Injector) (*ServiceUser, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	return &ServiceUser{container, postgresDB, cache}, nil
}

func (service *ServiceUser) FindOrCreateUser(ctx context.Context, userAuth *models.UserFromAuth) (*models.UserProfile, error) {
	if userAuth == nil {
		return nil, errors.New("userAuth is nil")
	}

	user, err := service.FindUserByID(ctx, userAuth.ID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	now := time.Now()
	newUser := &models.UserProfile{
		ID:               userAuth.ID,
		Username:         strings.ToLower(userAuth.Username),
		TotalXP:          0,
		Level:            1,
		CurrencyBalance:  0,
		PlanTier:         models.PlanFree,
		PersonalityClass: DEFAULT_PERSONALITY_CLASS,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	log.Println("Create new user:", "user:", newUser.ID, "username:", newUser.Username)
	user, err = datastore.CreateUserProfile(ctx, service.postgresDB, newUser)
	if err != nil {
		return nil, err
	}

	user.IsNewUser = true
	return user, nil
}

func (service *ServiceUser) FindUserByID(ctx context.Context, userID int64) (*models.UserProfile, error) {
	callback := func() (*models.UserProfile, error) {
		return datastore.FindUserProfileByID(ctx, service.postgresDB, userID)
	}
	return caching.UseCache(ctx, service.cache, DBKeyUser(userID), CACHE_TTL_5_MINS, callback)
}

// Me returns the profile with its streak attached.
func (service *ServiceUser) Me(ctx context.Context, user *models.UserProfile) (*models.UserProfile, error) {
	if user == nil {
		return nil, errors.New("user not found")
	}

	callback := func() (*models.UserProfile, error) {
		me, err := datastore.FindUserProfileByID(ctx, service.postgresDB, user.ID)
		if err != nil {
			return nil, err
		}

		streak, err := datastore.GetStreak(ctx, service.postgresDB, user.ID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return me, err
		}
		me.Streak = streak
		return me, nil
	}

	me, err := caching.UseCache(ctx, service.cache, DBKeyMe(user.ID), CACHE_TTL_1_MIN, callback)
	if me != nil && user.IsNewUser {
		me.IsNewUser = true
	}
	return me, err
}

func (service *ServiceUser) ClearUserCache(ctx context.Context, userID int64) {
	if err := service.cache.Delete(ctx, DBKeyMe(userID)); err != nil {
		log.Println(err)
	}
	if err := service.cache.Delete(ctx, DBKeyUser(userID)); err != nil {
		log.Println(err)
	}
}
