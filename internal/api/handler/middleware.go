package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"xplife/internal/models"
	"xplife/internal/pkg/slidingwindow"
	"xplife/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type ctxKey string

var ctxKeyAuthUser ctxKey = "AUTH_USER"

func Authn(verifier interface {
	Validate(token string) (*models.UserFromAuth, error)
},
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return next(c)
			}

			parts := strings.Split(header, "Bearer")
			if len(parts) != 2 {
				return next(c)
			}

			token := strings.TrimSpace(parts[1])
			if len(token) == 0 {
				return next(c)
			}

			user, err := verifier.Validate(token)
			if err != nil {
				// although it's a client error, we don't want to leak details
				//nolint:errcheck
				httpx.Abort(c, errorx.Wrap(errors.New("invalid access token"), errorx.Authn), -1)
				return nil
			}

			ctx := c.Request().Context()
			ctx = context.WithValue(ctx, ctxKeyAuthUser, user)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func ResolveValidUser(ctx context.Context, container *do.Injector) (*models.UserProfile, error) {
	userAuth, ok := ctx.Value(ctxKeyAuthUser).(*models.UserFromAuth)
	if !ok {
		return nil, errorx.Wrap(errors.New("missing session"), errorx.Authn)
	}

	serviceUser, err := do.Invoke[*services.ServiceUser](container)
	if err != nil {
		return nil, err
	}

	return serviceUser.FindOrCreateUser(ctx, userAuth)
}

// ResolveUser is ResolveValidUser for routes that also serve anonymous
// traffic; a missing session yields nil, not an error.
func ResolveUser(ctx context.Context, container *do.Injector) (*models.UserProfile, error) {
	_, ok := ctx.Value(ctxKeyAuthUser).(*models.UserFromAuth)
	if !ok {
		return nil, nil
	}
	return ResolveValidUser(ctx, container)
}

// RateLimit throttles by client IP and route using the storage-backed sliding
// window. Verdict headers go out on every response.
func RateLimit(limiter *slidingwindow.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := fmt.Sprintf("%s:%s", c.RealIP(), c.Path())
			res := limiter.Check(c.Request().Context(), key)

			h := c.Response().Header()
			h.Set("X-RateLimit-Remaining", fmt.Sprintf("%d", res.Remaining))
			h.Set("X-RateLimit-Reset", fmt.Sprintf("%d", res.ResetAt.Unix()))

			if !res.Allowed {
				h.Set("Retry-After", fmt.Sprintf("%d", res.ResetAt.Unix()))
				//nolint:errcheck
				httpx.Abort(c, errorx.Wrap(errors.New("too many requests"), errorx.RateLimiting), http.StatusTooManyRequests)
				return nil
			}

			return next(c)
		}
	}
}
