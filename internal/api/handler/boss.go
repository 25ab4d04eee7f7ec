package handler

import (
	"xplife/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupBoss struct {
	container *do.Injector
}

func (gr *groupBoss) GetActiveBoss(c echo.Context) error {
	ctx := c.Request().Context()

	serviceBoss, err := do.Invoke[*services.ServiceBoss](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	boss, err := serviceBoss.GetActiveBoss(ctx)
	return httpx.RestAbort(c, boss, err)
}

func (gr *groupBoss) Leaderboard(c echo.Context) error {
	ctx := c.Request().Context()

	// the board is public; a session only adds the caller's own rank
	user, err := ResolveUser(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceBoss, err := do.Invoke[*services.ServiceBoss](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	leaderboard, err := serviceBoss.Leaderboard(ctx, user)
	return httpx.RestAbort(c, leaderboard, err)
}
