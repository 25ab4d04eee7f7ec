package handler

import (
	"xplife/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupIngest struct {
	container *do.Injector
}

type eventPayload struct {
	Kind    string `json:"kind"`
	Payload string `json:"payload"`
}

func (gr *groupIngest) Record(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := ResolveUser(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var payload eventPayload
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	serviceActivity, err := do.Invoke[*services.ServiceActivity](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	var ownerID *int64
	if user != nil {
		ownerID = &user.ID
	}

	event, err := serviceActivity.Record(ctx, ownerID, c.RealIP(), payload.Kind, payload.Payload)
	return httpx.RestAbort(c, event, err)
}
