package handler

import (
	"net/http"
	"strconv"

	"xplife/internal/models"
	"xplife/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupQuest struct {
	container *do.Injector
}

type generatePayload struct {
	Timeframe models.Timeframe      `json:"timeframe"`
	Mode      models.GenerationMode `json:"generationMode"`
	UserGoals string                `json:"userGoals"`
	ParentIDs []string              `json:"parentQuestIds"`
}

type completePayload struct {
	ProofRef *string `json:"proofRef"`
}

func (gr *groupQuest) List(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := ResolveValidUser(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceQuest, err := do.Invoke[*services.ServiceQuest](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	tf := models.Timeframe(c.QueryParam("timeframe"))
	if tf == "" {
		quests, err := serviceQuest.ListAll(ctx, user)
		return httpx.RestAbort(c, quests, err)
	}
	if !tf.Valid() {
		return httpx.RestAbort(c, nil, errorx.Wrap(services.ErrQuestNotFound, errorx.Invalid))
	}

	quests, err := serviceQuest.List(ctx, user, tf)
	return httpx.RestAbort(c, quests, err)
}

func (gr *groupQuest) History(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := ResolveValidUser(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	serviceQuest, err := do.Invoke[*services.ServiceQuest](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	quests, err := serviceQuest.History(ctx, user, limit, offset)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceDifficulty, err := do.Invoke[*services.ServiceDifficulty](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	window, err := serviceDifficulty.Aggregate(ctx, user.ID, services.HISTORY_WINDOW_DAYS_DEFAULT)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"quests":         quests,
		"window":         window,
		"recommendation": services.Recommend(window),
	}, nil)
}

// Generate runs a quota-guarded generation batch, or the cascade when the
// payload carries mode "cascade".
func (gr *groupQuest) Generate(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := ResolveValidUser(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var payload generatePayload
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	serviceGeneration, err := do.Invoke[*services.ServiceGeneration](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	if payload.Mode == models.GenerationModeCascade {
		result, err := serviceGeneration.Cascade(ctx, user)
		return restGenerationResult(c, result, err)
	}

	mode := payload.Mode
	if mode == "" {
		mode = models.GenerationModeManual
	}

	result, err := serviceGeneration.Generate(ctx, user, payload.Timeframe, mode, payload.UserGoals, payload.ParentIDs)
	return restGenerationResult(c, result, err)
}

// restGenerationResult keeps the quota verdict in the response body. RestAbort
// drops the payload whenever err is set, which would strip the reason code and
// current/limit counts the client displays on a cap refusal.
func restGenerationResult(c echo.Context, result *models.GenerationResult, err error) error {
	if err != nil && result != nil && result.Reason != "" {
		return c.JSON(http.StatusBadRequest, result)
	}
	return httpx.RestAbort(c, result, err)
}

func (gr *groupQuest) Complete(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := ResolveValidUser(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var payload completePayload
	if err := c.Bind(&payload); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}

	serviceCompletion, err := do.Invoke[*services.ServiceCompletion](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	result, err := serviceCompletion.Complete(ctx, user, c.Param("id"), payload.ProofRef)
	return httpx.RestAbort(c, result, err)
}

func (gr *groupQuest) Skip(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := ResolveValidUser(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceCompletion, err := do.Invoke[*services.ServiceCompletion](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	quest, err := serviceCompletion.Skip(ctx, user, c.Param("id"))
	return httpx.RestAbort(c, quest, err)
}
