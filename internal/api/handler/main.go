package handler

import (
	"net/http"

	"xplife/internal/pkg/slidingwindow"
	"xplife/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/samber/do"
)

type Config struct {
	Container *do.Injector
	Mode      string
	Origins   []string
}

func New(cfg *Config) (http.Handler, error) {
	r := echo.New()
	r.Pre(middleware.RemoveTrailingSlash())
	if cfg.Mode == "debug" {
		r.Debug = true
		pprof.Register(r)
	}

	r.JSONSerializer = httpx.SegmentJSONSerializer{}
	r.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339}\t${method}\t${uri}\t${status}\t${latency_human}\n",
	}))
	r.Use(middleware.Recover())

	r.GET("", func(c echo.Context) error {
		return c.String(http.StatusOK, "⚔️")
	})

	routesAPIv1 := r.Group("/api/v1")
	{
		authentication, err := do.Invoke[*services.Authentication](cfg.Container)
		if err != nil {
			return nil, err
		}
		limiter, err := do.Invoke[*slidingwindow.Limiter](cfg.Container)
		if err != nil {
			return nil, err
		}
		cors := middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.Origins,
			AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
			AllowCredentials: true,
			MaxAge:           60 * 60,
		})

		routesAPIv1.Use(cors)
		routesAPIv1.Use(Authn(authentication)) // Authn will NOT terminate unauthenticated request.
		routesAPIv1.GET("", Hello)

		u := groupUser{cfg.Container}
		routesAPIv1.GET("/user/me", u.Me)

		q := groupQuest{cfg.Container}
		routesAPIv1.GET("/quests", q.List)
		routesAPIv1.GET("/quests/history", q.History)
		routesAPIv1.POST("/quests/generate", q.Generate)
		routesAPIv1.POST("/quest/:id/complete", q.Complete)
		routesAPIv1.POST("/quest/:id/skip", q.Skip)

		b := groupBoss{cfg.Container}
		routesAPIv1.GET("/boss", b.GetActiveBoss)
		routesAPIv1.GET("/boss/leaderboard", b.Leaderboard)

		// public and unauthenticated, so it gets the storage-backed window
		i := groupIngest{cfg.Container}
		routesAPIv1.POST("/ingest/events", i.Record, RateLimit(limiter))
	}

	return r, nil
}

func Hello(c echo.Context) error {
	return httpx.RestAbort(c, "hello world", nil)
}
