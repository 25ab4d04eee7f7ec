package main

import (
	"context"
	"log"
	"os"
	"time"

	"xplife/internal/pkg/slidingwindow"
	"xplife/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/env"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/samber/do"
	"github.com/uptrace/bun"
	"github.com/urfave/cli/v2"
)

const (
	scheduleBossRotation = "*/5 * * * *"
	schedulePurge        = "30 3 * * *"
)

func init() {
	// for development
	//nolint:errcheck
	godotenv.Load("../../.env")

	// for production
	//nolint:errcheck
	godotenv.Load("./.env")
}

func main() {
	vs, err := env.EnvsRequired(
		"JWT_SECRET",
		"DB_DSN",
		"GENERATOR_URL",
	)
	if err != nil {
		log.Fatal(err)
	}

	container := NewContainer(vs)

	app := &cli.App{
		Name: "cron",
		Commands: []*cli.Command{
			commandRun(container),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandRun(container *do.Injector) *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "start the scheduled jobs",
		Action: func(c *cli.Context) error {
			serviceBoss, err := do.Invoke[*services.ServiceBoss](container)
			if err != nil {
				return err
			}
			postgresDB, err := do.Invoke[*bun.DB](container)
			if err != nil {
				return err
			}

			schedule := cron.New()

			_, err = schedule.AddFunc(scheduleBossRotation, func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := serviceBoss.ExpireAndRotate(ctx); err != nil {
					log.Println("boss rotation:", err)
				}
			})
			if err != nil {
				return err
			}

			_, err = schedule.AddFunc(schedulePurge, func() {
				ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
				defer cancel()

				purged, err := slidingwindow.Purge(ctx, postgresDB, time.Now())
				if err != nil {
					log.Println("rate limit purge:", err)
					return
				}
				log.Println("purged rate limit windows:", purged)
			})
			if err != nil {
				return err
			}

			log.Println("cron started at:", time.Now().Format("2006-01-02 15:04:05"))
			schedule.Run()
			return nil
		},
	}
}
