package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strconv"

	"xplife/internal/datastore"
	"xplife/internal/models"
	"xplife/internal/pkg/slidingwindow"
	"xplife/internal/services"

	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"
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
	app := &cli.App{
		Name: "migrate",
		Commands: []*cli.Command{
			commandMigration(),
			commandConfigSeed(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandMigration() *cli.Command {
	return &cli.Command{
		Name: "migrate",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableUserProfile(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableQuest(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableStreak(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableXPLedger(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableBossEncounter(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableBossContribution(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableActivityEvent(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableConfig(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = slidingwindow.CreateTable(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			log.Println("migration done")
			return nil
		},
	}
}

// commandConfigSeed writes the runtime tunables with their built-in defaults.
// Safe to re-run; existing keys are overwritten.
func commandConfigSeed() *cli.Command {
	return &cli.Command{
		Name: "config-seed",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			defaults := map[string]int{
				services.CONFIG_WEEKLY_QUEST_CAP_FREE:     services.WEEKLY_QUEST_CAP_FREE_DEFAULT,
				services.CONFIG_WEEKLY_QUEST_CAP_PREMIUM:  services.WEEKLY_QUEST_CAP_PREMIUM_DEFAULT,
				services.CONFIG_WEEKLY_QUEST_CAP_LIFETIME: services.WEEKLY_QUEST_CAP_LIFETIME_DEFAULT,
				services.CONFIG_YEARLY_QUEST_CAP_FREE:     services.YEARLY_QUEST_CAP_FREE_DEFAULT,
				services.CONFIG_YEARLY_QUEST_CAP_PREMIUM:  services.YEARLY_QUEST_CAP_PREMIUM_DEFAULT,
				services.CONFIG_YEARLY_QUEST_CAP_LIFETIME: services.YEARLY_QUEST_CAP_LIFETIME_DEFAULT,
				services.CONFIG_TASK_COUNT_MIN:            services.TASK_COUNT_MIN_DEFAULT,
				services.CONFIG_TASK_COUNT_MAX:            services.TASK_COUNT_MAX_DEFAULT,
				services.CONFIG_HISTORY_WINDOW_DAYS:       services.HISTORY_WINDOW_DAYS_DEFAULT,
				services.CONFIG_BOSS_LEADERBOARD_LIMIT:    services.BOSS_LEADERBOARD_DEFAULT_LIMIT,
				services.CONFIG_BOSS_DURATION_DAYS:        services.BOSS_DURATION_DAYS_DEFAULT,
			}

			for key, value := range defaults {
				err := datastore.UpsertConfig(ctx, db, &models.Config{
					Key:   key,
					Value: strconv.Itoa(value),
				})
				if err != nil {
					log.Fatal(err)
				}
				log.Println("seeded config:", key, "=", value)
			}

			return nil
		},
	}
}

func getDb() (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(os.Getenv("DB_DSN")),
		pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
	))

	return bun.NewDB(sqldb, pgdialect.New()), nil
}
