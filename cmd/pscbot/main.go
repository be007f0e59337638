package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/acksonp2c/pscbot/core/bootstrap"
	corecmd "github.com/acksonp2c/pscbot/core/cmd"
	"github.com/acksonp2c/pscbot/core/database"
	"github.com/acksonp2c/pscbot/internal/bot"
	"github.com/acksonp2c/pscbot/internal/config"
	"github.com/acksonp2c/pscbot/internal/orders/migrations"
)

const dbWaitTimeout = 30 * time.Second

func main() {
	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "config.yaml",
		EnvFiles:          []string{".env"},
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return config.Load(path)
		},
		Bootstrap: func(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			cfg, ok := carrier.(*config.Config)
			if !ok {
				return nil, fmt.Errorf("unexpected config type %T", carrier)
			}
			if cfg.Database.Driver == database.DriverPostgres {
				if err := database.WaitFor(context.Background(), cfg.Database, dbWaitTimeout); err != nil {
					return nil, err
				}
			}
			res, err := bootstrap.Run(bootstrap.Options{
				Config:     cfg.CoreConfig(),
				Database:   cfg.Database,
				Migrations: migrations.FS,
			})
			if err != nil {
				return nil, err
			}
			app, err := bot.New(cfg, res.DB)
			if err != nil {
				_ = res.DB.Close()
				return nil, err
			}
			return app, nil
		},
	})
	if err != nil {
		log.Fatal(err)
	}
}
