// Package bot adapts the exchange engine to Telegram.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jmoiron/sqlx"

	"github.com/acksonp2c/pscbot/core/logger"
	tg "github.com/acksonp2c/pscbot/core/telegram"
	"github.com/acksonp2c/pscbot/core/telegram/router"
	"github.com/acksonp2c/pscbot/internal/config"
	"github.com/acksonp2c/pscbot/internal/exchange"
	"github.com/acksonp2c/pscbot/internal/orders"

	tele "gopkg.in/telebot.v4"
)

// API is the part of the Bot API used for messages outside the current chat.
type API interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
	EditReplyMarkup(msg tele.Editable, markup *tele.ReplyMarkup) (*tele.Message, error)
}

// App wires configuration, storage and the exchange engine into a runnable bot.
type App struct {
	cfg      *config.Config
	db       *sqlx.DB
	orders   *orders.Store
	engine   *exchange.Engine
	registry *tg.Registry
	fallback fallbacks

	api func(tele.Context) API

	mu          sync.Mutex
	stopSweeper context.CancelFunc
}

// New builds the app on top of an open, migrated database.
func New(cfg *config.Config, db *sqlx.DB) (*App, error) {
	if cfg == nil {
		return nil, errors.New("bot: nil config")
	}
	if db == nil {
		return nil, errors.New("bot: nil database")
	}

	store := orders.NewStore(db)
	engine, err := exchange.NewEngine(exchange.Options{
		AdminID:    cfg.Telegram.AdminID,
		Orders:     store,
		DraftTTL:   cfg.Exchange.DraftTTL,
		Validators: exchange.DefaultValidators(cfg.Exchange.StrictAddress).WithMaxLength(cfg.Exchange.MaxFieldLength),
		Texts: exchange.Texts{
			ServiceName:    cfg.Exchange.ServiceName,
			SupportContact: cfg.Exchange.SupportContact,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("bot: %w", err)
	}

	a := &App{
		cfg:      cfg,
		db:       db,
		orders:   store,
		engine:   engine,
		registry: tg.NewRegistry(),
		api:      func(c tele.Context) API { return c.Bot() },
	}
	a.fallback = fallbacks{app: a}
	if err := a.register(); err != nil {
		return nil, err
	}
	return a, nil
}

// Engine exposes the conversation engine.
func (a *App) Engine() *exchange.Engine { return a.engine }

// Registry exposes the command and callback registry.
func (a *App) Registry() *tg.Registry { return a.registry }

// TelegramRunOptions assembles middlewares, routes and lifecycle hooks.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	core := a.cfg.CoreConfig()

	routes := router.CommandRoutes(a.registry, router.CommandRouteOptions{AdminID: core.Telegram.AdminID})
	routes = append(routes, router.CallbackRoute(a.registry, router.CallbackOptions{
		NotFound: a.fallback.UnknownCallback(),
	}))
	routes = append(routes, router.MessageRoutes(a, a.registry, router.MessageOptions{
		UnknownText:  a.fallback.UnknownText(),
		UnknownMedia: a.fallback.UnknownMedia(),
	})...)

	return tg.RunOptions{
		Config:      core,
		Registry:    a.registry,
		Middlewares: tg.DefaultMiddlewares(core, nil),
		Routes:      routes,
		OnStart: func(context.Context, tg.Runtime) error {
			a.startSweeper()
			return nil
		},
		OnStop: func(context.Context, tg.Runtime) error {
			a.haltSweeper()
			return nil
		},
	}, nil
}

// Close stops background work and releases the database.
func (a *App) Close() error {
	a.haltSweeper()
	return a.db.Close()
}

func (a *App) startSweeper() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopSweeper != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.stopSweeper = cancel
	interval := a.cfg.Exchange.SweepInterval
	go a.engine.RunSweeper(ctx, interval)

	logger.LogEvent(ctx, logger.SVCExchange, slog.LevelInfo, "sweeper.start",
		slog.Duration("interval", interval),
		slog.Duration("draft_ttl", a.cfg.Exchange.DraftTTL),
	)
}

func (a *App) haltSweeper() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopSweeper == nil {
		return
	}
	a.stopSweeper()
	a.stopSweeper = nil
}
