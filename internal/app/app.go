package app

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/Skotchmaster/electroshop/internal/events"
	"github.com/Skotchmaster/electroshop/internal/httpserver"
	"github.com/Skotchmaster/electroshop/internal/repo"
	"github.com/Skotchmaster/electroshop/internal/search"
	"github.com/Skotchmaster/electroshop/internal/service"
	"github.com/Skotchmaster/electroshop/pkg/config"
	"github.com/Skotchmaster/electroshop/pkg/db"
	authmw "github.com/Skotchmaster/electroshop/pkg/middleware/auth"
	"github.com/Skotchmaster/electroshop/pkg/tokens"
)

// App holds the wired services for one process.
type App struct {
	DB     *gorm.DB
	Repo   *repo.GormRepo
	Events events.Publisher

	Auth      *service.AuthService
	Catalog   *service.CatalogService
	Cart      *service.CartService
	Orders    *service.OrderService
	Favorites *service.FavoritesService
	Reviews   *service.ReviewService
	Admin     *service.AdminService
}

// Build opens the database, migrates it and connects the optional
// Kafka producer and Elasticsearch index.
func Build(ctx context.Context, cfg config.Config, l *slog.Logger) (*App, error) {
	gdb, err := db.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	r := repo.New(gdb)
	if err := r.Migrate(ctx); err != nil {
		_ = db.Close(gdb)
		return nil, err
	}

	var pub events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		p, err := events.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			_ = db.Close(gdb)
			return nil, err
		}
		pub = p
		l.Info("kafka_enabled", "brokers", cfg.KafkaBrokers)
	} else {
		l.Info("kafka_disabled", "reason", "KAFKA_BROKERS is empty")
	}

	catalog := &service.CatalogService{Repo: r, Events: pub}
	if cfg.ESURL != "" {
		idx, err := search.NewESIndex(ctx, search.Config{
			URL:      cfg.ESURL,
			Username: cfg.ESUser,
			Password: cfg.ESPassword,
			Index:    cfg.ESIndex,
		})
		if err != nil {
			l.Warn("search_index_unavailable", "reason", "falling back to database search", "error", err)
		} else {
			catalog.Index = idx
			l.Info("search_index_enabled", "index", cfg.ESIndex)
		}
	}

	authSvc := &service.AuthService{Repo: r, Tokens: tokens.NewService(cfg.JWTSecret, cfg.TokenTTL)}
	if cfg.AdminBootstrap() {
		changed, err := authSvc.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			_ = pub.Close()
			_ = db.Close(gdb)
			return nil, err
		}
		l.Info("admin_bootstrap", "username", cfg.AdminUsername, "changed", changed)
	}

	return &App{
		DB:        gdb,
		Repo:      r,
		Events:    pub,
		Auth:      authSvc,
		Catalog:   catalog,
		Cart:      &service.CartService{Repo: r, Events: pub},
		Orders:    &service.OrderService{Repo: r, Events: pub},
		Favorites: &service.FavoritesService{Repo: r},
		Reviews:   &service.ReviewService{Repo: r},
		Admin:     &service.AdminService{Repo: r},
	}, nil
}

func (a *App) HTTPDeps() *httpserver.Deps {
	return &httpserver.Deps{
		Gateway:          authmw.NewGateway(a.Auth.Tokens, a.Auth),
		AuthHandler:      &httpserver.AuthHTTP{Svc: a.Auth},
		CatalogHandler:   &httpserver.CatalogHTTP{Svc: a.Catalog},
		CartHandler:      &httpserver.CartHTTP{Svc: a.Cart},
		OrderHandler:     &httpserver.OrderHTTP{Svc: a.Orders},
		FavoritesHandler: &httpserver.FavoritesHTTP{Svc: a.Favorites},
		ReviewHandler:    &httpserver.ReviewHTTP{Svc: a.Reviews},
		AdminHandler:     &httpserver.AdminHTTP{Svc: a.Admin, Catalog: a.Catalog},
		Ready:            a.Repo.Ping,
	}
}

// Close flushes the producer and closes the database.
func (a *App) Close() error {
	return errors.Join(a.Events.Close(), db.Close(a.DB))
}
