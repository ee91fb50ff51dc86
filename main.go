package main

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/kataras/iris/v12"
	"github.com/pfas-tracker/api/auth"
	"github.com/pfas-tracker/api/config"
	"github.com/pfas-tracker/api/database"
	"github.com/pfas-tracker/api/geocode"
	"github.com/pfas-tracker/api/handler"
	"github.com/pfas-tracker/api/mapview"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// services are the collaborators the routes are built on.
type services struct {
	store    handler.SiteStore
	gate     *auth.Gate
	tokens   *auth.TokenIssuer
	geocoder geocode.Geocoder
}

func main() {

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	svc, cleanup := preflight(cfg)
	defer cleanup()
	app := pfasApi(cfg, svc)
	app.Listen(":" + cfg.Port)
}

func pfasApi(cfg *config.Config, svc services) *iris.Application {

	app := iris.New()
	handler.WrapRouter(app, cfg.CORSOrigins, cfg.RateLimitRequests, cfg.RateLimitWindow)
	app.Use(handler.Observe)

	//healthcheck endpoints
	app.Get("/healthz", handler.Ok)
	app.Get("/health", handler.Ok)
	app.Get("/readyz", handler.Ready(svc.store))
	app.Get("/metrics", iris.FromStd(promhttp.Handler()))

	ah := &handler.AuthHandler{Gate: svc.gate, Tokens: svc.tokens, Enforce: cfg.Auth.RequireToken}
	sh := &handler.SiteHandler{Store: svc.store}
	mh := &handler.MapHandler{
		Store:  svc.store,
		Config: mapview.NewConfig(cfg.MapTiler.BaseURL, cfg.MapTiler.Key, cfg.PublicAPIURL),
	}
	gh := &handler.GeocodeHandler{Geocoder: svc.geocoder}

	api := app.Party("/api")
	{
		api.Get("/map/config", mh.GetConfig)
		api.Get("/geocode", gh.Search)
	}

	authEndpoint := api.Party("/auth")
	{
		authEndpoint.Post("/verify-key", ah.VerifyKey)
		authEndpoint.Post("/login", ah.Login)
		authEndpoint.Get("/session", ah.Session)
	}

	siteEndpoint := api.Party("/sites")
	{
		siteEndpoint.Get("/", sh.GetSites)
		siteEndpoint.Get("/{id:int}", sh.GetSiteById)
		siteEndpoint.Get("/{id:int}/popup", mh.GetPopup)
		siteEndpoint.Post("/", ah.RequireAdmin, sh.CreateSite)
		siteEndpoint.Post("/import", ah.RequireAdmin, sh.ImportSites)
		siteEndpoint.Put("/{id:int}", ah.RequireAdmin, sh.UpdateSite)
		siteEndpoint.Delete("/{id:int}", ah.RequireAdmin, sh.DeleteSite)
	}
	return app
}

//preflight sets up logging, the site store, auth and geocoding; it exits on anything fatal
func preflight(cfg *config.Config) (services, func()) {

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)

	closers := []func(){func() { _ = logger.Sync() }}
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var svc services
	switch cfg.DB.Driver {
	case "memory":
		zap.L().Warn("using the in-memory site store, data is lost on exit")
		svc.store = database.NewMemorySiteController()
	default:
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		db, err := config.ConnectDB(ctx, cfg, logger)
		cancel()
		if err != nil {
			zap.L().Fatal("failed to connect to database", zap.Error(err))
		}
		closers = append(closers, db.Close)
		svc.store = database.NewSiteController(db)
	}

	svc.gate, err = auth.NewGate(cfg.Auth.AccessKey, cfg.Auth.AdminUser, cfg.Auth.AdminPassword, 0)
	if err != nil {
		zap.L().Fatal("unable to set up admin credentials", zap.Error(err))
	}
	svc.tokens = auth.NewTokenIssuer(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)

	if cfg.MapTiler.Key == "" {
		zap.L().Warn("MAPTILER_KEY is not set, geocoding is disabled")
	} else {
		var g geocode.Geocoder = geocode.NewBreakerGeocoder(
			geocode.NewMapTilerClient(cfg.MapTiler.BaseURL, cfg.MapTiler.Key), 5, 30*time.Second)
		if cfg.Redis.Addr != "" {
			rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := rdb.Ping(ctx).Err()
			cancel()
			if err != nil {
				zap.L().Warn("redis unreachable, geocode cache disabled", zap.Error(err))
				_ = rdb.Close()
			} else {
				closers = append(closers, func() { _ = rdb.Close() })
				g = geocode.NewRedisCache(g, rdb, cfg.GeocodeCacheTTL)
			}
		}
		svc.geocoder = g
	}

	zap.L().Info("Preflight complete!", zap.String("driver", cfg.DB.Driver))
	return svc, cleanup
}
