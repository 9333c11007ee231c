package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/moritzgrimm/gigbook/internal/config"
	"github.com/moritzgrimm/gigbook/internal/draft"
	"github.com/moritzgrimm/gigbook/internal/handler"
	"github.com/moritzgrimm/gigbook/internal/middleware"
	"github.com/moritzgrimm/gigbook/internal/queue"
	"github.com/moritzgrimm/gigbook/internal/repository"
	"github.com/moritzgrimm/gigbook/internal/router"
	"github.com/moritzgrimm/gigbook/internal/schema"
	queue_publisher "github.com/moritzgrimm/gigbook/internal/service"
	"github.com/moritzgrimm/gigbook/internal/setlist"
	"github.com/moritzgrimm/gigbook/internal/sheet"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env always wins
	cfg := config.Load()

	store, err := sheet.OpenWorkbook(cfg.WorkbookPath)
	if err != nil {
		log.Fatalf("open workbook: %v", err)
	}
	defer store.Close()

	// Ensure sheets and headers once per session before any page reads.
	if err := schema.NewGuard(store).Ensure(context.Background()); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	repertoire := repository.NewRepertoireRepo(store, cfg.RepoCacheTTL)
	locations := repository.NewLocationRepo(store, cfg.RepoCacheTTL)
	events := repository.NewEventRepo(store, cfg.RepoCacheTTL)

	rdb := config.NewRedisClient() // may be nil; features degrade gracefully
	if rdb == nil {
		log.Printf("redis unavailable: response cache and session refresh disabled")
	}
	tokens := repository.NewTokenRepo(rdb)

	generator := &setlist.Generator{
		TemplatePath: cfg.TemplatePath,
		OutputDir:    cfg.SetlistDir,
	}
	composer := &draft.Composer{
		Events:     events,
		Locations:  locations,
		Repertoire: repertoire,
		Generator:  generator,
		Notify:     &queue_publisher.BrokerNotifier{Enabled: cfg.QueueEnabled},
	}

	if cfg.QueueEnabled {
		go func() {
			if err := queue.StartConsumer(); err != nil {
				log.Printf("gig consumer stopped: %v", err)
			}
		}()
	}

	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	var cacheMW echo.MiddlewareFunc
	if cacheCfg := config.LoadCacheConfig(); cacheCfg.Enabled && rdb != nil {
		cacheMW = middleware.ResponseCache(cacheCfg, rdb)
	}

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, tokens), cfg.JWTSecret)
	router.RegisterAPI(e, cfg.JWTSecret, cacheMW,
		handler.NewRepertoireHandler(repertoire),
		handler.NewLocationHandler(locations),
		handler.NewEventHandler(events, repertoire, generator),
		handler.NewDraftHandler(composer, repertoire),
	)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, workbook=%s)", addr, cfg.Env, cfg.WorkbookPath)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
