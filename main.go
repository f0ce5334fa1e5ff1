package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"iga-backend/config"
	apiv1 "iga-backend/controllers/v1"
	"iga-backend/fiberlog"
	"iga-backend/initializers"
	"iga-backend/lib/metrics"
	notificationhandler "iga-backend/lib/notification"
	"iga-backend/middleware"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	initializers.InitAllServices(ctx)

	app := fiber.New(fiber.Config{
		BodyLimit: int(config.Conf.App.BodyLimit),
	})
	app.Use(fiberRecover.New())
	app.Use(middleware.WithBodyLimit(config.Conf.App.BodyLimit))

	swaggerCfg := swagger.Config{
		Path:     "/swagger",
		FilePath: "./docs/swagger.json",
	}
	app.Use(swagger.New(swaggerCfg))

	if *config.Conf.Metrics.Enabled {
		app.Use(metrics.Middleware())
		app.Get("/metrics", metrics.Handler())
	}

	//api
	apiV1 := app.Group("/api/v1")
	apiV1.Use(fiberlog.New(*initializers.LoggerConfig))
	apiV1.Use(cors.New(cors.Config{
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, " + fiberlog.RequestIDHeader,
		AllowMethods:  "GET, POST, PUT",
		ExposeHeaders: fiberlog.RequestIDHeader + ", Content-Disposition",
	}))
	if config.Conf.Notifications.ErrorChannel != "" {
		apiV1.Use(middleware.ErrNotify(notificationhandler.Instance, config.Conf.Notifications.ErrorChannel))
	}
	apiv1.InitHealthRouters(apiV1)

	secured := apiV1.Group("")
	secured.Use(middleware.AuthorizationRequired())
	secured.Use(middleware.RbacMiddleware())
	apiv1.InitProfileRouters(secured)
	apiv1.InitCampaignApiRouters(secured)
	apiv1.InitReviewApiRouters(secured)
	apiv1.InitDirectoryApiRouters(secured)
	apiv1.InitAssetApiRouters(secured)
	apiv1.InitAuditApiRouters(secured)
	apiv1.InitSettingsApiRouters(secured)
	apiv1.InitNotificationApiRouters(secured)

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	wg := sync.WaitGroup{}
	go func() {
		<-c
		wg.Add(1)
		defer wg.Done()
		log.Info("gracefully shutting down...")
		cancel()
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("graceful shutdown failed")
		}
		time.Sleep(time.Second)
		log.Info("graceful shutdown finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("HTTP server stopped")
}
