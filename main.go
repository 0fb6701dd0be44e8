package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"recruitment-backend/config"
	apiv1 "recruitment-backend/controllers/v1"
	_ "recruitment-backend/docs"
	"recruitment-backend/fiberlog"
	"recruitment-backend/initializers"
	"recruitment-backend/lib/ws"
	"recruitment-backend/middleware"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"
)

const jsonBodyLimit = 1024 * 1024

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	initializers.InitAllServices(ctx)

	app := fiber.New(fiber.Config{
		// above the resume limit so oversize files get a readable 400
		BodyLimit: config.Conf.App.BodyLimitMB * 1024 * 1024,
	})
	app.Use(fiberRecover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: config.Conf.App.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, PUT",
	}))

	swaggerCfg := swagger.Config{
		Path:     "/swagger",
		FilePath: "./docs/swagger.json",
		Title:    config.Conf.App.Name,
	}
	app.Use(swagger.New(swaggerCfg))

	app.Use(fiberlog.New(*initializers.LoggerConfig))
	if config.Conf.App.ErrNotifyURL != "" {
		app.Use(middleware.ErrNotify(config.Conf.App.ErrNotifyURL))
	}
	app.Use(middleware.WithBodyLimit(jsonBodyLimit, "/applications/apply"))

	apiv1.InitHealthRouters(app)
	apiv1.InitAuthApiRouters(app)
	apiv1.InitJobApiRouters(app)
	apiv1.InitApplicationApiRouters(app)
	apiv1.InitResumeApiRouters(app)
	ws.InitWs(app)

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-c:
		case <-ctx.Done():
			return
		}
		log.Info("Gracefully shutting down...")
		cancel()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("Error when try gracefully shutting down")
		}
		log.Info("Gracefully shutting down finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("HTTP server successfully stopped")
}
