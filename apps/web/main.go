package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/lamms/lamms/apps/web/pages"
	"github.com/lamms/lamms/apps/web/router"
	"github.com/lamms/lamms/client"
	"github.com/lamms/lamms/core"
	"github.com/lamms/lamms/core/attendance"
	"github.com/lamms/lamms/fs"
	"github.com/lamms/lamms/services/logger"
	"github.com/lamms/lamms/services/photo"
)

func main() {
	conf, err := core.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	logger := logsvc.New("WEB : ", conf)

	var photos attendance.PhotoProvider = photosvc.NewStatic()
	if conf.PhotoSource == "redis" {
		rdb, err := photosvc.NewRedisClient(context.Background(), conf)
		if err != nil {
			logger.Fatal(fmt.Sprintf("setting up photos: %v", err), err)
		}
		defer func() { _ = rdb.Close() }()
		photos = photosvc.NewRedis(rdb)
	}

	sections := client.NewSectionService(conf.SectionsAPIBaseURL, nil)
	students := attendance.NewProvider(photos)
	rt := router.New(conf.AppName, appfs.FS, logger, pages.Loaders(sections, students))

	e := echo.New()
	e.HideBanner = true
	e.Debug = conf.Debug
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.Logger())
	if !conf.Debug {
		e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	pages.RegisterSectionActions(e, sections)
	e.Any("/*", echo.WrapHandler(rt))

	logger.Info(fmt.Sprintf("Web initializing : version %q, backend %s", conf.Build, conf.SectionsAPIBaseURL))
	defer logger.Info("Web stopped")

	errs := make(chan error, 1)
	go func() {
		if err := e.Start(conf.Server.WebAddress); err != nil && err != http.ErrServerClosed {
			errs <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err = <-errs:
		logger.Error(fmt.Sprintf("server error: %v", err), err)
	case sig := <-shutdown:
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()
		if err = e.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)
			_ = e.Close()
		}
	}
}
