package main

import (
	"context"
	"expvar"
	"fmt"
	"io"
	"os"

	"github.com/lamms/lamms/apps/api/echo"
	"github.com/lamms/lamms/core"
	"github.com/lamms/lamms/core/attendance"
	"github.com/lamms/lamms/core/grade"
	"github.com/lamms/lamms/core/section"
	"github.com/lamms/lamms/services/logger"
	"github.com/lamms/lamms/services/photo"
	"github.com/lamms/lamms/storage/database"
	"github.com/lamms/lamms/storage/database/inmem"
	"github.com/lamms/lamms/storage/database/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf, err := core.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	logger := logsvc.New("API : ", conf)
	dbLogger := logsvc.New("DB : ", conf)

	// set up repositories
	gradeRepo, sectionRepo, closeDB, err := setUpRepositories(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = closeDB.Close(); err != nil {
			dbLogger.Error("Failed to close", err)
		}
	}()

	// set up photos
	photos, closePhotos, err := setUpPhotos(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up photos: %v", err), err)
	}
	defer func() { _ = closePhotos.Close() }()

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate, translator := core.NewValidator()

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:       conf,
			Logger:     logger,
			GradeSvc:   grade.NewService(gradeRepo),
			SectionSvc: section.NewService(sectionRepo),
			Students:   attendance.NewProvider(photos),
			Validate:   validate,
			Translator: translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Error(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Error(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// setUpRepositories opens the configured database engine. "memory" needs no server and keeps nothing.
func setUpRepositories(conf *core.Config) (grade.Repository, section.Repository, io.Closer, error) {
	if conf.Database.Engine == "memory" {
		db := inmemdb.Open()
		return inmemdb.NewGradeRepository(db), inmemdb.NewSectionRepository(db), nopCloser{}, nil
	}

	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, nil, nil, err
	}
	db, err := database.Open(conf)
	if err != nil {
		return nil, nil, nil, err
	}
	if err = database.Ping(db); err != nil {
		_ = db.Close()
		return nil, nil, nil, err
	}
	if err = database.Migrate(db.DB); err != nil {
		_ = db.Close()
		return nil, nil, nil, err
	}
	return sqlxrepos.NewGradeRepository(db), sqlxrepos.NewSectionRepository(db), db, nil
}

func setUpPhotos(conf *core.Config) (attendance.PhotoProvider, io.Closer, error) {
	if conf.PhotoSource != "redis" {
		return photosvc.NewStatic(), nopCloser{}, nil
	}
	client, err := photosvc.NewRedisClient(context.Background(), conf)
	if err != nil {
		return nil, nil, err
	}
	return photosvc.NewRedis(client), client, nil
}
