package main

import (
	"context"
	"log"
	"os"

	"github.com/lamms/lamms/core"
	"github.com/lamms/lamms/core/grade"
	"github.com/lamms/lamms/services/photo"
	"github.com/lamms/lamms/storage/database"
	"github.com/lamms/lamms/storage/database/inmem"
	"github.com/lamms/lamms/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig()
	errAndDie(err)

	cli := commandLine{}
	cli.validate, _ = core.NewValidator()

	if conf.Database.Engine == "memory" {
		cli.gradeSvc = grade.NewService(inmemdb.NewGradeRepository(inmemdb.Open()))
	} else {
		// set up DB
		errAndDie(database.CreateIfNotExist(conf))
		db, err := database.Open(conf)
		errAndDie(err)
		defer func() { _ = db.Close() }()
		errAndDie(database.Ping(db))

		cli.db = db.DB
		cli.gradeSvc = grade.NewService(sqlxrepos.NewGradeRepository(db))
	}

	if conf.PhotoSource == "redis" {
		client, err := photosvc.NewRedisClient(context.Background(), conf)
		errAndDie(err)
		defer func() { _ = client.Close() }()
		cli.photos = photosvc.NewRedis(client)
	}

	// start CLI
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
