package main

import (
	"context"
	"embed"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-solver/internal/config"
	"github.com/vancomm/minesweeper-solver/internal/database"
	"github.com/vancomm/minesweeper-solver/internal/mines"
	"github.com/vancomm/minesweeper-solver/internal/repository"
	"github.com/vancomm/minesweeper-solver/internal/solver"
)

//go:embed migrations
var migrations embed.FS

var (
	log = logrus.New()

	cfg  *config.App
	wsc  *config.WebSocket
	repo *repository.Queries
	runs = newRegistry()
)

func setupLogging() {
	logLevel := logrus.InfoLevel
	if cfg.Development() {
		logLevel = logrus.DebugLevel
		mines.Log.SetLevel(logrus.DebugLevel)
		solver.Log.SetLevel(logrus.DebugLevel)
	}
	log.SetLevel(logLevel)

	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
}

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	cfg = config.NewApp()
	wsc = config.NewWebSocket()

	setupLogging()

	log.Info("starting up, mode = ", cfg.Mode)

	db, err := database.ConnectAndMigrate(mainCtx, migrations)
	if err != nil {
		log.Fatal("unable to connect to database: ", err)
	}
	defer db.Close()
	repo = repository.New(db)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: buildHandler(),
		BaseContext: func(l net.Listener) context.Context {
			return mainCtx
		},
	}

	log.Infof("ready to serve @ %s", cfg.Addr)

	g, gCtx := errgroup.WithContext(mainCtx)
	g.Go(func() error {
		return server.ListenAndServe()
	})
	g.Go(func() error {
		<-gCtx.Done()
		return server.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil {
		log.Printf("exit reason: %s\n", err)
	}
}
