package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/bucketlist/internal/buildinfo"
	"github.com/dmitrijs2005/bucketlist/internal/cli"
	"github.com/dmitrijs2005/bucketlist/internal/config"
	"github.com/dmitrijs2005/bucketlist/internal/filex"
	"github.com/dmitrijs2005/bucketlist/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stderr)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := run(cfg); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

}

func run(cfg *config.Config) error {
	var logOut io.Writer = os.Stderr
	if cfg.LogFile != "" {
		if _, err := filex.EnsureParentDir(cfg.LogFile); err != nil {
			return err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}

	logger, err := logging.New(logOut, cfg.LogLevel)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		return err
	}

	return app.Run(ctx)
}
