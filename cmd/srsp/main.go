package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/vinaykumardeekonda/srsp-cli/internal/buildinfo"
	"github.com/vinaykumardeekonda/srsp-cli/internal/client/cli"
	"github.com/vinaykumardeekonda/srsp-cli/internal/client/config"
	"github.com/vinaykumardeekonda/srsp-cli/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	// Warnings and errors only; the REPL owns stdout.
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	app, err := cli.NewApp(ctx, cfg, logger)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
