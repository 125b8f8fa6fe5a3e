/* main.go
 * The "main" method for running the bot. Configuration comes from the environment (see config/config.go)
 * Usage: go run . -test=<true|false> [-demo] [-env=<path>]
 */

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"pentathlon-scorer/api/api"
	"pentathlon-scorer/bot"
	"pentathlon-scorer/config"
)

// startupTimeout bounds connecting to MongoDB and creating indexes
const startupTimeout = 20 * time.Second

func main() {
	//Flags
	testPtr := flag.String("test", "false", "Use main or test bot: takes true or false as argument")
	demoPtr := flag.Bool("demo", false, "Run a console walkthrough of a competition with an in memory store, no Discord or MongoDB needed")
	envPtr := flag.String("env", ".env", "Path of the .env file to read, missing files are ignored")

	flag.Parse()

	cfg, err := config.Load(*envPtr)
	if err != nil {
		fatal(slog.Default(), "failed to load configuration", err)
	}
	level, err := cfg.Level()
	if err != nil {
		fatal(slog.Default(), "failed to load configuration", err)
	}
	logger := newLogger(os.Stderr, level)
	slog.SetDefault(logger)

	if *demoPtr {
		if err := runDemo(context.Background(), os.Stdout, logger); err != nil {
			fatal(logger, "demo failed", err)
		}
		return
	}

	test, err := convertStrToBool(*testPtr)
	if err != nil {
		fatal(logger, "invalid \"test\" flag, should be true or false", err)
	}
	discordToken, err := cfg.DiscordToken(test)
	if err != nil {
		fatal(logger, "missing discord token", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	scorer, err := api.NewAPI(ctx, cfg.Database, cfg.MongoURI, logger)
	cancel()
	if err != nil {
		fatal(logger, "failed to initialize API", err)
	}
	defer func() {
		if err := scorer.Close(context.Background()); err != nil {
			logger.Error("failed to close store", slog.Any("error", err))
		}
	}()

	b, err := bot.NewBot(discordToken, scorer, logger)
	if err != nil {
		fatal(logger, "failed to initialize bot", err)
	}
	if err := b.Run(); err != nil {
		logger.Error("bot stopped", slog.Any("error", err))
	}
}

// fatal logs the error and exits
func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, slog.Any("error", err))
	os.Exit(1)
}
