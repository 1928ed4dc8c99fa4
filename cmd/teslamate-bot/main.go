// Telegram front end for the TeslaMate query dispatcher

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/errgroup"

	"github.com/teslamate-tools/teslamate-query/internal/log"
	"github.com/teslamate-tools/teslamate-query/internal/metrics"
	"github.com/teslamate-tools/teslamate-query/pkg/cli"
	"github.com/teslamate-tools/teslamate-query/pkg/dispatch"
	"github.com/teslamate-tools/teslamate-query/pkg/report"
	"github.com/teslamate-tools/teslamate-query/pkg/teslamate"
)

const updateTimeout = 60 // seconds

func writeErr(format string, a ...interface{}) {
	fmt.Fprintf(os.Stderr, format, a...)
	fmt.Fprintf(os.Stderr, "\n")
}

func usage() {
	w := flag.CommandLine.Output()
	fmt.Fprintf(w, "usage: %s [OPTION...]\n", filepath.Base(os.Args[0]))
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Answers /%s COMMAND in whitelisted Telegram chats. The bot token is read from\n", dispatch.CommandName)
	fmt.Fprintf(w, "the configuration file or $%s.\n\n", cli.EnvBotToken)
	flag.PrintDefaults()
}

func newBotAPI(config *cli.Config) (*tgbotapi.BotAPI, error) {
	if config.Telegram.APIEndpoint != "" {
		log.Info("Using Telegram Bot API at %s", config.Telegram.APIEndpoint)
		return tgbotapi.NewBotAPIWithAPIEndpoint(config.Telegram.BotToken, config.Telegram.APIEndpoint+"/bot%s/%s")
	}
	return tgbotapi.NewBotAPI(config.Telegram.BotToken)
}

func main() {
	status := 1
	defer func() {
		log.Sync()
		os.Exit(status)
	}()

	var (
		commandTimeout time.Duration
		metricsAddr    string
	)
	config, err := cli.NewConfig()
	if err != nil {
		writeErr("Failed to load configuration: %s", err)
		return
	}
	flag.Usage = usage
	flag.DurationVar(&commandTimeout, "command-timeout", 30*time.Second, "Set timeout for each command, including vehicle lookup.")
	flag.StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics at `address`/metrics, e.g. :9100")
	config.RegisterCommandLineFlags()
	config.RegisterTelegramFlags(flag.CommandLine)
	flag.Parse()
	if err := config.LoadFile(); err != nil {
		writeErr("Error: %s", err)
		return
	}
	config.ReadFromEnvironment()
	config.ConfigureLogging(log.LevelInfo)

	if err := config.ValidateTelegram(); err != nil {
		writeErr("Missing required setting: %s", err)
		return
	}
	if err := config.LoadCredentials(); err != nil {
		writeErr("Error loading credentials: %s", err)
		return
	}

	client, err := teslamate.New(config.Telemetry("teslamate-bot"))
	if err != nil {
		writeErr("Error: %s", err)
		return
	}
	api, err := newBotAPI(config)
	if err != nil {
		writeErr("Failed to initialize Telegram bot: %s", err)
		return
	}
	api.Debug = config.Verbose
	log.Info("Authorized as %s", api.Self.UserName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := dispatch.New(client, report.CatalogFor(config.Language), dispatch.DefaultPrefix)
	bot := NewBot(api, d, config.Telegram.Whitelist)
	bot.timeout = commandTimeout

	u := tgbotapi.NewUpdate(0)
	u.Timeout = updateTimeout
	updates := api.GetUpdatesChan(u)
	defer api.StopReceivingUpdates()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		bot.Run(ctx, updates)
		stop() // Also stops the metrics server.
		return nil
	})
	if metricsAddr != "" {
		g.Go(func() error {
			return serveMetrics(ctx, metricsAddr)
		})
	}
	if err := g.Wait(); err != nil {
		writeErr("Error: %s", err)
		return
	}
	status = 0
}

// serveMetrics exposes Prometheus metrics on addr until ctx is done.
func serveMetrics(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Warning("Error shutting down metrics server: %s", err)
		}
	}()

	log.Info("Serving metrics on %s", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}
