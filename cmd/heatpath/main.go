// Package main is the entry point for the Heatpath survey engine.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/heatpath/survey-engine/internal/api"
	"github.com/heatpath/survey-engine/internal/config"
	"github.com/heatpath/survey-engine/internal/domain"
	"github.com/heatpath/survey-engine/internal/engine"
	"github.com/heatpath/survey-engine/internal/logging"
	"github.com/heatpath/survey-engine/internal/output"
	"github.com/heatpath/survey-engine/internal/publish"
	"github.com/heatpath/survey-engine/internal/store"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to configuration JSON file")
	surveyPath := flag.String("survey", "", "assess a survey JSON file, print the result and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("heatpath %s (commit=%s, built=%s)\n", version, commit, date)
		os.Exit(0)
	}

	// Optional .env for local development; real environment wins.
	_ = godotenv.Load()

	cfg, err := resolveConfig(*configPath)
	if err != nil {
		fatal(fmt.Sprintf("load config: %v", err))
	}

	tables, err := config.LoadTables(cfg.TablesPath)
	if err != nil {
		fatal(fmt.Sprintf("load tables: %v", err))
	}

	eng := engine.NewEngine(tables)

	if *surveyPath != "" {
		if err := runOnce(eng, *surveyPath); err != nil {
			fatal(err.Error())
		}
		return
	}

	serve(cfg, eng)
}

// runOnce assesses a single survey file and prints the output JSON to
// stdout. No database or server is involved.
func runOnce(eng *engine.Engine, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read survey: %w", err)
	}
	var survey domain.Survey
	if err := json.Unmarshal(data, &survey); err != nil {
		return domain.WrapEngineError(domain.ErrSurveyDecode.Code, "decode survey", err)
	}

	agg, err := eng.Run(&survey)
	if err != nil {
		return err
	}
	out := output.Build(agg, &survey)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func serve(cfg *config.Config, eng *engine.Engine) {
	logger, err := logging.New()
	if err != nil {
		fatal(fmt.Sprintf("init logging: %v", err))
	}
	defer logger.Close()
	log := logger.Logger

	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		fatal(fmt.Sprintf("open database: %v", err))
	}
	defer db.Close()

	pub, err := publish.NewPublisher(publish.Config{
		Enabled: cfg.Publisher.Enabled,
		Brokers: cfg.Publisher.Brokers,
		Topic:   cfg.Publisher.Topic,
		Acks:    cfg.Publisher.Acks,
	}, log)
	if err != nil {
		fatal(fmt.Sprintf("init publisher: %v", err))
	}
	if err := pub.Start(context.Background()); err != nil {
		fatal(fmt.Sprintf("start publisher: %v", err))
	}

	handler := &api.Handler{
		Engine:      eng,
		DB:          db,
		Assessments: &store.AssessmentRepo{},
		Publisher:   pub,
		Log:         log,
	}
	srv := api.NewServer(handler, cfg.ListenAddr)

	// Graceful shutdown on interrupt.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Info("shutting_down")

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSec)*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("server_shutdown_err", slog.Any("err", err))
		}
		if err := pub.Stop(ctx); err != nil {
			log.Error("publisher_stop_err", slog.Any("err", err))
		}
	}()

	log.Info("listening", slog.String("addr", cfg.ListenAddr))

	if err := srv.Start(); err != nil && err != http.ErrServerClosed {
		fatal(fmt.Sprintf("server error: %v", err))
	}
}

// resolveConfig loads configuration with precedence: --config flag,
// HEATPATH_CONFIG, a discovered config.json, built-in defaults.
func resolveConfig(flagPath string) (*config.Config, error) {
	path := flagPath
	if path == "" {
		path = os.Getenv("HEATPATH_CONFIG")
	}
	if path == "" {
		path = discoverConfig()
	}
	if path == "" {
		return config.Default()
	}
	return config.Load(path)
}

// discoverConfig looks for config.json next to the executable, then in the cwd.
func discoverConfig() string {
	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), "config.json")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	if _, err := os.Stat("config.json"); err == nil {
		return "config.json"
	}
	return ""
}

func fatal(msg string) {
	fmt.Fprintf(os.Stderr, "ERROR: %s\n", msg)
	os.Exit(1)
}
