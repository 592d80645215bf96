package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/pmorille/trello-weekly/internal/config"
	"github.com/pmorille/trello-weekly/internal/constants"
	"github.com/pmorille/trello-weekly/internal/logging"
	"github.com/pmorille/trello-weekly/internal/provision"
	"github.com/pmorille/trello-weekly/internal/schedule"
	appSignals "github.com/pmorille/trello-weekly/internal/signals"
	"github.com/pmorille/trello-weekly/internal/trello"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var cli struct {
	DryRun   bool             `name:"dry-run" help:"Log what would be created without calling Trello."`
	Position string           `help:"Where on the board to insert the new list." enum:"top,bottom" default:"top"`
	Week     *int             `help:"ISO week number to create the list for (defaults to the current week)." placeholder:"N"`
	StartDay string           `name:"start-day" help:"First day of the planning week." enum:"monday,saturday,sunday" default:"monday" env:"WEEK_START_DAY"`
	Cards    string           `help:"Path to the cards configuration file." type:"path" default:"configs/cards.yaml" env:"CARDS_FILE"`
	LogDir   string           `name:"log-dir" help:"Directory for the rotating log file, logs to console only when unset." type:"path" env:"LOG_DIR"`
	LogLevel string           `name:"log-level" help:"Log level (trace, debug, info, warn, error)." default:"info" env:"LOG_LEVEL"`
	Version  kong.VersionFlag `help:"Print version information and quit."`
}

func main() {
	// Load .env if present; variables already set in the environment win
	_ = godotenv.Load()

	kong.Parse(&cli,
		kong.Name("trello-weekly"),
		kong.Description("Creates the weekly Todo list on a Trello board and fills it with your recurring cards."),
		kong.UsageOnError(),
		kong.Vars{"version": fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)},
	)

	// Determine if we're in development mode
	isDev := os.Getenv("ENV") != "production"

	// Initialize logging
	logging.InitializeWithFile(isDev, cli.LogDir)
	logging.SetLogLevel(cli.LogLevel)
	logging.SetRunID(uuid.NewString())

	// Get a logger for the main component
	logger := logging.GetLogger("main")

	logger.Info().
		Str("version", version).
		Str("commit", commit).
		Str("build_date", date).
		Msg("Starting Trello Weekly List Creator")

	// Create context that's canceled on SIGINT/SIGTERM
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info().Str("signal", sig.String()).Msg("Received signal, aborting run")
		cancel()
	}()

	if err := run(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Run failed")
	}
}

func run(ctx context.Context) error {
	// Get logger for the run function
	logger := logging.GetLogger("main")

	position, err := constants.ParsePosition(cli.Position)
	if err != nil {
		logger.Error().Err(err).Str("position", cli.Position).Msg("Invalid position flag")
		return err
	}

	startDay, err := constants.ParseStartDay(cli.StartDay)
	if err != nil {
		logger.Error().Err(err).Str("start_day", cli.StartDay).Msg("Invalid start day")
		return err
	}

	// Load configuration
	cfg, err := config.Load(cli.Cards)
	if err != nil {
		// Log error before returning, as main's fatal log won't have config context
		logger.Error().Err(err).Str("cards_path", cli.Cards).Msg("Failed to load configuration")
		return err
	}
	logger.Info().Str("cards_path", cli.Cards).Int("cards", len(cfg.Cards)).Msg("Configuration loaded")

	// Resolve which week to provision and when its days fall
	resolver := schedule.New(schedule.Options{
		Week:     cli.Week,
		StartDay: startDay,
		Position: position,
		DryRun:   cli.DryRun,
	})
	plan, err := resolver.Resolve(time.Now())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to resolve week")
		return err
	}
	logger.Info().
		Int("week", plan.Week).
		Str("list", plan.ListTitle).
		Time("week_start", plan.WeekStart).
		Str("position", plan.Position.String()).
		Bool("dry_run", plan.DryRun).
		Msg("Resolved weekly plan")

	client := trello.NewClient(trello.Options{
		BaseURL: cfg.Trello.BaseURL,
		Key:     cfg.Trello.APIKey,
		Token:   cfg.Trello.APIToken,
		BoardID: cfg.Trello.BoardID,
	})

	registerProgressHandlers()

	summary, err := provision.New(client).Run(ctx, plan, cfg.Cards)
	if err != nil {
		wrappedErr := fmt.Errorf("failed to provision week %d: %w", plan.Week, err)
		logger.Error().Err(wrappedErr).Int64("api_requests", client.Requests()).Msg("Provisioning failed")
		return wrappedErr
	}

	if summary.Skipped {
		logger.Warn().
			Str("list", summary.ListTitle).
			Msg("Nothing to do, the weekly list already exists")
		return nil
	}

	if summary.DryRun {
		logger.Info().
			Str("list", summary.ListTitle).
			Int("cards", summary.Cards).
			Int("checklists", summary.Checklists).
			Int("items", summary.Items).
			Msg("Dry run complete, no changes were made")
		return nil
	}

	logger.Info().
		Int("week", summary.Week).
		Str("list", summary.ListTitle).
		Str("list_id", summary.ListID).
		Int("cards", summary.Cards).
		Int("labels_created", summary.Labels).
		Int("checklists", summary.Checklists).
		Int("items", summary.Items).
		Int64("api_requests", client.Requests()).
		Msg("Weekly list created successfully")
	return nil
}

// registerProgressHandlers logs list and card progress as the provisioner
// announces it
func registerProgressHandlers() {
	appSignals.OnListCreated(func(_ context.Context, data appSignals.ListCreatedData) {
		signalLogger := logging.GetLogger("progress")
		if data.DryRun {
			signalLogger.Info().
				Str("list", data.Title).
				Str("position", data.Position.String()).
				Msg("[dry-run] Would create list")
			return
		}
		signalLogger.Info().
			Str("list", data.Title).
			Str("list_id", data.ListID).
			Msg("List created")
	}, "main-list-created-handler")

	appSignals.OnCardCreated(func(_ context.Context, data appSignals.CardCreatedData) {
		signalLogger := logging.GetLogger("progress")
		if data.DryRun {
			signalLogger.Info().
				Str("card", data.Title).
				Time("due", data.Due).
				Int("labels", data.Labels).
				Msg("[dry-run] Would create card")
			return
		}
		signalLogger.Info().
			Str("card", data.Title).
			Str("card_id", data.CardID).
			Time("due", data.Due).
			Msg("Card created")
	}, "main-card-created-handler")
}
