package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/rmitchellscott/WxMinima/fetch"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// Define command-line flags
	metarOnly := flag.Bool("metar", false, "Show only METAR")
	tafOnly := flag.Bool("taf", false, "Show only TAF")
	noRawFlag := flag.Bool("no-raw", false, "Hide raw data")
	flagNoColor := flag.Bool("no-color", false, "Disable color output")
	ceilingFlag := flag.Float64("ceiling", 0, "Ceiling minimum in feet (default from MINIMA_CEILING or 1000)")
	visibilityFlag := flag.Float64("visibility", 0, "Visibility minimum in statute miles (default from MINIMA_VISIBILITY or 3)")
	etaFlag := flag.String("eta", "", "Instant to check the TAF at, RFC3339 or DDHHMMZ (default now)")
	allFlag := flag.Bool("all", false, "Flag every TAF line below minima instead of checking one instant")
	watchFlag := flag.String("watch", "", "Cron spec to re-check on, e.g. \"*/10 * * * *\"")
	envFlag := flag.String("env", ".env", "Path to an optional .env file")
	debugFlag := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	if *flagNoColor {
		color.NoColor = true // disables colorized output globally
	}

	cfg, err := loadConfig(*envFlag)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel, *debugFlag)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	opts := options{
		minima:   cfg.Minima,
		allLines: *allFlag,
		noRaw:    *noRawFlag,
	}
	if *ceilingFlag > 0 {
		opts.minima.CeilingFeet = *ceilingFlag
	}
	if *visibilityFlag > 0 {
		opts.minima.VisibilityMiles = *visibilityFlag
	}
	if *etaFlag != "" {
		opts.eta, err = parseETA(*etaFlag, time.Now().UTC())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		opts.hasETA = true
	}

	// Piped reports are evaluated as given
	if stdinIsPiped() {
		_, rawInput, err := readReport(os.Stdin)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		processPiped(os.Stdout, rawInput, opts, time.Now().UTC())
		return
	}

	var stationCode string
	if args := flag.Args(); len(args) > 0 {
		stationCode, err = getStationCodeFromArgs(args)
	} else {
		stationCode, err = promptForStationCode(os.Stdin, os.Stdout)
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	kinds := []fetch.Kind{fetch.METAR, fetch.TAF}
	if *metarOnly {
		kinds = []fetch.Kind{fetch.METAR}
	} else if *tafOnly {
		kinds = []fetch.Kind{fetch.TAF}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher := newFetcher(cfg, logger)
	check := func() {
		if err := processReports(ctx, os.Stdout, fetcher, stationCode, kinds, opts, time.Now().UTC()); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}

	if *watchFlag == "" {
		check()
		return
	}

	if err := watch(ctx, *watchFlag, check, logger); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// watch runs check now and then on the cron schedule until ctx is done.
// A run still in progress when the next one is due is skipped.
func watch(ctx context.Context, spec string, check func(), logger *zap.Logger) error {
	scheduler := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := scheduler.AddFunc(spec, func() {
		fmt.Printf("\n========== %s ==========\n\n", time.Now().UTC().Format("2006-01-02 15:04:05 UTC"))
		check()
	}); err != nil {
		return fmt.Errorf("invalid watch schedule %q: %w", spec, err)
	}

	check()

	scheduler.Start()
	logger.Info("Watching for updates", zap.String("schedule", spec))

	<-ctx.Done()
	<-scheduler.Stop().Done()
	logger.Info("Stopped watching")
	return nil
}

// newLogger builds a console logger writing to stderr so it never mixes
// with report output
func newLogger(level string, debug bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if debug {
		config = zap.NewDevelopmentConfig()
	}
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	if !debug {
		atomicLevel, err := zap.ParseAtomicLevel(strings.ToLower(level))
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
		}
		config.Level = atomicLevel
	}

	return config.Build()
}
