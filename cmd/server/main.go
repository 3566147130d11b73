package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/skybi/bitflags/internal/api"
	"github.com/skybi/bitflags/internal/apikey"
	"github.com/skybi/bitflags/internal/apikey/quota"
	"github.com/skybi/bitflags/internal/config"
	"github.com/skybi/bitflags/internal/storage"
	"github.com/skybi/bitflags/internal/storage/cache"
	"github.com/skybi/bitflags/internal/storage/memory"
	"github.com/skybi/bitflags/internal/storage/postgres"
	"github.com/skybi/bitflags/internal/task"
)

func main() {
	// Set up zerolog to use pretty printing
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out: os.Stderr,
	})
	log.Info().Msg("starting up...")

	// Load the application configuration
	log.Info().Msg("loading configuration...")
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load the configuration")
	}
	if cfg.IsEnvProduction() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Debug().Str("config", fmt.Sprintf("%+v", cfg)).Msg("")

	// Initialize the configured storage driver and wrap it into the caching one
	log.Info().Str("driver", cfg.StorageDriver).Msg("initializing storage driver...")
	var underlying storage.Driver
	switch cfg.StorageDriver {
	case config.StorageDriverPostgres:
		underlying = postgres.New(cfg.PostgresDSN)
	case config.StorageDriverMemory:
		underlying = memory.New()
	default:
		log.Fatal().Str("driver", cfg.StorageDriver).Msg("unknown storage driver")
	}
	if err := underlying.Initialize(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("could not initialize the storage driver")
	}
	driver := cache.New(underlying, cfg.CacheLifetime)
	if err := driver.Initialize(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("could not initialize the caching storage driver")
	}
	defer driver.Close()

	// Make sure there is a way to access the API at all
	if err := bootstrapKey(context.Background(), driver, cfg.BootstrapCapabilities); err != nil {
		log.Fatal().Err(err).Msg("could not bootstrap the initial API key")
	}

	// Create the API key quota tracker and schedule a task that flushes it
	quotaTracker := quota.NewTracker(driver.APIKeys())
	flushingTask := task.NewRepeating(func() {
		n, err := quotaTracker.Flush(context.Background())
		if err != nil {
			log.Error().Err(err).Msg("could not flush changed API key quotas")
		} else if n > 0 {
			log.Info().Int("amount", n).Msg("flushed changed API key quotas")
		}
	}, cfg.QuotaFlushInterval)
	flushingTask.Start()
	defer flushingTask.Stop(true)

	// Start up the register API
	log.Info().Str("address", cfg.ListenAddress).Msg("starting up the register API...")
	service := &api.Service{
		Config:       cfg,
		Storage:      driver,
		QuotaTracker: quotaTracker,
	}
	apiErrs := make(chan error, 1)
	service.Startup(apiErrs)
	go func() {
		err := <-apiErrs
		log.Fatal().Err(err).Msg("the register API raised an unexpected error")
	}()
	defer func() {
		log.Info().Msg("shutting down the register API...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := service.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("could not gracefully shut down the register API")
		}
	}()

	log.Info().Msg("done!")
	defer log.Info().Msg("shutting down...")

	// Wait for the application to be terminated
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt)
	<-shutdown
}

// bootstrapKey creates an initial API key if none exists yet and logs its raw token once
func bootstrapKey(ctx context.Context, driver storage.Driver, capabilities apikey.Capabilities) error {
	n, err := driver.APIKeys().Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	key, raw, err := driver.APIKeys().Create(ctx, &apikey.Create{
		Description:  "bootstrap",
		Quota:        -1,
		Capabilities: capabilities,
	})
	if err != nil {
		return err
	}
	log.Warn().
		Str("key_id", key.ID.String()).
		Str("key", raw).
		Strs("capabilities", key.Capabilities.Names()).
		Msg("created the bootstrap API key; it will not be shown again")
	return nil
}
