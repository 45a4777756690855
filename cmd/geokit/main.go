package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/NERVsystems/geokit/pkg/antipode"
	"github.com/NERVsystems/geokit/pkg/cache"
	"github.com/NERVsystems/geokit/pkg/city"
	"github.com/NERVsystems/geokit/pkg/config"
	"github.com/NERVsystems/geokit/pkg/logging"
	"github.com/NERVsystems/geokit/pkg/metrics"
	"github.com/NERVsystems/geokit/pkg/nominatim"
	"github.com/NERVsystems/geokit/pkg/server"
	"github.com/NERVsystems/geokit/pkg/tools"
	"github.com/NERVsystems/geokit/pkg/version"
)

var (
	showVersion    bool
	debug          bool
	configPath     string
	generateConfig string
)

func init() {
	flag.BoolVar(&showVersion, "version", false, "Display version information")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging")
	flag.StringVar(&configPath, "config", "", "Path to a geokit YAML config file")
	flag.StringVar(&generateConfig, "generate-config", "", "Generate a Claude Desktop Client config file at the specified path")
}

func main() {
	flag.Parse()

	// Show version and exit if requested
	if showVersion {
		fmt.Println(version.String())
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "geokit: %v\n", err)
		os.Exit(1)
	}

	level := cfg.Log.Level
	if debug {
		level = "debug"
	}
	logger := logging.Setup(level, cfg.Log.Format)

	// Generate Claude Desktop config if requested
	if generateConfig != "" {
		if err := generateClientConfig(generateConfig, configPath); err != nil {
			logger.Error("failed to generate config", "error", err)
			os.Exit(1)
		}
		logger.Info("successfully generated Claude Desktop Client config", "path", generateConfig)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting geokit MCP server",
		version.Attr(),
		"log_level", level)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// run wires the geocoder, cache, city dataset and metrics into the MCP
// server and serves stdio until ctx is cancelled.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	srv, cleanup, err := build(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	if cfg.Metrics.Addr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.Metrics.Addr); err != nil {
				logger.Error("metrics server error", "error", err)
			}
		}()
	}

	logger.Info("server initialized, waiting for requests")
	return srv.Run(ctx)
}

// build constructs the server from cfg. cleanup releases the cache.
func build(cfg *config.Config, logger *slog.Logger) (*server.Server, func(), error) {
	store, err := newCache(cfg.Cache, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Warn("cache close", "error", err)
		}
	}

	client := nominatim.NewClient(nominatim.Options{
		BaseURL:   cfg.Nominatim.BaseURL,
		UserAgent: cfg.Nominatim.UserAgent,
		Language:  cfg.Nominatim.Language,
		Timeout:   cfg.Nominatim.Timeout,
		RPS:       cfg.Nominatim.RPS,
		Burst:     cfg.Nominatim.Burst,
		Cache:     store,
		Logger:    logger,
	})
	svc := antipode.NewService(client, client, antipode.WithLogger(logger))

	var cities *city.Table
	if cfg.Cities.Path != "" {
		t, skipped, err := city.LoadFile(cfg.Cities.Path, cfg.Cities.NameProperty)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		logger.Info("loaded cities", "path", cfg.Cities.Path, "cities", t.Len(), "skipped", skipped)
		cities = t
	}

	srv, err := server.NewServer(tools.NewRegistry(logger, svc, cities), logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return srv, cleanup, nil
}

// newCache returns a Valkey store when an address is configured and an
// in-memory store otherwise.
func newCache(cfg config.CacheConfig, logger *slog.Logger) (cache.Store, error) {
	if cfg.ValkeyAddr != "" {
		logger.Info("using valkey cache", "addr", cfg.ValkeyAddr)
		return cache.NewValkey(cfg.ValkeyAddr, "geokit:", cfg.TTL)
	}
	return cache.NewMemory(cfg.Size, cfg.TTL), nil
}

// generateClientConfig creates or updates a Claude Desktop Client config file
func generateClientConfig(outputPath, geokitConfig string) error {
	logger := slog.Default()

	if outputPath == "" {
		return errors.New("output path must not be empty")
	}
	if filepath.Ext(outputPath) != ".json" {
		return fmt.Errorf("output path must be a .json file, got %q", outputPath)
	}
	for _, part := range strings.Split(filepath.ToSlash(outputPath), "/") {
		if part == ".." {
			return fmt.Errorf("output path must not contain '..': %q", outputPath)
		}
	}

	// Get absolute path to executable
	execPath, err := os.Executable()
	if err != nil {
		execPath = os.Args[0] // Fallback to args if cannot get executable path
	}
	absExecPath, err := filepath.Abs(execPath)
	if err != nil {
		absExecPath = execPath
	}

	args := []string{}
	if geokitConfig != "" {
		absConfig, err := filepath.Abs(geokitConfig)
		if err != nil {
			return fmt.Errorf("failed to resolve config path: %w", err)
		}
		args = append(args, "-config", absConfig)
	}

	serverConfig := map[string]interface{}{
		"command": absExecPath,
		"args":    args,
	}

	var config map[string]interface{}
	if data, err := os.ReadFile(outputPath); err == nil {
		if err := json.Unmarshal(data, &config); err != nil {
			logger.Warn("existing config is not valid JSON, will create new", "error", err)
			config = nil
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read existing config: %w", err)
	}
	if config == nil {
		config = make(map[string]interface{})
	}

	// Check if mcpServers exists, create it if not
	mcpServers, ok := config["mcpServers"].(map[string]interface{})
	if !ok {
		mcpServers = make(map[string]interface{})
		config["mcpServers"] = mcpServers
	}
	mcpServers["geokit"] = serverConfig

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	return os.Chmod(outputPath, 0o600)
}
