// Package main is the Sijil CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/hyperjump/sijil/internal/cli"
	"github.com/hyperjump/sijil/internal/config"
	"github.com/hyperjump/sijil/internal/dataset"
	"github.com/hyperjump/sijil/internal/models"
	"github.com/hyperjump/sijil/internal/search"
	"github.com/hyperjump/sijil/internal/server"
	"github.com/hyperjump/sijil/internal/watcher"
	"github.com/hyperjump/sijil/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/sijil/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development); if that exists it is used.
// When the default file does not exist either, built-in defaults are returned.
// Returns the config and the path that was actually loaded ("" for built-in defaults).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
			cfg := &config.Config{}
			config.ApplyDefaults(cfg)
			return cfg, "", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("sijil version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (dataset loads, file events, searches)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	// A failed load leaves the server up and answering "data unavailable".
	if err := components.Loader.Reload(context.Background()); err != nil {
		logger.Warn("initial dataset load failed", zap.Error(err))
	}

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Dataset.Watch && cfg.Dataset.URL == "" {
		watchOpts := []watcher.WatcherOption{}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		loader := components.Loader
		watchSvc := watcher.NewWatcher(
			[]string{cfg.Dataset.Path},
			func(path string) {
				if err := loader.Reload(context.Background()); err != nil {
					logger.Warn("watch reload failed", zap.String("path", path), zap.Error(err))
				}
			},
			watchOpts...,
		)
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
		defer watchSvc.Stop()
	}

	srv := server.NewServer(components.Engine, components.Loader, &cfg.Server, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// printSearchUsage prints search subcommand usage.
func printSearchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: sijil search [flags] <query>\n\n")
	fmt.Fprintf(fs.Output(), "Query is all remaining arguments joined by spaces. Multi-word queries work with or without quotes.\n")
	fmt.Fprintf(fs.Output(), "A query of digits only searches id and civil id; anything else searches names.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Examples:
  sijil search احمد علي
  sijil search "أحمد علي"                   # same as above
  sijil search 1234                         # id / civil id contains 1234
  sijil search --highlight --limit 5 فاطمة
  sijil search --server http://localhost:8080 --output json محمد
`)
}

// buildSearchQuery joins all positional args with spaces so multi-word queries
// work the same with or without shell quoting.
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// searchArgsReorder moves every flag known to fs (and its value) to the front of args,
// keeping the positional words in their original order. Go's flag package stops at
// the first non-flag argument, so "sijil search احمد -limit 5 علي" would otherwise
// leave -limit unparsed. Word order matters to scoring, so positionals are never
// rotated. Everything after "--" is positional.
func searchArgsReorder(fs *flag.FlagSet, args []string) []string {
	flags := make([]string, 0, len(args))
	positional := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		if len(a) < 2 || a[0] != '-' {
			positional = append(positional, a)
			continue
		}
		flags = append(flags, a)
		name := strings.TrimLeft(a, "-")
		if strings.Contains(name, "=") {
			continue
		}
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
			continue
		}
		if i+1 < len(args) {
			i++
			flags = append(flags, args[i])
		}
	}
	return append(flags, positional...)
}

// newSearchFlagSet declares the search subcommand flags.
func newSearchFlagSet() (*flag.FlagSet, *searchFlags) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	sf := &searchFlags{
		configPath:   fs.String("config", defaultConfigPath, "config file path (direct mode)"),
		serverURL:    fs.String("server", "", "server URL; empty loads the dataset directly"),
		limit:        fs.Int("limit", models.MaxResults, "maximum number of results (at most 100)"),
		highlight:    fs.Bool("highlight", true, "mark matched words in full names"),
		explain:      fs.Bool("explain", false, "include relevance scores (json output)"),
		outputFormat: fs.String("output", "text", "output format: text (result cards), compact (one result per line), or json (parseable)"),
	}
	fs.Usage = func() { printSearchUsage(fs) }
	return fs, sf
}

type searchFlags struct {
	configPath   *string
	serverURL    *string
	limit        *int
	highlight    *bool
	explain      *bool
	outputFormat *string
}

func runSearch() {
	fs, sf := newSearchFlagSet()
	_ = fs.Parse(searchArgsReorder(fs, os.Args[2:]))

	format, err := cli.ParseOutputFormat(*sf.outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	req := &models.SearchRequest{
		Query:     buildSearchQuery(fs.Args()),
		Limit:     *sf.limit,
		Highlight: *sf.highlight,
		Explain:   *sf.explain,
	}
	if req.IsBlank() {
		fmt.Println(cli.MsgNoQuery)
		os.Exit(1)
	}

	var response *models.SearchResponse
	if *sf.serverURL != "" {
		response, err = searchViaHTTP(*sf.serverURL, req)
	} else {
		response, err = searchDirect(*sf.configPath, req)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
	if response.NoQuery || !response.DataAvailable {
		os.Exit(1)
	}
}

// searchDirect loads the dataset in-process and runs one search.
func searchDirect(configPath string, req *models.SearchRequest) (*models.SearchResponse, error) {
	components, err := loadComponents(configPath)
	if err != nil {
		return nil, err
	}
	return components.Engine.Search(context.Background(), req)
}

func searchViaHTTP(serverURL string, req *models.SearchRequest) (*models.SearchResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(strings.TrimRight(serverURL, "/")+"/api/v1/search", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path (direct mode)")
	serverURL := fs.String("server", "", "server URL; empty loads the dataset directly")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var stats *models.DatasetStats
	if *serverURL != "" {
		stats, err = statusViaHTTP(*serverURL)
	} else {
		var components *Components
		if components, err = loadComponents(*configPath); err == nil {
			st := components.Engine.Stats()
			stats = &st
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteStatus(os.Stdout, stats, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func statusViaHTTP(serverURL string) (*models.DatasetStats, error) {
	resp, err := http.Get(strings.TrimRight(serverURL, "/") + "/api/v1/status")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var s models.DatasetStats
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &s, nil
}

// Components holds the search engine and the loader that feeds it.
type Components struct {
	Engine *search.Engine
	Loader *dataset.Loader
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	source, err := dataset.NewSource(cfg.Dataset)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize dataset source: %w", err)
	}
	engine := search.NewEngine(&cfg.Search, search.WithLogger(logger))
	loader := dataset.NewLoader(source, engine,
		dataset.WithLogger(logger),
		dataset.WithTimeout(time.Duration(cfg.Dataset.LoadTimeoutSeconds)*time.Second),
	)
	return &Components{Engine: engine, Loader: loader}, nil
}

// loadComponents is the one-shot path for search and status: config, quiet logger,
// and a single dataset load. A load failure is not returned; the engine reports it.
func loadComponents(configPath string) (*Components, error) {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := utils.NewCLILogger(cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()
	components, err := initializeComponents(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := components.Loader.Reload(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}
	return components, nil
}

func printUsage() {
	fmt.Println(`sijil - Arabic person-record search

Usage:
  sijil server [flags]           Start the HTTP server
  sijil search [flags] <query>   Search by name, id or civil id
  sijil status [flags]           Show dataset status
  sijil version                  Show version
  sijil help                     Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/sijil/config.yaml)
  --debug            Enable debug logging (dataset loads, file events, searches)

Search Flags:
  --config string    Config file path (direct mode)
  --server string    Server URL. Empty (default) loads the dataset directly.
  --limit int        Maximum number of results, at most 100 (default: 100)
  --highlight        Mark matched words in full names (default: true)
  --explain          Include relevance scores in json output
  --output string    Output format: text, compact or json (default: text)

Status Flags:
  --config string    Config file path (direct mode)
  --server string    Server URL. Empty (default) loads the dataset directly.
  --output string    Output format: text or json (default: text)

Examples:
  sijil server
  sijil search احمد علي
  sijil search 1234567
  sijil search --output json --server http://localhost:8080 "فاطمة الزهراء"
  sijil status --output json`)
}
