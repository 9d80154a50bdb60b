package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"go-mrz-generator/document"
	"go-mrz-generator/generator"
	"go-mrz-generator/logging"
	"go-mrz-generator/metrics"
	"go-mrz-generator/models"
	"go-mrz-generator/mrz"
	"go-mrz-generator/redis"
	"go-mrz-generator/vocab"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type Config struct {
	ServerConfig ServerConfig `json:"server_config"`

	LogLevel  string `json:"log_level"`
	LogFormat string `json:"log_format"`

	// VocabularyPath points at a JSON vocabulary file; it wins over an
	// inline generator.vocabulary.
	VocabularyPath string     `json:"vocabulary_path,omitempty"`
	Generator      mrz.Config `json:"generator"`
	Workers        int        `json:"workers"`
	MaxBatchSize   int        `json:"max_batch_size"`
	CrossCheck     bool       `json:"cross_check"`

	StorageType         string                    `json:"storage_type"`
	BatchTtlSeconds     int                       `json:"batch_ttl_seconds,omitempty"`
	RedisConfig         redis.RedisConfig         `json:"redis_config,omitempty"`
	RedisSentinelConfig redis.RedisSentinelConfig `json:"redis_sentinel_config,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		ServerConfig: ServerConfig{Host: "localhost", Port: 8080},
		LogLevel:     "info",
		LogFormat:    "text",
		Workers:      generator.DefaultWorkers,
		MaxBatchSize: DefaultMaxBatchSize,
		StorageType:  "memory",
	}
}

type options struct {
	configPath string
	count      int
	seed       uint64
	workers    int
	format     string
	serve      bool
	logLevel   string
	crossCheck bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("mrzgen", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "Path for the config.json to use")
	fs.IntVar(&opts.count, "count", 10, "Number of records to generate")
	fs.Uint64Var(&opts.seed, "seed", 0, "Seed for reproducible output, 0 picks a random seed")
	fs.IntVar(&opts.workers, "workers", 0, "Number of generator workers, overrides the config")
	fs.StringVar(&opts.format, "format", "text", "Output format: text or json")
	fs.BoolVar(&opts.serve, "serve", false, "Serve the HTTP API instead of printing a batch")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level, overrides the config")
	fs.BoolVar(&opts.crossCheck, "cross-check", false, "Decode every record with an independent MRZ reader")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.format != "text" && opts.format != "json" {
		return options{}, fmt.Errorf("unknown output format %q", opts.format)
	}
	if opts.count < 0 {
		return options{}, fmt.Errorf("count must not be negative")
	}
	return opts, nil
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		slog.Error("mrzgen failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	config := DefaultConfig()
	if opts.configPath != "" {
		config, err = readConfigFile(opts.configPath)
		if err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	applyEnvOverrides(&config)
	if opts.logLevel != "" {
		config.LogLevel = opts.logLevel
	}
	if opts.workers > 0 {
		config.Workers = opts.workers
	}
	if opts.crossCheck {
		config.CrossCheck = true
	}

	logging.InitLogger(config.LogLevel, config.LogFormat)
	if opts.configPath != "" {
		slog.Info("Using config", "path", opts.configPath)
	}

	generatorConfig, err := resolveGeneratorConfig(config)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	if opts.serve {
		return serve(config, generatorConfig, m, registry)
	}
	return printBatch(ctx, stdout, config, generatorConfig, opts, m)
}

func printBatch(ctx context.Context, stdout io.Writer, config Config, generatorConfig mrz.Config, opts options, observer generator.Observer) error {
	genOpts := generator.Options{
		Count:   opts.count,
		Workers: config.Workers,
		Seed:    opts.seed,
	}
	if config.CrossCheck {
		genOpts.CrossCheck = document.CrossCheck
	}

	result, err := generator.Generate(ctx, generatorConfig, genOpts, observer)
	if err != nil {
		return err
	}

	out := bufio.NewWriter(stdout)
	if opts.format == "json" {
		records := make([]models.GeneratedRecord, len(result.Records))
		for i, rec := range result.Records {
			records[i] = document.ToGeneratedRecord(rec)
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(models.GenerateResponse{Seed: result.Seed, Records: records}); err != nil {
			return fmt.Errorf("failed to encode records: %w", err)
		}
	} else {
		for _, rec := range result.Records {
			if _, err := fmt.Fprintf(out, "%s\n%s\n\n", rec.Line1, rec.Line2); err != nil {
				return fmt.Errorf("failed to write records: %w", err)
			}
		}
	}
	return out.Flush()
}

func serve(config Config, generatorConfig mrz.Config, m *metrics.Metrics, gatherer prometheus.Gatherer) error {
	slog.Info("hosting on", "host", config.ServerConfig.Host, "port", config.ServerConfig.Port)

	batchStorage, err := createBatchStorage(&config)
	if err != nil {
		return fmt.Errorf("failed to instantiate batch storage: %w", err)
	}

	serverState := ServerState{
		batchStorage:    batchStorage,
		generatorConfig: generatorConfig,
		workers:         config.Workers,
		maxBatchSize:    config.MaxBatchSize,
		crossCheck:      config.CrossCheck,
		metrics:         m,
		gatherer:        gatherer,
	}

	server, err := NewServer(&serverState, config.ServerConfig)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return server.ListenAndServe()
}

func readConfigFile(path string) (Config, error) {
	configBytes, err := os.ReadFile(path)

	if err != nil {
		return Config{}, err
	}

	config := DefaultConfig()
	err = json.Unmarshal(configBytes, &config)

	if err != nil {
		return Config{}, err
	}

	return config, nil
}

func applyEnvOverrides(config *Config) {
	if level := os.Getenv("MRZGEN_LOG_LEVEL"); level != "" {
		config.LogLevel = level
	}
	if storageType := os.Getenv("MRZGEN_STORAGE_TYPE"); storageType != "" {
		config.StorageType = storageType
	}
	if password := os.Getenv("MRZGEN_REDIS_PASSWORD"); password != "" {
		config.RedisConfig.Password = password
		config.RedisSentinelConfig.Password = password
	}
}

// resolveGeneratorConfig picks the vocabulary (file, inline, or built-in)
// and validates the result.
func resolveGeneratorConfig(config Config) (mrz.Config, error) {
	generatorConfig := config.Generator
	inline := generatorConfig.Vocabulary

	switch {
	case config.VocabularyPath != "":
		v, err := vocab.Load(config.VocabularyPath)
		if err != nil {
			return mrz.Config{}, err
		}
		generatorConfig.Vocabulary = v
	case len(inline.GivenNames) > 0 || len(inline.Surnames) > 0 || len(inline.Nationalities) > 0:
		v, err := vocab.Prepare(inline)
		if err != nil {
			return mrz.Config{}, fmt.Errorf("invalid inline vocabulary: %w", err)
		}
		generatorConfig.Vocabulary = v
	default:
		slog.Debug("Using built-in vocabulary")
		generatorConfig.Vocabulary = vocab.Default()
	}

	// Validate through a throwaway builder so defaults are applied the same
	// way the generator applies them.
	if _, err := mrz.NewBuilder(generator.NewSource(1, 0), generatorConfig); err != nil {
		return mrz.Config{}, err
	}
	return generatorConfig, nil
}

func createBatchStorage(config *Config) (BatchStorage, error) {
	ttl := time.Duration(config.BatchTtlSeconds) * time.Second
	if config.StorageType == "redis" {
		slog.Info("Using redis batch storage")
		client, err := redis.NewRedisClient(&config.RedisConfig)
		if err != nil {
			return nil, err
		}
		return NewRedisBatchStorage(client, config.RedisConfig.Namespace, ttl), nil
	}
	if config.StorageType == "redis_sentinel" {
		slog.Info("Using redis sentinel batch storage")
		client, err := redis.NewRedisSentinelClient(&config.RedisSentinelConfig)
		if err != nil {
			return nil, err
		}
		return NewRedisBatchStorage(client, config.RedisSentinelConfig.Namespace, ttl), nil
	}
	if config.StorageType == "memory" {
		slog.Info("Using in memory batch storage")
		return NewInMemoryBatchStorage(), nil
	}
	return nil, fmt.Errorf("%v is not a valid storage type", config.StorageType)
}
