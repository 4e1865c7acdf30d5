package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	AMQPURL         string
	CartStorePath   string
	AuthSecret      string
	SessionTTL      time.Duration
	OTPCodeTTL      time.Duration
	DeliveryFee     float64
	RewardPoints    int
	SchedulerPoll   time.Duration
	SchedulerBatch  int
	WorkerPoolSize  int
	ShutdownTimeout time.Duration
}

const (
	defaultRunAddress      = ":8080"
	defaultAuthSecret      = "change-me-in-production"
	defaultCartStorePath   = "nebula-cart.db"
	defaultSessionTTL      = 24 * time.Hour
	defaultOTPCodeTTL      = 5 * time.Minute
	defaultDeliveryFee     = 50.00
	defaultRewardPoints    = 10
	defaultSchedulerPoll   = 15 * time.Second
	defaultSchedulerBatch  = 32
	defaultWorkerPoolSize  = 4
	defaultShutdownTimeout = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		AMQPURL:         getString(lookup, "AMQP_URL", ""),
		CartStorePath:   getString(lookup, "CART_STORE_PATH", defaultCartStorePath),
		AuthSecret:      getString(lookup, "AUTH_SECRET", defaultAuthSecret),
		SessionTTL:      getDuration(lookup, "SESSION_TTL", defaultSessionTTL),
		OTPCodeTTL:      getDuration(lookup, "OTP_CODE_TTL", defaultOTPCodeTTL),
		DeliveryFee:     getFloat(lookup, "DELIVERY_FEE", defaultDeliveryFee),
		RewardPoints:    getInt(lookup, "REWARD_POINTS_PER_ORDER", defaultRewardPoints),
		SchedulerPoll:   getDuration(lookup, "SCHEDULER_POLL_INTERVAL", defaultSchedulerPoll),
		SchedulerBatch:  getInt(lookup, "SCHEDULER_BATCH_SIZE", defaultSchedulerBatch),
		WorkerPoolSize:  getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("nebula", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.SchedulerPoll.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.AMQPURL, "r", cfg.AMQPURL, "AMQP broker URL for the status feed")
	fs.StringVar(&cfg.CartStorePath, "cart-store", cfg.CartStorePath, "Path to the local cart store file")
	fs.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "Secret for signing session tokens")
	fs.Float64Var(&cfg.DeliveryFee, "delivery-fee", cfg.DeliveryFee, "Flat delivery fee added to order subtotal")
	fs.IntVar(&cfg.RewardPoints, "reward-points", cfg.RewardPoints, "Loyalty points awarded per placed order")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent scheduler workers")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between scheduled order polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.SchedulerBatch, "poll-batch", cfg.SchedulerBatch, "Maximum scheduled orders per polling batch")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.SchedulerPoll, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("AUTH_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read auth secret file: %w", err)
		}
		cfg.AuthSecret = string(content)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.SchedulerBatch <= 0 {
		cfg.SchedulerBatch = defaultSchedulerBatch
	}

	if cfg.SchedulerPoll <= 0 {
		cfg.SchedulerPoll = defaultSchedulerPoll
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}

	if cfg.OTPCodeTTL <= 0 {
		cfg.OTPCodeTTL = defaultOTPCodeTTL
	}

	if cfg.DeliveryFee < 0 {
		return nil, fmt.Errorf("delivery fee must not be negative")
	}

	if cfg.RewardPoints < 0 {
		return nil, fmt.Errorf("reward points must not be negative")
	}

	if cfg.CartStorePath == "" {
		return nil, fmt.Errorf("cart store path must be provided")
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.AMQPURL == "" {
		return nil, fmt.Errorf("AMQP broker URL must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(lookup envLookup, key string, def float64) float64 {
	if v, ok := lookup(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
