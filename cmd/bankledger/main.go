package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	cli_adapter "github.com/JoeShih716/go-bank-ledger/internal/app/core/adapter/in/cli"
	csv_adapter "github.com/JoeShih716/go-bank-ledger/internal/app/core/adapter/out/csv"
	memory_adapter "github.com/JoeShih716/go-bank-ledger/internal/app/core/adapter/out/memory"
	sqlite_adapter "github.com/JoeShih716/go-bank-ledger/internal/app/core/adapter/out/sqlite"
	"github.com/JoeShih716/go-bank-ledger/internal/app/core/usecase"
	"github.com/JoeShih716/go-bank-ledger/pkg/sqlite"
)

const configPath = "config/config.yaml"

type Config struct {
	// 儲存後端: "sqlite" (預設) / "csv" / "memory"
	Storage string        `yaml:"storage"`
	SQLite  sqlite.Config `yaml:"sqlite"`
	CSV     struct {
		Dir string `yaml:"dir"`
	} `yaml:"csv"`
}

func main() {
	// 1. 載入設定
	cfg := loadConfig()

	// 2. 依設定初始化儲存後端 (Driven Adapter)
	var store usecase.LedgerStore
	switch cfg.Storage {
	case "sqlite":
		dbClient, err := sqlite.NewClient(cfg.SQLite)
		if err != nil {
			log.Fatalf("Failed to open SQLite: %v", err)
		}
		defer dbClient.Close()

		store, err = sqlite_adapter.NewSQLiteLedger(dbClient)
		if err != nil {
			log.Fatalf("Failed to init SQLite ledger: %v", err)
		}
		log.Printf("Using SQLite ledger at %s", cfg.SQLite.Path)
	case "csv":
		csvLedger, err := csv_adapter.Open(cfg.CSV.Dir)
		if err != nil {
			log.Fatalf("Failed to open CSV ledger: %v", err)
		}
		defer csvLedger.Close()

		store = csvLedger
		log.Printf("Using CSV ledger in %s", cfg.CSV.Dir)
	case "memory":
		store = memory_adapter.NewMemoryLedger()
		log.Println("Using in-memory ledger (state is lost on exit)")
	default:
		log.Fatalf("Invalid storage backend: %q", cfg.Storage)
	}

	// 3. Ctrl-C 中止時結束互動迴圈
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 4. 啟動互動選單 (Driving Adapter)
	ui := cli_adapter.New(store, os.Stdin, os.Stdout)
	if err := ui.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Session ended with error: %v", err)
	}
	log.Println("Ledger closed")
}

func loadConfig() Config {
	var cfg Config
	cfgData, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(cfgData, &cfg); err != nil {
			log.Fatalf("Failed to parse config: %v", err)
		}
	case os.IsNotExist(err):
		log.Printf("No config at %s, using defaults", configPath)
	default:
		log.Fatalf("Failed to read config file: %v", err)
	}

	// 補全預設配置 (如果 yaml 沒寫)
	if cfg.Storage == "" {
		cfg.Storage = "sqlite"
	}
	if cfg.SQLite.Path == "" {
		cfg.SQLite.Path = "bank_ledger.db"
	}
	if cfg.SQLite.BusyTimeout == 0 {
		cfg.SQLite.BusyTimeout = 5 * time.Second
	}
	if cfg.SQLite.LogLevel == "" {
		cfg.SQLite.LogLevel = "error"
	}
	if cfg.CSV.Dir == "" {
		cfg.CSV.Dir = "data"
	}
	return cfg
}
