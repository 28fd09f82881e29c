package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/uiachain/uianode/internal/amount"
	"github.com/uiachain/uianode/internal/platform/config"
	"github.com/uiachain/uianode/internal/platform/db"
	"github.com/uiachain/uianode/internal/platform/node"
	"github.com/uiachain/uianode/internal/pool"
	"github.com/uiachain/uianode/internal/transfer"
	"github.com/uiachain/uianode/pkg/scheduler"

	"github.com/tokenized/pkg/logger"
)

var (
	buildVersion = "unknown"
	buildDate    = "unknown"
	buildUser    = "unknown"
)

// UIA Ledger Node Daemon
//
func main() {
	// -------------------------------------------------------------------------
	// Logging

	logPath := os.Getenv("LOG_FILE_PATH")
	ctx := node.ContextWithLogger(context.Background(),
		strings.ToUpper(os.Getenv("DEVELOPMENT")) == "TRUE",
		strings.ToUpper(os.Getenv("LOG_FORMAT")) == "TEXT", logPath)

	// -------------------------------------------------------------------------
	// Config

	cfg, err := config.Environment()
	if err != nil {
		logger.Fatal(ctx, "main : Parsing Config : %s", err)
	}

	cfgSafe := config.SafeConfig(*cfg)
	cfgJSON, err := json.MarshalIndent(cfgSafe, "", "    ")
	if err != nil {
		logger.Fatal(ctx, "main : Marshalling Config to JSON : %s", err)
	}

	// -------------------------------------------------------------------------
	// App Starting

	logger.Info(ctx, "main : Started : Application Initializing")
	defer logger.Info(ctx, "main : Completed")

	logger.Info(ctx, "main : Build %v (%v on %v)", buildVersion, buildUser, buildDate)
	logger.Info(ctx, "main : Config : %v", string(cfgJSON))

	// -------------------------------------------------------------------------
	// Storage

	masterDB, err := db.New(&db.StorageConfig{
		Bucket:     cfg.Storage.Bucket,
		Root:       cfg.Storage.Root,
		Region:     cfg.AWS.Region,
		AccessKey:  cfg.AWS.AccessKeyID,
		Secret:     cfg.AWS.SecretAccessKey,
		MaxRetries: cfg.AWS.MaxRetries,
		RetryDelay: cfg.AWS.RetryDelay,
	})
	if err != nil {
		logger.Fatal(ctx, "main : Register DB : %s", err)
	}
	defer masterDB.Close()

	if err := masterDB.StatusCheck(ctx); err != nil {
		logger.Fatal(ctx, "main : Storage status check : %s", err)
	}

	// -------------------------------------------------------------------------
	// Transaction handler

	feeValue, err := amount.Parse(cfg.Node.FeeValue)
	if err != nil {
		logger.Fatal(ctx, "main : Invalid fee value : %s", err)
	}

	nodeConfig := &node.Config{
		OperatorName: cfg.Node.OperatorName,
		Version:      cfg.Node.Version,
		FeeValue:     feeValue,
		IsTest:       cfg.Node.IsTest,
	}

	// The unconfirmed ledger is scoped to node uptime. A restart starts
	// over from an empty pool.
	unconfirmed := pool.New()

	handler := transfer.NewTransfer(masterDB, nodeConfig, unconfirmed)

	logger.Info(ctx, "main : Transfer handler ready : operator %s, fee %s",
		cfg.Node.OperatorName, handler.CalculateFee(ctx, nil).String())

	// -------------------------------------------------------------------------
	// Maintenance

	sch := scheduler.Scheduler{}
	sch.Schedule(ctx, scheduler.NewPeriodicTask("health", func(ctx context.Context) {
		if err := masterDB.StatusCheck(ctx); err != nil {
			logger.Error(ctx, "main : Storage status check : %s", err)
		}
	}, time.Minute))

	schErrors := make(chan error, 1)
	go func() {
		schErrors <- sch.Run(ctx)
	}()

	// -------------------------------------------------------------------------
	// Shutdown

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, os.Interrupt, syscall.SIGTERM)

	// The host pipeline drives the handler. Until one is embedded this
	// process only keeps storage warm and reports health.
	select {
	case err := <-schErrors:
		if err != nil {
			logger.Error(ctx, "main : Scheduler : %s", err)
		}
	case sig := <-osSignals:
		logger.Info(ctx, "main : Shutting down : %v", sig)
		sch.Stop(ctx)
	}
}
