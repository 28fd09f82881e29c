package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/uiachain/uianode/internal/platform/config"
	"github.com/uiachain/uianode/internal/platform/db"
	"github.com/uiachain/uianode/internal/platform/node"

	"github.com/tokenized/pkg/logger"
)

// newContext returns a context with logging and pipeline values installed.
func newContext() context.Context {
	ctx := node.ContextWithLogger(context.Background(),
		strings.ToUpper(os.Getenv("DEVELOPMENT")) == "TRUE",
		strings.ToUpper(os.Getenv("LOG_FORMAT")) == "TEXT",
		os.Getenv("LOG_FILE_PATH"))

	return node.ContextWithValues(ctx, time.Now())
}

// newConfigFromEnv loads runtime configuration from the environment.
func newConfigFromEnv(ctx context.Context) *config.Config {
	cfg, err := config.Environment()
	if err != nil {
		logger.Fatal(ctx, "Parsing Config : %s", err)
	}

	return cfg
}

// newMasterDB opens the ledger storage described by the config.
func newMasterDB(ctx context.Context, cfg *config.Config) *db.DB {
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
		logger.Fatal(ctx, "Register DB : %s", err)
	}

	return masterDB
}

func dumpJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	fmt.Printf("```\n%s\n```\n\n", data)
	return nil
}
