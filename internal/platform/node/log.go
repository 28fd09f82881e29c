package node

import (
	"context"

	"github.com/tokenized/pkg/logger"
)

// ContextWithLogger sets up logging on the context. When development is
// true debug level entries are included. When text is true the log is
// formatted as text instead of JSON. When filePath is not empty the log is
// also written to that file.
func ContextWithLogger(ctx context.Context, development, text bool, filePath string) context.Context {
	var logConfig *logger.Config
	if text {
		logConfig = logger.NewDevelopmentConfig()
		logConfig.IsText = true
	} else {
		logConfig = logger.NewDevelopmentConfig()
	}

	if !development {
		logConfig.Main.MinLevel = logger.LevelInfo
	}

	if len(filePath) > 0 {
		logConfig.Main.AddFile(filePath)
	}

	return logger.ContextWithLogConfig(ctx, logConfig)
}

// ContextWithNoLogger clears any logging config on the context.
func ContextWithNoLogger(ctx context.Context) context.Context {
	return logger.ContextWithNoLogger(ctx)
}

// Log adds an info level entry to the log.
func Log(ctx context.Context, format string, values ...interface{}) error {
	return logger.LogDepth(ctx, logger.LevelInfo, 1, format, values...)
}

// LogVerbose adds a verbose level entry to the log.
func LogVerbose(ctx context.Context, format string, values ...interface{}) error {
	return logger.LogDepth(ctx, logger.LevelVerbose, 1, format, values...)
}

// LogWarn adds a warning level entry to the log.
func LogWarn(ctx context.Context, format string, values ...interface{}) error {
	return logger.LogDepth(ctx, logger.LevelWarn, 1, format, values...)
}
