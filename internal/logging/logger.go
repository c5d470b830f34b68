// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	*zap.SugaredLogger

	security *SecurityLogger
}

func (l *Logger) Security() SecurityLoggerInterface {
	return l.security
}

// NewLogger creates a new default logger
// it will need to be closed with
// ```
// defer logger.Desugar().Sync()
// ```
// to make sure all has been piped out before terminating
func NewLogger(l string) *Logger {
	var lvl string

	val := strings.ToLower(l)

	switch val {
	case "debug", "info", "warn", "error":
		lvl = val
	default:
		lvl = "error"
	}

	rawJSON := []byte(
		`{
			"level": "` + lvl + `",
			"encoding": "json",
			"outputPaths": ["stdout"],
			"errorOutputPaths": ["stdout","stderr"],
			"encoderConfig": {
				"messageKey": "message",
				"levelKey": "severity",
				"levelEncoder": "lowercase",
				"timeKey": "@timestamp",
				"timeEncoder": "rfc3339nano"
			}
		}`,
	)

	config := zap.NewProductionConfig()

	if err := json.Unmarshal(rawJSON, &config); err != nil {
		panic(err)
	}

	config.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder

	logger := zap.Must(config.Build())
	logger = logger.With(zap.String("app", "oauth2-login"))

	return &Logger{
		SugaredLogger: logger.Sugar(),
		security:      newSecurityLogger(logger),
	}
}
