// Package catapult is the root package of the transaction engine. It holds the
// few process-wide values shared by the sub-packages: the logger and the list
// of prometheus collectors.
//
// The engine itself lives in core/: the numeric and identifier primitives, the
// transaction model, the binary and JSON codecs and the signing protocol.
package catapult

import (
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// EnvLogLevel is the name of the environment variable to change the logging
// level.
const EnvLogLevel = "LOG_LEVEL"

const defaultLevel = zerolog.DebugLevel

var logout = zerolog.ConsoleWriter{
	Out:        os.Stdout,
	TimeFormat: time.RFC3339,
}

// Logger is a globally available logger instance. By default, it only prints
// debug level messages but it can be changed through a global variable.
var Logger = zerolog.New(logout).
	With().Timestamp().Logger().
	With().Caller().Logger().
	Level(levelFromEnv())

// PromCollectors exposes the Prometheus collectors created by the packages.
// It is up to the caller to register them on a registry.
var PromCollectors []prometheus.Collector

func levelFromEnv() zerolog.Level {
	raw := os.Getenv(EnvLogLevel)
	if raw == "" {
		return defaultLevel
	}

	lvl, err := zerolog.ParseLevel(raw)
	if err != nil {
		return defaultLevel
	}

	return lvl
}
