// Package logging configures the process-wide logger. anvil2slime logs
// with bare fmt.Println/log.Fatal and carries no logging dependency;
// powershitxyz-tradeverse_api reaches for github.com/sirupsen/logrus
// for exactly this ambient concern, so that's what's adopted here to
// drive the RUST_LOG-style LITTLE_A_MAP_LOG environment variable.
package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const envVar = "LITTLE_A_MAP_LOG"

// Configure sets the global logrus level from LITTLE_A_MAP_LOG, falling
// back to Warn. verbose forces Debug regardless of the environment,
// matching the CLI's -v flag.
func Configure(verbose bool) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stderr)

	level := logrus.WarnLevel
	if raw := strings.TrimSpace(os.Getenv(envVar)); raw != "" {
		if parsed, err := logrus.ParseLevel(raw); err == nil {
			level = parsed
		}
	}
	if verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)

	return log
}
