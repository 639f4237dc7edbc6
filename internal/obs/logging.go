// Package obs contains observability utilities such as logging.
package obs

import (
	"log/slog"
	"os"
)

// Logger is the global structured logger used by the simulator.
//
// Logger writes to stderr so stdout stays free for the interactive
// session. It starts at info level; InitLogger reconfigures it.
var Logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

// InitLogger initializes the global Logger with JSON handler at the
// given level.
func InitLogger(level slog.Level) {
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	Logger = slog.New(h)
}
