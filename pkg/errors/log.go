package errors

import (
	"os"

	"github.com/charmbracelet/log"
)

// LogHandler is an ErrorHandler that writes through a charmbracelet logger.
type LogHandler struct {
	// Verbose enables stack traces in the output.
	Verbose bool

	logger *log.Logger
}

// NewLogHandler returns a LogHandler writing to logger.
// A nil logger writes to stderr with the "strata" prefix.
func NewLogHandler(logger *log.Logger) *LogHandler {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "strata"})
	}
	return &LogHandler{logger: logger}
}

// HandleError logs a StrataError.
func (h *LogHandler) HandleError(err *StrataError) {
	if err == nil {
		return
	}
	kv := []any{"op", err.Op, "kind", err.Kind.String(), "err", err.Err}
	if h.Verbose && err.StackTrace != "" {
		kv = append(kv, "stack", err.StackTrace)
	}
	h.log().Error("operation failed", kv...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	kv := []any{"value", err.Value}
	if err.Op != "" {
		kv = append([]any{"op", err.Op}, kv...)
	}
	if h.Verbose && err.StackTrace != "" {
		kv = append(kv, "stack", err.StackTrace)
	}
	h.log().Error("recovered panic", kv...)
}

func (h *LogHandler) log() *log.Logger {
	if h.logger == nil {
		return log.Default()
	}
	return h.logger
}
