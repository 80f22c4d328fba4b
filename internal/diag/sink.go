package diag

import (
	"fmt"
	"log/slog"

	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/internal/logging"
	"github.com/kellerkompanie/kellerkompanie-arma-class-parser/token"
)

// Sink collects warnings for a single top-level ParseFile/ParseString
// call, the same scope as the macro table it travels alongside. Every
// warning is also forwarded to an slog.Logger so a caller who only
// wants log output doesn't have to drain Warnings().
type Sink struct {
	logger   *slog.Logger
	warnings []Warning
}

// NewSink builds a Sink that also logs through logger. A nil logger
// discards log output but still records warnings.
func NewSink(logger *slog.Logger) *Sink {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Sink{logger: logger}
}

// Warn records a warning and logs it.
func (s *Sink) Warn(kind WarningKind, pos token.Pos, format string, args ...any) {
	w := Warning{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
	s.warnings = append(s.warnings, w)
	s.logger.Warn(w.Message, "kind", w.Kind.String(), "pos", w.Pos.String())
}

// Warnings returns every warning recorded so far, in emission order.
func (s *Sink) Warnings() []Warning {
	return s.warnings
}
