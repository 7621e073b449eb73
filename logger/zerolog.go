package logger

import (
	"github.com/rs/zerolog"
)

type zerologAdapter struct {
	log zerolog.Logger
}

var _ Logger = &zerologAdapter{}

// NewZerolog adapts a zerolog.Logger to the Logger interface.
// Every entry is tagged with component=basket.
func NewZerolog(log zerolog.Logger) Logger {
	return &zerologAdapter{
		log: log.With().Str("component", "basket").Logger(),
	}
}

func (z *zerologAdapter) Debugf(format string, args ...any) {
	z.log.Debug().Msgf(format, args...)
}

func (z *zerologAdapter) Infof(format string, args ...any) {
	z.log.Info().Msgf(format, args...)
}

func (z *zerologAdapter) Warnf(format string, args ...any) {
	z.log.Warn().Msgf(format, args...)
}

func (z *zerologAdapter) Errorf(format string, args ...any) {
	z.log.Error().Msgf(format, args...)
}
