package gtfsvalidator

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/theoremus-urban-solutions/gtfs-schedule-validator/config"
	"github.com/theoremus-urban-solutions/gtfs-schedule-validator/internal/logger"
)

// InitLogging builds the process logger from configuration. Logs go to w so
// that stdout stays free for reports.
func InitLogging(cfg config.LogConfig, w io.Writer) zerolog.Logger {
	return logger.New(w, cfg.Level, cfg.Pretty)
}
