package utils

import (
	"log"
	"os"
)

// LoggerConfig controls the shared application logger.
type LoggerConfig struct {
	Output *os.File
}

// InitLogger initializes and returns the application logger.
func InitLogger(config ...LoggerConfig) *log.Logger {
	var cfg LoggerConfig
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	return log.New(cfg.Output, "[NetQuest] ", log.LstdFlags|log.LUTC)
}
