package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logger *logrus.Logger

// Logger uygulama genelindeki yapılandırılmış log örneğini döner.
func Logger() *logrus.Logger {
	if logger != nil {
		return logger
	}

	logger = logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}
