package config

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

func NewLogger(config *viper.Viper) *logrus.Logger {
	log := logrus.New()

	level := config.GetInt32("log.level")
	if level == 0 {
		level = int32(logrus.InfoLevel)
	}
	log.SetLevel(logrus.Level(level))
	log.SetFormatter(&logrus.JSONFormatter{})

	return log
}
