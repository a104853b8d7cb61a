package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the application logger. Development mode uses the console
// encoder, everything else logs JSON.
func New() *zap.Logger {
	if os.Getenv("ENV") == "development" {
		log, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		return log
	}

	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	log, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return log
}
