package logger

import (
	"go.uber.org/zap"
)

// New builds the application logger. Production config with ISO timestamps;
// DEBUG=true switches to the development encoder.
func New(debug bool) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return log.Sugar(), nil
}
