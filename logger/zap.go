package logger

import "go.uber.org/zap"

// New builds the process logger. cleanup flushes buffered entries.
func New(isProd bool) (logger *zap.Logger, cleanup func() error, err error) {
	if isProd {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, nil, err
	}

	cleanup = func() error { return logger.Sync() }
	return logger, cleanup, nil
}

func OrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
