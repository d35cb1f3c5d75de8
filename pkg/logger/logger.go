package logger

import "go.uber.org/zap"

// Log is the process-wide logger. It defaults to a no-op so packages can log
// unconditionally; main replaces it via Init before the server starts.
var Log = zap.NewNop()

func Init(env string) error {
	var (
		l   *zap.Logger
		err error
	)
	if env == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return err
	}
	Log = l
	return nil
}
