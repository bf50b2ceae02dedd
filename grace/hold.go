package grace

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

const DefaultShutdownTimeout = time.Second * 5

type Hold struct {
	signalChan chan os.Signal
	shutdown   func(ctx context.Context) (err error)
	hooks      map[os.Signal]func()
	timeout    time.Duration
	logger     *zap.Logger
}

func NewHold(shutdown func(ctx context.Context) (err error), logger *zap.Logger) *Hold {
	if shutdown == nil {
		panic("param shutdown must be gave")
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Hold{
		signalChan: make(chan os.Signal, 1),
		shutdown:   shutdown,
		hooks:      make(map[os.Signal]func()),
		timeout:    DefaultShutdownTimeout,
		logger:     logger,
	}
}

// On runs hook every time sig arrives. SIGINT and SIGTERM always shut down.
func (h *Hold) On(sig os.Signal, hook func()) *Hold {
	h.hooks[sig] = hook
	return h
}

func (h *Hold) Timeout(timeout time.Duration) *Hold {
	if timeout > 0 {
		h.timeout = timeout
	}
	return h
}

// Start blocks until SIGINT or SIGTERM and returns the shutdown error.
func (h *Hold) Start() (err error) {
	signals := []os.Signal{syscall.SIGINT, syscall.SIGTERM}
	for sig := range h.hooks {
		signals = append(signals, sig)
	}

	signal.Notify(h.signalChan, signals...)
	defer signal.Stop(h.signalChan)

	return h.wait(h.signalChan)
}

func (h *Hold) wait(signals <-chan os.Signal) (err error) {
	for sig := range signals {
		switch sig {
		case syscall.SIGINT, syscall.SIGTERM:
			h.logger.Info("shutting down", zap.Stringer("signal", sig))
			ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
			err = h.shutdown(ctx)
			cancel()
			return err
		default:
			if hook, ok := h.hooks[sig]; ok {
				h.logger.Info("signal received", zap.Stringer("signal", sig))
				hook()
			}
		}
	}
	return nil
}
