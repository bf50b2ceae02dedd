package grace

import (
	"context"
	"errors"
	"os"
	"syscall"
	"testing"
	"time"
)

func TestHold_Shutdown(t *testing.T) {
	var paused, resumed int
	boom := errors.New("close failed")

	h := NewHold(func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			t.Fatal("shutdown context must carry a deadline")
		}
		return boom
	}, nil).
		On(syscall.SIGUSR1, func() { paused++ }).
		On(syscall.SIGUSR2, func() { resumed++ }).
		Timeout(time.Second)

	signals := make(chan os.Signal, 4)
	signals <- syscall.SIGUSR1
	signals <- syscall.SIGUSR2
	signals <- syscall.SIGHUP
	signals <- syscall.SIGTERM

	if err := h.wait(signals); err != boom {
		t.Fatalf("want %v, got %v", boom, err)
	}

	if paused != 1 || resumed != 1 {
		t.Fatalf("hooks ran paused=%d resumed=%d", paused, resumed)
	}
}

func TestHold_ClosedChannel(t *testing.T) {
	h := NewHold(func(ctx context.Context) error { return nil }, nil)

	signals := make(chan os.Signal)
	close(signals)
	if err := h.wait(signals); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
}

func TestNewHold_NilShutdown(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("NewHold(nil) should panic")
		}
	}()
	NewHold(nil, nil)
}
