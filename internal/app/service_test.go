package app

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/pianao-store/internal/config"

	"go.uber.org/zap"
)

type fakeService struct {
	name     string
	startErr error
	block    bool

	mu      sync.Mutex
	stopped bool
	order   *[]string
}

func (f *fakeService) Name() string { return f.name }

func (f *fakeService) Start(ctx context.Context) error {
	if f.block {
		<-ctx.Done()
		return nil
	}
	return f.startErr
}

func (f *fakeService) Stop(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
	if f.order != nil {
		*f.order = append(*f.order, f.name)
	}
	return nil
}

func TestRunnerStopsAllWhenOneFails(t *testing.T) {
	var order []string
	failing := &fakeService{name: "worker", startErr: errors.New("boom"), order: &order}
	blocking := &fakeService{name: "http", block: true, order: &order}

	err := NewRunner(blocking, failing).Run(context.Background(), time.Second, zap.NewNop().Sugar())
	if err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
	if !failing.stopped || !blocking.stopped {
		t.Fatalf("all services should be stopped")
	}
	if len(order) != 2 || order[0] != "worker" || order[1] != "http" {
		t.Fatalf("services should stop in reverse order, got %v", order)
	}
}

func TestRunnerReturnsNilOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	svc := &fakeService{name: "http", block: true}
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	if err := NewRunner(svc).Run(ctx, time.Second, nil); err != nil {
		t.Fatalf("expected nil on cancel, got %v", err)
	}
}

func TestIsValidMode(t *testing.T) {
	for _, mode := range []string{ModeAll, ModeAPI, ModeWorker} {
		if !IsValidMode(mode) {
			t.Fatalf("mode %s should be valid", mode)
		}
	}
	if IsValidMode("cron") {
		t.Fatalf("unexpected valid mode")
	}
}

func TestHTTPServiceRunsStopHooksAfterShutdown(t *testing.T) {
	svc := NewHTTPService(config.ServerConfig{Host: "127.0.0.1", Port: "0"}, http.NewServeMux())
	var calls []string
	svc.OnStop(func(context.Context) { calls = append(calls, "wait_emails") })
	svc.OnStop(nil)
	svc.OnStop(func(context.Context) { calls = append(calls, "second") })

	if err := svc.Stop(context.Background()); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	if len(calls) != 2 || calls[0] != "wait_emails" || calls[1] != "second" {
		t.Fatalf("unexpected hook calls: %v", calls)
	}
}
