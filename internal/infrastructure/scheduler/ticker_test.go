package scheduler

import (
	"context"
	"testing"
	"time"
)

func TestTickerSchedulerFiresImmediately(t *testing.T) {
	t.Parallel()

	fired := make(chan time.Time, 1)
	s := NewTickerScheduler(time.Hour)

	err := s.Start(context.Background(), func(now time.Time) {
		select {
		case fired <- now:
		default:
		}
	})
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}
	defer func() { _ = s.Stop(context.Background()) }()

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("expected the first run to fire immediately")
	}
}

func TestTickerSchedulerIgnoresZeroInterval(t *testing.T) {
	t.Parallel()

	s := NewTickerScheduler(0)
	if err := s.Start(context.Background(), func(time.Time) {
		t.Error("job must not run with a zero interval")
	}); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("Stop error: %v", err)
	}
}
