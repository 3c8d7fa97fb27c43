package queue

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/finvault/bank-gateway/internal/core/domain"
)

type stubAuditService struct {
	processed chan domain.AuthEvent
}

func (s *stubAuditService) Process(_ context.Context, event domain.AuthEvent) error {
	s.processed <- event
	return nil
}

func TestDispatcher_DeliversEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stub := &stubAuditService{processed: make(chan domain.AuthEvent, 8)}
	d := NewDispatcher(2, stub, zerolog.Nop())
	d.Start(ctx)

	want := domain.AuthEvent{Username: "alice", Outcome: domain.AuthOutcomeSuccess, Timestamp: time.Now()}
	d.Submit(want)

	select {
	case got := <-stub.processed:
		if got.Username != want.Username || got.Outcome != want.Outcome {
			t.Fatalf("unexpected event: %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("event never processed")
	}
}

func TestDispatcher_SameUserSameWorker(t *testing.T) {
	d := NewDispatcher(4, nil, zerolog.Nop())

	first := d.shardIndex("alice")
	for i := 0; i < 10; i++ {
		if d.shardIndex("alice") != first {
			t.Fatalf("shard index not deterministic")
		}
	}
}
