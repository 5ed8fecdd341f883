package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"investhub/internal/core/domain"
	"investhub/internal/core/services"

	"github.com/stretchr/testify/require"
)

func TestSessionStorePublishReachesSubscribers(t *testing.T) {
	store := services.NewSessionStore()
	events, cancel := store.Subscribe()
	defer cancel()

	store.Publish(domain.SessionEvent{
		Type:    domain.EventSignedIn,
		Session: &domain.Session{UserID: "u1", Email: "a@b.c"},
	})

	select {
	case evt := <-events:
		require.Equal(t, domain.EventSignedIn, evt.Type)
		require.Equal(t, "u1", evt.Session.UserID)
	case <-time.After(time.Second):
		t.Fatal("event never arrived")
	}
}

func TestSessionStoreTracksCurrent(t *testing.T) {
	store := services.NewSessionStore()
	ctx := context.Background()

	current, err := store.Current(ctx)
	require.NoError(t, err)
	require.Nil(t, current)

	store.Publish(domain.SessionEvent{
		Type:    domain.EventSignedIn,
		Session: &domain.Session{UserID: "u1"},
	})
	current, err = store.Current(ctx)
	require.NoError(t, err)
	require.Equal(t, "u1", current.UserID)

	store.Publish(domain.SessionEvent{Type: domain.EventSignedOut})
	current, err = store.Current(ctx)
	require.NoError(t, err)
	require.Nil(t, current)
}

func TestSessionStoreCancelStopsDelivery(t *testing.T) {
	store := services.NewSessionStore()
	events, cancel := store.Subscribe()
	cancel()

	store.Publish(domain.SessionEvent{Type: domain.EventSignedOut})

	select {
	case evt := <-events:
		t.Fatalf("event delivered after cancel: %v", evt.Type)
	default:
	}
}

func TestSessionStorePublishRacingCancel(t *testing.T) {
	store := services.NewSessionStore()

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				store.Publish(domain.SessionEvent{Type: domain.EventSignedOut})
			}
		}
	}()

	// Subscribers cancelling mid-publish must never crash the publisher
	for i := 0; i < 256; i++ {
		_, cancel := store.Subscribe()
		cancel()
	}

	close(done)
	wg.Wait()
}
