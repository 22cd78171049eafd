package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"destpick/internal/domain"
	"destpick/internal/eventbus"
	"destpick/internal/logging"
)

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDestinationsSuccess(t *testing.T) {
	logging.Discard()
	srv := serve(t, http.StatusOK, `{"success":true,"data":[
		{"id":"1","name":"Paris","slug":"paris"},
		{"id":"2","name":"Rome","slug":"rome","country":"Italy"}
	]}`)

	dests, err := NewClient(srv.URL).Destinations(context.Background())
	require.NoError(t, err)
	require.Len(t, dests, 2)
	assert.Equal(t, domain.Destination{ID: "1", Name: "Paris", Slug: "paris"}, dests[0])
	assert.Equal(t, "Italy", dests[1].Country)
}

func TestDestinationsEmptyData(t *testing.T) {
	logging.Discard()
	srv := serve(t, http.StatusOK, `{"success":true}`)

	dests, err := NewClient(srv.URL).Destinations(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, dests)
	assert.Empty(t, dests)
}

func TestDestinationsFailures(t *testing.T) {
	logging.Discard()
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"success false", http.StatusOK, `{"success":false,"data":[]}`},
		{"success false with message", http.StatusOK, `{"success":false,"error":"db down"}`},
		{"server error", http.StatusInternalServerError, `{"success":true,"data":[]}`},
		{"malformed body", http.StatusOK, `<html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, tt.status, tt.body)
			dests, err := NewClient(srv.URL).Destinations(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrCatalogUnavailable)
			assert.Nil(t, dests)
		})
	}
}

func TestDestinationsNetworkError(t *testing.T) {
	logging.Discard()
	srv := serve(t, http.StatusOK, `{}`)
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, WithTimeout(time.Second)).Destinations(context.Background())
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
}

// countingTransport fails every request and counts the attempts
type countingTransport struct {
	calls atomic.Int32
}

func (c *countingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	c.calls.Add(1)
	return nil, errors.New("connection reset")
}

func TestDestinationsNeverRetries(t *testing.T) {
	logging.Discard()
	transport := &countingTransport{}
	client := NewClient("http://catalog.test/api/destinations",
		WithHTTPClient(&http.Client{Transport: transport}))

	_, err := client.Destinations(context.Background())
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
	assert.Equal(t, int32(1), transport.calls.Load())
}

func TestDestinationsHonorsContext(t *testing.T) {
	logging.Discard()
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(srv.URL).Destinations(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
}

func TestDestinationsPublishesEvents(t *testing.T) {
	logging.Discard()
	bus := eventbus.New()
	defer bus.Close()

	loaded := make(chan eventbus.DomainEvent, 1)
	failed := make(chan eventbus.DomainEvent, 1)
	bus.Subscribe(eventbus.EventCatalogLoaded, func(e eventbus.DomainEvent) { loaded <- e })
	bus.Subscribe(eventbus.EventCatalogFailed, func(e eventbus.DomainEvent) { failed <- e })

	ok := serve(t, http.StatusOK, `{"success":true,"data":[{"id":"1","name":"Oslo","slug":"oslo"}]}`)
	_, err := NewClient(ok.URL, WithBus(bus)).Destinations(context.Background())
	require.NoError(t, err)

	select {
	case e := <-loaded:
		ev := e.(eventbus.CatalogLoadedEvent)
		assert.Equal(t, 1, ev.Count)
		assert.Equal(t, ok.URL, ev.Source)
	case <-time.After(2 * time.Second):
		t.Fatal("loaded event not published")
	}

	bad := serve(t, http.StatusBadGateway, ``)
	_, err = NewClient(bad.URL, WithBus(bus)).Destinations(context.Background())
	require.Error(t, err)

	select {
	case e := <-failed:
		ev := e.(eventbus.CatalogFailedEvent)
		assert.ErrorIs(t, ev.Err, ErrCatalogUnavailable)
	case <-time.After(2 * time.Second):
		t.Fatal("failed event not published")
	}
}
