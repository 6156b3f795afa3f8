package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/eventos-bot/models"
)

// newTestClient points a client at srv with a short timeout and
// millisecond backoff so retry tests run instantly.
func newTestClient(srv *httptest.Server, maxRetries int) *Client {
	c := New(srv.URL, 50*time.Millisecond, maxRetries)
	c.backoffUnit = time.Millisecond
	return c
}

func TestLoginDecodesToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		w.Write([]byte(`{"token":"tok-1","expiresAt":"2027-01-01T00:00:00"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv, 3)
	token, err := c.Login(context.Background(), models.Credentials{Email: "a@b.co", Password: "secret12"})
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token.Token)
	assert.False(t, token.Expired())
}

func TestBearerTokenHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		w.Write([]byte(`{"id":"u1","email":"a@b.co"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv, 3)
	user, err := c.Me(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
}

func TestRetriesTimeoutsThenSucceeds(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) <= 2 {
			time.Sleep(200 * time.Millisecond)
			return
		}
		w.Write([]byte(`{"id":"u1","email":"a@b.co"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv, 5)
	user, err := c.Me(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, int32(3), hits.Load(), "two timed-out attempts plus the success")
}

func TestTimeoutAfterExhaustedRetries(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := newTestClient(srv, 3)
	_, err := c.Me(context.Background(), "tok")
	require.Error(t, err)
	assert.True(t, IsTimeout(err))
	assert.Equal(t, int32(3), hits.Load(), "exactly maxRetries attempts")
}

func TestTransportErrorNotRetried(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from now on

	c := newTestClient(srv, 5)
	_, err := c.Me(context.Background(), "tok")

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, KindTransport, reqErr.Kind)
}

func TestStatusErrorNotRetried(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := newTestClient(srv, 5)
	_, err := c.Me(context.Background(), "tok")

	assert.True(t, IsForbidden(err))
	assert.Equal(t, int32(1), hits.Load(), "the backend answered, so no retry")
}

func TestMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":`))
	}))
	defer srv.Close()

	c := newTestClient(srv, 3)
	_, err := c.Me(context.Background(), "tok")

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, KindJSONParse, reqErr.Kind)
}

func TestEmptyBodyIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := newTestClient(srv, 3)
	assert.NoError(t, c.Logout(context.Background(), "tok"))
}

func TestEventsQueryParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/evento", r.URL.Path)
		assert.Equal(t, "12", r.URL.Query().Get("precioPesosMin"))
		assert.Equal(t, "Musica", r.URL.Query().Get("categoria"))
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	minPrice := 12.0
	category := "Musica"
	c := newTestClient(srv, 3)
	events, err := c.Events(context.Background(), models.EventFilter{
		MinPrice: &minPrice,
		Category: &category,
	}, "tok")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestEventByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/evento/e1", r.URL.Path)
		w.Write([]byte(`{"id":"e1","titulo":"Recital","fechaHoraInicio":"2027-03-15T20:00:00","precio":1500}`))
	}))
	defer srv.Close()

	c := newTestClient(srv, 3)
	event, err := c.Event(context.Background(), "e1", "tok")
	require.NoError(t, err)
	assert.Equal(t, "Recital", event.Title)
	assert.Equal(t, 1500.0, event.Price)
	assert.Equal(t, 2027, event.StartDateTime.Year())
}

func TestSetEventOpenBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/evento/e1", r.URL.Path)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"abierto":false}`, string(body))
	}))
	defer srv.Close()

	c := newTestClient(srv, 3)
	assert.NoError(t, c.SetEventOpen(context.Background(), "e1", false, "tok"))
}

func TestContextCancelAbortsBackoff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := New(srv.URL, 50*time.Millisecond, 10)
	c.backoffUnit = 10 * time.Second

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := c.Me(ctx, "tok")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second, "cancel interrupts the backoff wait")
}
