package analyticsclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/engagement-automation-api/internal/domain"
)

var account = domain.SocialAccount{ID: "mother", ExternalID: "m-1", Platform: domain.PlatformInstagram}

func TestClient_OptimalPostingTimes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/accounts/instagram/m-1/optimal-times", r.URL.Path)
		w.Write([]byte(`{"slots":[{"hour":9,"minute":30},{"hour":25,"minute":0},{"hour":18,"minute":0}]}`))
	}))
	defer server.Close()

	client := NewClient(Config{URL: server.URL, Timeout: time.Second})

	slots, err := client.OptimalPostingTimes(context.Background(), account)
	require.NoError(t, err)
	assert.Equal(t, []domain.TimeSlot{{Hour: 9, Minute: 30}, {Hour: 18, Minute: 0}}, slots)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"slots":[{"hour":12,"minute":0}]}`))
	}))
	defer server.Close()

	client := NewClient(Config{URL: server.URL, Timeout: 5 * time.Second, RetryMax: 2})

	slots, err := client.OptimalPostingTimes(context.Background(), account)
	require.NoError(t, err)
	assert.Len(t, slots, 1)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_Unavailable(t *testing.T) {
	t.Run("Sem URL configurada", func(t *testing.T) {
		_, err := NewClient(Config{}).OptimalPostingTimes(context.Background(), account)
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("Conta desconhecida", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		_, err := NewClient(Config{URL: server.URL, Timeout: time.Second}).OptimalPostingTimes(context.Background(), account)
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}
