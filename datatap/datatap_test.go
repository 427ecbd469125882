package datatap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chroniclelabs/chronicle-cli/client"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	api, err := client.New(client.Config{BaseURL: server.URL})
	require.NoError(t, err)
	return NewService(api)
}

func TestCreate(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/dataTaps", r.URL.Path)

		var got DataTap
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "projects/p/topics/t", got.CloudPubsub.Topic)

		got.TapID = "tap-1"
		_ = json.NewEncoder(w).Encode(got)
	})

	created, err := svc.Create(context.Background(), &DataTap{
		DisplayName:   "AllEvents",
		CloudPubsub:   &CloudPubsub{Topic: "projects/p/topics/t"},
		SerializedFmt: SinkFormatJSON,
	})
	require.NoError(t, err)
	assert.Equal(t, "tap-1", created.TapID)
}

func TestCreateRequiresTopic(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be issued without a topic")
	})

	_, err := svc.Create(context.Background(), &DataTap{DisplayName: "NoSink"})
	require.Error(t, err)
}

func TestListGetDelete(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/dataTaps", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"dataTaps":[{"tapId":"tap-1","displayName":"AllEvents"}]}`))
	})
	mux.HandleFunc("GET /v1/dataTaps/tap-1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tapId":"tap-1","displayName":"AllEvents"}`))
	})
	mux.HandleFunc("DELETE /v1/dataTaps/tap-1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	svc := newTestService(t, mux.ServeHTTP)
	ctx := context.Background()

	taps, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, taps, 1)

	tap, err := svc.Get(ctx, "tap-1")
	require.NoError(t, err)
	assert.Equal(t, "AllEvents", tap.DisplayName)

	require.NoError(t, svc.Delete(ctx, "tap-1"))
}
