package forwarder

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

func TestCreateForwarder(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/forwarders", r.URL.Path)

		var got Forwarder
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "TestForwarder", got.DisplayName)

		got.Name = "forwarders/" + testForwarderID
		got.State = StateActive
		_ = json.NewEncoder(w).Encode(got)
	})

	created, err := svc.CreateForwarder(context.Background(), &Forwarder{DisplayName: "TestForwarder"})
	require.NoError(t, err)
	assert.Equal(t, "forwarders/"+testForwarderID, created.Name)
	assert.Equal(t, StateActive, created.State)
}

func TestCreateForwarderValidatesFirst(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be issued for an invalid forwarder")
	})

	_, err := svc.CreateForwarder(context.Background(), &Forwarder{})
	require.Error(t, err)
}

func TestListForwarders(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/forwarders", r.URL.Path)
		_, _ = w.Write([]byte(`{"forwarders":[{"name":"forwarders/` + testForwarderID + `","displayName":"A"}]}`))
	})

	forwarders, err := svc.ListForwarders(context.Background())
	require.NoError(t, err)
	require.Len(t, forwarders, 1)
	assert.Equal(t, "A", forwarders[0].DisplayName)
}

func TestUpdateForwarderSendsMask(t *testing.T) {
	name := "forwarders/" + testForwarderID
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/v2/"+name, r.URL.Path)
		assert.Equal(t, "display_name,config.regex_filters", r.URL.Query().Get("update_mask"))
		_, _ = w.Write([]byte(`{"name":"` + name + `","displayName":"Updated"}`))
	})

	updated, err := svc.UpdateForwarder(context.Background(),
		&Forwarder{Name: name, DisplayName: "Updated"},
		[]string{"display_name", "config.regex_filters"})
	require.NoError(t, err)
	assert.Equal(t, "Updated", updated.DisplayName)
}

func TestUpdateForwarderRequiresMask(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be issued without an update mask")
	})

	_, err := svc.UpdateForwarder(context.Background(),
		&Forwarder{Name: "forwarders/" + testForwarderID}, nil)
	require.Error(t, err)
}

func TestDeleteForwarder(t *testing.T) {
	name := "forwarders/" + testForwarderID
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/v2/"+name, r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, svc.DeleteForwarder(context.Background(), name))
}

func TestCollectorCRUD(t *testing.T) {
	forwarderName := "forwarders/" + testForwarderID
	collectorName := forwarderName + "/collectors/" + testCollectorID

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v2/"+forwarderName+"/collectors", func(w http.ResponseWriter, r *http.Request) {
		var got Collector
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		got.Name = collectorName
		got.State = StateActive
		_ = json.NewEncoder(w).Encode(got)
	})
	mux.HandleFunc("GET /v2/"+forwarderName+"/collectors", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"collectors":[{"name":"` + collectorName + `","displayName":"C"}]}`))
	})
	mux.HandleFunc("DELETE /v2/"+collectorName, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	svc := newTestService(t, mux.ServeHTTP)
	ctx := context.Background()

	created, err := svc.CreateCollector(ctx, forwarderName, &Collector{
		DisplayName: "SyslogCollector1",
		Config: &CollectorConfig{
			LogType:        "PAN_FIREWALL",
			SyslogSettings: &SyslogSettings{Protocol: "TCP", Address: "0.0.0.0", Port: 10514},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, collectorName, created.Name)

	collectors, err := svc.ListCollectors(ctx, forwarderName)
	require.NoError(t, err)
	require.Len(t, collectors, 1)

	require.NoError(t, svc.DeleteCollector(ctx, collectorName))
}

func TestCreateCollectorRejectsBadMechanism(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be issued for an invalid collector")
	})

	_, err := svc.CreateCollector(context.Background(), "forwarders/"+testForwarderID, &Collector{
		DisplayName: "Broken",
		Config: &CollectorConfig{
			LogType:        "WINDOWS_DNS",
			FileSettings:   &FileSettings{FilePath: "/p"},
			SyslogSettings: &SyslogSettings{Protocol: "TCP"},
		},
	})
	require.ErrorIs(t, err, ErrMultipleMechanisms)
}
