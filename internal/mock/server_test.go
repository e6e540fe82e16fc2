package mock

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/apiclient"
	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/types"
)

func newTestServer(t *testing.T, cfg Config) (*Server, *httptest.Server) {
	t.Helper()
	s := NewServer(&cfg, zerolog.Nop())
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func getRecords(t *testing.T, url string) (int, []types.TestRecord) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	var records []types.TestRecord
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&records))
	}
	return resp.StatusCode, records
}

func TestGenerate_RecordShapes(t *testing.T) {
	tests := []struct {
		entityType string
		keys       []string
	}{
		{"user", []string{"firstName", "lastName", "email", "age", "city"}},
		{"product", []string{"name", "price", "category", "inStock", "sku"}},
		{"order", []string{"orderId", "customerId", "total", "status", "items"}},
		{"address", []string{"street", "city", "zipCode", "country"}},
		{"payment", []string{"cardNumber", "cardType", "amount", "currency"}},
		{"widget", []string{"message"}},
	}

	_, ts := newTestServer(t, Config{Seed: 42})

	for _, tt := range tests {
		t.Run(tt.entityType, func(t *testing.T) {
			status, records := getRecords(t, ts.URL+"/api/v1/testdata/generate/"+tt.entityType+"?count=3")
			require.Equal(t, http.StatusOK, status)
			require.Len(t, records, 3)

			for _, r := range records {
				assert.Equal(t, tt.entityType, r.Type)
				assert.NotEmpty(t, r.ID)
				_, ok := r.CreatedTime()
				assert.True(t, ok, "createdAt %q should parse", r.CreatedAt)

				data, ok := r.Data.(map[string]any)
				require.True(t, ok)
				for _, k := range tt.keys {
					assert.Contains(t, data, k)
				}
				assert.Len(t, data, len(tt.keys))
			}
			assert.NotEqual(t, records[0].ID, records[1].ID)
		})
	}

	_, unknown := getRecords(t, ts.URL+"/api/v1/testdata/generate/widget?count=1")
	assert.Equal(t, "Unknown type: widget", unknown[0].Data.(map[string]any)["message"])
}

func TestGenerate_CountHandling(t *testing.T) {
	_, ts := newTestServer(t, Config{})

	status, records := getRecords(t, ts.URL+"/api/v1/testdata/generate/user")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, records, DefaultCount)

	status, records = getRecords(t, ts.URL+"/api/v1/testdata/generate/user?count=0")
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, records)

	for _, bad := range []string{"-1", "abc", "1001"} {
		status, _ = getRecords(t, ts.URL+"/api/v1/testdata/generate/user?count="+bad)
		assert.Equal(t, http.StatusBadRequest, status, bad)
	}
}

func TestGenerate_SingleObject(t *testing.T) {
	_, ts := newTestServer(t, Config{SingleObject: true})

	resp, err := http.Get(ts.URL + "/api/v1/testdata/generate/product?count=1")
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload types.GeneratePayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.False(t, payload.IsList)
	require.NotNil(t, payload.Single)
	assert.Equal(t, "product", payload.Single.Type)
}

func TestGenerate_RecordDelayHonoursCancellation(t *testing.T) {
	s, ts := newTestServer(t, Config{RecordDelay: time.Hour})

	slept := make(chan time.Duration, 1)
	s.sleep = func(ctx context.Context, d time.Duration) error {
		slept <- d
		return nil
	}

	status, records := getRecords(t, ts.URL+"/api/v1/testdata/generate/user?count=2")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, records, 2)
	assert.Equal(t, 2*time.Hour, <-slept)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
}

func TestTemplates(t *testing.T) {
	_, ts := newTestServer(t, Config{})

	resp, err := http.Get(ts.URL + "/api/v1/testdata/templates")
	require.NoError(t, err)
	defer resp.Body.Close()

	var names []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&names))
	assert.Equal(t, types.DefaultEntityTypes, names)
}

func TestNotFound(t *testing.T) {
	_, ts := newTestServer(t, Config{})

	resp, err := http.Get(ts.URL + "/api/v2/testdata/templates")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRequestLogs(t *testing.T) {
	s, ts := newTestServer(t, Config{Logging: true})

	getRecords(t, ts.URL+"/api/v1/testdata/generate/order?count=4")

	select {
	case <-s.NotifyChannel():
	case <-time.After(time.Second):
		t.Fatal("expected a log notification")
	}

	logs := s.GetLogs()
	require.Len(t, logs, 1)
	assert.Equal(t, http.MethodGet, logs[0].Method)
	assert.Equal(t, "/api/v1/testdata/generate/order", logs[0].Path)
	assert.Equal(t, "count=4", logs[0].Query)
	assert.Equal(t, "order", logs[0].EntityType)
	assert.Equal(t, 4, logs[0].Records)
	assert.Equal(t, http.StatusOK, logs[0].Status)

	s.ClearLogs()
	assert.Empty(t, s.GetLogs())
}

func TestServeListener_WorksWithAPIClient(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := NewServer(&Config{Seed: 7}, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.ServeListener(ctx, ln) }()

	client, err := apiclient.New(apiclient.Options{BaseURL: "http://" + ln.Addr().String() + DefaultBasePath})
	require.NoError(t, err)

	require.NoError(t, client.ProbeTemplates(context.Background()))
	payload, err := client.Generate(context.Background(), "payment", 5)
	require.NoError(t, err)
	assert.Len(t, payload.List, 5)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_Addresses(t *testing.T) {
	s := NewServer(&Config{Host: "0.0.0.0", Port: 9090}, zerolog.Nop())
	assert.Equal(t, "0.0.0.0:9090", s.Addr())
	assert.Equal(t, "http://0.0.0.0:9090/api/v1", s.BaseURL())

	d := NewServer(&Config{}, zerolog.Nop())
	assert.Equal(t, "localhost:8080", d.Addr())
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "mock.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("port: 9000\nrecordDelay: 100ms\nsingleObject: true\ntemplates: [user, order]\n"), 0644))

	cfg, err := LoadConfig(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 100*time.Millisecond, cfg.RecordDelay)
	assert.True(t, cfg.SingleObject)
	assert.Equal(t, []string{"user", "order"}, cfg.Templates)

	jsonPath := filepath.Join(dir, "mock.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"port": 70000}`), 0644))
	_, err = LoadConfig(jsonPath)
	assert.Error(t, err)

	txtPath := filepath.Join(dir, "mock.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte(""), 0644))
	_, err = LoadConfig(txtPath)
	assert.Error(t, err)
}
