package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))

	tel := NewTelemetry(OrchestratorServiceConfig)
	ctx := WithTelemetry(context.Background(), tel)
	assert.Same(t, tel, FromContext(ctx))
	assert.Equal(t, "service-orchestrator", FromContext(ctx).ServiceName())
}

func TestConfigBuilders(t *testing.T) {
	cfg := OrchestratorServiceConfig.WithOTLPEndpoint("collector:4318").WithVersion("2.0.0")

	assert.Equal(t, "collector:4318", cfg.OTLPEndpoint)
	assert.Equal(t, "2.0.0", cfg.ServiceVersion)
	assert.Empty(t, OrchestratorServiceConfig.OTLPEndpoint)
}

func TestRecordWithoutTelemetry(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordCounter(context.Background(), "saga_total", "sagas", 1)
		RecordHistogram(context.Background(), "saga_duration_seconds", "duration", 0.2)
	})
}

func TestMiddleware(t *testing.T) {
	tel := NewTelemetry(OrchestratorServiceConfig)

	var seen *Telemetry
	r := chi.NewRouter()
	r.Use(Middleware(tel))
	r.Get("/sagas/{id}", func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sagas/abc", nil))

	require.NotNil(t, seen)
	assert.Same(t, tel, seen)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatusClass(t *testing.T) {
	tests := map[int]string{
		101: "1xx",
		200: "2xx",
		302: "3xx",
		409: "4xx",
		502: "5xx",
		0:   "unknown",
	}

	for code, want := range tests {
		assert.Equal(t, want, statusClass(code), code)
	}
}
