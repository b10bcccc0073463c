package middlewares

import (
	"labreport-service/internal/app/config"
	"labreport-service/internal/pkg/constvars"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestAPIKeyAuth(t *testing.T) {
	testAPIKey := "test-lab-api-key-12345"
	middlewares := &Middlewares{
		Log: zap.NewNop(),
		InternalConfig: &config.InternalConfig{
			App: config.App{APIKey: testAPIKey},
		},
	}

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKeyAuth, ok := r.Context().Value(constvars.CONTEXT_API_KEY_AUTH).(bool)
		assert.True(t, ok, "CONTEXT_API_KEY_AUTH should be set")
		assert.True(t, apiKeyAuth)

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	})

	tests := []struct {
		name   string
		apiKey string
		code   int
	}{
		{"Valid API Key", testAPIKey, http.StatusOK},
		{"Missing API Key", "", http.StatusUnauthorized},
		{"Invalid API Key", "invalid-api-key", http.StatusUnauthorized},
		{"Case Sensitivity", "TEST-LAB-API-KEY-12345", http.StatusUnauthorized},
		{"Whitespace in API Key", " " + testAPIKey + " ", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/lab-reports/A-1/generate", nil)
			if tt.apiKey != "" {
				req.Header.Set(constvars.HeaderXAPIKey, tt.apiKey)
			}

			rr := httptest.NewRecorder()
			middlewares.APIKeyAuth(testHandler).ServeHTTP(rr, req)

			assert.Equal(t, tt.code, rr.Code)
			if tt.code == http.StatusOK {
				assert.Equal(t, "success", rr.Body.String())
			}
		})
	}
}

func TestAPIKeyAuth_NotConfigured(t *testing.T) {
	middlewares := &Middlewares{
		Log:            zap.NewNop(),
		InternalConfig: &config.InternalConfig{},
	}

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.Context().Value(constvars.CONTEXT_API_KEY_AUTH).(bool)
		assert.False(t, ok, "CONTEXT_API_KEY_AUTH should not be set without a configured key")
		w.WriteHeader(http.StatusOK)
	})

	methods := []string{http.MethodGet, http.MethodPost, http.MethodPut}
	for _, method := range methods {
		t.Run("Method_"+method, func(t *testing.T) {
			req := httptest.NewRequest(method, "/api/v1/lab-reports/A-1", nil)
			req.Header.Set(constvars.HeaderXAPIKey, "anything")

			rr := httptest.NewRecorder()
			middlewares.APIKeyAuth(testHandler).ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
		})
	}
}
