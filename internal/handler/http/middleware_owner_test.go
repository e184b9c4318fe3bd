package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/service"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnership(t *testing.T) {
	tests := []struct {
		name       string
		identity   string
		pathEmail  string
		wantStatus int
		wantNext   bool
	}{
		{"same email", "ann@example.com", "ann@example.com", http.StatusOK, true},
		{"different email", "ann@example.com", "bob@example.com", http.StatusUnauthorized, false},
		{"case differs", "ann@example.com", "Ann@example.com", http.StatusUnauthorized, false},
		{"no identity", "", "ann@example.com", http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&service.Services{})

			nextCalled := false
			router := chi.NewRouter()
			router.With(h.ownership).Get("/orders/{email}", func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			req := injectNopLogger(httptest.NewRequest(http.MethodGet, "/orders/"+tt.pathEmail, nil))
			if tt.identity != "" {
				req = withTestIdentity(req, tt.identity)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantNext, nextCalled)
			if !tt.wantNext {
				var body models.MessageResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
				assert.Equal(t, "Unauthorized: email mismatch", body.Message)
			}
		})
	}
}
