package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPGateway_Deliver(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/deliver", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))

		var req map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, float64(7), req["to_user"])
		assert.Equal(t, "hello", req["content"])

		json.NewEncoder(w).Encode(map[string]int64{"message_id": 555})
	}))
	defer srv.Close()

	gw := NewHTTPGateway(srv.URL, "secret")

	msgID, err := gw.Deliver(context.Background(), 7, "hello")

	assert.NoError(t, err)
	assert.Equal(t, int64(555), msgID)
}

func TestHTTPGateway_DeliverFailureStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "user unreachable", http.StatusBadGateway)
	}))
	defer srv.Close()

	gw := NewHTTPGateway(srv.URL, "secret")

	_, err := gw.Deliver(context.Background(), 7, "hello")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestHTTPGateway_Notify(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	gw := NewHTTPGateway(srv.URL, "secret")

	err := gw.Notify(context.Background(), 7, "saved")

	assert.NoError(t, err)
	assert.Equal(t, "/notify", gotPath)
}
