package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"virtualab/config"
)

func TestPostReviewEvent(t *testing.T) {
	var got ReviewEvent
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	config.AppConfig = &config.Config{ReviewWebhookURL: srv.URL}
	err := PostReviewEvent(context.Background(), ReviewEvent{ContentKind: "MATERIAL", ContentID: 7, Status: "APPROVED"})
	require.NoError(t, err)
	assert.Equal(t, uint(7), got.ContentID)
	assert.Equal(t, "APPROVED", got.Status)
}

func TestPostReviewEventErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	config.AppConfig = &config.Config{ReviewWebhookURL: srv.URL}
	assert.Error(t, PostReviewEvent(context.Background(), ReviewEvent{ContentKind: "ARTICLE", ContentID: 1}))
}

func TestPostReviewEventDisabled(t *testing.T) {
	config.AppConfig = &config.Config{}
	assert.NoError(t, PostReviewEvent(context.Background(), ReviewEvent{}))
}
