package storage_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"investhub/internal/pkg/storage"

	"github.com/stretchr/testify/require"
)

func TestListSendsSortAndAuth(t *testing.T) {
	var gotPath, gotAuth, gotKey string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotKey = r.Header.Get("apikey")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode([]storage.Entry{
			{Name: "app-v2.apk", CreatedAt: time.Now()},
			{Name: "app-v1.apk", CreatedAt: time.Now().Add(-time.Hour)},
		})
	}))
	defer srv.Close()

	client := storage.NewClient(srv.URL, "secret-key")
	entries, err := client.List(context.Background(), "app-builds", "", storage.SortOptions{Column: "created_at", Order: "desc"})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	require.Equal(t, "/storage/v1/object/list/app-builds", gotPath)
	require.Equal(t, "Bearer secret-key", gotAuth)
	require.Equal(t, "secret-key", gotKey)

	sortBy := gotBody["sortBy"].(map[string]interface{})
	require.Equal(t, "created_at", sortBy["column"])
	require.Equal(t, "desc", sortBy["order"])
}

func TestLatestReturnsFirstEntry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]storage.Entry{{Name: "newest.apk"}, {Name: "older.apk"}})
	}))
	defer srv.Close()

	client := storage.NewClient(srv.URL, "")
	entry, err := client.Latest(context.Background(), "app-builds")
	require.NoError(t, err)
	require.NotNil(t, entry)
	require.Equal(t, "newest.apk", entry.Name)
}

func TestLatestEmptyBucket(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]storage.Entry{})
	}))
	defer srv.Close()

	client := storage.NewClient(srv.URL, "")
	entry, err := client.Latest(context.Background(), "app-builds")
	require.NoError(t, err)
	require.Nil(t, entry)
}

func TestListErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"bucket not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client := storage.NewClient(srv.URL, "")
	_, err := client.List(context.Background(), "missing", "", storage.SortOptions{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "bucket not found")
}

func TestPublicURL(t *testing.T) {
	client := storage.NewClient("https://cdn.example.com", "")
	url := client.PublicURL("app-builds", "app-v2.apk")
	require.Equal(t, "https://cdn.example.com/storage/v1/object/public/app-builds/app-v2.apk", url)
}
