package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stockmesh/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewS3SnapshotArchive_Validation(t *testing.T) {
	t.Run("nil config returns error", func(t *testing.T) {
		_, err := NewS3SnapshotArchive(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("missing bucket returns error", func(t *testing.T) {
		_, err := NewS3SnapshotArchive(&config.StorageConfig{AccessKey: "k", SecretKey: "s"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("missing access key returns error", func(t *testing.T) {
		_, err := NewS3SnapshotArchive(&config.StorageConfig{Bucket: "b", SecretKey: "s"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access key is required")
	})

	t.Run("missing secret key returns error", func(t *testing.T) {
		_, err := NewS3SnapshotArchive(&config.StorageConfig{Bucket: "b", AccessKey: "k"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret key is required")
	})

	t.Run("valid config creates archive", func(t *testing.T) {
		archive, err := NewS3SnapshotArchive(&config.StorageConfig{
			Bucket:       "snapshots",
			AccessKey:    "k",
			SecretKey:    "s",
			Endpoint:     "localhost:9000",
			UsePathStyle: true,
			Prefix:       "/analytics/",
		})
		require.NoError(t, err)
		assert.Equal(t, "snapshots", archive.Bucket())
		assert.Equal(t, "analytics", archive.prefix)
	})
}

func TestS3SnapshotArchive_ObjectKey(t *testing.T) {
	a := &S3SnapshotArchive{}
	assert.Equal(t, "snapshots/2024-06-01.json", a.objectKey("snapshots/2024-06-01.json"))

	a.prefix = "prod"
	assert.Equal(t, "prod/snapshots/2024-06-01.json", a.objectKey("/snapshots/2024-06-01.json"))
}

type capturedPut struct {
	method      string
	path        string
	contentType string
	body        string
}

func newFakeS3(t *testing.T, status int) (*httptest.Server, *[]capturedPut) {
	t.Helper()
	var mu sync.Mutex
	var puts []capturedPut

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		puts = append(puts, capturedPut{
			method:      r.Method,
			path:        r.URL.Path,
			contentType: r.Header.Get("Content-Type"),
			body:        string(body),
		})
		mu.Unlock()
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, &puts
}

func TestS3SnapshotArchive_Archive(t *testing.T) {
	srv, puts := newFakeS3(t, http.StatusOK)

	archive, err := NewS3SnapshotArchive(&config.StorageConfig{
		Bucket:       "snapshots",
		AccessKey:    "k",
		SecretKey:    "s",
		Endpoint:     srv.URL,
		UsePathStyle: true,
		Prefix:       "prod",
	}, WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)

	loc, err := archive.Archive(context.Background(), "snapshots/2024-06-01.json", []byte(`{"day":"2024-06-01"}`))
	require.NoError(t, err)
	assert.Equal(t, "s3://snapshots/prod/snapshots/2024-06-01.json", loc)

	require.Len(t, *puts, 1)
	got := (*puts)[0]
	assert.Equal(t, http.MethodPut, got.method)
	assert.Equal(t, "/snapshots/prod/snapshots/2024-06-01.json", got.path)
	assert.Equal(t, "application/json", got.contentType)
	assert.Contains(t, got.body, `"day":"2024-06-01"`)
}

func TestS3SnapshotArchive_ArchiveFailure(t *testing.T) {
	srv, _ := newFakeS3(t, http.StatusForbidden)

	archive, err := NewS3SnapshotArchive(&config.StorageConfig{
		Bucket:       "snapshots",
		AccessKey:    "k",
		SecretKey:    "s",
		Endpoint:     srv.URL,
		UsePathStyle: true,
	})
	require.NoError(t, err)

	_, err = archive.Archive(context.Background(), "snapshots/2024-06-01.json", []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upload snapshot")
}

func TestS3SnapshotArchive_EmptyKey(t *testing.T) {
	archive, err := NewS3SnapshotArchive(&config.StorageConfig{Bucket: "b", AccessKey: "k", SecretKey: "s"})
	require.NoError(t, err)
	_, err = archive.Archive(context.Background(), "", nil)
	assert.Error(t, err)
}

func TestMemoryArchive(t *testing.T) {
	m := NewMemoryArchive()
	payload := []byte(`{"day":"2024-06-01"}`)

	loc, err := m.Archive(context.Background(), "snapshots/2024-06-01.json", payload)
	require.NoError(t, err)
	assert.Equal(t, "memory://snapshots/2024-06-01.json", loc)

	payload[0] = 'x'
	got, ok := m.Get("snapshots/2024-06-01.json")
	require.True(t, ok)
	assert.Equal(t, `{"day":"2024-06-01"}`, string(got))
	assert.Equal(t, 1, m.Len())

	_, err = m.Archive(context.Background(), "", payload)
	assert.Error(t, err)
}
