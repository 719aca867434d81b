package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"filegate/config"
)

const accessDeniedXML = `<?xml version="1.0" encoding="UTF-8"?>
<Error><Code>AccessDenied</Code><Message>Access Denied</Message><Resource>/documents</Resource><RequestId>1</RequestId></Error>`

type recordedRequest struct {
	method      string
	path        string
	contentType string
}

func newTestStorage(t *testing.T, handler http.HandlerFunc) (*S3Storage, *[]recordedRequest) {
	t.Helper()

	var (
		mu       sync.Mutex
		requests []recordedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests = append(requests, recordedRequest{method: r.Method, path: r.URL.Path, contentType: r.Header.Get("Content-Type")})
		mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	s, err := NewS3Storage(config.S3Config{
		Endpoint:        srv.URL,
		Region:          "eu-west-3",
		AccessKeyID:     "AKIA",
		SecretAccessKey: "secret",
		Bucket:          "documents",
		UseSSL:          true,
	}, zap.NewNop())
	require.NoError(t, err)

	return s, &requests
}

func TestNewS3StorageHonoursEndpointScheme(t *testing.T) {
	s, _ := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {})
	assert.False(t, s.cfg.UseSSL)
	assert.Equal(t, "http", s.client.EndpointURL().Scheme)
}

func TestPresignGetObject(t *testing.T) {
	s, requests := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	raw, err := s.PresignGetObject(context.Background(), "report.pdf", 7*24*time.Hour)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/documents/report.pdf", u.Path)
	assert.Equal(t, "604800", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
	assert.Empty(t, *requests, "presigning must not call the store")
}

func TestPresignGetObjectRejectsLongExpiry(t *testing.T) {
	s, _ := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := s.PresignGetObject(context.Background(), "report.pdf", 8*24*time.Hour)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "presign object report.pdf"))
}

func TestPutObject(t *testing.T) {
	s, requests := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	})

	err := s.PutObject(context.Background(), "k1.pdf", []byte("%PDF-1.4"), "application/pdf")
	require.NoError(t, err)

	require.Len(t, *requests, 1)
	got := (*requests)[0]
	assert.Equal(t, http.MethodPut, got.method)
	assert.Equal(t, "/documents/k1.pdf", got.path)
	assert.Equal(t, "application/pdf", got.contentType)
}

func TestPutObjectWrapsStoreError(t *testing.T) {
	s, _ := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(accessDeniedXML))
	})

	err := s.PutObject(context.Background(), "k1.pdf", []byte("%PDF-1.4"), "application/pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "put object k1.pdf")

	var resp minio.ErrorResponse
	require.ErrorAs(t, err, &resp)
	assert.Equal(t, "AccessDenied", resp.Code)
}

func TestDeleteObject(t *testing.T) {
	s, requests := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, s.DeleteObject(context.Background(), "k1.pdf"))
	require.Len(t, *requests, 1)
	assert.Equal(t, http.MethodDelete, (*requests)[0].method)
	assert.Equal(t, "/documents/k1.pdf", (*requests)[0].path)
}

func TestDeleteObjectWrapsStoreError(t *testing.T) {
	s, _ := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(accessDeniedXML))
	})

	err := s.DeleteObject(context.Background(), "k1.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "remove object k1.pdf")
}

func TestCheckBucket(t *testing.T) {
	t.Run("exists", func(t *testing.T) {
		s, _ := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		assert.NoError(t, s.CheckBucket(context.Background()))
	})

	t.Run("missing", func(t *testing.T) {
		s, _ := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		err := s.CheckBucket(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})
}
