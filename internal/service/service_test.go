// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/extract-client/internal/httputil"
	"github.com/pdiddy/extract-client/pkg/types"
)

const fakeWorkbook = "PK\x03\x04 fake xlsx"

func init() {
	httputil.RetryBaseDelay = time.Millisecond
}

func newClient(t *testing.T, ts *httptest.Server, cfg types.ServiceConfig) *Client {
	t.Helper()
	cfg.BaseURL = ts.URL
	c, err := NewClient(ts.Client(), cfg)
	require.NoError(t, err)
	return c
}

func TestConvert_Success(t *testing.T) {
	var gotName, gotFormat, gotBody, gotUA, gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/convert", r.URL.Path)
		gotUA = r.Header.Get("User-Agent")
		gotAuth = r.Header.Get("Authorization")

		f, hdr, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		gotName = hdr.Filename
		gotBody = string(data)
		gotFormat = r.FormValue("format")

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		fmt.Fprint(w, fakeWorkbook)
	}))
	defer ts.Close()

	c := newClient(t, ts, types.ServiceConfig{
		HTTPConfig: types.HTTPConfig{UserAgent: "extract-client/test"},
		APIToken:   "tok_123",
	})

	out, err := c.Convert(context.Background(), types.NewMemFile("a.pdf", []byte("%PDF-1.4 a")), types.FormatTable)
	require.NoError(t, err)

	assert.Equal(t, fakeWorkbook, string(out))
	assert.Equal(t, "a.pdf", gotName)
	assert.Equal(t, "%PDF-1.4 a", gotBody)
	assert.Equal(t, "table", gotFormat)
	assert.Equal(t, "extract-client/test", gotUA)
	assert.Equal(t, "Bearer tok_123", gotAuth)
}

func TestConvert_ErrorResponses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"json error field", http.StatusInternalServerError, `{"error":"corrupt pdf","type":"ValueError"}`, "corrupt pdf"},
		{"bad request", http.StatusBadRequest, `{"error":"Only PDF files allowed"}`, "Only PDF files allowed"},
		{"missing error field", http.StatusInternalServerError, `{"detail":"boom"}`, "Conversion failed"},
		{"empty error field", http.StatusBadGateway, `{"error":"  "}`, "Conversion failed"},
		{"not json", http.StatusInternalServerError, `<html>oops</html>`, "Conversion failed"},
		{"empty body", http.StatusNotFound, ``, "Conversion failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer ts.Close()

			c := newClient(t, ts, types.ServiceConfig{})
			out, err := c.Convert(context.Background(), types.NewMemFile("c.pdf", []byte("x")), types.FormatAuto)
			require.Error(t, err)
			assert.Nil(t, out)

			var ce *ConversionError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.status, ce.StatusCode)
			assert.Equal(t, tt.wantMsg, ce.Message)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestConvert_NoRetry(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	c := newClient(t, ts, types.ServiceConfig{})
	_, err := c.Convert(context.Background(), types.NewMemFile("a.pdf", nil), types.FormatAuto)
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestConvert_TransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	c := newClient(t, ts, types.ServiceConfig{})
	ts.Close()

	_, err := c.Convert(context.Background(), types.NewMemFile("a.pdf", nil), types.FormatAuto)
	require.Error(t, err)

	var ce *ConversionError
	assert.False(t, errors.As(err, &ce))
	assert.Contains(t, err.Error(), "HTTP request")
}

func TestConvert_UnreadableFile(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()
	c := newClient(t, ts, types.ServiceConfig{})

	f := types.File{Name: "gone.pdf", Path: t.TempDir() + "/gone.pdf"}
	_, err := c.Convert(context.Background(), f, types.FormatAuto)
	assert.ErrorContains(t, err, "gone.pdf")
}

func TestHealth(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"status":"ok","message":"PDF to Excel converter is running"}`)
	}))
	defer ts.Close()

	c := newClient(t, ts, types.ServiceConfig{HealthRetries: 2})
	hs, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", hs.Status)
	assert.Equal(t, "PDF to Excel converter is running", hs.Message)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestHealth_BadStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := newClient(t, ts, types.ServiceConfig{})
	_, err := c.Health(context.Background())
	assert.ErrorContains(t, err, "HTTP 500")
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name        string
		baseURL     string
		wantConvert string
		wantErr     bool
	}{
		{"default", "", DefaultBaseURL + "/api/convert", false},
		{"trailing slash", "https://convert.example.com/", "https://convert.example.com/api/convert", false},
		{"bad scheme", "ftp://example.com", "", true},
		{"unparsable", "http://[::1", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(nil, types.ServiceConfig{BaseURL: tt.baseURL})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantConvert, c.convertURL)
			assert.NotNil(t, c.http)
		})
	}
}
