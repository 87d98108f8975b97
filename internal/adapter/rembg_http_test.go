// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-image-gateway/internal/config"
	"github.com/MKhiriev/go-image-gateway/internal/logger"
)

func newTestRembg(t *testing.T, handler http.HandlerFunc) BackgroundRemover {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	r, err := NewRembgBackgroundRemover(config.Capabilities{RembgURL: srv.URL, RembgTimeout: 5 * time.Second}, logger.Nop())
	require.NoError(t, err)
	return r
}

func TestRembgBackgroundRemover_Success(t *testing.T) {
	input := []byte("raw-image-bytes")
	output := []byte("\x89PNG\r\n\x1a\nresult")

	r := newTestRembg(t, func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "/api/remove", req.URL.Path)

		file, _, err := req.FormFile("file")
		require.NoError(t, err)
		got, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, input, got)

		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(output)
	})

	got, err := r.RemoveBackground(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, output, got)
}

func TestRembgBackgroundRemover_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom", wantErr: ErrInternalServerError},
		{name: "unprocessable", status: http.StatusUnprocessableEntity, body: "bad image", wantErr: ErrBadRequest},
		{name: "unavailable", status: http.StatusServiceUnavailable, wantErr: ErrServiceUnavailable},
		{name: "empty body", status: http.StatusOK, wantErr: ErrEmptyResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRembg(t, func(w http.ResponseWriter, req *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := r.RemoveBackground(context.Background(), []byte("img"))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRembgBackgroundRemover_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	r, err := NewRembgBackgroundRemover(config.Capabilities{RembgURL: url, RembgTimeout: time.Second}, logger.Nop())
	require.NoError(t, err)

	_, err = r.RemoveBackground(context.Background(), []byte("img"))
	assert.Error(t, err)
}

func TestNewRembgBackgroundRemover_InvalidURL(t *testing.T) {
	_, err := NewRembgBackgroundRemover(config.Capabilities{}, logger.Nop())
	assert.Error(t, err)
}
