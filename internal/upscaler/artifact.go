// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package upscaler

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-image-gateway/internal/logger"
	"github.com/MKhiriev/go-image-gateway/internal/utils"
)

// ErrArtifactChecksum is returned when the artifact digest does not match the
// pinned SHA-256.
var ErrArtifactChecksum = errors.New("model artifact checksum mismatch")

// EnsureArtifact makes sure the model artifact exists at path, downloading it
// from url when absent. The download lands in a temporary file next to path
// and is renamed into place only once complete and verified, so a crash never
// leaves a truncated artifact behind.
func EnsureArtifact(ctx context.Context, client *utils.HTTPClient, url, path, sha256Hex string) error {
	log := logger.FromContext(ctx)

	if info, err := os.Stat(path); err == nil {
		if info.Size() == 0 {
			return fmt.Errorf("model artifact %s is empty", path)
		}
		log.Debug().Str("func", "EnsureArtifact").Str("path", path).Msg("model artifact already cached")
		return verifyChecksum(path, sha256Hex)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("error checking model artifact: %w", err)
	}

	if url == "" {
		return fmt.Errorf("model artifact %s is missing and no download url is configured", path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating model directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.part")
	if err != nil {
		return fmt.Errorf("error creating temporary artifact: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	log.Info().Str("func", "EnsureArtifact").Str("url", url).Msg("downloading model artifact")

	resp, err := client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(url)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("error downloading model artifact: %w", err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		tmp.Close()
		return fmt.Errorf("error downloading model artifact: http %d", resp.StatusCode())
	}

	hasher := sha256.New()
	written, err := io.Copy(io.MultiWriter(tmp, hasher), body)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("error writing model artifact: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("error closing model artifact: %w", err)
	}
	if written == 0 {
		return errors.New("downloaded model artifact is empty")
	}

	if sha256Hex != "" && !strings.EqualFold(hex.EncodeToString(hasher.Sum(nil)), sha256Hex) {
		return ErrArtifactChecksum
	}

	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("error moving model artifact into place: %w", err)
	}

	log.Info().Str("func", "EnsureArtifact").Str("path", path).Int64("bytes", written).Msg("model artifact downloaded")
	return nil
}

func verifyChecksum(path, sha256Hex string) error {
	if sha256Hex == "" {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening model artifact: %w", err)
	}
	defer f.Close()

	hasher := sha256.New()
	if _, err = io.Copy(hasher, f); err != nil {
		return fmt.Errorf("error reading model artifact: %w", err)
	}
	if !strings.EqualFold(hex.EncodeToString(hasher.Sum(nil)), sha256Hex) {
		return ErrArtifactChecksum
	}

	return nil
}
