package adapter

import (
	"bytes"
	"context"
	"fmt"

	"github.com/MKhiriev/go-image-gateway/internal/config"
	"github.com/MKhiriev/go-image-gateway/internal/logger"
	"github.com/MKhiriev/go-image-gateway/internal/utils"
)

const rembgRemovePath = "/api/remove"

type rembgBackgroundRemover struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewRembgBackgroundRemover constructs a [BackgroundRemover] that talks to a
// rembg HTTP server ("rembg s") at cfg.RembgURL. The image is sent as the
// multipart field "file" and the response body is the PNG result.
func NewRembgBackgroundRemover(cfg config.Capabilities, logger *logger.Logger) (BackgroundRemover, error) {
	client, err := utils.NewServiceClient(cfg.RembgURL, cfg.RembgTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid rembg url: %w", err)
	}

	return &rembgBackgroundRemover{client: client, logger: logger}, nil
}

func (r *rembgBackgroundRemover) RemoveBackground(ctx context.Context, image []byte) ([]byte, error) {
	log := logger.FromContext(ctx)

	resp, err := r.client.R().
		SetContext(ctx).
		SetFileReader("file", "image", bytes.NewReader(image)).
		Post(rembgRemovePath)
	if err != nil {
		log.Err(err).Str("func", "rembgBackgroundRemover.RemoveBackground").Msg("rembg request failed")
		return nil, fmt.Errorf("rembg request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		log.Err(err).
			Str("func", "rembgBackgroundRemover.RemoveBackground").
			Int("status", resp.StatusCode()).
			Msg("rembg answered with error")
		return nil, err
	}

	body := resp.Body()
	if len(body) == 0 {
		return nil, ErrEmptyResponse
	}

	return body, nil
}
