package upscaler

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-image-gateway/internal/imaging"
	"github.com/MKhiriev/go-image-gateway/internal/utils"
)

const remoteUpsamplePath = "/v1/upsample"

// Headers sent with every remote upsample request.
const (
	modelHeader = "X-Model-Name"
	scaleHeader = "X-Scale"
)

// remoteEngine delegates to an inference runtime that serves the model
// artifact. Images travel as PNG in both directions.
type remoteEngine struct {
	client    *utils.HTTPClient
	modelName string
}

// NewRemoteEngine returns an [Engine] calling POST {client base}/v1/upsample.
func NewRemoteEngine(client *utils.HTTPClient, modelName string) Engine {
	return &remoteEngine{client: client, modelName: modelName}
}

func (e *remoteEngine) Name() string {
	return "remote"
}

func (e *remoteEngine) Upsample(ctx context.Context, img image.Image) (image.Image, error) {
	payload, err := imaging.EncodePNG(img)
	if err != nil {
		return nil, err
	}

	resp, err := e.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "image/png").
		SetHeader("Accept", "image/png").
		SetHeader(modelHeader, e.modelName).
		SetHeader(scaleHeader, strconv.Itoa(Factor)).
		SetBody(bytes.NewReader(payload)).
		Post(remoteUpsamplePath)
	if err != nil {
		return nil, fmt.Errorf("upsample request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("upsample runtime answered %d: %s", resp.StatusCode(), bytes.TrimSpace(resp.Body()))
	}

	out, _, err := imaging.Decode(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("decode upsample result: %w", err)
	}

	b, ob := img.Bounds(), out.Bounds()
	if ob.Dx() != b.Dx()*Factor || ob.Dy() != b.Dy()*Factor {
		return nil, fmt.Errorf("upsample runtime returned %dx%d for %dx%d input", ob.Dx(), ob.Dy(), b.Dx(), b.Dy())
	}

	return out, nil
}
