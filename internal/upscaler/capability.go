// Package upscaler holds the super-resolution capability used by the upscale
// endpoint. The capability is built once at startup by [Bootstrap] and never
// changes afterwards: it is either available with an engine, or unavailable
// with the reason it could not be initialised.
package upscaler

import (
	"context"
	"errors"
	"image"

	"github.com/MKhiriev/go-image-gateway/models"
)

// Factor is the fixed linear scale of every upsample.
const Factor = 4

// ErrUnavailable is returned by [Capability.Upsample] on an unavailable capability.
var ErrUnavailable = errors.New("upscaler is unavailable")

// Engine upsamples an image by [Factor].
type Engine interface {
	Upsample(ctx context.Context, img image.Image) (image.Image, error)
	Name() string
}

// Capability is an immutable handle to the super-resolution engine.
type Capability struct {
	state  models.CapabilityState
	engine Engine
	reason string
}

// NewAvailable returns a capability backed by engine.
func NewAvailable(engine Engine) *Capability {
	return &Capability{state: models.CapabilityAvailable, engine: engine}
}

// NewUnavailable returns a capability that refuses every upsample.
func NewUnavailable(reason error) *Capability {
	c := &Capability{state: models.CapabilityUnavailable}
	if reason != nil {
		c.reason = reason.Error()
	}

	return c
}

func (c *Capability) State() models.CapabilityState {
	return c.state
}

func (c *Capability) Available() bool {
	return c.state == models.CapabilityAvailable
}

// Reason describes why the capability is unavailable; empty when available.
func (c *Capability) Reason() string {
	return c.reason
}

// EngineName returns the name of the engine, empty when unavailable.
func (c *Capability) EngineName() string {
	if c.engine == nil {
		return ""
	}

	return c.engine.Name()
}

func (c *Capability) Upsample(ctx context.Context, img image.Image) (image.Image, error) {
	if !c.Available() {
		return nil, ErrUnavailable
	}

	return c.engine.Upsample(ctx, img)
}
