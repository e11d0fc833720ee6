package models

import (
	"fmt"
	"strings"
	"time"
)

// Format is an encoded image format.
type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
)

// ParseFormat accepts jpeg/jpg/png in any casing; empty yields fallback.
func ParseFormat(s string, fallback Format) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return fallback, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "png":
		return FormatPNG, nil
	}
	return "", fmt.Errorf("%w: %q must be jpeg or png", ErrInvalidFormat, s)
}

// Ext is the file extension used when the format is stored.
func (f Format) Ext() string {
	if f == FormatPNG {
		return "png"
	}
	return "jpg"
}

// ContentType is the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/jpeg"
}

// CompositionRequest is owned by a single render invocation.
type CompositionRequest struct {
	Params      string
	View        View
	BypassCache bool
	Format      Format
}

// OmittedLayer names a layer left out of a degraded composite.
type OmittedLayer struct {
	Layer  Layer
	Reason error
}

func (o OmittedLayer) String() string {
	return o.Layer.String()
}

// Timing breaks down where a render spent its time.
type Timing struct {
	Total     time.Duration
	Fetch     time.Duration
	Composite time.Duration
}

// Result is the outcome of a render.
type Result struct {
	Image       []byte
	ContentType string
	CacheKey    string
	CacheHit    bool
	Layers      []Layer
	Omitted     []OmittedLayer
	Warnings    []string
	Timing      Timing
}

// Degraded reports whether any requested layer was left out.
func (r *Result) Degraded() bool {
	return len(r.Omitted) > 0
}

// OmittedNames lists omitted layers as kind/sku strings.
func (r *Result) OmittedNames() []string {
	names := make([]string, len(r.Omitted))
	for i, o := range r.Omitted {
		names[i] = o.String()
	}
	return names
}
