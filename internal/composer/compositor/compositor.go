// Package compositor alpha-blends layers over a plate and encodes the result.
package compositor

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"birl/internal/composer/models"
	"birl/internal/composer/ports"
)

// Input is one encoded image to composite, named for error reporting.
type Input struct {
	Name string
	Data []byte
}

// DecodeError reports which input could not be decoded. It matches
// models.ErrDecode.
type DecodeError struct {
	Input string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Input, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	return []error{models.ErrDecode, e.Err}
}

// Compositor renders composites. It holds no per-render state and is safe
// for concurrent use.
type Compositor struct {
	codec ports.Codec
}

// New creates a Compositor using codec.
func New(codec ports.Codec) (*Compositor, error) {
	if codec == nil {
		return nil, errors.New("codec is required")
	}
	return &Compositor{codec: codec}, nil
}

// Composite decodes plate onto a canvas, draws each layer over it in the
// given order and encodes the canvas in format. Layers whose size differs
// from the plate are scaled to the canvas first. Any undecodable input
// aborts the whole composite with a *DecodeError.
//
// The output is a pure function of the inputs.
func (c *Compositor) Composite(plate Input, layers []Input, format models.Format) ([]byte, error) {
	base, err := c.decode(plate)
	if err != nil {
		return nil, err
	}

	bounds := base.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(canvas, canvas.Bounds(), base, bounds.Min, draw.Src)

	for _, in := range layers {
		img, err := c.decode(in)
		if err != nil {
			return nil, err
		}
		img = fit(img, canvas.Bounds())
		draw.Draw(canvas, canvas.Bounds(), img, img.Bounds().Min, draw.Over)
	}

	return c.codec.Encode(canvas, format)
}

func (c *Compositor) decode(in Input) (image.Image, error) {
	img, err := c.codec.Decode(in.Data)
	if err != nil {
		return nil, &DecodeError{Input: in.Name, Err: err}
	}
	return img, nil
}

// fit scales img to the size of r with Catmull-Rom resampling. Images that
// already match are returned as is.
func fit(img image.Image, r image.Rectangle) image.Image {
	if img.Bounds().Size() == r.Size() {
		return img
	}
	dst := image.NewNRGBA(r)
	draw.CatmullRom.Scale(dst, r, img, img.Bounds(), draw.Src, nil)
	return dst
}
