package pdf

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"math"
	"os"

	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// maxImageSide bounds the scaled raster so a large logo times the scale
// factor stays printable.
const maxImageSide = 4096

// loadConcurrency caps how many images decode at once.
const loadConcurrency = 4

// Image is a decoded, scaled and re-encoded picture ready to embed.
type Image struct {
	Path string
	Data []byte
	Ext  extension.Type
}

// ImageError records one image that could not be used.
type ImageError struct {
	Path string
	Err  error
}

func (e ImageError) Error() string {
	return fmt.Sprintf("image %s: %v", e.Path, e.Err)
}

func (e ImageError) Unwrap() error { return e.Err }

// LoadImages loads every path concurrently and waits until each load has
// settled. Failed images are left out of the result and reported in the
// error slice; order of the successful images follows paths.
func LoadImages(ctx context.Context, paths []string, opts Options) ([]Image, []ImageError) {
	if len(paths) == 0 {
		return nil, nil
	}

	results := make([]*Image, len(paths))
	failures := make([]error, len(paths))

	var g errgroup.Group
	g.SetLimit(loadConcurrency)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			img, err := loadImage(ctx, path, opts)
			if err != nil {
				failures[i] = err
				return nil
			}
			results[i] = &img
			return nil
		})
	}
	_ = g.Wait()

	images := make([]Image, 0, len(paths))
	var errs []ImageError
	for i, path := range paths {
		if failures[i] != nil {
			errs = append(errs, ImageError{Path: path, Err: failures[i]})
			continue
		}
		images = append(images, *results[i])
	}
	return images, errs
}

func loadImage(ctx context.Context, path string, opts Options) (Image, error) {
	if err := ctx.Err(); err != nil {
		return Image{}, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Image{}, err
	}
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return Image{}, fmt.Errorf("decode: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Image{}, err
	}

	scaled := scaleImage(src, opts.Scale)

	var buf bytes.Buffer
	ext := extension.Jpg
	if opts.ImageType == "png" {
		ext = extension.Png
		err = png.Encode(&buf, scaled)
	} else {
		err = jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: jpegQuality(opts.ImageQuality)})
	}
	if err != nil {
		return Image{}, fmt.Errorf("encode: %w", err)
	}

	return Image{Path: path, Data: buf.Bytes(), Ext: ext}, nil
}

func scaleImage(src image.Image, scale float64) image.Image {
	if scale <= 0 || scale == 1 {
		return src
	}
	bounds := src.Bounds()
	w := int(math.Round(float64(bounds.Dx()) * scale))
	h := int(math.Round(float64(bounds.Dy()) * scale))
	if longest := max(w, h); longest > maxImageSide {
		ratio := float64(maxImageSide) / float64(longest)
		w = int(float64(w) * ratio)
		h = int(float64(h) * ratio)
	}
	if w < 1 || h < 1 {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)
	return dst
}

// jpegQuality maps the 0..1 export quality onto the encoder's 1..100 scale.
func jpegQuality(q float64) int {
	v := int(math.Round(q * 100))
	if v < 1 {
		return 1
	}
	if v > 100 {
		return 100
	}
	return v
}
