// Package storage decodes uploaded recipe images and persists them.
package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const dataURIPrefix = "data:image/"

// ErrInvalidImage is returned for a data URI that cannot be decoded.
var ErrInvalidImage = errors.New("invalid image")

// Image is a decoded upload. Ref is set instead of Data when the client sent
// something other than a data URI, which is kept as an opaque reference.
type Image struct {
	Ext  string
	Data []byte
	Ref  string
}

// Inline reports whether the image carries bytes that still need storing.
func (i Image) Inline() bool {
	return i.Ref == ""
}

// ImageStore persists image bytes and returns a reference the API can expose.
type ImageStore interface {
	Save(ctx context.Context, img Image) (string, error)
	Delete(ctx context.Context, ref string) error
}

// DecodeImage parses value. A "data:image/<ext>;base64,<data>" string is
// decoded to bytes; any other non-empty value is passed through as a reference.
func DecodeImage(value string) (Image, error) {
	if value == "" {
		return Image{}, fmt.Errorf("%w: empty value", ErrInvalidImage)
	}
	if !strings.HasPrefix(value, dataURIPrefix) {
		return Image{Ref: value}, nil
	}
	header, payload, ok := strings.Cut(value, ";base64,")
	if !ok {
		return Image{}, fmt.Errorf("%w: data URI is not base64 encoded", ErrInvalidImage)
	}
	ext := strings.ToLower(strings.TrimPrefix(header, dataURIPrefix))
	if ext == "" || strings.ContainsAny(ext, "/\\.") {
		return Image{}, fmt.Errorf("%w: bad image type %q", ErrInvalidImage, ext)
	}
	if ext == "jpeg" {
		ext = "jpg"
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if len(data) == 0 {
		return Image{}, fmt.Errorf("%w: empty payload", ErrInvalidImage)
	}
	return Image{Ext: ext, Data: data}, nil
}
