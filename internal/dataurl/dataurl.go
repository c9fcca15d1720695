// Package dataurl decodes the base64 image data URLs that browsers produce
// with FileReader.readAsDataURL.
package dataurl

import (
	"encoding/base64"
	"errors"
	"strings"
)

// AllowedTypes lists the image media types accepted for recipe images.
var AllowedTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/gif":  {},
	"image/webp": {},
}

var (
	ErrMalformed   = errors.New("must be a data:<type>;base64,<payload> URL")
	ErrUnsupported = errors.New("unsupported image type")
	ErrEncoding    = errors.New("payload is not valid base64")
)

// Image is a decoded data URL.
type Image struct {
	MediaType string
	Data      []byte
}

// Parse decodes s into an Image.
func Parse(s string) (*Image, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return nil, ErrMalformed
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, ErrMalformed
	}
	mediaType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return nil, ErrMalformed
	}
	// Drop parameters such as ;name=photo.png.
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = mediaType[:i]
	}
	mediaType = strings.ToLower(mediaType)
	if _, ok := AllowedTypes[mediaType]; !ok {
		return nil, ErrUnsupported
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrEncoding
	}
	return &Image{MediaType: mediaType, Data: data}, nil
}

// Encode renders data as a base64 data URL.
func Encode(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Validate is an ozzo-validation compatible rule: empty values pass, anything
// else must parse.
func Validate(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	_, err := Parse(s)
	return err
}
