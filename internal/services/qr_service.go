package services

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"

	qrcode "github.com/skip2/go-qrcode"
	xdraw "golang.org/x/image/draw"
)

// ErrEmptyText is returned when there is nothing to encode.
var ErrEmptyText = errors.New("text to encode is empty")

// QRService renders short links as QR PNGs, optionally compositing a
// fixed overlay graphic over the center of the code.
type QRService struct {
	overlay     image.Image
	overlaySize int
}

// NewQRService loads the overlay once at construction. An empty
// overlayPath disables compositing; a path that cannot be loaded is a
// hard error rather than a silent fallback.
func NewQRService(overlayPath string, overlaySize int) (*QRService, error) {
	s := &QRService{overlaySize: overlaySize}
	if s.overlaySize <= 0 {
		s.overlaySize = 60
	}

	if overlayPath == "" {
		return s, nil
	}

	f, err := os.Open(overlayPath)
	if err != nil {
		return nil, fmt.Errorf("open overlay %s: %w", overlayPath, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode overlay %s: %w", overlayPath, err)
	}
	s.overlay = img

	return s, nil
}

// Encode renders text as a size×size PNG. With an overlay configured the
// code is generated at the highest error-correction level so the obscured
// center stays scannable.
func (s *QRService) Encode(text string, size int) ([]byte, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	level := qrcode.Medium
	if s.overlay != nil {
		level = qrcode.Highest
	}

	q, err := qrcode.New(text, level)
	if err != nil {
		return nil, err
	}

	if s.overlay == nil {
		return q.PNG(size)
	}

	base := q.Image(size)
	out := image.NewRGBA(base.Bounds())
	draw.Draw(out, out.Bounds(), base, image.Point{}, draw.Src)

	scaled := image.NewRGBA(image.Rect(0, 0, s.overlaySize, s.overlaySize))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), s.overlay, s.overlay.Bounds(), xdraw.Over, nil)

	origin := image.Pt(
		(out.Bounds().Dx()-s.overlaySize)/2,
		(out.Bounds().Dy()-s.overlaySize)/2,
	)
	target := image.Rectangle{Min: origin, Max: origin.Add(image.Pt(s.overlaySize, s.overlaySize))}
	draw.Draw(out, target, scaled, image.Point{}, draw.Over)

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MakeBase64 renders text as a data URI for embedding in JSON responses.
func (s *QRService) MakeBase64(text string, size int) (string, error) {
	b, err := s.Encode(text, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(b), nil
}
