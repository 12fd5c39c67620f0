package qr

import (
	"encoding/base64"
	"fmt"

	"github.com/skip2/go-qrcode"
)

const DataURLPrefix = "data:image/png;base64,"

type service struct {
	cfg Config
}

// NewService creates a QR renderer. Unset size and colors take the defaults;
// the zero Level is qrcode.Low.
func NewService(cfg Config) Service {
	def := DefaultConfig()
	if cfg.Size <= 0 {
		cfg.Size = def.Size
	}
	if cfg.Foreground == nil {
		cfg.Foreground = def.Foreground
	}
	if cfg.Background == nil {
		cfg.Background = def.Background
	}
	return &service{cfg: cfg}
}

func (s *service) PNG(content string) ([]byte, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}
	if len(content) > MaxContentLength {
		return nil, ErrContentTooLarge
	}

	code, err := qrcode.New(content, s.cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}
	code.ForegroundColor = s.cfg.Foreground
	code.BackgroundColor = s.cfg.Background

	png, err := code.PNG(s.cfg.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code as PNG: %w", err)
	}
	return png, nil
}

func (s *service) Base64(content string) (string, error) {
	png, err := s.PNG(content)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(png), nil
}

// DataURL is the form stored with history items.
func (s *service) DataURL(content string) (string, error) {
	b64, err := s.Base64(content)
	if err != nil {
		return "", err
	}
	return DataURLPrefix + b64, nil
}
