package qr

import (
	"image/color"

	"github.com/skip2/go-qrcode"
)

const (
	DefaultSize = 400

	// MaxContentLength keeps payloads inside what a phone camera reads reliably.
	MaxContentLength = 2048
)

type Config struct {
	Size       int
	Level      qrcode.RecoveryLevel
	Foreground color.Color
	Background color.Color
}

func DefaultConfig() Config {
	return Config{
		Size:       DefaultSize,
		Level:      qrcode.Medium,
		Foreground: color.Black,
		Background: color.White,
	}
}
