package qr

// Service renders payment URLs as QR images.
type Service interface {
	PNG(content string) ([]byte, error)
	Base64(content string) (string, error)
	DataURL(content string) (string, error)
}
