package utils

import (
	"crypto/rand"
)

// slugAlphabet has 64 URL-safe symbols so a random byte maps onto it with a mask.
const slugAlphabet = "useandom-26T198340PX75pxJACKVERYMINDBUSHWOLF_GQZbfghjklqvwyzrict"

// LinkIDLength is the size of payment link slugs.
const LinkIDLength = 8

// GenerateSlug returns n random URL-safe characters.
func GenerateSlug(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = slugAlphabet[b[i]&63]
	}
	return string(b), nil
}

// NewLinkID draws a payment link slug.
func NewLinkID() (string, error) {
	return GenerateSlug(LinkIDLength)
}
