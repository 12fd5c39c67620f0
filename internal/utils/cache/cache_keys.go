package cache

import (
	"fmt"
)

// Namespace prefixes every key the service writes.
const Namespace = "solpay"

type EntityType string

const (
	EntityPaymentLink EntityType = "link"
)

type KeyType string

const (
	KeyID    KeyType = "id"
	KeyIndex KeyType = "index"
)

// GenerateKey creates a standardized cache key
func GenerateKey(entity EntityType, keyType KeyType, value interface{}) string {
	return fmt.Sprintf("%s:%s:%s:%v", Namespace, entity, keyType, value)
}

// KeyPrefix is GenerateKey without its value, for scripts that build keys themselves.
func KeyPrefix(entity EntityType, keyType KeyType) string {
	return fmt.Sprintf("%s:%s:%s:", Namespace, entity, keyType)
}
