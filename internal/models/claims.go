package models

import "github.com/golang-jwt/jwt/v5"

const (
	// ScopeMarkPaid allows a watcher to confirm payments.
	ScopeMarkPaid = "links:mark-paid"
	// ScopeHistoryAdmin allows clearing, deleting and importing history.
	ScopeHistoryAdmin = "history:admin"
)

// WatcherClaims identify the chain watcher that confirms payments. The
// subject names the watcher instance.
type WatcherClaims struct {
	jwt.RegisteredClaims
	Scopes []string `json:"scopes"`
}

func (c *WatcherClaims) HasScope(scope string) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}
