// Command watcher_token mints the bearer token a chain watcher uses to
// confirm payment links. WATCHER_SCOPES (comma separated) widens it, for
// example to history:admin for operators.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"solpay/internal/config"
	"solpay/internal/logger"
	"solpay/internal/models"
	"solpay/internal/utils"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()
	log := logger.New(cfg.Env, cfg.LogLevel)

	subject := config.GetEnv("WATCHER_NAME", "")
	ttl := config.GetDurationEnv("WATCHER_TOKEN_TTL", 30*24*time.Hour)
	scopes := splitScopes(config.GetEnv("WATCHER_SCOPES", models.ScopeMarkPaid))
	if subject == "" || cfg.WatcherJWTSecret == "" {
		log.Fatal().Msg("WATCHER_NAME and WATCHER_JWT_SECRET must be set in environment")
	}

	token, err := utils.GenerateWatcherToken(cfg.WatcherJWTSecret, subject, ttl, scopes...)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to sign watcher token")
	}

	log.Info().Str("watcher", subject).Strs("scopes", scopes).Dur("ttl", ttl).Msg("watcher token created")
	fmt.Fprintln(os.Stdout, token)
}

func splitScopes(raw string) []string {
	var scopes []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			scopes = append(scopes, s)
		}
	}
	return scopes
}
