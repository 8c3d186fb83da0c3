// Command admintoken prints an admin bearer token signed with SECRET_KEY,
// or with -hash the bcrypt hash of a password read from stdin for
// ADMIN_PASSWORD_HASH.
//
//	go run ./cmd/admintoken -subject ops -ttl 24h
//	echo -n 'password' | go run ./cmd/admintoken -hash
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"shortly/internal/auth"
	"shortly/internal/config"
	"shortly/internal/logger"
	"shortly/internal/service"
)

func main() {
	subject := flag.String("subject", "admin", "token subject, recorded in admin logs")
	ttl := flag.Duration("ttl", 0, "token lifetime (default ADMIN_TOKEN_TTL)")
	hash := flag.Bool("hash", false, "print the bcrypt hash of the password on stdin")
	flag.Parse()

	cfg := config.Load()
	logger.InitWithWriter(cfg.Environment, cfg.LogLevel, os.Stderr)

	if *hash {
		password, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && password == "" {
			logger.Fatal().Err(err).Msg("failed to read password")
		}
		hashed, err := service.HashPassword(strings.TrimRight(password, "\r\n"))
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to hash password")
		}
		fmt.Fprintln(os.Stdout, hashed)
		return
	}

	lifetime := cfg.AdminTokenTTL
	if *ttl > 0 {
		lifetime = *ttl
	}

	token, err := auth.NewTokenService(cfg.AdminTokenSecret, lifetime).Issue(*subject)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to issue admin token")
	}

	logger.Info().
		Str("subject", *subject).
		Time("expires_at", time.Now().Add(lifetime).UTC()).
		Msg("admin token issued")
	fmt.Fprintln(os.Stdout, token)
}
