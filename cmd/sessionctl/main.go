package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/samirrijal/geowatch/internal/adapters/valkey"
	"github.com/samirrijal/geowatch/internal/core/domain"
	"github.com/samirrijal/geowatch/internal/pkg/config"
)

// sessionctl mints and revokes dashboard sessions directly in the store.
// Login normally happens in the identity tier; this covers local development
// and operator access.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: sessionctl mint <user-id> <name> [email] | revoke <token>")
	}

	cfg, err := config.Load("geowatch-sessionctl")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	store, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		log.Fatalf("valkey: %v", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch os.Args[1] {
	case "mint":
		if len(os.Args) < 4 {
			log.Fatal("usage: sessionctl mint <user-id> <name> [email]")
		}
		user := domain.User{ID: os.Args[2], Name: os.Args[3]}
		if len(os.Args) > 4 {
			user.Email = os.Args[4]
		}

		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			log.Fatalf("token: %v", err)
		}
		token := hex.EncodeToString(buf)

		ttl := cfg.Session.TTLSeconds
		sess := domain.Authenticated(user, time.Now().Add(time.Duration(ttl)*time.Second))
		if err := store.Put(ctx, token, sess, ttl); err != nil {
			log.Fatalf("put session: %v", err)
		}
		fmt.Println(token)

	case "revoke":
		if len(os.Args) < 3 {
			log.Fatal("usage: sessionctl revoke <token>")
		}
		if err := store.Delete(ctx, os.Args[2]); err != nil {
			log.Fatalf("delete session: %v", err)
		}
		log.Println("session revoked")

	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
}
