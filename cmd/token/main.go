package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/gdbrns/go-whatsapp-web-relay-api/pkg/auth"
	"github.com/gdbrns/go-whatsapp-web-relay-api/pkg/env"
	"github.com/gdbrns/go-whatsapp-web-relay-api/pkg/log"
)

// Mints a bearer token for the command routes using HTTP_AUTH_JWT_SECRET.
func main() {
	subject := flag.String("subject", "relay-client", "token subject")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime, 0 for no expiry")
	flag.Parse()

	secret := env.GetEnvStringOrDefault("HTTP_AUTH_JWT_SECRET", "")
	token, err := auth.GenerateToken(secret, *subject, *ttl)
	if err != nil {
		log.SysErr("token", err).Fatal("Failed to generate token")
	}
	fmt.Println(token)
}
