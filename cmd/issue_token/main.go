package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/vendorops/insights/application/port/inbound"
	"github.com/vendorops/insights/infrastructure/service/jwt"
)

// issue_token mints an access token for local development and smoke tests.
// Production tokens come from the platform's auth service.
func main() {
	tenant := flag.String("tenant", "", "tenant id the token is scoped to")
	user := flag.String("user", "", "user id (random when empty)")
	role := flag.String("role", "ops", "role claim")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	_ = godotenv.Load()
	if *tenant == "" {
		log.Fatal("-tenant is required")
	}
	if *user == "" {
		*user = uuid.NewString()
	}

	svc, err := jwt.NewJWTService(os.Getenv("JWT_SECRET"))
	if err != nil {
		log.Fatalf("Failed to initialize JWT service: %v", err)
	}

	token, err := svc.GenerateAccessToken(inbound.TokenClaims{
		UserID:   *user,
		TenantID: *tenant,
		Role:     *role,
	}, *ttl)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}
	fmt.Println(token)
}
