package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"flightontime/backend/internal/auth"
	"flightontime/backend/internal/constants"

	"github.com/joho/godotenv"
)

func main() {
	subject := flag.String("subject", "", "caller identity stored as created_by on predictions")
	role := flag.String("role", string(constants.RoleClient), "caller role: client or admin")
	ttl := flag.Duration("ttl", 30*24*time.Hour, "token lifetime")
	flag.Parse()

	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is not set")
	}
	if *subject == "" {
		log.Fatal("-subject is required")
	}

	token, err := auth.IssueToken([]byte(secret), *subject, constants.CallerRole(*role), *ttl)
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}

	fmt.Println("New API token:", token)
}
