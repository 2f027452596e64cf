package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Mints an HS256 bearer token for local testing against AUTH_JWT_SECRET.
//
//	go run scripts/gentoken.go -uid dev-user -email dev@example.com
func main() {
	uid := flag.String("uid", "dev-user", "subject claim")
	email := flag.String("email", "dev@example.com", "email claim")
	name := flag.String("name", "Dev User", "name claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	secret := os.Getenv("AUTH_JWT_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "AUTH_JWT_SECRET is not set")
		os.Exit(1)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   *uid,
		"email": *email,
		"name":  *name,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(*ttl).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		fmt.Fprintln(os.Stderr, "sign:", err)
		os.Exit(1)
	}
	fmt.Println(signed)
}
