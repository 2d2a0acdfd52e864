// Package main is a development utility for generating a bcrypt password hash
// and a ready-to-run SQL INSERT statement so developers can quickly seed a
// usable account in a local database without running the full registration
// flow. Do not use seeded accounts in production — register through the API so
// passwords never appear in shell history.
package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	email := "dev@taskhub.local"
	if len(os.Args) > 1 {
		email = os.Args[1]
	}

	// Generate a random password unless one was supplied
	password := ""
	if len(os.Args) > 2 {
		password = os.Args[2]
	} else {
		randomBytes := make([]byte, 18)
		if _, err := rand.Read(randomBytes); err != nil {
			log.Fatal(err)
		}
		password = base64.RawURLEncoding.EncodeToString(randomBytes)
	}

	// Hash with bcrypt (cost 12, matching the server)
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("==========================================================")
	fmt.Println("Development User Generated")
	fmt.Println("==========================================================")
	fmt.Printf("\nEmail:    %s\n", email)
	fmt.Printf("Password: %s\n", password)
	fmt.Printf("\nHash: %s\n", string(hashBytes))
	fmt.Println("\n==========================================================")
	fmt.Println("SQL Insert:")
	fmt.Println("==========================================================")
	fmt.Printf(`
INSERT INTO users (full_name, email, password_hash, role)
VALUES ('Dev User', '%s', '%s', 'member')
ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash;
`, email, string(hashBytes))
	fmt.Println("\n==========================================================")
	fmt.Printf("Login: POST /api/v1/auth/login {\"email\": \"%s\", \"password\": \"...\"}\n", email)
	fmt.Println("==========================================================")
}
