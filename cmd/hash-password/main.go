package main

import (
	"fmt"
	"log"
	"os"

	"github.com/doguscu/barcode-scanner/internal/model"

	"github.com/joho/godotenv"
)

// Prints a bcrypt hash suitable for OPERATOR_PASSWORD_HASH.
//
//	go run ./cmd/hash-password <password>
//
// Without an argument the password is read from OPERATOR_PASSWORD.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	password := os.Getenv("OPERATOR_PASSWORD")
	if len(os.Args) > 1 {
		password = os.Args[1]
	}
	if password == "" {
		log.Fatal("usage: hash-password <password> (or set OPERATOR_PASSWORD)")
	}

	var op model.Operator
	if err := op.SetPassword(password); err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	fmt.Println(op.PasswordHash)
}
