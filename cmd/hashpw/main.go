// Package main prints a bcrypt hash for the given password. Useful for
// seeding driver rows by hand:
//
//	go run ./cmd/hashpw mypassword
package main

import (
	"fmt"
	"os"

	"github.com/avissapr/taxifleet/internal/services"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: hashpw <password>")
		os.Exit(2)
	}

	hash, err := services.HashPassword(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to hash password:", err)
		os.Exit(1)
	}

	fmt.Println(hash)
}
