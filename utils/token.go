package utils

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// GenerateVerificationCode creates the 6-digit code sent by email for account
// confirmation and password reset.
func GenerateVerificationCode() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}
