// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

package sec

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plain-text password with bcrypt.
func HashPassword(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plain-text password with a bcrypt hash.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword)) == nil
}

// GenerateOTP returns a zero-padded 6-digit one-time code.
func GenerateOTP() (string, error) {
	var n uint32
	if err := binary.Read(rand.Reader, binary.LittleEndian, &n); err != nil {
		return "", fmt.Errorf("sec: failed to read random bytes: %w", err)
	}
	return fmt.Sprintf("%06d", n%1_000_000), nil
}
