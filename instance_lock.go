package main

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// instanceKey names the lock for one backend, so consoles pointed at
// different servers do not block each other.
func instanceKey(baseURL string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimRight(strings.TrimSpace(baseURL), "/"))))
	return hex.EncodeToString(sum[:6])
}
