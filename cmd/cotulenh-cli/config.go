package main

import "os"

// envOrDefault reads key from the environment, falling back to fallback
// when unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
