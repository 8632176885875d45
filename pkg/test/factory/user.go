package factory

import (
	fab "github.com/Goldziher/fabricator"
	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword is the plaintext behind every factory user's hash.
const DefaultPassword = "12345678"

func NewUser[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	if len(customData) > 0 && !hasKey(customData, "EncryptedPassword") {
		hash, _ := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)

		customData = append(customData, map[string]any{
			"EncryptedPassword": string(hash),
		})
	}

	return instance.Build(customData...)
}

func hasKey(data []map[string]any, key string) bool {
	for _, m := range data {
		if _, exists := m[key]; exists {
			return true
		}
	}

	return false
}
