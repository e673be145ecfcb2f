package pkg

import "github.com/google/uuid"

// GenerateID - generates a new unique record id.
func GenerateID() string {
	return uuid.NewString()
}
