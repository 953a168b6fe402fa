package pkg

import "github.com/google/uuid"

// GenerateGameID - generates a unique identifier for a match.
func GenerateGameID() string {
	return uuid.NewString()
}

// GeneratePlayerID - generates a unique identifier for a directory entity.
func GeneratePlayerID() string {
	return uuid.NewString()
}
