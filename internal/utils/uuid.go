package utils

import "github.com/google/uuid"

// UUIDGenerator issues request trace ids.
type UUIDGenerator struct {
	newV7 func() (uuid.UUID, error)
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{newV7: uuid.NewV7}
}

// Generate returns a time-ordered UUIDv7. When the clock sequence cannot be
// read it falls back to a random UUIDv4 so a request is never left untraced.
func (g *UUIDGenerator) Generate() string {
	if v7, err := g.newV7(); err == nil {
		return v7.String()
	}

	return uuid.NewString()
}

// Canonical reports whether id is a UUID in any accepted spelling and returns
// its lowercase hyphenated form.
func Canonical(id string) (string, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}

	return parsed.String(), true
}
