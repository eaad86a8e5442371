package util

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
)

const orderNumberPrefix = "ART"

// GenerateOrderNumber builds a human-readable order number: a fixed prefix,
// an 8-character uppercased fragment from a random UUID, and a 4-digit
// random suffix. Uniqueness is probabilistic; the database unique constraint
// on order_number is the actual guarantee, callers retry on collision.
func GenerateOrderNumber() string {
	fragment := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	suffix := 1000 + rand.IntN(9000)
	return fmt.Sprintf("%s-%s-%d", orderNumberPrefix, fragment, suffix)
}
