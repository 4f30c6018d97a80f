package codegen

import (
	"math/rand"
	"strings"

	"github.com/certavo/certavo-backend/internal/apperrors"
)

const (
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// Length of every redemption code.
	Length = 8

	// maxAttempts bounds the collision retry loop. The code space is 36^8,
	// so hitting this cap would mean the campaign already holds billions of
	// students; it exists so the loop provably terminates.
	maxAttempts = 100000
)

// Generate produces a code not present in existing. The caller owns the set
// and must add the returned code to it before generating the next one.
func Generate(existing map[string]struct{}) (string, error) {
	for i := 0; i < maxAttempts; i++ {
		code := randomCode()
		if _, taken := existing[code]; !taken {
			return code, nil
		}
	}
	return "", apperrors.NewCodeSpaceExhausted(maxAttempts)
}

func randomCode() string {
	var b strings.Builder
	b.Grow(Length)
	for i := 0; i < Length; i++ {
		b.WriteByte(alphabet[rand.Intn(len(alphabet))])
	}
	return b.String()
}
