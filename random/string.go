package random

import (
	"strings"

	"github.com/pkg/errors"
)

// Alphanumeric is the default charset for random strings.
const Alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// String returns a string of length runes, each drawn independently and
// uniformly from the runes of charset.
// It returns ErrInvalidLength if length < 0 and ErrInvalidCharset if charset
// is empty.
func (r *Random) String(length int, charset string) (string, error) {
	if length < 0 {
		return "", errors.Wrapf(ErrInvalidLength, "length %d must not be negative", length)
	}
	runes := []rune(charset)
	if len(runes) == 0 {
		return "", errors.Wrap(ErrInvalidCharset, "charset must not be empty")
	}

	var sb strings.Builder
	sb.Grow(length)

	r.mu.Lock()
	defer r.mu.Unlock()
	for range length {
		sb.WriteRune(runes[r.intn(len(runes))])
	}
	return sb.String(), nil
}

// AlphanumericString returns a random alphanumeric string of given length. A
// non-positive length yields an empty string.
func (r *Random) AlphanumericString(length int) string {
	s, err := r.String(max(length, 0), Alphanumeric)
	if err != nil {
		return ""
	}
	return s
}
