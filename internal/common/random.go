package common

import (
	"crypto/rand"
	"fmt"
)

// MakeRandDigits generates a uniformly random numeric string of n digits.
// Used for e-mail activation codes.
func MakeRandDigits(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("invalid code length %d", n)
	}
	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			// reject bytes above the largest multiple of 10 to keep
			// every digit equally likely
			if b >= 250 {
				continue
			}
			out = append(out, '0'+b%10)
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}
