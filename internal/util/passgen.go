package util

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// PassgenOptions configures the password generator behind the password
// entry's "Create" action. At least one character set must be enabled,
// otherwise GenPassword returns an empty string.
type PassgenOptions struct {
	Length  int
	Upper   bool // A-Z
	Lower   bool // a-z
	Numbers bool // 0-9
	Symbols bool // -=_+!@#$^&()?<>
}

// GenPassword generates a password using crypto/rand.
// It returns an empty string if no character sets are enabled or
// Length <= 0, and an error only when the system RNG fails.
func GenPassword(opts PassgenOptions) (string, error) {
	chars := ""
	if opts.Upper {
		chars += "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	}
	if opts.Lower {
		chars += "abcdefghijklmnopqrstuvwxyz"
	}
	if opts.Numbers {
		chars += "1234567890"
	}
	if opts.Symbols {
		chars += "-=_+!@#$^&()?<>"
	}

	if len(chars) == 0 || opts.Length <= 0 {
		return "", nil
	}

	tmp := make([]byte, opts.Length)
	for i := range opts.Length {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(len(chars))))
		if err != nil {
			return "", fmt.Errorf("fatal crypto/rand error: %w", err)
		}
		tmp[i] = chars[j.Int64()]
	}
	return string(tmp), nil
}
