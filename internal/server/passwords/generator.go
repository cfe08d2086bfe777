package passwords

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	charsUpper  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	charsLower  = "abcdefghijklmnopqrstuvwxyz"
	charsDigits = "0123456789"
	charsSymbol = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

// GeneratorOptions selects the character classes for a generated password.
type GeneratorOptions struct {
	Length  int
	Upper   bool
	Lower   bool
	Digits  bool
	Symbols bool
}

// Generate produces a random password containing at least one character from
// each selected class. Randomness comes from crypto/rand.
func Generate(opts GeneratorOptions) (string, error) {
	if opts.Length < 4 || opts.Length > 128 {
		return "", errors.New("length must be between 4 and 128")
	}

	var classes []string
	if opts.Upper {
		classes = append(classes, charsUpper)
	}
	if opts.Lower {
		classes = append(classes, charsLower)
	}
	if opts.Digits {
		classes = append(classes, charsDigits)
	}
	if opts.Symbols {
		classes = append(classes, charsSymbol)
	}
	if len(classes) == 0 {
		return "", errors.New("at least one character class must be selected")
	}
	if opts.Length < len(classes) {
		return "", errors.New("length too short for selected character classes")
	}

	var pool string
	for _, c := range classes {
		pool += c
	}

	out := make([]byte, opts.Length)

	// one guaranteed character per selected class
	for i, c := range classes {
		ch, err := randByte(c)
		if err != nil {
			return "", err
		}
		out[i] = ch
	}
	for i := len(classes); i < opts.Length; i++ {
		ch, err := randByte(pool)
		if err != nil {
			return "", err
		}
		out[i] = ch
	}

	// unbiased shuffle so the guaranteed characters are not always first
	for i := len(out) - 1; i > 0; i-- {
		j, err := randInt(i + 1)
		if err != nil {
			return "", err
		}
		out[i], out[j] = out[j], out[i]
	}

	return string(out), nil
}

func randByte(pool string) (byte, error) {
	i, err := randInt(len(pool))
	if err != nil {
		return 0, err
	}
	return pool[i], nil
}

func randInt(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}
