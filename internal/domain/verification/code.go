package verification

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const CodeLength = 6

var codeSpace = big.NewInt(1_000_000)

// NewCode returns a uniformly random six digit code, leading zeros included.
func NewCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", CodeLength, n.Int64()), nil
}
