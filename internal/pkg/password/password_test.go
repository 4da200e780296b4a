//go:build unit

package password_test

import (
	"testing"

	"rental-booking/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher(t *testing.T) {
	h := password.NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.NoError(t, h.Compare(hash, "s3cret"))
	assert.ErrorIs(t, h.Compare(hash, "wrong"), password.ErrComparisonFailed)
	assert.ErrorIs(t, h.Compare("", "s3cret"), password.ErrInvalidPassword)

	_, err = h.Hash("")
	assert.ErrorIs(t, err, password.ErrInvalidPassword)
}
