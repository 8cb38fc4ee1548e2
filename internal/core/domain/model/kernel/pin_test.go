package kernel_test

import (
	"testing"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPIN(t *testing.T) {
	t.Run("keeps leading zeroes", func(t *testing.T) {
		p, err := kernel.NewPIN("0042")
		require.NoError(t, err)
		assert.Equal(t, "0042", p.String())
	})

	for _, in := range []string{"", "123", "12345", "12a4", " 123"} {
		t.Run("rejects "+in, func(t *testing.T) {
			_, err := kernel.NewPIN(in)
			require.Error(t, err)
			assert.True(t, errs.IsValidation(err))
		})
	}
}

func TestGeneratePIN(t *testing.T) {
	seen := make(map[string]struct{})
	for range 200 {
		p, err := kernel.GeneratePIN()
		require.NoError(t, err)
		require.NoError(t, kernel.ValidatePINFormat(p.String()))
		seen[p.String()] = struct{}{}
	}
	assert.Greater(t, len(seen), 150)
}

func TestPIN_Matches(t *testing.T) {
	p, _ := kernel.NewPIN("4821")

	assert.True(t, p.Matches("4821"))
	assert.False(t, p.Matches("0000"))
	assert.False(t, p.Matches("482"))
	assert.False(t, p.Matches("48210"))
	assert.False(t, kernel.PIN{}.Matches("4821"))
	assert.True(t, kernel.PIN{}.IsZero())
}
