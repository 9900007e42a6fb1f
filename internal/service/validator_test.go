package service_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/facegate/facegate/internal/entity"
	"github.com/facegate/facegate/internal/service"
)

func TestValidatePIN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		pin   string
		errFn require.ErrorAssertionFunc
	}{
		{"min length", "1234", require.NoError},
		{"max length", "12345678", require.NoError},
		{"too short", "123", require.Error},
		{"too long", "123456789", require.Error},
		{"letters", "12ab", require.Error},
		{"spaces", "12 4", require.Error},
		{"unicode digits", "١٢٣٤", require.Error},
		{"empty", "", require.Error},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := service.ValidatePIN(tt.pin)
			tt.errFn(t, err)

			if err != nil {
				require.ErrorIs(t, err, entity.ErrPinFormat)
			}
		})
	}
}

func TestHashPIN(t *testing.T) {
	t.Parallel()

	hash, err := service.HashPIN("4321")
	require.NoError(t, err)

	require.NoError(t, bcrypt.CompareHashAndPassword(hash, []byte("4321")))
	require.Error(t, bcrypt.CompareHashAndPassword(hash, []byte("1234")))

	_, err = service.HashPIN("bad")
	require.ErrorIs(t, err, entity.ErrPinFormat)
}
