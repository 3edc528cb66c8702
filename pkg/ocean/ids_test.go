package ocean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringIDValidation(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		id, err := ParseClusterID("bd5f5959-5e1e-4a1a-97bd-de8523f4d395")
		require.NoError(t, err)
		assert.Equal(t, "bd5f5959-5e1e-4a1a-97bd-de8523f4d395", id.String())
	})

	t.Run("blank rejected", func(t *testing.T) {
		t.Parallel()

		_, err := ParseDatabaseID("")
		assert.ErrorIs(t, err, ErrBlankID)

		_, err = ParseVPCID("   ")
		assert.ErrorIs(t, err, ErrBlankID)
	})

	t.Run("padded rejected", func(t *testing.T) {
		t.Parallel()

		_, err := ParseProjectID(" abc ")
		assert.ErrorIs(t, err, ErrPaddedID)

		_, err = ParseNodePoolID("abc\n")
		assert.ErrorIs(t, err, ErrPaddedID)
	})
}

func TestIntIDValidation(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		id, err := NewDropletID(3164444)
		require.NoError(t, err)
		assert.Equal(t, "3164444", id.String())

		keyID, err := NewSSHKeyID(512189)
		require.NoError(t, err)
		assert.Equal(t, "512189", keyID.String())
	})

	t.Run("non-positive rejected", func(t *testing.T) {
		t.Parallel()

		_, err := NewDropletID(0)
		assert.ErrorIs(t, err, ErrNonPositiveID)

		_, err = NewSSHKeyID(-1)
		assert.ErrorIs(t, err, ErrNonPositiveID)
	})
}

func TestRegistryNameValidation(t *testing.T) {
	t.Parallel()

	name, err := ParseRegistryName("acme-registry")
	require.NoError(t, err)
	assert.Equal(t, "acme-registry", name.String())

	_, err = ParseRegistryName("")
	assert.ErrorIs(t, err, ErrBlankID)
}
