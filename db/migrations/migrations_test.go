package migrations

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilesEmbedded(t *testing.T) {
	names, err := Files()
	require.NoError(t, err)
	require.Contains(t, names, "00001_init.sql")
}
