package snowflake

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitRejectsInvalidMachineID(t *testing.T) {
	require.Error(t, Init(-1))
	require.Error(t, Init(1024))
}

func TestGenerateIDUnique(t *testing.T) {
	require.NoError(t, Init(1))

	seen := make(map[int64]struct{})
	for i := 0; i < 1000; i++ {
		id := GenerateID()
		_, dup := seen[id]
		require.False(t, dup)
		seen[id] = struct{}{}
	}
}
