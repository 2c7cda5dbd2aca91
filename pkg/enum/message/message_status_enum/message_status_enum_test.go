package message_status_enum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPredecessorsForwardOnly(t *testing.T) {
	require.ElementsMatch(t, []string{Delivered}, Predecessors(Received))
	require.ElementsMatch(t, []string{Delivered, Received}, Predecessors(Read))

	// 起始状态没有前置，回退不可能发生
	require.Empty(t, Predecessors(Delivered))

	// 未知状态
	require.Nil(t, Predecessors("SENT"))
}
