package election

import (
	"testing"

	"github.com/repmgr-go/repmgrd/pkg/lsn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasQuorum_IntegerTruncationSemantics(t *testing.T) {
	// total=3: threshold is 1, any visible node passes.
	assert.True(t, HasQuorum(3, 1))
	assert.True(t, HasQuorum(3, 2))
	assert.False(t, HasQuorum(3, 0))

	// total=4: threshold is 2.
	assert.True(t, HasQuorum(4, 2))
	assert.False(t, HasQuorum(4, 1))

	// total=1: threshold is 0, self alone always has quorum.
	assert.True(t, HasQuorum(1, 1))
}

func TestSelectWinner_Scenario3_PeerWinsOnHigherLSN(t *testing.T) {
	self, err := lsn.Parse("0/200")
	require.NoError(t, err)
	b, err := lsn.Parse("0/300")
	require.NoError(t, err)

	snapshots := []PeerSnapshot{
		{NodeID: 2, XlogLocation: b, IsReady: true},
		{NodeID: 3, IsReady: false},
	}

	assert.Equal(t, 2, SelectWinner(1, self, snapshots))
}

func TestSelectWinner_Scenario5_SelfWinsWithHighestLSN(t *testing.T) {
	self, err := lsn.Parse("0/900")
	require.NoError(t, err)
	a, err := lsn.Parse("0/100")
	require.NoError(t, err)
	b, err := lsn.Parse("0/200")
	require.NoError(t, err)

	snapshots := []PeerSnapshot{
		{NodeID: 2, XlogLocation: a, IsReady: true},
		{NodeID: 3, XlogLocation: b, IsReady: true},
	}

	assert.Equal(t, 1, SelectWinner(1, self, snapshots))
}

func TestSelectWinner_TieLeavesSelfAsWinner(t *testing.T) {
	self, err := lsn.Parse("0/200")
	require.NoError(t, err)
	tie, err := lsn.Parse("0/200")
	require.NoError(t, err)

	snapshots := []PeerSnapshot{
		{NodeID: 2, XlogLocation: tie, IsReady: true},
	}

	assert.Equal(t, 1, SelectWinner(1, self, snapshots))
}

func TestSelectWinner_UnreadyPeersExcluded(t *testing.T) {
	self, err := lsn.Parse("0/100")
	require.NoError(t, err)
	high, err := lsn.Parse("0/999")
	require.NoError(t, err)

	snapshots := []PeerSnapshot{
		{NodeID: 2, XlogLocation: high, IsReady: false},
	}

	assert.Equal(t, 1, SelectWinner(1, self, snapshots))
}
