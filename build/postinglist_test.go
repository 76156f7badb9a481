package build

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPostingListInlineThenSpill(t *testing.T) {
	var pl postingList
	pl.append(1)
	require.Equal(t, []uint32{1}, pl.ids())

	pl.append(2)
	require.Equal(t, []uint32{1, 2}, pl.ids())

	pl.append(3)
	require.Equal(t, []uint32{1, 2, 3}, pl.ids())

	pl.append(4)
	require.Equal(t, []uint32{1, 2, 3, 4}, pl.ids())
}

func TestPostingListIdsDoesNotAliasInline(t *testing.T) {
	var pl postingList
	pl.append(1)

	a := pl.ids()
	a[0] = 99

	b := pl.ids()
	require.Equal(t, uint32(1), b[0])
}
