package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyTrimsAndFolds(t *testing.T) {
	got, ok := Key(" Foo ")
	require.True(t, ok)
	require.Equal(t, "foo", got)
}

func TestKeyCaseInsensitiveCollision(t *testing.T) {
	a, _ := Key("FOO")
	b, _ := Key(" foo ")
	require.Equal(t, a, b)
}

func TestKeyEmptyAfterTrimRejected(t *testing.T) {
	_, ok := Key("   ")
	require.False(t, ok)

	_, ok = Key("")
	require.False(t, ok)
}

func TestKeyNonASCIIFold(t *testing.T) {
	got, ok := Key("Í")
	require.True(t, ok)
	require.NotEmpty(t, got)
}
