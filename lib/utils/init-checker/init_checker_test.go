package initchecker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type provider interface{ Do() }

type impl struct{}

func (i *impl) Do() {}

func TestCheckInit(t *testing.T) {
	var typedNil *impl
	var asInterface provider = typedNil

	require.NotPanics(t, func() { CheckInit("store", &impl{}, "name", "value") })
	require.PanicsWithValue(t, "store dependency not initialized", func() { CheckInit("store", nil) })
	require.PanicsWithValue(t, "store dependency not initialized", func() { CheckInit("store", asInterface) })
	require.Panics(t, func() { CheckInit("store") })
	require.Panics(t, func() { CheckInit(1, &impl{}) })
}
