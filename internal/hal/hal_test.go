package hal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("bitbang")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bitbang")
}

func TestOpen_Stub(t *testing.T) {
	h, err := Open(DriverStub)
	require.NoError(t, err)
	_, ok := h.(*Fake)
	assert.True(t, ok, "stub driver should be the fake host")
	require.NoError(t, h.Close())
}

func TestFake_InputPullUpReadsHigh(t *testing.T) {
	f := NewFake()
	in, err := f.Input(3, PullUp, EdgeFalling)
	require.NoError(t, err)

	lvl, err := in.Read()
	require.NoError(t, err)
	assert.Equal(t, High, lvl)
	assert.Equal(t, 3, in.Number())
	assert.Equal(t, EdgeFalling, f.InputPin(3).Edge)
}

func TestFake_WaitForEdge(t *testing.T) {
	f := NewFake()
	in, err := f.Input(3, PullUp, EdgeFalling)
	require.NoError(t, err)

	f.InputPin(3).Trigger(Low)
	require.NoError(t, in.WaitForEdge(context.Background()))

	lvl, _ := in.Read()
	assert.Equal(t, Low, lvl)
}

func TestFake_WaitForEdgeCancelled(t *testing.T) {
	f := NewFake()
	in, err := f.Input(3, PullUp, EdgeFalling)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err = in.WaitForEdge(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFake_OutputRecordsHistory(t *testing.T) {
	f := NewFake()
	out, err := f.Output(10, Low)
	require.NoError(t, err)

	require.NoError(t, out.Set(High))
	require.NoError(t, out.Set(Low))

	fo := f.OutputPin(10)
	assert.Equal(t, Low, fo.Initial)
	assert.Equal(t, []Level{High, Low}, fo.History())
	assert.Equal(t, Low, fo.Level())
}

func TestFake_FailPin(t *testing.T) {
	f := NewFake()
	denied := errors.New("permission denied")
	f.FailPin(3, denied)

	_, err := f.Input(3, PullUp, EdgeFalling)
	assert.ErrorIs(t, err, denied)
	assert.Nil(t, f.InputPin(3))
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "high", High.String())
	assert.Equal(t, "low", Low.String())
}
