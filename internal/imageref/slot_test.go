package imageref

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlot_ReplaceReleasesPrevious(t *testing.T) {
	slots := NewSlots()
	reg := slots.Registry
	pic := image.NewGray(image.Rect(0, 0, 2, 2))

	first := reg.Add(pic, "first", "png")
	require.NoError(t, slots.Ours.Replace(first))
	assert.Zero(t, reg.Released(), "first upload releases nothing")

	for i := 1; i <= 3; i++ {
		next := reg.Add(pic, "next", "png")
		require.NoError(t, slots.Ours.Replace(next))
		assert.Equal(t, i, reg.Released(), "one release per replacement")
		assert.Equal(t, 1, reg.Live())
		assert.Equal(t, next, slots.Ours.Image().Handle)
	}
}

func TestSlot_ReleasesBeforeInstalling(t *testing.T) {
	slots := NewSlots()
	reg := slots.Registry
	pic := image.NewGray(image.Rect(0, 0, 2, 2))

	first := reg.Add(pic, "first", "png")
	require.NoError(t, slots.Client.Replace(first))

	var seen []Handle
	reg.OnRelease = func(h Handle) {
		// Runs inside Replace, which holds the slot lock.
		seen = append(seen, h, slots.Client.current)
	}
	second := reg.Add(pic, "second", "png")
	require.NoError(t, slots.Client.Replace(second))

	assert.Equal(t, []Handle{first, first}, seen, "the old handle is still installed while it is released")
	assert.Equal(t, second, slots.Client.Image().Handle)
}

func TestSlot_ReplaceInstallsEvenWhenReleaseFails(t *testing.T) {
	slots := NewSlots()
	reg := slots.Registry
	pic := image.NewGray(image.Rect(0, 0, 2, 2))

	first := reg.Add(pic, "first", "png")
	require.NoError(t, slots.Ours.Replace(first))
	require.NoError(t, reg.Release(first))

	second := reg.Add(pic, "second", "png")
	err := slots.Ours.Replace(second)
	require.ErrorIs(t, err, ErrUnknownHandle)
	assert.Equal(t, second, slots.Ours.Image().Handle)
}

func TestSlot_SlotsAreIndependent(t *testing.T) {
	slots := NewSlots()
	reg := slots.Registry
	pic := image.NewGray(image.Rect(0, 0, 2, 2))

	require.NoError(t, slots.Client.Replace(reg.Add(pic, "client", "png")))
	require.NoError(t, slots.Ours.Replace(reg.Add(pic, "ours", "png")))

	assert.Zero(t, reg.Released())
	assert.Equal(t, "client", slots.Get(SlotClient).Image().Name)
	assert.Equal(t, "ours", slots.Get(SlotOurs).Image().Name)
}

func TestSlot_ReplaceWithSameHandleKeepsIt(t *testing.T) {
	slots := NewSlots()
	h := slots.Registry.Add(image.NewGray(image.Rect(0, 0, 1, 1)), "x", "png")

	require.NoError(t, slots.Client.Replace(h))
	require.NoError(t, slots.Client.Replace(h))

	assert.Zero(t, slots.Registry.Released())
	assert.NotNil(t, slots.Client.Image())
}

func TestSlot_Clear(t *testing.T) {
	slots := NewSlots()
	h := slots.Registry.Add(image.NewGray(image.Rect(0, 0, 1, 1)), "x", "png")
	require.NoError(t, slots.Client.Replace(h))

	require.NoError(t, slots.Client.Clear())

	assert.Nil(t, slots.Client.Image())
	assert.Equal(t, 1, slots.Registry.Released())
	require.NoError(t, slots.Client.Clear(), "clearing an empty slot is fine")
}

func TestParseSlot(t *testing.T) {
	s, err := ParseSlot("client")
	require.NoError(t, err)
	assert.Equal(t, SlotClient, s)

	s, err = ParseSlot("ours")
	require.NoError(t, err)
	assert.Equal(t, SlotOurs, s)

	_, err = ParseSlot("theirs")
	assert.Error(t, err)
}
