package mirror

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Level int

func TestEnumRegister(t *testing.T) {
	levels := OnEnum[Level]()
	require.Equal(t, KindEnum, levels.Kind())

	require.NoError(t, levels.Register("LOW", 1))
	require.NoError(t, levels.Register("HIGH", 3))
	require.NoError(t, levels.Register("LOW", 1))
	require.ErrorIs(t, levels.Register("LOW", 2), ErrAlreadyRegistered)

	mid, err := levels.Add("MID")
	require.NoError(t, err)
	assert.Equal(t, Level(0), mid)

	low, err := levels.Add("LOW")
	require.NoError(t, err)
	assert.Equal(t, Level(1), low)

	v, ok := OnEnum[Level]().ValueOf("HIGH")
	require.True(t, ok)
	assert.Equal(t, Level(3), v)

	_, ok = levels.ValueOf("NONE")
	assert.False(t, ok)
	assert.True(t, levels.Contains("MID"))
	assert.False(t, levels.Contains("NONE"))

	assert.Equal(t, []string{"LOW", "HIGH", "MID"}, levels.Names())
	assert.Equal(t, []Level{1, 3, 0}, levels.Values())
	assert.Equal(t, 1, levels.Ordinal("HIGH"))
	assert.Equal(t, -1, levels.Ordinal("NONE"))

	assert.Equal(t, Level(3), levels.Constant("HIGH").Unwrap())
	assert.Equal(t, KindNull, levels.Constant("NONE").Kind())
}

func TestEnumAddConstructs(t *testing.T) {
	colors := OnEnum[Color]()

	red, err := colors.Add("RED", "red", 0xff0000)
	require.NoError(t, err)
	assert.Equal(t, Color{Name: "red", RGB: 0xff0000}, red)

	again, err := colors.Add("RED", "crimson", 0xdc143c)
	require.NoError(t, err)
	assert.Equal(t, red, again)

	_, err = colors.Add("BROKEN", 1, 2, 3)
	require.ErrorIs(t, err, ErrMemberNotFound)
	assert.False(t, colors.Contains("BROKEN"))

	var wg sync.WaitGroup
	results := make([]Color, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = colors.Add("GREEN", "green", 0x00ff00+i)
		}(i)
	}
	wg.Wait()

	stored, ok := colors.ValueOf("GREEN")
	require.True(t, ok)
	for _, c := range results {
		assert.Equal(t, stored, c)
	}
	assert.Equal(t, []string{"RED", "GREEN"}, colors.Names())
}

type Suit int

func TestEnumChain(t *testing.T) {
	suits := OnEnum[Suit]()
	assert.Equal(t, "enum<mirror.Suit>", suits.String())
	assert.True(t, suits.Is(OnEnum[Suit]()))

	created, err := suits.Create()
	require.NoError(t, err)
	assert.Equal(t, Suit(0), created.Unwrap())
	assert.Same(t, suits, created.Back())

	ctor, err := suits.Constructor()
	require.NoError(t, err)
	assert.Same(t, suits, ctor.Back())

	require.NoError(t, suits.Register("SPADES", 1))
	assert.Same(t, suits, suits.Constant("SPADES").Back())
}
