package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPictureSetRejectsEmpty(t *testing.T) {
	_, err := NewPictureSet(nil)
	assert.ErrorIs(t, err, ErrEmptyPictureSet)
}

func TestPictureSetIsACopy(t *testing.T) {
	pics := []Picture{{Source: "a.png"}, {Source: "b.png"}}
	set, err := NewPictureSet(pics)
	require.NoError(t, err)

	pics[0].Source = "changed.png"
	assert.Equal(t, "a.png", set.At(0).Source)

	all := set.All()
	all[1].Source = "changed.png"
	assert.Equal(t, "b.png", set.At(1).Source)
}

func TestPictureSetAtPanicsOutOfRange(t *testing.T) {
	set, err := NewPictureSet([]Picture{{Source: "a.png"}})
	require.NoError(t, err)

	assert.Panics(t, func() { set.At(1) })
	assert.Panics(t, func() { set.At(-1) })
}

func TestDragStateIsZero(t *testing.T) {
	assert.True(t, DragState{}.IsZero())
	assert.False(t, DragState{OffsetX: -0.5}.IsZero())
}
