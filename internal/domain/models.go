package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyPictureSet is returned when a carousel is mounted without pictures
var ErrEmptyPictureSet = errors.New("picture set is empty")

// Picture represents a single image shown by the carousel
type Picture struct {
	Source      string `toml:"src"`
	Description string `toml:"description"`
}

// PictureSet is an ordered, read-only sequence of pictures
type PictureSet struct {
	pictures []Picture
}

// NewPictureSet copies pictures into a set. At least one picture is required.
func NewPictureSet(pictures []Picture) (PictureSet, error) {
	if len(pictures) == 0 {
		return PictureSet{}, ErrEmptyPictureSet
	}
	cp := make([]Picture, len(pictures))
	copy(cp, pictures)
	return PictureSet{pictures: cp}, nil
}

// Len returns the number of pictures in the set
func (s PictureSet) Len() int {
	return len(s.pictures)
}

// At returns the picture at index i. Indices outside [0, Len) panic.
func (s PictureSet) At(i int) Picture {
	if i < 0 || i >= len(s.pictures) {
		panic(fmt.Sprintf("picture index %d out of range [0,%d)", i, len(s.pictures)))
	}
	return s.pictures[i]
}

// All returns a copy of the pictures
func (s PictureSet) All() []Picture {
	cp := make([]Picture, len(s.pictures))
	copy(cp, s.pictures)
	return cp
}

// NavigationState is the carousel position and the direction of the last move
type NavigationState struct {
	CurrentIndex int
	Direction    int // -1, 0 or +1
}

// DragState is the live offset of the picture being dragged
type DragState struct {
	OffsetX float64
	OffsetY float64
}

// IsZero reports whether the picture sits at rest
func (d DragState) IsZero() bool {
	return d.OffsetX == 0 && d.OffsetY == 0
}

// GestureSample is one pointer-move report from an active drag
type GestureSample struct {
	DeltaX    float64
	DeltaY    float64
	MovementX float64 // cumulative since pointer-down, after damping
	MovementY float64
	Velocity  float64 // px/ms
}
