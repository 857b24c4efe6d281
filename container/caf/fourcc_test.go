package caf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFourCC(t *testing.T) {
	assert.Equal(t, "desc", NewFourCC("desc").String())
	assert.Equal(t, FourCC{}, NewFourCC("too-long"))
	assert.Equal(t, FourCC{}, NewFourCC("shrt"[:3]))
}

func TestFourCCEquality(t *testing.T) {
	assert.Equal(t, NewFourCC("pakt"), NewFourCC("pakt"))
	assert.NotEqual(t, NewFourCC("pakt"), NewFourCC("data"))
}
