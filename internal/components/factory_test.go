package components

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chameleon/internal/layout"
)

func TestNewBuildsPersonalTools(t *testing.T) {
	node := layout.NewComponent("personalTools", layout.Attr{Name: AttrShowEchoAs, Value: "links"})

	component, err := New(newFakeHost(), node)
	require.NoError(t, err)

	tools, ok := component.(*PersonalTools)
	require.True(t, ok)
	assert.Equal(t, EchoLinks, tools.Config().ShowEchoAs)
}

func TestNewRejectsUnknownTypes(t *testing.T) {
	_, err := New(newFakeHost(), layout.NewComponent("SearchBar"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownComponent))
	assert.Contains(t, err.Error(), "SearchBar")
}

func TestNewRejectsNonComponentNodes(t *testing.T) {
	_, err := New(newFakeHost(), &layout.Node{Name: "grid"})
	assert.True(t, errors.Is(err, ErrUnknownComponent))

	_, err = New(newFakeHost(), nil)
	assert.True(t, errors.Is(err, ErrUnknownComponent))
}
