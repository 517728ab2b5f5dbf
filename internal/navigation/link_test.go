package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkRoundTrip(t *testing.T) {
	l := Link{PathID: "abc-123", Day: 4}
	assert.Equal(t, "edupath://path?day=4&id=abc-123", l.String())

	got, err := ParseLink(l.String())
	require.NoError(t, err)
	assert.Equal(t, l, got)
	assert.Equal(t, "4", got.RequestedDay())
}

func TestLinkWithoutDay(t *testing.T) {
	l := Link{PathID: "abc"}
	assert.Equal(t, "edupath://path?id=abc", l.String())
	assert.Equal(t, "/api/paths/abc/session", l.APIPath())
	assert.Equal(t, "", l.RequestedDay())
}

func TestParseLink(t *testing.T) {
	l, err := ParseLink("edupath://path?id=x&day=zz")
	require.NoError(t, err)
	assert.Equal(t, Link{PathID: "x"}, l)

	_, err = ParseLink("https://example.com/?id=x")
	assert.Error(t, err)

	_, err = ParseLink("edupath://path?day=2")
	assert.Error(t, err)
}

func TestAPIPath(t *testing.T) {
	assert.Equal(t, "/api/paths/p1/session?day=2", Link{PathID: "p1", Day: 2}.APIPath())
}
