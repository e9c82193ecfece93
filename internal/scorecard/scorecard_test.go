package scorecard

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/tenpin/bowling"
)

func TestMarks(t *testing.T) {
	tests := []struct {
		frame    bowling.Frame
		expected []string
	}{
		{bowling.Frame{10}, []string{"X"}},
		{bowling.Frame{5, 5}, []string{"5", "/"}},
		{bowling.Frame{0, 10}, []string{"-", "/"}},
		{bowling.Frame{3, 0}, []string{"3", "-"}},
		{bowling.Frame{10, 10}, []string{"X", "X"}},
		{bowling.Frame{2, 8, 10}, []string{"2", "/", "X"}},
		{bowling.Frame{10, 1}, []string{"X", "1"}},
		{bowling.Frame{4}, []string{"4"}},
	}

	for _, tt := range tests {
		t.Run(tt.frame.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, Marks(tt.frame))
		})
	}
}

func TestRender(t *testing.T) {
	game := bowling.Game{{1, 4}, {4, 5}, {6, 4}, {5, 5}, {10}, {0, 1}, {7, 3}, {6, 4}, {10}, {2, 8, 6}}
	frames, err := bowling.ScoreFrames(game)
	require.NoError(t, err)

	var buf bytes.Buffer
	out := NewRenderer(&buf, false).Render(frames)

	for _, want := range []string{"X", "/", "133", "117", "score"} {
		assert.Contains(t, out, want)
	}
	// No ANSI escapes without color.
	assert.NotContains(t, out, "\x1b[")
	assert.True(t, strings.HasSuffix(out, "133\n"))
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	out := NewRenderer(&buf, false).Render(nil)
	assert.Contains(t, out, "score 0")
}
