package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTest(input string, color bool) (*Console, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return New(strings.NewReader(input), &out, &errOut, color), &out, &errOut
}

func TestConsole_PlainOutput(t *testing.T) {
	c, out, errOut := newTest("", false)

	c.Header("Generating %dx%d baseplate...", 4, 4)
	c.Success("Generated: %s", "output/baseplate.stl")
	c.Warning("Proceeding with single oversized baseplate...")
	c.Println("Spacers: none needed (gaps too small)")
	c.Error("Project '%s' already exists!", "kitchen")

	want := "\n>>> Generating 4x4 baseplate...\n" +
		"Generated: output/baseplate.stl\n" +
		"Proceeding with single oversized baseplate...\n" +
		"Spacers: none needed (gaps too small)\n"
	assert.Equal(t, want, out.String())
	assert.Equal(t, "Project 'kitchen' already exists!\n", errOut.String())
}

func TestConsole_Colour(t *testing.T) {
	c, out, errOut := newTest("", true)

	c.Success("ok")
	c.Error("bad")
	assert.Equal(t, green+"ok"+reset+"\n", out.String())
	assert.Equal(t, red+"bad"+reset+"\n", errOut.String())
}

func TestConsole_Prompt(t *testing.T) {
	c, out, _ := newTest("  shelf-bin  \n\n", false)

	got, err := c.Prompt("Name", "bin-2x2x3")
	require.NoError(t, err)
	assert.Equal(t, "shelf-bin", got)

	got, err = c.Prompt("Name", "bin-2x2x3")
	require.NoError(t, err)
	assert.Equal(t, "bin-2x2x3", got)

	assert.Equal(t, "Name [bin-2x2x3]: Name [bin-2x2x3]: ", out.String())
}

func TestConsole_PromptEOFUsesDefault(t *testing.T) {
	c, _, _ := newTest("", false)
	got, err := c.Prompt("Print bed width (mm)", "225")
	require.NoError(t, err)
	assert.Equal(t, "225", got)

	c, _, _ = newTest("300", false)
	got, err = c.Prompt("Print bed width (mm)", "225")
	require.NoError(t, err)
	assert.Equal(t, "300", got, "last line without newline is still read")
}

func TestConsole_Confirm(t *testing.T) {
	c, out, _ := newTest("\nno\nYES\n", false)

	for _, want := range []bool{true, false, true} {
		got, err := c.Confirm("Split into smaller baseplates?")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.True(t, strings.HasPrefix(out.String(), "Split into smaller baseplates? [Y/n]: "))
}

func TestIsYes(t *testing.T) {
	for _, s := range []string{"", "y", "Y", "yes", " Yes "} {
		assert.True(t, IsYes(s), s)
	}
	for _, s := range []string{"n", "no", "nope", "x"} {
		assert.False(t, IsYes(s), s)
	}
}
