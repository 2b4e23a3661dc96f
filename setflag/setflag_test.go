package setflag_test

import (
	"flag"
	"io"
	"testing"

	"github.com/amonks/klamu/setflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetFlag(t *testing.T) {
	sf := setflag.New("cd", "komponist", "uitvoering")
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Var(sf, "only", "tables")

	require.NoError(t, fs.Parse([]string{"-only", "uitvoering, cd", "-only", "cd"}))
	assert.Equal(t, []string{"cd", "uitvoering"}, sf.List())
	assert.Equal(t, "cd,uitvoering", sf.String())
}

func TestSetFlagRejects(t *testing.T) {
	sf := setflag.New("cd")
	err := sf.Set("cd,lp")
	assert.EqualError(t, err, "unsupported value 'lp', pick from cd")
}
