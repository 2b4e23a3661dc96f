package subcmd_test

import (
	"bytes"
	"testing"

	"github.com/amonks/klamu/subcmd"
	"github.com/stretchr/testify/assert"
)

func TestRequire(t *testing.T) {
	var out bytes.Buffer
	sc := subcmd.New("adduser", "register a user")
	sc.SetOutput(&out)
	username := sc.String("username", "", "user name")
	sc.Require("username")

	err := sc.Parse(nil)
	assert.EqualError(t, err, "flag -username is required")
	assert.Contains(t, out.String(), "klamu adduser [flags]")

	sc = subcmd.New("adduser", "register a user")
	sc.SetOutput(&out)
	username = sc.String("username", "", "user name")
	sc.Require("username")
	assert.NoError(t, sc.Parse([]string{"-username", "christien"}))
	assert.Equal(t, "christien", *username)
}
