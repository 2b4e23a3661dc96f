// Package setflag is a flag.Value holding a set of values picked from a
// fixed list of options, given comma separated or by repeating the flag.
package setflag

import (
	"fmt"
	"strings"
)

func New(options ...string) *SetFlag {
	return &SetFlag{
		options: options,
		values:  make(map[string]struct{}, len(options)),
	}
}

type SetFlag struct {
	options []string
	values  map[string]struct{}
}

// List returns the chosen values in the order of the options.
func (sf *SetFlag) List() []string {
	var values []string
	for _, opt := range sf.options {
		if _, ok := sf.values[opt]; ok {
			values = append(values, opt)
		}
	}
	return values
}

func (sf *SetFlag) String() string {
	if sf == nil {
		return ""
	}
	return strings.Join(sf.List(), ",")
}

func (sf *SetFlag) Set(value string) error {
	for _, v := range strings.Split(value, ",") {
		v = strings.TrimSpace(v)
		if !sf.valid(v) {
			return fmt.Errorf("unsupported value '%s', pick from %s", v, strings.Join(sf.options, ", "))
		}
		sf.values[v] = struct{}{}
	}
	return nil
}

func (sf *SetFlag) valid(value string) bool {
	for _, opt := range sf.options {
		if opt == value {
			return true
		}
	}
	return false
}
