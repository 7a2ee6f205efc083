// Package enum implements a pflag value restricted to a fixed set of
// options. The first option is the default.
package enum

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
)

// Flag is a pflag.Value accepting only one of a fixed list of options.
type Flag struct {
	value   string
	options []string
}

// New creates a Flag with the given options, defaulting to the first.
// Panics when no options are given.
func New(options ...string) *Flag {
	if len(options) == 0 {
		panic("enum: at least one option is required")
	}
	return &Flag{value: options[0], options: options}
}

func (f *Flag) String() string {
	return f.value
}

func (f *Flag) Set(value string) error {
	if !slices.Contains(f.options, value) {
		return fmt.Errorf("invalid value %q, must be one of %s", value, strings.Join(f.options, "|"))
	}
	f.value = value
	return nil
}

func (f *Flag) Type() string {
	return "enum"
}

// Var registers a new enum flag on the flag set.
func Var(fs *pflag.FlagSet, name string, options []string, usage string) {
	fs.Var(New(options...), name, usage)
}

// VarP registers a new enum flag with a shorthand on the flag set.
func VarP(fs *pflag.FlagSet, name, shorthand string, options []string, usage string) {
	fs.VarP(New(options...), name, shorthand, usage)
}

// Get returns the current value of the named enum flag.
func Get(fs *pflag.FlagSet, name string) (string, error) {
	flag := fs.Lookup(name)
	if flag == nil {
		return "", fmt.Errorf("flag %q does not exist", name)
	}
	return flag.Value.String(), nil
}
