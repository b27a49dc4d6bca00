package opts

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ArgumentValueError is returned when a flag is given a value outside its
// allowed set.
type ArgumentValueError struct {
	Flag    string
	Value   string
	Allowed []string
}

func (e *ArgumentValueError) Error() string {
	return fmt.Sprintf("Unsupported argument '%s' for option %s. Supported arguments: %s",
		e.Value, dashed(e.Flag), strings.Join(e.Allowed, ", "),
	)
}

// MissingArgumentError is returned when an argument-taking flag has no value.
type MissingArgumentError struct {
	Flag string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("Option %s requires an argument", dashed(e.Flag))
}

// UnknownFlagError is returned for flags the dispatcher doesn't define.
type UnknownFlagError struct {
	Flag string
}

func (e *UnknownFlagError) Error() string {
	return fmt.Sprintf("Unknown option %s", dashed(e.Flag))
}

// InvalidModeError is returned when dispatch reaches a mode value that Parse
// can never produce.
type InvalidModeError struct {
	Category string
	Mode     string
	Allowed  []string
}

func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("Invalid %s mode: %s. Supported modes: %s",
		e.Category, e.Mode, strings.Join(e.Allowed, ", "),
	)
}

// dashed formats a flag name the way it is written on the command line.
func dashed(name string) string {
	if utf8.RuneCountInString(name) > 1 {
		return "--" + name
	}
	return "-" + name
}
