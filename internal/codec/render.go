package codec

import (
	"fmt"
	"strconv"
	"strings"
)

// forwardCase wraps a formatter body in a switch case keyed on the parameter
// name, matching the indentation of the host editor's display switch.
func forwardCase(param, body string) string {
	return fmt.Sprintf("case '%s':\n    %s\n    break;", EscapeJS(param), body)
}

// jsNum renders a numeric option as a JavaScript literal without a trailing
// decimal point (1 stays 1, 2.5 stays 2.5).
func jsNum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// EscapeJS escapes backslashes and single quotes for interpolation into the
// host's single-quoted string literals.
func EscapeJS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "'", "\\'")
	return s
}
