package utils

import "strings"

// Assert panics when condition is false. Only used for internal invariants,
// never for validating caller input.
func Assert(condition bool, message ...string) {
	if !condition {
		if len(message) > 0 {
			panic(strings.Join(message, " "))
		}
		panic("failed assertion")
	}
}
