package ansi

import "fmt"

// table is a map of ANSI control characters to their names.
// any unsupported ansi character formats with its hex value only.
var table = map[uint8]string{
	C0.NUL: "NUL", // Null
	C0.BEL: "BEL", // Bell
	C0.BS:  "BS",  // Backspace
	C0.HT:  "HT",  // Horizontal Tab
	C0.LF:  "LF",  // Line Feed
	C0.CR:  "CR",  // Carriage Return
	C0.ESC: "ESC", // Escape
	C0.DEL: "DEL", // Delete
}

// String formats a byte for debug logging.
func String(val uint8) string {
	if name, ok := table[val]; ok {
		return fmt.Sprintf("%s (0x%02X) (%q)", name, val, rune(val))
	}
	return fmt.Sprintf("0x%02X (%q)", val, rune(val))
}
