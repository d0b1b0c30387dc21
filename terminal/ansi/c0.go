package ansi

type c0 struct {
	NUL uint8 // NUL is the null character (Caret: ^@, Char: \0).
	BEL uint8 // BEL is the bell character (Caret: ^G, Char: \a).
	BS  uint8 // BS is the backspace character (Caret: ^H, Char: \b).
	HT  uint8 // HT is the horizontal tab character (Caret: ^I, Char: \t).
	LF  uint8 // LF is the line feed character (Caret: ^J, Char: \n).
	CR  uint8 // CR is the carriage return character (Caret: ^M, Char: \r).
	ESC uint8 // ESC is the Escape character (Caret: ^[).
	DEL uint8 // DEL is the delete character.
}

// C0 (7-bit) control characters from ANSI.
//
// This is not complete, control characters are only added to this
// as the encoder and the probe protocol use them.
//
// https://vt100.net/docs/vt100-ug/chapter3.html#S3.2
var C0 = c0{
	NUL: 0x00,
	BEL: 0x07,
	BS:  0x08,
	HT:  0x09,
	LF:  0x0A,
	CR:  0x0D,
	ESC: 0x1B,
	DEL: 0x7F,
}

// Fe (C1 set element) escape sequences in their 7-bit two-byte form. The
// single-byte C1 forms (e.g. ST as 0x9C) exist but this package only ever
// emits the 7-bit form.
const (
	CSI = "\x1b["  // Control Sequence Introducer
	OSC = "\x1b]"  // Operating System Command
	ST  = "\x1b\\" // String Terminator, closes OSC
)
