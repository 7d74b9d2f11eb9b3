package lexer

import "unicode/utf8"

// eof is the sentinel rune InputBuffer.ReadChar returns once the source
// is exhausted. It is returned indefinitely; there is no error.
const eof rune = 0

// InputBuffer holds the not-yet-consumed characters of a source program,
// whether it was loaded from a file or a string. It has no seek and no
// multi-char pushback — the Lexer keeps its own one-character lookahead.
type InputBuffer struct {
	src    string
	offset int
}

// NewFromString creates an InputBuffer over an in-memory string.
func NewFromString(src string) *InputBuffer {
	b := &InputBuffer{}
	b.Reset(src)
	return b
}

// NewFromFile creates an InputBuffer over the contents of path.
func NewFromFile(path string, contents []byte) *InputBuffer {
	return NewFromString(string(contents))
}

// Reset reloads the buffer with a new string and resets the read cursor
// to the start, stripping a leading UTF-8 BOM if present.
func (b *InputBuffer) Reset(src string) {
	if len(src) >= 3 && src[0] == 0xEF && src[1] == 0xBB && src[2] == 0xBF {
		src = src[3:]
	}
	b.src = src
	b.offset = 0
}

// ReadChar returns the next rune and advances past it, or returns
// (eof, false) once the buffer is exhausted.
func (b *InputBuffer) ReadChar() (rune, bool) {
	if b.offset >= len(b.src) {
		return eof, false
	}
	r, size := utf8.DecodeRuneInString(b.src[b.offset:])
	b.offset += size
	return r, true
}
