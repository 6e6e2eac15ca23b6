package lex

import (
	"io"

	"github.com/pkg/errors"
)

// Buffer pulls input symbols lazily from a reader function and holds the
// symbols read but not yet consumed by a lexer. Together with a Linear lexer
// a buffer retains at most the current lexeme plus the lexer's window.
type Buffer[I any] struct {
	read     func() (I, error)
	buf      []I
	consumed int
	eof      bool
	err      error
}

// NewBuffer creates a buffer reading from read. read signals the end of
// input with io.EOF; any other error ends the input as well and is reported
// by Err.
func NewBuffer[I any](read func() (I, error)) *Buffer[I] {
	return &Buffer[I]{read: read}
}

// BufferOf creates a buffer over an in-memory slice.
func BufferOf[I any](input []I) *Buffer[I] {
	b := &Buffer[I]{eof: true}
	b.buf = append(b.buf, input...)
	return b
}

func (b *Buffer[I]) peek(k int) (I, bool) {
	for len(b.buf) <= k && !b.eof {
		in, err := b.read()
		if err != nil {
			b.eof = true
			if !errors.Is(err, io.EOF) {
				tracer().Errorf("lexer input: %v", err)
				b.err = err
			}
			break
		}
		b.buf = append(b.buf, in)
	}
	if k < len(b.buf) {
		return b.buf[k], true
	}
	var none I
	return none, false
}

func (b *Buffer[I]) discard(n int) {
	if n > len(b.buf) {
		n = len(b.buf)
	}
	rest := len(b.buf) - n
	copy(b.buf, b.buf[n:])
	b.buf = b.buf[:rest]
	b.consumed += n
}

func (b *Buffer[I]) close() {
	b.eof = true
	b.buf = b.buf[:0]
}

// Empty is a predicate: is there no more input? Empty may read from the
// underlying reader.
func (b *Buffer[I]) Empty() bool {
	_, ok := b.peek(0)
	return !ok
}

// Buffered returns the number of symbols read but not yet consumed.
func (b *Buffer[I]) Buffered() int {
	return len(b.buf)
}

// Consumed returns the number of symbols consumed by lexers so far.
func (b *Buffer[I]) Consumed() int {
	return b.consumed
}

// Err returns the error of the underlying reader, if any. io.EOF is not an error.
func (b *Buffer[I]) Err() error {
	return b.err
}
