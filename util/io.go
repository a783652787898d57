package util

import (
	"bufio"
	"io"
)

// MaxTokenSize bounds a single input token.  It matches the largest
// payload a UDP datagram can carry, so any accepted token fits on the
// wire for both transports.
const MaxTokenSize = 64 * 1024

// TokenReader yields one whitespace-delimited token per call to Next,
// reading lazily from the underlying source.
type TokenReader struct {
	sc *bufio.Scanner
}

// NewTokenReader wraps r.  Nothing is read until the first Next.
func NewTokenReader(r io.Reader) *TokenReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1024), MaxTokenSize)
	sc.Split(bufio.ScanWords)
	return &TokenReader{sc: sc}
}

// Next returns the next token.  It returns io.EOF once the source is
// exhausted and any other read error as-is.
func (t *TokenReader) Next() (string, error) {
	if t.sc.Scan() {
		return t.sc.Text(), nil
	}
	if err := t.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
