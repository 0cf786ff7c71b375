package main

import "strings"

const upperhex = "0123456789ABCDEF"

// unreserved is the RFC 3986 punctuation that urllib's quote never encodes.
const unreserved = "-._~"

type escaper struct {
	safe [128]bool
}

type escapeOption func(*escaper)

// withSafe leaves the ASCII characters in chars unencoded. Non-ASCII runes
// are ignored.
func withSafe(chars string) escapeOption {
	return func(e *escaper) {
		for i := 0; i < len(chars); i++ {
			if c := chars[i]; c < 128 {
				e.safe[c] = true
			}
		}
	}
}

func withUnreserved() escapeOption {
	return withSafe(unreserved)
}

// escape percent-encodes every byte of s that is not alphanumeric and not
// marked safe. Hex digits are uppercase.
func escape(s string, opts ...escapeOption) string {
	var e escaper
	for _, opt := range opts {
		opt(&e)
	}

	n := 0
	for i := 0; i < len(s); i++ {
		if !e.keep(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if e.keep(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0F])
	}

	return b.String()
}

func (e *escaper) keep(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	case c < 128:
		return e.safe[c]
	}
	return false
}
