package decode

import (
	"strings"
	"unicode/utf8"
)

// Splitter separates a streamed response into a prose prefix and a JSON
// suffix at a delimiter. Chunks may cut the delimiter, or a UTF-8
// sequence, at any byte; the splitter holds back just enough of the tail
// to decide.
type Splitter struct {
	delim   string
	prose   strings.Builder
	json    strings.Builder
	pending string
	found   bool
}

// NewSplitter returns a Splitter for the given delimiter.
func NewSplitter(delim string) *Splitter {
	return &Splitter{delim: delim}
}

// Write consumes a chunk and returns the prose released by it, which is
// safe to display immediately.
func (s *Splitter) Write(chunk string) string {
	if s.found {
		s.json.WriteString(chunk)
		return ""
	}

	buf := s.pending + chunk
	s.pending = ""

	if i := strings.Index(buf, s.delim); i >= 0 {
		released := buf[:i]
		s.prose.WriteString(released)
		s.json.WriteString(buf[i+len(s.delim):])
		s.found = true
		return released
	}

	hold := delimOverlap(buf, s.delim)
	cut := len(buf) - hold
	cut = completeRunes(buf[:cut])

	released := buf[:cut]
	s.pending = buf[cut:]
	s.prose.WriteString(released)
	return released
}

// Flush releases any held-back text as prose. Call it when the stream
// ends without a delimiter.
func (s *Splitter) Flush() string {
	if s.found || s.pending == "" {
		return ""
	}
	released := s.pending
	s.pending = ""
	s.prose.WriteString(released)
	return released
}

// Found reports whether the delimiter has been seen.
func (s *Splitter) Found() bool { return s.found }

// Prose returns all prose released so far.
func (s *Splitter) Prose() string { return s.prose.String() }

// JSON returns the text after the delimiter, trimmed.
func (s *Splitter) JSON() string { return strings.TrimSpace(s.json.String()) }

// delimOverlap returns the length of the longest suffix of buf that is a
// proper prefix of delim.
func delimOverlap(buf, delim string) int {
	n := len(delim) - 1
	if n > len(buf) {
		n = len(buf)
	}
	for k := n; k > 0; k-- {
		if strings.HasSuffix(buf, delim[:k]) {
			return k
		}
	}
	return 0
}

// completeRunes returns the length of the longest prefix of s that does
// not end inside a multi-byte sequence.
func completeRunes(s string) int {
	end := len(s)
	for i := 1; i <= utf8.UTFMax && i <= end; i++ {
		b := s[end-i]
		if b < utf8.RuneSelf {
			return end
		}
		if utf8.RuneStart(b) {
			if utf8.FullRuneInString(s[end-i:]) {
				return end
			}
			return end - i
		}
	}
	return end
}
