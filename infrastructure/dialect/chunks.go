package dialect

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxChunkLength is the default bound on a chunk, in runes.
const DefaultMaxChunkLength = 32000

// Chunks holds command clauses packed into size-bounded command lines.
type Chunks struct {
	chunks    []string
	separator string
}

// Pack greedily joins whole clauses with separator into chunks of at most
// maxLength runes. A clause is never split: one longer than maxLength on its
// own becomes its own chunk. A non-positive maxLength disables splitting.
// Joining the result with separator reproduces strings.Join(clauses, separator).
func Pack(clauses []string, separator string, maxLength int) Chunks {
	result := Chunks{separator: separator}
	if len(clauses) == 0 {
		return result
	}
	if maxLength <= 0 {
		result.chunks = []string{strings.Join(clauses, separator)}
		return result
	}

	sepRunes := utf8.RuneCountInString(separator)
	var acc []string
	accRunes := 0

	flush := func() {
		if len(acc) == 0 {
			return
		}
		result.chunks = append(result.chunks, strings.Join(acc, separator))
		acc = nil
		accRunes = 0
	}

	for _, clause := range clauses {
		clauseRunes := utf8.RuneCountInString(clause)

		if clauseRunes >= maxLength {
			flush()
			result.chunks = append(result.chunks, clause)
			continue
		}

		needed := clauseRunes
		if len(acc) > 0 {
			needed += sepRunes
		}
		if accRunes+needed > maxLength {
			flush()
			needed = clauseRunes
		}

		acc = append(acc, clause)
		accRunes += needed
	}
	flush()

	return result
}

// All returns the chunks in send order.
func (c Chunks) All() []string {
	out := make([]string, len(c.chunks))
	copy(out, c.chunks)
	return out
}

// Len returns the number of chunks.
func (c Chunks) Len() int { return len(c.chunks) }

// Separator returns the separator the chunks were packed with.
func (c Chunks) Separator() string { return c.separator }

// Text rejoins the chunks into the unchunked command text.
func (c Chunks) Text() string { return strings.Join(c.chunks, c.separator) }
