package domain

import "strings"

// IdentifierSet is a journal file set as printed in the trace. Only its
// cardinality is ever compared, so the tokens themselves are not kept.
type IdentifierSet struct {
	size int
}

func NewIdentifierSet(size int) IdentifierSet {
	if size < 0 {
		size = 0
	}
	return IdentifierSet{size: size}
}

func (s IdentifierSet) Len() int {
	return s.size
}

// ExtractSet parses the bracketed, comma separated list out of a gc candidates
// payload. With txRange set, the leading "[first, last]" range literal is
// skipped before looking for the list.
func ExtractSet(payload string, txRange bool) (IdentifierSet, error) {
	rest := payload
	if txRange {
		end := strings.Index(rest, "]")
		if end < 0 {
			return IdentifierSet{}, newMalformedLineError(payload, "missing tx range closing bracket")
		}
		if end+2 > len(rest) {
			return IdentifierSet{}, newMalformedLineError(payload, "missing set after tx range")
		}
		rest = rest[end+2:]
	}

	open := strings.Index(rest, "[")
	if open < 0 {
		return IdentifierSet{}, newMalformedLineError(payload, "missing opening bracket")
	}
	closing := strings.Index(rest[open+1:], "]")
	if closing < 0 {
		return IdentifierSet{}, newMalformedLineError(payload, "missing closing bracket")
	}

	return NewIdentifierSet(countTokens(rest[open+1 : open+1+closing])), nil
}

// countTokens counts comma separated tokens, ignoring empty ones the way a
// delimiter tokenizer does.
func countTokens(list string) int {
	count := 0
	for _, token := range strings.Split(list, ",") {
		if token != "" {
			count++
		}
	}
	return count
}
