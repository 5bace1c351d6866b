package linereader

import (
	"slices"
	"sort"
	"strings"
	"sync"
)

// DefaultWordBreakCharacters separates the token being completed from the
// rest of the input.
const DefaultWordBreakCharacters = " \t\v\f\a\b\r\n`~!@#$%^&*()-=+[{]}\\|;:'\",<.>/?"

// Suggest is a completion vocabulary that can be extended at any time and
// queried by prefix.
//
// Words are kept twice: once sorted byte-wise (exact) and once sorted with
// ASCII case folding (folded). Both completion modes are then a binary
// search for the range of matching words instead of a scan per keystroke.
// Inserts pay for this by sorting both sequences; they are expected to be
// rare and batched.
//
// All methods are safe for concurrent use.
type Suggest struct {
	mu     sync.Mutex
	exact  []string // ascending by byte value, no duplicates
	folded []string // same words, ascending by ASCII case-insensitive order

	wordBreakCharacters string
}

// NewSuggest creates an empty vocabulary. An empty wordBreakCharacters
// selects DefaultWordBreakCharacters.
func NewSuggest(wordBreakCharacters string) *Suggest {
	if wordBreakCharacters == "" {
		wordBreakCharacters = DefaultWordBreakCharacters
	}
	return &Suggest{wordBreakCharacters: wordBreakCharacters}
}

// AddWords merges words into the vocabulary. Words already present are
// ignored, so repeated loading of the same source is harmless.
func (s *Suggest) AddWords(words []string) {
	if len(words) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Initial load: take the batch as the base.
	if len(s.exact) == 0 {
		s.exact = slices.Clone(words)
		slices.Sort(s.exact)
		s.exact = slices.Compact(s.exact)
		s.folded = slices.Clone(s.exact)
		slices.SortFunc(s.folded, compareFoldThenExact)
		return
	}

	sorted := len(s.exact)
	seen := make(map[string]struct{}, len(words))
	for _, word := range words {
		if _, found := slices.BinarySearch(s.exact[:sorted], word); found {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		s.exact = append(s.exact, word)
		s.folded = append(s.folded, word)
	}
	if len(seen) == 0 {
		return
	}

	slices.Sort(s.exact)
	slices.SortFunc(s.folded, compareFoldThenExact)
}

// GetCompletions returns the words sharing a prefix with the last token of
// prefix. The token is whatever follows the last word-break character (it
// may be empty) and only its first prefixLength bytes take part in the
// comparison.
//
// If prefix contains no uppercase ASCII letter the match is case-insensitive,
// otherwise it is case-sensitive. The result is in vocabulary order and is
// never nil.
func (s *Suggest) GetCompletions(prefix string, prefixLength int) []string {
	lastWord := prefix
	if pos := strings.LastIndexAny(prefix, s.wordBreakCharacters); pos >= 0 {
		lastWord = prefix[pos+1:]
	}
	if prefixLength < 0 {
		prefixLength = 0
	}

	compare := comparePrefix
	caseSensitive := hasUpperASCII(prefix)
	if !caseSensitive {
		compare = comparePrefixFold
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	words := s.exact
	if !caseSensitive {
		words = s.folded
	}

	first := sort.Search(len(words), func(i int) bool {
		return compare(words[i], lastWord, prefixLength) >= 0
	})
	last := first + sort.Search(len(words)-first, func(i int) bool {
		return compare(words[first+i], lastWord, prefixLength) > 0
	})

	result := make([]string, last-first)
	copy(result, words[first:last])
	return result
}

// Words returns a copy of the vocabulary in byte order.
func (s *Suggest) Words() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.exact)
}

// FoldedWords returns a copy of the vocabulary in case-insensitive order.
func (s *Suggest) FoldedWords() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.folded)
}

// Len returns the number of distinct words.
func (s *Suggest) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.exact)
}

// truncate cuts s to at most n bytes.
func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// comparePrefix compares the first n bytes of a and b. A string shorter
// than n sorts before any longer string it is a prefix of.
func comparePrefix(a, b string, n int) int {
	return strings.Compare(truncate(a, n), truncate(b, n))
}

// comparePrefixFold is comparePrefix with ASCII case folding.
func comparePrefixFold(a, b string, n int) int {
	return compareFold(truncate(a, n), truncate(b, n))
}

// compareFold orders strings byte-wise after mapping ASCII uppercase
// letters to lowercase.
func compareFold(a, b string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		ca, cb := toLowerASCII(a[i]), toLowerASCII(b[i])
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// compareFoldThenExact breaks compareFold ties byte-wise so the folded
// order is deterministic ("Foo" before "foo").
func compareFoldThenExact(a, b string) int {
	if c := compareFold(a, b); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func toLowerASCII(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func hasUpperASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			return true
		}
	}
	return false
}
