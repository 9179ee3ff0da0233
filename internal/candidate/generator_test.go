package candidate

import (
	"slices"
	"strings"
	"testing"
	"unicode"
)

var (
	testSymbols = []string{"!", "$", "%", "&", "?", "^", "*", "+", "@", "#"}
	testDigits  = []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}
)

func collect(g *Generator) []string {
	var out []string
	for c := range g.All() {
		out = append(out, c)
	}
	return out
}

// TestGeneratorOrder pins the exact nested enumeration order.
func TestGeneratorOrder(t *testing.T) {
	t.Parallel()

	g := New([]string{"ab"}, []string{"!"}, []string{"0"})
	got := collect(g)

	want := []string{
		// i=0 "Ab", j=0 "!Ab"
		"0!Ab", "!0Ab", "!A0b", "!Ab0",
		// j=1 "A!b"
		"0A!b", "A0!b", "A!0b", "A!b0",
		// j=2 "Ab!"
		"0Ab!", "A0b!", "Ab0!", "Ab!0",
		// i=1 "aB", j=0 "!aB"
		"0!aB", "!0aB", "!a0B", "!aB0",
		// j=1 "a!B"
		"0a!B", "a0!B", "a!0B", "a!B0",
		// j=2 "aB!"
		"0aB!", "a0B!", "aB0!", "aB!0",
	}

	if !slices.Equal(got, want) {
		t.Errorf("unexpected order:\n got  %v\n want %v", got, want)
	}
}

// TestGeneratorSymbolBeforeDigitLoops verifies that digits vary fastest and
// symbols vary before the symbol position advances.
func TestGeneratorSymbolBeforeDigitLoops(t *testing.T) {
	t.Parallel()

	g := New([]string{"a"}, []string{"!", "$"}, []string{"0", "1"})
	got := collect(g)

	want := []string{
		"0!A", "!0A", "!A0", // symbol "!" at 0, digit "0"
		"1!A", "!1A", "!A1", // digit "1"
		"0A!", "A0!", "A!0", // symbol "!" at 1
		"1A!", "A1!", "A!1",
		"0$A", "$0A", "$A0", // symbol "$" at 0
		"1$A", "$1A", "$A1",
		"0A$", "A0$", "A$0",
		"1A$", "A1$", "A$1",
	}

	if !slices.Equal(got, want) {
		t.Errorf("unexpected order:\n got  %v\n want %v", got, want)
	}
}

// TestCountMatchesEnumeration verifies the closed form against actual
// enumeration for several word lengths and set sizes.
func TestCountMatchesEnumeration(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		words   []string
		symbols []string
		digits  []string
	}{
		{"single letter", []string{"a"}, []string{"!"}, []string{"0"}},
		{"two words", []string{"ab", "xyz"}, []string{"!", "#"}, []string{"1", "2", "3"}},
		{"reference sets", []string{"pisa"}, testSymbols, testDigits},
		{"empty word", []string{""}, testSymbols, testDigits},
		{"no symbols", []string{"pisa"}, nil, testDigits},
		{"no digits", []string{"pisa"}, testSymbols, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			g := New(tc.words, tc.symbols, tc.digits)
			var n uint64
			for range g.All() {
				n++
			}
			if n != g.Count() {
				t.Errorf("enumerated %d candidates, closed form says %d", n, g.Count())
			}

			for _, w := range tc.words {
				l := len([]rune(w))
				want := uint64(l) * uint64(len(tc.symbols)) * uint64(l+1) * uint64(len(tc.digits)) * uint64(l+2)
				if got := CountWord(l, len(tc.symbols), len(tc.digits)); got != want {
					t.Errorf("CountWord(%d) = %d, want %d", l, got, want)
				}
			}
		})
	}
}

// TestQuickTestCount pins the quick-test space of "sicurezza".
func TestQuickTestCount(t *testing.T) {
	t.Parallel()

	g := New([]string{"sicurezza"}, testSymbols, testDigits)
	if g.Count() != 99000 {
		t.Errorf("expected 99000 candidates, got %d", g.Count())
	}

	var n uint64
	for range g.All() {
		n++
	}
	if n != 99000 {
		t.Errorf("expected to enumerate 99000 candidates, got %d", n)
	}
}

// TestReferenceDictionaryCounts pins the totals of the reference dictionary.
func TestReferenceDictionaryCounts(t *testing.T) {
	t.Parallel()

	full := []string{"gatto", "giulia", "martina", "pisa", "poesia", "qwerty", "sicurezza", "storia", "tavolo"}
	if got := New(full, testSymbols, testDigits).Count(); got != 350400 {
		t.Errorf("expected 350400 for the full dictionary, got %d", got)
	}

	withPassword := append(slices.Clone(full), "password")
	if got := New(withPassword, testSymbols, testDigits).Count(); got != 422400 {
		t.Errorf("expected 422400 with \"password\" included, got %d", got)
	}
}

// TestCandidatesAreStructurallyValid checks the inverse of each
// transformation on every generated candidate.
func TestCandidatesAreStructurallyValid(t *testing.T) {
	t.Parallel()

	words := []string{"pisa", "gatto"}
	g := New(words, testSymbols, testDigits)

	isSymbol := func(r rune) bool { return slices.Contains(testSymbols, string(r)) }
	for _, word := range words {
		for c := range g.Word(word) {
			runes := []rune(c)
			if len(runes) != len([]rune(word))+2 {
				t.Fatalf("%q: expected length %d", c, len(word)+2)
			}

			var upper, symbols, digits int
			var letters strings.Builder
			for _, r := range runes {
				switch {
				case unicode.IsUpper(r):
					upper++
					letters.WriteRune(unicode.ToLower(r))
				case unicode.IsDigit(r):
					digits++
				case isSymbol(r):
					symbols++
				default:
					letters.WriteRune(r)
				}
			}

			if upper != 1 || symbols != 1 || digits != 1 {
				t.Fatalf("%q: expected 1 upper, 1 symbol, 1 digit; got %d, %d, %d", c, upper, symbols, digits)
			}
			if letters.String() != word {
				t.Fatalf("%q: letters %q do not spell %q", c, letters.String(), word)
			}
		}
	}
}

// TestGeneratorIsRestartable verifies that each call starts from the beginning.
func TestGeneratorIsRestartable(t *testing.T) {
	t.Parallel()

	g := New([]string{"ab"}, []string{"!"}, []string{"0"})

	first := collect(g)
	second := collect(g)
	if !slices.Equal(first, second) {
		t.Error("expected identical sequences from two enumerations")
	}
}

// TestGeneratorEarlyStop verifies that the consumer can abandon the sequence.
func TestGeneratorEarlyStop(t *testing.T) {
	t.Parallel()

	g := New([]string{"gatto", "pisa"}, testSymbols, testDigits)

	var seen []string
	for c := range g.All() {
		seen = append(seen, c)
		if len(seen) == 3 {
			break
		}
	}

	want := []string{"0!Gatto", "!0Gatto", "!G0atto"}
	if !slices.Equal(seen, want) {
		t.Errorf("expected %v, got %v", want, seen)
	}
}

// TestGeneratorPreservesOriginalCasing verifies that only one position changes case.
func TestGeneratorPreservesOriginalCasing(t *testing.T) {
	t.Parallel()

	g := New([]string{"aB"}, []string{"!"}, []string{"0"})
	var first []string
	for c := range g.All() {
		first = append(first, c)
		if len(first) == 1 {
			break
		}
	}
	if first[0] != "0!AB" {
		t.Errorf("expected \"0!AB\", got %q", first[0])
	}
}

// TestBreakdown tests the per-word factors.
func TestBreakdown(t *testing.T) {
	t.Parallel()

	g := New([]string{"sicurezza", ""}, testSymbols, testDigits)
	b := g.Breakdown()
	if len(b) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(b))
	}

	s := b[0]
	if s.Word != "sicurezza" || s.Length != 9 {
		t.Errorf("unexpected entry %+v", s)
	}
	if s.Capitalizations != 9 || s.SymbolInsertions != 100 || s.DigitInsertions != 110 {
		t.Errorf("unexpected factors %+v", s)
	}
	if s.Total != 99000 {
		t.Errorf("expected total 99000, got %d", s.Total)
	}

	if b[1].Total != 0 || b[1].Capitalizations != 0 {
		t.Errorf("expected empty word to contribute nothing, got %+v", b[1])
	}
}

// TestNewCopiesInput verifies that later changes to the caller's slices are ignored.
func TestNewCopiesInput(t *testing.T) {
	t.Parallel()

	words := []string{"pisa"}
	g := New(words, testSymbols, testDigits)
	words[0] = "x"

	if got := g.Words(); got[0] != "pisa" {
		t.Errorf("expected wordlist to be copied, got %v", got)
	}
}
