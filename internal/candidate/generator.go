package candidate

import (
	"iter"
	"slices"
	"unicode/utf8"

	"github.com/nao1215/fernetcrack/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Generator produces the candidate space of a wordlist under the
// capitalize, insert-symbol, insert-digit transformations.
// A Generator is immutable and safe to share; each call to All or Word
// starts a fresh, independent enumeration.
type Generator struct {
	words   []string
	symbols [][]rune
	digits  [][]rune
}

// New creates a Generator. The slices are copied.
// Symbols and digits are normally single characters; longer strings are
// inserted whole.
func New(words, symbols, digits []string) *Generator {
	return &Generator{
		words:   slices.Clone(words),
		symbols: toRunes(symbols),
		digits:  toRunes(digits),
	}
}

func toRunes(items []string) [][]rune {
	out := make([][]rune, len(items))
	for i, s := range items {
		out[i] = []rune(s)
	}
	return out
}

// Words returns a copy of the base wordlist.
func (g *Generator) Words() []string {
	return slices.Clone(g.words)
}

// All returns every candidate of every word, in wordlist order.
// The sequence is finite and may be abandoned early by the consumer.
func (g *Generator) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		upper := cases.Upper(language.Und)
		for _, word := range g.words {
			if !g.enumerate(word, upper, yield) {
				return
			}
		}
	}
}

// Word returns the candidates of a single base word.
func (g *Generator) Word(word string) iter.Seq[string] {
	return func(yield func(string) bool) {
		g.enumerate(word, cases.Upper(language.Und), yield)
	}
}

// enumerate yields the candidates of one word and reports whether the
// consumer wants more.
func (g *Generator) enumerate(word string, upper cases.Caser, yield func(string) bool) bool {
	base := []rune(word)
	for i := range base {
		capitalized := capitalizeAt(base, i, upper)
		for _, symbol := range g.symbols {
			for j := 0; j <= len(capitalized); j++ {
				withSymbol := insertAt(capitalized, j, symbol)
				for _, digit := range g.digits {
					for k := 0; k <= len(withSymbol); k++ {
						if !yield(string(insertAt(withSymbol, k, digit))) {
							return false
						}
					}
				}
			}
		}
	}
	return true
}

// capitalizeAt returns word with only the rune at i uppercased.
// Some runes uppercase to more than one rune (for example "ß" to "SS").
func capitalizeAt(word []rune, i int, upper cases.Caser) []rune {
	replacement := []rune(upper.String(string(word[i])))
	out := make([]rune, 0, len(word)+len(replacement)-1)
	out = append(out, word[:i]...)
	out = append(out, replacement...)
	return append(out, word[i+1:]...)
}

// insertAt returns s with ins inserted before position pos.
func insertAt(s []rune, pos int, ins []rune) []rune {
	out := make([]rune, 0, len(s)+len(ins))
	out = append(out, s[:pos]...)
	out = append(out, ins...)
	return append(out, s[pos:]...)
}

// CountWord returns the closed-form number of candidates for a word of n
// characters: n * symbols * (n+1) * digits * (n+2).
func CountWord(n, symbols, digits int) uint64 {
	if n <= 0 || symbols <= 0 || digits <= 0 {
		return 0
	}
	un := uint64(n)
	return un * uint64(symbols) * (un + 1) * uint64(digits) * (un + 2)
}

// Count returns the total number of candidates without enumerating them.
// The closed form assumes every character uppercases to a single character.
func (g *Generator) Count() uint64 {
	var total uint64
	for _, word := range g.words {
		total += CountWord(utf8.RuneCountInString(word), len(g.symbols), len(g.digits))
	}
	return total
}

// Breakdown returns the per-word factors of the closed-form count.
func (g *Generator) Breakdown() []model.WordCount {
	counts := make([]model.WordCount, 0, len(g.words))
	for _, word := range g.words {
		n := utf8.RuneCountInString(word)
		wc := model.WordCount{
			Word:   word,
			Length: n,
			Total:  CountWord(n, len(g.symbols), len(g.digits)),
		}
		if n > 0 {
			wc.Capitalizations = uint64(n)
			wc.SymbolInsertions = uint64(len(g.symbols)) * uint64(n+1)
			wc.DigitInsertions = uint64(len(g.digits)) * uint64(n+2)
		}
		counts = append(counts, wc)
	}
	return counts
}
