// Package text decodes the two name encodings HFS and HFS+ volumes carry:
// MacRoman Pascal strings (HFS Standard) and UTF-16BE (HFS+), plus the
// canonical decomposition HFS+ applies to catalog names (spec.md §4.8, C3).
package text

import (
	"golang.org/x/text/encoding/charmap"

	"github.com/hfsreader/hfsreader/internal/hfserr"
)

// DecodeMacRoman converts raw MacRoman bytes (an HFS Standard Pascal
// string's payload, length byte already stripped by the caller) to a Go
// string.
func DecodeMacRoman(data []byte) (string, error) {
	out, err := charmap.Macintosh.NewDecoder().Bytes(data)
	if err != nil {
		return "", hfserr.Wrap(hfserr.PathSyntax, "decoding MacRoman name", err)
	}
	return string(out), nil
}

// EncodeMacRoman converts a Go string back to MacRoman bytes, for building
// quarry keys to search an HFS Standard catalog tree. A base letter followed
// by a combining mark listed in decomposition is first recomposed into the
// precomposed letter, so DecodeMacRomanDecomposed's output encodes back to
// its original bytes.
func EncodeMacRoman(s string) ([]byte, error) {
	runes := []rune(s)
	composed := make([]rune, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if i+1 < len(runes) {
			for pre, pair := range decomposition {
				if pair[0] == r && pair[1] == runes[i+1] {
					r = pre
					i++
					break
				}
			}
		}
		composed = append(composed, r)
	}
	out, err := charmap.Macintosh.NewEncoder().Bytes([]byte(string(composed)))
	if err != nil {
		return nil, hfserr.Wrap(hfserr.PathSyntax, "encoding MacRoman name", err)
	}
	return out, nil
}

// decomposition maps a precomposed Latin letter to its canonical base
// letter and combining diacritical mark, covering the accented characters
// MacRoman's upper half defines (Apple's "Mac OS Extended (Roman)" chart,
// cross-referenced against Unicode's NFD decompositions). HFS+ stores
// catalog names fully decomposed; this is the inverse direction a reader
// needs only when comparing against a precomposed search term.
var decomposition = map[rune][2]rune{
	'Ä': {'A', '̈'}, 'À': {'A', '̀'}, 'Â': {'A', '̂'}, 'Ã': {'A', '̃'}, 'Å': {'A', '̊'},
	'ä': {'a', '̈'}, 'à': {'a', '̀'}, 'â': {'a', '̂'}, 'ã': {'a', '̃'}, 'å': {'a', '̊'},
	'Ç': {'C', '̧'}, 'ç': {'c', '̧'},
	'É': {'E', '́'}, 'È': {'E', '̀'}, 'Ê': {'E', '̂'}, 'Ë': {'E', '̈'},
	'é': {'e', '́'}, 'è': {'e', '̀'}, 'ê': {'e', '̂'}, 'ë': {'e', '̈'},
	'Í': {'I', '́'}, 'Ì': {'I', '̀'}, 'Î': {'I', '̂'}, 'Ï': {'I', '̈'},
	'í': {'i', '́'}, 'ì': {'i', '̀'}, 'î': {'i', '̂'}, 'ï': {'i', '̈'},
	'Ñ': {'N', '̃'}, 'ñ': {'n', '̃'},
	'Ó': {'O', '́'}, 'Ò': {'O', '̀'}, 'Ô': {'O', '̂'}, 'Õ': {'O', '̃'}, 'Ö': {'O', '̈'},
	'ó': {'o', '́'}, 'ò': {'o', '̀'}, 'ô': {'o', '̂'}, 'õ': {'o', '̃'}, 'ö': {'o', '̈'},
	'Ú': {'U', '́'}, 'Ù': {'U', '̀'}, 'Û': {'U', '̂'}, 'Ü': {'U', '̈'},
	'ú': {'u', '́'}, 'ù': {'u', '̀'}, 'û': {'u', '̂'}, 'ü': {'u', '̈'},
	'ÿ': {'y', '̈'}, 'Ÿ': {'Y', '̈'},
}

// Decompose applies canonical decomposition to the precomposed letters
// MacRoman can represent, matching the form HFS+ stores on disk so a
// decoded HFS Standard name compares equal to its HFS+ counterpart (S2 in
// spec.md §8: "\x04Caf\x8E" must decode to "Cafe" + U+0301).
func Decompose(s string) string {
	out := make([]rune, 0, len(s)*2)
	for _, r := range s {
		if pair, ok := decomposition[r]; ok {
			out = append(out, pair[0], pair[1])
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

// DecodeMacRomanDecomposed decodes a MacRoman Pascal-string payload and
// decomposes it in one step, the form catalog-name comparisons use.
func DecodeMacRomanDecomposed(data []byte) (string, error) {
	s, err := DecodeMacRoman(data)
	if err != nil {
		return "", err
	}
	return Decompose(s), nil
}
