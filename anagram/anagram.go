// Package anagram groups strings that are permutations of each other.
//
// Two strings belong to the same group when their equivalence keys match.
// Characters are compared as Unicode code points and case is significant,
// so "Tea" and "eat" end up in different groups. Words that are not valid
// UTF-8 are compared byte by byte instead, so their invalid bytes stay
// distinct.
//
// Example usage:
//
//	groups := anagram.Group([]string{"eat", "tea", "tan", "ate", "nat", "bat"})
//	// [[eat tea ate] [tan nat] [bat]]
package anagram

import (
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// KeyFunc derives the equivalence key of a word. Two words must yield the
// same key if and only if they are anagrams of each other.
type KeyFunc func(word string) string

// SortedKey returns the runes of word in ascending order. A word that is not
// valid UTF-8 has its bytes sorted instead; such a key is never valid UTF-8
// either, so it cannot collide with the key of a valid word.
func SortedKey(word string) string {
	if !utf8.ValidString(word) {
		b := []byte(word)
		slices.Sort(b)
		return string(b)
	}

	runes := []rune(word)
	slices.Sort(runes)
	return string(runes)
}

// FrequencyKey returns a rune-count signature of word: each distinct rune in
// ascending order, followed by its count and a NUL separator. For "bab" that
// is "a1\x00b2\x00". It avoids sorting the whole word, which pays off on long
// words over small alphabets.
//
// A word that is not valid UTF-8 is counted byte by byte and its key starts
// with 0xff, a byte no valid key contains.
func FrequencyKey(word string) string {
	var sb strings.Builder
	counts := map[rune]int{}

	valid := utf8.ValidString(word)
	if valid {
		for _, r := range word {
			counts[r]++
		}
	} else {
		sb.WriteByte(0xff)
		for i := 0; i < len(word); i++ {
			counts[rune(word[i])]++
		}
	}

	keys := make([]rune, 0, len(counts))
	for r := range counts {
		keys = append(keys, r)
	}
	slices.Sort(keys)

	for _, r := range keys {
		if valid {
			sb.WriteRune(r)
		} else {
			sb.WriteByte(byte(r))
		}
		sb.WriteString(strconv.Itoa(counts[r]))
		// separator keeps digit runes apart from their counts
		sb.WriteByte(0)
	}

	return sb.String()
}

// Group partitions words into anagram groups using SortedKey.
//
// Words keep their input order inside a group, and groups are ordered by the
// first occurrence of their key. An empty input yields an empty result.
func Group(words []string) [][]string {
	return GroupBy(words, SortedKey)
}

// GroupBy partitions words into groups of equal key, with the same ordering
// guarantees as Group.
func GroupBy(words []string, key KeyFunc) [][]string {
	groups := make([][]string, 0)
	positions := make(map[string]int, len(words))

	for _, w := range words {
		k := key(w)
		pos, ok := positions[k]
		if !ok {
			pos = len(groups)
			positions[k] = pos
			groups = append(groups, nil)
		}
		groups[pos] = append(groups[pos], w)
	}

	return groups
}
