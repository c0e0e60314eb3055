package window

import "unicode/utf8"

// LongestUnique returns the longest substring of text in which no character
// repeats. When several substrings share the maximal length, the leftmost one
// wins. Characters are Unicode code points and the result is always a slice
// of text.
//
// Example:
//
//	LongestUnique("abcabcbb") // "abc"
func LongestUnique(text string) string {
	inWindow := make(map[rune]struct{})
	left, bestStart, bestEnd, bestLen := 0, 0, 0, 0
	size := 0

	for right := 0; right < len(text); {
		r, width := utf8.DecodeRuneInString(text[right:])

		for {
			if _, dup := inWindow[r]; !dup {
				break
			}
			evicted, w := utf8.DecodeRuneInString(text[left:])
			delete(inWindow, evicted)
			left += w
			size--
		}

		inWindow[r] = struct{}{}
		size++
		right += width

		if size > bestLen {
			bestStart, bestEnd, bestLen = left, right, size
		}
	}

	return text[bestStart:bestEnd]
}
