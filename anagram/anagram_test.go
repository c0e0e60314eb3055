package anagram

import (
	"slices"
	"testing"

	"gotest.tools/v3/assert"
)

func TestGroup(t *testing.T) {
	t.Parallel()

	type input struct {
		words []string
	}

	type output struct {
		expectedRes [][]string
	}

	tests := []struct {
		name   string
		input  input
		output output
	}{
		{
			name:   "classic example",
			input:  input{words: []string{"eat", "tea", "tan", "ate", "nat", "bat"}},
			output: output{expectedRes: [][]string{{"eat", "tea", "ate"}, {"tan", "nat"}, {"bat"}}},
		},
		{
			name:   "empty input",
			input:  input{words: []string{}},
			output: output{expectedRes: [][]string{}},
		},
		{
			name:   "nil input",
			input:  input{words: nil},
			output: output{expectedRes: [][]string{}},
		},
		{
			name:   "duplicates and empty strings",
			input:  input{words: []string{"", "ab", "", "ba", "ab"}},
			output: output{expectedRes: [][]string{{"", ""}, {"ab", "ba", "ab"}}},
		},
		{
			name:   "case is significant",
			input:  input{words: []string{"Tea", "eat", "aTe"}},
			output: output{expectedRes: [][]string{{"Tea", "aTe"}, {"eat"}}},
		},
		{
			name:   "invalid utf-8 bytes stay distinct",
			input:  input{words: []string{"\xff", "\xfe", "a\xff", "\xffa", "\u00ff", "\ufffd"}},
			output: output{expectedRes: [][]string{{"\xff"}, {"\xfe"}, {"a\xff", "\xffa"}, {"\u00ff"}, {"\ufffd"}}},
		},
		{
			name:   "multi-byte characters",
			input:  input{words: []string{"héllo", "olléh", "hello"}},
			output: output{expectedRes: [][]string{{"héllo", "olléh"}, {"hello"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.DeepEqual(t, Group(tt.input.words), tt.output.expectedRes)
			assert.DeepEqual(t, GroupBy(tt.input.words, FrequencyKey), tt.output.expectedRes)
		})
	}
}

func TestGroupPartitionsInput(t *testing.T) {
	t.Parallel()

	words := []string{"listen", "silent", "enlist", "google", "gogole", "cat", "act", "tac", "dog", "", "a"}
	groups := Group(words)

	var flat []string
	for i, g := range groups {
		for _, w := range g {
			assert.Equal(t, SortedKey(w), SortedKey(g[0]), "group %d is not homogeneous", i)
		}
		for j := i + 1; j < len(groups); j++ {
			assert.Assert(t, SortedKey(g[0]) != SortedKey(groups[j][0]), "groups %d and %d share a key", i, j)
		}
		flat = append(flat, g...)
	}

	want := slices.Clone(words)
	slices.Sort(want)
	slices.Sort(flat)
	assert.DeepEqual(t, flat, want)
}

func TestKeys(t *testing.T) {
	t.Parallel()

	assert.Equal(t, SortedKey("tea"), "aet")
	assert.Equal(t, SortedKey(""), "")
	assert.Equal(t, FrequencyKey("bab"), "a1\x00b2\x00")

	// a digit rune must not blur into the count of its neighbour
	assert.Assert(t, FrequencyKey("1") != FrequencyKey("11"))
	assert.Assert(t, FrequencyKey("a11") != FrequencyKey("a1"))
	assert.Equal(t, FrequencyKey("stop"), FrequencyKey("pots"))

	assert.Equal(t, SortedKey("\xffa\xfe"), "a\xfe\xff")
	assert.Equal(t, FrequencyKey("\xffa\xff"), "\xffa1\x00\xff2\x00")
	assert.Assert(t, SortedKey("\xff") != SortedKey("\xfe"))
	assert.Assert(t, FrequencyKey("\xff") != FrequencyKey("\u00ff"))
}
