package library

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Technology", "technology"},
		{"spaces", "Web Development Tips", "web-development-tips"},
		{"punctuation", "Go, Gin & Mongo!", "go-gin-mongo"},
		{"collapse runs", "a  --  b", "a-b"},
		{"trim edges", "  hello  ", "hello"},
		{"only symbols", "!!!", ""},
		{"unicode stripped", "café au lait", "caf-au-lait"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := Slugify(tc.in)
			require.Equal(t, tc.want, got)

			// idempotent
			require.Equal(t, got, Slugify(got))
			if got != "" {
				require.True(t, ValidSlug(got))
			}
		})
	}
}

func TestWordCount(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, WordCount(""))
	require.Equal(t, 0, WordCount("   "))
	require.Equal(t, 3, WordCount("one two three"))
	require.Equal(t, 3, WordCount("tabs\tand\nnewlines"))
}
