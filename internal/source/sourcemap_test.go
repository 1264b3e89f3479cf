package source_test

import (
	"testing"

	"slide/internal/source"
	"slide/internal/testkit"
)

func TestSourceMapOffsetRoundTrip(t *testing.T) {
	texts := []string{
		"",
		"x = 1",
		"x = 1\ny = 2\n",
		"a = 1\r\nb = 2\r\n",
		"\n\n\n",
		"no trailing newline",
	}
	for _, text := range texts {
		sm := source.NewSourceMap(text)
		if err := testkit.CheckOffsetRoundTrip(sm); err != nil {
			t.Errorf("text %q: %v", text, err)
		}
	}
}
