package keyword

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty", text: "", want: []string{}},
		{name: "blank", text: "   \t ", want: []string{}},
		{name: "single", text: "apple", want: []string{"apple"}},
		{name: "lowercases", text: "Apple RED", want: []string{"apple", "red"}},
		{name: "collapses whitespace", text: "  banana \t yellow\n", want: []string{"banana", "yellow"}},
		{name: "drops duplicates", text: "red apple red Apple", want: []string{"red", "apple"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "red", Normalize("  Red "))
	assert.Equal(t, "", Normalize("   "))
}
