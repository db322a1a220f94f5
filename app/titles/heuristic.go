package titles

import (
	"context"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const DefaultMaxWords = 20

// minSentenceWords keeps a leading "Hi." from becoming the whole title.
const minSentenceWords = 3

// Heuristic returns short texts verbatim and cuts longer ones at the first
// sentence end, or at MaxWords words.
type Heuristic struct {
	MaxWords int
}

func NewHeuristic(maxWords int) *Heuristic {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}
	return &Heuristic{MaxWords: maxWords}
}

func (h *Heuristic) Extract(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	words := strings.Fields(norm.NFC.String(text))
	if len(words) < h.MaxWords {
		return strings.Join(words, " "), nil
	}

	head := words[:h.MaxWords]
	for i := minSentenceWords - 1; i < len(head); i++ {
		if endsSentence(head[i]) {
			return strings.Join(head[:i+1], " "), nil
		}
	}

	return strings.Join(head, " ") + "…", nil
}

func endsSentence(word string) bool {
	return strings.HasSuffix(word, ".") || strings.HasSuffix(word, "!") || strings.HasSuffix(word, "?")
}
