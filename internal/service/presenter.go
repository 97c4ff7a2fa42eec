package service

import (
	"math/rand"
	"sort"

	"github.com/placeprep/backend/internal/dto"
	"github.com/placeprep/backend/internal/model"
)

// ShuffleOptions permutes a question's canonical option keys once. The
// returned order is frozen on the attempt so every later render and
// every answer validation sees the same permutation. The canonical
// correct key never leaves the server through this path.
func ShuffleOptions(options model.OptionMap) []string {
	keys := canonicalOrder(options)
	rand.Shuffle(len(keys), func(i, j int) {
		keys[i], keys[j] = keys[j], keys[i]
	})
	return keys
}

// PresentOptions renders options in a stored permutation. Keys missing
// from the order (or a nil order) fall back to canonical A..D order so
// older attempts still render completely.
func PresentOptions(options model.OptionMap, order []string) []dto.OptionView {
	views := make([]dto.OptionView, 0, len(options))
	seen := make(map[string]bool, len(options))
	for _, k := range order {
		if text, ok := options[k]; ok && !seen[k] {
			views = append(views, dto.OptionView{Key: k, Text: text})
			seen[k] = true
		}
	}
	for _, k := range canonicalOrder(options) {
		if !seen[k] {
			views = append(views, dto.OptionView{Key: k, Text: options[k]})
		}
	}
	return views
}

func canonicalOrder(options model.OptionMap) []string {
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
