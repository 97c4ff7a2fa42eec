package service

import (
	"sort"
	"testing"

	"github.com/placeprep/backend/internal/model"
)

func TestShuffleOptionsPreservesKeySet(t *testing.T) {
	options := model.OptionMap{"A": "1", "B": "2", "C": "3", "D": "4"}

	order := ShuffleOptions(options)

	if len(order) != len(options) {
		t.Fatalf("order length = %d, want %d", len(order), len(options))
	}
	sorted := append([]string(nil), order...)
	sort.Strings(sorted)
	for i, want := range []string{"A", "B", "C", "D"} {
		if sorted[i] != want {
			t.Fatalf("shuffled keys = %v, want permutation of A B C D", order)
		}
	}
}

func TestPresentOptionsFollowsStoredOrder(t *testing.T) {
	options := model.OptionMap{"A": "alpha", "B": "beta", "C": "gamma"}
	order := []string{"C", "A", "B"}

	views := PresentOptions(options, order)

	if len(views) != 3 {
		t.Fatalf("views length = %d, want 3", len(views))
	}
	for i, wantKey := range order {
		if views[i].Key != wantKey {
			t.Errorf("views[%d].Key = %q, want %q", i, views[i].Key, wantKey)
		}
		if views[i].Text != options[wantKey] {
			t.Errorf("views[%d].Text = %q, want %q", i, views[i].Text, options[wantKey])
		}
	}
}

func TestPresentOptionsStableAcrossRenders(t *testing.T) {
	options := model.OptionMap{"A": "1", "B": "2", "C": "3", "D": "4"}
	order := ShuffleOptions(options)

	first := PresentOptions(options, order)
	second := PresentOptions(options, order)

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("render not stable: first %v, second %v", first, second)
		}
	}
}

func TestPresentOptionsFallsBackToCanonicalOrder(t *testing.T) {
	options := model.OptionMap{"B": "2", "A": "1", "C": "3"}

	views := PresentOptions(options, nil)

	want := []string{"A", "B", "C"}
	for i, key := range want {
		if views[i].Key != key {
			t.Fatalf("views = %v, want canonical order %v", views, want)
		}
	}
}

func TestPresentOptionsAppendsKeysMissingFromOrder(t *testing.T) {
	options := model.OptionMap{"A": "1", "B": "2", "C": "3"}
	order := []string{"C", "Z"}

	views := PresentOptions(options, order)

	if len(views) != 3 {
		t.Fatalf("views length = %d, want 3", len(views))
	}
	if views[0].Key != "C" {
		t.Errorf("views[0].Key = %q, want C", views[0].Key)
	}
	if views[1].Key != "A" || views[2].Key != "B" {
		t.Errorf("missing keys not appended canonically: %v", views)
	}
}
