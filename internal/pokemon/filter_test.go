package pokemon

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func names(s []Summary) []string {
	out := make([]string, len(s))
	for i, p := range s {
		out[i] = p.Name
	}
	return out
}

func starters() []Summary {
	return []Summary{
		{ID: "1", Number: "001", Name: "Bulbasaur", Types: []string{"Grass", "Poison"}},
		{ID: "4", Number: "004", Name: "Charmander", Types: []string{"Fire"}},
		{ID: "7", Number: "007", Name: "Squirtle", Types: []string{"Water"}},
	}
}

func TestFilterExample(t *testing.T) {
	got := Filter(starters(), "char")
	if diff := cmp.Diff([]string{"Charmander"}, names(got)); diff != "" {
		t.Fatalf("Filter(char) mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterEmptyQueryReturnsInput(t *testing.T) {
	in := starters()
	if diff := cmp.Diff(in, Filter(in, "")); diff != "" {
		t.Fatalf("empty query changed the sequence (-want +got):\n%s", diff)
	}
}

func TestFilterIsOrderedCaseInsensitiveSubsequence(t *testing.T) {
	all := []Summary{
		{ID: "1", Name: "Bulbasaur"},
		{ID: "2", Name: "Ivysaur"},
		{ID: "3", Name: "Venusaur"},
		{ID: "4", Name: "Charmander"},
		{ID: "5", Name: "Charmeleon"},
		{ID: "6", Name: "Charizard"},
		{ID: "29", Name: "Nidoran♀"},
		{ID: "122", Name: "Mr. Mime"},
	}
	queries := []string{"", "a", "SAUR", "char", "Mr. ", "♀", "zzz", "e", "ME", " "}
	for _, q := range queries {
		got := Filter(all, q)
		// every element matches
		for _, p := range got {
			if !strings.Contains(strings.ToLower(p.Name), strings.ToLower(q)) {
				t.Fatalf("Filter(%q) kept %q", q, p.Name)
			}
		}
		// order preserved and nothing matching dropped
		var want []string
		for _, p := range all {
			if strings.Contains(strings.ToLower(p.Name), strings.ToLower(q)) {
				want = append(want, p.Name)
			}
		}
		if diff := cmp.Diff(want, names(got), cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("Filter(%q) mismatch (-want +got):\n%s", q, diff)
		}
	}
}

func TestSuggest(t *testing.T) {
	all := starters()
	cases := []struct {
		q    string
		want string
		ok   bool
	}{
		{"chr", "Charmander", true},
		{"squirtel", "Squirtle", true},
		{"bulbsaur", "Bulbasaur", true},
		{"", "", false},
		{"xyzzyplugh", "", false},
	}
	for _, tc := range cases {
		got, ok := Suggest(all, tc.q)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("Suggest(%q) = %q, %v; want %q, %v", tc.q, got, ok, tc.want, tc.ok)
		}
	}
}

func TestRangeAndDetailFormatting(t *testing.T) {
	if got := (Range{Minimum: "7.0kg", Maximum: "9.0kg"}).String(); got != "7.0kg – 9.0kg" {
		t.Fatalf("range = %q", got)
	}
	if got := (Range{}).String(); got != "-" {
		t.Fatalf("empty range = %q", got)
	}
	if got := (Range{Minimum: "1m", Maximum: "1m"}).String(); got != "1m" {
		t.Fatalf("equal range = %q", got)
	}
	d := Detail{Number: "006", Name: "Charizard", FleeRate: 0.05}
	if d.Title() != "#006 Charizard" {
		t.Fatalf("title = %q", d.Title())
	}
	if d.FleePercent() != "5%" {
		t.Fatalf("flee = %q", d.FleePercent())
	}
}
