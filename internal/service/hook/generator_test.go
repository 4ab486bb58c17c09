package hook

import (
	"reflect"
	"testing"

	"github.com/kapu/ayovirals-go/internal/domain"
)

func newTestGenerator(t *testing.T) (*Generator, *domain.PersonaCatalog) {
	t.Helper()
	catalog, err := domain.LoadPersonaCatalog()
	if err != nil {
		t.Fatalf("LoadPersonaCatalog() error = %v", err)
	}
	return NewGenerator(catalog, nil, 8), catalog
}

func TestGenerateSeedsWithPersonaTemplates(t *testing.T) {
	gen, catalog := newTestGenerator(t)

	hooks := gen.Generate("plain words with no triggers", "nyc-drama")
	want := catalog.Get("nyc-drama").HookTemplates
	if !reflect.DeepEqual(hooks, want) {
		t.Fatalf("Generate() = %v, want %v", hooks, want)
	}
}

func TestGenerateAppendsBonusHooksInGroupOrder(t *testing.T) {
	gen, _ := newTestGenerator(t)

	// amazement appears before secrecy in the text, but secrecy is checked first.
	hooks := gen.Generate("An AMAZING apartment with a secret door", "storytime")
	if len(hooks) != 8 {
		t.Fatalf("expected cap of 8, got %d: %v", len(hooks), hooks)
	}
	if hooks[5] != "I found a secret that changes everything..." {
		t.Fatalf("hook[5] = %q", hooks[5])
	}
	if hooks[6] != "What they kept hidden is finally out..." {
		t.Fatalf("hook[6] = %q", hooks[6])
	}
	if hooks[7] != "This is absolutely mind-blowing..." {
		t.Fatalf("hook[7] = %q", hooks[7])
	}
}

func TestGenerateUsesTokenMembership(t *testing.T) {
	gen, _ := newTestGenerator(t)

	// "knowledge" contains "now"-like substrings but no trigger tokens.
	if groups := gen.MatchedGroups("knowledge of pricey wrongdoing"); len(groups) != 0 {
		t.Fatalf("expected no groups, got %v", groups)
	}
	got := gen.MatchedGroups("It cost money and I made a mistake today")
	want := []string{"value", "failure", "time"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("MatchedGroups() = %v, want %v", got, want)
	}
}

func TestGenerateUnknownPersonaUsesDefault(t *testing.T) {
	gen, catalog := newTestGenerator(t)

	hooks := gen.Generate("", "not-a-persona")
	if hooks[0] != catalog.Default().HookTemplates[0] {
		t.Fatalf("expected default persona template, got %q", hooks[0])
	}
}

func TestGenerateIsBoundedAndDeterministic(t *testing.T) {
	gen, catalog := newTestGenerator(t)
	content := "money secret mistake amazing transform today"

	for _, p := range catalog.List() {
		first := gen.Generate(content, p.ID)
		second := gen.Generate(content, p.ID)
		if len(first) < 1 || len(first) > 8 {
			t.Fatalf("persona %s: hook count %d out of bounds", p.ID, len(first))
		}
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("persona %s: non-deterministic output", p.ID)
		}
	}
}

func TestGenerateDoesNotAliasPersonaTemplates(t *testing.T) {
	gen, catalog := newTestGenerator(t)

	hooks := gen.Generate("", "fitness-guru")
	hooks[0] = "mutated"
	if catalog.Get("fitness-guru").HookTemplates[0] == "mutated" {
		t.Fatal("Generate must copy persona templates")
	}
}
