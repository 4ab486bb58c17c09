// Package hook builds persona-conditioned hook lists.
package hook

import (
	"regexp"
	"strings"

	"github.com/kapu/ayovirals-go/internal/domain"
)

// TriggerGroup unlocks Hooks when any of Words appears in the content.
type TriggerGroup struct {
	Name  string
	Words []string
	Hooks [2]string
}

// DefaultTriggerGroups are evaluated in this order.
var DefaultTriggerGroups = []TriggerGroup{
	{
		Name:  "value",
		Words: []string{"money", "expensive", "price", "cost", "cheap", "dollars", "budget"},
		Hooks: [2]string{"The price of this will shock you...", "Nobody talks about what this really costs..."},
	},
	{
		Name:  "secrecy",
		Words: []string{"secret", "hidden", "hiding", "reveal", "revealed", "exposed"},
		Hooks: [2]string{"I found a secret that changes everything...", "What they kept hidden is finally out..."},
	},
	{
		Name:  "failure",
		Words: []string{"mistake", "mistakes", "wrong", "fail", "failed", "regret"},
		Hooks: [2]string{"I made this mistake so you don't have to...", "Everyone gets this wrong, here's why..."},
	},
	{
		Name:  "amazement",
		Words: []string{"amazing", "incredible", "unbelievable", "insane", "shocking", "wow"},
		Hooks: [2]string{"This is absolutely mind-blowing...", "I still can't believe this is real..."},
	},
	{
		Name:  "transformation",
		Words: []string{"transform", "transformation", "changed", "change", "upgrade", "glow"},
		Hooks: [2]string{"The before and after will blow your mind...", "This one change transformed everything..."},
	},
	{
		Name:  "time",
		Words: []string{"today", "tonight", "yesterday", "minutes", "days", "years", "ago"},
		Hooks: [2]string{"This happened faster than you'd think...", "Give me 30 seconds and I'll prove it..."},
	},
}

var wordPattern = regexp.MustCompile(`\p{L}+`)

// Generator produces hook lists from persona templates and content triggers.
type Generator struct {
	personas *domain.PersonaCatalog
	groups   []TriggerGroup
	maxHooks int
}

func NewGenerator(personas *domain.PersonaCatalog, groups []TriggerGroup, maxHooks int) *Generator {
	if groups == nil {
		groups = DefaultTriggerGroups
	}
	return &Generator{
		personas: personas,
		groups:   groups,
		maxHooks: maxHooks,
	}
}

// Generate returns the persona's templates followed by bonus hooks for every
// trigger group present in content, capped at maxHooks. Unknown persona keys
// use the default persona.
func (g *Generator) Generate(content, personaKey string) []string {
	persona := g.personas.Get(personaKey)

	hooks := make([]string, 0, g.maxHooks)
	hooks = append(hooks, persona.HookTemplates...)

	tokens := tokenSet(content)
	for _, group := range g.groups {
		if group.matches(tokens) {
			hooks = append(hooks, group.Hooks[0], group.Hooks[1])
		}
	}

	if len(hooks) > g.maxHooks {
		hooks = hooks[:g.maxHooks]
	}
	return hooks
}

// MatchedGroups reports which trigger groups content activates, in order.
func (g *Generator) MatchedGroups(content string) []string {
	tokens := tokenSet(content)
	names := make([]string, 0, len(g.groups))
	for _, group := range g.groups {
		if group.matches(tokens) {
			names = append(names, group.Name)
		}
	}
	return names
}

func (tg TriggerGroup) matches(tokens map[string]struct{}) bool {
	for _, w := range tg.Words {
		if _, ok := tokens[w]; ok {
			return true
		}
	}
	return false
}

func tokenSet(content string) map[string]struct{} {
	words := wordPattern.FindAllString(strings.ToLower(content), -1)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
