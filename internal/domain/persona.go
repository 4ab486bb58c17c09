package domain

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Persona is a named content style profile used to condition hook generation.
type Persona struct {
	ID              string   `yaml:"id" json:"id"`
	Name            string   `yaml:"name" json:"name"`
	HookTemplates   []string `yaml:"hook_templates" json:"hook_templates"`
	TriggerKeywords []string `yaml:"trigger_keywords" json:"trigger_keywords"`
	Hashtags        []string `yaml:"hashtags" json:"hashtags"`
	EmotionFocus    string   `yaml:"emotion_focus" json:"emotion_focus"`
}

// PersonaSummary is the catalog listing entry.
type PersonaSummary struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	EmotionFocus    string   `json:"emotion_focus"`
	Hashtags        []string `json:"hashtags"`
	TriggerKeywords []string `json:"trigger_keywords"`
	TemplateCount   int      `json:"template_count"`
}

// PersonaCatalog is the read-only persona registry. It is built once at
// startup and shared between requests.
type PersonaCatalog struct {
	Version    string     `yaml:"version"`
	DefaultID  string     `yaml:"default"`
	Personas   []*Persona `yaml:"personas"`
	byID       map[string]*Persona
	defaultRef *Persona
}

//go:embed data/personas.yaml
var personasYAML []byte

// LoadPersonaCatalog parses the embedded persona definitions.
func LoadPersonaCatalog() (*PersonaCatalog, error) {
	return ParsePersonaCatalog(personasYAML)
}

// ParsePersonaCatalog builds a catalog from YAML. Every persona needs an id, a
// name and at least one hook template, and the default id must exist.
func ParsePersonaCatalog(data []byte) (*PersonaCatalog, error) {
	var catalog PersonaCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse persona catalog: %w", err)
	}

	catalog.byID = make(map[string]*Persona, len(catalog.Personas))
	for _, persona := range catalog.Personas {
		if persona == nil || persona.ID == "" {
			return nil, fmt.Errorf("persona without id")
		}
		if persona.Name == "" {
			return nil, fmt.Errorf("persona %s has no name", persona.ID)
		}
		if len(persona.HookTemplates) == 0 {
			return nil, fmt.Errorf("persona %s has no hook templates", persona.ID)
		}
		if _, dup := catalog.byID[persona.ID]; dup {
			return nil, fmt.Errorf("duplicate persona id %s", persona.ID)
		}
		catalog.byID[persona.ID] = persona
	}

	def, ok := catalog.byID[catalog.DefaultID]
	if !ok {
		return nil, fmt.Errorf("default persona %q is not defined", catalog.DefaultID)
	}
	catalog.defaultRef = def

	return &catalog, nil
}

// Get returns the persona for key, or the default persona when key is unknown.
func (c *PersonaCatalog) Get(key string) *Persona {
	persona, _ := c.Resolve(key)
	return persona
}

// Resolve is Get that also reports whether key matched a persona.
func (c *PersonaCatalog) Resolve(key string) (*Persona, bool) {
	if persona, ok := c.byID[key]; ok {
		return persona, true
	}
	return c.defaultRef, false
}

func (c *PersonaCatalog) Default() *Persona {
	return c.defaultRef
}

// List returns catalog entries in declaration order.
func (c *PersonaCatalog) List() []PersonaSummary {
	out := make([]PersonaSummary, 0, len(c.Personas))
	for _, p := range c.Personas {
		out = append(out, PersonaSummary{
			ID:              p.ID,
			Name:            p.Name,
			EmotionFocus:    p.EmotionFocus,
			Hashtags:        append([]string(nil), p.Hashtags...),
			TriggerKeywords: append([]string(nil), p.TriggerKeywords...),
			TemplateCount:   len(p.HookTemplates),
		})
	}
	return out
}
