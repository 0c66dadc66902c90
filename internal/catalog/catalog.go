// Package catalog loads the immutable set of analysis use cases.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/summarizer-backend/internal/domain"
)

// MinInputLength is the lower bound on analysed text, in characters.
const MinInputLength = 10

// fileSettings and fileUseCase mirror the on-disk layout. Both JSON and
// YAML sources decode into them.
type fileSettings struct {
	SystemInstruction string   `json:"system_instruction" yaml:"system_instruction"`
	Temperature       *float64 `json:"temperature"        yaml:"temperature"`
	TopP              *float64 `json:"top_p"              yaml:"top_p"`
	MaxInputLength    int      `json:"max_input_length"   yaml:"max_input_length"`
}

type fileUseCase struct {
	ID             string   `json:"id"              yaml:"id"`
	Name           string   `json:"name"            yaml:"name"`
	Description    string   `json:"description"     yaml:"description"`
	OutputFormat   string   `json:"output_format"   yaml:"output_format"`
	Category       string   `json:"category"        yaml:"category"`
	PromptTemplate string   `json:"prompt_template" yaml:"prompt_template"`
	ExtraParams    []string `json:"extra_params"    yaml:"extra_params"`
}

type file struct {
	GlobalSettings *fileSettings `json:"global_settings" yaml:"global_settings"`
	UseCases       []fileUseCase `json:"usecases"        yaml:"usecases"`
}

var knownExtraParams = map[string]bool{
	domain.ParamTargetLanguage: true,
}

// Catalog is the read-only use-case registry. It is safe for concurrent use
// because nothing mutates it after Load returns.
type Catalog struct {
	source   string
	settings domain.GlobalSettings
	ordered  []domain.UseCase
	byID     map[string]int
}

// Load reads and validates a catalog from path. Files ending in .yaml or
// .yml are decoded as YAML, everything else as JSON. Any problem yields a
// *domain.ConfigError listing every issue found.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.ConfigError{Source: path, Problems: []string{err.Error()}}
	}
	return Parse(path, data)
}

// Parse builds a catalog from raw bytes. name is used for format detection
// and error messages.
func Parse(name string, data []byte) (*Catalog, error) {
	var f file
	if err := decode(name, data, &f); err != nil {
		return nil, &domain.ConfigError{Source: name, Problems: []string{err.Error()}}
	}

	c, problems := build(name, f)
	if len(problems) > 0 {
		return nil, &domain.ConfigError{Source: name, Problems: problems}
	}
	return c, nil
}

func decode(name string, data []byte, f *file) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, f); err != nil {
			return fmt.Errorf("decode yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, f); err != nil {
			return fmt.Errorf("decode json: %w", err)
		}
	}
	return nil
}

func build(name string, f file) (*Catalog, []string) {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	settings := domain.GlobalSettings{}
	if f.GlobalSettings == nil {
		add("global_settings is missing")
	} else {
		gs := f.GlobalSettings
		settings.SystemInstruction = gs.SystemInstruction
		settings.MaxInputLength = gs.MaxInputLength

		if strings.TrimSpace(gs.SystemInstruction) == "" {
			add("global_settings.system_instruction is empty")
		}
		if gs.Temperature == nil {
			add("global_settings.temperature is missing")
		} else if *gs.Temperature < 0 || *gs.Temperature > 2 {
			add("global_settings.temperature must be in [0, 2] (got %v)", *gs.Temperature)
		} else {
			settings.Temperature = *gs.Temperature
		}
		if gs.TopP == nil {
			add("global_settings.top_p is missing")
		} else if *gs.TopP <= 0 || *gs.TopP > 1 {
			add("global_settings.top_p must be in (0, 1] (got %v)", *gs.TopP)
		} else {
			settings.TopP = *gs.TopP
		}
		if gs.MaxInputLength < MinInputLength {
			add("global_settings.max_input_length must be >= %d (got %d)", MinInputLength, gs.MaxInputLength)
		}
	}

	if len(f.UseCases) == 0 {
		add("usecases is empty")
	}

	c := &Catalog{
		source:   name,
		settings: settings,
		ordered:  make([]domain.UseCase, 0, len(f.UseCases)),
		byID:     make(map[string]int, len(f.UseCases)),
	}

	for i, raw := range f.UseCases {
		id := strings.TrimSpace(raw.ID)
		where := fmt.Sprintf("usecases[%d]", i)
		if id != "" {
			where = fmt.Sprintf("usecases[%d] (%s)", i, id)
		}

		if id == "" {
			add("%s: id is empty", where)
		} else if _, dup := c.byID[id]; dup {
			add("%s: duplicate id", where)
		}
		if strings.TrimSpace(raw.Name) == "" {
			add("%s: name is empty", where)
		}
		if !strings.Contains(raw.PromptTemplate, domain.PlaceholderInputText) {
			add("%s: prompt_template must contain %s", where, domain.PlaceholderInputText)
		}

		extras := make([]string, 0, len(raw.ExtraParams))
		seen := make(map[string]bool, len(raw.ExtraParams))
		for _, p := range raw.ExtraParams {
			if !knownExtraParams[p] {
				add("%s: unknown extra param %q", where, p)
				continue
			}
			if !seen[p] {
				seen[p] = true
				extras = append(extras, p)
			}
		}
		if seen[domain.ParamTargetLanguage] && !strings.Contains(raw.PromptTemplate, domain.PlaceholderTargetLanguage) {
			add("%s: prompt_template must contain %s", where, domain.PlaceholderTargetLanguage)
		}

		if id == "" {
			continue
		}
		if _, dup := c.byID[id]; dup {
			continue
		}
		c.byID[id] = len(c.ordered)
		c.ordered = append(c.ordered, domain.UseCase{
			ID:             id,
			Name:           raw.Name,
			Description:    raw.Description,
			OutputFormat:   raw.OutputFormat,
			Category:       raw.Category,
			PromptTemplate: raw.PromptTemplate,
			ExtraParams:    extras,
		})
	}

	return c, problems
}

// Get returns the use case with the given id.
func (c *Catalog) Get(id string) (domain.UseCase, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.UseCase{}, false
	}
	return c.ordered[i], true
}

// List returns every use case in source order. The slice is a copy.
func (c *Catalog) List() []domain.UseCase {
	out := make([]domain.UseCase, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// IDs returns the use-case ids in source order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.ordered))
	for i, uc := range c.ordered {
		ids[i] = uc.ID
	}
	return ids
}

// Len returns the number of use cases.
func (c *Catalog) Len() int { return len(c.ordered) }

// Settings returns the global prompt and sampling settings.
func (c *Catalog) Settings() domain.GlobalSettings { return c.settings }

// Source returns the path the catalog was loaded from.
func (c *Catalog) Source() string { return c.source }
