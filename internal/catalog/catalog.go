package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"

	"alfredoptarigan/taste-recommender/internal/models"
)

//go:embed data/patterns.yaml
var patternsYAML []byte

//go:embed data/content.yaml
var contentYAML []byte

var ErrInvalidCatalog = errors.New("invalid catalog")

// Facet names accepted per pattern group.
var groupFacets = map[string][]string{
	"narrative": {"story_structure", "pacing_preferences", "conflict_style", "resolution_patterns"},
	"emotional": {"primary_mood", "emotional_journey", "intensity_comfort", "character_relationship"},
	"visual":    {"visual_preferences", "performance_energy", "technical_craft"},
	"audio":     {"host_dynamics", "delivery_style", "intimacy_level", "production_values"},
}

var apostrophes = strings.NewReplacer("’", "'", "‘", "'", "ʼ", "'")

// Normalize folds case and unifies apostrophes so that text and trigger
// phrases compare byte for byte.
func Normalize(s string) string {
	return cases.Fold().String(apostrophes.Replace(s))
}

type PatternEntry struct {
	Tag     string   `yaml:"tag"`
	Facet   string   `yaml:"facet"`
	Phrases []string `yaml:"phrases"`
}

type ContextValue struct {
	Value   string   `yaml:"value"`
	Phrases []string `yaml:"phrases"`
}

type ContextCategory struct {
	Category string         `yaml:"category"`
	Values   []ContextValue `yaml:"values"`
}

// PatternCatalog holds the trigger phrase tables. All phrases are normalized
// at load time. It is never modified after Parse returns.
type PatternCatalog struct {
	Narrative       []PatternEntry    `yaml:"narrative"`
	Emotional       []PatternEntry    `yaml:"emotional"`
	Visual          []PatternEntry    `yaml:"visual"`
	Audio           []PatternEntry    `yaml:"audio"`
	AntiPatterns    []PatternEntry    `yaml:"anti_patterns"`
	NegationMarkers []string          `yaml:"negation_markers"`
	Context         []ContextCategory `yaml:"context"`
}

func ParsePatterns(data []byte) (*PatternCatalog, error) {
	var pc PatternCatalog
	if err := yaml.Unmarshal(data, &pc); err != nil {
		return nil, fmt.Errorf("failed to decode pattern catalog: %w", err)
	}

	groups := []struct {
		name    string
		entries []PatternEntry
	}{
		{"narrative", pc.Narrative},
		{"emotional", pc.Emotional},
		{"visual", pc.Visual},
		{"audio", pc.Audio},
	}
	for _, g := range groups {
		if err := validateGroup(g.name, g.entries); err != nil {
			return nil, err
		}
	}

	for i := range pc.AntiPatterns {
		e := &pc.AntiPatterns[i]
		if e.Tag == "" || len(e.Phrases) == 0 {
			return nil, fmt.Errorf("%w: anti-pattern entry %d needs a tag and phrases", ErrInvalidCatalog, i)
		}
		normalizeAll(e.Phrases)
	}

	if len(pc.NegationMarkers) == 0 {
		return nil, fmt.Errorf("%w: no negation markers", ErrInvalidCatalog)
	}
	normalizeAll(pc.NegationMarkers)

	for ci := range pc.Context {
		cat := &pc.Context[ci]
		if cat.Category == "" {
			return nil, fmt.Errorf("%w: context category %d has no name", ErrInvalidCatalog, ci)
		}
		for vi := range cat.Values {
			normalizeAll(cat.Values[vi].Phrases)
		}
	}

	return &pc, nil
}

func validateGroup(group string, entries []PatternEntry) error {
	allowed := groupFacets[group]
	for i := range entries {
		e := &entries[i]
		if e.Tag == "" {
			return fmt.Errorf("%w: %s entry %d has no tag", ErrInvalidCatalog, group, i)
		}
		if !contains(allowed, e.Facet) {
			return fmt.Errorf("%w: %s tag %q has unknown facet %q", ErrInvalidCatalog, group, e.Tag, e.Facet)
		}
		normalizeAll(e.Phrases)
	}
	return nil
}

func normalizeAll(phrases []string) {
	for i, p := range phrases {
		phrases[i] = Normalize(p)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// ContentCatalog is the ordered, read-only set of curated items. Item order is
// the ranking tie-break order.
type ContentCatalog struct {
	items []models.ContentItem
	index map[string]int
}

var knownItemTypes = []models.ItemType{
	models.ItemTVShow, models.ItemLimitedSeries, models.ItemMovie,
	models.ItemDocumentary, models.ItemPodcast, models.ItemMixed,
}

// NewContentCatalog takes ownership of items and stamps each with its position.
func NewContentCatalog(items []models.ContentItem) (*ContentCatalog, error) {
	cc := &ContentCatalog{
		items: items,
		index: make(map[string]int, len(items)),
	}
	for i := range items {
		it := &items[i]
		if it.ID == "" {
			return nil, fmt.Errorf("%w: item %d has no id", ErrInvalidCatalog, i)
		}
		if _, dup := cc.index[it.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate item id %q", ErrInvalidCatalog, it.ID)
		}
		if !containsType(it.ContentType) {
			return nil, fmt.Errorf("%w: item %q has unknown content type %q", ErrInvalidCatalog, it.ID, it.ContentType)
		}
		it.Position = i
		cc.index[it.ID] = i
	}
	return cc, nil
}

func containsType(t models.ItemType) bool {
	for _, k := range knownItemTypes {
		if k == t {
			return true
		}
	}
	return false
}

func ParseContent(data []byte) (*ContentCatalog, error) {
	var doc struct {
		Items []models.ContentItem `yaml:"items"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode content catalog: %w", err)
	}
	return NewContentCatalog(doc.Items)
}

// LoadContent reads the content catalog from path, or the embedded copy when
// path is empty.
func LoadContent(path string) (*ContentCatalog, error) {
	if path == "" {
		return ParseContent(contentYAML)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content catalog: %w", err)
	}
	return ParseContent(data)
}

// Items returns the catalog in order. Callers must not modify the result.
func (c *ContentCatalog) Items() []models.ContentItem {
	return c.items
}

func (c *ContentCatalog) Len() int {
	return len(c.items)
}

func (c *ContentCatalog) Get(id string) (*models.ContentItem, bool) {
	i, ok := c.index[id]
	if !ok {
		return nil, false
	}
	return &c.items[i], true
}

// Entries summarizes the catalog for listing endpoints.
func (c *ContentCatalog) Entries() []models.CatalogEntry {
	out := make([]models.CatalogEntry, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, models.CatalogEntry{
			ID:          it.ID,
			Title:       it.Title,
			Platform:    it.Platform,
			ContentType: it.ContentType,
		})
	}
	return out
}

var (
	defaultPatterns = sync.OnceValues(func() (*PatternCatalog, error) {
		return ParsePatterns(patternsYAML)
	})
	defaultContent = sync.OnceValues(func() (*ContentCatalog, error) {
		return ParseContent(contentYAML)
	})
)

// DefaultPatterns returns the embedded pattern catalog, parsed once.
func DefaultPatterns() (*PatternCatalog, error) {
	return defaultPatterns()
}

// DefaultContent returns the embedded content catalog, parsed once.
func DefaultContent() (*ContentCatalog, error) {
	return defaultContent()
}
