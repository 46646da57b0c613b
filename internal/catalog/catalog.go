// Package catalog supplies the criteria and alternative-attribute table the
// AHP engine ranks. The table is read-only reference data: an embedded phone
// catalog, a YAML/JSON file, or a remote HTTP source.
package catalog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/Arbiter/internal/ahp"
)

//go:embed phones.yaml
var defaultCatalog []byte

// ErrInvalidCatalog wraps every schema or semantic rejection from Parse.
var ErrInvalidCatalog = errors.New("catalog: invalid catalog")

// Alternative is one candidate with its raw attribute values.
type Alternative struct {
	ID         string             `json:"id" yaml:"id"`
	Attributes map[string]float64 `json:"attributes" yaml:"attributes"`
}

// Catalog is the criteria set plus the alternatives, in presentation order.
type Catalog struct {
	Criteria     []ahp.Criterion `json:"criteria" yaml:"criteria"`
	Alternatives []Alternative   `json:"alternatives" yaml:"alternatives"`
}

// Default returns the embedded phone catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// LoadFile reads and parses a catalog file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML or JSON catalog, validating it against the embedded
// schema before decoding into Go types.
func Parse(data []byte) (*Catalog, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if msgs := validateDocument(doc); len(msgs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCatalog, strings.Join(msgs, "; "))
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the rules the schema cannot express.
func (c *Catalog) Validate() error {
	if len(c.Criteria) == 0 {
		return fmt.Errorf("%w: no criteria", ErrInvalidCatalog)
	}
	names := make(map[string]bool, len(c.Criteria))
	for _, cr := range c.Criteria {
		key := strings.ToLower(cr.Name)
		if names[key] {
			return fmt.Errorf("%w: duplicate criterion %q", ErrInvalidCatalog, cr.Name)
		}
		names[key] = true
	}

	ids := make(map[string]bool, len(c.Alternatives))
	for _, a := range c.Alternatives {
		if ids[a.ID] {
			return fmt.Errorf("%w: duplicate alternative %q", ErrInvalidCatalog, a.ID)
		}
		ids[a.ID] = true
		for k, v := range a.Attributes {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: %s.%s is not finite", ErrInvalidCatalog, a.ID, k)
			}
		}
		for _, cr := range c.Criteria {
			if _, ok := cr.ValueIn(a.Attributes); !ok {
				return fmt.Errorf("%w: %w", ErrInvalidCatalog,
					&ahp.MissingAttributeError{Alternative: a.ID, Criterion: cr.Name})
			}
		}
	}
	return nil
}

// IDs returns alternative ids in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.Alternatives))
	for i, a := range c.Alternatives {
		ids[i] = a.ID
	}
	return ids
}

// Attributes returns the alternative-attribute table keyed by id.
func (c *Catalog) Attributes() ahp.AlternativeAttributes {
	attrs := make(ahp.AlternativeAttributes, len(c.Alternatives))
	for _, a := range c.Alternatives {
		attrs[a.ID] = a.Attributes
	}
	return attrs
}

// CriterionIndex returns the index of the criterion named name (case-insensitive).
func (c *Catalog) CriterionIndex(name string) (int, bool) {
	for i, cr := range c.Criteria {
		if strings.EqualFold(cr.Name, name) {
			return i, true
		}
	}
	return -1, false
}

// Resolve picks the catalog the service runs with: the URL when set, then the
// file path, then the embedded default.
func Resolve(ctx context.Context, path, url string) (*Catalog, error) {
	switch {
	case url != "":
		return NewHTTPSource(url).Fetch(ctx)
	case path != "":
		return LoadFile(path)
	default:
		return Default(), nil
	}
}
