package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"destpick/internal/domain"
)

// ErrDuplicateSlug is returned when two seed entries share a slug
var ErrDuplicateSlug = errors.New("duplicate slug")

// seedFile is the on-disk layout. A bare list is accepted too.
type seedFile struct {
	Destinations []domain.Destination `json:"destinations" yaml:"destinations"`
}

// LoadSeed reads destinations from a YAML or JSON file. Entries without an
// id get a random UUID; entries without a slug get one derived from the name.
func LoadSeed(path string) ([]domain.Destination, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed %s: %w", path, err)
	}

	var dests []domain.Destination
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dests, err = decodeYAML(data)
	case ".json":
		dests, err = decodeJSON(data)
	default:
		return nil, fmt.Errorf("seed %s: unsupported extension %q", path, filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("parse seed %s: %w", path, err)
	}

	return normalize(dests)
}

func decodeYAML(data []byte) ([]domain.Destination, error) {
	var list []domain.Destination
	if err := yaml.Unmarshal(data, &list); err == nil {
		return list, nil
	}
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f.Destinations, nil
}

func decodeJSON(data []byte) ([]domain.Destination, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var list []domain.Destination
		err := json.Unmarshal(data, &list)
		return list, err
	}
	var f seedFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f.Destinations, nil
}

func normalize(dests []domain.Destination) ([]domain.Destination, error) {
	seen := make(map[string]int, len(dests))
	out := make([]domain.Destination, 0, len(dests))

	for i, d := range dests {
		d.Name = strings.TrimSpace(d.Name)
		if d.Name == "" {
			return nil, fmt.Errorf("entry %d: name is required", i)
		}
		if d.Slug == "" {
			d.Slug = Slugify(d.Name)
		}
		if d.ID == "" {
			d.ID = uuid.NewString()
		}
		if prev, ok := seen[d.Slug]; ok {
			return nil, fmt.Errorf("%w %q (entries %d and %d)", ErrDuplicateSlug, d.Slug, prev, i)
		}
		seen[d.Slug] = i
		out = append(out, d)
	}

	return out, nil
}

// Slugify lowercases name and joins its letter and digit runs with dashes
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}
