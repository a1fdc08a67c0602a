package naming

import (
	"errors"
	"fmt"
	"strings"
)

// Well-known category names used by the default table.
const (
	CategoryDocuments   = "Documents"
	CategoryImages      = "Images"
	CategoryScreenshots = "Screenshots"
	CategoryVideos      = "Videos"
	CategoryMusic       = "Music"
	CategoryArchives    = "Archives"
	CategoryExecutables = "Executables"
	CategoryCode        = "Code"
	CategoryOthers      = "Others"
)

// CategoryRule is one row of the category table. Extensions are lowercase
// and dot-prefixed; Patterns are lowercase substrings matched against the
// whole file name.
type CategoryRule struct {
	Name       string
	Extensions []string
	Patterns   []string
}

// Rules is an ordered, immutable category table. Table order is the
// precedence order for extension lookup. At most one category carries name
// patterns; that category is checked before any extension.
//
// The zero value is not usable; build one with [DefaultRules] or
// [NewRules].
type Rules struct {
	categories      []CategoryRule
	byExt           map[string]string
	patternCategory string
	patterns        []string
	fallback        string
}

// defaultTable is the built-in category table. Screenshots is matched by
// name before extensions are consulted.
var defaultTable = []CategoryRule{
	{Name: CategoryDocuments, Extensions: []string{
		".pdf", ".doc", ".docx", ".txt", ".rtf", ".odt",
		".xls", ".xlsx", ".ppt", ".pptx", ".csv", ".md",
	}},
	{Name: CategoryImages, Extensions: []string{
		".jpg", ".jpeg", ".png", ".gif", ".bmp", ".svg",
		".tiff", ".webp", ".ico", ".heic",
	}},
	{Name: CategoryScreenshots, Patterns: []string{
		"screenshot", "screen shot", "screen capture", "captura", "print screen",
	}},
	{Name: CategoryVideos, Extensions: []string{
		".mp4", ".avi", ".mkv", ".mov", ".wmv", ".flv",
		".webm", ".m4v", ".mpg", ".mpeg",
	}},
	{Name: CategoryMusic, Extensions: []string{
		".mp3", ".wav", ".flac", ".aac", ".ogg", ".m4a", ".wma",
	}},
	{Name: CategoryArchives, Extensions: []string{
		".zip", ".rar", ".7z", ".tar", ".gz", ".bz2", ".iso", ".dmg",
	}},
	{Name: CategoryExecutables, Extensions: []string{
		".exe", ".msi", ".app", ".deb", ".rpm", ".sh", ".bat", ".cmd",
	}},
	{Name: CategoryCode, Extensions: []string{
		".py", ".js", ".html", ".css", ".cpp", ".c",
		".java", ".php", ".rb", ".go", ".rs", ".swift",
		".json", ".xml", ".yaml", ".yml",
	}},
	{Name: CategoryOthers},
}

// DefaultRules returns the built-in category table.
func DefaultRules() Rules {
	r, err := NewRules(defaultTable, CategoryOthers)
	if err != nil {
		panic(fmt.Sprintf("naming: default table invalid: %v", err))
	}
	return r
}

// NewRules validates and normalizes a category table. Extensions gain a
// leading dot and are lower-cased; patterns are lower-cased. The fallback
// category is appended to the table when it is not already listed.
func NewRules(categories []CategoryRule, fallback string) (Rules, error) {
	fallback = strings.TrimSpace(fallback)
	if fallback == "" {
		return Rules{}, errors.New("fallback category must not be empty")
	}

	r := Rules{
		byExt:    make(map[string]string),
		fallback: fallback,
	}
	seen := make(map[string]bool)
	for _, c := range categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return Rules{}, errors.New("category name must not be empty")
		}
		if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
			return Rules{}, fmt.Errorf("category %q is not a valid folder name", name)
		}
		if seen[strings.ToLower(name)] {
			return Rules{}, fmt.Errorf("duplicate category %q", name)
		}
		seen[strings.ToLower(name)] = true

		rule := CategoryRule{Name: name}
		for _, ext := range c.Extensions {
			norm := normalizeExt(ext)
			if norm == "" {
				return Rules{}, fmt.Errorf("category %q has an empty extension", name)
			}
			rule.Extensions = append(rule.Extensions, norm)
			// First category in table order wins.
			if _, taken := r.byExt[norm]; !taken {
				r.byExt[norm] = name
			}
		}
		for _, p := range c.Patterns {
			norm := strings.ToLower(strings.TrimSpace(p))
			if norm == "" {
				return Rules{}, fmt.Errorf("category %q has an empty name pattern", name)
			}
			rule.Patterns = append(rule.Patterns, norm)
		}
		if len(rule.Patterns) > 0 {
			if r.patternCategory != "" {
				return Rules{}, fmt.Errorf("only one category may use name patterns (%q and %q)", r.patternCategory, name)
			}
			r.patternCategory = name
			r.patterns = rule.Patterns
		}
		if name == fallback && len(rule.Extensions) > 0 {
			return Rules{}, fmt.Errorf("fallback category %q must not list extensions", name)
		}
		r.categories = append(r.categories, rule)
	}
	if !seen[strings.ToLower(fallback)] {
		r.categories = append(r.categories, CategoryRule{Name: fallback})
	}
	return r, nil
}

// normalizeExt lower-cases ext and ensures a single leading dot.
func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	ext = strings.TrimLeft(ext, ".")
	if ext == "" {
		return ""
	}
	return "." + ext
}

// Fallback returns the category used when nothing else matches.
func (r Rules) Fallback() string { return r.fallback }

// PatternCategory returns the name-pattern category, or "" if none.
func (r Rules) PatternCategory() string { return r.patternCategory }

// CategoryForExt returns the first category whose extension set contains
// ext. ext must be lowercase and dot-prefixed, as returned by [Ext].
func (r Rules) CategoryForExt(ext string) (string, bool) {
	name, ok := r.byExt[ext]
	return name, ok
}

// MatchPattern returns the first name pattern contained in lowerName.
func (r Rules) MatchPattern(lowerName string) (string, bool) {
	for _, p := range r.patterns {
		if strings.Contains(lowerName, p) {
			return p, true
		}
	}
	return "", false
}

// Categories returns a copy of the table in precedence order.
func (r Rules) Categories() []CategoryRule {
	out := make([]CategoryRule, len(r.categories))
	for i, c := range r.categories {
		out[i] = CategoryRule{
			Name:       c.Name,
			Extensions: append([]string(nil), c.Extensions...),
			Patterns:   append([]string(nil), c.Patterns...),
		}
	}
	return out
}

// Names returns the category names in table order.
func (r Rules) Names() []string {
	names := make([]string, len(r.categories))
	for i, c := range r.categories {
		names[i] = c.Name
	}
	return names
}

// Shadowed returns extensions listed by more than one category, mapped to
// the later categories that never see them. Used by diagnostics.
func (r Rules) Shadowed() map[string][]string {
	out := make(map[string][]string)
	for _, c := range r.categories {
		for _, ext := range c.Extensions {
			if owner := r.byExt[ext]; owner != c.Name {
				out[ext] = append(out[ext], c.Name)
			}
		}
	}
	return out
}
