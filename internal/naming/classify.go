package naming

import "strings"

// Classify returns the category for fileName under r. Precedence:
//
//  1. name patterns (case-insensitive substring), so "Screenshot 1.png"
//     is a screenshot rather than an image;
//  2. the first category in table order listing the extension;
//  3. the fallback category.
//
// Classify never touches the filesystem.
func Classify(r Rules, fileName string) string {
	category, _ := Explain(r, fileName)
	return category
}

// Explain is [Classify] plus a short human-readable reason, used for
// verbose logging.
func Explain(r Rules, fileName string) (category, reason string) {
	lower := strings.ToLower(fileName)

	if r.patternCategory != "" {
		if p, ok := r.MatchPattern(lower); ok {
			return r.patternCategory, "name contains " + `"` + p + `"`
		}
	}

	ext := Ext(fileName)
	if ext == "" {
		return r.fallback, "no extension"
	}
	if name, ok := r.CategoryForExt(ext); ok {
		return name, "extension " + ext
	}
	return r.fallback, "unknown extension " + ext
}

// Ext returns the lower-cased extension of name including the dot. Names
// without a dot, ending in a dot, or whose only dot is the leading one
// (".bashrc") have no extension.
func Ext(name string) string {
	_, ext := SplitName(name)
	return strings.ToLower(ext)
}

// SplitName splits name into stem and extension at the last dot. The
// extension keeps its original case and includes the dot.
func SplitName(name string) (stem, ext string) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return name, ""
	}
	return name[:i], name[i:]
}
