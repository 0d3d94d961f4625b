package engine

import (
	"regexp"
)

// Reference is one occurrence of a [[name]] prompt reference.
type Reference struct {
	// FullMatch is the literal matched text including brackets: [[name]]
	FullMatch string `json:"full_match"`
	// Name is the referenced prompt name
	Name string `json:"name"`
	// Start is the byte offset of the match in the scanned content
	Start int `json:"start"`
	// End is the byte offset one past the match
	End int `json:"end"`
	// Valid is set by ValidateReferences against a set of known names
	Valid bool `json:"valid"`
}

// FileReference is one occurrence of a [[file:path]] inclusion.
type FileReference struct {
	// FullMatch is the literal matched text including brackets
	FullMatch string `json:"full_match"`
	// Path is the referenced path, absolute or relative
	Path string `json:"path"`
	// Start is the byte offset of the match in the scanned content
	Start int `json:"start"`
	// End is the byte offset one past the match
	End int `json:"end"`
	// Valid is set by ValidateFileReferences against the file system
	Valid bool `json:"valid"`
}

// Names are lowercase letters, digits, and underscore only; anything else
// is literal text. Paths run to the first closing bracket. Both scans are
// flat: no nesting, non-overlapping matches in document order.
var (
	referencePattern     = regexp.MustCompile(`\[\[([a-z0-9_]+)\]\]`)
	fileReferencePattern = regexp.MustCompile(`\[\[file:([^\]]+)\]\]`)
)

// FindReferences returns all prompt references in content, in document order.
func FindReferences(content string) []Reference {
	matches := referencePattern.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return nil
	}

	refs := make([]Reference, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, Reference{
			FullMatch: content[m[0]:m[1]],
			Name:      content[m[2]:m[3]],
			Start:     m[0],
			End:       m[1],
		})
	}
	return refs
}

// FindFileReferences returns all file references in content, in document order.
func FindFileReferences(content string) []FileReference {
	matches := fileReferencePattern.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return nil
	}

	refs := make([]FileReference, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, FileReference{
			FullMatch: content[m[0]:m[1]],
			Path:      content[m[2]:m[3]],
			Start:     m[0],
			End:       m[1],
		})
	}
	return refs
}

// HasReferences reports whether content contains at least one prompt reference.
func HasReferences(content string) bool {
	return referencePattern.MatchString(content)
}

// HasFileReferences reports whether content contains at least one file reference.
func HasFileReferences(content string) bool {
	return fileReferencePattern.MatchString(content)
}

// ValidateReferences marks each reference Valid when its name appears in names.
func ValidateReferences(refs []Reference, names []string) {
	known := make(map[string]bool, len(names))
	for _, n := range names {
		known[n] = true
	}
	for i := range refs {
		refs[i].Valid = known[refs[i].Name]
	}
}

// ReferencedNames returns the names referenced by content, in document order,
// duplicates included.
func ReferencedNames(content string) []string {
	refs := FindReferences(content)
	if len(refs) == 0 {
		return nil
	}
	names := make([]string, len(refs))
	for i, r := range refs {
		names[i] = r.Name
	}
	return names
}
