package engine

import (
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/teranos/PRX/errors"
)

// ReadFileContent reads the file named by a file reference. Relative paths
// are joined to baseDir; an empty baseDir means the process working
// directory. The file must exist, be a regular file, and hold valid UTF-8.
func ReadFileContent(path, baseDir string) (string, error) {
	resolved := path
	if !filepath.IsAbs(resolved) && baseDir != "" {
		resolved = filepath.Join(baseDir, resolved)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", errors.ErrNotRegularFile
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", errors.New("file content is not valid UTF-8")
	}
	return string(data), nil
}

// ValidateFileReferences marks each reference Valid when its path, joined
// to baseDir, names an existing regular file.
func ValidateFileReferences(refs []FileReference, baseDir string) {
	for i := range refs {
		resolved := refs[i].Path
		if !filepath.IsAbs(resolved) && baseDir != "" {
			resolved = filepath.Join(baseDir, resolved)
		}
		info, err := os.Stat(resolved)
		refs[i].Valid = err == nil && info.Mode().IsRegular()
	}
}

// fileErrorComment renders the inline marker substituted for a file
// reference that could not be read.
func fileErrorComment(path string, err error) string {
	if errors.Is(err, fs.ErrNotExist) {
		return "<!-- [FILE NOT FOUND: " + path + "] -->"
	}
	return "<!-- [FILE READ ERROR: " + path + " - " + err.Error() + "] -->"
}
