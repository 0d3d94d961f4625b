package store

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/teranos/PRX/errors"
)

const frontmatterDelim = "---"

// frontmatter is the YAML header persisted at the top of each prompt file.
type frontmatter struct {
	ID       string    `yaml:"id"`
	Tags     []string  `yaml:"tags,omitempty"`
	Created  time.Time `yaml:"created"`
	Modified time.Time `yaml:"modified"`
}

// encodePrompt renders a prompt as a frontmatter block followed by the
// raw content.
func encodePrompt(p *Prompt) ([]byte, error) {
	meta, err := yaml.Marshal(frontmatter{
		ID:       p.ID,
		Tags:     p.Tags,
		Created:  p.Created,
		Modified: p.Modified,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "marshaling metadata for %s", p.Name)
	}

	var b strings.Builder
	b.Grow(len(meta) + len(p.Content) + 2*len(frontmatterDelim) + 2)
	b.WriteString(frontmatterDelim)
	b.WriteByte('\n')
	b.Write(meta)
	b.WriteString(frontmatterDelim)
	b.WriteByte('\n')
	b.WriteString(p.Content)
	return []byte(b.String()), nil
}

// decodePrompt parses a prompt file. Files without a frontmatter header
// are accepted as bare content; missing metadata is filled in so that
// hand-dropped files become first-class prompts on the next save.
func decodePrompt(raw []byte, name, path string) (*Prompt, error) {
	content := string(raw)
	p := &Prompt{Name: name, Path: path}

	if !strings.HasPrefix(content, frontmatterDelim) {
		p.Content = content
		return normalizePrompt(p), nil
	}

	parts := strings.SplitN(content, frontmatterDelim, 3)
	if len(parts) < 3 {
		p.Content = content
		return normalizePrompt(p), nil
	}

	var meta frontmatter
	if err := yaml.Unmarshal([]byte(parts[1]), &meta); err != nil {
		return nil, errors.Wrapf(err, "parsing frontmatter for %s", name)
	}

	p.ID = meta.ID
	p.Tags = meta.Tags
	p.Created = meta.Created
	p.Modified = meta.Modified
	p.Content = strings.TrimPrefix(parts[2], "\n")
	return normalizePrompt(p), nil
}

func normalizePrompt(p *Prompt) *Prompt {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Created.IsZero() {
		p.Created = time.Now().UTC()
	}
	if p.Modified.IsZero() {
		p.Modified = p.Created
	}
	return p
}
