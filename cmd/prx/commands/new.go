package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/PRX/config"
	"github.com/teranos/PRX/errors"
	"github.com/teranos/PRX/store"
	"github.com/teranos/PRX/sym"
)

// NewCmd represents the new (create prompt) command
var NewCmd = &cobra.Command{
	Use:   "new [text...]",
	Short: sym.Prompt + " Create a new prompt",
	Long: sym.Prompt + ` new — Create a new prompt

Content comes from the arguments, --file, or stdin. The name is
generated from the first content line (lowercased, punctuation
stripped) and made unique with a numeric suffix when taken; --name
overrides it.

Examples:
  prx new "Write a haiku about [[topic]]"
  prx new --file draft.md --tag writing
  git log --oneline -20 | prx new --name recent_commits`,
	RunE: runNew,
}

var (
	newNameFlag string
	newFileFlag string
	newTagsFlag []string
)

func init() {
	NewCmd.Flags().StringVar(&newNameFlag, "name", "", "Name for the prompt (default: generated from the first line)")
	NewCmd.Flags().StringVarP(&newFileFlag, "file", "f", "", "Read prompt content from a file")
	NewCmd.Flags().StringSliceVarP(&newTagsFlag, "tag", "t", nil, "Tag the prompt (repeatable)")
}

func runNew(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	v, err := openVault(cfg)
	if err != nil {
		return err
	}

	content, err := newPromptContent(args)
	if err != nil {
		return err
	}

	var p *store.Prompt
	if newNameFlag != "" {
		p, err = createNamed(v, newNameFlag, content, newTagsFlag)
	} else {
		p, err = v.Create(content, newTagsFlag)
	}
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Created %s", p.Name)
	return nil
}

// createNamed creates a prompt under an explicit name instead of a
// generated one. The name must be valid and free across every location,
// archive included.
func createNamed(v *store.Vault, name, content string, tags []string) (*store.Prompt, error) {
	if err := store.ValidateName(name); err != nil {
		return nil, err
	}
	exists, err := v.Exists(name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.Wrapf(errors.ErrDuplicateName, "%q", name)
	}

	p := store.NewPrompt(content)
	p.Name = name
	p.Tags = tags
	if err := v.Save(p); err != nil {
		return nil, err
	}
	return p, nil
}

// newPromptContent assembles prompt text from --file, the arguments, or
// stdin, in that order of preference.
func newPromptContent(args []string) (string, error) {
	if newFileFlag != "" {
		data, err := os.ReadFile(newFileFlag)
		if err != nil {
			return "", errors.Wrapf(err, "reading %s", newFileFlag)
		}
		return string(data), nil
	}

	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", errors.Wrap(err, "reading stdin")
	}
	return string(data), nil
}
