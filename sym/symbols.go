// Package sym defines canonical symbols for PRX commands and system markers.
// These symbols are stable across CLI output and documentation.
package sym

// Command glyphs. Each top-level prx command carries one in its help text
// so command output is scannable at a glance.
const (
	Vault   = "⊞" // init — vault creation and layout
	Resolve = "⧉" // get — prompt resolution (composition of parts)
	Prompt  = "¶" // new — a fresh block of prose
	All     = "∀" // list — every prompt in the vault
	Refs    = "⇶" // refs — outgoing references of a prompt
	Shell   = "⌁" // run — shell command execution
	Edit    = "✎" // edit — open in $EDITOR
	Archive = "⊟" // rm — archive or delete
	Rename  = "⇌" // mv — rename, exchange one name for another
	Index   = "⋕" // index — the search index grid
	Watch   = "∿" // watch — continuous monitoring
	History = "≣" // history — stacked resolution records
	Config  = "≡" // config — settings and state
)

// System infrastructure symbols. No commands, used in log and status output.
const (
	File     = "⊡" // file inclusion
	Circular = "⟲" // circular reference detected
	DB       = "⊔" // database/storage layer
)

// entry binds a glyph to its command, label, and description.
type entry struct {
	glyph       string
	command     string
	label       string
	description string
}

// registry is the canonical mapping between glyphs and command metadata.
var registry = []entry{
	{Vault, "init", "Vault", "Initialize a prompt vault"},
	{Resolve, "get", "Resolve", "Resolve a prompt with all references expanded"},
	{Prompt, "new", "Prompt", "Create a new prompt"},
	{All, "list", "List", "List prompts in the vault"},
	{Refs, "refs", "References", "Show the references a prompt makes"},
	{Shell, "run", "Run", "Run a shell command through the engine executor"},
	{Edit, "edit", "Edit", "Open a prompt in your editor"},
	{Archive, "rm", "Remove", "Archive or delete a prompt"},
	{Rename, "mv", "Rename", "Rename a prompt"},
	{Index, "index", "Index", "Rebuild the search index"},
	{Watch, "watch", "Watch", "Watch the vault and reindex on change"},
	{History, "history", "History", "Show past resolutions"},
	{Config, "config", "Config", "Show and set configuration"},
	{File, "", "", "File inclusion marker"},
	{Circular, "", "", "Circular reference marker"},
	{DB, "", "", "Database/storage layer"},
}

// Lookup tables built from the registry at init time.
var (
	// GlyphToCommand maps a glyph to its prx command name.
	GlyphToCommand map[string]string
	// CommandToGlyph maps a prx command name to its glyph.
	CommandToGlyph map[string]string
	// CommandDescriptions maps a prx command name to its one-line description.
	CommandDescriptions map[string]string
)

func init() {
	GlyphToCommand = make(map[string]string, len(registry))
	CommandToGlyph = make(map[string]string, len(registry))
	CommandDescriptions = make(map[string]string, len(registry))
	for _, e := range registry {
		if e.command == "" {
			continue
		}
		GlyphToCommand[e.glyph] = e.command
		CommandToGlyph[e.command] = e.glyph
		CommandDescriptions[e.command] = e.description
	}
}

// Glyph returns the glyph for a prx command name, or "" if it has none.
func Glyph(command string) string {
	return CommandToGlyph[command]
}

// Label returns the human label for a glyph, or "" if unknown.
func Label(glyph string) string {
	for _, e := range registry {
		if e.glyph == glyph {
			return e.label
		}
	}
	return ""
}
