// Package engine expands prompt markup into final text.
//
// Three token forms are recognized:
//
//	[[name]]      another prompt's content, expanded recursively
//	[[file:path]] a file's contents, inlined once
//	{{command}}   a shell command's captured stdout
//
// Resolve runs the three passes in fixed order: files first, then prompt
// references depth-first with cycle and depth guards, then commands. The
// ordering is load-bearing: a referenced prompt's own commands must be
// flattened into the text before the command pass scans it.
//
// Resolution is total. A broken reference, unreadable file, cycle, or
// failing command never aborts the call; each leaves an inline marker or
// the verbatim token, and the result's flags say what went wrong.
package engine

import (
	"context"
	"strings"
	"time"
)

// DefaultMaxDepth bounds recursive prompt-reference expansion.
const DefaultMaxDepth = 10

// LookupFunc returns a prompt's raw content by name. It is the only
// channel through which the engine learns about other prompts. The
// engine never calls it concurrently.
type LookupFunc func(name string) (string, bool)

// ResolveOptions configures a Resolve call.
type ResolveOptions struct {
	// MaxDepth is the recursion ceiling for prompt references.
	// Zero or negative means DefaultMaxDepth.
	MaxDepth int
	// ExecuteCommands controls whether {{command}} tokens are run.
	// When false, tokens stay verbatim but are still reported.
	ExecuteCommands bool
	// BaseDir anchors relative [[file:path]] references. Empty means
	// the process working directory.
	BaseDir string
	// CommandTimeout bounds each command's run time. Zero means no
	// timeout; a hung command then hangs the resolution.
	CommandTimeout time.Duration
}

// DefaultResolveOptions returns the standard options: depth ceiling of
// DefaultMaxDepth, commands executed, no timeout.
func DefaultResolveOptions() ResolveOptions {
	return ResolveOptions{
		MaxDepth:        DefaultMaxDepth,
		ExecuteCommands: true,
	}
}

// ResolveResult is the outcome of one Resolve call.
type ResolveResult struct {
	// Content is the fully expanded text
	Content string `json:"content"`
	// Commands lists every command token found after reference
	// flattening, trimmed, whether or not it was executed
	Commands []string `json:"commands,omitempty"`
	// References lists prompt names successfully inlined, in resolution
	// order, duplicates allowed
	References []string `json:"references,omitempty"`
	// FileReferences lists file paths successfully inlined
	FileReferences []string `json:"file_references,omitempty"`
	// HadCircularRefs is set when any reference re-entered a prompt
	// already being expanded on the current chain
	HadCircularRefs bool `json:"had_circular_refs"`
	// MaxDepthExceeded is set when expansion stopped at the depth ceiling
	MaxDepthExceeded bool `json:"max_depth_exceeded"`
}

// Resolve expands content. lookup supplies other prompts' raw text; a nil
// lookup behaves as if no prompt exists. Resolve never fails: per-token
// problems surface as inline markers and result flags.
func Resolve(content string, lookup LookupFunc, opts ResolveOptions) ResolveResult {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if lookup == nil {
		lookup = func(string) (string, bool) { return "", false }
	}

	r := &resolver{
		lookup:  lookup,
		opts:    opts,
		visited: make(map[string]bool),
	}

	out := r.expandFiles(content)
	out = r.expandPrompts(out, 0)

	for _, cmd := range FindCommands(out) {
		r.commands = append(r.commands, cmd.Command)
	}
	if opts.ExecuteCommands {
		out = r.expandCommands(out)
	}

	return ResolveResult{
		Content:          out,
		Commands:         r.commands,
		References:       r.references,
		FileReferences:   r.fileRefs,
		HadCircularRefs:  r.hadCircular,
		MaxDepthExceeded: r.depthExceeded,
	}
}

// NeedsResolution reports whether content contains any token that Resolve
// would act on.
func NeedsResolution(content string) bool {
	return HasReferences(content) || HasFileReferences(content) || HasCommands(content)
}

// ResolveCommands replaces every command token in content with its output.
// Exported for confirm-before-execute flows: callers resolve references
// with ExecuteCommands false, show the pending commands, then run this.
func ResolveCommands(content string) string {
	return ResolveCommandsWithOptions(content, DefaultResolveOptions())
}

// ResolveCommandsWithOptions is ResolveCommands for callers that carry a
// command timeout in their options.
func ResolveCommandsWithOptions(content string, opts ResolveOptions) string {
	r := &resolver{opts: opts}
	return r.expandCommands(content)
}

// resolver carries the state of a single Resolve call: the visited set is
// the chain of prompt names currently being expanded, not an ever-seen
// set, so repeated non-cyclic references stay legal.
type resolver struct {
	lookup  LookupFunc
	opts    ResolveOptions
	visited map[string]bool

	references    []string
	fileRefs      []string
	commands      []string
	hadCircular   bool
	depthExceeded bool
}

// expandFiles inlines file references once, non-recursively. Content
// pulled in from files is never re-scanned for further file references.
func (r *resolver) expandFiles(content string) string {
	if !HasFileReferences(content) {
		return content
	}

	refs := FindFileReferences(content)
	var b strings.Builder
	b.Grow(len(content))
	last := 0
	for _, ref := range refs {
		b.WriteString(content[last:ref.Start])
		text, err := ReadFileContent(ref.Path, r.opts.BaseDir)
		if err != nil {
			b.WriteString(fileErrorComment(ref.Path, err))
		} else {
			r.fileRefs = append(r.fileRefs, ref.Path)
			b.WriteString(text)
		}
		last = ref.End
	}
	b.WriteString(content[last:])
	return b.String()
}

// expandPrompts rewrites prompt references depth-first. The output is
// rebuilt by walking match spans in document order and splicing in
// replacements, so surrounding text keeps its exact bytes regardless of
// how replacement lengths differ from token lengths.
func (r *resolver) expandPrompts(content string, depth int) string {
	if depth >= r.opts.MaxDepth {
		r.depthExceeded = true
		return content
	}
	if !HasReferences(content) {
		return content
	}

	refs := FindReferences(content)
	var b strings.Builder
	b.Grow(len(content))
	last := 0
	for _, ref := range refs {
		b.WriteString(content[last:ref.Start])
		b.WriteString(r.expandReference(ref, depth))
		last = ref.End
	}
	b.WriteString(content[last:])
	return b.String()
}

// expandReference produces the replacement text for a single reference.
func (r *resolver) expandReference(ref Reference, depth int) string {
	if r.visited[ref.Name] {
		r.hadCircular = true
		return "<!-- [CIRCULAR REFERENCE DETECTED: " + ref.Name + "] -->"
	}

	body, ok := r.lookup(ref.Name)
	if !ok {
		// Unknown names stay verbatim so callers can still highlight
		// them as broken.
		return ref.FullMatch
	}

	r.visited[ref.Name] = true
	r.references = append(r.references, ref.Name)
	resolved := r.expandPrompts(body, depth+1)
	delete(r.visited, ref.Name)
	return resolved
}

// expandCommands substitutes each command token with its safe output.
func (r *resolver) expandCommands(content string) string {
	if !HasCommands(content) {
		return content
	}

	cmds := FindCommands(content)
	var b strings.Builder
	b.Grow(len(content))
	last := 0
	for _, cmd := range cmds {
		b.WriteString(content[last:cmd.Start])
		b.WriteString(r.runSafe(cmd.Command))
		last = cmd.End
	}
	b.WriteString(content[last:])
	return b.String()
}

func (r *resolver) runSafe(command string) string {
	ctx := context.Background()
	if r.opts.CommandTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.CommandTimeout)
		defer cancel()
	}
	return RunCommandSafeContext(ctx, command)
}
