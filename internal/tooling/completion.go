package tooling

// CompletionKind mirrors the subset of LSP completion-item kinds this
// language needs.
type CompletionKind int

const (
	CompletionKindKeyword CompletionKind = iota
)

// CompletionItem is one entry offered at a completion request.
type CompletionItem struct {
	Label  string
	Kind   CompletionKind
	Detail string
}

// staticCompletions is the whole completion surface: the language has
// exactly two structural keywords worth completing on. Everything else
// (identifiers, "self", the operators) is free-form text an editor's
// own word-completion already handles.
var staticCompletions = []CompletionItem{
	{Label: "type", Kind: CompletionKindKeyword, Detail: "declare a type"},
	{Label: "define", Kind: CompletionKindKeyword, Detail: "declare a relation"},
}

// Completions returns the static completion list. It takes no
// positional argument because the list never varies by cursor location.
func Completions() []CompletionItem {
	out := make([]CompletionItem, len(staticCompletions))
	copy(out, staticCompletions)
	return out
}
