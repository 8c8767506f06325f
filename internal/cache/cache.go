// Package cache holds the latest analysis of every open document. It is
// the only shared mutable state in the editor-integration path: lexing,
// parsing, and checking are pure functions of their inputs and run
// outside any lock, so only the final cache update needs to serialise
// with concurrent readers.
package cache

import (
	"sync"

	"github.com/google/uuid"

	"github.com/iammathew/openfga-dsl/internal/ast"
	"github.com/iammathew/openfga-dsl/internal/checker"
	"github.com/iammathew/openfga-dsl/internal/diagnostic"
	"github.com/iammathew/openfga-dsl/internal/lexer"
	"github.com/iammathew/openfga-dsl/internal/parser"
	"github.com/iammathew/openfga-dsl/internal/source"
)

// Document is the latest known state of one URI. Model is nil only when
// the document has never parsed successfully; once a parse has
// succeeded, a later failing parse retains the previous Model so editor
// queries (hover, completion, symbols) keep answering against the last
// good tree.
type Document struct {
	URI     string
	Text    string
	Version int
	// Revision is a fresh opaque token stamped on every Update, distinct
	// from Version (which is the editor-supplied document version and
	// can repeat across documents or be client-assigned). Callers that
	// need to tell "this is a genuinely new analysis" from "I re-read
	// the same state" compare Revision, not Version.
	Revision    uuid.UUID
	Map         *source.Map
	Tokens      []lexer.Token
	Model       *ast.AuthorizationModel
	Diagnostics []diagnostic.Report
}

// Cache maps document URIs to their latest Document. A Cache is safe for
// concurrent use: readers never block each other, and one lock guards
// every URI, held by a writer only while it installs a finished analysis.
type Cache struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// New creates an empty Cache.
func New() *Cache {
	return &Cache{docs: make(map[string]*Document)}
}

// Get returns the current Document for uri, and whether one exists.
func (c *Cache) Get(uri string) (*Document, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	doc, ok := c.docs[uri]
	return doc, ok
}

// Update re-lexes, re-parses, and re-checks text for uri, then installs
// the result as the document's new state. No JSON projection is run or
// stored here. The analysis
// itself runs without holding the cache lock; only the final install
// does, keeping the lock's critical section O(1) regardless of document
// size or how long analysis takes.
func (c *Cache) Update(uri, text string, version int) *Document {
	sm := source.NewMap(text)
	tokens, lexErrs := lexer.New(text).ScanTokens()

	var (
		model       *ast.AuthorizationModel
		reports     []diagnostic.Report
		parseFailed bool
	)
	for _, e := range lexErrs {
		reports = append(reports, diagnostic.FromLexError(e))
	}

	m, parseErrs := parser.Parse(tokens)
	if len(parseErrs) > 0 {
		parseFailed = true
		for _, e := range parseErrs {
			reports = append(reports, diagnostic.FromParseError(e))
		}
	} else {
		model = &m
		violations := checker.Check(m)
		reports = append(reports, diagnostic.FromViolations(violations)...)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	doc := &Document{
		URI:         uri,
		Text:        text,
		Version:     version,
		Revision:    uuid.New(),
		Map:         sm,
		Tokens:      tokens,
		Diagnostics: reports,
	}
	if model != nil {
		doc.Model = model
	} else if parseFailed {
		// Keep whatever tree we had before; a broken edit should not
		// blind the editor to symbols/hover from the last good parse.
		if prev, ok := c.docs[uri]; ok {
			doc.Model = prev.Model
		}
	}

	c.docs[uri] = doc
	return doc
}

// Close drops the cached state for uri.
func (c *Cache) Close(uri string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.docs, uri)
}

// Size returns the number of cached documents.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.docs)
}
