package cache

import (
	"sync"
	"testing"
)

func TestUpdateThenGet(t *testing.T) {
	c := New()
	src := "type document\n  relations\n    define viewer as self"
	doc := c.Update("file:///a.fga", src, 1)
	if doc.Model == nil {
		t.Fatalf("expected a parsed model")
	}
	if len(doc.Diagnostics) != 0 {
		t.Fatalf("expected no diagnostics, got %v", doc.Diagnostics)
	}

	got, ok := c.Get("file:///a.fga")
	if !ok {
		t.Fatalf("expected document to be present")
	}
	if got.Text != src {
		t.Errorf("expected cached text to match input")
	}
}

func TestUpdateReportsCheckerViolations(t *testing.T) {
	c := New()
	src := "type document\n  relations\n    define viewer as ghost"
	doc := c.Update("file:///a.fga", src, 1)
	if doc.Model == nil {
		t.Fatalf("expected a parsed model despite the semantic violation")
	}
	if len(doc.Diagnostics) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %v", doc.Diagnostics)
	}
	if doc.Diagnostics[0].Code != "203" {
		t.Errorf("expected code 203, got %q", doc.Diagnostics[0].Code)
	}
}

func TestUpdateRetainsPreviousModelOnParseFailure(t *testing.T) {
	c := New()
	good := "type document\n  relations\n    define viewer as self"
	c.Update("file:///a.fga", good, 1)

	broken := "type document\n  relations\n    define"
	doc := c.Update("file:///a.fga", broken, 2)

	if doc.Model == nil {
		t.Fatalf("expected the previous model to be retained after a broken edit")
	}
	if len(doc.Model.Types) != 1 || doc.Model.Types[0].Identifier.Name != "document" {
		t.Errorf("expected the retained model to be the last good parse, got %+v", doc.Model)
	}
	if len(doc.Diagnostics) == 0 {
		t.Errorf("expected diagnostics for the broken edit even though the model was retained")
	}
}

func TestUpdateStampsAFreshRevisionEachCall(t *testing.T) {
	c := New()
	src := "type document\n  relations\n    define viewer as self"
	first := c.Update("file:///a.fga", src, 1)
	second := c.Update("file:///a.fga", src, 2)
	if first.Revision == second.Revision {
		t.Errorf("expected distinct Revision tokens across updates, got %v twice", first.Revision)
	}
}

func TestCloseRemovesDocument(t *testing.T) {
	c := New()
	c.Update("file:///a.fga", "type document\n  relations\n    define viewer as self", 1)
	c.Close("file:///a.fga")
	if _, ok := c.Get("file:///a.fga"); ok {
		t.Fatalf("expected document to be gone after Close")
	}
	if c.Size() != 0 {
		t.Errorf("expected cache size 0 after Close, got %d", c.Size())
	}
}

func TestConcurrentReadsAndWritesDoNotRace(t *testing.T) {
	c := New()
	c.Update("file:///a.fga", "type document\n  relations\n    define viewer as self", 1)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(v int) {
			defer wg.Done()
			c.Update("file:///a.fga", "type document\n  relations\n    define viewer as self", v)
		}(i)
		go func() {
			defer wg.Done()
			c.Get("file:///a.fga")
		}()
	}
	wg.Wait()
}
