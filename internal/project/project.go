// Package project lowers an AuthorizationModel to (and lifts one back
// from) the canonical JSON "type definitions" schema. Projection is
// lossy: spans are discarded and relation order is replaced with a
// stable sort by key, so byte-identical JSON depends only on the model's
// shape, not the order relations were declared in.
package project

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/iammathew/openfga-dsl/internal/ast"
)

// document is the root JSON shape.
type document struct {
	TypeDefinitions []typeDef `json:"type_definitions"`
}

type typeDef struct {
	Type      string                `json:"type"`
	Relations map[string]relationData `json:"relations"`
}

// relationData is the untagged union of access shapes described in the
// JSON schema. Go has no native untagged-enum support, so it is encoded
// and decoded by hand in MarshalJSON/UnmarshalJSON below rather than
// relying on struct tags alone.
type relationData struct {
	kind     ast.Kind
	relation string // SelfComputed, and the Computed computedUserset.relation
	object   string // Computed tupleset.relation
	children []relationData
	base     *relationData
	subtract *relationData
}

type objectRelation struct {
	Object   string `json:"object"`
	Relation string `json:"relation"`
}

type tupleToUserset struct {
	Tupleset       objectRelation `json:"tupleset"`
	ComputedUserset objectRelation `json:"computedUserset"`
}

type usersets struct {
	Child []relationData `json:"child"`
}

func (r relationData) MarshalJSON() ([]byte, error) {
	switch r.kind {
	case ast.AccessDirect:
		return []byte(`{"this":{}}`), nil

	case ast.AccessSelfComputed:
		return json.Marshal(struct {
			ComputedUserset objectRelation `json:"computedUserset"`
		}{objectRelation{Object: "", Relation: r.relation}})

	case ast.AccessComputed:
		return json.Marshal(struct {
			TupleToUserset tupleToUserset `json:"tupleToUserset"`
		}{tupleToUserset{
			Tupleset:        objectRelation{Object: "", Relation: r.object},
			ComputedUserset: objectRelation{Object: "", Relation: r.relation},
		}})

	case ast.AccessUnion:
		return json.Marshal(struct {
			Union usersets `json:"union"`
		}{usersets{Child: r.children}})

	case ast.AccessIntersection:
		return json.Marshal(struct {
			Intersection usersets `json:"intersection"`
		}{usersets{Child: r.children}})

	case ast.AccessDifference:
		return json.Marshal(struct {
			Base     relationData `json:"base"`
			Subtract relationData `json:"subtract"`
		}{*r.base, *r.subtract})

	default:
		return nil, fmt.Errorf("project: unknown access kind %s", r.kind)
	}
}

func (r *relationData) UnmarshalJSON(data []byte) error {
	var probe struct {
		This            *struct{}       `json:"this"`
		ComputedUserset *objectRelation `json:"computedUserset"`
		TupleToUserset  *tupleToUserset `json:"tupleToUserset"`
		Union           *usersets       `json:"union"`
		Intersection    *usersets       `json:"intersection"`
		Base            *relationData   `json:"base"`
		Subtract        *relationData   `json:"subtract"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	switch {
	case probe.This != nil:
		r.kind = ast.AccessDirect
	case probe.TupleToUserset != nil:
		r.kind = ast.AccessComputed
		r.relation = probe.TupleToUserset.ComputedUserset.Relation
		r.object = probe.TupleToUserset.Tupleset.Relation
	case probe.ComputedUserset != nil:
		r.kind = ast.AccessSelfComputed
		r.relation = probe.ComputedUserset.Relation
	case probe.Union != nil:
		r.kind = ast.AccessUnion
		r.children = probe.Union.Child
	case probe.Intersection != nil:
		r.kind = ast.AccessIntersection
		r.children = probe.Intersection.Child
	case probe.Base != nil && probe.Subtract != nil:
		r.kind = ast.AccessDifference
		r.base = probe.Base
		r.subtract = probe.Subtract
	default:
		return fmt.Errorf("project: unrecognised relation data shape: %s", string(data))
	}
	return nil
}

func fromAccess(a ast.Access) relationData {
	switch a.Kind {
	case ast.AccessDirect:
		return relationData{kind: ast.AccessDirect}
	case ast.AccessSelfComputed:
		return relationData{kind: ast.AccessSelfComputed, relation: a.Relation.Name}
	case ast.AccessComputed:
		return relationData{kind: ast.AccessComputed, relation: a.Relation.Name, object: a.Object.Name}
	case ast.AccessUnion:
		children := make([]relationData, len(a.Children))
		for i, c := range a.Children {
			children[i] = fromAccess(c)
		}
		return relationData{kind: ast.AccessUnion, children: children}
	case ast.AccessIntersection:
		children := make([]relationData, len(a.Children))
		for i, c := range a.Children {
			children[i] = fromAccess(c)
		}
		return relationData{kind: ast.AccessIntersection, children: children}
	case ast.AccessDifference:
		base := fromAccess(*a.Base)
		subtract := fromAccess(*a.Subtract)
		return relationData{kind: ast.AccessDifference, base: &base, subtract: &subtract}
	default:
		return relationData{kind: ast.AccessDirect}
	}
}

func toAccess(r relationData) ast.Access {
	switch r.kind {
	case ast.AccessDirect:
		return ast.Access{Kind: ast.AccessDirect}
	case ast.AccessSelfComputed:
		rel := identifierNoSpan(r.relation)
		return ast.Access{Kind: ast.AccessSelfComputed, Relation: &rel}
	case ast.AccessComputed:
		rel := identifierNoSpan(r.relation)
		obj := identifierNoSpan(r.object)
		return ast.Access{Kind: ast.AccessComputed, Relation: &rel, Object: &obj}
	case ast.AccessUnion:
		children := make([]ast.Access, len(r.children))
		for i, c := range r.children {
			children[i] = toAccess(c)
		}
		return ast.Access{Kind: ast.AccessUnion, Children: children}
	case ast.AccessIntersection:
		children := make([]ast.Access, len(r.children))
		for i, c := range r.children {
			children[i] = toAccess(c)
		}
		return ast.Access{Kind: ast.AccessIntersection, Children: children}
	case ast.AccessDifference:
		base := toAccess(*r.base)
		subtract := toAccess(*r.subtract)
		return ast.Access{Kind: ast.AccessDifference, Base: &base, Subtract: &subtract}
	default:
		return ast.Access{Kind: ast.AccessDirect}
	}
}

// Marshal renders model as the canonical JSON document. Relations within
// each type are emitted sorted by key.
func Marshal(model ast.AuthorizationModel) ([]byte, error) {
	doc := document{TypeDefinitions: make([]typeDef, len(model.Types))}
	for i, typ := range model.Types {
		relations := make(map[string]relationData, len(typ.Relations))
		for _, rel := range typ.Relations {
			relations[rel.Identifier.Name] = fromAccess(rel.Access)
		}
		doc.TypeDefinitions[i] = typeDef{Type: typ.Identifier.Name, Relations: relations}
	}
	// encoding/json sorts map keys when encoding a map[string]T, which is
	// exactly the "sorted by key" contract the schema requires — no
	// custom object-key ordering needed here.
	return json.Marshal(doc)
}

// Unmarshal parses the canonical JSON document back into an
// AuthorizationModel. The round trip is lossy: every span is nil and
// relation order within a type follows the JSON object's sorted key
// order rather than any original declaration order.
func Unmarshal(data []byte) (ast.AuthorizationModel, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return ast.AuthorizationModel{}, err
	}

	types := make([]ast.Type, len(doc.TypeDefinitions))
	for i, td := range doc.TypeDefinitions {
		keys := make([]string, 0, len(td.Relations))
		for k := range td.Relations {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		relations := make([]ast.Relation, len(keys))
		for j, k := range keys {
			relations[j] = ast.Relation{
				Identifier: identifierNoSpan(k),
				Access:     toAccess(td.Relations[k]),
			}
		}
		types[i] = ast.Type{Identifier: identifierNoSpan(td.Type), Relations: relations}
	}
	return ast.AuthorizationModel{Types: types}, nil
}

func identifierNoSpan(name string) ast.Identifier {
	return ast.Identifier{Name: name, Span: nil}
}
