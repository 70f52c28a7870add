// Package node defines the document contract the validator and shape
// engine walk: a read-only view over some in-memory JSON-like value. The
// core never parses or decodes document text itself; a caller hands it a
// Node built from whatever in-memory representation it already has.
package node

// Kind tags the shape of a Node's value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindPosInt
	KindNegInt
	KindFloat
	KindString
	KindArray
	KindObject
	// KindBinary tags a non-JSON payload (e.g. a BSON binary subtype, or a
	// raw byte blob embedded in a richer document model). It is never
	// schema-valid against any "type" keyword: TypeName returns "" for it,
	// which matches no type name.
	KindBinary
)

// Node is a single position in a document tape. Implementations are
// expected to be cheap to construct (often a thin wrapper over a decoded
// value plus an index), since the validator creates one per active frame.
type Node interface {
	// Kind reports which accessor below is valid to call.
	Kind() Kind

	Bool() bool
	// PosInt and NegInt split integers by sign so an implementation backed
	// by uint64/int64 need not lose range converting through one signed
	// type; Float carries non-integral numbers.
	PosInt() uint64
	NegInt() int64
	Float() float64
	String() string

	// Array returns an iterator over this node's elements, valid only when
	// Kind() == KindArray.
	Array() ArrayIter
	// Fields returns an iterator over this node's members in ascending
	// key order, valid only when Kind() == KindObject.
	Fields() FieldIter

	// Length reports the tape length of this node: 1 for scalars, and for
	// arrays/objects the count of all nodes in the subtree rooted here
	// (including itself), matching the "tape_length" span used to size a
	// Frame's active range without a second walk.
	Length() int
}

// ArrayIter walks an array Node's elements in index order.
type ArrayIter interface {
	// Next advances to the next element, returning false once exhausted.
	Next() bool
	// Node returns the current element; valid only after a true Next.
	Node() Node
}

// FieldIter walks an object Node's members in ascending key order, the
// order properties/patternProperties/required/dependentRequired evaluation
// depends on.
type FieldIter interface {
	Next() bool
	Name() string
	Node() Node
}

// Compare imposes the total order over node kinds used by uniqueItems and
// by const/enum comparison: null < false < true < numbers < strings <
// arrays < objects < binary, with like-kinded values compared structurally.
func Compare(a, b Node) int {
	if a.Kind() != b.Kind() {
		return int(a.Kind()) - int(b.Kind())
	}
	switch a.Kind() {
	case KindNull, KindBinary:
		return 0
	case KindBool:
		return boolCompare(a.Bool(), b.Bool())
	case KindPosInt:
		return uint64Compare(a.PosInt(), b.PosInt())
	case KindNegInt:
		return int64Compare(a.NegInt(), b.NegInt())
	case KindFloat:
		return float64Compare(a.Float(), b.Float())
	case KindString:
		return stringCompare(a.String(), b.String())
	case KindArray:
		return arrayCompare(a, b)
	case KindObject:
		return objectCompare(a, b)
	}
	return 0
}

// Equal reports whether two nodes compare structurally equal, the relation
// uniqueItems and const use.
func Equal(a, b Node) bool {
	return Compare(a, b) == 0
}

func boolCompare(a, b bool) int {
	if a == b {
		return 0
	}
	if !a {
		return -1
	}
	return 1
}

func uint64Compare(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func int64Compare(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func float64Compare(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func stringCompare(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func arrayCompare(a, b Node) int {
	ai, bi := a.Array(), b.Array()
	for {
		an, bn := ai.Next(), bi.Next()
		if !an && !bn {
			return 0
		}
		if !an {
			return -1
		}
		if !bn {
			return 1
		}
		if c := Compare(ai.Node(), bi.Node()); c != 0 {
			return c
		}
	}
}

func objectCompare(a, b Node) int {
	am := collectFields(a)
	bm := collectFields(b)
	if len(am) != len(bm) {
		return uint64Compare(uint64(len(am)), uint64(len(bm)))
	}
	for i := range am {
		if am[i].name != bm[i].name {
			return stringCompare(am[i].name, bm[i].name)
		}
		if c := Compare(am[i].node, bm[i].node); c != 0 {
			return c
		}
	}
	return 0
}

type namedNode struct {
	name string
	node Node
}

func collectFields(n Node) []namedNode {
	it := n.Fields()
	var out []namedNode
	for it.Next() {
		out = append(out, namedNode{name: it.Name(), node: it.Node()})
	}
	return out
}

// TypeName returns the JSON Schema "type" keyword name for k, or "" for
// KindBinary which matches no type name.
func TypeName(k Kind) string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindPosInt, KindNegInt:
		return "integer"
	case KindFloat:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return ""
	}
}
