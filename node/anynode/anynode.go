// Package anynode implements node.Node over the plain `any` tree produced
// by decoding JSON with numbers preserved as json.Number, so integers and floats can be told apart without a lossy
// float64 round-trip.
package anynode

import (
	"bytes"
	"math/big"
	"sort"

	"github.com/goccy/go-json"

	"github.com/flowcore/schemacore/node"
)

// Node wraps a decoded `any` value.
type Node struct {
	v any
}

// New wraps v as a node.Node. v is expected to have come from a
// json.Decoder configured with UseNumber (as Decode does), so numbers
// arrive as json.Number. Plain float64 values are also accepted and are
// classified by value: one with no fractional part counts as an integer.
// A number held as a Go string is a KindString node; YAML decoded by
// goccy/go-yaml does not yield json.Number, which is why cmd/schemalint
// re-encodes YAML input as JSON before decoding it here.
func New(v any) Node {
	return Node{v: v}
}

// Binary wraps a raw byte blob as a KindBinary node, the supplemented
// category for non-JSON payloads (§ SPEC_FULL SUPPLEMENTED FEATURES).
func Binary(b []byte) Node {
	return Node{v: rawBinary(b)}
}

type rawBinary []byte

func (n Node) Kind() node.Kind {
	switch v := n.v.(type) {
	case nil:
		return node.KindNull
	case bool:
		return node.KindBool
	case rawBinary:
		return node.KindBinary
	case json.Number:
		if i, ok := parseJSONInt(v); ok {
			if i.Sign() < 0 {
				return node.KindNegInt
			}
			return node.KindPosInt
		}
		return node.KindFloat
	case float64:
		if v == float64(int64(v)) {
			if v < 0 {
				return node.KindNegInt
			}
			return node.KindPosInt
		}
		return node.KindFloat
	case int, int8, int16, int32, int64:
		return node.KindNegInt // callers supplying native ints should prefer json.Number
	case uint, uint8, uint16, uint32, uint64:
		return node.KindPosInt
	case string:
		return node.KindString
	case []any:
		return node.KindArray
	case map[string]any:
		return node.KindObject
	default:
		return node.KindNull
	}
}

func (n Node) Bool() bool { return n.v.(bool) }

func (n Node) PosInt() uint64 {
	switch v := n.v.(type) {
	case json.Number:
		i, ok := parseJSONInt(v)
		if !ok {
			return 0
		}
		return i.Uint64()
	case float64:
		return uint64(v)
	default:
		return 0
	}
}

func (n Node) NegInt() int64 {
	switch v := n.v.(type) {
	case json.Number:
		i, ok := parseJSONInt(v)
		if !ok {
			return 0
		}
		return i.Int64()
	case float64:
		return int64(v)
	default:
		return 0
	}
}

// parseJSONInt parses v as an exact integer, accepting both plain integer
// literals ("3", "-7") and zero-fraction decimal/exponent forms ("1.0",
// "2e0") that json.Number leaves as text: a JSON number is an integer by
// value, not by how its literal happens to be spelled.
func parseJSONInt(v json.Number) (*big.Int, bool) {
	if i, ok := new(big.Int).SetString(string(v), 10); ok {
		return i, true
	}
	r, ok := new(big.Rat).SetString(string(v))
	if !ok || !r.IsInt() {
		return nil, false
	}
	return new(big.Int).Set(r.Num()), true
}

func (n Node) Float() float64 {
	switch v := n.v.(type) {
	case json.Number:
		f, _ := v.Float64()
		return f
	case float64:
		return v
	default:
		return 0
	}
}

func (n Node) String() string { return n.v.(string) }

func (n Node) Array() node.ArrayIter {
	arr, _ := n.v.([]any)
	return &arrayIter{items: arr, idx: -1}
}

func (n Node) Fields() node.FieldIter {
	obj, _ := n.v.(map[string]any)
	names := make([]string, 0, len(obj))
	for k := range obj {
		names = append(names, k)
	}
	sort.Strings(names)
	return &fieldIter{obj: obj, names: names, idx: -1}
}

func (n Node) Length() int {
	switch v := n.v.(type) {
	case []any:
		total := 1
		for _, e := range v {
			total += New(e).Length()
		}
		return total
	case map[string]any:
		total := 1
		for _, e := range v {
			total += New(e).Length()
		}
		return total
	default:
		return 1
	}
}

type arrayIter struct {
	items []any
	idx   int
}

func (it *arrayIter) Next() bool {
	it.idx++
	return it.idx < len(it.items)
}

func (it *arrayIter) Node() node.Node {
	return New(it.items[it.idx])
}

type fieldIter struct {
	obj   map[string]any
	names []string
	idx   int
}

func (it *fieldIter) Next() bool {
	it.idx++
	return it.idx < len(it.names)
}

func (it *fieldIter) Name() string {
	return it.names[it.idx]
}

func (it *fieldIter) Node() node.Node {
	return New(it.obj[it.names[it.idx]])
}

// Decode parses JSON text into a node.Node tree, preserving numeric
// literals via json.Number.
func Decode(data []byte) (node.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return Node{}, err
	}
	return New(v), nil
}
