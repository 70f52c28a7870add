package schemacore

import (
	"math/big"
	"strconv"

	"github.com/flowcore/schemacore/node"
)

// nodeEqualsLiteral compares a document node against a literal value
// decoded from schema text (a "const" or "enum" member), the equality
// const/enum/uniqueItems are specified against. Numeric comparison goes
// through float64: schema literals arrive as plain Go values from
// encoding/json, so this is the same precision JSON round-tripping already
// gives the const/enum keywords in source text.
func nodeEqualsLiteral(n node.Node, lit any) bool {
	switch v := lit.(type) {
	case nil:
		return n.Kind() == node.KindNull
	case bool:
		return n.Kind() == node.KindBool && n.Bool() == v
	case string:
		return n.Kind() == node.KindString && n.String() == v
	case float64:
		return nodeIsNumeric(n) && nodeFloat(n) == v
	case int:
		return nodeIsNumeric(n) && nodeFloat(n) == float64(v)
	case []any:
		if n.Kind() != node.KindArray {
			return false
		}
		it := n.Array()
		i := 0
		for it.Next() {
			if i >= len(v) || !nodeEqualsLiteral(it.Node(), v[i]) {
				return false
			}
			i++
		}
		return i == len(v)
	case map[string]any:
		if n.Kind() != node.KindObject {
			return false
		}
		it := n.Fields()
		count := 0
		for it.Next() {
			want, ok := v[it.Name()]
			if !ok || !nodeEqualsLiteral(it.Node(), want) {
				return false
			}
			count++
		}
		return count == len(v)
	default:
		return false
	}
}

func nodeIsNumeric(n node.Node) bool {
	switch n.Kind() {
	case node.KindPosInt, node.KindNegInt, node.KindFloat:
		return true
	default:
		return false
	}
}

func nodeFloat(n node.Node) float64 {
	switch n.Kind() {
	case node.KindPosInt:
		return float64(n.PosInt())
	case node.KindNegInt:
		return float64(n.NegInt())
	default:
		return n.Float()
	}
}

// nodeToRat converts a numeric node to an exact big.Rat, the representation
// the numeric keywords (minimum, maximum, multipleOf, ...) compare against.
// A float is taken at the decimal value of its shortest round-tripping
// text, as schema literals are, so 0.1 becomes exactly 1/10.
func nodeToRat(n node.Node) *big.Rat {
	switch n.Kind() {
	case node.KindPosInt:
		return new(big.Rat).SetUint64(n.PosInt())
	case node.KindNegInt:
		return new(big.Rat).SetInt64(n.NegInt())
	default:
		r := new(big.Rat)
		if _, ok := r.SetString(strconv.FormatFloat(n.Float(), 'g', -1, 64)); ok {
			return r
		}
		r.SetFloat64(n.Float())
		return r
	}
}
