package schemacore

import (
	"strconv"

	"github.com/kaptinlin/jsonpointer"
)

// Existence classifies whether a located Shape's document position is
// guaranteed present, merely reachable, or provably absent (§4.4).
type Existence int

const (
	Must Existence = iota
	May
	Cannot
)

func (e Existence) String() string {
	switch e {
	case Must:
		return "Must"
	case May:
		return "May"
	case Cannot:
		return "Cannot"
	default:
		return "Unknown"
	}
}

// joinExistence combines the existence classifiers of successive pointer
// steps: "Cannot absorbs; May overrides Must; Must-and-Must yields Must."
func joinExistence(a, b Existence) Existence {
	if a == Cannot || b == Cannot {
		return Cannot
	}
	if a == May || b == May {
		return May
	}
	return Must
}

// LocationEntry is one member of Locations' flat enumeration.
type LocationEntry struct {
	Pointer   string
	Shape     *Shape
	Existence Existence
}

// Locate walks root token by token along a JSON pointer, grounded on
// §4.4's "Locate" algorithm. ok is false when a token names a property on
// a shape whose type set excludes object, or an index on a shape whose
// type set excludes array — an unreachable location, not merely an absent
// one.
//
// Grounded on the teacher's resolveJSONPointer (ref.go), which parses a
// schema-internal pointer with the same github.com/kaptinlin/jsonpointer
// library; this walks a Shape instead of a Schema and additionally tracks
// the Must/May/Cannot existence classifiers §4.4 adds on top.
func Locate(root *Shape, pointer string) (shape *Shape, existence Existence, ok bool) {
	if root == nil {
		return nil, Cannot, false
	}
	if pointer == "" || pointer == "/" {
		return root, Must, true
	}

	tokens := jsonpointer.Parse(pointer)
	cur := root
	existence = Must
	for _, tok := range tokens {
		next, e, stepOK := locateStep(cur, tok)
		if !stepOK {
			return nil, Cannot, false
		}
		cur = next
		existence = joinExistence(existence, e)
	}
	return cur, existence, true
}

func locateStep(s *Shape, token string) (*Shape, Existence, bool) {
	if s == nil {
		return nil, Cannot, false
	}
	numeric := token == "-" || isArrayIndexToken(token)

	if numeric && s.Type[ShapeArray] {
		return locateArrayToken(s, token)
	}
	if s.Type[ShapeObject] {
		return locateObjectToken(s, token)
	}
	if s.Type[ShapeArray] {
		return locateArrayToken(s, token)
	}
	return nil, Cannot, false
}

func isArrayIndexToken(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func locateArrayToken(s *Shape, token string) (*Shape, Existence, bool) {
	if token == "-" {
		if s.Array.Additional != nil {
			return s.Array.Additional, Cannot, true
		}
		return Nothing(), Cannot, true
	}

	idx, err := strconv.Atoi(token)
	if err != nil {
		return nil, Cannot, false
	}
	if idx < len(s.Array.Tuple) {
		return s.Array.Tuple[idx], arrayIndexExistence(s, idx), true
	}
	if s.Array.MaxItems != nil && float64(idx) >= *s.Array.MaxItems {
		return Nothing(), Cannot, true
	}
	if s.Array.Additional != nil {
		return s.Array.Additional, arrayIndexExistence(s, idx), true
	}
	return Nothing(), Cannot, true
}

func arrayIndexExistence(s *Shape, idx int) Existence {
	covered := idx < len(s.Array.Tuple) || (s.Array.MinItems != nil && float64(idx) < *s.Array.MinItems)
	if covered && s.onlyType(ShapeArray) {
		return Must
	}
	return May
}

func locateObjectToken(s *Shape, name string) (*Shape, Existence, bool) {
	if p, ok := findProperty(s.Object.Properties, name); ok {
		return p.Shape, propertyExistence(s, p.Required), true
	}
	for _, pat := range s.Object.Patterns {
		re := compilePatternProperty(pat.Pattern)
		if re != nil && re.MatchString(name) {
			return pat.Shape, May, true
		}
	}
	if s.Object.Additional != nil {
		return s.Object.Additional, May, true
	}
	return Nothing(), Cannot, true
}

func propertyExistence(s *Shape, required bool) Existence {
	if required && s.onlyType(ShapeObject) {
		return Must
	}
	return May
}

// Locations enumerates every reachable (pointer, shape, existence) triple
// by recursive descent, including an end-of-array sentinel ("/-") with
// Cannot existence whenever an array shape admits additional elements.
func Locations(root *Shape) []LocationEntry {
	out := []LocationEntry{{Pointer: "", Shape: root, Existence: Must}}
	collectLocations(root, nil, &out)
	return out
}

func collectLocations(s *Shape, tokens []string, out *[]LocationEntry) {
	if s == nil {
		return
	}
	if s.Type[ShapeArray] {
		for i, child := range s.Array.Tuple {
			childTokens := append(append([]string(nil), tokens...), strconv.Itoa(i))
			*out = append(*out, LocationEntry{
				Pointer:   jsonpointer.Format(childTokens...),
				Shape:     child,
				Existence: arrayIndexExistence(s, i),
			})
			collectLocations(child, childTokens, out)
		}
		if s.Array.Additional != nil {
			sentinelTokens := append(append([]string(nil), tokens...), "-")
			*out = append(*out, LocationEntry{
				Pointer:   jsonpointer.Format(sentinelTokens...),
				Shape:     s.Array.Additional,
				Existence: Cannot,
			})
		}
	}
	if s.Type[ShapeObject] {
		for _, p := range s.Object.Properties {
			childTokens := append(append([]string(nil), tokens...), p.Name)
			*out = append(*out, LocationEntry{
				Pointer:   jsonpointer.Format(childTokens...),
				Shape:     p.Shape,
				Existence: propertyExistence(s, p.Required),
			})
			collectLocations(p.Shape, childTokens, out)
		}
	}
}
