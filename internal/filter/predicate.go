// Package filter describes list filters as a small predicate tree and compiles the tree to SQL.
//
// Predicates name logical fields ("type", "periods.year") rather than columns; a Schema maps
// them onto a concrete table layout, so the same tree can be tested without a database.
package filter

// Predicate is one node of a filter tree. The set of node kinds is closed.
type Predicate interface {
	predicate()
}

// Eq matches rows whose field equals Value.
type Eq struct {
	Field string
	Value interface{}
}

// Contains matches rows whose field contains Value as a case-insensitive substring.
// Value is matched literally; LIKE wildcards in it carry no meaning.
type Contains struct {
	Field string
	Value string
}

// In matches rows whose field equals any of Values.
type In struct {
	Field  string
	Values []interface{}
}

// NotNull matches rows whose field is set.
type NotNull struct {
	Field string
}

// Some matches rows with at least one related record satisfying Where.
type Some struct {
	Relation string
	Where    Predicate
}

// And matches rows satisfying every member. An empty And matches everything.
type And []Predicate

func (Eq) predicate()       {}
func (Contains) predicate() {}
func (In) predicate()       {}
func (NotNull) predicate()  {}
func (Some) predicate()     {}
func (And) predicate()      {}

// Ints converts a typed slice into In values.
func Ints(values []int) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// Strings converts a typed slice into In values.
func Strings(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// Len reports how many leaf conditions the tree holds. Some counts as one.
func Len(p Predicate) int {
	switch node := p.(type) {
	case nil:
		return 0
	case And:
		n := 0
		for _, member := range node {
			n += Len(member)
		}
		return n
	default:
		return 1
	}
}
