package filter

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// Schema maps logical fields of one table onto SQL.
type Schema struct {
	// Columns maps field names to qualified column expressions.
	Columns map[string]string
	// Relations maps relation names to the tables reachable from a row.
	Relations map[string]Relation
}

// Relation describes how related records are joined to the outer row.
type Relation struct {
	// From is the FROM clause of the existence subquery, joins included.
	From string
	// Link correlates the subquery with the outer row.
	Link string
	// Schema resolves fields inside the relation.
	Schema Schema
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike quotes LIKE metacharacters so value matches literally.
func EscapeLike(value string) string {
	return likeEscaper.Replace(value)
}

// Compile turns a predicate tree into a squirrel condition. A nil or empty tree compiles to nil,
// meaning no WHERE clause. Placeholders are emitted as '?' and rewritten by the outer builder.
func Compile(p Predicate, schema Schema) (sq.Sqlizer, error) {
	switch node := p.(type) {
	case nil:
		return nil, nil
	case And:
		parts := make(sq.And, 0, len(node))
		for _, member := range node {
			part, err := Compile(member, schema)
			if err != nil {
				return nil, err
			}
			if part != nil {
				parts = append(parts, part)
			}
		}
		switch len(parts) {
		case 0:
			return nil, nil
		case 1:
			return parts[0], nil
		}
		return parts, nil
	case Eq:
		col, err := schema.column(node.Field)
		if err != nil {
			return nil, err
		}
		return sq.Eq{col: node.Value}, nil
	case Contains:
		col, err := schema.column(node.Field)
		if err != nil {
			return nil, err
		}
		return sq.ILike{col: "%" + EscapeLike(node.Value) + "%"}, nil
	case In:
		col, err := schema.column(node.Field)
		if err != nil {
			return nil, err
		}
		return sq.Eq{col: node.Values}, nil
	case NotNull:
		col, err := schema.column(node.Field)
		if err != nil {
			return nil, err
		}
		return sq.NotEq{col: nil}, nil
	case Some:
		rel, ok := schema.Relations[node.Relation]
		if !ok {
			return nil, fmt.Errorf("filter: unknown relation %q", node.Relation)
		}
		inner, err := Compile(node.Where, rel.Schema)
		if err != nil {
			return nil, err
		}
		sub := sq.Select("1").From(rel.From).Where(rel.Link)
		if inner != nil {
			sub = sub.Where(inner)
		}
		query, args, err := sub.ToSql()
		if err != nil {
			return nil, fmt.Errorf("filter: relation %q: %w", node.Relation, err)
		}
		return sq.Expr("EXISTS ("+query+")", args...), nil
	default:
		return nil, fmt.Errorf("filter: unsupported predicate %T", p)
	}
}

func (s Schema) column(field string) (string, error) {
	col, ok := s.Columns[field]
	if !ok {
		return "", fmt.Errorf("filter: unknown field %q", field)
	}
	return col, nil
}
