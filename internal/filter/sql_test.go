package filter

import (
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = Schema{
	Columns: map[string]string{
		"type":    "departments.type",
		"acronym": "departments.acronym",
		"image":   "departments.image",
	},
	Relations: map[string]Relation{
		"periods": {
			From:   "period_members pm JOIN periods p ON p.id = pm.period_id",
			Link:   "pm.user_id = users.id",
			Schema: Schema{Columns: map[string]string{"year": "p.year"}},
		},
	},
}

func compileToSQL(t *testing.T, p Predicate) (string, []interface{}) {
	t.Helper()
	cond, err := Compile(p, testSchema)
	require.NoError(t, err)
	require.NotNil(t, cond)
	query, args, err := sq.Select("*").From("t").Where(cond).PlaceholderFormat(sq.Dollar).ToSql()
	require.NoError(t, err)
	return query, args
}

func TestCompileEmptyTreeHasNoCondition(t *testing.T) {
	cond, err := Compile(nil, testSchema)
	require.NoError(t, err)
	assert.Nil(t, cond)

	cond, err = Compile(And{}, testSchema)
	require.NoError(t, err)
	assert.Nil(t, cond)
}

func TestCompileLeafPredicates(t *testing.T) {
	query, args := compileToSQL(t, Eq{Field: "type", Value: "BE"})
	assert.Equal(t, "SELECT * FROM t WHERE departments.type = $1", query)
	assert.Equal(t, []interface{}{"BE"}, args)

	query, args = compileToSQL(t, Contains{Field: "acronym", Value: "kom"})
	assert.Equal(t, "SELECT * FROM t WHERE departments.acronym ILIKE $1", query)
	assert.Equal(t, []interface{}{"%kom%"}, args)

	query, args = compileToSQL(t, NotNull{Field: "image"})
	assert.Equal(t, "SELECT * FROM t WHERE departments.image IS NOT NULL", query)
	assert.Empty(t, args)
}

func TestCompileContainsEscapesWildcards(t *testing.T) {
	_, args := compileToSQL(t, Contains{Field: "acronym", Value: `50%_off\`})
	assert.Equal(t, []interface{}{`%50\%\_off\\%`}, args)
}

func TestCompileAndOfExistentialAndLeaf(t *testing.T) {
	tree := And{
		Some{Relation: "periods", Where: In{Field: "year", Values: Ints([]int{2023, 2024})}},
		Eq{Field: "type", Value: "DP"},
	}
	query, args := compileToSQL(t, tree)
	assert.Equal(t,
		"SELECT * FROM t WHERE (EXISTS (SELECT 1 FROM period_members pm JOIN periods p ON p.id = pm.period_id WHERE pm.user_id = users.id AND p.year IN ($1,$2)) AND departments.type = $3)",
		query)
	assert.Equal(t, []interface{}{2023, 2024, "DP"}, args)
}

func TestCompileUnknownNames(t *testing.T) {
	_, err := Compile(Eq{Field: "missing", Value: 1}, testSchema)
	assert.Error(t, err)

	_, err = Compile(Some{Relation: "missing", Where: Eq{Field: "year", Value: 1}}, testSchema)
	assert.Error(t, err)

	_, err = Compile(Some{Relation: "periods", Where: Eq{Field: "type", Value: 1}}, testSchema)
	assert.Error(t, err, "fields resolve against the relation schema")
}

func TestLen(t *testing.T) {
	assert.Equal(t, 0, Len(nil))
	assert.Equal(t, 0, Len(And{}))
	assert.Equal(t, 3, Len(And{Eq{Field: "a"}, And{NotNull{Field: "b"}, Some{Relation: "r"}}}))
}
