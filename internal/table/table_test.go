package table

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeFromRemote(t *testing.T) {
	typ, err := TypeFromRemote("Double")
	require.NoError(t, err)
	assert.Equal(t, Double, typ)

	_, err = TypeFromRemote("SUIDList")
	assert.Error(t, err)
}

func TestValueAccessors(t *testing.T) {
	i, ok := Int(7).AsInt()
	assert.True(t, ok)
	assert.Equal(t, int64(7), i)

	_, ok = Int(7).AsString()
	assert.False(t, ok)

	_, ok = Null().AsInt()
	assert.False(t, ok)
	assert.True(t, Null().IsNull())
	assert.False(t, Str("x").IsNull())
}

func TestValueEqual(t *testing.T) {
	assert.True(t, Null().Equal(Null()))
	assert.False(t, Null().Equal(Int(0)))
	assert.True(t, Float(1.5).Equal(Float(1.5)))
	assert.False(t, Float(1.5).Equal(Float(2.5)))
	assert.True(t, Strings([]string{"a", "b"}).Equal(Strings([]string{"a", "b"})))
	assert.False(t, Strings([]string{"a"}).Equal(Strings([]string{"a", "b"})))
	assert.False(t, Strings([]string{"a"}).Equal(Str("a")))
}

func TestDecodeColumn(t *testing.T) {
	vals, err := DecodeColumn(Integer, []any{float64(1), nil, float64(3)})
	require.NoError(t, err)
	require.Len(t, vals, 3)
	assert.True(t, vals[0].Equal(Int(1)))
	assert.True(t, vals[1].IsNull())
	assert.True(t, vals[2].Equal(Int(3)))

	vals, err = DecodeColumn(StringList, []any{[]any{"x", "y"}, nil})
	require.NoError(t, err)
	assert.True(t, vals[0].Equal(Strings([]string{"x", "y"})))
	assert.True(t, vals[1].IsNull())

	_, err = DecodeColumn(Boolean, []any{"yes"})
	assert.Error(t, err)

	_, err = DecodeColumn(Double, []any{true})
	assert.Error(t, err)
}

func TestTableValidation(t *testing.T) {
	_, err := New(
		NewColumn("a", Integer, Int(1), Int(2)),
		NewColumn("a", Integer, Int(3), Int(4)),
	)
	assert.Error(t, err, "duplicate column names must fail")

	_, err = New(
		NewColumn("a", Integer, Int(1), Int(2)),
		NewColumn("b", Integer, Int(3)),
	)
	assert.Error(t, err, "mismatched column lengths must fail")
}

func TestTableSUIDKeying(t *testing.T) {
	tbl, err := New(
		NewColumn("name", String, Str("A"), Str("B")),
		NewColumn("score", Double, Float(0.5), Null()),
	)
	require.NoError(t, err)

	require.Error(t, tbl.SetSUIDs([]int64{100}))
	require.Error(t, tbl.SetSUIDs([]int64{100, 100}))
	require.NoError(t, tbl.SetSUIDs([]int64{100, 200}))

	v, ok := tbl.Cell(200, "score")
	require.True(t, ok)
	assert.True(t, v.IsNull())

	v, ok = tbl.Cell(100, "name")
	require.True(t, ok)
	s, _ := v.AsString()
	assert.Equal(t, "A", s)

	_, ok = tbl.Cell(300, "name")
	assert.False(t, ok)
}

func TestRecordsRoundTripsMissingValues(t *testing.T) {
	tbl, err := New(
		NewColumn("id", String, Str("a"), Str("b")),
		NewColumn("weight", Double, Float(1.25), Null()),
	)
	require.NoError(t, err)

	recs := tbl.Records()
	require.Len(t, recs, 2)
	assert.Equal(t, 1.25, recs[0]["weight"])
	assert.Nil(t, recs[1]["weight"])

	// missing markers must encode as JSON null
	raw, err := json.Marshal(recs)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a","weight":1.25},{"id":"b","weight":null}]`, string(raw))

	// and decode back to markers
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	vals, err := DecodeColumn(Double, []any{decoded[0]["weight"], decoded[1]["weight"]})
	require.NoError(t, err)
	assert.True(t, vals[0].Equal(Float(1.25)))
	assert.True(t, vals[1].IsNull())
}
