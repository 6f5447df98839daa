package avro_test

import (
	"testing"

	"github.com/relayavro/avro"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaultLiteral(t *testing.T) {
	v, err := avro.ParseDefaultLiteral(`{"x":1,"y":["a","b"]}`)
	require.NoError(t, err)

	m, ok := v.(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, float64(1), m["x"], 0)
}

func TestInjectDefault_Scalars(t *testing.T) {
	tests := []struct {
		name string
		typ  avro.Type
		def  any
		want func(t *testing.T, child *avro.Value)
	}{
		{"string", avro.String, "hi", func(t *testing.T, child *avro.Value) {
			assert.Equal(t, "hi", child.String())
		}},
		{"int", avro.Int, float64(3), func(t *testing.T, child *avro.Value) {
			assert.Equal(t, int32(3), child.Int())
		}},
		{"long", avro.Long, float64(9999999999), func(t *testing.T, child *avro.Value) {
			assert.Equal(t, int64(9999999999), child.Long())
		}},
		{"float", avro.Float, float64(1.5), func(t *testing.T, child *avro.Value) {
			assert.Equal(t, float32(1.5), child.Float())
		}},
		{"double", avro.Double, float64(2.5), func(t *testing.T, child *avro.Value) {
			assert.Equal(t, float64(2.5), child.Double())
		}},
		{"boolean", avro.Boolean, true, func(t *testing.T, child *avro.Value) {
			assert.Equal(t, true, child.Boolean())
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			field := fieldOf(t, "f", avro.NewPrimitiveSchema(tc.typ), avro.WithDefault(tc.def))
			writer := recordOf(t, "Rec")
			reader := recordOf(t, "Rec", field)

			dst, err := resolve(t, writer, reader, nil)
			require.NoError(t, err)

			child, ok := dst.ChildByName("f")
			require.True(t, ok)
			tc.want(t, child)
		})
	}
}

func TestInjectDefault_ArrayAndMap(t *testing.T) {
	arrField := fieldOf(t, "arr", avro.NewArraySchema(avro.NewPrimitiveSchema(avro.Int)),
		avro.WithDefault([]any{float64(1), float64(2)}))
	mapField := fieldOf(t, "m", avro.NewMapSchema(avro.NewPrimitiveSchema(avro.String)),
		avro.WithDefault(map[string]any{"k": "v"}))

	writer := recordOf(t, "Rec")
	reader := recordOf(t, "Rec", arrField, mapField)

	dst, err := resolve(t, writer, reader, nil)
	require.NoError(t, err)

	arr, ok := dst.ChildByName("arr")
	require.True(t, ok)
	require.Equal(t, 2, arr.Size())
	assert.Equal(t, int32(1), arr.ChildAt(0).Int())

	m, ok := dst.ChildByName("m")
	require.True(t, ok)
	v, ok := m.ChildByName("k")
	require.True(t, ok)
	assert.Equal(t, "v", v.String())
}

func TestInjectDefault_UnionUsesFirstBranch(t *testing.T) {
	union, err := avro.NewUnionSchema([]avro.Schema{
		avro.NewPrimitiveSchema(avro.Null),
		avro.NewPrimitiveSchema(avro.Float),
	})
	require.NoError(t, err)
	field := fieldOf(t, "u", union, avro.WithDefault(nil))

	writer := recordOf(t, "Rec")
	reader := recordOf(t, "Rec", field)

	dst, err := resolve(t, writer, reader, nil)
	require.NoError(t, err)

	u, ok := dst.ChildByName("u")
	require.True(t, ok)
	assert.Equal(t, 0, u.CurrentBranchIndex())
}

func TestInjectDefault_InvalidLiteral(t *testing.T) {
	field := fieldOf(t, "n", avro.NewPrimitiveSchema(avro.Int), avro.WithDefault("not-a-number"))
	writer := recordOf(t, "Rec")
	reader := recordOf(t, "Rec", field)

	_, err := resolve(t, writer, reader, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, avro.ErrInvalidDefault)
}
