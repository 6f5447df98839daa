package avro_test

import (
	"testing"

	"github.com/relayavro/avro"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompatibility_PromotionTable(t *testing.T) {
	tests := []struct {
		name    string
		reader  avro.Type
		writer  avro.Type
		compat  bool
	}{
		{"int-to-long", avro.Long, avro.Int, true},
		{"int-to-float", avro.Float, avro.Int, true},
		{"int-to-double", avro.Double, avro.Int, true},
		{"long-to-float", avro.Float, avro.Long, true},
		{"long-to-double", avro.Double, avro.Long, true},
		{"float-to-double", avro.Double, avro.Float, true},
		{"double-to-float", avro.Float, avro.Double, false},
		{"bytes-to-string", avro.String, avro.Bytes, true},
		{"string-to-bytes", avro.Bytes, avro.String, true},
		{"int-to-string", avro.String, avro.Int, false},
		{"boolean-to-boolean", avro.Boolean, avro.Boolean, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var c avro.Compatibility
			got := c.Match(avro.NewPrimitiveSchema(tc.reader), avro.NewPrimitiveSchema(tc.writer))
			assert.Equal(t, tc.compat, got)
		})
	}
}

func TestCompatibility_FixedRequiresNameAndSize(t *testing.T) {
	var c avro.Compatibility

	r, err := avro.NewFixedSchema("MD5", "", 16)
	require.NoError(t, err)
	wSameSize, err := avro.NewFixedSchema("MD5", "", 16)
	require.NoError(t, err)
	wDiffSize, err := avro.NewFixedSchema("MD5", "", 8)
	require.NoError(t, err)
	wDiffName, err := avro.NewFixedSchema("Other", "", 16)
	require.NoError(t, err)

	assert.True(t, c.Match(r, wSameSize))
	assert.False(t, c.Match(r, wDiffSize))
	assert.False(t, c.Match(r, wDiffName))
}

func TestCompatibility_RecordFieldsByName(t *testing.T) {
	var c avro.Compatibility

	writer, err := avro.NewRecordSchema("Rec", "", []*avro.Field{
		fieldOf(t, "a", avro.NewPrimitiveSchema(avro.Int)),
		fieldOf(t, "z", avro.NewPrimitiveSchema(avro.Int)),
	})
	require.NoError(t, err)

	readerOK, err := avro.NewRecordSchema("Rec", "", []*avro.Field{
		fieldOf(t, "a", avro.NewPrimitiveSchema(avro.Long)),
	})
	require.NoError(t, err)

	readerMissingDefault, err := avro.NewRecordSchema("Rec", "", []*avro.Field{
		fieldOf(t, "a", avro.NewPrimitiveSchema(avro.Int)),
		fieldOf(t, "k", avro.NewPrimitiveSchema(avro.Int)),
	})
	require.NoError(t, err)

	readerWithDefault, err := avro.NewRecordSchema("Rec", "", []*avro.Field{
		fieldOf(t, "a", avro.NewPrimitiveSchema(avro.Int)),
		fieldOf(t, "k", avro.NewPrimitiveSchema(avro.Int), avro.WithDefault(float64(0))),
	})
	require.NoError(t, err)

	assert.True(t, c.Match(readerOK, writer))
	assert.False(t, c.Match(readerMissingDefault, writer))
	assert.True(t, c.Match(readerWithDefault, writer))
}

func TestCompatibility_UnionCrossCases(t *testing.T) {
	var c avro.Compatibility

	writerUnion, err := avro.NewUnionSchema([]avro.Schema{
		avro.NewPrimitiveSchema(avro.Null),
		avro.NewPrimitiveSchema(avro.Int),
	})
	require.NoError(t, err)
	readerUnion, err := avro.NewUnionSchema([]avro.Schema{
		avro.NewPrimitiveSchema(avro.Null),
		avro.NewPrimitiveSchema(avro.Long),
	})
	require.NoError(t, err)

	// writer union vs non-union reader: reader must match every branch.
	assert.False(t, c.Match(avro.NewPrimitiveSchema(avro.Long), writerUnion))

	// non-union writer vs reader union: writer must match at least one branch.
	assert.True(t, c.Match(readerUnion, avro.NewPrimitiveSchema(avro.Int)))
	assert.False(t, c.Match(readerUnion, avro.NewPrimitiveSchema(avro.String)))

	// union vs union.
	assert.True(t, c.Match(readerUnion, writerUnion))
}

func TestCompatibility_IsMemoized(t *testing.T) {
	var c avro.Compatibility

	reader := avro.NewPrimitiveSchema(avro.Long)
	writer := avro.NewPrimitiveSchema(avro.Int)

	assert.True(t, c.Match(reader, writer))
	// second call should hit the cache and return the same verdict.
	assert.True(t, c.Match(reader, writer))
}
