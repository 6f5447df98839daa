package avro_test

import (
	"testing"

	"github.com/relayavro/avro"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecordSchema_RejectsDuplicateFields(t *testing.T) {
	a := fieldOf(t, "a", avro.NewPrimitiveSchema(avro.Int))
	dup := fieldOf(t, "a", avro.NewPrimitiveSchema(avro.String))

	_, err := avro.NewRecordSchema("Rec", "", []*avro.Field{a, dup})
	require.Error(t, err)
}

func TestNewEnumSchema_RejectsEmptySymbols(t *testing.T) {
	_, err := avro.NewEnumSchema("Suit", "", nil)
	require.Error(t, err)
}

func TestNewEnumSchema_DefaultMustBeASymbol(t *testing.T) {
	_, err := avro.NewEnumSchema("Suit", "", []string{"HEARTS", "SPADES"}, avro.WithDefault("CLUBS"))
	require.Error(t, err)

	s, err := avro.NewEnumSchema("Suit", "", []string{"HEARTS", "SPADES"}, avro.WithDefault("SPADES"))
	require.NoError(t, err)
	assert.True(t, s.HasDefault())
	assert.Equal(t, "SPADES", s.Default())
}

func TestEnumSchema_Symbol(t *testing.T) {
	s, err := avro.NewEnumSchema("Suit", "", []string{"HEARTS", "SPADES"})
	require.NoError(t, err)

	sym, ok := s.Symbol(1)
	require.True(t, ok)
	assert.Equal(t, "SPADES", sym)

	_, ok = s.Symbol(5)
	assert.False(t, ok)
}

func TestNewFixedSchema_RejectsNonPositiveSize(t *testing.T) {
	_, err := avro.NewFixedSchema("MD5", "", 0)
	require.Error(t, err)
}

func TestNewUnionSchema_RejectsNestedUnion(t *testing.T) {
	inner, err := avro.NewUnionSchema([]avro.Schema{avro.NewPrimitiveSchema(avro.Null)})
	require.NoError(t, err)

	_, err = avro.NewUnionSchema([]avro.Schema{inner, avro.NewPrimitiveSchema(avro.Int)})
	require.Error(t, err)
}

func TestNewUnionSchema_RejectsDuplicateBranchNames(t *testing.T) {
	_, err := avro.NewUnionSchema([]avro.Schema{
		avro.NewPrimitiveSchema(avro.Int),
		avro.NewPrimitiveSchema(avro.Int),
	})
	require.Error(t, err)
}

func TestUnionSchema_Nullable(t *testing.T) {
	u, err := avro.NewUnionSchema([]avro.Schema{
		avro.NewPrimitiveSchema(avro.Null),
		avro.NewPrimitiveSchema(avro.String),
	})
	require.NoError(t, err)

	other, ok := u.Nullable()
	require.True(t, ok)
	assert.Equal(t, avro.String, other.Type())
}

func TestRecordSchema_FieldByName(t *testing.T) {
	a := fieldOf(t, "a", avro.NewPrimitiveSchema(avro.Int))
	r, err := avro.NewRecordSchema("Rec", "ns", []*avro.Field{a})
	require.NoError(t, err)

	assert.Equal(t, "ns.Rec", r.FullName())
	assert.Equal(t, "Rec", r.Name())

	f, ok := r.FieldByName("a")
	require.True(t, ok)
	assert.Equal(t, a, f)

	_, ok = r.FieldByName("missing")
	assert.False(t, ok)
}
