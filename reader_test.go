package avro_test

import (
	"testing"

	"github.com/relayavro/avro"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_ReadBool(t *testing.T) {
	r := avro.NewReaderFromBytes([]byte{0x01, 0x00})
	assert.True(t, r.ReadBool())
	assert.False(t, r.ReadBool())
	require.NoError(t, r.Error)
}

func TestReader_ReadInt(t *testing.T) {
	r := avro.NewReaderFromBytes(zigzagInt(-3))
	assert.Equal(t, int32(-3), r.ReadInt())
	require.NoError(t, r.Error)
}

func TestReader_ReadLong(t *testing.T) {
	r := avro.NewReaderFromBytes(zigzagLong(123456789))
	assert.Equal(t, int64(123456789), r.ReadLong())
	require.NoError(t, r.Error)
}

func TestReader_ReadFloat(t *testing.T) {
	r := avro.NewReaderFromBytes(float32Bytes(3.5))
	assert.InDelta(t, float32(3.5), r.ReadFloat(), 0)
}

func TestReader_ReadDouble(t *testing.T) {
	r := avro.NewReaderFromBytes(float64Bytes(3.5))
	assert.InDelta(t, 3.5, r.ReadDouble(), 0)
}

func TestReader_ReadBytesAndString(t *testing.T) {
	r := avro.NewReaderFromBytes(concatBytes(lengthPrefixed([]byte("hi")), lengthPrefixed([]byte("bye"))))
	assert.Equal(t, []byte("hi"), r.ReadBytes())
	assert.Equal(t, "bye", r.ReadString())
}

func TestReader_ReadBlockHeaderPositive(t *testing.T) {
	r := avro.NewReaderFromBytes(zigzagLong(5))
	count, size := r.ReadBlockHeader()
	assert.Equal(t, int64(5), count)
	assert.Equal(t, int64(0), size)
}

func TestReader_ReadBlockHeaderNegative(t *testing.T) {
	r := avro.NewReaderFromBytes(concatBytes(zigzagLong(-5), zigzagLong(40)))
	count, size := r.ReadBlockHeader()
	assert.Equal(t, int64(5), count)
	assert.Equal(t, int64(40), size)
}

func TestReader_ReadErrorHaltsFurtherReads(t *testing.T) {
	r := avro.NewReaderFromBytes([]byte{})
	r.ReadInt()
	require.Error(t, r.Error)

	n := r.ReadInt()
	assert.Equal(t, int32(0), n)
}

func TestReader_Reset_ReusesBuffers(t *testing.T) {
	r := avro.NewReaderFromBytes([]byte{0x01})
	assert.True(t, r.ReadBool())

	r.Reset([]byte{0x00})
	require.NoError(t, r.Error)
	assert.False(t, r.ReadBool())
}

func TestReader_MaxByteSliceSize(t *testing.T) {
	r := avro.NewReaderFromBytes(lengthPrefixed(make([]byte, 10)), avro.WithMaxByteSliceSize(4))
	r.ReadBytes()
	require.Error(t, r.Error)
}
