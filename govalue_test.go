package avro_test

import (
	"testing"

	"github.com/relayavro/avro"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_IntoStruct(t *testing.T) {
	schema := recordOf(t, "User",
		fieldOf(t, "user_id", avro.NewPrimitiveSchema(avro.Long)),
		fieldOf(t, "display_name", avro.NewPrimitiveSchema(avro.String)),
	)
	v := avro.NewValue(schema)
	id, _ := v.ChildByName("user_id")
	id.SetLong(42)
	name, _ := v.ChildByName("display_name")
	name.GiveString("Ada")

	type User struct {
		UserID      int64
		DisplayName string
	}

	var u User
	require.NoError(t, avro.Decode(v, &u))
	assert.EqualValues(t, 42, u.UserID)
	assert.Equal(t, "Ada", u.DisplayName)
}

func TestDecode_IntoMap(t *testing.T) {
	schema := recordOf(t, "Rec", fieldOf(t, "a", avro.NewPrimitiveSchema(avro.Int)))
	v := avro.NewValue(schema)
	a, _ := v.ChildByName("a")
	a.SetInt(3)

	var out map[string]any
	require.NoError(t, avro.Decode(v, &out))
	assert.EqualValues(t, 3, out["a"])
}
