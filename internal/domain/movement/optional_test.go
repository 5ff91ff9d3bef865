package movement_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/movements-api/internal/domain/movement"
)

type optionalBody struct {
	PortID        movement.OptionalID `json:"portId,omitzero"`
	AddressBookID movement.OptionalID `json:"addressBookId,omitzero"`
}

func TestOptionalID_Serializacion(t *testing.T) {
	tests := []struct {
		name string
		body optionalBody
		want string
	}{
		{"ambos unset", optionalBody{}, `{}`},
		{"valor y null", optionalBody{PortID: movement.Value(55), AddressBookID: movement.Clear()}, `{"portId":55,"addressBookId":null}`},
		{"solo null", optionalBody{AddressBookID: movement.Clear()}, `{"addressBookId":null}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(tt.body)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(raw))
		})
	}
}

func TestOptionalID_ConservaLosTresEstados(t *testing.T) {
	var body optionalBody
	require.NoError(t, json.Unmarshal([]byte(`{"addressBookId":null}`), &body))
	assert.True(t, body.PortID.IsZero())
	assert.True(t, body.AddressBookID.IsClear())

	require.NoError(t, json.Unmarshal([]byte(`{"portId":3}`), &body))
	v, ok := body.PortID.Value()
	assert.True(t, ok)
	assert.Equal(t, int64(3), v)
}

func TestOptionalID_Ptr(t *testing.T) {
	assert.Nil(t, movement.Unset().Ptr())
	assert.Nil(t, movement.Clear().Ptr())
	require.NotNil(t, movement.Value(4).Ptr())
	assert.Equal(t, int64(4), *movement.Value(4).Ptr())
	assert.Equal(t, "null", movement.Clear().String())
	assert.Equal(t, "unset", movement.Unset().String())
}
