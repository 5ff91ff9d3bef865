package movement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/movements-api/internal/domain"
	"github.com/jhoicas/movements-api/internal/domain/entity"
	"github.com/jhoicas/movements-api/internal/domain/movement"
)

func id(v int64) *int64 { return &v }

func fullSource() *entity.JobSource {
	return &entity.JobSource{
		Kind:                          entity.JobSourceShipment,
		JobNumber:                     "J100",
		PolPortID:                     id(11),
		PodPortID:                     id(22),
		CarrierAddressBookID:          id(33),
		EmptyReturnDepotAddressBookID: id(44),
	}
}

func TestResolveFields_EmptyPickedUpNoDeriva(t *testing.T) {
	f, err := movement.ResolveFields(movement.StatusEmptyPickedUp, fullSource(), nil)
	require.NoError(t, err)
	assert.True(t, f.PortID.IsZero(), "portId debe omitirse")
	assert.True(t, f.AddressBookID.IsZero(), "addressBookId debe omitirse, no enviarse null")
}

func TestResolveFields_GateInUsaPolYLimpiaAddressBook(t *testing.T) {
	sources := []*entity.JobSource{
		fullSource(),
		{PolPortID: id(11)},
		{PolPortID: id(11), PodPortID: id(99), CarrierAddressBookID: id(1)},
	}
	for _, src := range sources {
		f, err := movement.ResolveFields(movement.StatusGateIn, src, nil)
		require.NoError(t, err)
		assert.Equal(t, movement.Value(11), f.PortID)
		assert.True(t, f.AddressBookID.IsClear(), "addressBookId debe ser null explícito")
	}
}

func TestResolveFields_SOB(t *testing.T) {
	f, err := movement.ResolveFields(movement.StatusSOB, fullSource(), nil)
	require.NoError(t, err)
	assert.Equal(t, movement.Value(22), f.PortID)
	assert.Equal(t, movement.Value(33), f.AddressBookID)

	f, err = movement.ResolveFields(movement.StatusSOB, &entity.JobSource{PolPortID: id(11)}, nil)
	require.NoError(t, err)
	assert.Equal(t, movement.Value(11), f.PortID, "sin pod se usa pol")
	assert.True(t, f.AddressBookID.IsZero(), "sin naviera el campo no se toca")
}

func TestResolveFields_GateOutUsaPod(t *testing.T) {
	f, err := movement.ResolveFields(movement.StatusGateOut, fullSource(), nil)
	require.NoError(t, err)
	assert.Equal(t, movement.Value(22), f.PortID)
	assert.True(t, f.AddressBookID.IsClear())
}

func TestResolveFields_EmptyReturned(t *testing.T) {
	f, err := movement.ResolveFields(movement.StatusEmptyReturned, fullSource(), nil)
	require.NoError(t, err)
	assert.Equal(t, movement.Value(22), f.PortID)
	assert.Equal(t, movement.Value(44), f.AddressBookID)

	f, err = movement.ResolveFields(movement.StatusEmptyReturned, &entity.JobSource{PodPortID: id(55)}, nil)
	require.NoError(t, err)
	assert.Equal(t, movement.Value(55), f.PortID)
	assert.True(t, f.AddressBookID.IsClear(), "sin depósito de devolución se envía null")
}

func TestResolveFields_AvailableCopiaFilaAnterior(t *testing.T) {
	prev := &entity.MovementRow{
		ID:          1,
		Port:        &entity.PortRef{ID: 7, PortName: "Chittagong"},
		AddressBook: &entity.AddressBookRef{ID: 8, CompanyName: "Depot"},
	}
	for _, target := range []movement.Status{movement.StatusAvailable, movement.StatusUnavailable} {
		f, err := movement.ResolveFields(target, nil, prev)
		require.NoError(t, err)
		assert.Equal(t, movement.Value(7), f.PortID)
		assert.Equal(t, movement.Value(8), f.AddressBookID)
	}

	f, err := movement.ResolveFields(movement.StatusUnavailable, fullSource(), &entity.MovementRow{ID: 2})
	require.NoError(t, err)
	assert.True(t, f.PortID.IsZero())
	assert.True(t, f.AddressBookID.IsClear())
}

func TestResolveFields_SinSourceQuedaUnset(t *testing.T) {
	f, err := movement.ResolveFields(movement.StatusEmptyReturned, nil, nil)
	require.NoError(t, err)
	assert.True(t, f.PortID.IsZero())
	assert.True(t, f.AddressBookID.IsZero())

	f, err = movement.ResolveFields(movement.StatusGateIn, nil, nil)
	require.NoError(t, err)
	assert.True(t, f.PortID.IsZero())
	assert.True(t, f.AddressBookID.IsClear())
}

func TestResolveFields_EstadoInvalido(t *testing.T) {
	for _, target := range []movement.Status{movement.StatusAllotted, movement.StatusUnknown} {
		_, err := movement.ResolveFields(target, fullSource(), nil)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	}
}
