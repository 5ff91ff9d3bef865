package movement

import (
	"fmt"

	"github.com/jhoicas/movements-api/internal/domain"
	"github.com/jhoicas/movements-api/internal/domain/entity"
)

// DerivedFields referencias que acompañan al cambio de estado.
type DerivedFields struct {
	PortID        OptionalID
	AddressBookID OptionalID
}

// ResolveFields deriva portId y addressBookId según el estado destino.
//
// source es el shipment o empty-repo job del job number, leído del servicio en el
// momento de la transición; nil si no se encontró ninguno, en cuyo caso los campos
// que dependen de él quedan Unset. previous es cualquier fila ya seleccionada y solo
// se usa para AVAILABLE/UNAVAILABLE.
func ResolveFields(target Status, source *entity.JobSource, previous *entity.MovementRow) (DerivedFields, error) {
	var f DerivedFields
	switch target {
	case StatusEmptyPickedUp:
		// nada que derivar
	case StatusGateIn:
		if source != nil {
			f.PortID = FromPtr(source.PolPortID, Unset())
		}
		f.AddressBookID = Clear()
	case StatusSOB:
		if source != nil {
			f.PortID = FromPtr(source.PodPortID, FromPtr(source.PolPortID, Unset()))
			f.AddressBookID = FromPtr(source.CarrierAddressBookID, Unset())
		}
	case StatusGateOut:
		if source != nil {
			f.PortID = FromPtr(source.PodPortID, Unset())
		}
		f.AddressBookID = Clear()
	case StatusEmptyReturned:
		if source != nil {
			f.PortID = FromPtr(source.PodPortID, Unset())
			f.AddressBookID = FromPtr(source.EmptyReturnDepotAddressBookID, Clear())
		}
	case StatusAvailable, StatusUnavailable:
		if previous != nil {
			if previous.Port != nil {
				f.PortID = Value(previous.Port.ID)
			}
			if previous.AddressBook != nil {
				f.AddressBookID = Value(previous.AddressBook.ID)
			} else {
				f.AddressBookID = Clear()
			}
		}
	default:
		return DerivedFields{}, fmt.Errorf("%w: %s", domain.ErrInvalidTransition, target)
	}
	return f, nil
}
