package entity

import (
	"strings"
	"time"
)

// InventoryRef equipo (contenedor) al que pertenece el movimiento.
type InventoryRef struct {
	ContainerNumber string
}

// JobRef referencia resumida a un shipment o a un empty-repo job.
type JobRef struct {
	JobNumber  string
	VesselName string
}

// PortRef referencia a un puerto.
type PortRef struct {
	ID       int64
	PortName string
}

// AddressBookRef referencia a una entidad del address book (naviera, depósito).
type AddressBookRef struct {
	ID          int64
	CompanyName string
}

// MovementRow estado vigente de un contenedor según /movement-history/latest.
// Shipment (movimientos llenos) y EmptyRepoJob (reposicionamiento de vacíos) son
// excluyentes en la práctica; ambos pueden faltar.
type MovementRow struct {
	ID           int64
	Date         time.Time
	Status       string // forma del servidor, p. ej. "GATE-OUT"
	Remarks      string
	Inventory    *InventoryRef
	Shipment     *JobRef
	EmptyRepoJob *JobRef
	Port         *PortRef
	AddressBook  *AddressBookRef
}

// JobNumber devuelve el job number del shipment y, si no hay, el del empty-repo job.
func (r *MovementRow) JobNumber() string {
	if r.Shipment != nil && r.Shipment.JobNumber != "" {
		return r.Shipment.JobNumber
	}
	if r.EmptyRepoJob != nil {
		return r.EmptyRepoJob.JobNumber
	}
	return ""
}

// ContainerNumber número de contenedor o vacío.
func (r *MovementRow) ContainerNumber() string {
	if r.Inventory == nil {
		return ""
	}
	return r.Inventory.ContainerNumber
}

// PortName nombre del puerto o vacío.
func (r *MovementRow) PortName() string {
	if r.Port == nil {
		return ""
	}
	return r.Port.PortName
}

// Location en SOB el contenedor está a bordo: se muestra el buque; en cualquier otro
// estado, la compañía del address book.
func (r *MovementRow) Location() string {
	if strings.EqualFold(r.Status, "SOB") {
		if r.Shipment != nil && r.Shipment.VesselName != "" {
			return r.Shipment.VesselName
		}
		if r.EmptyRepoJob != nil {
			return r.EmptyRepoJob.VesselName
		}
		return ""
	}
	if r.AddressBook == nil {
		return ""
	}
	return r.AddressBook.CompanyName
}
