package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/movements-api/internal/domain/entity"
	"github.com/jhoicas/movements-api/internal/domain/movement"
)

// ── Estructuras del protocolo del servicio de movimientos ─────────────────────

type movementRowJSON struct {
	ID      int64    `json:"id"`
	Date    wireDate `json:"date"`
	Status  string   `json:"status"`
	Remarks *string  `json:"remarks"`

	Inventory *struct {
		ContainerNumber string `json:"containerNumber"`
	} `json:"inventory"`
	Shipment     *jobRefJSON `json:"shipment"`
	EmptyRepoJob *jobRefJSON `json:"emptyRepoJob"`
	Port         *struct {
		ID       int64  `json:"id"`
		PortName string `json:"portName"`
	} `json:"port"`
	AddressBook *struct {
		ID          int64  `json:"id"`
		CompanyName string `json:"companyName"`
	} `json:"addressBook"`
}

type jobRefJSON struct {
	JobNumber  string `json:"jobNumber"`
	VesselName string `json:"vesselName"`
}

type jobSourceJSON struct {
	ID                            int64  `json:"id"`
	JobNumber                     string `json:"jobNumber"`
	VesselName                    string `json:"vesselName"`
	PolPortID                     *int64 `json:"polPortId"`
	PodPortID                     *int64 `json:"podPortId"`
	CarrierAddressBookID          *int64 `json:"carrierAddressBookId"`
	EmptyReturnDepotAddressBookID *int64 `json:"emptyReturnDepotAddressBookId"`
}

type bulkCreateBody struct {
	IDs           []int64             `json:"ids"`
	NewStatus     string              `json:"newStatus"`
	JobNumber     string              `json:"jobNumber"`
	Date          string              `json:"date"`
	Remarks       string              `json:"remarks"`
	PortID        movement.OptionalID `json:"portId,omitzero"`
	AddressBookID movement.OptionalID `json:"addressBookId,omitzero"`
}

type patchDateBody struct {
	Date string `json:"date"`
}

// wireDate acepta "2024-03-01", RFC 3339 o null. Cualquier otro texto que empiece con
// la fecha (ISO sin zona, timestamp de PostgreSQL) se toma por sus primeros 10 caracteres.
type wireDate struct {
	time.Time
}

func (d *wireDate) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("fecha: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, movement.DateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	if len(s) >= len(movement.DateLayout) {
		if t, err := time.Parse(movement.DateLayout, s[:len(movement.DateLayout)]); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("fecha %q con formato desconocido", s)
}

// ── Conversión a entidades ───────────────────────────────────────────────────

func (m *movementRowJSON) toEntity() *entity.MovementRow {
	row := &entity.MovementRow{
		ID:     m.ID,
		Date:   m.Date.Time,
		Status: m.Status,
	}
	if m.Remarks != nil {
		row.Remarks = *m.Remarks
	}
	if m.Inventory != nil {
		row.Inventory = &entity.InventoryRef{ContainerNumber: m.Inventory.ContainerNumber}
	}
	if m.Shipment != nil {
		row.Shipment = &entity.JobRef{JobNumber: m.Shipment.JobNumber, VesselName: m.Shipment.VesselName}
	}
	if m.EmptyRepoJob != nil {
		row.EmptyRepoJob = &entity.JobRef{JobNumber: m.EmptyRepoJob.JobNumber, VesselName: m.EmptyRepoJob.VesselName}
	}
	if m.Port != nil {
		row.Port = &entity.PortRef{ID: m.Port.ID, PortName: m.Port.PortName}
	}
	if m.AddressBook != nil {
		row.AddressBook = &entity.AddressBookRef{ID: m.AddressBook.ID, CompanyName: m.AddressBook.CompanyName}
	}
	return row
}

func (j *jobSourceJSON) toEntity(kind string) *entity.JobSource {
	return &entity.JobSource{
		Kind:                          kind,
		ID:                            j.ID,
		JobNumber:                     j.JobNumber,
		VesselName:                    j.VesselName,
		PolPortID:                     j.PolPortID,
		PodPortID:                     j.PodPortID,
		CarrierAddressBookID:          j.CarrierAddressBookID,
		EmptyReturnDepotAddressBookID: j.EmptyReturnDepotAddressBookID,
	}
}

func toBulkCreateBody(req movement.TransitionRequest) bulkCreateBody {
	ids := req.IDs
	if ids == nil {
		ids = []int64{}
	}
	return bulkCreateBody{
		IDs:           ids,
		NewStatus:     req.NewStatus.Wire(),
		JobNumber:     req.JobNumber,
		Date:          req.FormattedDate(),
		Remarks:       req.Remarks,
		PortID:        req.PortID,
		AddressBookID: req.AddressBookID,
	}
}
