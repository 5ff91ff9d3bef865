package entity

// Origen del job number.
const (
	JobSourceShipment     = "shipment"
	JobSourceEmptyRepoJob = "empty_repo_job"
)

// JobSource registro de /shipment o /empty-repo-job del que se derivan puerto y
// address book al cambiar de estado. Las referencias son nil cuando el servidor
// las omite o las envía en null.
type JobSource struct {
	Kind                          string // shipment, empty_repo_job
	ID                            int64
	JobNumber                     string
	VesselName                    string
	PolPortID                     *int64 // puerto de carga
	PodPortID                     *int64 // puerto de descarga
	CarrierAddressBookID          *int64
	EmptyReturnDepotAddressBookID *int64
}
