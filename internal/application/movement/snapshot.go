package movement

import (
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/movements-api/internal/domain/entity"
)

// Snapshot caché de /movement-history/latest. Nunca se mezcla: cada recarga la
// reemplaza completa.
type Snapshot struct {
	mu       sync.RWMutex
	rows     []*entity.MovementRow
	byID     map[int64]*entity.MovementRow
	loadedAt time.Time
}

// NewSnapshot caché vacía.
func NewSnapshot() *Snapshot {
	return &Snapshot{byID: map[int64]*entity.MovementRow{}}
}

// Replace sustituye el contenido completo.
func (s *Snapshot) Replace(rows []*entity.MovementRow, at time.Time) {
	byID := make(map[int64]*entity.MovementRow, len(rows))
	for _, r := range rows {
		byID[r.ID] = r
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = rows
	s.byID = byID
	s.loadedAt = at
}

// Loaded indica si hubo al menos una carga.
func (s *Snapshot) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.loadedAt.IsZero()
}

// LoadedAt momento de la última carga.
func (s *Snapshot) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Rows copia del slice en el orden del servidor.
func (s *Snapshot) Rows() []*entity.MovementRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.MovementRow, len(s.rows))
	copy(out, s.rows)
	return out
}

// Find devuelve las filas de ids en el orden pedido y los ids que no están en la caché.
func (s *Snapshot) Find(ids []int64) (found []*entity.MovementRow, missing []int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range ids {
		if r, ok := s.byID[id]; ok {
			found = append(found, r)
		} else {
			missing = append(missing, id)
		}
	}
	return found, missing
}

// Filter búsqueda de la tabla: subcadena sin distinguir mayúsculas sobre número de
// contenedor y job number (shipment o empty-repo job). Campos vacíos no filtran.
type Filter struct {
	Container string
	Job       string
}

// Apply devuelve las filas que cumplen el filtro.
func (f Filter) Apply(rows []*entity.MovementRow) []*entity.MovementRow {
	container := strings.ToLower(strings.TrimSpace(f.Container))
	job := strings.ToLower(strings.TrimSpace(f.Job))
	if container == "" && job == "" {
		return rows
	}
	out := make([]*entity.MovementRow, 0, len(rows))
	for _, r := range rows {
		if container != "" && !strings.Contains(strings.ToLower(r.ContainerNumber()), container) {
			continue
		}
		if job != "" && !jobMatches(r, job) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func jobMatches(r *entity.MovementRow, job string) bool {
	if r.Shipment != nil && strings.Contains(strings.ToLower(r.Shipment.JobNumber), job) {
		return true
	}
	return r.EmptyRepoJob != nil && strings.Contains(strings.ToLower(r.EmptyRepoJob.JobNumber), job)
}
