// Package memory implementa los puertos de persistencia en memoria del proceso.
// Cada transacción trabaja sobre un clon del estado que solo reemplaza al original
// si fn termina sin error, de modo que un fallo no deja escrituras parciales.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Muestras-api/internal/application/inventory"
	"github.com/jhoicas/Muestras-api/internal/domain/entity"
	"github.com/jhoicas/Muestras-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

type state struct {
	countries    map[string]entity.Country
	warehouses   map[string]entity.Warehouse
	locations    map[string]entity.Location
	categories   map[string]entity.Category
	suppliers    map[string]entity.Supplier
	responsibles map[string]entity.Responsible

	samples   map[string]entity.Sample
	movements map[string]entity.Movement
	transfers map[string]entity.Transfer
	// codes código -> id, por tabla (muestras, traslados).
	codes     map[repository.CodeKind]map[string]string
	sequences map[string]int
	lastSeq   int64
}

func newState() *state {
	return &state{
		countries:    map[string]entity.Country{},
		warehouses:   map[string]entity.Warehouse{},
		locations:    map[string]entity.Location{},
		categories:   map[string]entity.Category{},
		suppliers:    map[string]entity.Supplier{},
		responsibles: map[string]entity.Responsible{},
		samples:      map[string]entity.Sample{},
		movements:    map[string]entity.Movement{},
		transfers:    map[string]entity.Transfer{},
		codes: map[repository.CodeKind]map[string]string{
			repository.CodeKindSample:   {},
			repository.CodeKindTransfer: {},
		},
		sequences: map[string]int{},
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// clone copia el estado. Las entidades se guardan por valor y sus punteros
// (fechas) nunca se mutan en sitio, así que basta con copiar los mapas.
func (st *state) clone() *state {
	codes := make(map[repository.CodeKind]map[string]string, len(st.codes))
	for k, v := range st.codes {
		codes[k] = cloneMap(v)
	}
	return &state{
		countries:    cloneMap(st.countries),
		warehouses:   cloneMap(st.warehouses),
		locations:    cloneMap(st.locations),
		categories:   cloneMap(st.categories),
		suppliers:    cloneMap(st.suppliers),
		responsibles: cloneMap(st.responsibles),
		samples:      cloneMap(st.samples),
		movements:    cloneMap(st.movements),
		transfers:    cloneMap(st.transfers),
		codes:        codes,
		sequences:    cloneMap(st.sequences),
		lastSeq:      st.lastSeq,
	}
}

// Store almacén en memoria. Las transacciones se serializan con un mutex global,
// equivalente a bloquear todas las filas que tocan.
type Store struct {
	mu sync.RWMutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Run ejecuta fn sobre un clon del estado y lo confirma solo si fn no falla.
func (s *Store) Run(ctx context.Context, fn func(r inventory.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(reposFor(txAccess{st: work})); err != nil {
		return err
	}
	s.st = work
	return nil
}

// Samples repositorio de muestras de solo lectura fuera de transacción.
func (s *Store) Samples() repository.SampleRepository { return &sampleRepo{acc: storeAccess{s: s}} }

// Movements repositorio del kardex fuera de transacción.
func (s *Store) Movements() repository.MovementRepository {
	return &movementRepo{acc: storeAccess{s: s}}
}

// Transfers repositorio de traslados fuera de transacción.
func (s *Store) Transfers() repository.TransferRepository {
	return &transferRepo{acc: storeAccess{s: s}}
}

// References datos maestros fuera de transacción.
func (s *Store) References() repository.ReferenceRepository {
	return &referenceRepo{acc: storeAccess{s: s}}
}

func reposFor(acc accessor) inventory.TxRepos {
	return inventory.TxRepos{
		Samples:   &sampleRepo{acc: acc},
		Movements: &movementRepo{acc: acc},
		Transfers: &transferRepo{acc: acc},
		Sequences: &sequenceRepo{acc: acc},
		Refs:      &referenceRepo{acc: acc},
	}
}

// accessor da a los repositorios el estado: directo dentro de una tx o bajo el mutex fuera de ella.
type accessor interface {
	read(fn func(st *state))
	write(fn func(st *state) error) error
}

type txAccess struct{ st *state }

func (a txAccess) read(fn func(st *state))              { fn(a.st) }
func (a txAccess) write(fn func(st *state) error) error { return fn(a.st) }

// storeAccess cada escritura fuera de tx es su propia transacción de una sola operación.
type storeAccess struct{ s *Store }

func (a storeAccess) read(fn func(st *state)) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	fn(a.s.st)
}

func (a storeAccess) write(fn func(st *state) error) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	work := a.s.st.clone()
	if err := fn(work); err != nil {
		return err
	}
	a.s.st = work
	return nil
}
