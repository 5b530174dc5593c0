package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Muestras-api/internal/domain"
	"github.com/jhoicas/Muestras-api/internal/domain/access"
	"github.com/jhoicas/Muestras-api/internal/domain/codegen"
	"github.com/jhoicas/Muestras-api/internal/domain/entity"
	"github.com/jhoicas/Muestras-api/internal/domain/repository"
)

var (
	_ repository.SampleRepository       = (*sampleRepo)(nil)
	_ repository.MovementRepository     = (*movementRepo)(nil)
	_ repository.TransferRepository     = (*transferRepo)(nil)
	_ repository.CodeSequenceRepository = (*sequenceRepo)(nil)
	_ repository.ReferenceRepository    = (*referenceRepo)(nil)
)

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

// ── muestras ──────────────────────────────────────────────────────────────────

type sampleRepo struct{ acc accessor }

func (r *sampleRepo) Create(_ context.Context, s *entity.Sample) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return r.acc.write(func(st *state) error {
		if _, taken := st.codes[repository.CodeKindSample][s.Code]; taken {
			return domain.ErrCodeConflict
		}
		st.samples[s.ID] = *s
		st.codes[repository.CodeKindSample][s.Code] = s.ID
		return nil
	})
}

func (r *sampleRepo) GetByID(_ context.Context, id string) (*entity.Sample, error) {
	var out *entity.Sample
	r.acc.read(func(st *state) {
		if s, ok := st.samples[id]; ok {
			out = &s
		}
	})
	return out, nil
}

// GetForUpdate el mutex del Store ya serializa las transacciones.
func (r *sampleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sample, error) {
	return r.GetByID(ctx, id)
}

func (r *sampleRepo) UpdateQuantity(_ context.Context, id string, quantity int) error {
	return r.acc.write(func(st *state) error {
		s, ok := st.samples[id]
		if !ok {
			return domain.ErrNotFound
		}
		if quantity < 0 {
			return domain.ErrInsufficientStock
		}
		s.Quantity = quantity
		st.samples[id] = s
		return nil
	})
}

func (r *sampleRepo) Update(_ context.Context, id string, c entity.SampleChangeset) error {
	return r.acc.write(func(st *state) error {
		s, ok := st.samples[id]
		if !ok {
			return domain.ErrNotFound
		}
		st.samples[id] = c.Apply(s)
		return nil
	})
}

func (r *sampleRepo) List(_ context.Context, f repository.SampleFilter, scope access.Scope) ([]*entity.Sample, int, error) {
	search := strings.ToLower(f.Search)
	var all []*entity.Sample
	r.acc.read(func(st *state) {
		for _, s := range st.samples {
			if !scope.AllowsCountry(s.CountryID) ||
				(f.CountryID != "" && s.CountryID != f.CountryID) ||
				(f.WarehouseID != "" && s.WarehouseID != f.WarehouseID) {
				continue
			}
			if search != "" &&
				!strings.Contains(strings.ToLower(s.Code), search) &&
				!strings.Contains(strings.ToLower(s.Material), search) &&
				!strings.Contains(strings.ToLower(s.Lot), search) {
				continue
			}
			s := s
			all = append(all, &s)
		}
	})
	sort.Slice(all, func(i, j int) bool {
		if !all[i].RegisteredAt.Equal(all[j].RegisteredAt) {
			return all[i].RegisteredAt.After(all[j].RegisteredAt)
		}
		return all[i].Code < all[j].Code
	})
	return page(all, f.Limit, f.Offset), len(all), nil
}

// ── movimientos ───────────────────────────────────────────────────────────────

type movementRepo struct{ acc accessor }

func (r *movementRepo) Create(_ context.Context, m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return r.acc.write(func(st *state) error {
		if _, ok := st.samples[m.SampleID]; !ok {
			return domain.ErrNotFound
		}
		st.lastSeq++
		m.Seq = st.lastSeq
		st.movements[m.ID] = *m
		return nil
	})
}

func (r *movementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	var out *entity.Movement
	r.acc.read(func(st *state) {
		if m, ok := st.movements[id]; ok {
			out = &m
		}
	})
	return out, nil
}

func (r *movementRepo) Delete(_ context.Context, id string) error {
	return r.acc.write(func(st *state) error {
		if _, ok := st.movements[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.movements, id)
		return nil
	})
}

func (r *movementRepo) LatestBySample(ctx context.Context, sampleID string) (*entity.Movement, error) {
	list, err := r.ListBySample(ctx, sampleID)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[len(list)-1], nil
}

func (r *movementRepo) ListBySample(_ context.Context, sampleID string) ([]*entity.Movement, error) {
	var list []*entity.Movement
	r.acc.read(func(st *state) {
		for _, m := range st.movements {
			if m.SampleID == sampleID {
				m := m
				list = append(list, &m)
			}
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].Seq < list[j].Seq })
	return list, nil
}

func (r *movementRepo) List(_ context.Context, f repository.MovementFilter, scope access.Scope) ([]*entity.Movement, int, error) {
	var all []*entity.Movement
	r.acc.read(func(st *state) {
		for _, m := range st.movements {
			if !scope.AllowsCountry(st.samples[m.SampleID].CountryID) ||
				(f.SampleID != "" && m.SampleID != f.SampleID) ||
				(f.Type != "" && m.Type != f.Type) ||
				(f.From != nil && m.Date.Before(*f.From)) ||
				(f.To != nil && m.Date.After(*f.To)) {
				continue
			}
			m := m
			all = append(all, &m)
		}
	})
	sort.Slice(all, func(i, j int) bool { return all[i].Seq > all[j].Seq })
	return page(all, f.Limit, f.Offset), len(all), nil
}

// ── traslados ─────────────────────────────────────────────────────────────────

type transferRepo struct{ acc accessor }

// withOrigin completa el país de la muestra de origen (campo de lectura).
func withOrigin(st *state, t entity.Transfer) *entity.Transfer {
	t.OriginCountryID = st.samples[t.OriginSampleID].CountryID
	return &t
}

func (r *transferRepo) Create(_ context.Context, t *entity.Transfer) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return r.acc.write(func(st *state) error {
		if _, taken := st.codes[repository.CodeKindTransfer][t.Code]; taken {
			return domain.ErrCodeConflict
		}
		if _, ok := st.samples[t.OriginSampleID]; !ok {
			return domain.ErrNotFound
		}
		stored := *t
		stored.OriginCountryID = ""
		st.transfers[t.ID] = stored
		st.codes[repository.CodeKindTransfer][t.Code] = t.ID
		return nil
	})
}

func (r *transferRepo) GetByID(_ context.Context, id string) (*entity.Transfer, error) {
	var out *entity.Transfer
	r.acc.read(func(st *state) {
		if t, ok := st.transfers[id]; ok {
			out = withOrigin(st, t)
		}
	})
	return out, nil
}

func (r *transferRepo) GetForUpdate(ctx context.Context, id string) (*entity.Transfer, error) {
	return r.GetByID(ctx, id)
}

func (r *transferRepo) Resolve(_ context.Context, t *entity.Transfer) error {
	return r.acc.write(func(st *state) error {
		cur, ok := st.transfers[t.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if cur.State != entity.TransferStateEnviado {
			return domain.NewValidationError("el traslado ya fue resuelto")
		}
		cur.State = t.State
		cur.ReceivedAt = t.ReceivedAt
		cur.DestinationUserID = t.DestinationUserID
		cur.DestinationSampleID = t.DestinationSampleID
		cur.Comments = t.Comments
		st.transfers[t.ID] = cur
		return nil
	})
}

// Delete elimina el traslado y desvincula sus movimientos (igual que ON DELETE SET NULL).
// TransferCode queda en el movimiento.
func (r *transferRepo) Delete(_ context.Context, id string) error {
	return r.acc.write(func(st *state) error {
		t, ok := st.transfers[id]
		if !ok {
			return domain.ErrNotFound
		}
		delete(st.transfers, id)
		delete(st.codes[repository.CodeKindTransfer], t.Code)
		for mid, m := range st.movements {
			if m.TransferID == id {
				m.TransferID = ""
				st.movements[mid] = m
			}
		}
		return nil
	})
}

func (r *transferRepo) List(_ context.Context, f repository.TransferFilter, scope access.Scope) ([]*entity.Transfer, int, error) {
	var all []*entity.Transfer
	r.acc.read(func(st *state) {
		for _, t := range st.transfers {
			full := withOrigin(st, t)
			if !scope.AllowsTransfer(full.OriginCountryID, full.DestinationCountryID) ||
				(f.State != "" && t.State != f.State) ||
				(f.OriginSampleID != "" && t.OriginSampleID != f.OriginSampleID) {
				continue
			}
			all = append(all, full)
		}
	})
	sort.Slice(all, func(i, j int) bool {
		if !all[i].SentAt.Equal(all[j].SentAt) {
			return all[i].SentAt.After(all[j].SentAt)
		}
		return all[i].Code < all[j].Code
	})
	return page(all, f.Limit, f.Offset), len(all), nil
}

// ── secuencias de código ──────────────────────────────────────────────────────

type sequenceRepo struct{ acc accessor }

// Next max(códigos existentes con el stem, último reservado) + 1, igual que en PostgreSQL.
func (r *sequenceRepo) Next(_ context.Context, kind repository.CodeKind, stem string) (int, error) {
	var n int
	err := r.acc.write(func(st *state) error {
		existing := 0
		for code := range st.codes[kind] {
			if _, ok := codegen.Correlative(stem, code); ok {
				existing++
			}
		}
		key := string(kind) + "|" + stem
		n = max(existing, st.sequences[key]) + 1
		st.sequences[key] = n
		return nil
	})
	return n, err
}

// ── datos maestros ────────────────────────────────────────────────────────────

type referenceRepo struct{ acc accessor }

func (r *referenceRepo) GetCountry(_ context.Context, id string) (*entity.Country, error) {
	var out *entity.Country
	r.acc.read(func(st *state) {
		if c, ok := st.countries[id]; ok {
			out = &c
		}
	})
	return out, nil
}

func (r *referenceRepo) GetWarehouse(_ context.Context, id string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	r.acc.read(func(st *state) {
		if w, ok := st.warehouses[id]; ok {
			out = &w
		}
	})
	return out, nil
}

func (r *referenceRepo) GetLocation(_ context.Context, id string) (*entity.Location, error) {
	var out *entity.Location
	r.acc.read(func(st *state) {
		if l, ok := st.locations[id]; ok {
			out = &l
		}
	})
	return out, nil
}

func (r *referenceRepo) CategoryExists(_ context.Context, id string) (bool, error) {
	var ok bool
	r.acc.read(func(st *state) { _, ok = st.categories[id] })
	return ok, nil
}

func (r *referenceRepo) SupplierExists(_ context.Context, id string) (bool, error) {
	var ok bool
	r.acc.read(func(st *state) { _, ok = st.suppliers[id] })
	return ok, nil
}

func (r *referenceRepo) ResponsibleExists(_ context.Context, id string) (bool, error) {
	var ok bool
	r.acc.read(func(st *state) { _, ok = st.responsibles[id] })
	return ok, nil
}
