package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Muestras-api/internal/application/dto"
	"github.com/jhoicas/Muestras-api/internal/domain"
	"github.com/jhoicas/Muestras-api/internal/domain/access"
	"github.com/jhoicas/Muestras-api/internal/domain/entity"
	stock "github.com/jhoicas/Muestras-api/internal/domain/inventory"
	"github.com/jhoicas/Muestras-api/internal/domain/repository"
)

// Motivo del movimiento sintético con el que nace toda muestra registrada.
const reasonInitialRegistration = "Registro inicial"

// LedgerUseCase kardex de muestras: registro, movimientos ENTRADA/SALIDA y reversión administrativa.
// Toda escritura corre en una transacción con la fila de la muestra bloqueada (SELECT FOR UPDATE).
type LedgerUseCase struct {
	txRunner  TxRunner
	samples   repository.SampleRepository
	movements repository.MovementRepository
	cfg       settings
}

// NewLedgerUseCase construye el caso de uso. Los repositorios son de solo lectura (fuera de tx).
func NewLedgerUseCase(
	txRunner TxRunner,
	samples repository.SampleRepository,
	movements repository.MovementRepository,
	opts ...Option,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:  txRunner,
		samples:   samples,
		movements: movements,
		cfg:       buildSettings(opts),
	}
}

// ApplyMovement aplica una ENTRADA o SALIDA sobre una muestra y devuelve el movimiento creado.
// SALIDA mayor al stock devuelve domain.ErrInsufficientStock y no escribe nada.
func (uc *LedgerUseCase) ApplyMovement(ctx context.Context, caller entity.Caller, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	in.Type = strings.ToUpper(strings.TrimSpace(in.Type))
	if in.SampleID == "" {
		return nil, domain.NewValidationError("muestra_id es requerido")
	}
	if in.Type != entity.MovementTypeEntrada && in.Type != entity.MovementTypeSalida {
		return nil, domain.NewValidationError("tipo_movimiento debe ser ENTRADA o SALIDA")
	}
	if in.Quantity <= 0 {
		return nil, domain.NewValidationError("cantidad_movida debe ser mayor a cero")
	}
	if strings.TrimSpace(in.Reason) == "" {
		return nil, domain.NewValidationError("motivo es requerido")
	}
	scope := access.ScopeFor(caller)

	var mov *entity.Movement
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		sample, err := r.Samples.GetForUpdate(ctx, in.SampleID)
		if err != nil {
			return err
		}
		if sample == nil {
			return domain.ErrNotFound
		}
		if !scope.AllowsCountry(sample.CountryID) {
			return domain.ErrForbidden
		}
		mov, err = applyMovement(ctx, r, sample, movementInput{
			Type:     in.Type,
			Quantity: in.Quantity,
			Reason:   strings.TrimSpace(in.Reason),
			Comments: in.Comments,
			UserID:   caller.UserID,
			Date:     uc.cfg.now(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.cfg.metrics.MovementApplied(mov.Type, mov.QuantityMoved)
	uc.cfg.log.Info().
		Str("muestra_id", mov.SampleID).
		Str("tipo", mov.Type).
		Int("cantidad", mov.QuantityMoved).
		Int("antes", mov.QuantityBefore).
		Int("despues", mov.QuantityAfter).
		Str("usuario_id", caller.UserID).
		Msg("movimiento registrado")
	return toMovementResponse(mov), nil
}

// RegisterSample registra una muestra nueva con código <país><DD><MM><YY><NNN> y su primer
// movimiento ENTRADA (antes = 0), de modo que la cantidad siempre se explica por el kardex.
func (uc *LedgerUseCase) RegisterSample(ctx context.Context, caller entity.Caller, in dto.RegisterSampleRequest) (*dto.SampleResponse, error) {
	in.Material = strings.TrimSpace(in.Material)
	in.Unit = strings.ToLower(strings.TrimSpace(in.Unit))
	switch {
	case in.Material == "":
		return nil, domain.NewValidationError("material es requerido")
	case in.Quantity <= 0:
		return nil, domain.NewValidationError("cantidad debe ser mayor a cero")
	case !entity.ValidUnit(in.Unit):
		return nil, domain.NewValidationError("unidad_medida debe ser kg, g o mg")
	case in.UnitWeight.IsNegative():
		return nil, domain.NewValidationError("peso_unitario no puede ser negativo")
	case in.CountryID == "" || in.WarehouseID == "" || in.LocationID == "" || in.ResponsibleID == "":
		return nil, domain.NewValidationError("pais_id, bodega_id, ubicacion_id y responsable_id son requeridos")
	}
	expiry, err := parseDate(in.ExpiryDate, "fecha_vencimiento")
	if err != nil {
		return nil, err
	}
	scope := access.ScopeFor(caller)
	if !scope.AllowsCountry(in.CountryID) {
		return nil, domain.ErrForbidden
	}

	var sample *entity.Sample
	err = runWithCodeRetry(ctx, uc.txRunner, uc.cfg, string(repository.CodeKindSample), func(r TxRepos) error {
		country, err := checkPlacement(ctx, r.Refs, placement{
			CountryID:     in.CountryID,
			WarehouseID:   in.WarehouseID,
			LocationID:    in.LocationID,
			ResponsibleID: in.ResponsibleID,
		})
		if err != nil {
			return err
		}
		if err := checkClassification(ctx, r.Refs, in.CategoryID, in.SupplierID); err != nil {
			return err
		}
		now := uc.cfg.now()
		code, err := nextCode(ctx, r.Sequences, repository.CodeKindSample, country.Code, now)
		if err != nil {
			return err
		}
		sample = &entity.Sample{
			ID:            uuid.New().String(),
			Code:          code,
			Material:      in.Material,
			Lot:           strings.TrimSpace(in.Lot),
			UnitWeight:    in.UnitWeight,
			Unit:          in.Unit,
			TotalWeight:   stock.TotalWeight(in.UnitWeight, in.Quantity),
			ExpiryDate:    expiry,
			Comments:      in.Comments,
			RegisteredAt:  now,
			CountryID:     country.ID,
			CategoryID:    in.CategoryID,
			SupplierID:    in.SupplierID,
			WarehouseID:   in.WarehouseID,
			LocationID:    in.LocationID,
			ResponsibleID: in.ResponsibleID,
		}
		if err := r.Samples.Create(ctx, sample); err != nil {
			return err
		}
		_, err = applyMovement(ctx, r, sample, movementInput{
			Type:     entity.MovementTypeEntrada,
			Quantity: in.Quantity,
			Reason:   reasonInitialRegistration,
			Comments: "Registro de muestra " + code,
			UserID:   caller.UserID,
			Date:     now,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.cfg.metrics.MovementApplied(entity.MovementTypeEntrada, sample.Quantity)
	uc.cfg.log.Info().
		Str("muestra_id", sample.ID).
		Str("codigo", sample.Code).
		Int("cantidad", sample.Quantity).
		Str("usuario_id", caller.UserID).
		Msg("muestra registrada")
	return toSampleResponse(sample), nil
}

// DeleteMovement (ADMIN) revierte la cantidad de la muestra al valor "antes" del movimiento y lo elimina.
// Solo se permite sobre el último movimiento de la muestra y nunca sobre movimientos de un traslado
// (esos se compensan cancelando o rechazando el traslado).
func (uc *LedgerUseCase) DeleteMovement(ctx context.Context, caller entity.Caller, movementID string) error {
	if !access.ScopeFor(caller).IsAdmin() {
		return domain.ErrForbidden
	}
	var deleted *entity.Movement
	var restored int
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		mov, err := r.Movements.GetByID(ctx, movementID)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		sample, err := r.Samples.GetForUpdate(ctx, mov.SampleID)
		if err != nil {
			return err
		}
		if sample == nil {
			return domain.ErrNotFound
		}
		if mov.FromTransfer() {
			return domain.NewValidationError("el movimiento pertenece a un traslado; cancele o rechace el traslado")
		}
		latest, err := r.Movements.LatestBySample(ctx, sample.ID)
		if err != nil {
			return err
		}
		if latest == nil || latest.ID != mov.ID {
			return domain.NewValidationError("solo se puede eliminar el último movimiento de la muestra")
		}
		if err := r.Samples.UpdateQuantity(ctx, sample.ID, mov.QuantityBefore); err != nil {
			return fmt.Errorf("revertir cantidad: %w", err)
		}
		if err := r.Movements.Delete(ctx, mov.ID); err != nil {
			return err
		}
		deleted, restored = mov, mov.QuantityBefore
		return nil
	})
	if err != nil {
		return err
	}

	uc.cfg.metrics.MovementDeleted()
	uc.cfg.log.Warn().
		Str("movimiento_id", deleted.ID).
		Str("muestra_id", deleted.SampleID).
		Str("tipo", deleted.Type).
		Int("cantidad_movida", deleted.QuantityMoved).
		Int("cantidad_restaurada", restored).
		Str("usuario_id", caller.UserID).
		Msg("movimiento eliminado por administrador")
	return nil
}

// GetSample devuelve una muestra visible para el usuario.
func (uc *LedgerUseCase) GetSample(ctx context.Context, caller entity.Caller, id string) (*dto.SampleResponse, error) {
	s, err := uc.visibleSample(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	return toSampleResponse(s), nil
}

// ListSamples lista muestras filtradas por el alcance de países del usuario.
func (uc *LedgerUseCase) ListSamples(ctx context.Context, caller entity.Caller, q dto.SampleListQuery) (*dto.ListResponse[dto.SampleResponse], error) {
	q.DefaultPage()
	list, total, err := uc.samples.List(ctx, repository.SampleFilter{
		CountryID:   q.CountryID,
		WarehouseID: q.WarehouseID,
		Search:      strings.TrimSpace(q.Search),
		Limit:       q.Limit,
		Offset:      q.Offset,
	}, access.ScopeFor(caller))
	if err != nil {
		return nil, err
	}
	out := &dto.ListResponse[dto.SampleResponse]{
		Items: make([]dto.SampleResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}
	for _, s := range list {
		out.Items = append(out.Items, *toSampleResponse(s))
	}
	return out, nil
}

// UpdateSample aplica un changeset sobre los atributos no cuantitativos de la muestra.
func (uc *LedgerUseCase) UpdateSample(ctx context.Context, caller entity.Caller, id string, in dto.UpdateSampleRequest) (*dto.SampleResponse, error) {
	changes, err := buildChangeset(in)
	if err != nil {
		return nil, err
	}
	if changes.IsEmpty() {
		return nil, domain.NewValidationError("no hay campos para actualizar")
	}
	scope := access.ScopeFor(caller)

	var updated *entity.Sample
	err = uc.txRunner.Run(ctx, func(r TxRepos) error {
		current, err := r.Samples.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if !scope.AllowsCountry(current.CountryID) {
			return domain.ErrForbidden
		}
		next := changes.Apply(*current)
		if changes.WarehouseID != nil || changes.LocationID != nil || changes.ResponsibleID != nil {
			if _, err := checkPlacement(ctx, r.Refs, placement{
				CountryID:     next.CountryID,
				WarehouseID:   next.WarehouseID,
				LocationID:    next.LocationID,
				ResponsibleID: next.ResponsibleID,
			}); err != nil {
				return err
			}
		}
		if err := checkClassification(ctx, r.Refs, deref(changes.CategoryID), deref(changes.SupplierID)); err != nil {
			return err
		}
		if err := r.Samples.Update(ctx, id, changes); err != nil {
			return err
		}
		updated = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.cfg.log.Info().Str("muestra_id", id).Str("usuario_id", caller.UserID).Msg("muestra actualizada")
	return toSampleResponse(updated), nil
}

// ListMovements lista el kardex general filtrado por el alcance del usuario.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, caller entity.Caller, q dto.MovementListQuery) (*dto.ListResponse[dto.MovementResponse], error) {
	q.DefaultPage()
	from, err := parseDate(q.From, "desde")
	if err != nil {
		return nil, err
	}
	to, err := parseDate(q.To, "hasta")
	if err != nil {
		return nil, err
	}
	if to != nil {
		end := to.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}
	list, total, err := uc.movements.List(ctx, repository.MovementFilter{
		SampleID: q.SampleID,
		Type:     strings.ToUpper(q.Type),
		From:     from,
		To:       to,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}, access.ScopeFor(caller))
	if err != nil {
		return nil, err
	}
	out := &dto.ListResponse[dto.MovementResponse]{
		Items: make([]dto.MovementResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}
	for _, m := range list {
		out.Items = append(out.Items, *toMovementResponse(m))
	}
	return out, nil
}

// GetKardex devuelve la muestra con todos sus movimientos y verifica que el ledger reproduzca la cantidad.
func (uc *LedgerUseCase) GetKardex(ctx context.Context, caller entity.Caller, sampleID string) (*dto.KardexResponse, error) {
	sample, movs, err := uc.kardex(ctx, caller, sampleID)
	if err != nil {
		return nil, err
	}
	replayed, replayErr := ReplayLedger(movs)
	out := &dto.KardexResponse{
		Sample:           *toSampleResponse(sample),
		Movements:        make([]dto.MovementResponse, 0, len(movs)),
		ReplayedQuantity: replayed,
		Consistent:       replayErr == nil && replayed == sample.Quantity,
	}
	for _, m := range movs {
		out.Movements = append(out.Movements, *toMovementResponse(m))
	}
	if !out.Consistent {
		uc.cfg.log.Error().
			Str("muestra_id", sample.ID).
			Int("cantidad", sample.Quantity).
			Int("cantidad_calculada", replayed).
			AnErr("detalle", replayErr).
			Msg("kardex inconsistente")
	}
	return out, nil
}

// KardexPDF genera el kardex imprimible. Devuelve los bytes y el nombre de archivo sugerido.
func (uc *LedgerUseCase) KardexPDF(ctx context.Context, caller entity.Caller, sampleID string) ([]byte, string, error) {
	if uc.cfg.pdf == nil {
		return nil, "", fmt.Errorf("kardex pdf: generador no configurado")
	}
	sample, movs, err := uc.kardex(ctx, caller, sampleID)
	if err != nil {
		return nil, "", err
	}
	doc, err := uc.cfg.pdf.GenerateKardexPDF(ctx, sample, movs)
	if err != nil {
		return nil, "", err
	}
	return doc, "kardex-" + sample.Code + ".pdf", nil
}

func (uc *LedgerUseCase) kardex(ctx context.Context, caller entity.Caller, sampleID string) (*entity.Sample, []*entity.Movement, error) {
	sample, err := uc.visibleSample(ctx, caller, sampleID)
	if err != nil {
		return nil, nil, err
	}
	movs, err := uc.movements.ListBySample(ctx, sample.ID)
	if err != nil {
		return nil, nil, err
	}
	return sample, movs, nil
}

func (uc *LedgerUseCase) visibleSample(ctx context.Context, caller entity.Caller, id string) (*entity.Sample, error) {
	s, err := uc.samples.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if !access.ScopeFor(caller).AllowsCountry(s.CountryID) {
		return nil, domain.ErrForbidden
	}
	return s, nil
}

// buildChangeset valida el body del PATCH y lo convierte en changeset de dominio.
func buildChangeset(in dto.UpdateSampleRequest) (entity.SampleChangeset, error) {
	c := entity.SampleChangeset{
		Lot:           trimmed(in.Lot),
		Comments:      in.Comments,
		CategoryID:    in.CategoryID,
		SupplierID:    in.SupplierID,
		WarehouseID:   in.WarehouseID,
		LocationID:    in.LocationID,
		ResponsibleID: in.ResponsibleID,
		UnitWeight:    in.UnitWeight,
	}
	if in.Material != nil {
		m := strings.TrimSpace(*in.Material)
		if m == "" {
			return c, domain.NewValidationError("material no puede quedar vacío")
		}
		c.Material = &m
	}
	if in.Unit != nil {
		u := strings.ToLower(strings.TrimSpace(*in.Unit))
		if !entity.ValidUnit(u) {
			return c, domain.NewValidationError("unidad_medida debe ser kg, g o mg")
		}
		c.Unit = &u
	}
	if in.UnitWeight != nil && in.UnitWeight.IsNegative() {
		return c, domain.NewValidationError("peso_unitario no puede ser negativo")
	}
	for _, ref := range []*string{in.WarehouseID, in.LocationID, in.ResponsibleID} {
		if ref != nil && *ref == "" {
			return c, domain.NewValidationError("bodega_id, ubicacion_id y responsable_id no pueden quedar vacíos")
		}
	}
	if in.ExpiryDate != nil {
		if *in.ExpiryDate == "" {
			c.ClearExpiry = true
		} else {
			d, err := parseDate(*in.ExpiryDate, "fecha_vencimiento")
			if err != nil {
				return c, err
			}
			c.ExpiryDate = d
		}
	}
	return c, nil
}

func parseDate(s, field string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return nil, domain.NewValidationError(field + " debe tener formato AAAA-MM-DD")
	}
	return &d, nil
}

func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	return &s
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
