package inventory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Muestras-api/internal/application/dto"
	"github.com/jhoicas/Muestras-api/internal/domain"
	"github.com/jhoicas/Muestras-api/internal/domain/access"
	"github.com/jhoicas/Muestras-api/internal/domain/entity"
	stock "github.com/jhoicas/Muestras-api/internal/domain/inventory"
	"github.com/jhoicas/Muestras-api/internal/domain/repository"
)

// ReasonAdminCancel motivo fijo con el que un administrador cancela un traslado ENVIADO.
const ReasonAdminCancel = "Cancelado por administrador"

// TransferUseCase flujo de traslados entre países: ENVIADO -> COMPLETADO | RECHAZADO.
// Al crear se descuenta el origen; al completar nace una muestra en destino; al rechazar se devuelve al origen.
type TransferUseCase struct {
	txRunner  TxRunner
	transfers repository.TransferRepository
	samples   repository.SampleRepository
	cfg       settings
}

// NewTransferUseCase construye el caso de uso de traslados.
func NewTransferUseCase(
	txRunner TxRunner,
	transfers repository.TransferRepository,
	samples repository.SampleRepository,
	opts ...Option,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:  txRunner,
		transfers: transfers,
		samples:   samples,
		cfg:       buildSettings(opts),
	}
}

// Create registra un traslado ENVIADO y descuenta la cantidad del origen con una SALIDA.
// Bloqueo, inserción del traslado y movimiento van en una sola transacción.
// El alcance del usuario solo se exige sobre el país de origen; el destino puede ser cualquier
// país distinto, aunque el emisor no tenga acceso a él.
func (uc *TransferUseCase) Create(ctx context.Context, caller entity.Caller, in dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	in.Reason = strings.TrimSpace(in.Reason)
	switch {
	case in.OriginSampleID == "":
		return nil, domain.NewValidationError("muestra_origen_id es requerido")
	case in.DestinationCountryID == "":
		return nil, domain.NewValidationError("pais_destino_id es requerido")
	case in.Quantity <= 0:
		return nil, domain.NewValidationError("cantidad_trasladada debe ser mayor a cero")
	case in.Reason == "":
		return nil, domain.NewValidationError("motivo es requerido")
	}
	scope := access.ScopeFor(caller)

	var transfer *entity.Transfer
	err := runWithCodeRetry(ctx, uc.txRunner, uc.cfg, string(repository.CodeKindTransfer), func(r TxRepos) error {
		origin, err := r.Samples.GetForUpdate(ctx, in.OriginSampleID)
		if err != nil {
			return err
		}
		if origin == nil {
			return domain.ErrNotFound
		}
		if !scope.AllowsCountry(origin.CountryID) {
			return domain.ErrForbidden
		}
		if in.Quantity > origin.Quantity {
			return domain.NewValidationError("la cantidad a trasladar supera la cantidad disponible de la muestra")
		}
		dest, err := r.Refs.GetCountry(ctx, in.DestinationCountryID)
		if err != nil {
			return err
		}
		if dest == nil {
			return domain.NewValidationError("el país destino no existe")
		}
		if dest.ID == origin.CountryID {
			return domain.NewValidationError("el país destino debe ser distinto al país de la muestra")
		}

		now := uc.cfg.now()
		code, err := nextCode(ctx, r.Sequences, repository.CodeKindTransfer, uc.cfg.transferPrefix, now)
		if err != nil {
			return err
		}
		t := &entity.Transfer{
			ID:                   uuid.New().String(),
			Code:                 code,
			OriginSampleID:       origin.ID,
			Quantity:             in.Quantity,
			DestinationCountryID: dest.ID,
			Reason:               in.Reason,
			Comments:             in.Comments,
			State:                entity.TransferStateEnviado,
			SentAt:               now,
			OriginUserID:         caller.UserID,
			OriginCountryID:      origin.CountryID,
		}
		if err := r.Transfers.Create(ctx, t); err != nil {
			return err
		}
		if _, err := applyMovement(ctx, r, origin, movementInput{
			Type:         entity.MovementTypeSalida,
			Quantity:     in.Quantity,
			Reason:       "Traslado: " + in.Reason,
			Comments:     "Traslado " + code,
			UserID:       caller.UserID,
			TransferID:   t.ID,
			TransferCode: code,
			Date:         now,
		}); err != nil {
			return err
		}
		transfer = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.cfg.metrics.MovementApplied(entity.MovementTypeSalida, transfer.Quantity)
	uc.cfg.metrics.TransferChanged(transfer.State)
	uc.cfg.log.Info().
		Str("traslado_id", transfer.ID).
		Str("codigo", transfer.Code).
		Str("muestra_origen_id", transfer.OriginSampleID).
		Str("pais_destino_id", transfer.DestinationCountryID).
		Int("cantidad", transfer.Quantity).
		Str("usuario_id", caller.UserID).
		Msg("traslado enviado")
	return toTransferResponse(transfer, nil), nil
}

// Resolve lleva un traslado ENVIADO a COMPLETADO o RECHAZADO. Un traslado ya resuelto no admite cambios.
func (uc *TransferUseCase) Resolve(ctx context.Context, caller entity.Caller, id string, in dto.ResolveTransferRequest) (*dto.TransferResponse, error) {
	state := strings.ToUpper(strings.TrimSpace(in.State))
	switch state {
	case entity.TransferStateCompletado:
		if in.DestinationWarehouseID == "" || in.DestinationLocationID == "" || in.DestinationResponsibleID == "" {
			return nil, domain.NewValidationError("bodega_destino_id, ubicacion_destino_id y responsable_destino_id son requeridos para completar")
		}
	case entity.TransferStateRechazado:
		if strings.TrimSpace(in.Comments) == "" {
			return nil, domain.NewValidationError("comentarios_traslado (motivo del rechazo) es requerido para rechazar")
		}
	default:
		return nil, domain.NewValidationError("estado debe ser COMPLETADO o RECHAZADO")
	}
	in.State = state
	return uc.resolve(ctx, caller, id, in)
}

// Cancel (ADMIN) rechaza un traslado ENVIADO con motivo fijo y devuelve la cantidad al origen.
func (uc *TransferUseCase) Cancel(ctx context.Context, caller entity.Caller, id string) (*dto.TransferResponse, error) {
	if !access.ScopeFor(caller).IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return uc.resolve(ctx, caller, id, dto.ResolveTransferRequest{
		State:    entity.TransferStateRechazado,
		Comments: ReasonAdminCancel,
	})
}

// Delete (ADMIN) elimina el registro de un traslado terminal. No toca cantidades ni movimientos.
func (uc *TransferUseCase) Delete(ctx context.Context, caller entity.Caller, id string) error {
	if !access.ScopeFor(caller).IsAdmin() {
		return domain.ErrForbidden
	}
	var deleted *entity.Transfer
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		t, err := r.Transfers.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if !t.IsTerminal() {
			return domain.NewValidationError("solo se pueden eliminar traslados COMPLETADO o RECHAZADO; cancele el traslado primero")
		}
		deleted = t
		return r.Transfers.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.cfg.log.Warn().
		Str("traslado_id", deleted.ID).
		Str("codigo", deleted.Code).
		Str("estado", deleted.State).
		Str("usuario_id", caller.UserID).
		Msg("traslado eliminado por administrador")
	return nil
}

// Get devuelve un traslado visible para el usuario (país de origen o de destino en su alcance).
func (uc *TransferUseCase) Get(ctx context.Context, caller entity.Caller, id string) (*dto.TransferResponse, error) {
	t, err := uc.transfers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if !access.ScopeFor(caller).AllowsTransfer(t.OriginCountryID, t.DestinationCountryID) {
		return nil, domain.ErrForbidden
	}
	var dest *entity.Sample
	if t.DestinationSampleID != "" {
		if dest, err = uc.samples.GetByID(ctx, t.DestinationSampleID); err != nil {
			return nil, err
		}
	}
	return toTransferResponse(t, dest), nil
}

// List lista traslados visibles para el usuario.
func (uc *TransferUseCase) List(ctx context.Context, caller entity.Caller, q dto.TransferListQuery) (*dto.ListResponse[dto.TransferResponse], error) {
	q.DefaultPage()
	list, total, err := uc.transfers.List(ctx, repository.TransferFilter{
		State:          strings.ToUpper(strings.TrimSpace(q.State)),
		OriginSampleID: q.OriginSampleID,
		Limit:          q.Limit,
		Offset:         q.Offset,
	}, access.ScopeFor(caller))
	if err != nil {
		return nil, err
	}
	out := &dto.ListResponse[dto.TransferResponse]{
		Items: make([]dto.TransferResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}
	for _, t := range list {
		out.Items = append(out.Items, *toTransferResponse(t, nil))
	}
	return out, nil
}

// resolve aplica la transición ya validada. Bloquea el traslado para que dos resoluciones
// concurrentes no puedan tener éxito ambas.
func (uc *TransferUseCase) resolve(ctx context.Context, caller entity.Caller, id string, in dto.ResolveTransferRequest) (*dto.TransferResponse, error) {
	scope := access.ScopeFor(caller)
	var (
		transfer *entity.Transfer
		dest     *entity.Sample
		mov      *entity.Movement
	)
	err := runWithCodeRetry(ctx, uc.txRunner, uc.cfg, string(repository.CodeKindSample), func(r TxRepos) error {
		transfer, dest, mov = nil, nil, nil
		t, err := r.Transfers.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if !scope.AllowsTransfer(t.OriginCountryID, t.DestinationCountryID) {
			return domain.ErrForbidden
		}
		if t.State != entity.TransferStateEnviado {
			return domain.NewValidationError("el traslado ya fue resuelto (" + t.State + ")")
		}
		if !scope.AllowsCountry(t.DestinationCountryID) {
			return domain.ErrForbidden
		}

		now := uc.cfg.now()
		received := now
		t.State = in.State
		t.ReceivedAt = &received
		t.DestinationUserID = caller.UserID

		switch in.State {
		case entity.TransferStateCompletado:
			dest, mov, err = uc.receive(ctx, r, caller, t, in)
		default:
			t.Comments = strings.TrimSpace(in.Comments)
			mov, err = uc.giveBack(ctx, r, caller, t)
		}
		if err != nil {
			return err
		}
		if err := r.Transfers.Resolve(ctx, t); err != nil {
			return err
		}
		transfer = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.cfg.metrics.MovementApplied(mov.Type, mov.QuantityMoved)
	uc.cfg.metrics.TransferChanged(transfer.State)
	ev := uc.cfg.log.Info().
		Str("traslado_id", transfer.ID).
		Str("codigo", transfer.Code).
		Str("estado", transfer.State).
		Int("cantidad", transfer.Quantity).
		Str("usuario_id", caller.UserID)
	if dest != nil {
		ev = ev.Str("muestra_destino_id", dest.ID).Str("codigo_destino", dest.Code)
	}
	ev.Msg("traslado resuelto")
	return toTransferResponse(transfer, dest), nil
}

// receive crea la muestra destino copiando los atributos del origen y le aplica la ENTRADA inicial.
// La cantidad del origen no se toca: ya se descontó al enviar.
func (uc *TransferUseCase) receive(ctx context.Context, r TxRepos, caller entity.Caller, t *entity.Transfer, in dto.ResolveTransferRequest) (*entity.Sample, *entity.Movement, error) {
	origin, err := r.Samples.GetByID(ctx, t.OriginSampleID)
	if err != nil {
		return nil, nil, err
	}
	if origin == nil {
		return nil, nil, domain.ErrNotFound
	}
	country, err := checkPlacement(ctx, r.Refs, placement{
		CountryID:     t.DestinationCountryID,
		WarehouseID:   in.DestinationWarehouseID,
		LocationID:    in.DestinationLocationID,
		ResponsibleID: in.DestinationResponsibleID,
	})
	if err != nil {
		return nil, nil, err
	}
	now := *t.ReceivedAt
	code, err := nextCode(ctx, r.Sequences, repository.CodeKindSample, country.Code, now)
	if err != nil {
		return nil, nil, err
	}
	dest := &entity.Sample{
		ID:            uuid.New().String(),
		Code:          code,
		Material:      origin.Material,
		Lot:           origin.Lot,
		UnitWeight:    origin.UnitWeight,
		Unit:          origin.Unit,
		TotalWeight:   stock.TotalWeight(origin.UnitWeight, t.Quantity),
		ExpiryDate:    origin.ExpiryDate,
		Comments:      "Recibida por traslado " + t.Code,
		RegisteredAt:  now,
		CountryID:     country.ID,
		CategoryID:    origin.CategoryID,
		SupplierID:    origin.SupplierID,
		WarehouseID:   in.DestinationWarehouseID,
		LocationID:    in.DestinationLocationID,
		ResponsibleID: in.DestinationResponsibleID,
	}
	if err := r.Samples.Create(ctx, dest); err != nil {
		return nil, nil, err
	}
	mov, err := applyMovement(ctx, r, dest, movementInput{
		Type:         entity.MovementTypeEntrada,
		Quantity:     t.Quantity,
		Reason:       "Traslado recibido: " + t.Reason,
		Comments:     "Traslado " + t.Code,
		UserID:       caller.UserID,
		TransferID:   t.ID,
		TransferCode: t.Code,
		Date:         now,
	})
	if err != nil {
		return nil, nil, err
	}
	t.DestinationSampleID = dest.ID
	if c := strings.TrimSpace(in.Comments); c != "" {
		t.Comments = c
	}
	return dest, mov, nil
}

// giveBack devuelve la cantidad en tránsito al origen con una ENTRADA compensatoria.
func (uc *TransferUseCase) giveBack(ctx context.Context, r TxRepos, caller entity.Caller, t *entity.Transfer) (*entity.Movement, error) {
	origin, err := r.Samples.GetForUpdate(ctx, t.OriginSampleID)
	if err != nil {
		return nil, err
	}
	if origin == nil {
		return nil, domain.ErrNotFound
	}
	return applyMovement(ctx, r, origin, movementInput{
		Type:         entity.MovementTypeEntrada,
		Quantity:     t.Quantity,
		Reason:       "Traslado rechazado: " + t.Reason,
		Comments:     t.Comments,
		UserID:       caller.UserID,
		TransferID:   t.ID,
		TransferCode: t.Code,
		Date:         *t.ReceivedAt,
	})
}
