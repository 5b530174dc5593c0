package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Muestras-api/internal/domain"
	"github.com/jhoicas/Muestras-api/internal/domain/entity"
)

// movementInput datos de un movimiento a aplicar sobre una muestra ya bloqueada.
type movementInput struct {
	Type         string
	Quantity     int
	Reason       string
	Comments     string
	UserID       string
	TransferID   string
	TransferCode string
	Date         time.Time
}

// applyMovement es el único camino que cambia la cantidad de una muestra.
// La muestra debe venir de GetForUpdate (o haber sido creada) en la misma transacción.
// Registra el movimiento con la foto antes/después y actualiza la cantidad; SALIDA que deja
// la cantidad en negativo devuelve ErrInsufficientStock sin escribir nada.
func applyMovement(ctx context.Context, r TxRepos, sample *entity.Sample, in movementInput) (*entity.Movement, error) {
	if in.Quantity <= 0 {
		return nil, domain.NewValidationError("la cantidad movida debe ser mayor a cero")
	}
	before := sample.Quantity
	var after int
	switch in.Type {
	case entity.MovementTypeEntrada:
		after = before + in.Quantity
	case entity.MovementTypeSalida:
		after = before - in.Quantity
	default:
		return nil, domain.NewValidationError("tipo_movimiento debe ser ENTRADA o SALIDA")
	}
	if after < 0 {
		return nil, domain.ErrInsufficientStock
	}

	mov := &entity.Movement{
		SampleID:       sample.ID,
		Type:           in.Type,
		QuantityMoved:  in.Quantity,
		QuantityBefore: before,
		QuantityAfter:  after,
		Reason:         in.Reason,
		Comments:       in.Comments,
		Date:           in.Date,
		UserID:         in.UserID,
		TransferID:     in.TransferID,
		TransferCode:   in.TransferCode,
	}
	if err := r.Movements.Create(ctx, mov); err != nil {
		return nil, fmt.Errorf("registrar movimiento: %w", err)
	}
	if err := r.Samples.UpdateQuantity(ctx, sample.ID, after); err != nil {
		return nil, fmt.Errorf("actualizar cantidad: %w", err)
	}
	sample.Quantity = after
	return mov, nil
}

// ReplayLedger reproduce los movimientos (en orden de ledger) desde cantidad 0 y devuelve la
// cantidad resultante. Falla si algún movimiento no encadena con el anterior.
func ReplayLedger(movements []*entity.Movement) (int, error) {
	qty := 0
	for i, m := range movements {
		if m.QuantityBefore != qty {
			return qty, fmt.Errorf("movimiento %d (%s): cantidad_anterior %d, se esperaba %d", i+1, m.ID, m.QuantityBefore, qty)
		}
		qty += m.Delta()
		if m.QuantityAfter != qty || qty < 0 {
			return qty, fmt.Errorf("movimiento %d (%s): cantidad_nueva %d, se esperaba %d", i+1, m.ID, m.QuantityAfter, qty)
		}
	}
	return qty, nil
}
