package dto

import "time"

// RegisterMovementRequest body para POST /api/movimientos.
type RegisterMovementRequest struct {
	SampleID string `json:"muestra_id"`
	Type     string `json:"tipo_movimiento"`
	Quantity int    `json:"cantidad_movida"`
	Reason   string `json:"motivo"`
	Comments string `json:"comentarios,omitempty"`
}

// MovementListQuery filtros de GET /api/movimientos.
type MovementListQuery struct {
	PageRequest
	SampleID string `query:"muestra_id"`
	Type     string `query:"tipo_movimiento"`
	From     string `query:"desde"` // 2006-01-02
	To       string `query:"hasta"` // 2006-01-02
}

// MovementResponse movimiento del kardex con la foto de cantidades antes/después.
type MovementResponse struct {
	ID             string    `json:"id"`
	Seq            int64     `json:"secuencia"`
	SampleID       string    `json:"muestra_id"`
	Type           string    `json:"tipo_movimiento"`
	QuantityMoved  int       `json:"cantidad_movida"`
	QuantityBefore int       `json:"cantidad_anterior"`
	QuantityAfter  int       `json:"cantidad_nueva"`
	Reason         string    `json:"motivo"`
	Comments       string    `json:"comentarios,omitempty"`
	Date           time.Time `json:"fecha_movimiento"`
	UserID         string    `json:"usuario_id"`
	TransferID     string    `json:"traslado_id,omitempty"`
	TransferCode   string    `json:"codigo_traslado,omitempty"`
}

// KardexResponse muestra + su historial completo en orden de ledger.
// Consistent indica que reproducir los movimientos desde 0 da la cantidad actual.
type KardexResponse struct {
	Sample           SampleResponse     `json:"muestra"`
	Movements        []MovementResponse `json:"movimientos"`
	ReplayedQuantity int                `json:"cantidad_calculada"`
	Consistent       bool               `json:"consistente"`
}
