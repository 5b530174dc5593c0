package dto

import "time"

// CreateTransferRequest body para POST /api/traslados.
type CreateTransferRequest struct {
	OriginSampleID       string `json:"muestra_origen_id"`
	Quantity             int    `json:"cantidad_trasladada"`
	DestinationCountryID string `json:"pais_destino_id"`
	Reason               string `json:"motivo"`
	Comments             string `json:"comentarios_traslado,omitempty"`
}

// ResolveTransferRequest body para PUT /api/traslados/:id.
// Los campos de destino son obligatorios solo si estado = COMPLETADO.
type ResolveTransferRequest struct {
	State                    string `json:"estado"`
	Comments                 string `json:"comentarios_traslado,omitempty"`
	DestinationWarehouseID   string `json:"bodega_destino_id,omitempty"`
	DestinationLocationID    string `json:"ubicacion_destino_id,omitempty"`
	DestinationResponsibleID string `json:"responsable_destino_id,omitempty"`
}

// TransferListQuery filtros de GET /api/traslados.
type TransferListQuery struct {
	PageRequest
	State          string `query:"estado"`
	OriginSampleID string `query:"muestra_origen_id"`
}

// TransferResponse representación pública de un traslado.
type TransferResponse struct {
	ID                   string          `json:"id"`
	Code                 string          `json:"codigo"`
	OriginSampleID       string          `json:"muestra_origen_id"`
	OriginCountryID      string          `json:"pais_origen_id,omitempty"`
	DestinationSampleID  string          `json:"muestra_destino_id,omitempty"`
	Quantity             int             `json:"cantidad_trasladada"`
	DestinationCountryID string          `json:"pais_destino_id"`
	Reason               string          `json:"motivo"`
	Comments             string          `json:"comentarios_traslado,omitempty"`
	State                string          `json:"estado"`
	SentAt               time.Time       `json:"fecha_envio"`
	ReceivedAt           *time.Time      `json:"fecha_recepcion,omitempty"`
	OriginUserID         string          `json:"usuario_origen_id"`
	DestinationUserID    string          `json:"usuario_destino_id,omitempty"`
	DestinationSample    *SampleResponse `json:"muestra_destino,omitempty"`
}
