package entity

import "time"

// Estados del traslado. ENVIADO es el único estado no terminal.
const (
	TransferStateEnviado    = "ENVIADO"
	TransferStateCompletado = "COMPLETADO"
	TransferStateRechazado  = "RECHAZADO"
)

// Transfer solicitud de traslado de parte de la cantidad de una muestra hacia otro país.
// Mientras está ENVIADO la cantidad ya fue descontada del origen y está "en tránsito".
type Transfer struct {
	ID                   string
	Code                 string
	OriginSampleID       string
	DestinationSampleID  string // se llena al completar
	Quantity             int
	DestinationCountryID string
	Reason               string
	Comments             string
	State                string
	SentAt               time.Time
	ReceivedAt           *time.Time
	OriginUserID         string
	DestinationUserID    string

	// Campos de lectura (no persistidos en traslados).
	OriginCountryID string
}

// IsTerminal indica si el traslado ya fue resuelto.
func (t Transfer) IsTerminal() bool {
	return t.State == TransferStateCompletado || t.State == TransferStateRechazado
}
