package inventory

import (
	"github.com/jhoicas/Muestras-api/internal/application/dto"
	"github.com/jhoicas/Muestras-api/internal/domain/entity"
)

func toSampleResponse(s *entity.Sample) *dto.SampleResponse {
	if s == nil {
		return nil
	}
	out := &dto.SampleResponse{
		ID:            s.ID,
		Code:          s.Code,
		Material:      s.Material,
		Lot:           s.Lot,
		Quantity:      s.Quantity,
		UnitWeight:    s.UnitWeight,
		Unit:          s.Unit,
		TotalWeight:   s.TotalWeight,
		Comments:      s.Comments,
		RegisteredAt:  s.RegisteredAt,
		CountryID:     s.CountryID,
		CategoryID:    s.CategoryID,
		SupplierID:    s.SupplierID,
		WarehouseID:   s.WarehouseID,
		LocationID:    s.LocationID,
		ResponsibleID: s.ResponsibleID,
	}
	if s.ExpiryDate != nil {
		d := s.ExpiryDate.Format(dto.DateLayout)
		out.ExpiryDate = &d
	}
	return out
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:             m.ID,
		Seq:            m.Seq,
		SampleID:       m.SampleID,
		Type:           m.Type,
		QuantityMoved:  m.QuantityMoved,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
		Reason:         m.Reason,
		Comments:       m.Comments,
		Date:           m.Date,
		UserID:         m.UserID,
		TransferID:     m.TransferID,
		TransferCode:   m.TransferCode,
	}
}

func toTransferResponse(t *entity.Transfer, dest *entity.Sample) *dto.TransferResponse {
	if t == nil {
		return nil
	}
	return &dto.TransferResponse{
		ID:                   t.ID,
		Code:                 t.Code,
		OriginSampleID:       t.OriginSampleID,
		OriginCountryID:      t.OriginCountryID,
		DestinationSampleID:  t.DestinationSampleID,
		Quantity:             t.Quantity,
		DestinationCountryID: t.DestinationCountryID,
		Reason:               t.Reason,
		Comments:             t.Comments,
		State:                t.State,
		SentAt:               t.SentAt,
		ReceivedAt:           t.ReceivedAt,
		OriginUserID:         t.OriginUserID,
		DestinationUserID:    t.DestinationUserID,
		DestinationSample:    toSampleResponse(dest),
	}
}
