package inventory

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso RegisterMovement(ctx, MovementInputDTO).
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, companyID, userID string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	input := MovementInputDTO{
		CompanyID: companyID,
		UserID:    userID,
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		UnitCost:  in.UnitCost,
	}
	mov, err := uc.RegisterMovement(ctx, input)
	if err != nil {
		return nil, err
	}
	return ToMovementResponse(mov), nil
}

// ToMovementResponse convierte un movimiento al DTO de salida.
func ToMovementResponse(m *entity.InventoryMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		ProductID:     m.ProductID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		UnitCost:      m.UnitCost,
		TotalCost:     m.TotalCost,
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
	}
}
