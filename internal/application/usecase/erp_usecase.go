package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
)

const (
	erpCallTimeout  = 10 * time.Second
	erpDefaultLimit = 20
	erpMaxLimit     = 100
)

// ERPClient puerto hacia el ERP externo que expone el catálogo de productos.
type ERPClient interface {
	ListProducts(ctx context.Context, page, limit int) (*dto.ERPProductListResponse, error)
}

// ERPUseCase consulta el catálogo del ERP. Cada llamada tiene un timeout de 10 s
// para que una latencia externa no bloquee las goroutines del servidor.
type ERPUseCase struct {
	client ERPClient
}

// NewERPUseCase construye el caso de uso inyectando el cliente ERP.
func NewERPUseCase(client ERPClient) *ERPUseCase {
	return &ERPUseCase{client: client}
}

// ListProducts normaliza la paginación (page ≥ 1, 1 ≤ limit ≤ 100) y delega al cliente.
func (uc *ERPUseCase) ListProducts(ctx context.Context, page, limit int) (*dto.ERPProductListResponse, error) {
	if uc.client == nil {
		return nil, fmt.Errorf("erp: %w", domain.ErrRemoteUnavailable)
	}
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = erpDefaultLimit
	}
	if limit > erpMaxLimit {
		limit = erpMaxLimit
	}

	ctx, cancel := context.WithTimeout(ctx, erpCallTimeout)
	defer cancel()

	out, err := uc.client.ListProducts(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("erp: listar productos: %w", err)
	}
	if out == nil {
		return &dto.ERPProductListResponse{Items: []dto.ERPProductDTO{}, Page: page, Limit: limit}, nil
	}
	if out.Items == nil {
		out.Items = []dto.ERPProductDTO{}
	}
	return out, nil
}
