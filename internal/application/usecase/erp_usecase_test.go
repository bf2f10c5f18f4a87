package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
)

type fakeERP struct {
	page, limit int
	deadline    time.Time
	out         *dto.ERPProductListResponse
	err         error
}

func (f *fakeERP) ListProducts(ctx context.Context, page, limit int) (*dto.ERPProductListResponse, error) {
	f.page, f.limit = page, limit
	f.deadline, _ = ctx.Deadline()
	return f.out, f.err
}

func TestERPUseCase_NormalizesPaging(t *testing.T) {
	erp := &fakeERP{out: &dto.ERPProductListResponse{}}
	uc := NewERPUseCase(erp)

	out, err := uc.ListProducts(context.Background(), 0, 500)
	require.NoError(t, err)
	assert.Equal(t, 1, erp.page)
	assert.Equal(t, erpMaxLimit, erp.limit)
	assert.NotNil(t, out.Items)
	assert.WithinDuration(t, time.Now().Add(erpCallTimeout), erp.deadline, time.Second)
}

func TestERPUseCase_Errors(t *testing.T) {
	boom := errors.New("502")
	_, err := NewERPUseCase(&fakeERP{err: boom}).ListProducts(context.Background(), 1, 10)
	assert.ErrorIs(t, err, boom)

	_, err = NewERPUseCase(nil).ListProducts(context.Background(), 1, 10)
	assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
}
