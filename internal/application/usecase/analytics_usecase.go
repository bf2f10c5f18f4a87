package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

const (
	defaultTopN     = 20
	maxTopN         = 200
	paretoThreshold = 80 // el ~20% de los componentes concentra ~80% del costo consumido
)

var (
	hundred  = decimal.NewFromInt(100)
	pareto80 = decimal.NewFromInt(paretoThreshold)
)

// AnalyticsUseCase reporte de consumo de componentes con ranking Pareto por costo.
type AnalyticsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewAnalyticsUseCase construye el caso de uso.
func NewAnalyticsUseCase(analyticsRepo repository.AnalyticsRepository) *AnalyticsUseCase {
	return &AnalyticsUseCase{analyticsRepo: analyticsRepo}
}

// GetConsumptionReport genera el ranking de consumo para un período.
func (uc *AnalyticsUseCase) GetConsumptionReport(ctx context.Context, companyID string, req dto.ConsumptionReportRequest) (*dto.ConsumptionReportDTO, error) {
	startDate, endDate, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	topN := req.TopN
	if topN <= 0 {
		topN = defaultTopN
	}
	if topN > maxTopN {
		topN = maxTopN
	}

	rows, err := uc.analyticsRepo.GetConsumption(ctx, companyID, startDate, endDate, topN)
	if err != nil {
		return nil, fmt.Errorf("analytics: consumo: %w", err)
	}
	ranking, total := buildConsumptionRanking(rows)

	pareto := []string{}
	for _, r := range ranking {
		if r.IsTopPareto {
			pareto = append(pareto, r.SKU)
		}
	}
	return &dto.ConsumptionReportDTO{
		Period: dto.PeriodDTO{
			StartDate: startDate.Format("2006-01-02"),
			EndDate:   endDate.Format("2006-01-02"),
		},
		TotalCost:  total.Round(2),
		Ranking:    ranking,
		ParetoSKUs: pareto,
	}, nil
}

// buildConsumptionRanking asigna rank, % del costo y acumulado. IsTopPareto es true mientras el
// acumulado no supere el 80% (el primero siempre cuenta).
func buildConsumptionRanking(rows []repository.ConsumptionResult) ([]dto.ConsumptionRankingDTO, decimal.Decimal) {
	var total decimal.Decimal
	for _, r := range rows {
		total = total.Add(r.TotalCost)
	}
	ranking := make([]dto.ConsumptionRankingDTO, 0, len(rows))
	var cumulative decimal.Decimal
	for i, r := range rows {
		pct := decimal.Zero
		if total.IsPositive() {
			pct = r.TotalCost.Div(total).Mul(hundred).Round(2)
		}
		cumulative = cumulative.Add(pct)
		ranking = append(ranking, dto.ConsumptionRankingDTO{
			Rank:              i + 1,
			ProductID:         r.ProductID,
			SKU:               r.SKU,
			ProductName:       r.ProductName,
			Units:             r.Units,
			TotalCost:         r.TotalCost.Round(2),
			CostPct:           pct,
			CumulativeCostPct: cumulative.Round(2),
			IsTopPareto:       cumulative.LessThanOrEqual(pareto80) || i == 0,
		})
	}
	return ranking, total
}

// parsePeriod convierte los strings de fecha en time.Time; aplica valores por defecto si están vacíos.
func parsePeriod(startStr, endStr string) (start, end time.Time, err error) {
	now := time.Now()

	if endStr == "" {
		end = now
	} else {
		end, err = time.ParseInLocation("2006-01-02", endStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: end_date inválido", domain.ErrInvalidInput)
		}
		end = end.Add(24*time.Hour - time.Second) // inclusive hasta el final del día
	}

	if startStr == "" {
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	} else {
		start, err = time.ParseInLocation("2006-01-02", startStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date inválido", domain.ErrInvalidInput)
		}
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date no puede ser posterior a end_date", domain.ErrInvalidInput)
	}
	return start, end, nil
}
