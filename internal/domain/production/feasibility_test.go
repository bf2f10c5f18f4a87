package production_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/production"
)

func bomAB() []entity.BOMLine {
	return []entity.BOMLine{
		{FinishedProductID: "fp", ComponentID: "compA", QuantityPerUnit: 2, Process: "corte"},
		{FinishedProductID: "fp", ComponentID: "compB", QuantityPerUnit: 3, Process: "ensamble"},
	}
}

func TestAnalyze_MinimoEntreLineas(t *testing.T) {
	res := production.Analyze(bomAB(), map[string]int{"compA": 10, "compB": 9})
	assert.Equal(t, 3, res.MaxProducible)
	assert.Empty(t, res.Shortages)
}

func TestAnalyze_BOMVacioNoEsFabricable(t *testing.T) {
	res := production.Analyze(nil, map[string]int{"compA": 100})
	assert.Equal(t, 0, res.MaxProducible)
}

func TestAnalyze_ComponenteAusenteCuentaComoCero(t *testing.T) {
	res := production.Analyze(bomAB(), map[string]int{"compA": 10})
	assert.Equal(t, 0, res.MaxProducible)
}

func TestAnalyze_EsPuraEIdempotente(t *testing.T) {
	onHand := map[string]int{"compA": 7, "compB": 20}
	first := production.AnalyzeFor(bomAB(), onHand, 4)
	second := production.AnalyzeFor(bomAB(), onHand, 4)
	assert.Equal(t, first, second)
	assert.Equal(t, map[string]int{"compA": 7, "compB": 20}, onHand, "no debe mutar el stock recibido")
}

func TestMaxProducible_PropiedadFloorMinimo(t *testing.T) {
	cases := []struct {
		name   string
		bom    []entity.BOMLine
		onHand map[string]int
		want   int
	}{
		{"una línea exacta", []entity.BOMLine{{ComponentID: "a", QuantityPerUnit: 5}}, map[string]int{"a": 25}, 5},
		{"una línea con resto", []entity.BOMLine{{ComponentID: "a", QuantityPerUnit: 4}}, map[string]int{"a": 9}, 2},
		{"tres líneas", []entity.BOMLine{
			{ComponentID: "a", QuantityPerUnit: 1},
			{ComponentID: "b", QuantityPerUnit: 2},
			{ComponentID: "c", QuantityPerUnit: 7},
		}, map[string]int{"a": 100, "b": 11, "c": 70}, 5},
		{"stock menor que la receta", []entity.BOMLine{{ComponentID: "a", QuantityPerUnit: 3}}, map[string]int{"a": 2}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, production.MaxProducible(tc.bom, tc.onHand))
		})
	}
}

func TestShortages_SoloComponenteFaltante(t *testing.T) {
	short := production.Shortages(bomAB(), map[string]int{"compA": 10, "compB": 9}, 5)
	require.Len(t, short, 1)
	assert.Equal(t, production.Shortage{ComponentID: "compB", Needed: 15, Available: 9}, short[0])
	assert.Equal(t, 6, short[0].Missing())
}

func TestShortages_RespetaOrdenDelBOM(t *testing.T) {
	short := production.Shortages(bomAB(), map[string]int{}, 1)
	require.Len(t, short, 2)
	assert.Equal(t, "compA", short[0].ComponentID)
	assert.Equal(t, "compB", short[1].ComponentID)
}

func TestShortages_StockNegativoCuentaComoCero(t *testing.T) {
	onHand := map[string]int{"compA": -4, "compB": 9}
	res := production.AnalyzeFor(bomAB(), onHand, 1)
	assert.Equal(t, 0, res.MaxProducible)
	require.Len(t, res.Shortages, 1)
	assert.Equal(t, production.Shortage{ComponentID: "compA", Needed: 2, Available: 0}, res.Shortages[0])

	_, err := production.PlanConsumption(bomAB(), onHand, 1)
	var se *production.ShortageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, res.Shortages, se.Shortages)
}

func TestPlanConsumption_DescuentaTodasLasLineas(t *testing.T) {
	plan, err := production.PlanConsumption(bomAB(), map[string]int{"compA": 10, "compB": 9}, 3)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"compA": 4, "compB": 0}, plan)
}

func TestPlanConsumption_TodoONada(t *testing.T) {
	onHand := map[string]int{"compA": 10, "compB": 9}
	plan, err := production.PlanConsumption(bomAB(), onHand, 4)
	require.Error(t, err)
	assert.Nil(t, plan, "no debe devolver plan parcial")
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var se *production.ShortageError
	require.True(t, errors.As(err, &se))
	require.Len(t, se.Shortages, 1)
	assert.Equal(t, "compB", se.Shortages[0].ComponentID)
	assert.Equal(t, 12, se.Shortages[0].Needed)
	assert.Equal(t, map[string]int{"compA": 10, "compB": 9}, onHand)
}

func TestPlanConsumption_BOMVacio(t *testing.T) {
	_, err := production.PlanConsumption(nil, map[string]int{}, 1)
	assert.ErrorIs(t, err, domain.ErrUnknownProduct)
}

func TestValidateBOM(t *testing.T) {
	assert.NoError(t, production.ValidateBOM(bomAB()))

	err := production.ValidateBOM([]entity.BOMLine{{ComponentID: "a", QuantityPerUnit: 0}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = production.ValidateBOM([]entity.BOMLine{
		{ComponentID: "a", QuantityPerUnit: 1},
		{ComponentID: "a", QuantityPerUnit: 2},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	err = production.ValidateBOM([]entity.BOMLine{{QuantityPerUnit: 1}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = production.ValidateBOM([]entity.BOMLine{{ComponentID: "a", QuantityPerUnit: production.MaxQuantity + 1}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
