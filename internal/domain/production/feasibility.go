// Package production contiene el cálculo de factibilidad de producción a partir de la
// lista de materiales (BOM) y el stock de componentes. Funciones puras: nunca modifican
// las cantidades recibidas.
package production

import (
	"fmt"
	"math"
	"strings"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// MaxQuantity tope de cantidades de orden y por unidad (columna INTEGER). Con ambos
// factores acotados quantityPerUnit*q no desborda int.
const MaxQuantity = math.MaxInt32

// Shortage componente cuyo stock no alcanza para la cantidad solicitada.
type Shortage struct {
	ComponentID string `json:"component_id"`
	Needed      int    `json:"needed"`
	Available   int    `json:"available"`
}

// Missing unidades que faltan del componente.
func (s Shortage) Missing() int {
	return s.Needed - s.Available
}

// FeasibilityResult resultado derivado; se recalcula en cada consulta y nunca se persiste.
type FeasibilityResult struct {
	MaxProducible int        `json:"max_producible"`
	Shortages     []Shortage `json:"shortages"`
}

// Feasible indica si no hay faltantes para la cantidad evaluada.
func (r FeasibilityResult) Feasible() bool {
	return len(r.Shortages) == 0
}

// Analyze calcula la máxima cantidad fabricable: el mínimo de floor(disponible/requerido)
// sobre todas las líneas. Un BOM vacío no es fabricable (0). Componentes ausentes del mapa
// cuentan como stock 0.
func Analyze(bom []entity.BOMLine, onHand map[string]int) FeasibilityResult {
	return FeasibilityResult{
		MaxProducible: MaxProducible(bom, onHand),
		Shortages:     []Shortage{},
	}
}

// AnalyzeFor combina Analyze con los faltantes para producir q unidades.
func AnalyzeFor(bom []entity.BOMLine, onHand map[string]int, q int) FeasibilityResult {
	return FeasibilityResult{
		MaxProducible: MaxProducible(bom, onHand),
		Shortages:     Shortages(bom, onHand, q),
	}
}

// MaxProducible ver Analyze.
func MaxProducible(bom []entity.BOMLine, onHand map[string]int) int {
	if len(bom) == 0 {
		return 0
	}
	maxUnits := -1
	for _, line := range bom {
		if line.QuantityPerUnit <= 0 {
			return 0
		}
		units := availableOf(onHand, line.ComponentID) / line.QuantityPerUnit
		if maxUnits < 0 || units < maxUnits {
			maxUnits = units
		}
	}
	return maxUnits
}

// Shortages devuelve, en el orden del BOM, las líneas donde quantityPerUnit*q supera el stock.
// No reordena ni agrupa componentes repetidos.
func Shortages(bom []entity.BOMLine, onHand map[string]int, q int) []Shortage {
	out := []Shortage{}
	if q <= 0 {
		return out
	}
	for _, line := range bom {
		needed := line.QuantityPerUnit * q
		available := availableOf(onHand, line.ComponentID)
		if needed > available {
			out = append(out, Shortage{ComponentID: line.ComponentID, Needed: needed, Available: available})
		}
	}
	return out
}

// ShortageError acompaña a domain.ErrInsufficientStock con el detalle de faltantes.
type ShortageError struct {
	Shortages []Shortage
}

func (e *ShortageError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("%s (necesita %d, hay %d)", s.ComponentID, s.Needed, s.Available))
	}
	return fmt.Sprintf("%s: %s", domain.ErrInsufficientStock.Error(), strings.Join(parts, ", "))
}

// Unwrap permite errors.Is(err, domain.ErrInsufficientStock).
func (e *ShortageError) Unwrap() error {
	return domain.ErrInsufficientStock
}

// PlanConsumption calcula las nuevas cantidades de cada componente tras fabricar q unidades.
// Si algún componente quedaría negativo devuelve *ShortageError y ningún plan: la operación
// es todo o nada. Líneas repetidas del mismo componente se acumulan.
func PlanConsumption(bom []entity.BOMLine, onHand map[string]int, q int) (map[string]int, error) {
	if q <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if len(bom) == 0 {
		return nil, domain.ErrUnknownProduct
	}
	plan := make(map[string]int, len(bom))
	for _, line := range bom {
		if _, ok := plan[line.ComponentID]; !ok {
			plan[line.ComponentID] = availableOf(onHand, line.ComponentID)
		}
		plan[line.ComponentID] -= line.QuantityPerUnit * q
	}
	var short []Shortage
	for _, line := range bom {
		if plan[line.ComponentID] < 0 {
			short = append(short, Shortage{
				ComponentID: line.ComponentID,
				Needed:      availableOf(onHand, line.ComponentID) - plan[line.ComponentID],
				Available:   availableOf(onHand, line.ComponentID),
			})
		}
	}
	if len(short) > 0 {
		return nil, &ShortageError{Shortages: dedupByComponent(short)}
	}
	return plan, nil
}

// availableOf stock utilizable: ausente o negativo cuenta como 0.
func availableOf(onHand map[string]int, componentID string) int {
	if v := onHand[componentID]; v > 0 {
		return v
	}
	return 0
}

func dedupByComponent(in []Shortage) []Shortage {
	seen := make(map[string]bool, len(in))
	out := make([]Shortage, 0, len(in))
	for _, s := range in {
		if seen[s.ComponentID] {
			continue
		}
		seen[s.ComponentID] = true
		out = append(out, s)
	}
	return out
}

// ValidateBOM verifica las invariantes de una receta: cantidad por unidad en rango,
// componente informado y sin componentes repetidos.
func ValidateBOM(lines []entity.BOMLine) error {
	seen := make(map[string]bool, len(lines))
	for i, line := range lines {
		if line.ComponentID == "" {
			return fmt.Errorf("línea %d: componente vacío: %w", i+1, domain.ErrInvalidInput)
		}
		if line.QuantityPerUnit <= 0 || line.QuantityPerUnit > MaxQuantity {
			return fmt.Errorf("línea %d: cantidad por unidad fuera de rango (1..%d), se recibió %d: %w", i+1, MaxQuantity, line.QuantityPerUnit, domain.ErrInvalidInput)
		}
		if seen[line.ComponentID] {
			return fmt.Errorf("línea %d: componente %s repetido: %w", i+1, line.ComponentID, domain.ErrDuplicate)
		}
		seen[line.ComponentID] = true
	}
	return nil
}
