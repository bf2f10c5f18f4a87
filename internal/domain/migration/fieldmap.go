// Package migration define el contrato de datos entre el snapshot local heredado
// (registros JSON sin tipado estricto) y el esquema remoto de productos.
// Toda la correspondencia de nombres de campo vive en FieldTable; no hay
// equivalencias dispersas en otros paquetes.
package migration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// LegacyRecord un producto tal como quedó guardado en el almacenamiento local.
type LegacyRecord map[string]any

// FieldKind tipo esperado del valor en el esquema remoto.
type FieldKind int

const (
	KindString FieldKind = iota
	KindInt
	KindDecimal
)

// FieldMapping columna remota y los nombres heredados aceptados para ella.
type FieldMapping struct {
	Remote   string
	Legacy   []string
	Kind     FieldKind
	Required bool
}

// FieldTable tabla fija local → remoto.
var FieldTable = []FieldMapping{
	{Remote: "legacy_id", Legacy: []string{"id"}, Kind: KindString},
	{Remote: "name", Legacy: []string{"name", "nome"}, Kind: KindString, Required: true},
	{Remote: "sku", Legacy: []string{"code", "sku"}, Kind: KindString},
	{Remote: "category", Legacy: []string{"category"}, Kind: KindString},
	{Remote: "quantity", Legacy: []string{"quantity", "stock"}, Kind: KindInt},
	{Remote: "min_stock", Legacy: []string{"minStock", "min_stock"}, Kind: KindInt},
	{Remote: "purchase_price", Legacy: []string{"costPrice", "cost_price", "purchase_price"}, Kind: KindDecimal},
	{Remote: "sale_price", Legacy: []string{"salePrice", "sale_price", "price"}, Kind: KindDecimal},
	{Remote: "unit", Legacy: []string{"unit"}, Kind: KindString},
	{Remote: "description", Legacy: []string{"description"}, Kind: KindString},
	{Remote: "supplier_name", Legacy: []string{"supplier"}, Kind: KindString},
}

// DecodeSnapshot interpreta el blob local (arreglo JSON de objetos).
// Un blob vacío equivale a un snapshot sin registros.
func DecodeSnapshot(blob []byte) ([]LegacyRecord, error) {
	if len(bytes.TrimSpace(blob)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(blob))
	dec.UseNumber()
	var records []LegacyRecord
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: snapshot local inválido: %v", domain.ErrInvalidInput, err)
	}
	return records, nil
}

// foldKey normaliza un nombre de campo: plegado de mayúsculas sin guiones bajos,
// así "costPrice", "CostPrice" y "cost_price" coinciden.
func foldKey(c cases.Caser, k string) string {
	return strings.ReplaceAll(c.String(k), "_", "")
}

// normalize reindexa el registro por nombre remoto según FieldTable. Los alias se prueban
// en el orden de la tabla; para cada alias gana la clave idéntica y, si no existe, la
// primera en orden alfabético entre las que coinciden al plegar. El resultado no depende
// del orden de iteración del mapa.
func normalize(rec LegacyRecord) map[string]any {
	c := cases.Fold()
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	folded := make(map[string][]string, len(keys))
	for _, k := range keys {
		fk := foldKey(c, k)
		folded[fk] = append(folded[fk], k)
	}

	out := make(map[string]any, len(FieldTable))
	for _, f := range FieldTable {
		if v, ok := lookupAliases(rec, folded, c, f.Legacy); ok {
			out[f.Remote] = v
		}
	}
	return out
}

func lookupAliases(rec LegacyRecord, folded map[string][]string, c cases.Caser, aliases []string) (any, bool) {
	for _, alias := range aliases {
		if v, ok := rec[alias]; ok && v != nil {
			return v, true
		}
		for _, k := range folded[foldKey(c, alias)] {
			if v := rec[k]; v != nil {
				return v, true
			}
		}
	}
	return nil, false
}

// MapRecord convierte un registro heredado en un producto del esquema remoto.
// index es la posición en el snapshot (para generar un SKU si falta).
func MapRecord(companyID string, index int, rec LegacyRecord) (*entity.Product, error) {
	values := normalize(rec)

	strs := make(map[string]string)
	ints := make(map[string]int)
	decs := make(map[string]decimal.Decimal)
	for _, f := range FieldTable {
		raw, ok := values[f.Remote]
		if !ok {
			if f.Required {
				return nil, fmt.Errorf("campo %s requerido: %w", f.Remote, domain.ErrInvalidInput)
			}
			continue
		}
		switch f.Kind {
		case KindString:
			s, err := asString(raw)
			if err != nil {
				return nil, fmt.Errorf("campo %s: %w", f.Remote, err)
			}
			if f.Required && s == "" {
				return nil, fmt.Errorf("campo %s vacío: %w", f.Remote, domain.ErrInvalidInput)
			}
			strs[f.Remote] = s
		case KindInt:
			n, err := asInt(raw)
			if err != nil {
				return nil, fmt.Errorf("campo %s: %w", f.Remote, err)
			}
			ints[f.Remote] = n
		case KindDecimal:
			d, err := asDecimal(raw)
			if err != nil {
				return nil, fmt.Errorf("campo %s: %w", f.Remote, err)
			}
			decs[f.Remote] = d
		}
	}

	sku := strs["sku"]
	if sku == "" {
		if strs["legacy_id"] != "" {
			sku = "LEG-" + strs["legacy_id"]
		} else {
			sku = fmt.Sprintf("LEG-%04d", index+1)
		}
	}
	unit := strs["unit"]
	if unit == "" {
		unit = "un"
	}
	now := time.Now()
	return &entity.Product{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		LegacyID:      strs["legacy_id"],
		SKU:           sku,
		Name:          strs["name"],
		Description:   strs["description"],
		Category:      strs["category"],
		Unit:          unit,
		Quantity:      ints["quantity"],
		MinStock:      ints["min_stock"],
		PurchasePrice: decs["purchase_price"],
		SalePrice:     decs["sale_price"],
		SupplierName:  strs["supplier_name"],
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func asString(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(norm.NFC.String(t)), nil
	case json.Number:
		return t.String(), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(t), nil
	default:
		return "", fmt.Errorf("se esperaba texto, se recibió %T: %w", v, domain.ErrInvalidInput)
	}
}

func asDecimal(v any) (decimal.Decimal, error) {
	var d decimal.Decimal
	var err error
	switch t := v.(type) {
	case json.Number:
		d, err = decimal.NewFromString(t.String())
	case float64:
		d = decimal.NewFromFloat(t)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return decimal.Zero, nil
		}
		// Los registros viejos guardaban "12,50" cuando venían de un input de texto.
		if !strings.Contains(s, ".") {
			s = strings.ReplaceAll(s, ",", ".")
		}
		d, err = decimal.NewFromString(s)
	default:
		return decimal.Zero, fmt.Errorf("se esperaba número, se recibió %T: %w", v, domain.ErrInvalidInput)
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("número inválido: %w", domain.ErrInvalidInput)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("valor negativo %s: %w", d.String(), domain.ErrInvalidInput)
	}
	return d, nil
}

func asInt(v any) (int, error) {
	d, err := asDecimal(v)
	if err != nil {
		return 0, err
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("se esperaba entero, se recibió %s: %w", d.String(), domain.ErrInvalidInput)
	}
	n := d.IntPart()
	if n > math.MaxInt32 {
		return 0, fmt.Errorf("valor fuera de rango %d: %w", n, domain.ErrInvalidInput)
	}
	return int(n), nil
}
