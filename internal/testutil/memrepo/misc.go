package memrepo

import (
	"context"
	"sort"

	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var (
	_ repository.AlertRepository    = (*Alerts)(nil)
	_ repository.SettingsRepository = (*Settings)(nil)
	_ repository.UserRepository     = (*Users)(nil)
	_ repository.CompanyRepository  = (*Companies)(nil)
)

// Alerts alertas en memoria (orden de creación).
type Alerts struct {
	List []*entity.Alert
}

func (m *Alerts) Create(_ context.Context, a *entity.Alert) error {
	cp := *a
	m.List = append(m.List, &cp)
	return nil
}

func (m *Alerts) HasOpen(_ context.Context, companyID, alertType, productID string) (bool, error) {
	for _, a := range m.List {
		if a.CompanyID == companyID && a.Type == alertType && a.ProductID == productID && !a.Read {
			return true, nil
		}
	}
	return false, nil
}

func (m *Alerts) ListByCompany(_ context.Context, companyID string, unreadOnly bool, limit, offset int) ([]*entity.Alert, error) {
	var out []*entity.Alert
	for i := len(m.List) - 1; i >= 0; i-- {
		a := m.List[i]
		if a.CompanyID == companyID && (!unreadOnly || !a.Read) {
			cp := *a
			out = append(out, &cp)
		}
	}
	return page(out, limit, offset), nil
}

func (m *Alerts) MarkRead(_ context.Context, companyID, id string) error {
	for _, a := range m.List {
		if a.ID == id && a.CompanyID == companyID {
			a.Read = true
			return nil
		}
	}
	return domain.ErrNotFound
}

// Settings preferencias en memoria.
type Settings struct {
	ByCompany map[string]*entity.Settings
}

// NewSettings crea el repositorio vacío.
func NewSettings() *Settings {
	return &Settings{ByCompany: map[string]*entity.Settings{}}
}

func (m *Settings) Get(_ context.Context, companyID string) (*entity.Settings, error) {
	s, ok := m.ByCompany[companyID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *Settings) Save(_ context.Context, s *entity.Settings) error {
	cp := *s
	m.ByCompany[s.CompanyID] = &cp
	return nil
}

// Users usuarios en memoria.
type Users struct {
	ByID map[string]*entity.User
}

// NewUsers crea el repositorio vacío.
func NewUsers() *Users {
	return &Users{ByID: map[string]*entity.User{}}
}

func (m *Users) Create(_ context.Context, u *entity.User) error {
	cp := *u
	m.ByID[u.ID] = &cp
	return nil
}

func (m *Users) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := m.ByID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *Users) GetByEmailAndCompany(_ context.Context, email, companyID string) (*entity.User, error) {
	for _, u := range m.ByID {
		if u.Email == email && u.CompanyID == companyID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *Users) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	var ids []string
	for id, u := range m.ByID {
		if u.Email == email {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}
	sort.Strings(ids)
	cp := *m.ByID[ids[0]]
	return &cp, nil
}

func (m *Users) CountByCompany(_ context.Context, companyID string) (int, error) {
	n := 0
	for _, u := range m.ByID {
		if u.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

// Companies empresas en memoria.
type Companies struct {
	ByID map[string]*entity.Company
}

// NewCompanies crea el repositorio con las empresas dadas.
func NewCompanies(cs ...*entity.Company) *Companies {
	m := &Companies{ByID: map[string]*entity.Company{}}
	for _, c := range cs {
		m.ByID[c.ID] = c
	}
	return m
}

func (m *Companies) Create(_ context.Context, c *entity.Company) error {
	for _, other := range m.ByID {
		if other.TaxID == c.TaxID {
			return domain.ErrDuplicate
		}
	}
	cp := *c
	m.ByID[c.ID] = &cp
	return nil
}

func (m *Companies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	c, ok := m.ByID[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *Companies) GetByTaxID(_ context.Context, taxID string) (*entity.Company, error) {
	for _, c := range m.ByID {
		if c.TaxID == taxID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}
