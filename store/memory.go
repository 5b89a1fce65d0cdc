package store

import (
	"sort"
	"sync"
	"time"

	"kasapi/models"
)

// Memory is an in-memory Store used by handler tests. It mirrors the
// relational semantics of the gorm implementation, including the
// cascade-on-user/category and restrict-on-currency delete rules.
type Memory struct {
	mu sync.Mutex

	users      map[uint]models.User
	categories map[uint]models.Category
	currencies map[uint]models.Currency
	records    map[uint]models.Record
	tokens     map[uint]models.RefreshToken

	nextUser     uint
	nextCategory uint
	nextCurrency uint
	nextRecord   uint
	nextToken    uint
}

func NewMemory() *Memory {
	return &Memory{
		users:      make(map[uint]models.User),
		categories: make(map[uint]models.Category),
		currencies: make(map[uint]models.Currency),
		records:    make(map[uint]models.Record),
		tokens:     make(map[uint]models.RefreshToken),
	}
}

func (m *Memory) CreateUser(u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.users {
		if other.Email == u.Email {
			return ErrDuplicate
		}
	}
	m.nextUser++
	u.ID = m.nextUser
	u.CreatedAt = time.Now()
	u.DefaultCurrency = nil
	m.users[u.ID] = *u
	return nil
}

func (m *Memory) userByID(id uint) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	if u.DefaultCurrencyID != nil {
		if cu, ok := m.currencies[*u.DefaultCurrencyID]; ok {
			u.DefaultCurrency = &cu
		}
	}
	return &u, nil
}

func (m *Memory) UserByID(id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.userByID(id)
}

func (m *Memory) UserByEmail(email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, u := range m.users {
		if u.Email == email {
			return m.userByID(id)
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) ListUsers() ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.User, 0, len(m.users))
	for id := range m.users {
		u, _ := m.userByID(id)
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) SetDefaultCurrency(userID, currencyID uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	cid := currencyID
	u.DefaultCurrencyID = &cid
	m.users[userID] = u
	return m.userByID(userID)
}

func (m *Memory) DeleteUser(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return ErrNotFound
	}
	for rid, r := range m.records {
		if r.UserID == id {
			delete(m.records, rid)
		}
	}
	delete(m.users, id)
	return nil
}

func (m *Memory) CreateCategory(ct *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextCategory++
	ct.ID = m.nextCategory
	ct.CreatedAt = time.Now()
	m.categories[ct.ID] = *ct
	return nil
}

func (m *Memory) CategoryByID(id uint) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ct, ok := m.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &ct, nil
}

func (m *Memory) ListCategories() ([]models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Category, 0, len(m.categories))
	for _, ct := range m.categories {
		out = append(out, ct)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) DeleteCategory(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[id]; !ok {
		return ErrNotFound
	}
	for rid, r := range m.records {
		if r.CategoryID == id {
			delete(m.records, rid)
		}
	}
	delete(m.categories, id)
	return nil
}

func (m *Memory) CreateCurrency(cu *models.Currency) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.currencies {
		if other.Code == cu.Code {
			return ErrDuplicate
		}
	}
	m.nextCurrency++
	cu.ID = m.nextCurrency
	cu.CreatedAt = time.Now()
	m.currencies[cu.ID] = *cu
	return nil
}

func (m *Memory) CurrencyByID(id uint) (*models.Currency, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cu, ok := m.currencies[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &cu, nil
}

func (m *Memory) ListCurrencies() ([]models.Currency, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Currency, 0, len(m.currencies))
	for _, cu := range m.currencies {
		out = append(out, cu)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) DeleteCurrency(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.currencies[id]; !ok {
		return ErrNotFound
	}
	for _, r := range m.records {
		if r.CurrencyID == id {
			return ErrCurrencyInUse
		}
	}
	delete(m.currencies, id)
	return nil
}

func (m *Memory) joinRecord(r models.Record) models.Record {
	if u, ok := m.users[r.UserID]; ok {
		r.User = &u
	}
	if ct, ok := m.categories[r.CategoryID]; ok {
		r.Category = &ct
	}
	if cu, ok := m.currencies[r.CurrencyID]; ok {
		r.Currency = &cu
	}
	return r
}

func (m *Memory) CreateRecord(r *models.Record) (*models.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextRecord++
	r.ID = m.nextRecord
	r.CreatedAt = time.Now()
	m.records[r.ID] = *r
	joined := m.joinRecord(m.records[r.ID])
	return &joined, nil
}

func (m *Memory) RecordByID(id uint) (*models.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	joined := m.joinRecord(r)
	return &joined, nil
}

func (m *Memory) ListRecords(f RecordFilter) ([]models.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Record{}
	for _, r := range m.records {
		if f.UserID != nil && r.UserID != *f.UserID {
			continue
		}
		if f.CategoryID != nil && r.CategoryID != *f.CategoryID {
			continue
		}
		out = append(out, m.joinRecord(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) DeleteRecord(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return ErrNotFound
	}
	delete(m.records, id)
	return nil
}

func (m *Memory) StoreRefreshToken(rt *models.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextToken++
	rt.ID = m.nextToken
	rt.CreatedAt = time.Now()
	m.tokens[rt.ID] = *rt
	return nil
}

func (m *Memory) RefreshTokenByHash(hash string) (*models.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rt := range m.tokens {
		if rt.TokenHash == hash {
			out := rt
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) RevokeRefreshToken(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rt, ok := m.tokens[id]
	if !ok {
		return ErrNotFound
	}
	rt.Revoked = true
	m.tokens[id] = rt
	return nil
}
