package store

import (
	"errors"

	"kasapi/models"
)

// Sentinel errors shared by both implementations so handlers can map them
// to HTTP statuses without knowing which backend is in use.
var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicate     = errors.New("duplicate")
	ErrCurrencyInUse = errors.New("currency is referenced by records")
)

// RecordFilter narrows ListRecords. Nil fields are ignored; set fields are ANDed.
type RecordFilter struct {
	UserID     *uint
	CategoryID *uint
}

// Store is the persistence boundary for the API. Handlers depend on this
// interface only; the Postgres implementation lives in gorm.go and an
// in-memory fake for tests in memory.go.
type Store interface {
	CreateUser(u *models.User) error
	UserByID(id uint) (*models.User, error)
	UserByEmail(email string) (*models.User, error)
	ListUsers() ([]models.User, error)
	SetDefaultCurrency(userID, currencyID uint) (*models.User, error)
	DeleteUser(id uint) error

	CreateCategory(ct *models.Category) error
	CategoryByID(id uint) (*models.Category, error)
	ListCategories() ([]models.Category, error)
	DeleteCategory(id uint) error

	CreateCurrency(cu *models.Currency) error
	CurrencyByID(id uint) (*models.Currency, error)
	ListCurrencies() ([]models.Currency, error)
	DeleteCurrency(id uint) error

	CreateRecord(r *models.Record) (*models.Record, error)
	RecordByID(id uint) (*models.Record, error)
	ListRecords(f RecordFilter) ([]models.Record, error)
	DeleteRecord(id uint) error

	StoreRefreshToken(rt *models.RefreshToken) error
	RefreshTokenByHash(hash string) (*models.RefreshToken, error)
	RevokeRefreshToken(id uint) error
}
