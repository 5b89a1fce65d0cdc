package store

import (
	"errors"
	"strings"

	"kasapi/models"

	"gorm.io/gorm"
)

// DB is the Postgres-backed Store.
type DB struct {
	db *gorm.DB
}

func NewDB(db *gorm.DB) *DB {
	return &DB{db: db}
}

// translate maps gorm/driver errors onto the store sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if isUniqueConstraintError(err) {
		return ErrDuplicate
	}
	return err
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "already exists")
}

func (s *DB) CreateUser(u *models.User) error {
	return translate(s.db.Create(u).Error)
}

func (s *DB) UserByID(id uint) (*models.User, error) {
	var u models.User
	if err := s.db.Preload("DefaultCurrency").First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *DB) UserByEmail(email string) (*models.User, error) {
	var u models.User
	if err := s.db.Preload("DefaultCurrency").Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *DB) ListUsers() ([]models.User, error) {
	users := []models.User{}
	if err := s.db.Preload("DefaultCurrency").Order("id").Find(&users).Error; err != nil {
		return nil, translate(err)
	}
	return users, nil
}

func (s *DB) SetDefaultCurrency(userID, currencyID uint) (*models.User, error) {
	err := s.db.Model(&models.User{}).Where("id = ?", userID).Update("default_currency_id", currencyID).Error
	if err != nil {
		return nil, translate(err)
	}
	return s.UserByID(userID)
}

// DeleteUser removes the user's records and then the user in one transaction,
// so a failure midway leaves the rows intact.
func (s *DB) DeleteUser(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.Record{}).Error; err != nil {
			return translate(err)
		}
		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *DB) CreateCategory(ct *models.Category) error {
	return translate(s.db.Create(ct).Error)
}

func (s *DB) CategoryByID(id uint) (*models.Category, error) {
	var ct models.Category
	if err := s.db.First(&ct, id).Error; err != nil {
		return nil, translate(err)
	}
	return &ct, nil
}

func (s *DB) ListCategories() ([]models.Category, error) {
	cats := []models.Category{}
	if err := s.db.Order("id").Find(&cats).Error; err != nil {
		return nil, translate(err)
	}
	return cats, nil
}

func (s *DB) DeleteCategory(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&models.Record{}).Error; err != nil {
			return translate(err)
		}
		res := tx.Delete(&models.Category{}, id)
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *DB) CreateCurrency(cu *models.Currency) error {
	return translate(s.db.Create(cu).Error)
}

func (s *DB) CurrencyByID(id uint) (*models.Currency, error) {
	var cu models.Currency
	if err := s.db.First(&cu, id).Error; err != nil {
		return nil, translate(err)
	}
	return &cu, nil
}

func (s *DB) ListCurrencies() ([]models.Currency, error) {
	curs := []models.Currency{}
	if err := s.db.Order("id").Find(&curs).Error; err != nil {
		return nil, translate(err)
	}
	return curs, nil
}

// DeleteCurrency is the asymmetric case: deletion is blocked while any
// record references the currency.
func (s *DB) DeleteCurrency(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&models.Record{}).Where("currency_id = ?", id).Count(&cnt).Error; err != nil {
			return translate(err)
		}
		if cnt > 0 {
			return ErrCurrencyInUse
		}
		res := tx.Delete(&models.Currency{}, id)
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *DB) CreateRecord(r *models.Record) (*models.Record, error) {
	if err := s.db.Create(r).Error; err != nil {
		return nil, translate(err)
	}
	return s.RecordByID(r.ID)
}

func (s *DB) RecordByID(id uint) (*models.Record, error) {
	var r models.Record
	err := s.db.Preload("User").Preload("User.DefaultCurrency").
		Preload("Category").Preload("Currency").First(&r, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (s *DB) ListRecords(f RecordFilter) ([]models.Record, error) {
	q := s.db.Preload("User").Preload("Category").Preload("Currency").Order("id")
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	recs := []models.Record{}
	if err := q.Find(&recs).Error; err != nil {
		return nil, translate(err)
	}
	return recs, nil
}

func (s *DB) DeleteRecord(id uint) error {
	res := s.db.Delete(&models.Record{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *DB) StoreRefreshToken(rt *models.RefreshToken) error {
	return translate(s.db.Create(rt).Error)
}

func (s *DB) RefreshTokenByHash(hash string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	if err := s.db.Where("token_hash = ?", hash).First(&rt).Error; err != nil {
		return nil, translate(err)
	}
	return &rt, nil
}

func (s *DB) RevokeRefreshToken(id uint) error {
	res := s.db.Model(&models.RefreshToken{}).Where("id = ?", id).Update("revoked", true)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
