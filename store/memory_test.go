package store

import (
	"testing"

	"kasapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T) (*Memory, *models.User, *models.Category, *models.Currency) {
	t.Helper()
	m := NewMemory()
	u := &models.User{Name: "Alice", Email: "alice@example.com", PasswordHash: []byte("x")}
	require.NoError(t, m.CreateUser(u))
	ct := &models.Category{Name: "groceries"}
	require.NoError(t, m.CreateCategory(ct))
	cu := &models.Currency{Code: "USD", Name: "US Dollar"}
	require.NoError(t, m.CreateCurrency(cu))
	return m, u, ct, cu
}

func TestMemoryIDsAreMonotonic(t *testing.T) {
	m, u, ct, cu := seed(t)
	var last uint
	for i := 0; i < 3; i++ {
		r, err := m.CreateRecord(&models.Record{UserID: u.ID, CategoryID: ct.ID, CurrencyID: cu.ID, Amount: 1})
		require.NoError(t, err)
		assert.Greater(t, r.ID, last)
		last = r.ID
	}
}

func TestMemoryDuplicateEmail(t *testing.T) {
	m, _, _, _ := seed(t)
	err := m.CreateUser(&models.User{Name: "A2", Email: "alice@example.com", PasswordHash: []byte("x")})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestMemoryDuplicateCurrencyCode(t *testing.T) {
	m, _, _, _ := seed(t)
	err := m.CreateCurrency(&models.Currency{Code: "USD", Name: "again"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestMemoryDeleteUserCascades(t *testing.T) {
	m, u, ct, cu := seed(t)
	other := &models.User{Name: "Bob", Email: "bob@example.com", PasswordHash: []byte("x")}
	require.NoError(t, m.CreateUser(other))

	_, err := m.CreateRecord(&models.Record{UserID: u.ID, CategoryID: ct.ID, CurrencyID: cu.ID, Amount: 1})
	require.NoError(t, err)
	kept, err := m.CreateRecord(&models.Record{UserID: other.ID, CategoryID: ct.ID, CurrencyID: cu.ID, Amount: 2})
	require.NoError(t, err)

	require.NoError(t, m.DeleteUser(u.ID))
	_, err = m.UserByID(u.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	mine, err := m.ListRecords(RecordFilter{UserID: &u.ID})
	require.NoError(t, err)
	assert.Empty(t, mine)
	_, err = m.RecordByID(kept.ID)
	assert.NoError(t, err, "other users' records must survive the cascade")
}

func TestMemoryDeleteCategoryCascades(t *testing.T) {
	m, u, ct, cu := seed(t)
	_, err := m.CreateRecord(&models.Record{UserID: u.ID, CategoryID: ct.ID, CurrencyID: cu.ID, Amount: 1})
	require.NoError(t, err)

	require.NoError(t, m.DeleteCategory(ct.ID))
	recs, err := m.ListRecords(RecordFilter{CategoryID: &ct.ID})
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestMemoryDeleteCurrencyRestricted(t *testing.T) {
	m, u, ct, cu := seed(t)
	r, err := m.CreateRecord(&models.Record{UserID: u.ID, CategoryID: ct.ID, CurrencyID: cu.ID, Amount: 1})
	require.NoError(t, err)

	assert.ErrorIs(t, m.DeleteCurrency(cu.ID), ErrCurrencyInUse)
	_, err = m.CurrencyByID(cu.ID)
	assert.NoError(t, err)

	require.NoError(t, m.DeleteRecord(r.ID))
	assert.NoError(t, m.DeleteCurrency(cu.ID))
	_, err = m.CurrencyByID(cu.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRecordFilterAND(t *testing.T) {
	m, u, ct, cu := seed(t)
	rent := &models.Category{Name: "rent"}
	require.NoError(t, m.CreateCategory(rent))

	_, err := m.CreateRecord(&models.Record{UserID: u.ID, CategoryID: ct.ID, CurrencyID: cu.ID, Amount: 1})
	require.NoError(t, err)
	_, err = m.CreateRecord(&models.Record{UserID: u.ID, CategoryID: rent.ID, CurrencyID: cu.ID, Amount: 2})
	require.NoError(t, err)

	both, err := m.ListRecords(RecordFilter{UserID: &u.ID})
	require.NoError(t, err)
	assert.Len(t, both, 2)

	one, err := m.ListRecords(RecordFilter{UserID: &u.ID, CategoryID: &rent.ID})
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, float64(2), one[0].Amount)
}

func TestMemoryJoinedReads(t *testing.T) {
	m, u, ct, cu := seed(t)
	created, err := m.CreateRecord(&models.Record{UserID: u.ID, CategoryID: ct.ID, CurrencyID: cu.ID, Amount: 1})
	require.NoError(t, err)

	got, err := m.RecordByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.User)
	require.NotNil(t, got.Category)
	require.NotNil(t, got.Currency)
	assert.Equal(t, "alice@example.com", got.User.Email)
	assert.Equal(t, "USD", got.Currency.Code)
}

func TestMemorySetDefaultCurrencyJoins(t *testing.T) {
	m, u, _, cu := seed(t)
	updated, err := m.SetDefaultCurrency(u.ID, cu.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.DefaultCurrencyID)
	assert.Equal(t, cu.ID, *updated.DefaultCurrencyID)
	require.NotNil(t, updated.DefaultCurrency)
	assert.Equal(t, "USD", updated.DefaultCurrency.Code)

	_, err = m.SetDefaultCurrency(999, cu.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRefreshTokens(t *testing.T) {
	m, u, _, _ := seed(t)
	rt := &models.RefreshToken{UserID: u.ID, TokenHash: "abc"}
	require.NoError(t, m.StoreRefreshToken(rt))

	got, err := m.RefreshTokenByHash("abc")
	require.NoError(t, err)
	assert.False(t, got.Revoked)

	require.NoError(t, m.RevokeRefreshToken(got.ID))
	got, err = m.RefreshTokenByHash("abc")
	require.NoError(t, err)
	assert.True(t, got.Revoked)

	_, err = m.RefreshTokenByHash("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
