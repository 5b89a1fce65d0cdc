package main

import (
	"errors"
	"net/http"
	"strings"

	"kasapi/models"
	"kasapi/store"

	"github.com/gin-gonic/gin"
)

func (a *api) listCurrenciesHandler(c *gin.Context) {
	currencies, err := a.store.ListCurrencies()
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, currencies)
}

// createCurrencyHandler creates a currency; codes are stored uppercase and
// must be unique.
func (a *api) createCurrencyHandler(c *gin.Context) {
	var req struct {
		Code string `json:"code"`
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	name := strings.TrimSpace(req.Name)
	if code == "" {
		respondErr(c, badRequest("code is required"))
		return
	}
	if name == "" {
		respondErr(c, badRequest("name is required"))
		return
	}
	currency := models.Currency{Code: code, Name: name}
	if err := a.store.CreateCurrency(&currency); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			respondErr(c, badRequest("currency code already exists"))
			return
		}
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, currency)
}

// deleteCurrencyHandler refuses to delete a currency that records still
// reference; currencies are never cascade-deleted.
func (a *api) deleteCurrencyHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := a.store.DeleteCurrency(id); err != nil {
		if errors.Is(err, store.ErrCurrencyInUse) {
			respondErr(c, badRequest("Cannot delete currency: there are records using this currency"))
			return
		}
		if errors.Is(err, store.ErrNotFound) {
			respondErr(c, notFound("Currency not found"))
			return
		}
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
