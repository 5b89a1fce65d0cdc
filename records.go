package main

import (
	"errors"
	"net/http"
	"strconv"

	"kasapi/models"
	"kasapi/store"

	"github.com/gin-gonic/gin"
)

// createRecordHandler creates an expense record. If currencyId is omitted
// the user's default currency is used; with neither set the request fails.
func (a *api) createRecordHandler(c *gin.Context) {
	var req struct {
		UserID     *uint    `json:"userId"`
		CategoryID *uint    `json:"categoryId"`
		CurrencyID *uint    `json:"currencyId"`
		Amount     *float64 `json:"amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if req.UserID == nil {
		respondErr(c, badRequest("userId is required"))
		return
	}
	if req.CategoryID == nil {
		respondErr(c, badRequest("categoryId is required"))
		return
	}
	if req.Amount == nil {
		respondErr(c, badRequest("amount is required"))
		return
	}

	user, err := a.store.UserByID(*req.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondErr(c, badRequest("User does not exist"))
			return
		}
		respondErr(c, err)
		return
	}
	if _, err := a.store.CategoryByID(*req.CategoryID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondErr(c, badRequest("Category does not exist"))
			return
		}
		respondErr(c, err)
		return
	}

	currencyID := req.CurrencyID
	if currencyID != nil {
		if _, err := a.store.CurrencyByID(*currencyID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondErr(c, badRequest("Currency does not exist"))
				return
			}
			respondErr(c, err)
			return
		}
	} else {
		if user.DefaultCurrencyID == nil {
			respondErr(c, badRequest("no default currency and no currencyId was provided"))
			return
		}
		currencyID = user.DefaultCurrencyID
	}

	record, err := a.store.CreateRecord(&models.Record{
		UserID:     *req.UserID,
		CategoryID: *req.CategoryID,
		CurrencyID: *currencyID,
		Amount:     *req.Amount,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (a *api) getRecordHandler(c *gin.Context) {
	id, ok := pathID(c, "recordId")
	if !ok {
		return
	}
	record, err := a.store.RecordByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondErr(c, notFound("Record not found"))
			return
		}
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// listRecordsHandler requires at least one of user_id / category_id;
// supplied filters are ANDed.
func (a *api) listRecordsHandler(c *gin.Context) {
	var filter store.RecordFilter
	if v := c.Query("user_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			respondErr(c, badRequest("Invalid user_id"))
			return
		}
		uid := uint(id)
		filter.UserID = &uid
	}
	if v := c.Query("category_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			respondErr(c, badRequest("Invalid category_id"))
			return
		}
		cid := uint(id)
		filter.CategoryID = &cid
	}
	if filter.UserID == nil && filter.CategoryID == nil {
		respondErr(c, badRequest("at least one of user_id or category_id is required"))
		return
	}
	records, err := a.store.ListRecords(filter)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (a *api) deleteRecordHandler(c *gin.Context) {
	id, ok := pathID(c, "recordId")
	if !ok {
		return
	}
	if err := a.store.DeleteRecord(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondErr(c, notFound("Record not found"))
			return
		}
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
