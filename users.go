package main

import (
	"errors"
	"net/http"

	"kasapi/store"

	"github.com/gin-gonic/gin"
)

// createUserHandler is the public signup endpoint.
func (a *api) createUserHandler(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	user, err := registerUser(a.store, req.Name, req.Email, req.Password)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (a *api) getUserHandler(c *gin.Context) {
	id, ok := pathID(c, "userId")
	if !ok {
		return
	}
	user, err := a.store.UserByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondErr(c, notFound("User not found"))
			return
		}
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (a *api) listUsersHandler(c *gin.Context) {
	users, err := a.store.ListUsers()
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// setUserCurrencyHandler sets the user's default currency. The user must
// exist (404) and the currency must exist (400).
func (a *api) setUserCurrencyHandler(c *gin.Context) {
	id, ok := pathID(c, "userId")
	if !ok {
		return
	}
	var req struct {
		CurrencyID *uint `json:"currencyId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if req.CurrencyID == nil {
		respondErr(c, badRequest("currencyId is required"))
		return
	}
	if _, err := a.store.UserByID(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondErr(c, notFound("User not found"))
			return
		}
		respondErr(c, err)
		return
	}
	if _, err := a.store.CurrencyByID(*req.CurrencyID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondErr(c, badRequest("Currency does not exist"))
			return
		}
		respondErr(c, err)
		return
	}
	user, err := a.store.SetDefaultCurrency(id, *req.CurrencyID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// deleteUserHandler removes the user and cascades their records.
func (a *api) deleteUserHandler(c *gin.Context) {
	id, ok := pathID(c, "userId")
	if !ok {
		return
	}
	if err := a.store.DeleteUser(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondErr(c, notFound("User not found"))
			return
		}
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
