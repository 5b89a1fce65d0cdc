package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"kasapi/models"
	"kasapi/store"

	"github.com/gin-gonic/gin"
)

func (a *api) listCategoriesHandler(c *gin.Context) {
	cats, err := a.store.ListCategories()
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

func (a *api) createCategoryHandler(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondErr(c, badRequest("name is required"))
		return
	}
	category := models.Category{Name: name}
	if err := a.store.CreateCategory(&category); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// deleteCategoryHandler takes the target id as a query parameter and
// cascades deletion of the category's records.
func (a *api) deleteCategoryHandler(c *gin.Context) {
	v, err := strconv.ParseUint(c.Query("id"), 10, 32)
	if err != nil {
		respondErr(c, badRequest("Invalid id"))
		return
	}
	if err := a.store.DeleteCategory(uint(v)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondErr(c, notFound("Category not found"))
			return
		}
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
