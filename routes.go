package main

import (
	"github.com/gin-gonic/gin"
)

func setupRoutes(r *gin.Engine, a *api) {
	// public surface: healthcheck, signup and the auth endpoints
	r.GET("/healthcheck", healthcheckHandler)
	r.POST("/user", a.createUserHandler)
	r.POST("/auth/login", a.loginHandler)
	r.POST("/auth/refresh", a.refreshHandler)
	r.POST("/auth/logout", a.logoutHandler)

	authGroup := r.Group("")
	authGroup.Use(a.authMiddleware())

	authGroup.GET("/users", a.listUsersHandler)
	authGroup.GET("/user/:userId", a.getUserHandler)
	authGroup.PATCH("/user/:userId/currency", a.setUserCurrencyHandler)
	authGroup.DELETE("/user/:userId", a.deleteUserHandler)

	authGroup.GET("/category", a.listCategoriesHandler)
	authGroup.POST("/category", a.createCategoryHandler)
	authGroup.DELETE("/category", a.deleteCategoryHandler)

	authGroup.GET("/currency", a.listCurrenciesHandler)
	authGroup.POST("/currency", a.createCurrencyHandler)
	authGroup.DELETE("/currency/:id", a.deleteCurrencyHandler)

	authGroup.POST("/record", a.createRecordHandler)
	authGroup.GET("/record", a.listRecordsHandler)
	authGroup.GET("/record/:recordId", a.getRecordHandler)
	authGroup.DELETE("/record/:recordId", a.deleteRecordHandler)
}
