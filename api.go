package main

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"kasapi/store"

	"github.com/gin-gonic/gin"
)

// api holds handler dependencies. Handlers only see the store interface so
// tests can swap in store.Memory.
type api struct {
	store store.Store
}

func newAPI(s store.Store) *api {
	return &api{store: s}
}

// apiError is an error with a client-facing status and message. Anything
// else reaching respondErr is treated as internal: logged, not exposed.
type apiError struct {
	status  int
	message string
}

func (e *apiError) Error() string { return e.message }

func badRequest(msg string) *apiError {
	return &apiError{status: http.StatusBadRequest, message: msg}
}

func notFound(msg string) *apiError {
	return &apiError{status: http.StatusNotFound, message: msg}
}

func respondErr(c *gin.Context, err error) {
	var ae *apiError
	if errors.As(err, &ae) {
		c.JSON(ae.status, gin.H{"message": ae.message})
		return
	}
	log.Printf("internal error: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
}

// pathID parses an integer path parameter. On failure it writes the 400
// response itself and returns ok=false.
func pathID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid " + name})
		return 0, false
	}
	return uint(v), true
}

func healthcheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"date": time.Now().Format(time.RFC3339), "status": "ok"})
}
