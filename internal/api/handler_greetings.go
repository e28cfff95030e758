package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"calculator-backend/internal/calc"
)

// GetGreetings handles GET /api/greetings.
func GetGreetings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"greetings": calc.Greetings()})
}
