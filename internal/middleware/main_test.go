package middleware

import (
	"os"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	// Set before any test triggers the one-time secret initialization.
	os.Setenv("TH_JWT_SECRET", "test-jwt-secret-that-is-at-least-32-chars")
	os.Exit(m.Run())
}
