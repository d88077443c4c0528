package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/namnm309/evdealer-backend/utils"
)

func scopeTestContext(t *testing.T, query string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/"+query, nil)
	return c
}

func TestScopedDealerIdPinsDealerUsers(t *testing.T) {
	c := scopeTestContext(t, "?dealer_id=7")
	c.Request = c.Request.WithContext(utils.SetDealerIdInContext(c.Request.Context(), 3))

	if got := scopedDealerId(c); got != 3 {
		t.Fatalf("dealer user resolved dealer %d, want own dealer 3", got)
	}
}

func TestScopedDealerIdHonorsManufacturerFilter(t *testing.T) {
	c := scopeTestContext(t, "?dealer_id=7")
	ctx := utils.SetIsManufacturerInContext(c.Request.Context(), true)
	c.Request = c.Request.WithContext(ctx)

	if got := scopedDealerId(c); got != 7 {
		t.Fatalf("manufacturer resolved dealer %d, want requested 7", got)
	}

	// No filter means the whole network.
	c = scopeTestContext(t, "")
	c.Request = c.Request.WithContext(utils.SetIsManufacturerInContext(c.Request.Context(), true))
	if got := scopedDealerId(c); got != 0 {
		t.Fatalf("manufacturer without filter resolved dealer %d, want 0", got)
	}
}
