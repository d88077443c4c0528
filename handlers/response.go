package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/namnm309/evdealer-backend/utils"
	"gorm.io/gorm"
)

var errUnauthorized = errors.New("unauthorized")

// Envelope is the response shape the admin client expects on every route.
type Envelope struct {
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
	Success bool        `json:"success"`
}

func respondOK(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Envelope{Data: data, Message: message, Success: true})
}

func respondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, Envelope{Data: data, Message: message, Success: true})
}

func respondError(c *gin.Context, status int, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(status, Envelope{
			Data:    utils.ProcessValidationErrors(validationErrors),
			Message: "validation failed",
			Success: false,
		})
		return
	}
	c.JSON(status, Envelope{Message: err.Error(), Success: false})
}

// respondModelError maps model-layer failures onto HTTP statuses. Expected
// validation failures come back as errors.New strings, not wrapped types.
func respondModelError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, utils.ErrorRecordNotFound) {
		respondError(c, http.StatusNotFound, err)
		return
	}
	respondError(c, http.StatusBadRequest, err)
}

func idParam(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, errors.New("invalid resource id")
	}
	return id, nil
}

func intQuery(c *gin.Context, name string) int {
	v, _ := strconv.Atoi(c.Query(name))
	return v
}

// scopedDealerId resolves the dealer filter for list endpoints: manufacturer
// staff may ask for any dealer (or the whole network), dealer users are
// always pinned to their own dealer regardless of the query string.
func scopedDealerId(c *gin.Context) int {
	if isManufacturer, _ := utils.GetIsManufacturerFromContext(c.Request.Context()); isManufacturer {
		return intQuery(c, "dealer_id")
	}
	dealerId, _ := utils.GetDealerIdFromContext(c.Request.Context())
	return dealerId
}

func boolQuery(c *gin.Context, name string) bool {
	v, _ := strconv.ParseBool(c.Query(name))
	return v
}

func dateQuery(c *gin.Context, name string) *time.Time {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t
	}
	return nil
}

func limitOffset(c *gin.Context) (int, int) {
	limit := intQuery(c, "limit")
	if limit <= 0 {
		limit = 20
	}
	if limit > 200 {
		limit = 200
	}
	return limit, intQuery(c, "offset")
}
