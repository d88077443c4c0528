package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/namnm309/evdealer-backend/models"
)

func ListCustomers(c *gin.Context) {
	limit, offset := limitOffset(c)
	filter := models.CustomerFilter{
		Search:     c.Query("search"),
		DealerId:   scopedDealerId(c),
		ActiveOnly: boolQuery(c, "active_only"),
		Limit:      limit,
		Offset:     offset,
	}
	customers, err := models.ListCustomers(c.Request.Context(), filter)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, customers, "")
}

func GetCustomer(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	customer, err := models.GetCustomer(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, customer, "")
}

func CreateCustomer(c *gin.Context) {
	var input models.NewCustomer
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	customer, err := models.CreateCustomer(c.Request.Context(), &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondCreated(c, customer, "customer created")
}

func UpdateCustomer(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	var input models.NewCustomer
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	customer, err := models.UpdateCustomer(c.Request.Context(), id, &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, customer, "customer updated")
}

func DeleteCustomer(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	customer, err := models.DeleteCustomer(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, customer, "customer deleted")
}
