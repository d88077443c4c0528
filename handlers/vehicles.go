package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/namnm309/evdealer-backend/models"
)

func ListVehicles(c *gin.Context) {
	limit, offset := limitOffset(c)
	filter := models.ProductFilter{
		Search:     c.Query("search"),
		BrandId:    intQuery(c, "brand_id"),
		CategoryId: intQuery(c, "category_id"),
		ActiveOnly: boolQuery(c, "active_only"),
		Limit:      limit,
		Offset:     offset,
	}
	products, err := models.ListProducts(c.Request.Context(), filter)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, products, "")
}

func GetVehicle(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	product, err := models.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, product, "")
}

func CreateVehicle(c *gin.Context) {
	var input models.NewProduct
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	product, err := models.CreateProduct(c.Request.Context(), &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondCreated(c, product, "vehicle created")
}

func UpdateVehicle(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	var input models.NewProduct
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	product, err := models.UpdateProduct(c.Request.Context(), id, &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, product, "vehicle updated")
}

func DeleteVehicle(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	product, err := models.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, product, "vehicle deleted")
}

type toggleActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

func ToggleVehicleActive(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	var req toggleActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	product, err := models.ToggleActiveProduct(c.Request.Context(), id, *req.IsActive)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, product, "vehicle updated")
}
