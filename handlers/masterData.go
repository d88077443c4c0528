package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/namnm309/evdealer-backend/models"
)

func ListBrands(c *gin.Context) {
	brands, err := models.ListBrands(c.Request.Context())
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, brands, "")
}

func CreateBrand(c *gin.Context) {
	var input models.NewBrand
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	brand, err := models.CreateBrand(c.Request.Context(), &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondCreated(c, brand, "brand created")
}

func GetBrand(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	brand, err := models.GetBrand(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, brand, "")
}

func UpdateBrand(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	var input models.NewBrand
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	brand, err := models.UpdateBrand(c.Request.Context(), id, &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, brand, "brand updated")
}

func DeleteBrand(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	brand, err := models.DeleteBrand(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, brand, "brand deleted")
}

func ToggleBrandActive(c *gin.Context) {
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
	brand, err := models.ToggleActiveBrand(c.Request.Context(), id, *req.IsActive)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, brand, "brand updated")
}

func ListCategories(c *gin.Context) {
	categories, err := models.ListCategories(c.Request.Context())
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, categories, "")
}

func CreateCategory(c *gin.Context) {
	var input models.NewCategory
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	category, err := models.CreateCategory(c.Request.Context(), &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondCreated(c, category, "category created")
}

func GetCategory(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	category, err := models.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, category, "")
}

func UpdateCategory(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	var input models.NewCategory
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	category, err := models.UpdateCategory(c.Request.Context(), id, &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, category, "category updated")
}

func DeleteCategory(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	category, err := models.DeleteCategory(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, category, "category deleted")
}

func ToggleCategoryActive(c *gin.Context) {
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
	category, err := models.ToggleActiveCategory(c.Request.Context(), id, *req.IsActive)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, category, "category updated")
}

func ListRegions(c *gin.Context) {
	regions, err := models.ListRegions(c.Request.Context())
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, regions, "")
}

func CreateRegion(c *gin.Context) {
	var input models.NewRegion
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	region, err := models.CreateRegion(c.Request.Context(), &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondCreated(c, region, "region created")
}

func GetRegion(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	region, err := models.GetRegion(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, region, "")
}

func UpdateRegion(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	var input models.NewRegion
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	region, err := models.UpdateRegion(c.Request.Context(), id, &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, region, "region updated")
}

func DeleteRegion(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	region, err := models.DeleteRegion(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, region, "region deleted")
}
