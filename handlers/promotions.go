package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/namnm309/evdealer-backend/models"
)

func ListPromotions(c *gin.Context) {
	promotions, err := models.ListPromotions(c.Request.Context(),
		scopedDealerId(c), boolQuery(c, "active_only"))
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, promotions, "")
}

func CreatePromotion(c *gin.Context) {
	var input models.NewPromotion
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	promotion, err := models.CreatePromotion(c.Request.Context(), &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondCreated(c, promotion, "promotion created")
}

func GetPromotion(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	promotion, err := models.GetPromotion(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, promotion, "")
}

func UpdatePromotion(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	var input models.NewPromotion
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	promotion, err := models.UpdatePromotion(c.Request.Context(), id, &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, promotion, "promotion updated")
}

func TogglePromotionActive(c *gin.Context) {
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
	promotion, err := models.ToggleActivePromotion(c.Request.Context(), id, *req.IsActive)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, promotion, "promotion updated")
}

func DeletePromotion(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	promotion, err := models.DeletePromotion(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, promotion, "promotion deleted")
}
