package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/namnm309/evdealer-backend/models"
)

func ListFeedbacks(c *gin.Context) {
	limit, offset := limitOffset(c)
	filter := models.FeedbackFilter{
		DealerId:  scopedDealerId(c),
		ProductId: intQuery(c, "product_id"),
		Status:    models.FeedbackStatus(c.Query("status")),
		MinRating: intQuery(c, "min_rating"),
		Limit:     limit,
		Offset:    offset,
	}
	feedbacks, err := models.ListFeedbacks(c.Request.Context(), filter)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, feedbacks, "")
}

func CreateFeedback(c *gin.Context) {
	var input models.NewFeedback
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	feedback, err := models.CreateFeedback(c.Request.Context(), &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondCreated(c, feedback, "feedback recorded")
}

func GetFeedback(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	feedback, err := models.GetFeedback(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, feedback, "")
}

func UpdateFeedbackStatus(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	var input models.FeedbackStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	feedback, err := models.UpdateFeedbackStatus(c.Request.Context(), id, &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, feedback, "feedback updated")
}
