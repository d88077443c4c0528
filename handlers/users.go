package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/namnm309/evdealer-backend/models"
)

func ListUsers(c *gin.Context) {
	limit, offset := limitOffset(c)
	filter := models.UserFilter{
		Search:   c.Query("search"),
		Role:     models.UserRole(c.Query("role")),
		DealerId: intQuery(c, "dealer_id"),
		Limit:    limit,
		Offset:   offset,
	}
	users, err := models.ListUsers(c.Request.Context(), filter)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, users, "")
}

func GetUser(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	user, err := models.GetUser(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, user, "")
}

func CreateUser(c *gin.Context) {
	var input models.NewUser
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	user, err := models.CreateUser(c.Request.Context(), &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondCreated(c, user, "user created")
}

func UpdateUser(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	var input models.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	user, err := models.UpdateUser(c.Request.Context(), id, &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, user, "user updated")
}

func ToggleUserActive(c *gin.Context) {
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
	user, err := models.ToggleActiveUser(c.Request.Context(), id, *req.IsActive)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, user, "user updated")
}

func ListHistory(c *gin.Context) {
	limit, offset := limitOffset(c)
	filter := models.HistoryFilter{
		ReferenceType: c.Query("reference_type"),
		ReferenceId:   intQuery(c, "reference_id"),
		UserId:        intQuery(c, "user_id"),
		Limit:         limit,
		Offset:        offset,
	}
	history, err := models.ListHistory(c.Request.Context(), filter)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, history, "")
}
