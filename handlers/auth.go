package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/namnm309/evdealer-backend/models"
	"github.com/namnm309/evdealer-backend/utils"
)

func Login(c *gin.Context) {
	var input models.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	response, err := models.Login(c.Request.Context(), &input)
	if err != nil {
		respondError(c, http.StatusUnauthorized, err)
		return
	}
	respondOK(c, response, "login successful")
}

func Register(c *gin.Context) {
	var input models.NewUser
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	user, err := models.Register(c.Request.Context(), &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondCreated(c, user, "account created")
}

func Logout(c *gin.Context) {
	if err := models.Logout(c.Request.Context()); err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, nil, "logged out")
}

func Me(c *gin.Context) {
	userId, ok := utils.GetUserIdFromContext(c.Request.Context())
	if !ok {
		respondError(c, http.StatusUnauthorized, errUnauthorized)
		return
	}
	user, err := models.GetUser(c.Request.Context(), userId)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, user, "")
}

func ChangePassword(c *gin.Context) {
	var input models.ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if err := models.ChangePassword(c.Request.Context(), &input); err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, nil, "password changed")
}
