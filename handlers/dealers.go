package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/namnm309/evdealer-backend/models"
)

func ListDealers(c *gin.Context) {
	dealers, err := models.ListDealers(c.Request.Context(),
		intQuery(c, "region_id"), boolQuery(c, "active_only"))
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, dealers, "")
}

func GetDealer(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	dealer, err := models.GetDealer(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, dealer, "")
}

func CreateDealer(c *gin.Context) {
	var input models.NewDealer
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	dealer, err := models.CreateDealer(c.Request.Context(), &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondCreated(c, dealer, "dealer created")
}

func UpdateDealer(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	var input models.NewDealer
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	dealer, err := models.UpdateDealer(c.Request.Context(), id, &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, dealer, "dealer updated")
}

func ToggleDealerActive(c *gin.Context) {
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
	dealer, err := models.ToggleActiveDealer(c.Request.Context(), id, *req.IsActive)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, dealer, "dealer updated")
}

func DeleteDealer(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	dealer, err := models.DeleteDealer(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, dealer, "dealer deleted")
}

func ListDealerContracts(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	contracts, err := models.ListDealerContracts(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, contracts, "")
}

func CreateDealerContract(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	var input models.NewDealerContract
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	contract, err := models.CreateDealerContract(c.Request.Context(), id, &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondCreated(c, contract, "contract created")
}

type contractStatusRequest struct {
	Status models.ContractStatus `json:"status" binding:"required"`
}

func UpdateDealerContractStatus(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	var req contractStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	contract, err := models.UpdateDealerContractStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, contract, "contract updated")
}
