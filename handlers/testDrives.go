package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/namnm309/evdealer-backend/models"
)

func ListTestDrives(c *gin.Context) {
	limit, offset := limitOffset(c)
	filter := models.TestDriveFilter{
		DealerId:   scopedDealerId(c),
		ProductId:  intQuery(c, "product_id"),
		CustomerId: intQuery(c, "customer_id"),
		Status:     models.TestDriveStatus(c.Query("status")),
		FromDate:   dateQuery(c, "from_date"),
		ToDate:     dateQuery(c, "to_date"),
		Limit:      limit,
		Offset:     offset,
	}
	testDrives, err := models.ListTestDrives(c.Request.Context(), filter)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, testDrives, "")
}

func GetTestDrive(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	testDrive, err := models.GetTestDrive(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, testDrive, "")
}

func CreateTestDrive(c *gin.Context) {
	var input models.NewTestDrive
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	testDrive, err := models.CreateTestDrive(c.Request.Context(), &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondCreated(c, testDrive, "test drive booked")
}

func ConfirmTestDrive(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	testDrive, err := models.ConfirmTestDrive(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, testDrive, "test drive confirmed")
}

type completeTestDriveRequest struct {
	Success *bool  `json:"success" binding:"required"`
	Note    string `json:"note"`
}

func CompleteTestDrive(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	var req completeTestDriveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	testDrive, err := models.CompleteTestDrive(c.Request.Context(), id, *req.Success, req.Note)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, testDrive, "test drive completed")
}

type cancelTestDriveRequest struct {
	Note string `json:"note"`
}

func CancelTestDrive(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	var req cancelTestDriveRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	testDrive, err := models.CancelTestDrive(c.Request.Context(), id, req.Note)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, testDrive, "test drive cancelled")
}
