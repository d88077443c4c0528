package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/namnm309/evdealer-backend/models"
)

func ListPurchaseOrders(c *gin.Context) {
	limit, offset := limitOffset(c)
	filter := models.PurchaseOrderFilter{
		DealerId:  scopedDealerId(c),
		ProductId: intQuery(c, "product_id"),
		Status:    models.PurchaseOrderStatus(c.Query("status")),
		Limit:     limit,
		Offset:    offset,
	}
	orders, err := models.ListPurchaseOrders(c.Request.Context(), filter)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, orders, "")
}

func GetPurchaseOrder(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := models.GetPurchaseOrder(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, order, "")
}

func CreatePurchaseOrder(c *gin.Context) {
	var input models.NewPurchaseOrder
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := models.CreatePurchaseOrder(c.Request.Context(), &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondCreated(c, order, "purchase order created")
}

func ApprovePurchaseOrder(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	var input models.ApprovePurchaseOrderInput
	if err := c.ShouldBindJSON(&input); err != nil && err.Error() != "EOF" {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := models.ApprovePurchaseOrder(c.Request.Context(), id, &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, order, "purchase order approved")
}

type rejectPurchaseOrderRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func RejectPurchaseOrder(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	var req rejectPurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := models.RejectPurchaseOrder(c.Request.Context(), id, req.Reason)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, order, "purchase order rejected")
}

func UpdatePurchaseOrderStatus(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	var input models.PurchaseOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := models.UpdatePurchaseOrderStatus(c.Request.Context(), id, &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, order, "purchase order updated")
}

func CancelPurchaseOrder(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := models.CancelPurchaseOrder(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, order, "purchase order cancelled")
}
