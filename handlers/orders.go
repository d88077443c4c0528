package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/namnm309/evdealer-backend/models"
)

func ListSalesOrders(c *gin.Context) {
	limit, offset := limitOffset(c)
	filter := models.OrderFilter{
		DealerId:      scopedDealerId(c),
		CustomerId:    intQuery(c, "customer_id"),
		Status:        models.OrderStatus(c.Query("status")),
		PaymentStatus: models.PaymentStatus(c.Query("payment_status")),
		FromDate:      dateQuery(c, "from_date"),
		ToDate:        dateQuery(c, "to_date"),
		Limit:         limit,
		Offset:        offset,
	}
	orders, err := models.ListOrders(c.Request.Context(), filter)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, orders, "")
}

func GetSalesOrder(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := models.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, order, "")
}

func CreateSalesOrder(c *gin.Context) {
	var input models.NewQuotation
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := models.CreateQuotation(c.Request.Context(), &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondCreated(c, order, "quotation created")
}

func ConfirmSalesOrder(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := models.ConfirmOrder(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, order, "order confirmed")
}

func UpdateSalesOrderPayment(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	var input models.OrderPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := models.UpdateOrderPayment(c.Request.Context(), id, &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, order, "payment updated")
}

func DeliverSalesOrder(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	var input models.OrderDeliveryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := models.DeliverOrder(c.Request.Context(), id, &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, order, "order delivered")
}

type cancelOrderRequest struct {
	Reason string `json:"reason"`
}

func CancelSalesOrder(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	var req cancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	order, err := models.CancelOrder(c.Request.Context(), id, req.Reason)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, order, "order cancelled")
}
