package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/namnm309/evdealer-backend/models"
)

func ListInventoryAllocations(c *gin.Context) {
	limit, offset := limitOffset(c)
	filter := models.InventoryFilter{
		DealerId:  scopedDealerId(c),
		ProductId: intQuery(c, "product_id"),
		Limit:     limit,
		Offset:    offset,
	}
	allocations, err := models.ListInventoryAllocations(c.Request.Context(), filter)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, allocations, "")
}

func CreateInventoryAllocation(c *gin.Context) {
	var input models.NewInventoryAllocation
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	allocation, err := models.CreateInventoryAllocation(c.Request.Context(), &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondCreated(c, allocation, "allocation created")
}

func GetInventoryAllocation(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	allocation, err := models.GetInventoryAllocation(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, allocation, "")
}

func UpdateInventoryAllocation(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	var input models.NewInventoryAllocation
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	allocation, err := models.UpdateInventoryAllocation(c.Request.Context(), id, &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, allocation, "allocation updated")
}

func DeleteInventoryAllocation(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	allocation, err := models.DeleteInventoryAllocation(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, allocation, "allocation deleted")
}

func TransferStock(c *gin.Context) {
	var input models.TransferStockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if err := models.TransferStock(c.Request.Context(), &input); err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, nil, "stock transferred")
}

func AdjustStock(c *gin.Context) {
	var input models.AdjustStockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	allocation, err := models.AdjustStock(c.Request.Context(), &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, allocation, "stock adjusted")
}

func ListInventoryTransactions(c *gin.Context) {
	limit, offset := limitOffset(c)
	filter := models.InventoryTransactionFilter{
		DealerId:  scopedDealerId(c),
		ProductId: intQuery(c, "product_id"),
		Type:      models.InventoryTransactionType(c.Query("type")),
		FromDate:  dateQuery(c, "from_date"),
		ToDate:    dateQuery(c, "to_date"),
		Limit:     limit,
		Offset:    offset,
	}
	transactions, err := models.ListInventoryTransactions(c.Request.Context(), filter)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, transactions, "")
}

func ListLowStock(c *gin.Context) {
	allocations, err := models.ListLowStockAllocations(c.Request.Context(),
		scopedDealerId(c), boolQuery(c, "critical"))
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, allocations, "")
}

func ListOutOfStock(c *gin.Context) {
	allocations, err := models.ListOutOfStockAllocations(c.Request.Context(), scopedDealerId(c))
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, allocations, "")
}

func GetStockSummary(c *gin.Context) {
	summary, err := models.GetStockSummary(c.Request.Context(), scopedDealerId(c))
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, summary, "")
}
