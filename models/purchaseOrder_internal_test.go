package models

import "testing"

func TestCanTransitionPurchaseOrder(t *testing.T) {
	allowed := []struct {
		from, to PurchaseOrderStatus
	}{
		{PurchaseOrderStatusPending, PurchaseOrderStatusApproved},
		{PurchaseOrderStatusPending, PurchaseOrderStatusRejected},
		{PurchaseOrderStatusPending, PurchaseOrderStatusCancelled},
		{PurchaseOrderStatusApproved, PurchaseOrderStatusInTransit},
		{PurchaseOrderStatusApproved, PurchaseOrderStatusCancelled},
		{PurchaseOrderStatusInTransit, PurchaseOrderStatusDelivered},
		{PurchaseOrderStatusInTransit, PurchaseOrderStatusCancelled},
	}
	for _, tc := range allowed {
		if err := canTransitionPurchaseOrder(tc.from, tc.to); err != nil {
			t.Errorf("%s -> %s should be allowed: %v", tc.from, tc.to, err)
		}
	}

	denied := []struct {
		from, to PurchaseOrderStatus
	}{
		{PurchaseOrderStatusPending, PurchaseOrderStatusInTransit},
		{PurchaseOrderStatusPending, PurchaseOrderStatusDelivered},
		{PurchaseOrderStatusApproved, PurchaseOrderStatusDelivered},
		{PurchaseOrderStatusApproved, PurchaseOrderStatusRejected},
		{PurchaseOrderStatusDelivered, PurchaseOrderStatusCancelled},
		{PurchaseOrderStatusDelivered, PurchaseOrderStatusInTransit},
		{PurchaseOrderStatusRejected, PurchaseOrderStatusApproved},
		{PurchaseOrderStatusCancelled, PurchaseOrderStatusPending},
	}
	for _, tc := range denied {
		if err := canTransitionPurchaseOrder(tc.from, tc.to); err == nil {
			t.Errorf("%s -> %s should be rejected", tc.from, tc.to)
		}
	}
}
