package models

import (
	"errors"
	"strconv"
)

type UserRole string

const (
	UserRoleAdmin         UserRole = "ADMIN"
	UserRoleEVMStaff      UserRole = "EVM_STAFF"
	UserRoleDealerManager UserRole = "DEALER_MANAGER"
	UserRoleDealerStaff   UserRole = "DEALER_STAFF"
)

// IsManufacturerSide reports whether the role belongs to manufacturer staff,
// which bypasses dealer scoping.
func (r UserRole) IsManufacturerSide() bool {
	return r == UserRoleAdmin || r == UserRoleEVMStaff
}

func (r UserRole) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(r))), nil
}

func (r *UserRole) UnmarshalJSON(data []byte) error {
	str, err := strconv.Unquote(string(data))
	if err != nil {
		return errors.New("user role must be string")
	}
	roles := map[string]UserRole{
		"ADMIN":          UserRoleAdmin,
		"EVM_STAFF":      UserRoleEVMStaff,
		"DEALER_MANAGER": UserRoleDealerManager,
		"DEALER_STAFF":   UserRoleDealerStaff,
	}
	var ok bool
	*r, ok = roles[str]
	if !ok {
		return errors.New("invalid user role")
	}
	return nil
}

type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "Draft"
	OrderStatusConfirmed OrderStatus = "Confirmed"
	OrderStatusPaid      OrderStatus = "Paid"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(s))), nil
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	str, err := strconv.Unquote(string(data))
	if err != nil {
		return errors.New("order status must be string")
	}
	statuses := map[string]OrderStatus{
		"Draft":     OrderStatusDraft,
		"Confirmed": OrderStatusConfirmed,
		"Paid":      OrderStatusPaid,
		"Delivered": OrderStatusDelivered,
		"Cancelled": OrderStatusCancelled,
	}
	var ok bool
	*s, ok = statuses[str]
	if !ok {
		return errors.New("invalid order status")
	}
	return nil
}

type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "Unpaid"
	PaymentStatusPartial PaymentStatus = "Partial"
	PaymentStatusPaid    PaymentStatus = "Paid"
)

func (s PaymentStatus) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(s))), nil
}

func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	str, err := strconv.Unquote(string(data))
	if err != nil {
		return errors.New("payment status must be string")
	}
	statuses := map[string]PaymentStatus{
		"Unpaid":  PaymentStatusUnpaid,
		"Partial": PaymentStatusPartial,
		"Paid":    PaymentStatusPaid,
	}
	var ok bool
	*s, ok = statuses[str]
	if !ok {
		return errors.New("invalid payment status")
	}
	return nil
}

type PurchaseOrderStatus string

const (
	PurchaseOrderStatusPending   PurchaseOrderStatus = "Pending"
	PurchaseOrderStatusApproved  PurchaseOrderStatus = "Approved"
	PurchaseOrderStatusRejected  PurchaseOrderStatus = "Rejected"
	PurchaseOrderStatusInTransit PurchaseOrderStatus = "InTransit"
	PurchaseOrderStatusDelivered PurchaseOrderStatus = "Delivered"
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "Cancelled"
)

func (s PurchaseOrderStatus) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(s))), nil
}

func (s *PurchaseOrderStatus) UnmarshalJSON(data []byte) error {
	str, err := strconv.Unquote(string(data))
	if err != nil {
		return errors.New("purchase order status must be string")
	}
	statuses := map[string]PurchaseOrderStatus{
		"Pending":   PurchaseOrderStatusPending,
		"Approved":  PurchaseOrderStatusApproved,
		"Rejected":  PurchaseOrderStatusRejected,
		"InTransit": PurchaseOrderStatusInTransit,
		"Delivered": PurchaseOrderStatusDelivered,
		"Cancelled": PurchaseOrderStatusCancelled,
	}
	var ok bool
	*s, ok = statuses[str]
	if !ok {
		return errors.New("invalid purchase order status")
	}
	return nil
}

type TestDriveStatus string

// "Successfully"/"Failed"/"Canceled" spellings follow the admin client contract.
const (
	TestDriveStatusPending      TestDriveStatus = "Pending"
	TestDriveStatusConfirmed    TestDriveStatus = "Confirmed"
	TestDriveStatusSuccessfully TestDriveStatus = "Successfully"
	TestDriveStatusFailed       TestDriveStatus = "Failed"
	TestDriveStatusCanceled     TestDriveStatus = "Canceled"
)

func (s TestDriveStatus) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(s))), nil
}

func (s *TestDriveStatus) UnmarshalJSON(data []byte) error {
	str, err := strconv.Unquote(string(data))
	if err != nil {
		return errors.New("test drive status must be string")
	}
	statuses := map[string]TestDriveStatus{
		"Pending":      TestDriveStatusPending,
		"Confirmed":    TestDriveStatusConfirmed,
		"Successfully": TestDriveStatusSuccessfully,
		"Failed":       TestDriveStatusFailed,
		"Canceled":     TestDriveStatusCanceled,
	}
	var ok bool
	*s, ok = statuses[str]
	if !ok {
		return errors.New("invalid test drive status")
	}
	return nil
}

type InventoryTransactionType string

const (
	InventoryTransactionTypeImport     InventoryTransactionType = "Import"
	InventoryTransactionTypeExport     InventoryTransactionType = "Export"
	InventoryTransactionTypeTransfer   InventoryTransactionType = "Transfer"
	InventoryTransactionTypeAdjustment InventoryTransactionType = "Adjustment"
)

func (t InventoryTransactionType) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(t))), nil
}

func (t *InventoryTransactionType) UnmarshalJSON(data []byte) error {
	str, err := strconv.Unquote(string(data))
	if err != nil {
		return errors.New("inventory transaction type must be string")
	}
	types := map[string]InventoryTransactionType{
		"Import":     InventoryTransactionTypeImport,
		"Export":     InventoryTransactionTypeExport,
		"Transfer":   InventoryTransactionTypeTransfer,
		"Adjustment": InventoryTransactionTypeAdjustment,
	}
	var ok bool
	*t, ok = types[str]
	if !ok {
		return errors.New("invalid inventory transaction type")
	}
	return nil
}

type FeedbackStatus string

const (
	FeedbackStatusNew      FeedbackStatus = "New"
	FeedbackStatusReviewed FeedbackStatus = "Reviewed"
	FeedbackStatusResolved FeedbackStatus = "Resolved"
)

func (s FeedbackStatus) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(s))), nil
}

func (s *FeedbackStatus) UnmarshalJSON(data []byte) error {
	str, err := strconv.Unquote(string(data))
	if err != nil {
		return errors.New("feedback status must be string")
	}
	statuses := map[string]FeedbackStatus{
		"New":      FeedbackStatusNew,
		"Reviewed": FeedbackStatusReviewed,
		"Resolved": FeedbackStatusResolved,
	}
	var ok bool
	*s, ok = statuses[str]
	if !ok {
		return errors.New("invalid feedback status")
	}
	return nil
}

type ContractStatus string

const (
	ContractStatusActive     ContractStatus = "Active"
	ContractStatusExpired    ContractStatus = "Expired"
	ContractStatusTerminated ContractStatus = "Terminated"
)

func (s ContractStatus) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(s))), nil
}

func (s *ContractStatus) UnmarshalJSON(data []byte) error {
	str, err := strconv.Unquote(string(data))
	if err != nil {
		return errors.New("contract status must be string")
	}
	statuses := map[string]ContractStatus{
		"Active":     ContractStatusActive,
		"Expired":    ContractStatusExpired,
		"Terminated": ContractStatusTerminated,
	}
	var ok bool
	*s, ok = statuses[str]
	if !ok {
		return errors.New("invalid contract status")
	}
	return nil
}

type ReportPeriod string

const (
	ReportPeriodMonthly   ReportPeriod = "monthly"
	ReportPeriodQuarterly ReportPeriod = "quarterly"
	ReportPeriodYearly    ReportPeriod = "yearly"
)

func ParseReportPeriod(s string) (ReportPeriod, error) {
	switch s {
	case "", "monthly":
		return ReportPeriodMonthly, nil
	case "quarterly":
		return ReportPeriodQuarterly, nil
	case "yearly":
		return ReportPeriodYearly, nil
	default:
		return "", errors.New("invalid report period")
	}
}
