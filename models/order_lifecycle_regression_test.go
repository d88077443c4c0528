package models_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/namnm309/evdealer-backend/config"
	"github.com/namnm309/evdealer-backend/models"
	"github.com/namnm309/evdealer-backend/utils"
	"github.com/shopspring/decimal"
)

func setupIntegrationEnv(t *testing.T) context.Context {
	t.Helper()
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires docker)")
	}

	redisName, redisPort := startRedisContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(redisName) })

	mysqlName, mysqlPort := startMySQLContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(mysqlName) })

	t.Setenv("REDIS_ADDRESS", fmt.Sprintf("127.0.0.1:%s", redisPort))
	t.Setenv("DB_USER", "root")
	t.Setenv("DB_PASSWORD", "testpw")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", mysqlPort)
	t.Setenv("DB_NAME", "evdealer_test")

	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()
	models.MigrateTable()

	// Model hooks write History records and need user context.
	ctx := context.Background()
	ctx = utils.SetUserIdInContext(ctx, 1)
	ctx = utils.SetUserNameInContext(ctx, "Test")
	ctx = utils.SetUsernameInContext(ctx, "test@local")
	return ctx
}

type testFixtures struct {
	dealer   *models.Dealer
	product  *models.Product
	customer *models.Customer
}

func seedFixtures(t *testing.T, ctx context.Context) (*testFixtures, context.Context) {
	t.Helper()

	// Master data is manufacturer territory.
	adminCtx := utils.SetIsManufacturerInContext(ctx, true)

	region, err := models.CreateRegion(adminCtx, &models.NewRegion{Name: "North", Code: "N"})
	if err != nil {
		t.Fatalf("CreateRegion: %v", err)
	}
	dealer, err := models.CreateDealer(adminCtx, &models.NewDealer{
		Name:     "Hanoi EV Center",
		Code:     "HN-01",
		Phone:    "0912345678",
		Email:    "hanoi@evdealer.test",
		Address:  "1 Trang Tien",
		RegionId: region.ID,
	})
	if err != nil {
		t.Fatalf("CreateDealer: %v", err)
	}
	brand, err := models.CreateBrand(adminCtx, &models.NewBrand{Name: "VoltMotors"})
	if err != nil {
		t.Fatalf("CreateBrand: %v", err)
	}
	category, err := models.CreateCategory(adminCtx, &models.NewCategory{Name: "SUV"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	product, err := models.CreateProduct(adminCtx, &models.NewProduct{
		Name:            "Volt X5",
		Sku:             "VX5-2026",
		BrandId:         brand.ID,
		CategoryId:      category.ID,
		ModelYear:       2026,
		BatteryCapacity: decimal.NewFromInt(90),
		RangeKm:         480,
		Price:           decimal.NewFromInt(1200000000),
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	dealerCtx := utils.SetDealerIdInContext(ctx, dealer.ID)
	customer, err := models.CreateCustomer(dealerCtx, &models.NewCustomer{
		FullName: "Nguyen Van A",
		Email:    "a.nguyen@example.com",
		Phone:    "0987654321",
	})
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}

	return &testFixtures{dealer: dealer, product: product, customer: customer}, dealerCtx
}

func TestOrderLifecycleEndToEnd(t *testing.T) {
	ctx := setupIntegrationEnv(t)
	fx, dealerCtx := seedFixtures(t, ctx)

	order, err := models.CreateQuotation(dealerCtx, &models.NewQuotation{
		ProductId:  fx.product.ID,
		CustomerId: fx.customer.ID,
		Price:      decimal.NewFromInt(1200000000),
		Discount:   decimal.NewFromInt(50000000),
	})
	if err != nil {
		t.Fatalf("CreateQuotation: %v", err)
	}
	if order.Status != models.OrderStatusDraft {
		t.Fatalf("new quotation should be Draft, got %s", order.Status)
	}
	if !order.FinalAmount.Equal(decimal.NewFromInt(1150000000)) {
		t.Fatalf("final amount = %s, want 1150000000", order.FinalAmount)
	}
	if !strings.HasPrefix(order.OrderNumber, "QT-") {
		t.Fatalf("unexpected order number %q", order.OrderNumber)
	}

	order, err = models.ConfirmOrder(dealerCtx, order.ID)
	if err != nil {
		t.Fatalf("ConfirmOrder: %v", err)
	}
	if order.Status != models.OrderStatusConfirmed || order.OrderDate == nil {
		t.Fatalf("confirm: status=%s orderDate=%v", order.Status, order.OrderDate)
	}

	if _, err := models.ConfirmOrder(dealerCtx, order.ID); err == nil {
		t.Fatal("double confirm should fail")
	}

	order, err = models.UpdateOrderPayment(dealerCtx, order.ID, &models.OrderPaymentInput{
		PaymentStatus: models.PaymentStatusPaid,
		PaymentMethod: "BankTransfer",
	})
	if err != nil {
		t.Fatalf("UpdateOrderPayment: %v", err)
	}
	if order.Status != models.OrderStatusPaid || order.PaymentStatus != models.PaymentStatusPaid {
		t.Fatalf("pay: status=%s payment=%s", order.Status, order.PaymentStatus)
	}

	order, err = models.DeliverOrder(dealerCtx, order.ID, &models.OrderDeliveryInput{})
	if err != nil {
		t.Fatalf("DeliverOrder: %v", err)
	}
	if order.Status != models.OrderStatusDelivered || order.DeliveryDate == nil {
		t.Fatalf("deliver: status=%s deliveryDate=%v", order.Status, order.DeliveryDate)
	}

	if _, err := models.CancelOrder(dealerCtx, order.ID, "changed mind"); err == nil {
		t.Fatal("delivered order must not be cancellable")
	}
}

func TestPurchaseOrderDeliveryCreditsDealerStock(t *testing.T) {
	ctx := setupIntegrationEnv(t)
	fx, dealerCtx := seedFixtures(t, ctx)

	po, err := models.CreatePurchaseOrder(dealerCtx, &models.NewPurchaseOrder{
		ProductId:         fx.product.ID,
		RequestedQuantity: 5,
		UnitPrice:         decimal.NewFromInt(1000000000),
		Reason:            "restock for Q3",
	})
	if err != nil {
		t.Fatalf("CreatePurchaseOrder: %v", err)
	}
	if po.Status != models.PurchaseOrderStatusPending {
		t.Fatalf("new PO should be Pending, got %s", po.Status)
	}
	if !po.TotalAmount.Equal(decimal.NewFromInt(5000000000)) {
		t.Fatalf("total = %s, want 5000000000", po.TotalAmount)
	}
	if !strings.HasPrefix(po.OrderNumber, "PO-") {
		t.Fatalf("unexpected PO number %q", po.OrderNumber)
	}

	// Delivering before approval must be rejected.
	if _, err := models.UpdatePurchaseOrderStatus(dealerCtx, po.ID, &models.PurchaseOrderStatusInput{
		Status: models.PurchaseOrderStatusDelivered,
	}); err == nil {
		t.Fatal("pending PO must not be deliverable")
	}

	adminCtx := utils.SetIsManufacturerInContext(dealerCtx, true)
	po, err = models.ApprovePurchaseOrder(adminCtx, po.ID, &models.ApprovePurchaseOrderInput{Note: "ok"})
	if err != nil {
		t.Fatalf("ApprovePurchaseOrder: %v", err)
	}
	if po.Status != models.PurchaseOrderStatusApproved || po.ApprovedDate == nil {
		t.Fatalf("approve: status=%s approvedDate=%v", po.Status, po.ApprovedDate)
	}

	po, err = models.UpdatePurchaseOrderStatus(dealerCtx, po.ID, &models.PurchaseOrderStatusInput{
		Status: models.PurchaseOrderStatusInTransit,
	})
	if err != nil {
		t.Fatalf("InTransit: %v", err)
	}

	po, err = models.UpdatePurchaseOrderStatus(dealerCtx, po.ID, &models.PurchaseOrderStatusInput{
		Status: models.PurchaseOrderStatusDelivered,
	})
	if err != nil {
		t.Fatalf("Delivered: %v", err)
	}
	if po.ActualDeliveryDate == nil {
		t.Fatal("delivered PO must carry an actual delivery date")
	}

	summary, err := models.GetStockSummary(dealerCtx, fx.dealer.ID)
	if err != nil {
		t.Fatalf("GetStockSummary: %v", err)
	}
	if summary[fx.product.ID] != 5 {
		t.Fatalf("delivered PO should credit 5 units, got %d", summary[fx.product.ID])
	}

	if _, err := models.CancelPurchaseOrder(dealerCtx, po.ID); err == nil {
		t.Fatal("delivered PO must not be cancellable")
	}
}

func TestTestDriveDoubleBookingRejected(t *testing.T) {
	ctx := setupIntegrationEnv(t)
	fx, dealerCtx := seedFixtures(t, ctx)

	slot := time.Now().Add(2 * time.Hour).UTC().Truncate(time.Minute)

	first, err := models.CreateTestDrive(dealerCtx, &models.NewTestDrive{
		CustomerId:    fx.customer.ID,
		ProductId:     fx.product.ID,
		ScheduledDate: slot,
	})
	if err != nil {
		t.Fatalf("CreateTestDrive: %v", err)
	}
	if first.Status != models.TestDriveStatusPending {
		t.Fatalf("new booking should be Pending, got %s", first.Status)
	}

	// A second booking 30 minutes later sits inside the 90-minute window.
	if _, err := models.CreateTestDrive(dealerCtx, &models.NewTestDrive{
		CustomerId:    fx.customer.ID,
		ProductId:     fx.product.ID,
		ScheduledDate: slot.Add(30 * time.Minute),
	}); err == nil {
		t.Fatal("overlapping booking should be rejected")
	}

	// 90 minutes out is the first free slot.
	second, err := models.CreateTestDrive(dealerCtx, &models.NewTestDrive{
		CustomerId:    fx.customer.ID,
		ProductId:     fx.product.ID,
		ScheduledDate: slot.Add(90 * time.Minute),
	})
	if err != nil {
		t.Fatalf("non-overlapping booking rejected: %v", err)
	}

	// Cancelling the first slot frees its window.
	if _, err := models.CancelTestDrive(dealerCtx, first.ID, "customer no-show"); err != nil {
		t.Fatalf("CancelTestDrive: %v", err)
	}
	if _, err := models.CreateTestDrive(dealerCtx, &models.NewTestDrive{
		CustomerId:    fx.customer.ID,
		ProductId:     fx.product.ID,
		ScheduledDate: slot,
	}); err != nil {
		t.Fatalf("rebooking a cancelled slot failed: %v", err)
	}

	if _, err := models.ConfirmTestDrive(dealerCtx, second.ID); err != nil {
		t.Fatalf("ConfirmTestDrive: %v", err)
	}
	done, err := models.CompleteTestDrive(dealerCtx, second.ID, true, "")
	if err != nil {
		t.Fatalf("CompleteTestDrive: %v", err)
	}
	if done.Status != models.TestDriveStatusSuccessfully {
		t.Fatalf("completed booking status = %s", done.Status)
	}
}

func TestDealerIsolationEnforced(t *testing.T) {
	ctx := setupIntegrationEnv(t)
	fx, dealerCtx := seedFixtures(t, ctx)

	adminCtx := utils.SetIsManufacturerInContext(ctx, true)
	south, err := models.CreateRegion(adminCtx, &models.NewRegion{Name: "South", Code: "S"})
	if err != nil {
		t.Fatalf("CreateRegion: %v", err)
	}
	otherDealer, err := models.CreateDealer(adminCtx, &models.NewDealer{
		Name:     "Saigon EV Center",
		Code:     "SG-01",
		Phone:    "0912345678",
		Email:    "saigon@evdealer.test",
		Address:  "12 Le Loi",
		RegionId: south.ID,
	})
	if err != nil {
		t.Fatalf("CreateDealer: %v", err)
	}

	ownAlloc, err := models.CreateInventoryAllocation(adminCtx, &models.NewInventoryAllocation{
		ProductId:         fx.product.ID,
		DealerId:          fx.dealer.ID,
		AllocatedQuantity: 10,
		AvailableQuantity: 10,
		MaximumStock:      20,
	})
	if err != nil {
		t.Fatalf("CreateInventoryAllocation(own): %v", err)
	}
	otherAlloc, err := models.CreateInventoryAllocation(adminCtx, &models.NewInventoryAllocation{
		ProductId:         fx.product.ID,
		DealerId:          otherDealer.ID,
		AllocatedQuantity: 10,
		AvailableQuantity: 10,
		MaximumStock:      20,
	})
	if err != nil {
		t.Fatalf("CreateInventoryAllocation(other): %v", err)
	}

	// Reads go through the guard: another dealer's allocation is invisible.
	if _, err := models.GetInventoryAllocation(dealerCtx, otherAlloc.ID); err == nil {
		t.Fatal("fetching another dealer's allocation should fail")
	}

	// Adjusting another dealer's stock is rejected before touching the DB.
	if _, err := models.AdjustStock(dealerCtx, &models.AdjustStockInput{
		ProductId: fx.product.ID,
		DealerId:  otherDealer.ID,
		Quantity:  -3,
		Reason:    "shrinkage",
	}); err == nil {
		t.Fatal("adjusting another dealer's stock should fail")
	}

	// So is debiting another dealer as the transfer source.
	if err := models.TransferStock(dealerCtx, &models.TransferStockInput{
		ProductId:    fx.product.ID,
		FromDealerId: otherDealer.ID,
		ToDealerId:   fx.dealer.ID,
		Quantity:     2,
	}); err == nil {
		t.Fatal("transferring out of another dealer's stock should fail")
	}

	// A direct update aimed at another dealer's row matches nothing: the
	// guard pins writes to the caller's dealer even with an explicit filter.
	db := config.GetDB()
	res := db.WithContext(dealerCtx).Model(&models.InventoryAllocation{}).
		Where("id = ?", otherAlloc.ID).
		Update("available_quantity", 999)
	if res.Error != nil {
		t.Fatalf("guarded update errored: %v", res.Error)
	}
	if res.RowsAffected != 0 {
		t.Fatalf("guarded update touched %d rows of another dealer", res.RowsAffected)
	}
	check, err := models.GetInventoryAllocation(adminCtx, otherAlloc.ID)
	if err != nil {
		t.Fatalf("GetInventoryAllocation(admin): %v", err)
	}
	if check.AvailableQuantity != 10 {
		t.Fatalf("other dealer's stock changed to %d", check.AvailableQuantity)
	}

	// A transfer out of the caller's own stock still credits the other side.
	if err := models.TransferStock(dealerCtx, &models.TransferStockInput{
		ProductId:    fx.product.ID,
		FromDealerId: fx.dealer.ID,
		ToDealerId:   otherDealer.ID,
		Quantity:     4,
		Reason:       "regional rebalance",
	}); err != nil {
		t.Fatalf("TransferStock(own source): %v", err)
	}
	own, err := models.GetInventoryAllocation(dealerCtx, ownAlloc.ID)
	if err != nil {
		t.Fatalf("GetInventoryAllocation(own): %v", err)
	}
	if own.AvailableQuantity != 6 {
		t.Fatalf("source stock = %d, want 6", own.AvailableQuantity)
	}
	credited, err := models.GetInventoryAllocation(adminCtx, otherAlloc.ID)
	if err != nil {
		t.Fatalf("GetInventoryAllocation(credited): %v", err)
	}
	if credited.AvailableQuantity != 14 {
		t.Fatalf("destination stock = %d, want 14", credited.AvailableQuantity)
	}

	// Manufacturer staff may adjust any dealer.
	if _, err := models.AdjustStock(adminCtx, &models.AdjustStockInput{
		ProductId: fx.product.ID,
		DealerId:  otherDealer.ID,
		Quantity:  1,
		Reason:    "audit correction",
	}); err != nil {
		t.Fatalf("manufacturer AdjustStock: %v", err)
	}
}

func startRedisContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("evdealer-test-redis-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-p", "127.0.0.1:0:6379",
		"redis:7-alpine",
	)
	if err != nil {
		t.Fatalf("start redis container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "6379/tcp")
	if err != nil {
		t.Fatalf("redis docker port: %v", err)
	}
	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		_, err := dockerRun("exec", name, "redis-cli", "ping")
		if err == nil {
			return name, port
		}
		time.Sleep(250 * time.Millisecond)
	}
	t.Fatalf("redis did not become ready")
	return "", ""
}

func startMySQLContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("evdealer-test-mysql-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-e", "MYSQL_ROOT_PASSWORD=testpw",
		"-e", "MYSQL_DATABASE=evdealer_test",
		"-p", "127.0.0.1:0:3306",
		"mysql:8.0",
		"--default-authentication-plugin=mysql_native_password",
	)
	if err != nil {
		t.Fatalf("start mysql container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "3306/tcp")
	if err != nil {
		t.Fatalf("mysql docker port: %v", err)
	}
	deadline := time.Now().Add(120 * time.Second)
	for time.Now().Before(deadline) {
		_, err := dockerRun("exec", name, "mysqladmin", "ping", "-h", "127.0.0.1", "-ptestpw", "--silent")
		if err == nil {
			return name, port
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("mysql did not become ready")
	return "", ""
}

func dockerHostPort(container, portProto string) (string, error) {
	out, err := dockerRun("port", container, portProto)
	if err != nil {
		return "", fmt.Errorf("docker port: %w: %s", err, out)
	}
	re := regexp.MustCompile(`:(\d+)`)
	m := re.FindStringSubmatch(out)
	if len(m) != 2 {
		return "", fmt.Errorf("unexpected docker port output: %q", out)
	}
	return m[1], nil
}

func dockerRmForce(container string) error {
	if strings.TrimSpace(container) == "" {
		return nil
	}
	_, err := dockerRun("rm", "-f", container)
	return err
}

func dockerRun(args ...string) (string, error) {
	cmd := exec.Command("docker", args...)
	b, err := cmd.CombinedOutput()
	return string(b), err
}
