package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warunggenz/pos-backend/config"
	"github.com/warunggenz/pos-backend/internal/domain"
	"github.com/warunggenz/pos-backend/internal/dto"
	paymentgateway "github.com/warunggenz/pos-backend/internal/infrastructure/payment-gateway"
	"github.com/warunggenz/pos-backend/internal/repository"
	"github.com/warunggenz/pos-backend/pkg/errs"
	"github.com/warunggenz/pos-backend/pkg/utils"
)

type fakeTransactionRepository struct {
	products     map[int64]domain.Product
	transactions map[int64]domain.Transaction
	details      map[int64][]domain.TransactionDetail
	nextID       int64
	nextSeq      int64

	listResult []domain.Transaction
	lastFilter dto.TransactionFilter
}

func newFakeRepository() *fakeTransactionRepository {
	return &fakeTransactionRepository{
		products:     make(map[int64]domain.Product),
		transactions: make(map[int64]domain.Transaction),
		details:      make(map[int64][]domain.TransactionDetail),
	}
}

func (f *fakeTransactionRepository) snapshot() *fakeTransactionRepository {
	clone := newFakeRepository()
	clone.nextID = f.nextID
	clone.nextSeq = f.nextSeq
	for k, v := range f.products {
		clone.products[k] = v
	}
	for k, v := range f.transactions {
		clone.transactions[k] = v
	}
	for k, v := range f.details {
		clone.details[k] = append([]domain.TransactionDetail(nil), v...)
	}
	return clone
}

func (f *fakeTransactionRepository) restore(snap *fakeTransactionRepository) {
	f.products = snap.products
	f.transactions = snap.transactions
	f.details = snap.details
	f.nextID = snap.nextID
	f.nextSeq = snap.nextSeq
}

func (f *fakeTransactionRepository) HandleTrx(ctx context.Context, fn func(ctx context.Context, repo repository.TransactionRepository) error) error {
	snap := f.snapshot()
	if err := fn(ctx, f); err != nil {
		f.restore(snap)
		return err
	}
	return nil
}

func (f *fakeTransactionRepository) GetProductForUpdate(ctx context.Context, productID int64) (domain.Product, error) {
	return f.products[productID], nil
}

func (f *fakeTransactionRepository) DecrementProductStock(ctx context.Context, productID int64, quantity int64) error {
	product := f.products[productID]
	if product.Stock < quantity {
		return errs.ErrInsufficientStock
	}
	product.Stock -= quantity
	f.products[productID] = product
	return nil
}

func (f *fakeTransactionRepository) NextTransactionNumber(ctx context.Context) (int64, error) {
	f.nextSeq++
	return f.nextSeq, nil
}

func (f *fakeTransactionRepository) AddTransaction(ctx context.Context, data domain.Transaction) (int64, error) {
	f.nextID++
	data.ID = f.nextID
	f.transactions[data.ID] = data
	return data.ID, nil
}

func (f *fakeTransactionRepository) AddTransactionDetails(ctx context.Context, data []domain.TransactionDetail) error {
	for _, detail := range data {
		f.details[detail.TransactionID] = append(f.details[detail.TransactionID], detail)
	}
	return nil
}

func (f *fakeTransactionRepository) GetTransactionByIDForUpdate(ctx context.Context, id int64) (domain.Transaction, error) {
	return f.transactions[id], nil
}

func (f *fakeTransactionRepository) ConfirmTransaction(ctx context.Context, id int64, cashierID int64, confirmedAt int64) error {
	trx := f.transactions[id]
	trx.IsConfirmed = true
	trx.ConfirmedAt = &confirmedAt
	trx.CashierID = &cashierID
	trx.Status = domain.StatusSuccess
	f.transactions[id] = trx
	return nil
}

func (f *fakeTransactionRepository) GetTransactionByID(ctx context.Context, id int64) (domain.Transaction, error) {
	return f.transactions[id], nil
}

func (f *fakeTransactionRepository) GetTransactionByOrderID(ctx context.Context, orderID string) (domain.Transaction, error) {
	for _, trx := range f.transactions {
		if trx.OrderID != nil && *trx.OrderID == orderID {
			return trx, nil
		}
	}
	return domain.Transaction{}, nil
}

func (f *fakeTransactionRepository) GetTransactionDetails(ctx context.Context, transactionID int64) ([]domain.TransactionDetail, error) {
	return f.details[transactionID], nil
}

func (f *fakeTransactionRepository) GetTransactions(ctx context.Context, filter dto.TransactionFilter) ([]domain.Transaction, error) {
	f.lastFilter = filter
	return f.listResult, nil
}

func (f *fakeTransactionRepository) CountTransactions(ctx context.Context, filter dto.TransactionFilter) (int64, error) {
	return int64(len(f.listResult)), nil
}

func (f *fakeTransactionRepository) UpdateTransactionStatus(ctx context.Context, id int64, status domain.TransactionStatus) error {
	trx, ok := f.transactions[id]
	if !ok {
		return nil
	}
	trx.Status = status
	f.transactions[id] = trx
	return nil
}

type fakeGateway struct {
	token string
	err   error
	calls int
}

func (g *fakeGateway) CreateCheckoutSession(orderRef string, grossAmount int64, customer paymentgateway.CheckoutCustomer, items []paymentgateway.CheckoutItem) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.token, nil
}

func newOrderService(repo *fakeTransactionRepository, gateway *fakeGateway) OrderService {
	return CreateOrderService(repo, gateway, nil, &config.Config{})
}

func seedProducts(repo *fakeTransactionRepository) {
	repo.products[1] = domain.Product{ID: 1, Name: "Es Teh", Price: 5000, Stock: 20}
	repo.products[2] = domain.Product{ID: 2, Name: "Nasi Goreng", Price: 15000, Stock: 5}
	repo.products[3] = domain.Product{ID: 3, Name: "Kerupuk", Price: 2000, Stock: 0}
}

var (
	cashierActor  = domain.Actor{ID: 7, Role: domain.RoleCashier, Name: "Budi"}
	customerActor = domain.Actor{ID: 42, Role: domain.RoleCustomer, Name: "Siti"}
	guestActor    = domain.Actor{}
)

func int64Ptr(v int64) *int64 {
	return &v
}

func TestCreateOrder_Cashier(t *testing.T) {
	repo := newFakeRepository()
	seedProducts(repo)
	svc := newOrderService(repo, &fakeGateway{})

	resp, err := svc.CreateOrder(context.Background(), cashierActor, dto.OrderRequest{
		Items: []dto.OrderItem{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		},
		PaidAmount:   int64Ptr(30000),
		CustomerName: "Pak Joko",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(25000), resp.TotalAmount)
	assert.Equal(t, int64(30000), resp.PaidAmount)
	assert.Equal(t, int64(5000), resp.ChangeAmount)
	assert.Equal(t, "cash", resp.PaymentMethod)
	assert.Equal(t, string(domain.StatusSuccess), resp.Status)
	assert.True(t, resp.IsConfirmed)
	assert.NotNil(t, resp.ConfirmedAt)
	require.NotNil(t, resp.CashierID)
	assert.Equal(t, cashierActor.ID, *resp.CashierID)
	assert.Equal(t, "Pak Joko", resp.CustomerName)
	require.Len(t, resp.Details, 2)
	assert.Equal(t, int64(10000), resp.Details[0].Subtotal)
	assert.Equal(t, int64(15000), resp.Details[1].Subtotal)

	stamp := utils.DateStamp(time.Now().Unix())
	assert.Equal(t, fmt.Sprintf("INV/%s/000001", stamp), resp.InvoiceNumber)
	assert.Equal(t, fmt.Sprintf("TRX/%s/000001", stamp), resp.TransactionCode)

	assert.Equal(t, int64(18), repo.products[1].Stock)
	assert.Equal(t, int64(4), repo.products[2].Stock)
}

func TestCreateOrder_CashierInsufficientPayment(t *testing.T) {
	repo := newFakeRepository()
	seedProducts(repo)
	svc := newOrderService(repo, &fakeGateway{})

	_, err := svc.CreateOrder(context.Background(), cashierActor, dto.OrderRequest{
		Items:      []dto.OrderItem{{ProductID: 2, Quantity: 1}},
		PaidAmount: int64Ptr(10000),
	})
	require.ErrorIs(t, err, errs.ErrInsufficientPayment)

	// Rolled back: stock untouched, nothing stored.
	assert.Equal(t, int64(5), repo.products[2].Stock)
	assert.Empty(t, repo.transactions)
}

func TestCreateOrder_SelfCheckout(t *testing.T) {
	repo := newFakeRepository()
	seedProducts(repo)
	svc := newOrderService(repo, &fakeGateway{})

	resp, err := svc.CreateOrder(context.Background(), customerActor, dto.OrderRequest{
		Items: []dto.OrderItem{{ProductID: 1, Quantity: 1}},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5000), resp.TotalAmount)
	assert.Equal(t, int64(5000), resp.PaidAmount)
	assert.Equal(t, int64(0), resp.ChangeAmount)
	assert.Equal(t, "cash", resp.PaymentMethod)
	assert.Equal(t, string(domain.StatusSuccess), resp.Status)
	assert.False(t, resp.IsConfirmed)
	assert.Nil(t, resp.ConfirmedAt)
	assert.Nil(t, resp.CashierID)
	require.NotNil(t, resp.UserID)
	assert.Equal(t, customerActor.ID, *resp.UserID)
	assert.Equal(t, "Siti", resp.CustomerName)
}

func TestCreateOrder_StockDepletion(t *testing.T) {
	repo := newFakeRepository()
	seedProducts(repo)
	svc := newOrderService(repo, &fakeGateway{})

	_, err := svc.CreateOrder(context.Background(), cashierActor, dto.OrderRequest{
		Items:      []dto.OrderItem{{ProductID: 2, Quantity: 3}},
		PaidAmount: int64Ptr(45000),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), repo.products[2].Stock)

	_, err = svc.CreateOrder(context.Background(), cashierActor, dto.OrderRequest{
		Items:      []dto.OrderItem{{ProductID: 2, Quantity: 3}},
		PaidAmount: int64Ptr(45000),
	})
	require.ErrorIs(t, err, errs.ErrInsufficientStock)
	assert.Equal(t, int64(2), repo.products[2].Stock)
}

func TestCreateOrder_AtomicRollback(t *testing.T) {
	repo := newFakeRepository()
	seedProducts(repo)
	svc := newOrderService(repo, &fakeGateway{})

	_, err := svc.CreateOrder(context.Background(), customerActor, dto.OrderRequest{
		Items: []dto.OrderItem{
			{ProductID: 1, Quantity: 5},
			{ProductID: 3, Quantity: 1},
		},
	})
	require.ErrorIs(t, err, errs.ErrInsufficientStock)

	// The first item's decrement must not survive the failed order.
	assert.Equal(t, int64(20), repo.products[1].Stock)
	assert.Empty(t, repo.transactions)
	assert.Empty(t, repo.details)
}

func TestCreateOrder_Validation(t *testing.T) {
	repo := newFakeRepository()
	seedProducts(repo)
	svc := newOrderService(repo, &fakeGateway{})

	testCases := []struct {
		Name        string
		Request     dto.OrderRequest
		ExpectedErr error
	}{
		{
			Name:        "No items",
			Request:     dto.OrderRequest{},
			ExpectedErr: errs.ErrClient,
		},
		{
			Name: "Zero quantity",
			Request: dto.OrderRequest{
				Items: []dto.OrderItem{{ProductID: 1, Quantity: 0}},
			},
			ExpectedErr: errs.ErrClient,
		},
		{
			Name: "Unknown product",
			Request: dto.OrderRequest{
				Items: []dto.OrderItem{{ProductID: 99, Quantity: 1}},
			},
			ExpectedErr: errs.ErrProductNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			_, err := svc.CreateOrder(context.Background(), customerActor, tc.Request)
			assert.ErrorIs(t, err, tc.ExpectedErr)
		})
	}
}

func TestCheckout(t *testing.T) {
	repo := newFakeRepository()
	seedProducts(repo)
	svc := newOrderService(repo, &fakeGateway{})

	_, err := svc.Checkout(context.Background(), customerActor, dto.CheckoutRequest{
		Items: []dto.OrderItem{{ProductID: 1, Quantity: 1}},
	})
	require.ErrorIs(t, err, errs.ErrClient)

	resp, err := svc.Checkout(context.Background(), customerActor, dto.CheckoutRequest{
		Items:        []dto.OrderItem{{ProductID: 1, Quantity: 1}},
		CustomerName: "Siti",
	})
	require.NoError(t, err)

	stamp := utils.DateStamp(time.Now().Unix())
	assert.Equal(t, fmt.Sprintf("ONL/%s/000001", stamp), resp.TransactionCode)
	assert.Equal(t, string(domain.StatusSuccess), resp.Status)
	assert.False(t, resp.IsConfirmed)
}

func TestCreateGatewayOrder(t *testing.T) {
	repo := newFakeRepository()
	seedProducts(repo)
	gateway := &fakeGateway{token: "snap-token-1"}
	svc := newOrderService(repo, gateway)

	resp, err := svc.CreateGatewayOrder(context.Background(), guestActor, dto.PaymentRequest{
		Items: []dto.OrderItem{{ProductID: 2, Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, "snap-token-1", resp.Token)
	assert.Contains(t, resp.OrderID, "POS-")
	assert.Equal(t, "midtrans", resp.Transaction.PaymentMethod)
	assert.Equal(t, string(domain.StatusPending), resp.Transaction.Status)
	assert.False(t, resp.Transaction.IsConfirmed)
	assert.Equal(t, "Pelanggan Umum", resp.Transaction.CustomerName)
	assert.Equal(t, 1, gateway.calls)
	assert.Equal(t, int64(3), repo.products[2].Stock)
}

func TestCreateGatewayOrder_GatewayFailureKeepsTransaction(t *testing.T) {
	repo := newFakeRepository()
	seedProducts(repo)
	gateway := &fakeGateway{err: errors.New("gateway unreachable")}
	svc := newOrderService(repo, gateway)

	_, err := svc.CreateGatewayOrder(context.Background(), customerActor, dto.PaymentRequest{
		Items: []dto.OrderItem{{ProductID: 1, Quantity: 1}},
	})
	require.ErrorIs(t, err, errs.ErrExternalService)

	// The pending record and the stock decrement stay behind so the
	// order can be reconciled or expired later.
	require.Len(t, repo.transactions, 1)
	for _, trx := range repo.transactions {
		assert.Equal(t, domain.StatusPending, trx.Status)
	}
	assert.Equal(t, int64(19), repo.products[1].Stock)
}

func TestHandlePaymentNotification(t *testing.T) {
	testCases := []struct {
		Name           string
		StatusCode     string
		ExpectedStatus domain.TransactionStatus
	}{
		{Name: "Settlement", StatusCode: "200", ExpectedStatus: domain.StatusSuccess},
		{Name: "Pending", StatusCode: "201", ExpectedStatus: domain.StatusPending},
		{Name: "Denied", StatusCode: "406", ExpectedStatus: domain.StatusFailed},
		{Name: "Expired", StatusCode: "407", ExpectedStatus: domain.StatusCancelled},
		{Name: "Unknown code", StatusCode: "888", ExpectedStatus: domain.StatusFailed},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			repo := newFakeRepository()
			orderID := "POS-1700000000-abcd1234"
			repo.transactions[1] = domain.Transaction{
				ID:      1,
				OrderID: &orderID,
				Status:  domain.StatusPending,
			}
			svc := newOrderService(repo, &fakeGateway{})

			err := svc.HandlePaymentNotification(context.Background(), dto.PaymentNotification{
				OrderID:    orderID,
				StatusCode: tc.StatusCode,
			})
			require.NoError(t, err)
			assert.Equal(t, tc.ExpectedStatus, repo.transactions[1].Status)
		})
	}
}

func TestHandlePaymentNotification_UnknownOrder(t *testing.T) {
	repo := newFakeRepository()
	svc := newOrderService(repo, &fakeGateway{})

	err := svc.HandlePaymentNotification(context.Background(), dto.PaymentNotification{
		OrderID:    "POS-0-missing",
		StatusCode: "200",
	})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestHandlePaymentNotification_ConfirmedSuccessStaysLocked(t *testing.T) {
	repo := newFakeRepository()
	orderID := "POS-1700000000-abcd1234"
	repo.transactions[1] = domain.Transaction{
		ID:          1,
		OrderID:     &orderID,
		Status:      domain.StatusSuccess,
		IsConfirmed: true,
	}
	svc := newOrderService(repo, &fakeGateway{})

	// A late denial replay must be acknowledged without touching the row.
	err := svc.HandlePaymentNotification(context.Background(), dto.PaymentNotification{
		OrderID:    orderID,
		StatusCode: "406",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, repo.transactions[1].Status)

	// Replaying the settlement is harmless.
	err = svc.HandlePaymentNotification(context.Background(), dto.PaymentNotification{
		OrderID:    orderID,
		StatusCode: "200",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, repo.transactions[1].Status)
}

func TestConfirmTransaction(t *testing.T) {
	repo := newFakeRepository()
	repo.transactions[1] = domain.Transaction{ID: 1, Status: domain.StatusSuccess}
	repo.details[1] = []domain.TransactionDetail{{TransactionID: 1, ProductID: 1, Quantity: 1}}
	svc := newOrderService(repo, &fakeGateway{})

	_, err := svc.ConfirmTransaction(context.Background(), customerActor, 1)
	assert.ErrorIs(t, err, errs.ErrForbidden)

	_, err = svc.ConfirmTransaction(context.Background(), cashierActor, 99)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	resp, err := svc.ConfirmTransaction(context.Background(), cashierActor, 1)
	require.NoError(t, err)
	assert.True(t, resp.IsConfirmed)
	assert.NotNil(t, resp.ConfirmedAt)
	require.NotNil(t, resp.CashierID)
	assert.Equal(t, cashierActor.ID, *resp.CashierID)
	assert.Equal(t, string(domain.StatusSuccess), resp.Status)
	require.Len(t, resp.Details, 1)

	_, err = svc.ConfirmTransaction(context.Background(), cashierActor, 1)
	assert.ErrorIs(t, err, errs.ErrAlreadyConfirmed)
}

func TestGetTransaction_Visibility(t *testing.T) {
	repo := newFakeRepository()
	ownerID := customerActor.ID
	otherID := int64(99)
	repo.transactions[1] = domain.Transaction{ID: 1, UserID: &ownerID}
	repo.transactions[2] = domain.Transaction{ID: 2, UserID: &otherID}
	repo.transactions[3] = domain.Transaction{ID: 3}
	svc := newOrderService(repo, &fakeGateway{})

	_, err := svc.GetTransaction(context.Background(), customerActor, 1)
	assert.NoError(t, err)

	_, err = svc.GetTransaction(context.Background(), customerActor, 2)
	assert.ErrorIs(t, err, errs.ErrForbidden)

	_, err = svc.GetTransaction(context.Background(), customerActor, 3)
	assert.ErrorIs(t, err, errs.ErrForbidden)

	_, err = svc.GetTransaction(context.Background(), cashierActor, 2)
	assert.NoError(t, err)

	_, err = svc.GetTransaction(context.Background(), cashierActor, 404)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestGetTransactions_CustomerScoping(t *testing.T) {
	repo := newFakeRepository()
	repo.listResult = []domain.Transaction{{ID: 1, InvoiceNumber: "INV/20260831/000001"}}
	svc := newOrderService(repo, &fakeGateway{})

	resp, err := svc.GetTransactions(context.Background(), customerActor, dto.TransactionFilter{})
	require.NoError(t, err)

	require.NotNil(t, repo.lastFilter.ViewerUserID)
	assert.Equal(t, customerActor.ID, *repo.lastFilter.ViewerUserID)
	assert.Equal(t, customerActor.Name, repo.lastFilter.ViewerCustomerName)
	assert.Equal(t, int64(1), resp.Metadata.TotalCount)
	assert.Equal(t, 1, resp.Metadata.Page)
	assert.Equal(t, 10, resp.Metadata.Limit)

	_, err = svc.GetTransactions(context.Background(), cashierActor, dto.TransactionFilter{})
	require.NoError(t, err)
	assert.Nil(t, repo.lastFilter.ViewerUserID)
	assert.Empty(t, repo.lastFilter.ViewerCustomerName)
}

func TestGetTransactions_DateRange(t *testing.T) {
	repo := newFakeRepository()
	svc := newOrderService(repo, &fakeGateway{})

	_, err := svc.GetTransactions(context.Background(), cashierActor, dto.TransactionFilter{
		StartDate: "2026-08-01",
		EndDate:   "2026-08-31",
	})
	require.NoError(t, err)
	assert.NotZero(t, repo.lastFilter.CreatedFrom)
	assert.NotZero(t, repo.lastFilter.CreatedTo)
	assert.Greater(t, repo.lastFilter.CreatedTo, repo.lastFilter.CreatedFrom)

	_, err = svc.GetTransactions(context.Background(), cashierActor, dto.TransactionFilter{
		StartDate: "not-a-date",
		EndDate:   "2026-08-31",
	})
	assert.ErrorIs(t, err, errs.ErrClient)
}

func TestGetTransactionByOrderID(t *testing.T) {
	repo := newFakeRepository()
	orderID := "POS-1700000000-abcd1234"
	repo.transactions[1] = domain.Transaction{
		ID:            1,
		OrderID:       &orderID,
		InvoiceNumber: "INV/20260831/000001",
		CustomerName:  "Siti",
		Status:        domain.StatusPending,
	}
	repo.details[1] = []domain.TransactionDetail{{TransactionID: 1, ProductID: 1, ProductName: "Es Teh", Quantity: 2}}
	svc := newOrderService(repo, &fakeGateway{})

	_, err := svc.GetTransactionByOrderID(context.Background(), "")
	assert.ErrorIs(t, err, errs.ErrClient)

	_, err = svc.GetTransactionByOrderID(context.Background(), "POS-0-missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)

	resp, err := svc.GetTransactionByOrderID(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, "INV/20260831/000001", resp.InvoiceNumber)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	require.Len(t, resp.Details, 1)
	assert.Equal(t, "Es Teh", resp.Details[0].ProductName)
}

func TestExpireStalePayments(t *testing.T) {
	repo := newFakeRepository()
	orderID := "POS-1700000000-abcd1234"
	repo.transactions[1] = domain.Transaction{
		ID:            1,
		OrderID:       &orderID,
		Status:        domain.StatusPending,
		PaymentMethod: "midtrans",
	}
	repo.listResult = []domain.Transaction{repo.transactions[1]}
	repo.products[1] = domain.Product{ID: 1, Name: "Es Teh", Price: 5000, Stock: 10}
	svc := newOrderService(repo, &fakeGateway{})

	svc.ExpireStalePayments()

	assert.Equal(t, string(domain.StatusPending), repo.lastFilter.Status)
	assert.Equal(t, "midtrans", repo.lastFilter.PaymentMethod)
	assert.NotZero(t, repo.lastFilter.CreatedBefore)
	assert.Equal(t, domain.StatusFailed, repo.transactions[1].Status)

	// Expiry never restocks.
	assert.Equal(t, int64(10), repo.products[1].Stock)
}
