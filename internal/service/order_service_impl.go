package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"gopkg.in/gomail.v2"

	"github.com/warunggenz/pos-backend/config"
	"github.com/warunggenz/pos-backend/internal/domain"
	"github.com/warunggenz/pos-backend/internal/dto"
	paymentgateway "github.com/warunggenz/pos-backend/internal/infrastructure/payment-gateway"
	"github.com/warunggenz/pos-backend/internal/repository"
	pkgdto "github.com/warunggenz/pos-backend/pkg/dto"
	"github.com/warunggenz/pos-backend/pkg/errs"
	"github.com/warunggenz/pos-backend/pkg/utils"
)

const (
	defaultGuestName      = "Pelanggan Umum"
	pendingPaymentMaxAge  = 24 * time.Hour
	kafkaPublishRetries   = 3
	eventOrderCreated     = "order_created"
	eventOrderConfirmed   = "order_confirmed"
	eventPaymentReconcile = "payment_status_updated"
)

type OrderServiceImpl struct {
	repository    repository.TransactionRepository
	gateway       paymentgateway.PaymentGateway
	kafkaProducer *kafka.Conn
	config        *config.Config
}

func CreateOrderService(repository repository.TransactionRepository, gateway paymentgateway.PaymentGateway, kafkaProducer *kafka.Conn, config *config.Config) OrderService {
	return &OrderServiceImpl{
		repository:    repository,
		gateway:       gateway,
		kafkaProducer: kafkaProducer,
		config:        config,
	}
}

// orderParams carries one origination channel's defaulting policy into
// the assembler, so role branching happens in exactly one place.
type orderParams struct {
	channel       domain.Channel
	actor         domain.Actor
	items         []dto.OrderItem
	paidAmount    *int64
	paymentMethod string
	customerName  string
	orderID       *string
}

func (s *OrderServiceImpl) CreateOrder(ctx context.Context, actor domain.Actor, req dto.OrderRequest) (resp dto.TransactionResponse, err error) {
	params := orderParams{
		actor:        actor,
		items:        req.Items,
		customerName: req.CustomerName,
	}

	if actor.IsStaff() {
		params.channel = domain.ChannelCashier
		params.paidAmount = req.PaidAmount
		params.paymentMethod = req.PaymentMethod
	} else {
		params.channel = domain.ChannelSelfCheckout
	}

	trx, err := s.assembleOrder(ctx, params)
	if err != nil {
		return resp, err
	}

	s.publishTransactionEvent(ctx, eventOrderCreated, trx)

	return buildTransactionResponse(trx), nil
}

func (s *OrderServiceImpl) Checkout(ctx context.Context, actor domain.Actor, req dto.CheckoutRequest) (resp dto.TransactionResponse, err error) {
	if strings.TrimSpace(req.CustomerName) == "" {
		return resp, fmt.Errorf("%w: customer_name is required", errs.ErrClient)
	}

	trx, err := s.assembleOrder(ctx, orderParams{
		channel:      domain.ChannelOnline,
		actor:        actor,
		items:        req.Items,
		customerName: req.CustomerName,
	})
	if err != nil {
		return resp, err
	}

	s.publishTransactionEvent(ctx, eventOrderCreated, trx)

	return buildTransactionResponse(trx), nil
}

func (s *OrderServiceImpl) CreateGatewayOrder(ctx context.Context, actor domain.Actor, req dto.PaymentRequest) (resp dto.PaymentResponse, err error) {
	orderID := fmt.Sprintf("POS-%d-%s", time.Now().Unix(), uuid.New().String()[:8])

	customerName := strings.TrimSpace(req.CustomerName)
	if customerName == "" {
		customerName = defaultGuestName
	}

	trx, err := s.assembleOrder(ctx, orderParams{
		channel:      domain.ChannelGateway,
		actor:        actor,
		items:        req.Items,
		customerName: customerName,
		orderID:      &orderID,
	})
	if err != nil {
		return resp, err
	}

	s.publishTransactionEvent(ctx, eventOrderCreated, trx)

	checkoutItems := make([]paymentgateway.CheckoutItem, len(trx.Details))
	for i, detail := range trx.Details {
		checkoutItems[i] = paymentgateway.CheckoutItem{
			ID:       fmt.Sprintf("%d", detail.ProductID),
			Name:     detail.ProductName,
			Price:    detail.Price,
			Quantity: detail.Quantity,
		}
	}

	// The transaction is already committed: if the gateway call fails
	// the pending unconfirmed record stays behind instead of being
	// silently lost.
	token, err := s.gateway.CreateCheckoutSession(orderID, trx.TotalAmount, paymentgateway.CheckoutCustomer{
		Name:  customerName,
		Email: req.CustomerEmail,
		Phone: req.CustomerPhone,
	}, checkoutItems)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CreateGatewayOrder").Str("order_id", orderID).Msg("checkout session failed, pending transaction kept")
		return resp, fmt.Errorf("%w: %v", errs.ErrExternalService, err)
	}

	s.sendReceiptEmail(ctx, req.CustomerEmail, trx)

	return dto.PaymentResponse{
		Token:       token,
		OrderID:     orderID,
		Transaction: buildTransactionResponse(trx),
	}, nil
}

func (s *OrderServiceImpl) assembleOrder(ctx context.Context, params orderParams) (trx domain.Transaction, err error) {
	if len(params.items) == 0 {
		return trx, fmt.Errorf("%w: at least one item is required", errs.ErrClient)
	}
	for _, item := range params.items {
		if item.Quantity < 1 {
			return trx, fmt.Errorf("%w: quantity must be at least 1", errs.ErrClient)
		}
	}

	now := time.Now()

	err = s.repository.HandleTrx(ctx, func(ctx context.Context, repo repository.TransactionRepository) error {
		var details []domain.TransactionDetail
		var totalAmount int64

		for _, item := range params.items {
			product, err := repo.GetProductForUpdate(ctx, item.ProductID)
			if err != nil {
				return err
			}

			if product.ID == 0 {
				return fmt.Errorf("%w: product %d does not exist", errs.ErrProductNotFound, item.ProductID)
			}

			if product.Stock < item.Quantity {
				return fmt.Errorf("%w: %s has %d left", errs.ErrInsufficientStock, product.Name, product.Stock)
			}

			if err := repo.DecrementProductStock(ctx, product.ID, item.Quantity); err != nil {
				return err
			}

			// Price is frozen at sale time; later catalog price
			// changes never touch existing details.
			subtotal := product.Price * item.Quantity
			totalAmount += subtotal

			details = append(details, domain.TransactionDetail{
				ProductID:   product.ID,
				ProductName: product.Name,
				Price:       product.Price,
				Quantity:    item.Quantity,
				Subtotal:    subtotal,
			})
		}

		seq, err := repo.NextTransactionNumber(ctx)
		if err != nil {
			return err
		}

		stamp := utils.DateStamp(now.Unix())
		invoiceNumber := fmt.Sprintf("INV/%s/%06d", stamp, seq)
		transactionCode := fmt.Sprintf("%s/%s/%06d", params.channel.CodePrefix(), stamp, seq)

		paidAmount := totalAmount
		var changeAmount int64

		paymentMethod := params.paymentMethod
		if paymentMethod == "" {
			paymentMethod = params.channel.DefaultPaymentMethod()
		}

		var cashierID, userID *int64
		if params.channel == domain.ChannelCashier {
			actorID := params.actor.ID
			cashierID = &actorID
			userID = &actorID

			if params.paidAmount != nil {
				paidAmount = *params.paidAmount
			}
			changeAmount = paidAmount - totalAmount
			if changeAmount < 0 {
				return fmt.Errorf("%w: total %d, paid %d", errs.ErrInsufficientPayment, totalAmount, paidAmount)
			}
		} else if params.actor.ID != 0 {
			actorID := params.actor.ID
			userID = &actorID
		}

		customerName := strings.TrimSpace(params.customerName)
		if customerName == "" {
			customerName = params.actor.Name
		}
		if customerName == "" {
			customerName = defaultGuestName
		}

		isConfirmed := params.channel.ConfirmedAtCreation()
		var confirmedAt *int64
		if isConfirmed {
			ts := now.Unix()
			confirmedAt = &ts
		}

		trx = domain.Transaction{
			OrderID:         params.orderID,
			InvoiceNumber:   invoiceNumber,
			TransactionCode: transactionCode,
			CashierID:       cashierID,
			UserID:          userID,
			CustomerName:    customerName,
			TotalAmount:     totalAmount,
			PaidAmount:      paidAmount,
			ChangeAmount:    changeAmount,
			PaymentMethod:   paymentMethod,
			Status:          params.channel.InitialStatus(),
			IsConfirmed:     isConfirmed,
			ConfirmedAt:     confirmedAt,
			CreatedAt:       now.Unix(),
		}

		id, err := repo.AddTransaction(ctx, trx)
		if err != nil {
			return err
		}

		for idx := range details {
			details[idx].TransactionID = id
		}

		if err := repo.AddTransactionDetails(ctx, details); err != nil {
			return err
		}

		trx.ID = id
		trx.Details = details

		return nil
	})
	if err != nil {
		return domain.Transaction{}, err
	}

	return trx, nil
}

func (s *OrderServiceImpl) HandlePaymentNotification(ctx context.Context, req dto.PaymentNotification) (err error) {
	trx, err := s.repository.GetTransactionByOrderID(ctx, req.OrderID)
	if err != nil {
		return err
	}

	if trx.ID == 0 {
		return fmt.Errorf("%w: no transaction for order %s", errs.ErrNotFound, req.OrderID)
	}

	newStatus := domain.StatusFromGatewayCode(req.StatusCode)

	// Past this point the gateway always gets an acknowledgment; a
	// retry storm helps nobody. Anomalies are logged for the operator.
	if !trx.CanApplyStatus(newStatus) {
		log.Ctx(ctx).Warn().
			Str("component", "HandlePaymentNotification").
			Str("order_id", req.OrderID).
			Str("status_code", req.StatusCode).
			Msg("gateway status ignored on confirmed transaction")
		return nil
	}

	if err := s.repository.UpdateTransactionStatus(ctx, trx.ID, newStatus); err != nil {
		log.Ctx(ctx).Error().Err(err).
			Str("component", "HandlePaymentNotification").
			Str("order_id", req.OrderID).
			Msg("status update failed")
		return nil
	}

	trx.Status = newStatus
	s.publishTransactionEvent(ctx, eventPaymentReconcile, trx)

	return nil
}

func (s *OrderServiceImpl) ConfirmTransaction(ctx context.Context, actor domain.Actor, id int64) (resp dto.TransactionResponse, err error) {
	if !actor.IsStaff() {
		return resp, errs.ErrForbidden
	}

	var trx domain.Transaction
	now := time.Now().Unix()

	err = s.repository.HandleTrx(ctx, func(ctx context.Context, repo repository.TransactionRepository) error {
		trx, err = repo.GetTransactionByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if trx.ID == 0 {
			return errs.ErrNotFound
		}

		if !trx.CanConfirm() {
			return errs.ErrAlreadyConfirmed
		}

		return repo.ConfirmTransaction(ctx, id, actor.ID, now)
	})
	if err != nil {
		return resp, err
	}

	trx.IsConfirmed = true
	trx.ConfirmedAt = &now
	trx.CashierID = &actor.ID
	trx.Status = domain.StatusSuccess

	trx.Details, err = s.repository.GetTransactionDetails(ctx, trx.ID)
	if err != nil {
		return resp, err
	}

	s.publishTransactionEvent(ctx, eventOrderConfirmed, trx)

	return buildTransactionResponse(trx), nil
}

func (s *OrderServiceImpl) GetTransaction(ctx context.Context, actor domain.Actor, id int64) (resp dto.TransactionResponse, err error) {
	trx, err := s.repository.GetTransactionByID(ctx, id)
	if err != nil {
		return resp, err
	}

	if trx.ID == 0 {
		return resp, errs.ErrNotFound
	}

	if !actor.IsStaff() {
		if trx.UserID == nil || *trx.UserID != actor.ID {
			return resp, errs.ErrForbidden
		}
	}

	trx.Details, err = s.repository.GetTransactionDetails(ctx, trx.ID)
	if err != nil {
		return resp, err
	}

	return buildTransactionResponse(trx), nil
}

func (s *OrderServiceImpl) GetTransactions(ctx context.Context, actor domain.Actor, filter dto.TransactionFilter) (resp pkgdto.PaginationResponse, err error) {
	filter.Normalize()

	if filter.StartDate != "" && filter.EndDate != "" {
		filter.CreatedFrom, err = utils.ParseDateStartOfDay(filter.StartDate)
		if err != nil {
			return resp, fmt.Errorf("%w: invalid start_date", errs.ErrClient)
		}
		filter.CreatedTo, err = utils.ParseDateEndOfDay(filter.EndDate)
		if err != nil {
			return resp, fmt.Errorf("%w: invalid end_date", errs.ErrClient)
		}
	}

	if !actor.IsStaff() {
		actorID := actor.ID
		filter.ViewerUserID = &actorID
		filter.ViewerCustomerName = actor.Name
	}

	count, err := s.repository.CountTransactions(ctx, filter)
	if err != nil {
		return resp, err
	}

	transactions, err := s.repository.GetTransactions(ctx, filter)
	if err != nil {
		return resp, err
	}

	records := make([]dto.TransactionResponse, 0, len(transactions))
	for _, trx := range transactions {
		records = append(records, buildTransactionResponse(trx))
	}

	resp.Metadata = pkgdto.PaginationMetadata{
		TotalCount: count,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	resp.Records = records

	return resp, nil
}

func (s *OrderServiceImpl) GetTransactionByOrderID(ctx context.Context, orderID string) (resp dto.PublicTransactionResponse, err error) {
	if orderID == "" {
		return resp, fmt.Errorf("%w: order_id is required", errs.ErrClient)
	}

	trx, err := s.repository.GetTransactionByOrderID(ctx, orderID)
	if err != nil {
		return resp, err
	}

	if trx.ID == 0 {
		return resp, errs.ErrNotFound
	}

	details, err := s.repository.GetTransactionDetails(ctx, trx.ID)
	if err != nil {
		return resp, err
	}

	detailRecords := make([]dto.TransactionDetailResponse, 0, len(details))
	for _, detail := range details {
		detailRecords = append(detailRecords, buildDetailResponse(detail))
	}

	return dto.PublicTransactionResponse{
		ID:            trx.ID,
		OrderID:       trx.OrderID,
		InvoiceNumber: trx.InvoiceNumber,
		CustomerName:  trx.CustomerName,
		TotalAmount:   trx.TotalAmount,
		PaymentMethod: trx.PaymentMethod,
		Status:        string(trx.Status),
		CreatedAt:     trx.CreatedAt,
		Details:       detailRecords,
	}, nil
}

// ExpireStalePayments flips gateway transactions that stayed pending past
// the payment window to failed. Stock is deliberately left alone: there
// is no restock path for abandoned orders.
func (s *OrderServiceImpl) ExpireStalePayments() {
	ctx := context.Background()

	transactions, err := s.repository.GetTransactions(ctx, dto.TransactionFilter{
		Status:        string(domain.StatusPending),
		PaymentMethod: "midtrans",
		CreatedBefore: time.Now().Add(-pendingPaymentMaxAge).Unix(),
		Limit:         100,
		Page:          1,
	})
	if err != nil {
		return
	}

	for _, trx := range transactions {
		if err := s.repository.UpdateTransactionStatus(ctx, trx.ID, domain.StatusFailed); err != nil {
			log.Error().Err(err).Str("component", "ExpireStalePayments").Int64("transaction_id", trx.ID).Msg("")
			continue
		}

		log.Info().Str("component", "ExpireStalePayments").Str("invoice_number", trx.InvoiceNumber).Msg("pending payment expired")

		trx.Status = domain.StatusFailed
		s.publishTransactionEvent(ctx, eventPaymentReconcile, trx)
	}
}

func (s *OrderServiceImpl) publishTransactionEvent(ctx context.Context, eventType string, trx domain.Transaction) {
	if s.kafkaProducer == nil {
		return
	}

	event := dto.TransactionEvent{
		TransactionID:   trx.ID,
		InvoiceNumber:   trx.InvoiceNumber,
		TransactionCode: trx.TransactionCode,
		TotalAmount:     trx.TotalAmount,
		Status:          string(trx.Status),
	}
	if trx.OrderID != nil {
		event.OrderID = *trx.OrderID
	}

	jsonMsg, err := json.Marshal(dto.KafkaMessage{
		EventType: eventType,
		Data:      event,
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "publishTransactionEvent").Msg("")
		return
	}

	for i := 0; i < kafkaPublishRetries; i++ {
		_, err = s.kafkaProducer.WriteMessages(kafka.Message{
			Key:   []byte(trx.InvoiceNumber),
			Value: jsonMsg,
		})
		if err == nil {
			return
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "publishTransactionEvent").Msg("")
		time.Sleep(time.Second * time.Duration(i+1))
	}
}

func (s *OrderServiceImpl) sendReceiptEmail(ctx context.Context, to string, trx domain.Transaction) {
	if s.config == nil || s.config.SMTPConfig.Host == "" || to == "" {
		return
	}

	message := gomail.NewMessage()
	message.SetHeader("From", s.config.SMTPConfig.Sender)
	message.SetHeader("To", to)
	message.SetHeader("Subject", fmt.Sprintf("Pesanan %s diterima", trx.InvoiceNumber))
	message.SetBody("text/plain", fmt.Sprintf("Terima kasih %s! Pesanan %s sebesar Rp %d sedang diproses. Waktu pesanan: %s.",
		trx.CustomerName, trx.InvoiceNumber, trx.TotalAmount, utils.ConvertDateTimeToHumanReadableFormat(trx.CreatedAt)))

	if err := utils.SendEmail(message, s.config.SMTPConfig.Sender, s.config.SMTPConfig.Password, s.config.SMTPConfig.Host, s.config.SMTPConfig.Port); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "sendReceiptEmail").Msg("")
	}
}

func buildDetailResponse(detail domain.TransactionDetail) dto.TransactionDetailResponse {
	return dto.TransactionDetailResponse{
		ProductID:   detail.ProductID,
		ProductName: detail.ProductName,
		Price:       detail.Price,
		Quantity:    detail.Quantity,
		Subtotal:    detail.Subtotal,
	}
}

func buildTransactionResponse(trx domain.Transaction) dto.TransactionResponse {
	resp := dto.TransactionResponse{
		ID:              trx.ID,
		OrderID:         trx.OrderID,
		InvoiceNumber:   trx.InvoiceNumber,
		TransactionCode: trx.TransactionCode,
		CashierID:       trx.CashierID,
		UserID:          trx.UserID,
		CustomerName:    trx.CustomerName,
		TotalAmount:     trx.TotalAmount,
		PaidAmount:      trx.PaidAmount,
		ChangeAmount:    trx.ChangeAmount,
		PaymentMethod:   trx.PaymentMethod,
		Status:          string(trx.Status),
		IsConfirmed:     trx.IsConfirmed,
		ConfirmedAt:     trx.ConfirmedAt,
		CreatedAt:       trx.CreatedAt,
	}

	for _, detail := range trx.Details {
		resp.Details = append(resp.Details, buildDetailResponse(detail))
	}

	return resp
}
