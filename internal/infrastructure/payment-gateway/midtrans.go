package paymentgateway

import (
	"fmt"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"

	"github.com/warunggenz/pos-backend/config"
	circuitbreaker "github.com/warunggenz/pos-backend/internal/infrastructure/circuit-breaker"
)

type CheckoutItem struct {
	ID       string
	Name     string
	Price    int64
	Quantity int64
}

type CheckoutCustomer struct {
	Name  string
	Email string
	Phone string
}

// PaymentGateway creates checkout sessions with the external payment
// provider. The provider reports the payment outcome later through the
// notification webhook.
type PaymentGateway interface {
	CreateCheckoutSession(orderRef string, grossAmount int64, customer CheckoutCustomer, items []CheckoutItem) (token string, err error)
}

type MidtransGateway struct {
	client    snap.Client
	finishURL string
	cb        *gobreaker.CircuitBreaker[string]
}

// CreateMidtransGateway builds a snap client from the injected config.
// Credentials are never read from ambient process state at call time.
func CreateMidtransGateway(config *config.Config) *MidtransGateway {
	env := midtrans.Sandbox
	if config.MidtransConfig.Environment == "production" {
		env = midtrans.Production
	}

	var client snap.Client
	client.New(config.MidtransConfig.ServerKey, env)

	return &MidtransGateway{
		client:    client,
		finishURL: config.MidtransConfig.FinishURL,
		cb:        circuitbreaker.CreateCircuitBreaker[string]("midtrans"),
	}
}

func (g *MidtransGateway) CreateCheckoutSession(orderRef string, grossAmount int64, customer CheckoutCustomer, items []CheckoutItem) (string, error) {
	itemDetails := make([]midtrans.ItemDetails, len(items))
	for i, item := range items {
		itemDetails[i] = midtrans.ItemDetails{
			ID:    item.ID,
			Name:  item.Name,
			Price: item.Price,
			Qty:   int32(item.Quantity),
		}
	}

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderRef,
			GrossAmt: grossAmount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: customer.Name,
			Email: customer.Email,
			Phone: customer.Phone,
		},
		Items: &itemDetails,
	}

	if g.finishURL != "" {
		snapReq.Callbacks = &snap.Callbacks{Finish: fmt.Sprintf("%s/%s", g.finishURL, orderRef)}
	}

	token, err := g.cb.Execute(func() (string, error) {
		resp, midErr := g.client.CreateTransaction(snapReq)
		if midErr != nil {
			return "", midErr
		}
		return resp.Token, nil
	})
	if err != nil {
		log.Error().Err(err).Str("component", "CreateCheckoutSession").Msg("")
		return "", err
	}

	return token, nil
}
