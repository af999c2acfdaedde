package domain

// Channel is the origination path of a transaction. Each channel carries
// its own defaulting policy for status, confirmation and payment fields.
type Channel string

const (
	// ChannelCashier covers in-person sales operated at the register.
	ChannelCashier Channel = "cashier"
	// ChannelSelfCheckout covers in-app orders placed by an
	// authenticated customer, awaiting cashier confirmation.
	ChannelSelfCheckout Channel = "self_checkout"
	// ChannelOnline is the legacy online-checkout path.
	ChannelOnline Channel = "online"
	// ChannelGateway covers orders paid through the payment gateway.
	ChannelGateway Channel = "gateway"
)

func (c Channel) CodePrefix() string {
	if c == ChannelOnline {
		return "ONL"
	}
	return "TRX"
}

func (c Channel) DefaultPaymentMethod() string {
	if c == ChannelGateway {
		return "midtrans"
	}
	return "cash"
}

// InitialStatus is the status a transaction starts in: gateway orders
// stay pending until the gateway reports the payment outcome, everything
// else settles at creation.
func (c Channel) InitialStatus() TransactionStatus {
	if c == ChannelGateway {
		return StatusPending
	}
	return StatusSuccess
}

// ConfirmedAtCreation is true only for register sales, where the cashier
// is already standing in front of the buyer.
func (c Channel) ConfirmedAtCreation() bool {
	return c == ChannelCashier
}
