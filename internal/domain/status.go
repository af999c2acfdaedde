package domain

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusSuccess   TransactionStatus = "success"
	StatusFailed    TransactionStatus = "failed"
	StatusCancelled TransactionStatus = "cancelled"
)

// StatusFromGatewayCode maps the payment gateway's notification status
// codes to transaction statuses. Unknown codes count as failed.
func StatusFromGatewayCode(code string) TransactionStatus {
	switch code {
	case "200":
		return StatusSuccess
	case "201":
		return StatusPending
	case "406":
		return StatusFailed
	case "407":
		return StatusCancelled
	default:
		return StatusFailed
	}
}

// CanApplyStatus reports whether a gateway-driven status write is legal
// for the transaction. Gateway notifications are last-write-wins, except
// that a confirmed successful transaction never leaves success.
func (t Transaction) CanApplyStatus(to TransactionStatus) bool {
	if t.IsConfirmed && t.Status == StatusSuccess {
		return to == StatusSuccess
	}
	return true
}

// CanConfirm reports whether the one-way confirmation flag may still be
// set. Confirmation never reverts.
func (t Transaction) CanConfirm() bool {
	return !t.IsConfirmed
}
