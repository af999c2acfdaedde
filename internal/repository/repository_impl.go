package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/warunggenz/pos-backend/internal/domain"
	"github.com/warunggenz/pos-backend/internal/dto"
	"github.com/warunggenz/pos-backend/pkg/errs"
)

type TransactionRepositoryImpl struct {
	db *sqlx.DB
	tx *sqlx.Tx
}

func CreateTransactionRepository(db *sqlx.DB) TransactionRepository {
	return &TransactionRepositoryImpl{
		db: db,
	}
}

func (r *TransactionRepositoryImpl) HandleTrx(ctx context.Context, fn func(ctx context.Context, repo TransactionRepository) error) (err error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	trxRepo := &TransactionRepositoryImpl{
		db: r.db,
		tx: tx,
	}

	err = fn(ctx, trxRepo)

	return err
}

// GetProductForUpdate takes a row lock on the product so concurrent
// order creation serializes its stock decrements.
func (r *TransactionRepositoryImpl) GetProductForUpdate(ctx context.Context, productID int64) (data domain.Product, err error) {
	row := r.tx.QueryRowxContext(ctx, "SELECT * FROM products WHERE id = $1 FOR UPDATE", productID)
	err = row.StructScan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return data, nil
		}
		log.Error().Err(err).Str("component", "GetProductForUpdate").Msg("")
		return data, errs.ErrInternalServer
	}

	return
}

func (r *TransactionRepositoryImpl) DecrementProductStock(ctx context.Context, productID int64, quantity int64) (err error) {
	res, err := r.tx.ExecContext(ctx, "UPDATE products SET stock = stock - $2, updated_at = $3 WHERE id = $1 AND stock >= $2", productID, quantity, time.Now().Unix())
	if err != nil {
		log.Error().Err(err).Str("component", "DecrementProductStock").Msg("")
		return errs.ErrInternalServer
	}

	affected, err := res.RowsAffected()
	if err != nil {
		log.Error().Err(err).Str("component", "DecrementProductStock").Msg("")
		return errs.ErrInternalServer
	}

	if affected != 1 {
		return errs.ErrInsufficientStock
	}

	return nil
}

func (r *TransactionRepositoryImpl) NextTransactionNumber(ctx context.Context) (seq int64, err error) {
	err = r.tx.GetContext(ctx, &seq, "SELECT nextval('transaction_number_seq')")
	if err != nil {
		log.Error().Err(err).Str("component", "NextTransactionNumber").Msg("")
		return 0, errs.ErrInternalServer
	}

	return
}

func (r *TransactionRepositoryImpl) AddTransaction(ctx context.Context, data domain.Transaction) (id int64, err error) {
	nstmt, err := r.tx.PrepareNamedContext(ctx, "INSERT INTO transactions(order_id, invoice_number, transaction_code, cashier_id, user_id, customer_name, total_amount, paid_amount, change_amount, payment_method, status, is_confirmed, confirmed_at, created_at) VALUES (:order_id, :invoice_number, :transaction_code, :cashier_id, :user_id, :customer_name, :total_amount, :paid_amount, :change_amount, :payment_method, :status, :is_confirmed, :confirmed_at, :created_at) returning id")
	if err != nil {
		log.Error().Err(err).Str("component", "AddTransaction").Msg("")
		return
	}

	err = nstmt.GetContext(ctx, &data.ID, data)
	if err != nil {
		log.Error().Err(err).Str("component", "AddTransaction").Msg("")
		return
	}

	return data.ID, nil
}

func (r *TransactionRepositoryImpl) AddTransactionDetails(ctx context.Context, data []domain.TransactionDetail) (err error) {
	_, err = r.tx.NamedExecContext(ctx, "INSERT INTO transaction_details(transaction_id, product_id, price, quantity, subtotal) VALUES (:transaction_id, :product_id, :price, :quantity, :subtotal)", data)
	if err != nil {
		log.Error().Err(err).Str("component", "AddTransactionDetails").Msg("")
		return
	}

	return nil
}

func (r *TransactionRepositoryImpl) GetTransactionByIDForUpdate(ctx context.Context, id int64) (data domain.Transaction, err error) {
	row := r.tx.QueryRowxContext(ctx, "SELECT * FROM transactions WHERE id = $1 FOR UPDATE", id)
	err = row.StructScan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return data, nil
		}
		log.Error().Err(err).Str("component", "GetTransactionByIDForUpdate").Msg("")
		return data, errs.ErrInternalServer
	}

	return
}

func (r *TransactionRepositoryImpl) ConfirmTransaction(ctx context.Context, id int64, cashierID int64, confirmedAt int64) (err error) {
	_, err = r.tx.ExecContext(ctx, "UPDATE transactions SET is_confirmed = TRUE, confirmed_at = $2, cashier_id = $3, status = 'success' WHERE id = $1", id, confirmedAt, cashierID)
	if err != nil {
		log.Error().Err(err).Str("component", "ConfirmTransaction").Msg("")
		return errs.ErrInternalServer
	}

	return nil
}

func (r *TransactionRepositoryImpl) GetTransactionByID(ctx context.Context, id int64) (data domain.Transaction, err error) {
	row := r.db.QueryRowxContext(ctx, "SELECT * FROM transactions WHERE id = $1", id)
	err = row.StructScan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return data, nil
		}
		log.Error().Err(err).Str("component", "GetTransactionByID").Msg("")
		return data, errs.ErrInternalServer
	}

	return
}

func (r *TransactionRepositoryImpl) GetTransactionByOrderID(ctx context.Context, orderID string) (data domain.Transaction, err error) {
	row := r.db.QueryRowxContext(ctx, "SELECT * FROM transactions WHERE order_id = $1", orderID)
	err = row.StructScan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return data, nil
		}
		log.Error().Err(err).Str("component", "GetTransactionByOrderID").Msg("")
		return data, errs.ErrInternalServer
	}

	return
}

func (r *TransactionRepositoryImpl) GetTransactionDetails(ctx context.Context, transactionID int64) (data []domain.TransactionDetail, err error) {
	err = r.db.SelectContext(ctx, &data, "SELECT td.id, td.transaction_id, td.product_id, p.name AS product_name, td.price, td.quantity, td.subtotal FROM transaction_details td JOIN products p ON p.id = td.product_id WHERE td.transaction_id = $1 ORDER BY td.id", transactionID)
	if err != nil {
		log.Error().Err(err).Str("component", "GetTransactionDetails").Msg("")
		return nil, errs.ErrInternalServer
	}

	return
}

func buildTransactionFilter(filter dto.TransactionFilter, args map[string]interface{}) string {
	clause := ""

	if filter.Status != "" {
		clause += " AND status = :status"
		args["status"] = filter.Status
	}

	if filter.IsConfirmed != nil {
		clause += " AND is_confirmed = :is_confirmed"
		args["is_confirmed"] = *filter.IsConfirmed
	}

	if filter.CreatedFrom != 0 {
		clause += " AND created_at >= :created_from"
		args["created_from"] = filter.CreatedFrom
	}

	if filter.CreatedTo != 0 {
		clause += " AND created_at <= :created_to"
		args["created_to"] = filter.CreatedTo
	}

	if filter.Search != "" {
		clause += " AND (invoice_number ILIKE :search OR customer_name ILIKE :search)"
		args["search"] = "%" + filter.Search + "%"
	}

	if filter.ViewerUserID != nil {
		clause += " AND (user_id = :viewer_user_id OR customer_name = :viewer_customer_name)"
		args["viewer_user_id"] = *filter.ViewerUserID
		args["viewer_customer_name"] = filter.ViewerCustomerName
	}

	if filter.PaymentMethod != "" {
		clause += " AND payment_method = :payment_method"
		args["payment_method"] = filter.PaymentMethod
	}

	if filter.CreatedBefore != 0 {
		clause += " AND created_at < :created_before"
		args["created_before"] = filter.CreatedBefore
	}

	return clause
}

func (r *TransactionRepositoryImpl) GetTransactions(ctx context.Context, filter dto.TransactionFilter) (data []domain.Transaction, err error) {
	args := make(map[string]interface{})

	query := "SELECT * FROM transactions WHERE TRUE"
	query += buildTransactionFilter(filter, args)
	query += " ORDER BY created_at DESC, id DESC"

	if filter.Limit != 0 && filter.Page != 0 {
		query += " LIMIT :limit OFFSET :offset"
		args["limit"] = filter.Limit
		args["offset"] = filter.Offset()
	}

	nstmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		log.Error().Err(err).Str("component", "GetTransactions").Msg("")
		return nil, errs.ErrInternalServer
	}

	err = nstmt.SelectContext(ctx, &data, args)
	if err != nil {
		log.Error().Err(err).Str("component", "GetTransactions").Msg("")
		return nil, errs.ErrInternalServer
	}

	return
}

func (r *TransactionRepositoryImpl) CountTransactions(ctx context.Context, filter dto.TransactionFilter) (count int64, err error) {
	args := make(map[string]interface{})

	query := "SELECT COUNT(id) FROM transactions WHERE TRUE"
	query += buildTransactionFilter(filter, args)

	nstmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		log.Error().Err(err).Str("component", "CountTransactions").Msg("")
		return 0, errs.ErrInternalServer
	}

	err = nstmt.GetContext(ctx, &count, args)
	if err != nil {
		log.Error().Err(err).Str("component", "CountTransactions").Msg("")
		return 0, errs.ErrInternalServer
	}

	return
}

// UpdateTransactionStatus applies a gateway-driven status write. The
// guard clause keeps a confirmed successful transaction at success no
// matter what the gateway replays.
func (r *TransactionRepositoryImpl) UpdateTransactionStatus(ctx context.Context, id int64, status domain.TransactionStatus) (err error) {
	_, err = r.db.ExecContext(ctx, "UPDATE transactions SET status = $2 WHERE id = $1 AND (is_confirmed = FALSE OR status <> 'success' OR $2 = 'success')", id, string(status))
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateTransactionStatus").Msg("")
		return errs.ErrInternalServer
	}

	return nil
}
