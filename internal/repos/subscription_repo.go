package repos

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"restockly/internal/apperr"
	"restockly/internal/domain"
)

// SubscriptionRepo tracks back-in-stock notification requests. The schema
// deliberately carries no unique constraint on (shop, product, email):
// duplicate pending rows for one customer are permitted.
type SubscriptionRepo struct{ db *sqlx.DB }

func NewSubscriptionRepo(db *sqlx.DB) *SubscriptionRepo { return &SubscriptionRepo{db: db} }

type subscriptionRow struct {
	PublicID   string         `db:"public_id"`
	Shop       string         `db:"shop"`
	ProductID  string         `db:"product_id"`
	Email      string         `db:"email"`
	Name       string         `db:"name"`
	Phone      string         `db:"phone"`
	Status     string         `db:"status"`
	CreatedAt  string         `db:"created_at"`
	NotifiedAt sql.NullString `db:"notified_at"`
}

func (r subscriptionRow) toDomain() domain.Subscription {
	return domain.Subscription{
		ID:         r.PublicID,
		Shop:       r.Shop,
		ProductID:  r.ProductID,
		Email:      r.Email,
		Name:       r.Name,
		Phone:      r.Phone,
		Status:     domain.SubscriptionStatus(r.Status),
		CreatedAt:  r.CreatedAt,
		NotifiedAt: r.NotifiedAt.String,
	}
}

const subscriptionCols = `public_id, shop, product_id, email, name, phone, status, created_at, notified_at`

// Create inserts a new PENDING subscription and returns it.
func (r *SubscriptionRepo) Create(shop, productID, email, name, phone string) (domain.Subscription, error) {
	if err := checkPair(shop, productID); err != nil {
		return domain.Subscription{}, err
	}
	if strings.TrimSpace(email) == "" {
		return domain.Subscription{}, apperr.Validation("missing email")
	}
	id := uuid.NewString()
	if _, err := r.db.Exec(`
	  INSERT INTO subscriptions(public_id, shop, product_id, email, name, phone, status, created_at)
	  VALUES (?,?,?,?,?,?, 'PENDING', CURRENT_TIMESTAMP)
	`, id, shop, productID, email, name, phone); err != nil {
		return domain.Subscription{}, apperr.Storage(err)
	}
	return r.Get(id)
}

func (r *SubscriptionRepo) Get(publicID string) (domain.Subscription, error) {
	var row subscriptionRow
	err := r.db.Get(&row, `SELECT `+subscriptionCols+` FROM subscriptions WHERE public_id = ?`, publicID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Subscription{}, apperr.Validation("unknown subscription %q", publicID)
	}
	if err != nil {
		return domain.Subscription{}, apperr.Storage(err)
	}
	return row.toDomain(), nil
}

// ListPending returns PENDING subscriptions oldest first, so a restock batch
// notifies earliest subscribers before later ones.
func (r *SubscriptionRepo) ListPending(shop, productID string) ([]domain.Subscription, error) {
	if err := checkPair(shop, productID); err != nil {
		return nil, err
	}
	var rows []subscriptionRow
	err := r.db.Select(&rows, `
	  SELECT `+subscriptionCols+` FROM subscriptions
	  WHERE shop = ? AND product_id = ? AND status = 'PENDING'
	  ORDER BY datetime(created_at) ASC, id ASC
	`, shop, productID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	out := make([]domain.Subscription, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// MarkNotified moves a PENDING subscription to NOTIFIED and stamps the time.
func (r *SubscriptionRepo) MarkNotified(publicID string) error {
	return r.markTransition(publicID, string(domain.SubNotified))
}

// MarkError moves a PENDING subscription to ERROR.
func (r *SubscriptionRepo) MarkError(publicID string) error {
	return r.markTransition(publicID, string(domain.SubError))
}

// markTransition guards the terminal transition with the status predicate:
// zero rows affected on an existing row means it already left PENDING.
func (r *SubscriptionRepo) markTransition(publicID, to string) error {
	res, err := r.db.Exec(`
	  UPDATE subscriptions
	  SET status = ?, notified_at = CASE WHEN ? = 'NOTIFIED' THEN CURRENT_TIMESTAMP ELSE notified_at END
	  WHERE public_id = ? AND status = 'PENDING'
	`, to, to, publicID)
	if err != nil {
		return apperr.Storage(err)
	}
	n, _ := res.RowsAffected()
	if n == 1 {
		return nil
	}
	// Distinguish unknown id from a terminal row.
	var status string
	err = r.db.Get(&status, `SELECT status FROM subscriptions WHERE public_id = ?`, publicID)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.Validation("unknown subscription %q", publicID)
	}
	if err != nil {
		return apperr.Storage(err)
	}
	return apperr.Transition("subscription %s is %s, not PENDING", publicID, status)
}
