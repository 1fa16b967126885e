package services

import (
	"restockly/internal/apperr"
	"restockly/internal/domain"
	"restockly/internal/repos"
	"restockly/internal/validate"
)

// SubscriptionService tracks back-in-stock notification requests.
type SubscriptionService struct {
	Subs *repos.SubscriptionRepo
}

func NewSubscriptionService(subs *repos.SubscriptionRepo) *SubscriptionService {
	return &SubscriptionService{Subs: subs}
}

// Subscribe records a PENDING request. It deliberately does not deduplicate
// against existing rows for the same email and product; the schema permits
// duplicates.
func (s *SubscriptionService) Subscribe(shop, productID, email, name, phone string) (domain.Subscription, error) {
	shop, productID, err := checkShopProduct(shop, productID)
	if err != nil {
		return domain.Subscription{}, err
	}
	email, ok := validate.Email(email)
	if !ok {
		return domain.Subscription{}, apperr.Validation("invalid email")
	}
	name, ok = validate.Name(name)
	if !ok {
		return domain.Subscription{}, apperr.Validation("invalid name")
	}
	phone, ok = validate.Phone(phone)
	if !ok {
		return domain.Subscription{}, apperr.Validation("invalid phone")
	}
	return s.Subs.Create(shop, productID, email, name, phone)
}

// ListPending returns the FIFO notification queue for a product.
func (s *SubscriptionService) ListPending(shop, productID string) ([]domain.Subscription, error) {
	shop, productID, err := checkShopProduct(shop, productID)
	if err != nil {
		return nil, err
	}
	return s.Subs.ListPending(shop, productID)
}

func (s *SubscriptionService) MarkNotified(id string) error {
	if id == "" {
		return apperr.Validation("missing subscription id")
	}
	return s.Subs.MarkNotified(id)
}

func (s *SubscriptionService) MarkError(id string) error {
	if id == "" {
		return apperr.Validation("missing subscription id")
	}
	return s.Subs.MarkError(id)
}
