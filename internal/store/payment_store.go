package store

import (
	"context"

	"ecommerce-service/internal/apperr"
	"ecommerce-service/internal/model"
)

// PaymentStore persists the payment hierarchy in its single-table form.
// It is the only code that interprets the discriminator: writes derive
// it from the populated variant, reads materialize exactly one variant
// from it.
type PaymentStore struct {
	conn conn
}

// toRecord flattens a tagged payment into the physical row, leaving the
// other variant's columns NULL. Validate has already pinned the payload
// to the method.
func toRecord(p *model.Payment) *model.PaymentRecord {
	rec := &model.PaymentRecord{
		ID:          p.ID,
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate,
		OrderID:     p.OrderID,
		PaymentType: string(p.Method),
	}
	switch p.Method {
	case model.PaymentMethodCreditCard:
		card := p.CreditCard.CardNumber
		rec.CardNumber = &card
	case model.PaymentMethodPayPal:
		email := p.PayPal.Email
		rec.PayPalEmail = &email
	}
	return rec
}

// fromRecord materializes a row into exactly one variant. An
// unrecognized discriminator, or columns inconsistent with it, fail
// with a MappingError; the latter cannot happen for rows written
// through this store and is a defensive check.
func fromRecord(rec *model.PaymentRecord) (*model.Payment, error) {
	p := &model.Payment{
		ID:          rec.ID,
		OrderID:     rec.OrderID,
		Amount:      rec.Amount,
		PaymentDate: rec.PaymentDate,
		Method:      model.PaymentMethod(rec.PaymentType),
	}
	switch p.Method {
	case model.PaymentMethodCreditCard:
		if rec.CardNumber == nil || *rec.CardNumber == "" {
			return nil, apperr.Mapping(rec.PaymentType, "card number column is empty")
		}
		if rec.PayPalEmail != nil {
			return nil, apperr.Mapping(rec.PaymentType, "paypal email populated on a card payment")
		}
		p.CreditCard = &model.CreditCardDetails{CardNumber: *rec.CardNumber}
	case model.PaymentMethodPayPal:
		if rec.PayPalEmail == nil || *rec.PayPalEmail == "" {
			return nil, apperr.Mapping(rec.PaymentType, "paypal email column is empty")
		}
		if rec.CardNumber != nil {
			return nil, apperr.Mapping(rec.PaymentType, "card number populated on a paypal payment")
		}
		p.PayPal = &model.PayPalDetails{Email: *rec.PayPalEmail}
	default:
		return nil, apperr.Mapping(rec.PaymentType, "unrecognized discriminator")
	}
	return p, nil
}

// Attach records a payment for an order. The unique order index makes a
// second payment on the same order fail with a unique violation; a
// missing order fails the foreign key.
func (s *PaymentStore) Attach(ctx context.Context, payment *model.Payment) error {
	if err := payment.Validate(); err != nil {
		return err
	}
	db, err := s.conn.handle(ctx)
	if err != nil {
		return err
	}
	rec := toRecord(payment)
	if err := db.Create(rec).Error; err != nil {
		return s.conn.finishWrite(translate(err))
	}
	payment.ID = rec.ID
	return nil
}

// Get fetches one payment by id.
func (s *PaymentStore) Get(ctx context.Context, id uint) (*model.Payment, error) {
	db, err := s.conn.handle(ctx)
	if err != nil {
		return nil, err
	}
	var rec model.PaymentRecord
	if err := db.First(&rec, id).Error; err != nil {
		return nil, translate(err)
	}
	return fromRecord(&rec)
}

// GetByOrder fetches the payment attached to an order, if any.
func (s *PaymentStore) GetByOrder(ctx context.Context, orderID uint) (*model.Payment, error) {
	db, err := s.conn.handle(ctx)
	if err != nil {
		return nil, err
	}
	var rec model.PaymentRecord
	if err := db.Where("order_id = ?", orderID).First(&rec).Error; err != nil {
		return nil, translate(err)
	}
	return fromRecord(&rec)
}

// List returns every payment, each resolved to its variant.
func (s *PaymentStore) List(ctx context.Context) ([]model.Payment, error) {
	db, err := s.conn.handle(ctx)
	if err != nil {
		return nil, err
	}
	var recs []model.PaymentRecord
	if err := db.Order("id").Find(&recs).Error; err != nil {
		return nil, translate(err)
	}
	payments := make([]model.Payment, 0, len(recs))
	for i := range recs {
		p, err := fromRecord(&recs[i])
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, nil
}

// Delete removes a payment, releasing its order for deletion.
func (s *PaymentStore) Delete(ctx context.Context, id uint) error {
	db, err := s.conn.handle(ctx)
	if err != nil {
		return err
	}
	res := db.Delete(&model.PaymentRecord{}, id)
	if res.Error != nil {
		return s.conn.finishWrite(translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return s.conn.finishWrite(apperr.ErrNotFound)
	}
	return nil
}
