package models

import "encoding/json"

// Promotion discriminator tags, one per promotion provider.
const (
	PromoTypeAutosCoupon = "autos_coupon"
	PromoTypePromoCode   = "promo_code"
)

// Promotion is a tagged union over the promotion providers' payloads. Type
// selects which payload pointer is populated; the others stay nil.
type Promotion struct {
	ID    int    `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title,omitempty"`

	AutosCoupon *AutosCouponPayload `json:"autosCoupon,omitempty"`
	PromoCode   *PromoCodePayload   `json:"promoCode,omitempty"`
}

// AutosCouponPayload carries the autos provider's original coupon record.
// AccountID links the coupon to the provider's internal account; it is the
// only promotion field that maps onto couponToApply at submission.
type AutosCouponPayload struct {
	AccountID  *int    `json:"account_id"`
	CouponCode string  `json:"coupon_code,omitempty"`
	Discount   float64 `json:"discount,omitempty"`
}

// PromoCodePayload carries a plain promo-code promotion.
type PromoCodePayload struct {
	Code       string  `json:"code"`
	Percentage float64 `json:"percentage,omitempty"`
}

// MarshalJSON emits the wire form, payload under original_data, so a stored
// promotion decodes back through UnmarshalJSON without losing its payload.
func (p Promotion) MarshalJSON() ([]byte, error) {
	raw := struct {
		ID           int         `json:"id"`
		Type         string      `json:"type"`
		Title        string      `json:"title,omitempty"`
		OriginalData interface{} `json:"original_data,omitempty"`
	}{ID: p.ID, Type: p.Type, Title: p.Title}
	switch {
	case p.AutosCoupon != nil:
		raw.OriginalData = p.AutosCoupon
	case p.PromoCode != nil:
		raw.OriginalData = p.PromoCode
	}
	return json.Marshal(raw)
}

// UnmarshalJSON decodes the wire form, where the provider payload arrives as
// an untyped original_data object discriminated only by type.
func (p *Promotion) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID           int             `json:"id"`
		Type         string          `json:"type"`
		Title        string          `json:"title"`
		OriginalData json.RawMessage `json:"original_data"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.ID = raw.ID
	p.Type = raw.Type
	p.Title = raw.Title
	p.AutosCoupon = nil
	p.PromoCode = nil

	if len(raw.OriginalData) == 0 {
		return nil
	}
	switch raw.Type {
	case PromoTypeAutosCoupon:
		var payload AutosCouponPayload
		if err := json.Unmarshal(raw.OriginalData, &payload); err != nil {
			return err
		}
		p.AutosCoupon = &payload
	case PromoTypePromoCode:
		var payload PromoCodePayload
		if err := json.Unmarshal(raw.OriginalData, &payload); err != nil {
			return err
		}
		p.PromoCode = &payload
	}
	return nil
}
