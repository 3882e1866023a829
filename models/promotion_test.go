package models

import (
	"encoding/json"
	"testing"
)

func TestPromotionUnmarshalAutosCoupon(t *testing.T) {
	raw := `{"id": 5, "type": "autos_coupon", "title": "10% off",
		"original_data": {"account_id": 77, "coupon_code": "TEN", "discount": 10}}`

	var p Promotion
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if p.ID != 5 || p.Type != PromoTypeAutosCoupon {
		t.Fatalf("header fields wrong: %+v", p)
	}
	if p.AutosCoupon == nil {
		t.Fatal("autos_coupon payload not decoded")
	}
	if p.AutosCoupon.AccountID == nil || *p.AutosCoupon.AccountID != 77 {
		t.Fatalf("account_id = %v, want 77", p.AutosCoupon.AccountID)
	}
	if p.PromoCode != nil {
		t.Fatal("promo_code payload must stay nil on an autos_coupon")
	}
}

func TestPromotionUnmarshalPromoCode(t *testing.T) {
	raw := `{"id": 6, "type": "promo_code", "original_data": {"code": "SAVE10", "percentage": 10}}`

	var p Promotion
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if p.PromoCode == nil || p.PromoCode.Code != "SAVE10" {
		t.Fatalf("promo_code payload = %+v", p.PromoCode)
	}
	if p.AutosCoupon != nil {
		t.Fatal("autos_coupon payload must stay nil on a promo_code")
	}
}

func TestPromotionUnmarshalUnknownTypeOrMissingPayload(t *testing.T) {
	var p Promotion
	if err := json.Unmarshal([]byte(`{"id": 7, "type": "mystery", "original_data": {"x": 1}}`), &p); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if p.AutosCoupon != nil || p.PromoCode != nil {
		t.Fatal("unknown type must decode no payload")
	}

	if err := json.Unmarshal([]byte(`{"id": 8, "type": "autos_coupon"}`), &p); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if p.AutosCoupon != nil {
		t.Fatal("missing original_data must decode no payload")
	}
}

func TestPromotionJSONRoundTrip(t *testing.T) {
	account := 77
	promos := []Promotion{
		{ID: 1, Type: PromoTypeAutosCoupon, Title: "10% off",
			AutosCoupon: &AutosCouponPayload{AccountID: &account, CouponCode: "TEN", Discount: 10}},
		{ID: 2, Type: PromoTypePromoCode,
			PromoCode: &PromoCodePayload{Code: "SAVE10", Percentage: 10}},
	}

	data, err := json.Marshal(promos)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var restored []Promotion
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if restored[0].AutosCoupon == nil {
		t.Fatal("round-trip lost the autos_coupon payload")
	}
	if restored[0].AutosCoupon.AccountID == nil || *restored[0].AutosCoupon.AccountID != 77 {
		t.Fatalf("account_id after round-trip = %v, want 77", restored[0].AutosCoupon.AccountID)
	}
	if restored[1].PromoCode == nil || restored[1].PromoCode.Code != "SAVE10" {
		t.Fatalf("promo_code payload after round-trip = %+v", restored[1].PromoCode)
	}
}
