package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"ridebook/models"
)

// pickupTimeLayout is the wall-clock format the dispatch backend expects.
const pickupTimeLayout = "2006-01-02 15:04:05"

// FindDrivers returns the vehicle regions available around a pickup point,
// each with its fare quote and ETA.
func (c *Client) FindDrivers(ctx context.Context, session *models.Session, req models.FindDriversRequest) ([]models.VehicleRegion, error) {
	form := url.Values{}
	form.Set("latitude", strconv.FormatFloat(req.Latitude, 'f', -1, 64))
	form.Set("longitude", strconv.FormatFloat(req.Longitude, 'f', -1, 64))
	form.Set("pickup_time", req.PickupTime.Format(pickupTimeLayout))
	form.Set("passenger_count", strconv.Itoa(req.PassengerCount))
	form.Set("luggage_count", strconv.Itoa(req.LuggageCount))
	form.Set("payment_mode", strconv.Itoa(req.PaymentMode))
	if req.PromoID != nil {
		form.Set("promo_id", strconv.Itoa(*req.PromoID))
	}
	if req.CouponToApply != nil {
		form.Set("coupon_to_apply", strconv.Itoa(*req.CouponToApply))
	}

	var reply struct {
		Envelope
		Regions []models.VehicleRegion `json:"regions"`
	}
	status, err := c.postForm(ctx, "/api/v1/find_drivers", session, form, &reply)
	if err != nil {
		return nil, err
	}
	if status >= http.StatusBadRequest || reply.Flag == models.FlagSessionExpired {
		return nil, &APIError{Flag: reply.Flag, HTTPStatus: status, Message: reply.Text()}
	}
	return reply.Regions, nil
}

// InsertPickupSchedule submits the shaped booking request. The response is
// returned as-is; callers inspect the flag.
func (c *Client) InsertPickupSchedule(ctx context.Context, session *models.Session, req models.PickupScheduleRequest) (*models.PickupScheduleResponse, error) {
	form := url.Values{}
	form.Set("region_id", strconv.Itoa(req.RegionID))
	form.Set("service_id", strconv.Itoa(req.ServiceID))
	form.Set("vehicle_type", strconv.Itoa(req.VehicleType))
	form.Set("latitude", strconv.FormatFloat(req.Latitude, 'f', -1, 64))
	form.Set("longitude", strconv.FormatFloat(req.Longitude, 'f', -1, 64))
	form.Set("pickup_address", req.PickupAddress)
	form.Set("drop_latitude", strconv.FormatFloat(req.DropLatitude, 'f', -1, 64))
	form.Set("drop_longitude", strconv.FormatFloat(req.DropLongitude, 'f', -1, 64))
	form.Set("drop_address", req.DropAddress)
	form.Set("pickup_time", req.PickupTime.Format(pickupTimeLayout))
	form.Set("passenger_count", strconv.Itoa(req.PassengerCount))
	form.Set("luggage_count", strconv.Itoa(req.LuggageCount))
	form.Set("payment_mode", strconv.Itoa(req.PaymentMode))
	form.Set("customer_name", req.CustomerName)
	form.Set("customer_phone", req.CustomerPhone)
	if req.CardID != "" {
		form.Set("card_id", req.CardID)
	}
	if req.PromoID != nil {
		form.Set("promo_id", strconv.Itoa(*req.PromoID))
	}
	if req.CouponToApply != nil {
		form.Set("coupon_to_apply", strconv.Itoa(*req.CouponToApply))
	}
	if req.DriverNote != "" {
		form.Set("driver_note", req.DriverNote)
	}
	if req.FlightNumber != "" {
		form.Set("flight_number", req.FlightNumber)
	}
	if len(req.Stops) > 0 {
		stops, err := json.Marshal(req.Stops)
		if err != nil {
			return nil, fmt.Errorf("failed to encode stops: %w", err)
		}
		form.Set("stops", string(stops))
	}

	var reply models.PickupScheduleResponse
	status, err := c.postForm(ctx, "/api/v1/insert_pickup_schedule", session, form, &reply)
	if err != nil {
		return nil, err
	}
	if status >= http.StatusBadRequest {
		msg := reply.Message
		if msg == "" {
			msg = reply.Error
		}
		return nil, &APIError{Flag: reply.Flag, HTTPStatus: status, Message: msg}
	}
	return &reply, nil
}

// FetchPromotions lists the promotions applicable at a pickup point.
func (c *Client) FetchPromotions(ctx context.Context, session *models.Session, lat, lng float64) ([]models.Promotion, error) {
	form := url.Values{}
	form.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	form.Set("longitude", strconv.FormatFloat(lng, 'f', -1, 64))

	var reply struct {
		Envelope
		Promotions []models.Promotion `json:"promotions"`
	}
	status, err := c.postForm(ctx, "/api/v1/fetch_promotions", session, form, &reply)
	if err != nil {
		return nil, err
	}
	if status >= http.StatusBadRequest || reply.Flag == models.FlagSessionExpired {
		return nil, &APIError{Flag: reply.Flag, HTTPStatus: status, Message: reply.Text()}
	}
	return reply.Promotions, nil
}
