package dispatch

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"ridebook/models"
)

// PaymentDetailsReply is the raw card/wallet snapshot for a pickup point.
// Cards arrive un-normalized; the payment service owns the id coercion.
type PaymentDetailsReply struct {
	Envelope
	StripeCards   []models.PaymentCard `json:"stripe_cards"`
	SquareCards   []models.PaymentCard `json:"square_cards"`
	WalletBalance float64              `json:"wallet_balance"`
	StripeEnabled int                  `json:"stripe_enabled"`
	SquareEnabled int                  `json:"square_enabled"`
}

// FetchPaymentDetails returns saved cards and the wallet balance for the
// given pickup coordinates. Flag 144 is generic success on this call.
func (c *Client) FetchPaymentDetails(ctx context.Context, session *models.Session, lat, lng float64) (*PaymentDetailsReply, error) {
	form := url.Values{}
	form.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	form.Set("longitude", strconv.FormatFloat(lng, 'f', -1, 64))

	var reply PaymentDetailsReply
	status, err := c.postForm(ctx, "/api/v1/fetch_wallet", session, form, &reply)
	if err != nil {
		return nil, err
	}
	if status >= http.StatusBadRequest || reply.Flag == models.FlagSessionExpired {
		return nil, &APIError{Flag: reply.Flag, HTTPStatus: status, Message: reply.Text()}
	}
	return &reply, nil
}

// DeleteCard removes a saved card by id. Success flags are provider-specific
// (Stripe 144/200, Square 143/200); the caller checks them via
// models.DeleteSucceeded against the returned flag.
func (c *Client) DeleteCard(ctx context.Context, session *models.Session, provider models.CardProvider, cardID string) (int, string, error) {
	form := url.Values{}
	form.Set("card_id", cardID)

	path := "/api/v1/delete_stripe_card"
	if provider == models.CardProviderSquare {
		path = "/api/v1/delete_square_card"
	}

	var reply Envelope
	status, err := c.postForm(ctx, path, session, form, &reply)
	if err != nil {
		return 0, "", err
	}
	if status >= http.StatusBadRequest {
		return reply.Flag, reply.Text(), &APIError{Flag: reply.Flag, HTTPStatus: status, Message: reply.Text()}
	}
	return reply.Flag, reply.Text(), nil
}
