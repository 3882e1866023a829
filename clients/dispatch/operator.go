package dispatch

import (
	"context"
	"net/http"
	"net/url"

	"ridebook/models"
)

// FetchOperatorParams returns the per-tenant configuration for the client's
// operator token.
func (c *Client) FetchOperatorParams(ctx context.Context) (*models.OperatorParams, error) {
	var reply struct {
		Envelope
		Params models.OperatorParams `json:"operator_params"`
	}
	status, err := c.postForm(ctx, "/api/v1/operator_params", nil, url.Values{}, &reply)
	if err != nil {
		return nil, err
	}
	if status >= http.StatusBadRequest {
		return nil, &APIError{Flag: reply.Flag, HTTPStatus: status, Message: reply.Text()}
	}
	reply.Params.OperatorToken = c.OperatorToken
	return &reply.Params, nil
}
