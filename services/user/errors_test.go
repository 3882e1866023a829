package user

import (
	"errors"
	"testing"

	"ridebook/clients/dispatch"
)

func TestIsSessionError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"typed session expiry", &SessionExpiredError{}, true},
		{"wrapped session expiry", errors.Join(errors.New("fetch failed"), &SessionExpiredError{}), true},
		{"api flag 101", &dispatch.APIError{Flag: 101}, true},
		{"api http 401", &dispatch.APIError{HTTPStatus: 401, Message: "nope"}, true},
		{"api other flag", &dispatch.APIError{Flag: 3, HTTPStatus: 400, Message: "bad pickup"}, false},
		{"keyword unauthorized", errors.New("request unauthorized by upstream"), true},
		{"keyword expired", errors.New("token expired"), true},
		{"plain network error", errors.New("connection refused"), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsSessionError(tc.err); got != tc.want {
				t.Fatalf("IsSessionError(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
