package models

// Numeric status flags returned by the dispatch API. These are not HTTP
// statuses; the same value can mean different things on different calls, so
// each context gets its own named constant.
const (
	// FlagSessionExpired forces a logout on any call that returns it.
	FlagSessionExpired = 101

	// FlagSquareCardDeleted is Square's card-deletion success code.
	FlagSquareCardDeleted = 143

	// FlagStripeCardDeleted is Stripe's card-deletion success code. The same
	// value means "email already registered" on a profile update and generic
	// success on a wallet fetch.
	FlagStripeCardDeleted    = 144
	FlagProfileEmailConflict = 144
	FlagWalletFetchOK        = 144

	// FlagGenericSuccess is the common success code.
	FlagGenericSuccess = 200
)
