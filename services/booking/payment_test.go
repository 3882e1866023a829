package booking

import (
	"context"
	"strings"
	"testing"

	"ridebook/clients/dispatch"
	"ridebook/models"

	"go.uber.org/zap"
)

type stubFetcher struct {
	reply *dispatch.PaymentDetailsReply
	err   error
	calls int
}

func (f *stubFetcher) FetchPaymentDetails(ctx context.Context, session *models.Session, lat, lng float64) (*dispatch.PaymentDetailsReply, error) {
	f.calls++
	return f.reply, f.err
}

type stubDeleter struct {
	flag    int
	message string
	err     error
}

func (d *stubDeleter) DeleteCard(ctx context.Context, session *models.Session, provider models.CardProvider, cardID string) (int, string, error) {
	return d.flag, d.message, d.err
}

type stubOperator struct {
	params *models.OperatorParams
	err    error
}

func (o *stubOperator) Params(ctx context.Context) (*models.OperatorParams, error) {
	return o.params, o.err
}

func newPaymentService(t *testing.T, id string, fetcher *stubFetcher, deleter *stubDeleter, operator *stubOperator) *PaymentService {
	t.Helper()
	p := &PaymentService{
		Store:   NewStore(id, nil, zap.NewNop()),
		Fetcher: fetcher,
		Deleter: deleter,
		Logger:  zap.NewNop(),
	}
	if operator != nil {
		p.Operator = operator
	}
	return p
}

func TestCardNormalizationDualKey(t *testing.T) {
	tests := []struct {
		name string
		card models.PaymentCard
	}{
		{"id only", models.PaymentCard{ID: "card_1"}},
		{"card_id only", models.PaymentCard{CardID: "card_1"}},
		{"both set", models.PaymentCard{ID: "card_1", CardID: "card_1"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.card.Normalize()
			if tc.card.ID != "card_1" || tc.card.CardID != "card_1" {
				t.Fatalf("after Normalize: id=%q card_id=%q, want both card_1", tc.card.ID, tc.card.CardID)
			}
		})
	}
}

func TestSyncOnChangeNoOpWithoutPickupOrSession(t *testing.T) {
	fetcher := &stubFetcher{reply: &dispatch.PaymentDetailsReply{}}
	p := newPaymentService(t, "pay-noop", fetcher, nil, nil)

	pickup := loc("A St", 1, 1)
	if err := p.SyncOnChange(context.Background(), nil, &pickup); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.SyncOnChange(context.Background(), authedSession(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetcher.calls != 0 {
		t.Fatalf("fetch ran %d times without pickup+session, want 0", fetcher.calls)
	}
}

func TestSyncOnChangeFetchesOnlyOnChange(t *testing.T) {
	fetcher := &stubFetcher{reply: &dispatch.PaymentDetailsReply{
		StripeCards:   []models.PaymentCard{{ID: "card_s"}},
		WalletBalance: 12.5,
		StripeEnabled: 1,
	}}
	p := newPaymentService(t, "pay-change", fetcher, nil, nil)
	session := authedSession()
	pickup := loc("A St", 1, 1)

	if err := p.SyncOnChange(context.Background(), session, &pickup); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.SyncOnChange(context.Background(), session, &pickup); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetcher.calls != 1 {
		t.Fatalf("unchanged pickup refetched: %d calls, want 1", fetcher.calls)
	}

	moved := loc("B St", 3, 3)
	if err := p.SyncOnChange(context.Background(), session, &moved); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetcher.calls != 2 {
		t.Fatalf("moved pickup must refetch: %d calls, want 2", fetcher.calls)
	}

	details := p.Details()
	if len(details.StripeCards) != 1 || details.StripeCards[0].CardID != "card_s" {
		t.Fatalf("fetched cards not normalized into the snapshot: %+v", details.StripeCards)
	}
	if details.WalletBalance != 12.5 {
		t.Fatalf("wallet balance = %v, want 12.5", details.WalletBalance)
	}
}

func TestCommitClearsVanishedSelection(t *testing.T) {
	fetcher := &stubFetcher{reply: &dispatch.PaymentDetailsReply{
		StripeCards: []models.PaymentCard{{ID: "card_keep"}},
	}}
	p := newPaymentService(t, "pay-reconcile", fetcher, nil, nil)
	p.Store.SelectPaymentMethod(models.PaymentMethodStripeCard, "card_gone")

	pickup := loc("A St", 1, 1)
	if err := p.SyncOnChange(context.Background(), authedSession(), &pickup); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := p.Store.Snapshot().SelectedCardID; got != "" {
		t.Fatalf("vanished card still selected: %q", got)
	}
}

func TestCommitKeepsSurvivingSelection(t *testing.T) {
	fetcher := &stubFetcher{reply: &dispatch.PaymentDetailsReply{
		SquareCards: []models.PaymentCard{{CardID: "card_q"}},
	}}
	p := newPaymentService(t, "pay-keep", fetcher, nil, nil)
	p.Store.SelectPaymentMethod(models.PaymentMethodSquareCard, "card_q")

	pickup := loc("A St", 1, 1)
	if err := p.SyncOnChange(context.Background(), authedSession(), &pickup); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := p.Store.Snapshot().SelectedSquareCardID; got != "card_q" {
		t.Fatalf("surviving card lost its selection: %q", got)
	}
}

func TestApplyProviderConfigPrecedence(t *testing.T) {
	reply := &dispatch.PaymentDetailsReply{StripeEnabled: 1, SquareEnabled: 0}

	// Without operator params the reply's enablement stands.
	var d models.PaymentDetails
	applyProviderConfig(&d, reply, nil)
	if !d.StripeEnabled || d.SquareEnabled {
		t.Fatalf("reply enablement not applied: %+v", d)
	}

	// Operator params override the reply, and non-empty keys win.
	params := &models.OperatorParams{
		StripeEnabled:        false,
		SquareEnabled:        true,
		StripePublishableKey: "pk_operator",
	}
	d = models.PaymentDetails{}
	applyProviderConfig(&d, reply, params)
	if d.StripeEnabled || !d.SquareEnabled {
		t.Fatalf("operator enablement must win: %+v", d)
	}
	if d.StripePublishableKey != "pk_operator" {
		t.Fatalf("publishable key = %q, want pk_operator", d.StripePublishableKey)
	}
}

func TestDeleteSucceededFlagTables(t *testing.T) {
	tests := []struct {
		provider models.CardProvider
		flag     int
		want     bool
	}{
		{models.CardProviderStripe, 144, true},
		{models.CardProviderStripe, 200, true},
		{models.CardProviderStripe, 143, false},
		{models.CardProviderSquare, 143, true},
		{models.CardProviderSquare, 200, true},
		{models.CardProviderSquare, 144, false},
	}
	for _, tc := range tests {
		if got := models.DeleteSucceeded(tc.provider, tc.flag); got != tc.want {
			t.Fatalf("DeleteSucceeded(%s, %d) = %v, want %v", tc.provider, tc.flag, got, tc.want)
		}
	}
}

func TestDeleteCardFailureSurfacesMessage(t *testing.T) {
	p := newPaymentService(t, "pay-del-fail", nil, &stubDeleter{flag: 1, message: "card is in use"}, nil)

	err := p.DeleteCard(context.Background(), authedSession(), models.CardProviderStripe, "card_s")
	if err == nil {
		t.Fatal("non-success flag must be an error")
	}
	if !strings.Contains(err.Error(), "card is in use") {
		t.Fatalf("server message lost: %q", err)
	}
}

func TestDeleteCardRemovesLocallyAndReconciles(t *testing.T) {
	p := newPaymentService(t, "pay-del-ok", nil, &stubDeleter{flag: 144}, nil)
	p.mu.Lock()
	p.details.StripeCards = []models.PaymentCard{{ID: "card_s", CardID: "card_s"}}
	p.mu.Unlock()
	p.Store.SelectPaymentMethod(models.PaymentMethodStripeCard, "card_s")

	if err := p.DeleteCard(context.Background(), authedSession(), models.CardProviderStripe, "card_s"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := p.Details().StripeCards; len(got) != 0 {
		t.Fatalf("deleted card still in snapshot: %+v", got)
	}
	if got := p.Store.Snapshot().SelectedCardID; got != "" {
		t.Fatalf("deleted card still selected: %q", got)
	}
}

func TestRemoveCardDoesNotMutateInput(t *testing.T) {
	cards := []models.PaymentCard{{CardID: "card_a"}, {CardID: "card_b"}}

	got := removeCard(cards, "card_a")
	if len(got) != 1 || got[0].CardID != "card_b" {
		t.Fatalf("filtered cards = %+v, want only card_b", got)
	}
	// Snapshots returned by Details share the input's backing array; the
	// filter must not write through it.
	if cards[0].CardID != "card_a" || cards[1].CardID != "card_b" {
		t.Fatalf("input slice mutated: %+v", cards)
	}
}

func TestDeleteCardLeavesEarlierSnapshotsIntact(t *testing.T) {
	p := newPaymentService(t, "pay-del-snapshot", nil, &stubDeleter{flag: 144}, nil)
	p.mu.Lock()
	p.details.StripeCards = []models.PaymentCard{
		{ID: "card_a", CardID: "card_a"},
		{ID: "card_b", CardID: "card_b"},
	}
	p.mu.Unlock()

	before := p.Details()

	if err := p.DeleteCard(context.Background(), authedSession(), models.CardProviderStripe, "card_a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(before.StripeCards) != 2 || before.StripeCards[0].CardID != "card_a" {
		t.Fatalf("previously returned snapshot mutated: %+v", before.StripeCards)
	}
	if got := p.Details().StripeCards; len(got) != 1 || got[0].CardID != "card_b" {
		t.Fatalf("live snapshot after delete = %+v, want only card_b", got)
	}
}
