// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

package storefrontui

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/popuweekendclub/storefront/lib/catalog"
	"github.com/popuweekendclub/storefront/lib/checkout"
	"github.com/popuweekendclub/storefront/lib/clock"
	"github.com/popuweekendclub/storefront/lib/testutil"
	"github.com/popuweekendclub/storefront/lib/ticketapi"
)

// stubGateway answers every call immediately with scripted results.
type stubGateway struct {
	mu           sync.Mutex
	availability []ticketapi.Availability
	payment      ticketapi.PaymentStatus
	finalized    ticketapi.FinalizeRequest
}

func (gateway *stubGateway) CheckAvailability(ctx context.Context) ([]ticketapi.Availability, error) {
	gateway.mu.Lock()
	defer gateway.mu.Unlock()
	return gateway.availability, nil
}

func (gateway *stubGateway) CreateReservation(ctx context.Context, eventID int64, quantity int) (ticketapi.Reservation, error) {
	return ticketapi.Reservation{ID: 7, OrderID: "ORD-7"}, nil
}

func (gateway *stubGateway) FinalizeOrder(ctx context.Context, orderID string, request ticketapi.FinalizeRequest) (ticketapi.Finalized, error) {
	gateway.mu.Lock()
	defer gateway.mu.Unlock()
	gateway.finalized = request
	return ticketapi.Finalized{PaymentCode: "PAY-CODE-7"}, nil
}

func (gateway *stubGateway) VerifyPayment(ctx context.Context, orderID string) (ticketapi.PaymentStatus, error) {
	gateway.mu.Lock()
	defer gateway.mu.Unlock()
	return gateway.payment, nil
}

func (gateway *stubGateway) setPayment(status ticketapi.PaymentStatus) {
	gateway.mu.Lock()
	defer gateway.mu.Unlock()
	gateway.payment = status
}

func newTestModel(t *testing.T) (Model, *stubGateway, *clock.FakeClock) {
	t.Helper()
	gateway := &stubGateway{
		availability: []ticketapi.Availability{
			{EventID: catalog.EventIDs(6)[catalog.Single], Remaining: 0, SoldOut: true},
			{EventID: catalog.EventIDs(7)[catalog.Single], Remaining: 12},
			{EventID: catalog.EventIDs(8)[catalog.Single], Remaining: -1, WaitingRoomFull: true},
		},
	}
	fakeClock := clock.Fake(time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC))
	controller, err := checkout.New(checkout.Config{
		Gateway: gateway,
		Clock:   fakeClock,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("checkout.New: %v", err)
	}
	t.Cleanup(controller.Stop)

	model := NewModel(controller)
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model), gateway, fakeClock
}

// press sends one key and runs a returned pending-call command to
// completion, feeding its message back into the model.
func press(t *testing.T, model Model, message tea.KeyMsg) Model {
	t.Helper()
	updated, command := model.Update(message)
	model = updated.(Model)
	if command == nil {
		return model
	}
	result := make(chan tea.Msg, 1)
	go func() { result <- command() }()
	select {
	case delivered := <-result:
		if _, ok := delivered.(pendingDoneMsg); ok {
			updated, _ = model.Update(delivered)
			model = updated.(Model)
		}
	case <-time.After(100 * time.Millisecond):
		// Cursor blink and similar commands never resolve here.
	}
	return model
}

func runes(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
	tabKey   = tea.KeyMsg{Type: tea.KeyTab}
	spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	downKey  = tea.KeyMsg{Type: tea.KeyDown}
	rightKey = tea.KeyMsg{Type: tea.KeyRight}
)

func view(model Model) string {
	return ansi.Strip(model.View())
}

func expectStage(t *testing.T, model Model, want checkout.Stage) {
	t.Helper()
	if got := model.snapshot.Stage; got != want {
		t.Fatalf("stage = %v, want %v\nview:\n%s", got, want, view(model))
	}
}

func expectView(t *testing.T, model Model, fragments ...string) {
	t.Helper()
	rendered := view(model)
	for _, fragment := range fragments {
		if !strings.Contains(rendered, fragment) {
			t.Errorf("view missing %q:\n%s", fragment, rendered)
		}
	}
}

func TestModelLoadingBeforeSize(t *testing.T) {
	model, _, _ := newTestModel(t)
	model.ready = false
	if got := model.View(); got != "Loading..." {
		t.Errorf("View() before WindowSizeMsg = %q", got)
	}
}

func TestModelBrowsingView(t *testing.T) {
	model, _, _ := newTestModel(t)
	expectView(t, model,
		catalog.EventTitle,
		"6–8 February 2026 · Taman Ismail Marzuki",
		"POP Culture Spirits",
		"Early Bird",
		"25k",
		"8 tickets - Jumbo pack",
		"[BROWSING]",
		"q quit",
	)
}

func TestModelQuit(t *testing.T) {
	model, _, _ := newTestModel(t)
	_, command := model.Update(runes("q"))
	if command == nil {
		t.Fatal("q should return a command")
	}
	if _, isQuit := command().(tea.QuitMsg); !isQuit {
		t.Error("q should quit from the listing")
	}
}

func TestModelFilterNarrowsListing(t *testing.T) {
	model, _, _ := newTestModel(t)
	model = press(t, model, runes("/"))
	if !model.filtering {
		t.Fatal("/ should start filtering")
	}
	model = press(t, model, runes("jumbo"))
	if len(model.listing) != 1 || model.listing[0].Category != catalog.GroupBundle {
		t.Fatalf("listing after filter = %+v", model.listing)
	}
	// Typing q while filtering must not quit.
	_, command := model.Update(runes("q"))
	if command != nil {
		if _, isQuit := command().(tea.QuitMsg); isQuit {
			t.Error("q inside the filter should not quit")
		}
	}

	model = press(t, model, escKey)
	if model.filtering || len(model.listing) != len(catalog.Products) {
		t.Errorf("esc should clear the filter, listing has %d rows", len(model.listing))
	}
}

func TestModelDatePickerShowsStock(t *testing.T) {
	model, _, _ := newTestModel(t)
	model = press(t, model, downKey) // Single
	model = press(t, model, enterKey)
	expectStage(t, model, checkout.DateSelection)
	expectView(t, model,
		"Choose a date",
		"6 February 2026",
		"sold out",
		"12 left",
		"waiting room full",
		"Quantity 1 (max 5)",
		"Rp 50.000",
	)

	// The cursor starts on the sold out day; picking it is refused.
	model = press(t, model, spaceKey)
	if model.snapshot.SelectedDate != 0 {
		t.Errorf("sold out date should not be selectable")
	}
	expectView(t, model, "! 6 February 2026 is sold out")

	model = press(t, model, rightKey)
	model = press(t, model, spaceKey)
	if model.snapshot.SelectedDate != 7 {
		t.Errorf("SelectedDate = %d, want 7", model.snapshot.SelectedDate)
	}
	model = press(t, model, runes("+"))
	expectView(t, model, "Quantity 2 (max 5)", "Rp 100.000")

	model = press(t, model, escKey)
	expectStage(t, model, checkout.Browsing)
}

// reachContact drives the model from the listing to the contact form
// for a Single ticket on 7 February.
func reachContact(t *testing.T, model Model) Model {
	t.Helper()
	model = press(t, model, downKey)
	model = press(t, model, enterKey)
	model = press(t, model, rightKey)
	model = press(t, model, enterKey)
	expectStage(t, model, checkout.ContactInfo)
	return model
}

func fillContact(t *testing.T, model Model) Model {
	t.Helper()
	model = press(t, model, runes("Ayu Lestari"))
	model = press(t, model, tabKey)
	model = press(t, model, runes("ayu@example.com"))
	model = press(t, model, tabKey)
	model = press(t, model, runes("081234567890"))
	return model
}

func TestModelContactValidation(t *testing.T) {
	model, _, _ := newTestModel(t)
	model = reachContact(t, model)
	expectView(t, model, "Your details", "hold 15:00")

	model = press(t, model, runes("Ayu"))
	if got := model.snapshot.Contact.Name; got != "Ayu" {
		t.Errorf("contact name = %q, want typed text forwarded to the controller", got)
	}

	// Enter walks the fields, then submits from the last one.
	model = press(t, model, enterKey)
	model = press(t, model, enterKey)
	model = press(t, model, enterKey)
	expectStage(t, model, checkout.ContactInfo)
	expectView(t, model, "please fill in every field")
}

func TestModelContactFormKeepsHeldQuantity(t *testing.T) {
	model, _, _ := newTestModel(t)
	model = reachContact(t, model)
	model = press(t, model, tea.KeyMsg{Type: tea.KeyCtrlUp})
	model = press(t, model, runes("+"))
	if got := model.snapshot.Quantity; got != 1 {
		t.Errorf("quantity = %d after keys in the contact form, want the held 1", got)
	}
	if got := model.snapshot.Contact.Name; got != "+" {
		t.Errorf("contact name = %q, want + typed into the field", got)
	}
	expectView(t, model, "Quantity 1")
}

func TestModelFullPurchase(t *testing.T) {
	model, gateway, fakeClock := newTestModel(t)
	model = reachContact(t, model)
	model = fillContact(t, model)
	model = press(t, model, enterKey)
	expectStage(t, model, checkout.Confirmation)
	expectView(t, model, "Confirm your order", "Ayu Lestari", "ORD-7", "Rp 50.000", "esc edit details")

	// Editing keeps what was typed.
	model = press(t, model, escKey)
	expectStage(t, model, checkout.ContactInfo)
	if got := model.inputs[1].Value(); got != "ayu@example.com" {
		t.Errorf("email input = %q after editing", got)
	}
	model = press(t, model, enterKey)
	model = press(t, model, enterKey)
	model = press(t, model, enterKey)
	expectStage(t, model, checkout.Confirmation)

	model = press(t, model, enterKey)
	expectStage(t, model, checkout.Payment)
	expectView(t, model, "PAY-CODE-7", "Time left 15:00")
	if gateway.finalized.TicketType != "Single" || gateway.finalized.DateTicket != "7 February 2026" {
		t.Errorf("finalize request = %+v", gateway.finalized)
	}

	fakeClock.Advance(61 * time.Second)
	updated, command := model.Update(changeMsg{})
	model = updated.(Model)
	if command == nil {
		t.Error("change notifications should re-arm the listener")
	}
	expectView(t, model, "Time left 13:59")

	gateway.setPayment(ticketapi.PaymentStatus{Paid: false})
	model = press(t, model, enterKey)
	expectStage(t, model, checkout.PaymentNotDone)
	expectView(t, model, "Payment not received yet.", "PAY-CODE-7")

	model = press(t, model, enterKey)
	expectStage(t, model, checkout.Payment)

	gateway.setPayment(ticketapi.PaymentStatus{Paid: true, Message: "Payment verified"})
	model = press(t, model, enterKey)
	expectStage(t, model, checkout.ThankYou)
	expectView(t, model, "Thank you!", "Payment verified", "7 February 2026")

	model = press(t, model, enterKey)
	expectStage(t, model, checkout.Browsing)
}

func TestModelHoldExpiryReturnsToListing(t *testing.T) {
	model, _, fakeClock := newTestModel(t)
	model = reachContact(t, model)

	fakeClock.Advance(15 * time.Minute)
	updated, _ := model.Update(changeMsg{})
	model = updated.(Model)
	expectStage(t, model, checkout.Browsing)
	expectView(t, model, "! Reservation hold expired")
}

func TestModelInitListensForChanges(t *testing.T) {
	model, _, _ := newTestModel(t)
	command := model.Init()
	if command == nil {
		t.Fatal("Init should return a listener")
	}
	if _, err := model.controller.SelectCategory(catalog.Single); err != nil {
		t.Fatalf("SelectCategory: %v", err)
	}
	delivered := make(chan tea.Msg, 1)
	go func() { delivered <- command() }()
	if _, ok := testutil.Receive(t, delivered, "waiting for change").(changeMsg); !ok {
		t.Error("listener should deliver a changeMsg")
	}
}

func TestModelLinesFitWidth(t *testing.T) {
	model, _, _ := newTestModel(t)
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	model = updated.(Model)
	for _, line := range strings.Split(view(model), "\n") {
		if width := ansi.StringWidth(line); width > 40 {
			t.Errorf("line width %d exceeds 40: %q", width, line)
		}
	}
}

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{900, "15:00"},
		{839, "13:59"},
		{59, "00:59"},
		{0, "00:00"},
		{-3, "00:00"},
	}
	for _, test := range tests {
		if got := formatCountdown(test.seconds); got != test.want {
			t.Errorf("formatCountdown(%d) = %q, want %q", test.seconds, got, test.want)
		}
	}
}

func TestThemeStockColor(t *testing.T) {
	theme := DefaultTheme
	if theme.StockColor(-1) != theme.FaintText {
		t.Error("unknown stock should be faint")
	}
	if theme.StockColor(0) != theme.Exhaust {
		t.Error("zero stock should use the exhausted color")
	}
	if theme.StockColor(5) != theme.Scarce {
		t.Error("low stock should use the scarce color")
	}
	if theme.StockColor(50) != theme.Plenty {
		t.Error("ample stock should use the plenty color")
	}
}
