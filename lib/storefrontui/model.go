// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

package storefrontui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/popuweekendclub/storefront/lib/catalog"
	"github.com/popuweekendclub/storefront/lib/checkout"
)

// changeMsg is delivered when the controller signals a change.
type changeMsg struct{}

// pendingDoneMsg is delivered when a gateway call started by an
// intent completes.
type pendingDoneMsg struct{}

// contactFields is the contact form order.
var contactFields = [...]checkout.ContactField{
	checkout.FieldName,
	checkout.FieldEmail,
	checkout.FieldWhatsApp,
}

// Model is the bubbletea model of the storefront.
type Model struct {
	controller *checkout.Controller
	theme      Theme
	keys       KeyMap

	// snapshot is the controller state the view renders. Refreshed
	// after every intent and every change notification.
	snapshot checkout.Snapshot

	// stage is the stage of the previous refresh, used to detect
	// stage entry.
	stage checkout.Stage

	width  int
	height int
	ready  bool

	// Browsing: highlighted listing row and the fuzzy filter.
	cursor    int
	filtering bool
	filter    textinput.Model
	listing   []catalog.Product

	// DateSelection: index into catalog.Days under the cursor.
	dateCursor int

	// ContactInfo: one input per contact field.
	inputs     [len(contactFields)]textinput.Model
	inputFocus int

	// notice is a one-off message from a refused intent (busy,
	// invalid move). Cleared on the next key press.
	notice string
}

// NewModel creates a Model driving controller.
func NewModel(controller *checkout.Controller) Model {
	filter := textinput.New()
	filter.Prompt = "/"
	filter.Placeholder = "search tickets"
	filter.CharLimit = 32

	model := Model{
		controller: controller,
		theme:      DefaultTheme,
		keys:       DefaultKeyMap,
		filter:     filter,
		listing:    catalog.Products,
	}

	placeholders := [...]string{"Full name", "name@example.com", "08xxxxxxxxxx"}
	for index := range model.inputs {
		input := textinput.New()
		input.Prompt = ""
		input.Placeholder = placeholders[index]
		input.CharLimit = 128
		model.inputs[index] = input
	}

	model.refresh()
	return model
}

// Init implements tea.Model. Starts listening for controller changes.
func (model Model) Init() tea.Cmd {
	return listenForChanges(model.controller.Changes())
}

// listenForChanges returns a tea.Cmd that blocks until the controller
// signals a change, then delivers it as a changeMsg.
func listenForChanges(channel <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-channel; !ok {
			return nil
		}
		return changeMsg{}
	}
}

// awaitPending returns a tea.Cmd that blocks until pending completes.
// Nil pending yields a nil command.
func awaitPending(pending *checkout.Pending) tea.Cmd {
	if pending == nil {
		return nil
	}
	return func() tea.Msg {
		<-pending.Done()
		return pendingDoneMsg{}
	}
}

// refresh re-reads the controller snapshot and handles stage entry.
func (model *Model) refresh() {
	model.snapshot = model.controller.Snapshot()
	if model.snapshot.Stage == model.stage {
		return
	}
	model.stage = model.snapshot.Stage
	switch model.stage {
	case checkout.Browsing:
		model.cursor = 0
	case checkout.DateSelection:
		model.dateCursor = 0
	case checkout.ContactInfo:
		contact := model.snapshot.Contact
		for index, value := range []string{contact.Name, contact.Email, contact.WhatsApp} {
			model.inputs[index].SetValue(value)
		}
		model.focusInput(0)
	}
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		return model, nil

	case changeMsg:
		model.refresh()
		return model, listenForChanges(model.controller.Changes())

	case pendingDoneMsg:
		model.refresh()
		return model, nil

	case tea.KeyMsg:
		if key.Matches(message, model.keys.ForceQuit) {
			return model, tea.Quit
		}
		model.notice = ""
		var command tea.Cmd
		switch model.snapshot.Stage {
		case checkout.Browsing:
			command = model.handleBrowsingKeys(message)
		case checkout.DateSelection:
			command = model.handleDateKeys(message)
		case checkout.ContactInfo:
			command = model.handleContactKeys(message)
		case checkout.Confirmation:
			command = model.handleConfirmationKeys(message)
		case checkout.Payment:
			command = model.handlePaymentKeys(message)
		case checkout.PaymentNotDone:
			command = model.handleNotDoneKeys(message)
		case checkout.ThankYou:
			command = model.handleThankYouKeys(message)
		}
		model.refresh()
		return model, command
	}
	return model, nil
}

// report records a refused intent for the status line. Failures the
// controller already stored as LastError render from the snapshot.
func (model *Model) report(err error) {
	if err == nil {
		return
	}
	model.refresh()
	if model.snapshot.LastError == err {
		return
	}
	model.notice = checkout.ErrorMessage(err)
}

// run invokes an intent that may start a gateway call.
func (model *Model) run(intent func() (*checkout.Pending, error)) tea.Cmd {
	pending, err := intent()
	if err != nil {
		model.report(err)
		return nil
	}
	return awaitPending(pending)
}

func (model *Model) handleBrowsingKeys(message tea.KeyMsg) tea.Cmd {
	if model.filtering {
		switch message.Type {
		case tea.KeyEsc:
			model.filtering = false
			model.filter.Blur()
			model.filter.SetValue("")
			model.applyFilter()
			return nil
		case tea.KeyEnter:
			model.filtering = false
			model.filter.Blur()
			return nil
		case tea.KeyUp, tea.KeyDown:
			// Fall through to list navigation.
		default:
			var command tea.Cmd
			model.filter, command = model.filter.Update(message)
			model.applyFilter()
			return command
		}
	}

	switch {
	case key.Matches(message, model.keys.Quit):
		return tea.Quit
	case key.Matches(message, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
		}
	case key.Matches(message, model.keys.Down):
		if model.cursor < len(model.listing)-1 {
			model.cursor++
		}
	case key.Matches(message, model.keys.FilterActivate):
		model.filtering = true
		return model.filter.Focus()
	case key.Matches(message, model.keys.Back):
		if model.filter.Value() != "" {
			model.filter.SetValue("")
			model.applyFilter()
		}
	case key.Matches(message, model.keys.Select):
		if model.cursor >= len(model.listing) {
			return nil
		}
		category := model.listing[model.cursor].Category
		return model.run(func() (*checkout.Pending, error) {
			return model.controller.SelectCategory(category)
		})
	}
	return nil
}

// applyFilter rebuilds the listing from the filter query and clamps
// the cursor.
func (model *Model) applyFilter() {
	matches := catalog.Search(model.filter.Value())
	model.listing = make([]catalog.Product, len(matches))
	for index, match := range matches {
		model.listing[index] = match.Product
	}
	if model.cursor >= len(model.listing) {
		model.cursor = max(len(model.listing)-1, 0)
	}
}

func (model *Model) handleDateKeys(message tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(message, model.keys.Quit):
		return tea.Quit
	case key.Matches(message, model.keys.Left), key.Matches(message, model.keys.Up):
		if model.dateCursor > 0 {
			model.dateCursor--
		}
	case key.Matches(message, model.keys.Right), key.Matches(message, model.keys.Down):
		if model.dateCursor < len(catalog.Days)-1 {
			model.dateCursor++
		}
	case key.Matches(message, model.keys.Toggle):
		model.report(model.controller.ToggleDate(catalog.Days[model.dateCursor]))
	case key.Matches(message, model.keys.Increase):
		model.report(model.controller.IncreaseQuantity())
	case key.Matches(message, model.keys.Decrease):
		model.report(model.controller.DecreaseQuantity())
	case key.Matches(message, model.keys.Refresh):
		return model.run(model.controller.RefreshAvailability)
	case key.Matches(message, model.keys.Select):
		// Enter on an unselected date picks it first.
		day := catalog.Days[model.dateCursor]
		if model.snapshot.SelectedDate != day {
			if err := model.controller.ToggleDate(day); err != nil {
				model.report(err)
				return nil
			}
		}
		return model.run(model.controller.Proceed)
	case key.Matches(message, model.keys.Back):
		model.report(model.controller.Close())
	}
	return nil
}

func (model *Model) focusInput(index int) tea.Cmd {
	model.inputFocus = index
	var command tea.Cmd
	for position := range model.inputs {
		if position == index {
			command = model.inputs[position].Focus()
		} else {
			model.inputs[position].Blur()
		}
	}
	return command
}

func (model *Model) handleContactKeys(message tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(message, model.keys.NextField):
		return model.focusInput((model.inputFocus + 1) % len(model.inputs))
	case key.Matches(message, model.keys.PreviousField):
		return model.focusInput((model.inputFocus + len(model.inputs) - 1) % len(model.inputs))
	case key.Matches(message, model.keys.Select):
		if model.inputFocus < len(model.inputs)-1 {
			return model.focusInput(model.inputFocus + 1)
		}
		return model.run(model.controller.Proceed)
	}

	var command tea.Cmd
	before := model.inputs[model.inputFocus].Value()
	model.inputs[model.inputFocus], command = model.inputs[model.inputFocus].Update(message)
	if value := model.inputs[model.inputFocus].Value(); value != before {
		model.report(model.controller.SetContactField(contactFields[model.inputFocus], value))
	}
	return command
}

func (model *Model) handleConfirmationKeys(message tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(message, model.keys.Quit):
		return tea.Quit
	case key.Matches(message, model.keys.Select):
		return model.run(model.controller.Confirm)
	case key.Matches(message, model.keys.Back):
		model.report(model.controller.EditDetails())
	}
	return nil
}

func (model *Model) handlePaymentKeys(message tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(message, model.keys.Quit):
		return tea.Quit
	case key.Matches(message, model.keys.Select):
		return model.run(model.controller.CompletePayment)
	}
	return nil
}

func (model *Model) handleNotDoneKeys(message tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(message, model.keys.Quit):
		return tea.Quit
	case key.Matches(message, model.keys.Select), key.Matches(message, model.keys.Back):
		model.report(model.controller.AcknowledgeNotDone())
	}
	return nil
}

func (model *Model) handleThankYouKeys(message tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(message, model.keys.Quit):
		return tea.Quit
	case key.Matches(message, model.keys.Select), key.Matches(message, model.keys.Back):
		model.report(model.controller.Close())
	}
	return nil
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	var body string
	switch model.snapshot.Stage {
	case checkout.Browsing:
		body = model.renderBrowsing()
	case checkout.DateSelection:
		body = model.renderDateSelection()
	case checkout.ContactInfo:
		body = model.renderContactInfo()
	case checkout.Confirmation:
		body = model.renderConfirmation()
	case checkout.Payment:
		body = model.renderPayment()
	case checkout.PaymentNotDone:
		body = model.renderNotDone()
	case checkout.ThankYou:
		body = model.renderThankYou()
	}

	sections := []string{model.renderHeader(), body}
	if status := model.renderStatus(); status != "" {
		sections = append(sections, status)
	}
	separator := lipgloss.NewStyle().
		Foreground(model.theme.BorderColor).
		Render(strings.Repeat("─", model.width))
	sections = append(sections, separator, model.renderHelp())

	lines := strings.Split(strings.Join(sections, "\n"), "\n")
	for index, line := range lines {
		lines[index] = ansi.Truncate(line, model.width, "…")
	}
	return strings.Join(lines, "\n")
}

func (model Model) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground).Render(catalog.EventTitle)
	where := lipgloss.NewStyle().Foreground(model.theme.FaintText).
		Render(catalog.DateRange() + " · " + catalog.Venue)
	header := title + "  " + where

	if model.snapshot.Stage != checkout.Browsing {
		product := catalog.TicketType(model.snapshot.Category)
		header += "\n" + lipgloss.NewStyle().Foreground(model.theme.NormalText).Render(product)
		if model.snapshot.SelectedDate != 0 {
			header += lipgloss.NewStyle().Foreground(model.theme.FaintText).
				Render(" · " + catalog.FormatDay(model.snapshot.SelectedDate))
		}
		if model.snapshot.RemainingSeconds > 0 {
			countdown := lipgloss.NewStyle().Bold(true).
				Foreground(model.theme.CountdownColor(model.snapshot.RemainingSeconds)).
				Render(formatCountdown(model.snapshot.RemainingSeconds))
			header += "  hold " + countdown
		}
	}
	return header + "\n"
}

func (model Model) renderBrowsing() string {
	var builder strings.Builder
	builder.WriteString(renderMarkdown(catalog.Blurb, model.theme, model.width))
	builder.WriteString("\n\n")

	if model.filtering || model.filter.Value() != "" {
		builder.WriteString(model.filter.View())
		builder.WriteString("\n")
	}
	if len(model.listing) == 0 {
		builder.WriteString(lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("No tickets match."))
		return builder.String()
	}

	nameWidth := 0
	for _, product := range model.listing {
		nameWidth = max(nameWidth, ansi.StringWidth(catalog.TicketType(product.Category)))
	}
	for index, product := range model.listing {
		name := catalog.TicketType(product.Category)
		name += strings.Repeat(" ", nameWidth-ansi.StringWidth(name))
		price := lipgloss.NewStyle().Foreground(model.theme.PriceForeground).
			Render(fmt.Sprintf("%5s", catalog.ShortPrice(product.Price)))
		tagline := lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(product.Tagline)

		row := fmt.Sprintf("%s  %s  %s", name, price, tagline)
		if index == model.cursor {
			row = lipgloss.NewStyle().
				Background(model.theme.SelectedBackground).
				Foreground(model.theme.SelectedForeground).
				Render("▸ " + row)
		} else {
			row = "  " + row
		}
		builder.WriteString(row)
		if index < len(model.listing)-1 {
			builder.WriteString("\n")
		}
	}
	return builder.String()
}

func (model Model) renderDateSelection() string {
	var builder strings.Builder
	builder.WriteString("Choose a date\n\n")
	for index, day := range catalog.Days {
		marker := "( )"
		if model.snapshot.SelectedDate == day {
			marker = "(•)"
		}
		row := fmt.Sprintf("%s %-18s %s", marker, catalog.FormatDay(day), model.stockLabel(day))
		if index == model.dateCursor {
			row = lipgloss.NewStyle().
				Background(model.theme.SelectedBackground).
				Foreground(model.theme.SelectedForeground).
				Render("▸ " + row)
		} else {
			row = "  " + row
		}
		builder.WriteString(row + "\n")
	}
	builder.WriteString("\n")
	builder.WriteString(model.renderQuantity())
	return builder.String()
}

// stockLabel renders the availability of day for the selected
// category.
func (model Model) stockLabel(day catalog.Day) string {
	availability, ok := model.snapshot.AvailabilityFor(day)
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	if !ok {
		if model.snapshot.Busy && !model.snapshot.AvailabilityKnown {
			return faint.Render("checking…")
		}
		return faint.Render("stock unknown")
	}
	switch {
	case availability.SoldOut:
		return lipgloss.NewStyle().Foreground(model.theme.Exhaust).Render("sold out")
	case availability.WaitingRoomFull:
		return lipgloss.NewStyle().Foreground(model.theme.Exhaust).Render("waiting room full")
	case availability.Remaining < 0:
		return faint.Render("on sale")
	}
	label := fmt.Sprintf("%d left", availability.Remaining)
	if availability.WaitingCount > 0 {
		label += fmt.Sprintf(", %d waiting", availability.WaitingCount)
	}
	return lipgloss.NewStyle().Foreground(model.theme.StockColor(availability.Remaining)).Render(label)
}

func (model Model) renderQuantity() string {
	total := lipgloss.NewStyle().Foreground(model.theme.PriceForeground).
		Render(catalog.FormatRupiah(model.snapshot.Total()))
	return fmt.Sprintf("Quantity %d (max %d)   Total %s",
		model.snapshot.Quantity, model.snapshot.MaxQuantity, total)
}

func (model Model) renderContactInfo() string {
	labels := [...]string{"Name", "Email", "WhatsApp"}
	var builder strings.Builder
	builder.WriteString("Your details\n\n")
	for index, input := range model.inputs {
		label := fmt.Sprintf("%-9s", labels[index])
		if index == model.inputFocus {
			label = lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground).Render(label)
		} else {
			label = lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(label)
		}
		builder.WriteString(label + " " + input.View() + "\n")
	}
	builder.WriteString("\n")
	builder.WriteString(model.renderQuantity())
	return builder.String()
}

func (model Model) renderConfirmation() string {
	session := model.snapshot.Session
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	rows := [][2]string{
		{"Ticket", catalog.TicketType(session.Category)},
		{"Date", catalog.FormatDay(session.SelectedDate)},
		{"Quantity", fmt.Sprintf("%d × %s", session.Quantity, catalog.FormatRupiah(session.UnitPrice))},
		{"Name", session.Contact.Name},
		{"Email", session.Contact.Email},
		{"WhatsApp", session.Contact.WhatsApp},
		{"Order", session.Reservation.OrderID},
	}
	var builder strings.Builder
	builder.WriteString("Confirm your order\n\n")
	for _, row := range rows {
		builder.WriteString(faint.Render(fmt.Sprintf("%-9s", row[0])) + " " + row[1] + "\n")
	}
	total := lipgloss.NewStyle().Bold(true).Foreground(model.theme.PriceForeground).
		Render(catalog.FormatRupiah(session.Total()))
	builder.WriteString(faint.Render(fmt.Sprintf("%-9s", "Total")) + " " + total)
	return builder.String()
}

func (model Model) renderPayment() string {
	code := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(model.theme.BorderColor).
		Foreground(model.theme.CodeForeground).
		Padding(0, 2).
		Render(model.snapshot.PaymentCode)
	var builder strings.Builder
	builder.WriteString("Pay with this code before the hold runs out\n\n")
	builder.WriteString(code)
	builder.WriteString("\n\n")
	builder.WriteString(fmt.Sprintf("Amount %s   Time left %s",
		lipgloss.NewStyle().Foreground(model.theme.PriceForeground).Render(catalog.FormatRupiah(model.snapshot.Total())),
		lipgloss.NewStyle().Bold(true).Foreground(model.theme.CountdownColor(model.snapshot.RemainingSeconds)).
			Render(formatCountdown(model.snapshot.RemainingSeconds))))
	return builder.String()
}

func (model Model) renderNotDone() string {
	return lipgloss.NewStyle().Foreground(model.theme.Scarce).Render("Payment not received yet.") +
		"\n\nFinish paying with code " + model.snapshot.PaymentCode +
		", then check again.\nTime left " + formatCountdown(model.snapshot.RemainingSeconds)
}

func (model Model) renderThankYou() string {
	message := model.snapshot.PaymentMessage
	if message == "" {
		message = "Payment received."
	}
	return lipgloss.NewStyle().Bold(true).Foreground(model.theme.Plenty).Render("Thank you!") +
		"\n\n" + ansi.Wrap(message, max(model.width, 10), " ") +
		"\nSee you at " + catalog.Venue + ", " + catalog.FormatDay(model.snapshot.SelectedDate) + "."
}

// renderStatus renders the error or progress line, or "" when there
// is nothing to say.
func (model Model) renderStatus() string {
	if message := model.snapshot.LastErrorMessage(); message != "" {
		return lipgloss.NewStyle().Foreground(model.theme.ErrorForeground).Render("! " + message)
	}
	if model.notice != "" {
		return lipgloss.NewStyle().Foreground(model.theme.Scarce).Render("! " + model.notice)
	}
	if model.snapshot.Busy {
		return lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("working…")
	}
	return ""
}

func (model Model) renderHelp() string {
	var bindings []key.Binding
	keys := model.keys
	switch model.snapshot.Stage {
	case checkout.Browsing:
		selectKey := keys.Select
		selectKey.SetHelp("enter", "buy")
		bindings = []key.Binding{keys.Up, keys.Down, selectKey, keys.FilterActivate, keys.Quit}
	case checkout.DateSelection:
		bindings = []key.Binding{keys.Left, keys.Right, keys.Toggle, keys.Increase, keys.Decrease, keys.Refresh, keys.Select, keys.Back}
	case checkout.ContactInfo:
		bindings = []key.Binding{keys.NextField, keys.Select, keys.ForceQuit}
	case checkout.Confirmation:
		confirmKey, editKey := keys.Select, keys.Back
		confirmKey.SetHelp("enter", "confirm")
		editKey.SetHelp("esc", "edit details")
		bindings = []key.Binding{confirmKey, editKey}
	case checkout.Payment:
		paidKey := keys.Select
		paidKey.SetHelp("enter", "I have paid")
		bindings = []key.Binding{paidKey, keys.Quit}
	case checkout.PaymentNotDone:
		backKey := keys.Select
		backKey.SetHelp("enter", "back to payment")
		bindings = []key.Binding{backKey}
	case checkout.ThankYou:
		closeKey := keys.Select
		closeKey.SetHelp("enter", "done")
		bindings = []key.Binding{closeKey, keys.Quit}
	}

	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	style := lipgloss.NewStyle().Foreground(model.theme.HelpText)
	return style.Render(" [" + strings.ToUpper(model.snapshot.Stage.String()) + "] " + strings.Join(parts, "  "))
}

// formatCountdown renders seconds as MM:SS.
func formatCountdown(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
