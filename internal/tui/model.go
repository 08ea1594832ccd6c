// Package tui implements the Bubble Tea business unit form with its toast
// notifications.
package tui

import (
	"context"
	"sync"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/unitdesk/internal/core/businessunit"
	"github.com/colonyops/unitdesk/internal/core/config"
	"github.com/colonyops/unitdesk/internal/core/logging"
	"github.com/colonyops/unitdesk/internal/core/notify"
	"github.com/colonyops/unitdesk/internal/tui/components"
	"github.com/colonyops/unitdesk/internal/tui/components/form"
)

// UIState represents the current state of the TUI.
type UIState int

const (
	stateLoading UIState = iota
	stateEditing
	stateSaving
)

const (
	validationToastTTL = 4 * time.Second
	savedToastTTL      = 6 * time.Second
)

// modalKind identifies the overlay shown above the form.
type modalKind int

const (
	modalNone modalKind = iota
	modalHelp
	modalHistory
	modalConfirmClear
)

// Options configures the TUI behavior.
type Options struct {
	// LoadDelay keeps the loading screen up for at least this long.
	LoadDelay time.Duration
	// History backs the notification history modal. Optional.
	History notify.Store
}

type unitsLoadedMsg struct {
	count int
	err   error
}

type unitSavedMsg struct {
	unit businessunit.Unit
	err  error
}

// retryMsg re-submits a unit whose save failed.
type retryMsg struct {
	toastID string
	unit    businessunit.Unit
}

type notificationMsg struct {
	event notify.Event
}

// actionQueue collects messages produced by toast action callbacks while
// Center.Action runs inside Update.
type actionQueue struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (q *actionQueue) push(msg tea.Msg) {
	q.mu.Lock()
	q.msgs = append(q.msgs, msg)
	q.mu.Unlock()
}

func (q *actionQueue) drain() []tea.Msg {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.msgs
	q.msgs = nil
	return out
}

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	service *businessunit.Service
	center  *notify.Center
	form    *form.Dialog
	toasts  *ToastView
	keys    KeyMap
	help    help.Model
	spinner spinner.Model
	actions *actionQueue
	logger  zerolog.Logger
	opts    Options

	state    UIState
	modal    modalKind
	history  *HistoryModal
	confirm  components.ConfirmModal
	units    int
	width    int
	height   int
	quitting bool
}

// New creates a new TUI model. Notifications are shown through center;
// units are saved through service.
func New(service *businessunit.Service, center *notify.Center, cfg *config.Config, opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return Model{
		service: service,
		center:  center,
		form:    newUnitForm(),
		toasts:  NewToastView(center, cfg.Notifications.MaxVisible, cfg.TUI.Keys.Action),
		keys:    NewKeyMap(cfg.TUI.Keys),
		help:    help.New(),
		spinner: s,
		actions: &actionQueue{},
		logger:  logging.Component("tui"),
		opts:    opts,
		state:   stateLoading,
	}
}

func newUnitForm() *form.Dialog {
	const placeholder = "Focus to autofill"

	currencies := make([]form.Option, len(businessunit.Currencies))
	for i, c := range businessunit.Currencies {
		currencies[i] = form.Option{Value: string(c.Value), Label: c.Label}
	}

	fields := []form.Field{
		form.NewTextField("Company name", placeholder, 100),
		form.NewTextField("Emitter RFC", placeholder, 13),
		form.NewTextField("Legal emitter name", placeholder, 150),
		form.NewSelectField("Default currency", currencies, string(businessunit.DefaultCurrency)),
		form.NewTextField("Invoice series", placeholder, 5),
		form.NewTextField("Description", placeholder, 500),
	}

	return form.NewDialog("Business unit", fields, businessunit.Fields,
		form.WithValidator(businessunit.ValidateField),
		form.WithSuggestions(businessunit.Suggestion),
	)
}

// emptyValues is the form content after a reset: blank fields except the
// currency select.
func emptyValues() map[string]string {
	return map[string]string{
		businessunit.FieldDefaultCurrency: string(businessunit.DefaultCurrency),
	}
}

// Forward returns a subscriber that re-renders the program whenever the
// active set changes, including when a timer expires. Events are sent from
// a new goroutine because the center also fires them from inside Update,
// where a blocking send would deadlock the event loop.
func Forward(send func(tea.Msg)) notify.Subscriber {
	return func(ev notify.Event) {
		go send(notificationMsg{event: ev})
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadUnits(), m.spinner.Tick)
}

func (m Model) loadUnits() tea.Cmd {
	svc, delay := m.service, m.opts.LoadDelay
	return func() tea.Msg {
		start := time.Now()
		units, err := svc.List(context.Background())
		if rest := delay - time.Since(start); rest > 0 {
			time.Sleep(rest)
		}
		return unitsLoadedMsg{count: len(units), err: err}
	}
}

func (m Model) saveUnit(u businessunit.Unit) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		saved, err := svc.Create(context.Background(), u)
		return unitSavedMsg{unit: saved, err: err}
	}
}

// Update handles incoming messages and returns an updated model and command.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case unitsLoadedMsg:
		return m.handleUnitsLoaded(msg)
	case unitSavedMsg:
		return m.handleUnitSaved(msg)
	case retryMsg:
		return m.handleRetry(msg)
	case notificationMsg:
		// Nothing to update; receiving the message triggers a render.
		return m, nil
	case spinner.TickMsg:
		if m.state == stateEditing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	if m.state != stateEditing {
		return m, nil
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Dismiss):
		if n, ok := m.newestToast(false); ok {
			m.center.Dismiss(n.ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.Action):
		if n, ok := m.newestToast(true); ok {
			m.center.Action(n.ID)
		}
		return m, m.queuedActions()
	case key.Matches(msg, m.keys.DismissAll):
		m.center.DismissAll()
		return m, nil
	}

	if m.modal != modalNone {
		return m.handleModalKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.modal = modalHelp
		return m, nil
	case key.Matches(msg, m.keys.History):
		m.history = NewHistoryModal(m.opts.History, m.width, m.height)
		m.modal = modalHistory
		return m, nil
	}

	if m.state != stateEditing {
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)

	switch {
	case m.form.Cancelled():
		return m, m.form.Reset(emptyValues())
	case m.form.Submitted():
		m.form.ClearSubmitted()
		return m.submit(cmd)
	}
	return m, cmd
}

func (m Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalHelp:
		if key.Matches(msg, m.keys.Close, m.keys.Help) {
			m.modal = modalNone
		}
	case modalHistory:
		switch {
		case key.Matches(msg, m.keys.Close, m.keys.History):
			m.modal = modalNone
			m.history = nil
		case key.Matches(msg, m.keys.ScrollUp):
			m.history.ScrollUp()
		case key.Matches(msg, m.keys.ScrollDown):
			m.history.ScrollDown()
		case key.Matches(msg, m.keys.ClearHistory):
			m.confirm = components.NewConfirmModal("Clear the notification history?")
			m.modal = modalConfirmClear
		}
	case modalConfirmClear:
		m.confirm, _ = m.confirm.Update(msg)
		switch {
		case m.confirm.Confirmed():
			m.modal = modalHistory
			if err := m.history.Clear(); err != nil {
				m.logger.Error().Err(err).Msg("failed to clear notification history")
				m.center.Error("Could not clear the notification history", notify.Options{Title: "History"})
			}
		case m.confirm.Cancelled():
			m.modal = modalHistory
		}
	}
	return m, nil
}

// newestToast returns the most recent visible notification, limited to
// those with an action when withAction is set.
func (m Model) newestToast(withAction bool) (notify.Notification, bool) {
	visible := m.toasts.Visible()
	for i := len(visible) - 1; i >= 0; i-- {
		if !withAction || visible[i].HasAction() {
			return visible[i], true
		}
	}
	return notify.Notification{}, false
}

func (m Model) queuedActions() tea.Cmd {
	msgs := m.actions.drain()
	if len(msgs) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, len(msgs))
	for i, msg := range msgs {
		cmds[i] = func() tea.Msg { return msg }
	}
	return tea.Batch(cmds...)
}

func (m Model) submit(focusCmd tea.Cmd) (tea.Model, tea.Cmd) {
	if !m.form.ValidateAll() {
		m.center.Error("Please fix the errors in the form", notify.Options{
			Title:         "Validation",
			AutoCloseTime: validationToastTTL,
		})
		return m, focusCmd
	}

	return m.startSave(businessunit.FromValues(m.form.Values()), focusCmd)
}

func (m Model) startSave(u businessunit.Unit, extra tea.Cmd) (tea.Model, tea.Cmd) {
	m.state = stateSaving
	m.logger.Debug().Str("name", u.Name).Msg("saving business unit")
	return m, tea.Batch(extra, m.saveUnit(u), m.spinner.Tick)
}

func (m Model) handleUnitsLoaded(msg unitsLoadedMsg) (tea.Model, tea.Cmd) {
	m.state = stateEditing
	if msg.err != nil {
		m.logger.Error().Err(msg.err).Msg("failed to load business units")
		m.center.Warning("Could not load saved business units", notify.Options{Title: "Storage"})
	} else {
		m.units = msg.count
	}
	return m, m.form.Reset(emptyValues())
}

func (m Model) handleUnitSaved(msg unitSavedMsg) (tea.Model, tea.Cmd) {
	m.state = stateEditing

	if msg.err != nil {
		m.logger.Error().Err(msg.err).Msg("failed to save business unit")

		fieldErrs := businessunit.FieldErrorMap(msg.err)
		if _, generic := fieldErrs[""]; !generic {
			m.form.SetErrors(fieldErrs)
			m.center.Error("The server rejected some fields", notify.Options{
				Title:     "Error",
				AutoClose: notify.Bool(false),
			})
			return m, nil
		}

		unit := businessunit.FromValues(m.form.Values())
		actions := m.actions
		var id string
		id = m.center.Error("Error saving the business unit: "+msg.err.Error(), notify.Options{
			Title:       "Error",
			AutoClose:   notify.Bool(false),
			ActionLabel: "Retry",
			OnAction: func() {
				actions.push(retryMsg{toastID: id, unit: unit})
			},
		})
		return m, nil
	}

	m.units++
	m.center.Success("Business unit saved successfully", notify.Options{
		Title:         "Saved",
		AutoCloseTime: savedToastTTL,
	})
	return m, m.form.Reset(emptyValues())
}

func (m Model) handleRetry(msg retryMsg) (tea.Model, tea.Cmd) {
	if m.state != stateEditing {
		return m, nil
	}
	m.center.Dismiss(msg.toastID)
	return m.startSave(msg.unit, nil)
}
