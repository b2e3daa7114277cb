package views

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"cdrlink/internal/adapters/tui/styles"
	"cdrlink/internal/application"
	"cdrlink/internal/application/commands"
	"cdrlink/internal/domain"
	"cdrlink/internal/filter"
	"cdrlink/internal/ports"
)

// GraphKeyMap defines key bindings for the chart view
type GraphKeyMap struct {
	Up               key.Binding
	Down             key.Binding
	PageUp           key.Binding
	PageDown         key.Binding
	Tab              key.Binding
	MoreCalls        key.Binding
	FewerCalls       key.Binding
	MoreNodes        key.Binding
	FewerNodes       key.Binding
	ToggleUnassigned key.Binding
	TogglePersons    key.Binding
	Window           key.Binding
	DragLeft         key.Binding
	DragRight        key.Binding
	DragUp           key.Binding
	DragDown         key.Binding
	PanLeft          key.Binding
	PanRight         key.Binding
	PanUp            key.Binding
	PanDown          key.Binding
	ZoomIn           key.Binding
	ZoomOut          key.Binding
	ZoomReset        key.Binding
	Reset            key.Binding
	AddPhone         key.Binding
	Alias            key.Binding
	Color            key.Binding
	Owner            key.Binding
	Note             key.Binding
	EditNotes        key.Binding
	Delete           key.Binding
	Copy             key.Binding
	Save             key.Binding
	Load             key.Binding
	Export           key.Binding
	Help             key.Binding
	Quit             key.Binding
}

var GraphKeys = GraphKeyMap{
	Up:               key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
	Down:             key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
	PageUp:           key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "prev page")),
	PageDown:         key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "next page")),
	Tab:              key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "phones/links")),
	MoreCalls:        key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "min calls up")),
	FewerCalls:       key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "min calls down")),
	MoreNodes:        key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "max phones up")),
	FewerNodes:       key.NewBinding(key.WithKeys("["), key.WithHelp("[", "max phones down")),
	ToggleUnassigned: key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "unassigned")),
	TogglePersons:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "persons")),
	Window:           key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "window")),
	DragLeft:         key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "drag left")),
	DragRight:        key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "drag right")),
	DragUp:           key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "drag up")),
	DragDown:         key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "drag down")),
	PanLeft:          key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←", "pan")),
	PanRight:         key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("shift+→", "pan")),
	PanUp:            key.NewBinding(key.WithKeys("shift+up"), key.WithHelp("shift+↑", "pan")),
	PanDown:          key.NewBinding(key.WithKeys("shift+down"), key.WithHelp("shift+↓", "pan")),
	ZoomIn:           key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "zoom in")),
	ZoomOut:          key.NewBinding(key.WithKeys("Z"), key.WithHelp("Z", "zoom out")),
	ZoomReset:        key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset view")),
	Reset:            key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "relayout")),
	AddPhone:         key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "add phone")),
	Alias:            key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "alias")),
	Color:            key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "color")),
	Owner:            key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "owner")),
	Note:             key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "note")),
	EditNotes:        key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit notes")),
	Delete:           key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
	Copy:             key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
	Save:             key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
	Load:             key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "load")),
	Export:           key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export")),
	Help:             key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:             key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

type listFocus int

const (
	focusPhones listFocus = iota
	focusLinks
)

const (
	sideWidth = 38
	// step sizes in render pixels: one keypress moves one cell
	dragStepX = pxPerCol
	dragStepY = pxPerRow
	panStep   = 4
)

// GraphModel is the chart view: a rasterized link chart beside a list of
// the visible phones or links. Filter changes run as background jobs whose
// results are applied only when they are still the latest.
type GraphModel struct {
	ViewState
	ws       *application.Workspace
	store    ports.SnapshotStore
	exporter ports.Exporter
	log      *zap.Logger
	copy     func(string) error

	view    domain.ViewModel
	focus   listFocus
	phones  *Paginator
	links   *Paginator
	pending uint64
	busy    bool
}

// NewGraphModel creates the chart view
func NewGraphModel(ws *application.Workspace, store ports.SnapshotStore, exporter ports.Exporter, log *zap.Logger) *GraphModel {
	if log == nil {
		log = zap.NewNop()
	}
	m := &GraphModel{
		ws:       ws,
		store:    store,
		exporter: exporter,
		log:      log,
		copy:     clipboard.WriteAll,
		phones:   NewPaginator(10),
		links:    NewPaginator(10),
	}
	m.reload()
	return m
}

// Init runs the current filter once so the chart has a layout
func (m *GraphModel) Init() tea.Cmd {
	return m.submit(m.ws.Spec())
}

// SetSize updates the view dimensions and list heights
func (m *GraphModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	_, rows := m.chartSize()
	m.phones.SetPageSize(m.listRows(rows))
	m.links.SetPageSize(m.listRows(rows))
}

// Busy reports whether a filter job is in flight
func (m *GraphModel) Busy() bool { return m.busy }

// ViewModel returns the frame currently on screen
func (m *GraphModel) ViewModel() domain.ViewModel { return m.view }

func (m *GraphModel) reload() {
	m.view = m.ws.View()
	m.phones.SetTotal(len(m.view.Nodes))
	m.links.SetTotal(len(m.view.Edges))
}

// submit starts a filter job; its result arrives as filterDoneMsg
func (m *GraphModel) submit(spec filter.Spec) tea.Cmd {
	if err := spec.Validate(); err != nil {
		m.SetError(err)
		return nil
	}
	job := m.ws.SubmitFilter(context.Background(), spec)
	m.pending = job.Seq
	m.busy = true
	return func() tea.Msg {
		return filterDoneMsg{result: <-job.Done()}
	}
}

// run executes a command off the UI goroutine
func (m *GraphModel) run(fn func(ctx context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		message, err := fn(context.Background())
		return actionDoneMsg{message: message, err: err, refresh: true}
	}
}

// Selected returns the highlighted phone or link
func (m *GraphModel) Selected() Target {
	switch m.focus {
	case focusLinks:
		if i := m.links.Cursor(); i < len(m.view.Edges) {
			return Target{Pair: m.view.Edges[i].Pair}
		}
	default:
		if i := m.phones.Cursor(); i < len(m.view.Nodes) {
			return Target{Phone: m.view.Nodes[i].ID}
		}
	}
	return Target{}
}

// Update handles messages for the chart view
func (m *GraphModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case filterDoneMsg:
		if msg.result.Seq == m.pending {
			m.busy = false
		}
		if err := m.ws.ApplyResult(msg.result); err != nil {
			if errors.Is(err, domain.ErrStaleResult) {
				m.log.Debug("chart skipped superseded filter result", zap.Uint64("seq", msg.result.Seq))
				return m, nil
			}
			m.SetError(err)
			return m, nil
		}
		m.reload()
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.SetError(msg.err)
		} else {
			m.SetMessage(msg.message, false)
		}
		if msg.refresh {
			m.reload()
		}
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *GraphModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	keys := GraphKeys
	sel := m.Selected()

	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit
	case key.Matches(msg, keys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }

	case key.Matches(msg, keys.Up):
		m.list().CursorUp()
	case key.Matches(msg, keys.Down):
		m.list().CursorDown()
	case key.Matches(msg, keys.PageUp):
		m.list().PrevPage()
	case key.Matches(msg, keys.PageDown):
		m.list().NextPage()
	case key.Matches(msg, keys.Tab):
		m.focus = 1 - m.focus

	case key.Matches(msg, keys.MoreCalls):
		return m.editSpec(func(s *filter.Spec) { s.MinCalls++ })
	case key.Matches(msg, keys.FewerCalls):
		return m.editSpec(func(s *filter.Spec) { s.MinCalls = max(s.MinCalls-1, 1) })
	case key.Matches(msg, keys.MoreNodes):
		return m.editSpec(func(s *filter.Spec) { s.MaxNodes += nodeStep(s.MaxNodes) })
	case key.Matches(msg, keys.FewerNodes):
		return m.editSpec(func(s *filter.Spec) { s.MaxNodes = max(s.MaxNodes-nodeStep(s.MaxNodes-1), 1) })
	case key.Matches(msg, keys.ToggleUnassigned):
		return m.editSpec(func(s *filter.Spec) { s.ShowUnassignedPhones = !s.ShowUnassignedPhones })
	case key.Matches(msg, keys.TogglePersons):
		return m.editSpec(func(s *filter.Spec) { s.ShowPersons = !s.ShowPersons })
	case key.Matches(msg, keys.Window):
		return m.windowPrompt()

	case key.Matches(msg, keys.DragLeft):
		m.drag(sel, -dragStepX, 0)
	case key.Matches(msg, keys.DragRight):
		m.drag(sel, dragStepX, 0)
	case key.Matches(msg, keys.DragUp):
		m.drag(sel, 0, -dragStepY)
	case key.Matches(msg, keys.DragDown):
		m.drag(sel, 0, dragStepY)
	case key.Matches(msg, keys.PanLeft):
		m.pan(-panStep*pxPerCol, 0)
	case key.Matches(msg, keys.PanRight):
		m.pan(panStep*pxPerCol, 0)
	case key.Matches(msg, keys.PanUp):
		m.pan(0, -panStep*pxPerRow)
	case key.Matches(msg, keys.PanDown):
		m.pan(0, panStep*pxPerRow)
	case key.Matches(msg, keys.ZoomIn):
		m.SetMessage(fmt.Sprintf("Zoom %.2f", m.ws.ZoomStep(true)), false)
		m.reload()
	case key.Matches(msg, keys.ZoomOut):
		m.SetMessage(fmt.Sprintf("Zoom %.2f", m.ws.ZoomStep(false)), false)
		m.reload()
	case key.Matches(msg, keys.ZoomReset):
		vp := m.ws.Viewport()
		m.ws.SetZoom(1)
		m.ws.Pan(-vp.Pan.X, -vp.Pan.Y)
		m.reload()
	case key.Matches(msg, keys.Reset):
		return m.run(func(ctx context.Context) (string, error) {
			res, err := commands.NewResetLayoutCommand(m.ws).Execute(ctx)
			if err != nil {
				return "", err
			}
			return res.Message, nil
		})

	case key.Matches(msg, keys.AddPhone):
		return prompt(ActionAddPhone, "Add Phone", Target{},
			NewInputField("Phone", "+1 555 0100", 32),
			NewInputField("Alias (optional)", "", 64))
	case key.Matches(msg, keys.Alias):
		return m.aliasPrompt(sel)
	case key.Matches(msg, keys.Color):
		if sel.Phone == "" {
			return nil
		}
		return m.run(func(ctx context.Context) (string, error) {
			res, err := commands.NewEditPhoneCommand(m.ws, sel.Phone.String(), nil, true).Execute(ctx)
			if err != nil {
				return "", err
			}
			return res.Message, nil
		})
	case key.Matches(msg, keys.Owner):
		return m.ownerPrompt(sel)
	case key.Matches(msg, keys.Note):
		return m.notePrompt(sel)
	case key.Matches(msg, keys.EditNotes):
		return m.editNotes(sel)
	case key.Matches(msg, keys.Delete):
		return m.confirmDelete(sel)
	case key.Matches(msg, keys.Copy):
		m.copySelection(sel)

	case key.Matches(msg, keys.Save):
		return prompt(ActionSave, "Save Snapshot", Target{}, NewInputField("Name", "case-2024-03", 64))
	case key.Matches(msg, keys.Load):
		return m.loadPrompt()
	case key.Matches(msg, keys.Export):
		return prompt(ActionExport, "Export Chart", Target{},
			NewInputField("File", "chart.svg", 256),
			NewInputField("Page", "letter-landscape | a4-landscape | native-fit", 32).WithValue(string(domain.PageLetterLandscape)),
			NewInputField("Title (optional)", "", 128))
	}
	return nil
}

func (m *GraphModel) list() *Paginator {
	if m.focus == focusLinks {
		return m.links
	}
	return m.phones
}

// nodeStep grows the max-phones step with the current value
func nodeStep(n int) int {
	switch {
	case n < 20:
		return 1
	case n < 100:
		return 10
	default:
		return 50
	}
}

func (m *GraphModel) editSpec(edit func(*filter.Spec)) tea.Cmd {
	spec := m.ws.Spec()
	edit(&spec)
	return m.submit(spec)
}

func (m *GraphModel) drag(sel Target, dx, dy float64) {
	if sel.Phone == "" {
		return
	}
	if _, err := m.ws.DragBy(sel.Phone, dx, dy); err != nil {
		m.SetError(err)
		return
	}
	m.reload()
}

func (m *GraphModel) pan(dx, dy float64) {
	m.ws.Pan(dx, dy)
	m.reload()
}

func prompt(action Action, title string, target Target, fields ...InputField) tea.Cmd {
	return func() tea.Msg {
		return SwitchToPromptMsg{Action: action, Title: title, Target: target, Fields: fields}
	}
}

func (m *GraphModel) windowPrompt() tea.Cmd {
	spec := m.ws.Spec()
	day := func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("2006-01-02")
	}
	clock := func(t *filter.TimeOfDay) string {
		if t == nil {
			return ""
		}
		return t.String()
	}
	return prompt(ActionWindow, "Time Window", Target{},
		NewInputField("From date", "YYYY-MM-DD", 10).WithValue(day(spec.DateFrom)),
		NewInputField("To date", "YYYY-MM-DD", 10).WithValue(day(spec.DateTo)),
		NewInputField("From time", "HH:MM", 8).WithValue(clock(spec.TimeFrom)),
		NewInputField("To time", "HH:MM", 8).WithValue(clock(spec.TimeTo)))
}

func (m *GraphModel) aliasPrompt(sel Target) tea.Cmd {
	if sel.Phone == "" {
		return nil
	}
	alias := ""
	if info, err := m.ws.PhoneInfo(sel.Phone); err == nil {
		alias = info.Phone.Alias
	}
	return prompt(ActionAlias, "Set Alias", sel, NewInputField("Alias", "empty clears", 64).WithValue(alias))
}

func (m *GraphModel) ownerPrompt(sel Target) tea.Cmd {
	if sel.Phone == "" {
		return nil
	}
	owner := ""
	if info, err := m.ws.PhoneInfo(sel.Phone); err == nil && info.Owner != nil {
		owner = info.Owner.Name
	}
	return prompt(ActionOwner, "Assign Owner", sel, NewInputField("Person", "empty unassigns", 64).WithValue(owner))
}

func (m *GraphModel) notePrompt(sel Target) tea.Cmd {
	switch {
	case sel.HasPair():
		return prompt(ActionNote, "Add Note", sel, NewInputField("Note", "", 256))
	case sel.Phone != "":
		return prompt(ActionNote, "Add Note", sel,
			NewInputField("Other phone", "", 32),
			NewInputField("Note", "", 256))
	}
	return nil
}

func (m *GraphModel) loadPrompt() tea.Cmd {
	name := ""
	if m.store != nil {
		if infos, err := m.store.List(); err == nil && len(infos) > 0 {
			name = infos[len(infos)-1].Name
		}
	}
	return prompt(ActionLoad, "Load Snapshot", Target{}, NewInputField("Name", "", 64).WithValue(name))
}

// editNotes writes the link's notes to a temp file, one per line, and asks
// the app to open it in the editor
func (m *GraphModel) editNotes(sel Target) tea.Cmd {
	if !sel.HasPair() {
		m.SetMessage("Select a link to edit its notes", true)
		return nil
	}
	agg, err := m.ws.EdgeStats(sel.Pair)
	if err != nil {
		m.SetError(err)
		return nil
	}
	f, err := os.CreateTemp("", "cdrlink-notes-*.txt")
	if err != nil {
		m.SetError(err)
		return nil
	}
	defer f.Close()
	if _, err := f.WriteString(strings.Join(agg.Notes, "\n")); err != nil {
		m.SetError(err)
		return nil
	}
	path := f.Name()
	return func() tea.Msg { return EditNotesMsg{Pair: sel.Pair, Path: path} }
}

func (m *GraphModel) confirmDelete(sel Target) tea.Cmd {
	switch {
	case sel.HasPair():
		return func() tea.Msg {
			return SwitchToConfirmMsg{Action: ActionDeleteEdge, Target: sel, Question: "Delete every call and note on this link?"}
		}
	case sel.Phone != "":
		return func() tea.Msg {
			return SwitchToConfirmMsg{Action: ActionDeletePhone, Target: sel, Question: "Delete this phone and all its links?"}
		}
	}
	return nil
}

func (m *GraphModel) copySelection(sel Target) {
	var text string
	switch {
	case sel.HasPair():
		for _, e := range m.view.Edges {
			if e.Pair == sel.Pair {
				text = sel.Pair.String() + "\n" + e.Label
			}
		}
	case sel.Phone != "":
		if n, ok := m.view.Node(sel.Phone); ok {
			text = n.Label
		}
	}
	if text == "" {
		return
	}
	if err := m.copy(text); err != nil {
		m.SetMessage("Clipboard unavailable: "+err.Error(), true)
		return
	}
	m.SetMessage("Copied "+sel.Label(), false)
}

// HandlePrompt runs the action a submitted prompt was opened for
func (m *GraphModel) HandlePrompt(msg PromptSubmittedMsg) tea.Cmd {
	v := func(i int) string {
		if i < len(msg.Values) {
			return msg.Values[i]
		}
		return ""
	}
	sel := msg.Target

	switch msg.Action {
	case ActionWindow:
		spec := m.ws.Spec()
		if err := spec.SetWindow(v(0), v(1), v(2), v(3)); err != nil {
			m.SetError(err)
			return nil
		}
		return m.submit(spec)

	case ActionAddPhone:
		return m.run(func(ctx context.Context) (string, error) {
			res, err := commands.NewAddPhoneCommand(m.ws, v(0), v(1)).Execute(ctx)
			if err != nil {
				return "", err
			}
			return res.Message, nil
		})

	case ActionAlias:
		alias := v(0)
		return m.run(func(ctx context.Context) (string, error) {
			res, err := commands.NewEditPhoneCommand(m.ws, sel.Phone.String(), &alias, false).Execute(ctx)
			if err != nil {
				return "", err
			}
			return res.Message, nil
		})

	case ActionOwner:
		return m.run(func(ctx context.Context) (string, error) {
			return m.assignOwner(ctx, sel.Phone, v(0))
		})

	case ActionNote:
		a, b, text := sel.Pair.A.String(), sel.Pair.B.String(), v(0)
		if !sel.HasPair() {
			a, b, text = sel.Phone.String(), v(0), v(1)
		}
		return m.run(func(ctx context.Context) (string, error) {
			res, err := commands.NewNoteCommand(m.ws, a, b, text, false).Execute(ctx)
			if err != nil {
				return "", err
			}
			return res.Message, nil
		})

	case ActionSave:
		return m.run(func(ctx context.Context) (string, error) {
			res, err := commands.NewSaveCommand(m.ws, m.store, v(0)).Execute(ctx)
			if err != nil {
				return "", err
			}
			return res.Message, nil
		})

	case ActionLoad:
		return m.run(func(ctx context.Context) (string, error) {
			res, err := commands.NewLoadCommand(m.ws, m.store, v(0)).Execute(ctx)
			if err != nil {
				return "", err
			}
			return res.Message, nil
		})

	case ActionExport:
		return m.run(func(ctx context.Context) (string, error) {
			res, err := commands.NewExportCommand(m.ws, m.exporter, v(0), v(2), v(1)).Execute(ctx)
			if err != nil {
				return "", err
			}
			return res.Message, nil
		})
	}
	return nil
}

// assignOwner moves a phone to the named person, creating them if needed.
// An empty name unassigns the phone from its current owner.
func (m *GraphModel) assignOwner(ctx context.Context, phone domain.PhoneID, name string) (string, error) {
	info, err := m.ws.PhoneInfo(phone)
	if err != nil {
		return "", err
	}
	if name == "" {
		if info.Owner == nil {
			return fmt.Sprintf("%s has no owner", phone), nil
		}
		res, err := commands.NewAssignCommand(m.ws, string(info.Owner.ID), phone.String(), true).Execute(ctx)
		if err != nil {
			return "", err
		}
		return res.Message, nil
	}

	if _, err := m.ws.ResolvePerson(name); errors.Is(err, domain.ErrNotFound) {
		if _, err := commands.NewAddPersonCommand(m.ws, name).Execute(ctx); err != nil {
			return "", err
		}
	}
	if info.Owner != nil && info.Owner.Name != name {
		if _, err := commands.NewAssignCommand(m.ws, string(info.Owner.ID), phone.String(), true).Execute(ctx); err != nil {
			return "", err
		}
	}
	res, err := commands.NewAssignCommand(m.ws, name, phone.String(), false).Execute(ctx)
	if err != nil {
		return "", err
	}
	return res.Message, nil
}

// HandleConfirm runs an accepted destructive action
func (m *GraphModel) HandleConfirm(msg ConfirmedMsg) tea.Cmd {
	sel := msg.Target
	switch msg.Action {
	case ActionDeletePhone:
		return m.run(func(ctx context.Context) (string, error) {
			res, err := commands.NewDeletePhoneCommand(m.ws, sel.Phone.String()).Execute(ctx)
			if err != nil {
				return "", err
			}
			return res.Message, nil
		})
	case ActionDeleteEdge:
		return m.run(func(ctx context.Context) (string, error) {
			res, err := commands.NewDeleteEdgeCommand(m.ws, sel.Pair.A.String(), sel.Pair.B.String()).Execute(ctx)
			if err != nil {
				return "", err
			}
			return res.Message, nil
		})
	}
	return nil
}

// HandleNotesEdited replaces the link's notes with the edited file, one
// note per non-blank line
func (m *GraphModel) HandleNotesEdited(msg NotesEditedMsg) tea.Cmd {
	defer os.Remove(msg.Path)
	if msg.Err != nil {
		m.SetError(msg.Err)
		return nil
	}
	data, err := os.ReadFile(msg.Path)
	if err != nil {
		m.SetError(err)
		return nil
	}
	var notes []string
	for line := range strings.Lines(string(data)) {
		if line = strings.TrimSpace(line); line != "" {
			notes = append(notes, line)
		}
	}
	pair := msg.Pair
	return m.run(func(ctx context.Context) (string, error) {
		first := ""
		if len(notes) > 0 {
			first = notes[0]
		}
		res, err := commands.NewNoteCommand(m.ws, pair.A.String(), pair.B.String(), first, true).Execute(ctx)
		if err != nil {
			return "", err
		}
		for _, n := range notes[min(1, len(notes)):] {
			if res, err = commands.NewNoteCommand(m.ws, pair.A.String(), pair.B.String(), n, false).Execute(ctx); err != nil {
				return "", err
			}
		}
		return fmt.Sprintf("%s now has %d notes", pair, len(res.Notes)), nil
	})
}

func (m *GraphModel) chartSize() (cols, rows int) {
	return max(m.Width-sideWidth-8, 20), max(m.Height-10, 6)
}

// listRows is how many list entries fit beside a chart of the given height
func (m *GraphModel) listRows(chartRows int) int {
	return max(chartRows-9, 3)
}

// View renders the chart view
func (m *GraphModel) View() string {
	cols, rows := m.chartSize()
	sel := m.Selected()

	chart := styles.Canvas.Render(drawChart(m.view, cols, rows, sel).Render())
	side := lipgloss.NewStyle().Width(sideWidth).PaddingLeft(1).Render(m.renderSide(sel))

	return NewViewBuilder().
		Raw(RenderTitle("cdrlink") + "  " + RenderMuted(SummaryLine(m.view.Summary))).
		BlankLine().
		Line(lipgloss.JoinHorizontal(lipgloss.Top, chart, side)).
		Message(m.Message, m.MessageErr).
		Line(m.renderStatus()).
		Help(GraphKeys.Tab, GraphKeys.MoreCalls, GraphKeys.FewerCalls, GraphKeys.Delete, GraphKeys.Note, GraphKeys.Save, GraphKeys.Help, GraphKeys.Quit).
		String()
}

func (m *GraphModel) renderSide(sel Target) string {
	var b strings.Builder
	width := sideWidth - 2

	title := fmt.Sprintf("Phones (%d)", len(m.view.Nodes))
	if m.focus == focusLinks {
		title = fmt.Sprintf("Links (%d)", len(m.view.Edges))
	}
	b.WriteString(styles.PanelTitle.Render(title))
	b.WriteString("\n")

	p := m.list()
	start, end := p.VisibleRange()
	for i := start; i < end; i++ {
		var line string
		style := styles.ListItem
		if m.focus == focusLinks {
			e := m.view.Edges[i]
			line = fmt.Sprintf("%s ↔ %s  %d", e.Pair.A, e.Pair.B, e.Calls)
		} else {
			n := m.view.Nodes[i]
			line = firstLine(n.Label)
			if n.Owner != "" {
				line += "  " + n.Owner
			} else {
				style = styles.ListUnassigned
			}
		}
		if i == p.Cursor() {
			style = styles.ListSelected
		}
		b.WriteString(style.Render(truncate(line, width)))
		b.WriteString("\n")
	}
	if p.Total() == 0 {
		b.WriteString(RenderMuted("(none)"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderDetail(sel, width))
	return b.String()
}

func (m *GraphModel) renderDetail(sel Target, width int) string {
	var lines []string
	switch {
	case sel.HasPair():
		agg, err := m.ws.EdgeStats(sel.Pair)
		if err != nil {
			return ""
		}
		lines = append(lines, RenderLabelValue("Calls", fmt.Sprint(agg.CallCount)))
		if r := agg.DateRangeLabel(); r != "" {
			lines = append(lines, RenderLabelValue("Range", r))
		}
		if agg.DurationSamples > 0 {
			lines = append(lines, RenderLabelValue("Avg", agg.AverageDuration().Round(time.Second).String()))
		}
		for _, n := range agg.Notes {
			lines = append(lines, RenderMuted("• "+truncate(n, width-2)))
		}
	case sel.Phone != "":
		info, err := m.ws.PhoneInfo(sel.Phone)
		if err != nil {
			return ""
		}
		lines = append(lines, RenderLabelValue("Phone", info.Phone.ID.String()))
		if info.Phone.Alias != "" {
			lines = append(lines, RenderLabelValue("Alias", info.Phone.Alias))
		}
		if info.Owner != nil {
			lines = append(lines, RenderLabelValue("Owner", info.Owner.Name))
		}
		lines = append(lines,
			RenderLabelValue("Calls", fmt.Sprint(info.Stats.TotalCalls)),
			RenderLabelValue("Contacts", fmt.Sprint(info.Stats.UniqueContacts)),
			RenderLabelValue("Talk time", info.Stats.FormatTotalDuration()),
			RenderLabelValue("Position", info.Placement.State.String()),
		)
	}
	return strings.Join(lines, "\n")
}

func (m *GraphModel) renderStatus() string {
	spec := m.ws.Spec()
	parts := []string{
		fmt.Sprintf("calls ≥ %d", spec.MinCalls),
		fmt.Sprintf("max %d phones", spec.MaxNodes),
		fmt.Sprintf("zoom %.2f", m.view.Zoom),
	}
	if !spec.ShowUnassignedPhones {
		parts = append(parts, "unassigned hidden")
	}
	if !spec.ShowPersons {
		parts = append(parts, "persons hidden")
	}
	if spec.DateFrom != nil || spec.DateTo != nil || spec.TimeFrom != nil || spec.TimeTo != nil {
		parts = append(parts, "windowed")
	}

	badge := styles.StatusKey.Render("READY")
	if m.busy {
		badge = styles.StatusBusy.Render("FILTERING")
	}
	return badge + styles.StatusBar.Render(strings.Join(parts, " · "))
}
