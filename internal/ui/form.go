package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"segbox/internal/debug"
	"segbox/internal/ui/theme"
)

const (
	formHeaderRows = 2 // title + blank line
	toastDuration  = 4 * time.Second
)

// FormOptions configures the host form.
type FormOptions struct {
	Title string
	// HelpFormat is the glamour style for the help overlay ("plain" skips markdown).
	HelpFormat string
	// OnSubmit persists a submitted value. Nil means submissions are only shown.
	OnSubmit func(SubmitMsg) error
	// SaveTheme persists the theme after ctrl+t. Nil skips persisting.
	SaveTheme func(name string) error
	// Copy writes to the clipboard. Nil uses the system clipboard.
	Copy func(string) error
	Keys *KeyMap
}

type toast struct {
	text    string
	isError bool
	until   time.Time
}

type submitResultMsg struct {
	submit SubmitMsg
	err    error
}

// Form is the host page: a column of registered searchboxes with a footer,
// a help overlay and transient toasts.
type Form struct {
	registry *Registry
	opts     FormOptions
	keys     KeyMap

	width, height int
	showHelp      bool
	toast         *toast
	lastSubmit    string

	// Row at which each searchbox starts in the last rendered body.
	layout map[string]int
}

// NewForm creates a form over the searchboxes in reg.
func NewForm(reg *Registry, opts FormOptions) *Form {
	keys := DefaultKeyMap()
	if opts.Keys != nil {
		keys = *opts.Keys
	}
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}
	if opts.Title == "" {
		opts.Title = "segbox"
	}
	return &Form{
		registry: reg,
		opts:     opts,
		keys:     keys,
		layout:   make(map[string]int),
	}
}

// Init starts config loads and focuses the first searchbox.
func (f *Form) Init() tea.Cmd {
	return tea.Batch(f.registry.Init(), f.registry.FocusNext(1))
}

// Update implements tea.Model.
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.width = msg.Width
		f.height = msg.Height
		for _, sb := range f.registry.Searchboxes() {
			if sb.Width > msg.Width-2 {
				sb.Width = max(msg.Width-2, 16)
			}
		}
		return f, nil

	case tea.KeyMsg:
		return f.handleKey(msg)

	case tea.MouseMsg:
		return f, f.handleMouse(msg)

	case SubmitMsg:
		return f, f.submitCmd(msg)

	case submitResultMsg:
		if msg.err != nil {
			debug.Error(msg.err, "submit", "field", msg.submit.FieldID)
			return f, f.showToast(fmt.Sprintf("Submit failed: %v", msg.err), true)
		}
		f.lastSubmit = msg.submit.Value
		return f, f.showToast(fmt.Sprintf("Submitted %s = %q", msg.submit.FieldID, msg.submit.Value), false)

	case ChipAddedMsg:
		debug.Log("form observed chip added", "field", msg.FieldID, "data", msg.Entry.Data)
		return f, nil

	case ChipRemovedMsg:
		debug.Log("form observed chip removed", "field", msg.FieldID, "data", msg.Chip.Data)
		return f, nil

	case toastTickMsg:
		if f.toast == nil {
			return f, nil
		}
		if time.Now().After(f.toast.until) {
			f.toast = nil
			return f, nil
		}
		return f, scheduleToastTick()
	}

	return f, f.registry.Update(msg)
}

func (f *Form) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, f.keys.Quit) {
		return f, tea.Quit
	}

	if f.showHelp {
		if key.Matches(msg, f.keys.Help) || key.Matches(msg, f.keys.Close) {
			f.showHelp = false
		}
		return f, nil
	}

	switch {
	case key.Matches(msg, f.keys.Help):
		f.showHelp = true
		return f, nil
	case key.Matches(msg, f.keys.Focus):
		delta := 1
		if msg.String() == "shift+tab" {
			delta = -1
		}
		return f, f.registry.FocusNext(delta)
	case key.Matches(msg, f.keys.Copy):
		return f, f.copyValue()
	case key.Matches(msg, f.keys.Theme):
		return f, f.cycleTheme()
	case key.Matches(msg, f.keys.Close) && f.toast != nil:
		if sb, ok := f.registry.Focused(); !ok || (!sb.Dropdown().IsOpen() && !sb.InChipNavigation()) {
			f.toast = nil
			return f, nil
		}
	}
	return f, f.registry.Update(msg)
}

func (f *Form) copyValue() tea.Cmd {
	sb, ok := f.registry.Focused()
	if !ok {
		return nil
	}
	value := sb.Value()
	if err := f.opts.Copy(value); err != nil {
		debug.Error(err, "copy to clipboard")
		return f.showToast("Clipboard unavailable", true)
	}
	return f.showToast(fmt.Sprintf("Copied %q to clipboard.", value), false)
}

func (f *Form) cycleTheme() tea.Cmd {
	name := theme.CycleTheme()
	if f.opts.SaveTheme != nil {
		if err := f.opts.SaveTheme(name); err != nil {
			debug.Error(err, "save theme", "theme", name)
		}
	}
	return f.showToast("Theme: "+name, false)
}

func (f *Form) submitCmd(msg SubmitMsg) tea.Cmd {
	if f.opts.OnSubmit == nil {
		return emit(submitResultMsg{submit: msg})
	}
	save := f.opts.OnSubmit
	return func() tea.Msg {
		return submitResultMsg{submit: msg, err: save(msg)}
	}
}

func (f *Form) showToast(text string, isError bool) tea.Cmd {
	f.toast = &toast{text: text, isError: isError, until: time.Now().Add(toastDuration)}
	return scheduleToastTick()
}

// handleMouse focuses the searchbox under a left click and accepts the
// candidate under it, if any.
func (f *Form) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if f.showHelp || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	for _, sb := range f.registry.Searchboxes() {
		top, ok := f.layout[sb.ID()]
		if !ok {
			continue
		}
		height := lipgloss.Height(sb.View())
		if msg.Y < top || msg.Y >= top+height {
			continue
		}
		if idx, ok := sb.CandidateAtLine(msg.Y - top); ok {
			return emit(CandidateClickedMsg{FieldID: sb.ID(), Index: idx})
		}
		if sb.Focused() {
			return nil
		}
		for _, other := range f.registry.Searchboxes() {
			other.Blur()
		}
		return sb.Focus()
	}
	return nil
}

// View implements tea.Model.
func (f *Form) View() string {
	body := f.renderBody()
	if f.width <= 0 || f.height <= 0 {
		return body
	}

	canvas := NewCanvas(f.width, f.height)
	canvas.DrawStringAt(0, 0, body)
	canvas.DrawStringAt(0, f.height-1, renderFooter(f.width, "theme: "+theme.CurrentName()))
	if f.showHelp {
		canvas.Center(renderHelpOverlay(f.keys, f.opts.HelpFormat, f.width), 1, 1)
	}
	if f.toast != nil {
		style := styleSuccessToast()
		if f.toast.isError {
			style = styleErrorToast()
		}
		canvas.BottomRight(style.Render(f.toast.text), 1)
	}
	return canvas.Render()
}

func (f *Form) renderBody() string {
	header := styleAppHeader().Render(f.opts.Title)
	if f.lastSubmit != "" {
		header += " " + styleMuted().Render("last: "+f.lastSubmit)
	}
	lines := []string{header, ""}

	row := formHeaderRows
	for _, sb := range f.registry.Searchboxes() {
		view := sb.View()
		f.layout[sb.ID()] = row
		lines = append(lines, view, "")
		row += lipgloss.Height(view) + 1
	}
	return strings.Join(lines, "\n")
}

// Registry returns the form's searchboxes.
func (f *Form) Registry() *Registry { return f.registry }

// ShowingHelp reports whether the help overlay is open.
func (f *Form) ShowingHelp() bool { return f.showHelp }

// LastSubmitted returns the last successfully submitted value.
func (f *Form) LastSubmitted() string { return f.lastSubmit }
