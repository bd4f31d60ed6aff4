// Package tui is the terminal interface: a transcript panel, a status line
// and the audio device selector. Record key events arrive from the global
// hotkey listener as RecordKeyMsg.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"

	"github.com/chaz8081/holdscribe/internal/audio"
	"github.com/chaz8081/holdscribe/internal/config"
	"github.com/chaz8081/holdscribe/internal/session"
)

// Recorder is the part of the session controller the UI drives.
type Recorder interface {
	Start(device int) (bool, error)
	Stop() ([]int16, error)
	Process(ctx context.Context, samples []int16) (session.Result, error)
}

// RecordKeyMsg reports a record key transition from the hotkey listener.
type RecordKeyMsg struct {
	Down bool
}

type processedMsg struct {
	res session.Result
	err error
}

type copiedMsg struct {
	err error
}

type statusKind int

const (
	statusIdle statusKind = iota
	statusRecording
	statusBusy
	statusDone
	statusError
)

// Options configures a Model.
type Options struct {
	Mode     string // config.ModeWAV or config.ModeTranscribe
	KeyLabel string // record key combination as shown to the user
	Log      zerolog.Logger

	// Clipboard writes text to the system clipboard. Defaults to
	// clipboard.WriteAll.
	Clipboard func(string) error
}

// Model is the bubbletea model.
type Model struct {
	ctx  context.Context
	rec  Recorder
	sel  *audio.Selector
	opts Options
	keys keyMap

	panel      textarea.Model
	status     string
	kind       statusKind
	recording  bool
	processing int

	width  int
	height int
}

// New creates a Model. ctx bounds the processing of recordings.
func New(ctx context.Context, rec Recorder, sel *audio.Selector, opts Options) *Model {
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}

	panel := textarea.New()
	panel.Placeholder = "Recorded text"
	panel.ShowLineNumbers = false
	panel.CharLimit = 0
	panel.Blur()

	m := &Model{
		ctx:   ctx,
		rec:   rec,
		sel:   sel,
		opts:  opts,
		keys:  defaultKeyMap(),
		panel: panel,
	}
	m.setIdleStatus()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Text returns the contents of the transcript panel.
func (m *Model) Text() string {
	return m.panel.Value()
}

// Status returns the status line.
func (m *Model) Status() string {
	return m.status
}

// Recording reports whether a recording is in progress.
func (m *Model) Recording() bool {
	return m.recording
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resizePanel()
		return m, nil

	case RecordKeyMsg:
		if msg.Down {
			return m, m.recordDown()
		}
		return m, m.recordUp()

	case processedMsg:
		m.handleProcessed(msg)
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.setStatus(statusError, "Copy failed: "+msg.err.Error())
		} else {
			m.setStatus(statusDone, "Copied to clipboard")
		}
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	if m.panel.Focused() {
		var cmd tea.Cmd
		m.panel, cmd = m.panel.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.panel.Focused() {
		switch {
		case key.Matches(msg, m.keys.Blur):
			m.panel.Blur()
			return m, nil
		case key.Matches(msg, m.keys.Copy):
			return m, m.copyPanel()
		}
		var cmd tea.Cmd
		m.panel, cmd = m.panel.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.DeviceUp):
		m.changeDevice(m.sel.Up)
	case key.Matches(msg, m.keys.DeviceDown):
		m.changeDevice(m.sel.Down)
	case key.Matches(msg, m.keys.Focus):
		return m, m.panel.Focus()
	case key.Matches(msg, m.keys.Copy):
		return m, m.copyPanel()
	case key.Matches(msg, m.keys.ClearPanel):
		m.panel.SetValue("")
	}
	return m, nil
}

// changeDevice moves the selector unless a recording holds the device open.
func (m *Model) changeDevice(move func() bool) {
	if m.recording {
		return
	}
	if move() {
		m.opts.Log.Debug().Int("device", m.sel.Index()).Str("name", m.sel.Current().Name).Msg("Audio device changed")
	}
}

// recordDown starts a recording. The record key is ignored while the text
// panel has focus so that typing into it does not trigger capture.
func (m *Model) recordDown() tea.Cmd {
	if m.panel.Focused() {
		m.opts.Log.Debug().Msg("Record key ignored, text panel focused")
		return nil
	}
	if m.recording {
		return nil
	}

	started, err := m.rec.Start(m.sel.Index())
	if err != nil {
		m.setStatus(statusError, "Cannot record: "+err.Error())
		return nil
	}
	if started {
		m.recording = true
		m.setStatus(statusRecording, "Recording... release "+m.opts.KeyLabel+" to stop")
	}
	return nil
}

// recordUp stops the recording and processes the samples off the UI loop.
func (m *Model) recordUp() tea.Cmd {
	if !m.recording {
		return nil
	}
	m.recording = false

	samples, err := m.rec.Stop()
	switch {
	case errors.Is(err, session.ErrNoAudio):
		m.setStatus(statusIdle, "No audio recorded")
		return nil
	case err != nil:
		m.setStatus(statusError, "Recording failed: "+err.Error())
		return nil
	case samples == nil:
		m.setIdleStatus()
		return nil
	}

	m.processing++
	if m.opts.Mode == config.ModeWAV {
		m.setStatus(statusBusy, "Saving recording...")
	} else {
		m.setStatus(statusBusy, "Transcribing...")
	}

	ctx, rec := m.ctx, m.rec
	return func() tea.Msg {
		res, err := rec.Process(ctx, samples)
		return processedMsg{res: res, err: err}
	}
}

func (m *Model) handleProcessed(msg processedMsg) {
	if m.processing > 0 {
		m.processing--
	}

	if msg.err != nil {
		m.setStatus(statusError, "Processing failed: "+msg.err.Error())
		return
	}

	res := msg.res
	if m.opts.Mode == config.ModeWAV {
		m.setStatus(statusDone, fmt.Sprintf("Saved %s (%s)", res.Path, formatSeconds(res.Duration)))
		return
	}

	text := strings.TrimSpace(res.Text)
	if text == "" {
		m.setStatus(statusDone, fmt.Sprintf("No speech detected in %s of audio", formatSeconds(res.Duration)))
		return
	}
	m.appendText(text)
	m.setStatus(statusDone, fmt.Sprintf("Transcribed %s of audio in %s", formatSeconds(res.Duration), formatSeconds(res.Elapsed)))
}

// appendText adds a transcript below the existing panel contents.
func (m *Model) appendText(text string) {
	value := m.panel.Value()
	if value != "" && !strings.HasSuffix(value, "\n") {
		value += "\n"
	}
	m.panel.SetValue(value + text)
	m.panel.MoveToEnd()
}

func (m *Model) copyPanel() tea.Cmd {
	text := m.panel.Value()
	if text == "" {
		return nil
	}
	write := m.opts.Clipboard
	return func() tea.Msg {
		return copiedMsg{err: write(text)}
	}
}

func (m *Model) setStatus(kind statusKind, s string) {
	m.kind = kind
	m.status = s
}

func (m *Model) setIdleStatus() {
	m.setStatus(statusIdle, "Hold "+m.opts.KeyLabel+" to record")
}

func (m *Model) resizePanel() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	// border and padding take two columns on each side
	m.panel.SetWidth(max(m.width-4, 10))
	// title, status, device, hint and help lines plus the panel border
	m.panel.SetHeight(max(m.height-8, 3))
}

// View implements tea.Model.
func (m *Model) View() tea.View {
	var b strings.Builder

	b.WriteString(titleStyle.Render("holdscribe"))
	b.WriteString("\n")

	style := panelStyle
	if m.panel.Focused() {
		style = focusedPanelStyle
	}
	b.WriteString(style.Render(m.panel.View()))
	b.WriteString("\n")

	b.WriteString(statusStyles[m.kind].Render(m.statusLine()))
	b.WriteString("\n")
	b.WriteString(deviceStyle.Render("Audio device: " + m.sel.Label()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Use Up/Down to change audio device"))
	b.WriteString("\n")
	b.WriteString(m.helpLine())

	view := tea.NewView(b.String())
	view.AltScreen = true
	view.WindowTitle = "holdscribe"
	return view
}

func (m *Model) statusLine() string {
	if m.processing > 1 && m.kind == statusBusy {
		return fmt.Sprintf("%s (%d queued)", m.status, m.processing)
	}
	return m.status
}

func (m *Model) helpLine() string {
	bindings := m.keys.shortHelp(m.panel.Focused())
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return helpStyle.Render(strings.Join(parts, " • "))
}

func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
