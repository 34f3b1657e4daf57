package ui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/nconklindev/diacritix/internal/app"
	"github.com/nconklindev/diacritix/internal/converter"
	"github.com/nconklindev/diacritix/internal/types"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

type state int

const (
	stateFilePicker state = iota
	stateActions
	stateProcessing
	stateComplete
	stateAnalysis
	stateMappings
	stateEditMapping
	stateError
)

type action struct {
	key   string
	label string
}

var actions = []action{
	{"f", "Fix file"},
	{"a", "Analyze characters"},
	{"m", "Edit mappings"},
	{"c", "Open mappings file"},
	{"b", "Choose another file"},
}

type Model struct {
	app          *app.App
	state        state
	filepicker   filepicker.Model
	selectedFile string
	cursor       int
	busy         string
	result       *types.TransformResult
	analysis     *types.AnalysisResult
	chars        table.Model
	mappings     types.CharacterMap
	keys         []rune
	mapCursor    int
	back         state // where the mapping list returns to
	editReturn   state // where the edit form returns to
	charInput    textinput.Model
	replInput    textinput.Model
	notice       string
	noticeErr    bool
	err          error
	width        int
	height       int
	progress     progress.Model
	progressChan chan float64
	resultChan   chan *types.TransformResult
}

type conversionCompleteMsg struct {
	result *types.TransformResult
}

type analysisCompleteMsg struct {
	result *types.AnalysisResult
}

type editorFinishedMsg struct {
	err error
}

type progressMsg float64

type waitForProgressMsg struct{}

// InitialModel builds the interface state. A non-empty file skips the
// file picker.
func InitialModel(a *app.App, file string) Model {
	fp := filepicker.New()
	fp.AllowedTypes = slices.Clone(converter.SupportedExtensions)
	fp.CurrentDirectory, _ = os.Getwd()
	if file != "" {
		if abs, err := filepath.Abs(file); err == nil {
			file = abs
			fp.CurrentDirectory = filepath.Dir(abs)
		}
	}

	fp.Styles.Cursor = lipgloss.NewStyle().Foreground(colorAccent)
	fp.Styles.Symlink = lipgloss.NewStyle().Foreground(colorSoft)
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(colorSoft)
	fp.Styles.File = lipgloss.NewStyle().Foreground(colorText)
	fp.Styles.DisabledFile = lipgloss.NewStyle().Foreground(colorMuted)
	fp.Styles.Permission = lipgloss.NewStyle().Foreground(colorMuted)
	fp.Styles.Selected = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	fp.Styles.FileSize = lipgloss.NewStyle().Foreground(colorMuted)

	charInput := textinput.New()
	charInput.Prompt = "Character:   "
	charInput.Placeholder = "é"
	charInput.CharLimit = 1

	replInput := textinput.New()
	replInput.Prompt = "Replacement: "
	replInput.Placeholder = "e (empty deletes the character from text)"

	m := Model{
		app:        a,
		state:      stateFilePicker,
		filepicker: fp,
		chars:      newCharTable(),
		charInput:  charInput,
		replInput:  replInput,
		progress:   progress.New(progress.WithGradient(string(colorAccent), string(colorSoft))),
	}
	if file != "" {
		m.selectedFile = file
		m.state = stateActions
	}
	return m
}

// Run starts the interface and blocks until the user quits.
func Run(a *app.App, file string) error {
	p := tea.NewProgram(InitialModel(a, file), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func newCharTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Char", Width: 6},
			{Title: "Count", Width: 7},
			{Title: "Code", Width: 8},
			{Title: "Name", Width: 34},
			{Title: "Replacement", Width: 14},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorMuted).
		BorderBottom(true).
		Foreground(colorAccent).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(colorText).
		Background(colorAccent).
		Bold(true)
	t.SetStyles(s)
	return t
}

func (m Model) Init() tea.Cmd {
	return m.filepicker.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Leave room for title, subtitle, help text and padding
		m.filepicker.SetHeight(max(msg.Height-14, 5))
		m.chars.SetHeight(max(msg.Height-16, 5))
		if msg.Width > 20 {
			m.progress.Width = min(msg.Width-16, 60)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.state {
		case stateFilePicker:
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "m":
				return m.openMappings(stateFilePicker)
			case "c":
				return m, m.openConfig()
			}

		case stateActions:
			return m.updateActions(msg)

		case stateProcessing:
			return m, nil

		case stateComplete, stateError:
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "enter", "esc":
				return m.reset()
			}
			return m, nil

		case stateAnalysis:
			return m.updateAnalysis(msg)

		case stateMappings:
			return m.updateMappings(msg)

		case stateEditMapping:
			return m.updateEditMapping(msg)
		}

	case conversionCompleteMsg:
		if msg.result == nil || !msg.result.Success {
			m.err = errors.New(resultMessage(msg.result))
			m.state = stateError
			return m, nil
		}
		m.result = msg.result
		m.state = stateComplete
		return m, nil

	case analysisCompleteMsg:
		if msg.result == nil || !msg.result.Success {
			m.err = errors.New(analysisMessage(msg.result))
			m.state = stateError
			return m, nil
		}
		m.analysis = msg.result
		m.chars.SetRows(charRows(msg.result.Characters))
		m.chars.SetCursor(0)
		m.state = stateAnalysis
		return m, nil

	case editorFinishedMsg:
		if msg.err != nil {
			m.notice = fmt.Sprintf("Error opening config file: %v", msg.err)
			m.noticeErr = true
		} else {
			m.notice = "Opened " + m.app.MappingsPath()
			m.noticeErr = false
		}
		if m.state == stateMappings {
			m.loadMappings()
		}
		return m, nil

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case progressMsg:
		if m.state == stateProcessing {
			cmd := m.progress.SetPercent(float64(msg))
			return m, tea.Batch(cmd, waitForProgress(m.progressChan, m.resultChan))
		}
		return m, nil

	case waitForProgressMsg:
		return m, waitForProgress(m.progressChan, m.resultChan)
	}

	switch m.state {
	case stateFilePicker:
		var cmd tea.Cmd
		m.filepicker, cmd = m.filepicker.Update(msg)

		if didSelect, path := m.filepicker.DidSelectFile(msg); didSelect {
			m.selectedFile = path
			m.cursor = 0
			m.notice = ""
			m.state = stateActions
			return m, nil
		}
		if didSelect, path := m.filepicker.DidSelectDisabledFile(msg); didSelect {
			m.notice = fmt.Sprintf("%s is not a supported file type", filepath.Base(path))
			m.noticeErr = true
		}
		return m, cmd

	case stateEditMapping:
		return m.updateInputs(msg)
	}

	return m, nil
}

func (m Model) updateActions(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(actions)-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		key = actions[m.cursor].key
	case "esc":
		key = "b"
	}

	switch key {
	case "f":
		m.notice = ""
		return m.processFile()
	case "a":
		m.notice = ""
		return m.analyzeFile()
	case "m":
		return m.openMappings(stateActions)
	case "c":
		return m, m.openConfig()
	case "b":
		m.notice = ""
		m.selectedFile = ""
		m.state = stateFilePicker
		return m, m.filepicker.Init()
	}
	return m, nil
}

func (m Model) updateAnalysis(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "b":
		m.notice = ""
		m.state = stateActions
		return m, nil
	case "f":
		m.notice = ""
		return m.processFile()
	case "m":
		return m.openMappings(stateAnalysis)
	case "e", "enter":
		row := m.chars.SelectedRow()
		if len(row) == 0 {
			return m, nil
		}
		return m.editMapping(row[0], stateAnalysis)
	}

	var cmd tea.Cmd
	m.chars, cmd = m.chars.Update(msg)
	return m, cmd
}

func (m Model) updateMappings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		m.notice = ""
		if m.back == stateAnalysis {
			return m.analyzeFile()
		}
		m.state = m.back
		return m, nil
	case "up", "k":
		if m.mapCursor > 0 {
			m.mapCursor--
		}
	case "down", "j":
		if m.mapCursor < len(m.keys)-1 {
			m.mapCursor++
		}
	case "g", "home":
		m.mapCursor = 0
	case "G", "end":
		m.mapCursor = max(len(m.keys)-1, 0)
	case "a":
		return m.editMapping("", stateMappings)
	case "e", "enter":
		if len(m.keys) > 0 {
			return m.editMapping(string(m.keys[m.mapCursor]), stateMappings)
		}
	case "d", "x", "delete":
		if len(m.keys) == 0 {
			return m, nil
		}
		char := string(m.keys[m.mapCursor])
		res := m.app.DeleteMapping(char)
		if !res.Success {
			m.notice, m.noticeErr = res.Message, true
			return m, nil
		}
		m.notice, m.noticeErr = "Deleted "+char, false
		m.loadMappings()
	case "r":
		m.loadMappings()
		m.notice, m.noticeErr = "Reloaded "+m.app.MappingsPath(), false
	case "c":
		return m, m.openConfig()
	}
	return m, nil
}

func (m Model) updateEditMapping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.charInput.Blur()
		m.replInput.Blur()
		m.notice = ""
		m.state = m.editReturn
		return m, nil
	case "tab", "shift+tab", "up", "down":
		if m.charInput.Focused() {
			m.charInput.Blur()
			return m, m.replInput.Focus()
		}
		m.replInput.Blur()
		return m, m.charInput.Focus()
	case "enter":
		return m.saveMapping()
	}
	return m.updateInputs(msg)
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.charInput.Focused() {
		m.charInput, cmd = m.charInput.Update(msg)
	} else {
		m.replInput, cmd = m.replInput.Update(msg)
	}
	return m, cmd
}

func (m Model) reset() (Model, tea.Cmd) {
	m.err = nil
	m.result = nil
	m.notice = ""
	if m.selectedFile == "" {
		m.state = stateFilePicker
		return m, m.filepicker.Init()
	}
	m.state = stateActions
	return m, nil
}

func (m *Model) loadMappings() {
	m.mappings = m.app.GetMappings()
	m.keys = m.mappings.Keys()
	if m.mapCursor >= len(m.keys) {
		m.mapCursor = max(len(m.keys)-1, 0)
	}
}

func (m *Model) selectKey(char string) {
	r, ok := types.SingleRune(char)
	if !ok {
		return
	}
	if i, found := slices.BinarySearch(m.keys, r); found {
		m.mapCursor = i
	}
}

func (m Model) openMappings(back state) (Model, tea.Cmd) {
	m.back = back
	m.notice = ""
	m.state = stateMappings
	m.loadMappings()
	return m, nil
}

func (m Model) editMapping(char string, ret state) (Model, tea.Cmd) {
	m.editReturn = ret
	m.notice = ""
	m.state = stateEditMapping
	m.charInput.SetValue(char)
	m.replInput.SetValue("")

	if r, ok := types.SingleRune(char); ok {
		if rep, ok := m.app.GetMappings()[r]; ok {
			m.replInput.SetValue(rep)
		}
	}

	if char == "" {
		m.replInput.Blur()
		return m, m.charInput.Focus()
	}
	m.charInput.Blur()
	return m, m.replInput.Focus()
}

func (m Model) saveMapping() (Model, tea.Cmd) {
	char := m.charInput.Value()
	replacement := m.replInput.Value()

	res := m.app.UpdateMapping(char, replacement)
	if !res.Success {
		m.notice, m.noticeErr = res.Message, true
		return m, nil
	}

	m.charInput.Blur()
	m.replInput.Blur()
	m.notice = fmt.Sprintf("Saved %s → %s", char, displayReplacement(replacement))
	m.noticeErr = false
	m.loadMappings()
	m.selectKey(char)

	if m.editReturn == stateAnalysis {
		return m.analyzeFile()
	}
	m.state = stateMappings
	return m, nil
}

func (m Model) openConfig() tea.Cmd {
	if err := m.app.PrepareConfig(); err != nil {
		return func() tea.Msg { return editorFinishedMsg{err: err} }
	}

	cmd, interactive := m.app.EditorCommand()
	if interactive {
		return tea.ExecProcess(cmd, func(err error) tea.Msg {
			return editorFinishedMsg{err: err}
		})
	}
	return func() tea.Msg {
		err := cmd.Start()
		if err == nil {
			err = cmd.Process.Release()
		}
		return editorFinishedMsg{err: err}
	}
}

func (m Model) analyzeFile() (Model, tea.Cmd) {
	m.state = stateProcessing
	m.busy = "Scanning for special characters..."
	m.progressChan = nil
	m.resultChan = nil

	a, file := m.app, m.selectedFile
	return m, func() tea.Msg {
		return analysisCompleteMsg{result: a.AnalyzeFile(file)}
	}
}

func (m Model) processFile() (Model, tea.Cmd) {
	m.state = stateProcessing
	m.busy = "Replacing special characters..."
	m.progressChan = make(chan float64, 100)
	m.resultChan = make(chan *types.TransformResult, 1)

	// Capture for the goroutine
	progressChan := m.progressChan
	resultChan := m.resultChan
	selectedFile := m.selectedFile
	a := m.app

	cmd := tea.Batch(
		func() tea.Msg {
			go func() {
				resultChan <- a.ProcessFileWithProgress(selectedFile, progressChan)
				close(progressChan)
				close(resultChan)
			}()
			return waitForProgressMsg{}
		},
		m.progress.SetPercent(0),
	)

	return m, cmd
}

func waitForProgress(progressChan chan float64, resultChan chan *types.TransformResult) tea.Cmd {
	return func() tea.Msg {
		if progressChan == nil {
			return nil
		}

		p, ok := <-progressChan
		if !ok {
			// Progress channel closed, check result
			res, ok := <-resultChan
			if ok {
				return conversionCompleteMsg{result: res}
			}
			return nil
		}

		return progressMsg(p)
	}
}

func resultMessage(r *types.TransformResult) string {
	if r == nil || r.Message == "" {
		return "Error processing file"
	}
	return r.Message
}

func analysisMessage(r *types.AnalysisResult) string {
	if r == nil || r.Message == "" {
		return "Error analyzing file"
	}
	return r.Message
}

func charRows(reports []types.CharacterReport) []table.Row {
	rows := make([]table.Row, 0, len(reports))
	for _, r := range reports {
		replacement := "NOT MAPPED"
		if r.Mapped {
			replacement = displayReplacement(r.Replacement)
		}
		rows = append(rows, table.Row{r.Char, strconv.Itoa(r.Count), r.Hex, r.Name, replacement})
	}
	return rows
}

func displayReplacement(s string) string {
	if s == "" {
		return "(removed)"
	}
	return strconv.Quote(s)
}

// truncatePath keeps the tail of path within the terminal width, measured
// in cells.
func truncatePath(path string, width int) string {
	maxLen := max(width-20, 30)
	if w := ansi.StringWidth(path); w > maxLen {
		return ansi.TruncateLeft(path, w-maxLen+3, "...")
	}
	return path
}

func (m Model) View() string {
	switch m.state {
	case stateFilePicker:
		return m.viewFilePicker()
	case stateActions:
		return m.viewActions()
	case stateProcessing:
		return m.viewProcessing()
	case stateComplete:
		return m.viewComplete()
	case stateAnalysis:
		return m.viewAnalysis()
	case stateMappings:
		return m.viewMappings()
	case stateEditMapping:
		return m.viewEditMapping()
	case stateError:
		return m.viewError()
	}
	return ""
}

func (m Model) viewNotice() string {
	if m.notice == "" {
		return ""
	}
	if m.noticeErr {
		return "\n" + ErrorStyle.Render(m.notice) + "\n"
	}
	return "\n" + SuccessStyle.Render(m.notice) + "\n"
}

func (m Model) viewFilePicker() string {
	var s strings.Builder

	title := TitleStyle.Render("✎ Diacritix - Special Character Fixer")

	authorSpan := SubtitleStyle.Render("by Nick Conklin • ")
	githubSpan := LinkStyle.Render("https://github.com/nconklindev/diacritix")
	byLine := lipgloss.JoinHorizontal(lipgloss.Top, authorSpan, githubSpan)

	s.WriteString(lipgloss.JoinVertical(lipgloss.Left, title, byLine))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render("Select a spreadsheet (" + strings.Join(converter.SupportedExtensions, ", ") + ")"))
	s.WriteString("\n\n")
	s.WriteString(m.filepicker.View())
	s.WriteString("\n")
	s.WriteString(m.viewNotice())
	s.WriteString(HelpStyle.Render("m: edit mappings • c: open mappings file • q: quit"))

	return s.String()
}

func (m Model) viewActions() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("✎ What should happen to this file?"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render(fmt.Sprintf("File: %s", filepath.Base(m.selectedFile))))
	s.WriteString("\n\n")

	for i, a := range actions {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}

		line := fmt.Sprintf("%s [%s] %s", cursor, a.key, a.label)
		if m.cursor == i {
			line = SelectedStyle.Render(line)
		} else {
			line = UnselectedStyle.Render(line)
		}

		s.WriteString(line)
		s.WriteString("\n")
	}

	if a := m.app.OutputPath(m.selectedFile); a != "" {
		s.WriteString("\n")
		s.WriteString(MutedStyle.Render("Output: " + filepath.Base(a)))
		s.WriteString("\n")
	}
	s.WriteString(m.viewNotice())
	s.WriteString(HelpStyle.Render("↑/↓: navigate • enter: select • esc: back • q: quit"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewProcessing() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("✎ Processing..."))
	s.WriteString("\n\n")
	s.WriteString(m.busy)
	if m.progressChan != nil {
		s.WriteString("\n\n")
		s.WriteString(m.progress.View())
	}

	return BoxStyle.Render(s.String())
}

func (m Model) viewComplete() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("✓ File Fixed!"))
	s.WriteString("\n\n")

	s.WriteString(fmt.Sprintf("Input:  %s\n", truncatePath(m.result.InputFile, m.width)))
	s.WriteString(SuccessStyle.Render(fmt.Sprintf("Output: %s\n", truncatePath(m.result.OutputFile, m.width))))
	s.WriteString("\n")
	s.WriteString(fmt.Sprintf("Sheets processed: %d\n", m.result.Sheets))
	s.WriteString(fmt.Sprintf("Cells scanned:    %d\n", m.result.CellsScanned))
	s.WriteString(fmt.Sprintf("Cells changed:    %d\n", m.result.CellsChanged))
	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("enter: back • q: quit"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewAnalysis() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("✎ Special Characters"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render(fmt.Sprintf("File: %s", filepath.Base(m.selectedFile))))
	s.WriteString("\n")

	if m.analysis == nil || len(m.analysis.Characters) == 0 {
		s.WriteString(SuccessStyle.Render("✓ No special characters found"))
		s.WriteString("\n")
	} else {
		unmapped := 0
		for _, c := range m.analysis.Characters {
			if !c.Mapped {
				unmapped++
			}
		}
		summary := fmt.Sprintf("%d distinct character(s)", len(m.analysis.Characters))
		s.WriteString(summary)
		if unmapped > 0 {
			s.WriteString(" • ")
			s.WriteString(UnmappedStyle.Render(fmt.Sprintf("%d not mapped", unmapped)))
		}
		s.WriteString("\n\n")
		s.WriteString(m.chars.View())
		s.WriteString("\n")
	}

	s.WriteString(m.viewNotice())
	s.WriteString(HelpStyle.Render("↑/↓: navigate • e: edit mapping • m: all mappings • f: fix file • esc: back • q: quit"))

	return BoxStyle.Render(s.String())
}

func (m Model) listHeight() int {
	if m.height == 0 {
		return 10
	}
	return max(m.height-14, 5)
}

func (m Model) viewMappings() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("✎ Character Mappings"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render(truncatePath(m.app.MappingsPath(), m.width)))
	s.WriteString("\n")

	if len(m.keys) == 0 {
		s.WriteString(MutedStyle.Render("No mappings. Press a to add one."))
		s.WriteString("\n")
	}

	visible := m.listHeight()
	start := 0
	if m.mapCursor >= visible {
		start = m.mapCursor - visible + 1
	}
	end := min(start+visible, len(m.keys))

	for i := start; i < end; i++ {
		r := m.keys[i]
		cursor := " "
		if m.mapCursor == i {
			cursor = ">"
		}

		line := fmt.Sprintf("%s %-2s U+%04X  →  %s", cursor, string(r), r, displayReplacement(m.mappings[r]))
		if m.mapCursor == i {
			line = SelectedStyle.Render(line)
		} else {
			line = UnselectedStyle.Render(line)
		}

		s.WriteString(line)
		s.WriteString("\n")
	}

	if len(m.keys) > visible {
		s.WriteString(MutedStyle.Render(fmt.Sprintf("%d of %d", m.mapCursor+1, len(m.keys))))
		s.WriteString("\n")
	}

	s.WriteString(m.viewNotice())
	s.WriteString(HelpStyle.Render("↑/↓: navigate • a: add • e: edit • d: delete • r: reload • c: open file • esc: back • q: quit"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewEditMapping() string {
	var s strings.Builder

	title := "✎ Add Mapping"
	if m.charInput.Value() != "" && !m.charInput.Focused() {
		title = "✎ Edit Mapping"
	}
	s.WriteString(TitleStyle.Render(title))
	s.WriteString("\n\n")
	s.WriteString(m.charInput.View())
	s.WriteString("\n")
	s.WriteString(m.replInput.View())
	s.WriteString("\n")
	s.WriteString(m.viewNotice())
	s.WriteString(HelpStyle.Render("tab: switch field • enter: save • esc: cancel"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewError() string {
	var s strings.Builder

	s.WriteString(ErrorStyle.Render("✗ Error"))
	s.WriteString("\n\n")
	if m.err != nil {
		s.WriteString(m.err.Error())
	}
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("enter: back • q: quit"))

	return BoxStyle.Render(s.String())
}
