package views

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/tgienger/kanban/internal/board"
	"github.com/tgienger/kanban/internal/models"
	"github.com/tgienger/kanban/internal/store"
	"github.com/tgienger/kanban/internal/ui/keys"
	"github.com/tgienger/kanban/internal/ui/styles"
)

// DateLayout is the format of the due date field
const DateLayout = "2006-01-02 15:04"

// Setting keys remembered between runs
const (
	SettingFilter = "board_filter"
	SettingSort   = "board_sort"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// Settings stores small UI preferences
type Settings interface {
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
}

// BackToLanding signals to go back to the landing page
type BackToLanding struct{}

// form field focus order
const (
	fieldText = iota
	fieldPriority
	fieldDate
	fieldSave
	fieldCount
)

// BoardOptions configures a BoardView
type BoardOptions struct {
	Settings        Settings // may be nil
	Logger          *log.Logger
	DefaultSort     board.Sort
	DefaultPriority models.Priority
	Now             func() time.Time
}

// BoardView shows the three columns and turns keys into store intents
type BoardView struct {
	store    *store.Store
	settings Settings
	log      *log.Logger
	styles   *styles.Styles
	keys     keys.KeyMap
	now      func() time.Time

	width  int
	height int

	// UI state
	column int
	cursor [3]int
	filter board.Filter
	sort   board.Sort

	// Task creation/editing
	editing         bool
	editingNew      bool
	editID          int64
	editStatus      models.Status
	editText        textinput.Model
	editDate        textinput.Model
	editPriority    models.Priority
	editFocusIdx    int
	editErr         string
	defaultPriority models.Priority

	// Grab mode: a task picked up and carried to another slot
	grabbing   bool
	grabID     int64
	grabSource models.Status
	grabColumn int
	grabSlot   int

	// Delete confirmation
	confirmingDelete bool
	deleteTargetID   int64
	deleteTargetName string

	// Global reorder prompt
	choosingSort bool

	// Help popup
	showHelpPopup bool
}

// NewBoardView creates the board over s
func NewBoardView(s *store.Store, opts BoardOptions) *BoardView {
	editText := textinput.New()
	editText.Placeholder = "Task description"
	editText.CharLimit = 200

	editDate := textinput.New()
	editDate.Placeholder = DateLayout
	editDate.CharLimit = len(DateLayout)

	v := &BoardView{
		store:           s,
		settings:        opts.Settings,
		log:             opts.Logger,
		styles:          styles.NewStyles(),
		keys:            keys.DefaultKeyMap(),
		now:             opts.Now,
		filter:          board.FilterAll,
		sort:            opts.DefaultSort,
		editText:        editText,
		editDate:        editDate,
		defaultPriority: opts.DefaultPriority,
	}
	if v.log == nil {
		v.log = log.New(io.Discard)
	}
	if v.now == nil {
		v.now = time.Now
	}
	if !slices.Contains(board.Sorts, v.sort) {
		v.sort = board.SortDateNewest
	}
	if !v.defaultPriority.Valid() {
		v.defaultPriority = models.PriorityMedium
	}
	v.restoreSettings()
	return v
}

func (v *BoardView) restoreSettings() {
	if v.settings == nil {
		return
	}
	if raw, err := v.settings.GetSetting(SettingFilter); err == nil && raw != "" {
		if f, err := board.ParseFilter(raw); err == nil {
			v.filter = f
		}
	}
	if raw, err := v.settings.GetSetting(SettingSort); err == nil && raw != "" {
		if s, err := board.ParseSort(raw); err == nil {
			v.sort = s
		}
	}
}

func (v *BoardView) saveSetting(key, value string) {
	if v.settings == nil {
		return
	}
	if err := v.settings.SetSetting(key, value); err != nil {
		v.log.Warn("saving setting", "key", key, "err", err)
	}
}

// Init initializes the view
func (v *BoardView) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (v *BoardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(v.width)
		inputWidth := clamp(contentWidth-10, 20, 50)
		v.editText.Width = inputWidth
		return v, nil

	case tea.KeyMsg:
		// Handle help popup first - any key closes it
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}

		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}

		if v.editing {
			return v.updateEditing(msg)
		}

		if v.grabbing {
			return v.updateGrabbing(msg)
		}

		if v.choosingSort {
			return v.updateChoosingSort(msg)
		}

		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *BoardView) columns() []board.Column {
	return board.Columns(v.store.Tasks(), v.filter, v.sort)
}

// selected returns the task under the cursor in the focused column
func (v *BoardView) selected() (models.Task, bool) {
	cols := v.columns()
	tasks := cols[v.column].Tasks
	i := v.cursor[v.column]
	if i < 0 || i >= len(tasks) {
		return models.Task{}, false
	}
	return tasks[i], true
}

// clampCursors keeps every cursor inside its column after a change
func (v *BoardView) clampCursors() {
	for i, c := range v.columns() {
		v.cursor[i] = clamp(v.cursor[i], 0, max(len(c.Tasks)-1, 0))
	}
}

// focusTask moves the focus to the column and row that now show id
func (v *BoardView) focusTask(id int64) {
	for ci, c := range v.columns() {
		for ti, t := range c.Tasks {
			if t.ID == id {
				v.column = ci
				v.cursor[ci] = ti
				return
			}
		}
	}
	v.clampCursors()
}

func (v *BoardView) dispatch(in store.Intent) bool {
	changed := v.store.Dispatch(in)
	if changed {
		v.log.Debug("intent applied", "intent", fmt.Sprintf("%T", in))
	}
	v.clampCursors()
	return changed
}

func (v *BoardView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Back):
		return v, func() tea.Msg { return BackToLanding{} }

	case key.Matches(msg, v.keys.Help):
		v.showHelpPopup = true
		return v, nil

	case key.Matches(msg, v.keys.Left):
		v.column = (v.column + len(models.Statuses) - 1) % len(models.Statuses)
		v.clampCursors()
		return v, nil

	case key.Matches(msg, v.keys.Right), key.Matches(msg, v.keys.Tab):
		v.column = (v.column + 1) % len(models.Statuses)
		v.clampCursors()
		return v, nil

	case key.Matches(msg, v.keys.Up):
		if v.cursor[v.column] > 0 {
			v.cursor[v.column]--
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor[v.column] < len(v.columns()[v.column].Tasks)-1 {
			v.cursor[v.column]++
		}
		return v, nil

	case key.Matches(msg, v.keys.New):
		v.startNewTask(models.Statuses[v.column])
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Edit), key.Matches(msg, v.keys.Enter):
		if t, ok := v.selected(); ok {
			v.startEditTask(t)
			return v, textinput.Blink
		}
		return v, nil

	case key.Matches(msg, v.keys.Delete):
		if t, ok := v.selected(); ok {
			v.confirmingDelete = true
			v.deleteTargetID = t.ID
			v.deleteTargetName = t.Text
		}
		return v, nil

	case key.Matches(msg, v.keys.Toggle):
		if t, ok := v.selected(); ok {
			v.dispatch(store.ToggleIntent{ID: t.ID})
		}
		return v, nil

	case key.Matches(msg, v.keys.Grab):
		if t, ok := v.selected(); ok {
			v.grabbing = true
			v.grabID = t.ID
			v.grabSource = t.Status
			v.grabColumn = v.column
			v.grabSlot = v.cursor[v.column]
		}
		return v, nil

	case key.Matches(msg, v.keys.MoveLeft):
		v.sendTo(-1)
		return v, nil

	case key.Matches(msg, v.keys.MoveRight):
		v.sendTo(1)
		return v, nil

	case key.Matches(msg, v.keys.Filter):
		v.filter = v.filter.Next()
		v.clampCursors()
		v.saveSetting(SettingFilter, v.filter.String())
		return v, nil

	case key.Matches(msg, v.keys.Sort):
		v.sort = v.sort.Next()
		v.clampCursors()
		v.saveSetting(SettingSort, string(v.sort))
		return v, nil

	case key.Matches(msg, v.keys.SortAll):
		v.choosingSort = true
		return v, nil
	}

	return v, nil
}

// sendTo moves the selected task to the end of the neighbouring column
func (v *BoardView) sendTo(dir int) {
	t, ok := v.selected()
	if !ok {
		return
	}
	dest := v.column + dir
	if dest < 0 || dest >= len(models.Statuses) {
		return
	}
	destStatus := models.Statuses[dest]
	v.dispatch(store.MoveIntent{
		ID:          t.ID,
		Source:      t.Status,
		Destination: destStatus,
		Index:       len(v.store.Column(destStatus)),
	})
	v.focusTask(t.ID)
}

// grabTargets returns the displayed tasks of the grab destination column
// without the carried task
func (v *BoardView) grabTargets() []models.Task {
	tasks := v.columns()[v.grabColumn].Tasks
	return slices.DeleteFunc(slices.Clone(tasks), func(t models.Task) bool { return t.ID == v.grabID })
}

func (v *BoardView) updateGrabbing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.grabbing = false
		return v, nil

	case key.Matches(msg, v.keys.Left):
		if v.grabColumn > 0 {
			v.grabColumn--
			v.grabSlot = min(v.grabSlot, len(v.grabTargets()))
		}
		return v, nil

	case key.Matches(msg, v.keys.Right):
		if v.grabColumn < len(models.Statuses)-1 {
			v.grabColumn++
			v.grabSlot = min(v.grabSlot, len(v.grabTargets()))
		}
		return v, nil

	case key.Matches(msg, v.keys.Up):
		if v.grabSlot > 0 {
			v.grabSlot--
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.grabSlot < len(v.grabTargets()) {
			v.grabSlot++
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter), key.Matches(msg, v.keys.Grab):
		v.drop()
		return v, nil

	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit
	}
	return v, nil
}

// drop turns the grab slot into a Move intent. The slot counts displayed
// tasks, which may be sorted, so it is translated into the store's order for
// the destination column by anchoring on the task shown at that slot.
func (v *BoardView) drop() {
	v.grabbing = false
	dest := models.Statuses[v.grabColumn]

	storeColumn := slices.DeleteFunc(v.store.Column(dest), func(t models.Task) bool { return t.ID == v.grabID })
	index := len(storeColumn)

	targets := v.grabTargets()
	if v.grabSlot < len(targets) {
		anchor := targets[v.grabSlot].ID
		if i := slices.IndexFunc(storeColumn, func(t models.Task) bool { return t.ID == anchor }); i >= 0 {
			index = i
		}
	}

	v.dispatch(store.MoveIntent{
		ID:          v.grabID,
		Source:      v.grabSource,
		Destination: dest,
		Index:       index,
	})
	v.focusTask(v.grabID)
}

func (v *BoardView) updateChoosingSort(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var criteria models.SortCriteria
	switch msg.String() {
	case "s":
		criteria = models.SortByStatus
	case "d":
		criteria = models.SortByDate
	case "p":
		criteria = models.SortByPriority
	case "esc":
		v.choosingSort = false
		return v, nil
	default:
		return v, nil
	}
	v.choosingSort = false
	v.dispatch(store.SortIntent{Criteria: criteria})
	return v, nil
}

func (v *BoardView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.dispatch(store.DeleteIntent{ID: v.deleteTargetID})
		v.confirmingDelete = false
		return v, nil
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *BoardView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.editing = false
		return v, nil

	case key.Matches(msg, v.keys.Save):
		v.saveTask()
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.editFocusIdx = (v.editFocusIdx + 1) % fieldCount
		v.updateEditFocus()
		return v, nil

	case key.Matches(msg, v.keys.ShiftTab):
		v.editFocusIdx = (v.editFocusIdx + fieldCount - 1) % fieldCount
		v.updateEditFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if v.editFocusIdx == fieldSave {
			v.saveTask()
			return v, nil
		}
		v.editFocusIdx++
		v.updateEditFocus()
		return v, nil
	}

	if v.editFocusIdx == fieldPriority {
		switch msg.String() {
		case "left", "h":
			v.editPriority = cyclePriority(v.editPriority, -1)
		case "right", "l", " ":
			v.editPriority = cyclePriority(v.editPriority, 1)
		}
		return v, nil
	}

	var cmd tea.Cmd
	switch v.editFocusIdx {
	case fieldText:
		v.editText, cmd = v.editText.Update(msg)
	case fieldDate:
		v.editDate, cmd = v.editDate.Update(msg)
	}
	return v, cmd
}

func cyclePriority(p models.Priority, dir int) models.Priority {
	n := len(models.Priorities)
	i := max(p.Rank(), 0)
	return models.Priorities[(i+dir+n)%n]
}

func (v *BoardView) startNewTask(status models.Status) {
	v.editing = true
	v.editingNew = true
	v.editID = 0
	v.editStatus = status
	v.editErr = ""
	v.editFocusIdx = fieldText
	v.editText.Reset()
	v.editDate.SetValue(v.now().Format(DateLayout))
	v.editPriority = v.defaultPriority
	v.updateEditFocus()
}

func (v *BoardView) startEditTask(task models.Task) {
	v.editing = true
	v.editingNew = false
	v.editID = task.ID
	v.editStatus = task.Status
	v.editErr = ""
	v.editFocusIdx = fieldText
	v.editText.SetValue(task.Text)
	v.editDate.SetValue(task.Date.In(time.Local).Format(DateLayout))
	v.editPriority = task.Priority
	v.updateEditFocus()
}

func (v *BoardView) updateEditFocus() {
	v.editText.Blur()
	v.editDate.Blur()

	switch v.editFocusIdx {
	case fieldText:
		v.editText.Focus()
	case fieldDate:
		v.editDate.Focus()
	}
}

// saveTask validates the form and dispatches an add or edit intent. Blank
// text is refused here so the store never sees it.
func (v *BoardView) saveTask() {
	text := strings.TrimSpace(v.editText.Value())
	if text == "" {
		v.editErr = "Task description is required"
		v.editFocusIdx = fieldText
		v.updateEditFocus()
		return
	}

	var date time.Time
	if raw := strings.TrimSpace(v.editDate.Value()); raw != "" {
		parsed, err := time.ParseInLocation(DateLayout, raw, time.Local)
		if err != nil {
			v.editErr = "Due date must look like " + DateLayout
			v.editFocusIdx = fieldDate
			v.updateEditFocus()
			return
		}
		date = parsed
	}

	if v.editingNew {
		if date.IsZero() {
			date = v.now()
		}
		v.dispatch(store.AddIntent{Text: text, Status: v.editStatus, Priority: v.editPriority, Date: date})
		tasks := v.store.Tasks()
		if len(tasks) > 0 {
			v.focusTask(tasks[len(tasks)-1].ID)
		}
	} else {
		v.dispatch(store.EditIntent{ID: v.editID, Text: text, Priority: v.editPriority, Date: date})
		v.focusTask(v.editID)
	}
	v.editing = false
	v.editErr = ""
}

// View renders the view
func (v *BoardView) View() string {
	if v.showHelpPopup {
		return v.renderHelpPopup()
	}

	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}

	if v.editing {
		return v.renderEditForm()
	}

	var b strings.Builder

	b.WriteString(v.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(v.renderColumns())
	b.WriteString("\n")
	if v.choosingSort {
		b.WriteString(v.renderSortPrompt())
	} else {
		b.WriteString(v.renderHelp())
	}

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *BoardView) renderHeader() string {
	s := v.styles

	title := s.Title.Render("Task Board")
	if v.grabbing {
		title += s.TitleMuted.Render("  moving task · ←→ column · ↑↓ position · ↵ drop · esc cancel")
	}

	filterBtn := s.Button.Render("Filter: " + v.filter.Label())
	sortBtn := s.Button.Render("Sort: " + v.sort.Label())
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		lipgloss.JoinHorizontal(lipgloss.Center, filterBtn, "  ", sortBtn),
	)
}

func (v *BoardView) columnWidth() int {
	contentWidth := styles.ContentWidth(v.width)
	if contentWidth == 0 {
		contentWidth = styles.MaxWidth
	}
	return max((contentWidth-2)/len(models.Statuses)-2, 16)
}

// visibleRows is how many task rows fit in a column
func (v *BoardView) visibleRows() int {
	if v.height == 0 {
		return 20
	}
	// Each task is 2 lines; header, buttons, column header and help take ~14
	return max((v.height-14)/2, 1)
}

func (v *BoardView) renderColumns() string {
	cols := v.columns()
	rendered := make([]string, len(cols))
	for i, c := range cols {
		rendered[i] = v.renderColumn(i, c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (v *BoardView) renderColumn(idx int, c board.Column) string {
	s := v.styles
	width := v.columnWidth()
	inner := width - 2

	header := s.ColumnHeader.
		Background(styles.StatusColor(c.Status)).
		Render(fmt.Sprintf("%s (%d)", c.Status.Label(), len(c.Tasks)))

	var items []string
	if v.grabbing && idx == v.grabColumn {
		items = v.renderGrabColumn(inner)
	} else {
		for i, t := range c.Tasks {
			selected := !v.grabbing && idx == v.column && i == v.cursor[idx]
			carried := v.grabbing && t.ID == v.grabID
			items = append(items, v.renderTaskItem(t, inner, selected, carried))
		}
	}
	if len(items) == 0 {
		items = append(items, s.TitleMuted.Render("No tasks. Press 'n' to add one."))
	}

	// Scroll so the cursor (or grab slot) stays visible
	rows := v.visibleRows()
	focus := v.cursor[idx]
	if v.grabbing && idx == v.grabColumn {
		focus = v.grabSlot
	}
	start := 0
	if focus >= rows {
		start = focus - rows + 1
	}
	end := min(start+rows, len(items))
	start = min(start, end)

	body := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{header, ""}, items[start:end]...)...,
	)

	colStyle := s.Column
	if (!v.grabbing && idx == v.column) || (v.grabbing && idx == v.grabColumn) {
		colStyle = s.ColumnFocused
	}
	return colStyle.Width(width).Render(body)
}

// renderGrabColumn shows the destination column with a placeholder at the
// drop slot
func (v *BoardView) renderGrabColumn(width int) []string {
	carried, _ := v.store.Get(v.grabID)
	ghost := v.styles.TaskGhost.Width(width).Render("▸ " + carried.Text)

	var items []string
	targets := v.grabTargets()
	for i, t := range targets {
		if i == v.grabSlot {
			items = append(items, ghost)
		}
		items = append(items, v.renderTaskItem(t, width, false, false))
	}
	if v.grabSlot >= len(targets) {
		items = append(items, ghost)
	}
	return items
}

func (v *BoardView) renderTaskItem(task models.Task, width int, selected, carried bool) string {
	s := v.styles

	check := "○ "
	if task.Completed {
		check = "✓ "
	}

	var textStyle lipgloss.Style
	switch {
	case selected:
		textStyle = s.TaskSelected
	case carried, task.Completed:
		textStyle = s.TaskDone
	default:
		textStyle = s.TaskItem
	}

	badge := s.TaskPriority.Foreground(styles.PriorityColor(task.Priority)).Render(string(task.Priority))
	meta := lipgloss.JoinHorizontal(lipgloss.Left,
		"  ", badge, s.TaskDate.Render(" · "+v.formatDate(task.Date)),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		textStyle.Width(width).Render(check+task.Text),
		meta,
	)
}

// formatDate renders "Today at 15:04" or "Jan 2 15:04"
func (v *BoardView) formatDate(t time.Time) string {
	local := t.In(time.Local)
	now := v.now().In(time.Local)
	if local.Year() == now.Year() && local.YearDay() == now.YearDay() {
		return "Today at " + local.Format("15:04")
	}
	return local.Format("Jan 2 15:04")
}

func (v *BoardView) renderEditForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	formTitle := "New Task · " + v.editStatus.Label()
	if !v.editingNew {
		formTitle = "Edit Task"
	}

	textStyle := s.Input
	priorityStyle := s.Input
	dateStyle := s.Input
	btnStyle := s.Button

	switch v.editFocusIdx {
	case fieldText:
		textStyle = s.InputFocused
	case fieldPriority:
		priorityStyle = s.InputFocused
	case fieldDate:
		dateStyle = s.InputFocused
	case fieldSave:
		btnStyle = s.ButtonFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 50)

	var priorities []string
	for _, p := range models.Priorities {
		label := string(p)
		if p == v.editPriority {
			label = s.TaskPriority.Foreground(styles.PriorityColor(p)).Render("[" + label + "]")
		} else {
			label = s.TitleMuted.Render(" " + label + " ")
		}
		priorities = append(priorities, label)
	}

	dateHint := "Due date (" + DateLayout + "):"
	if !v.editingNew {
		dateHint = "Due date (" + DateLayout + ", empty keeps current):"
	}

	errLine := ""
	if v.editErr != "" {
		errLine = s.InputError.Render(v.editErr)
	}

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(formTitle),
		"",
		"Task:",
		textStyle.Width(inputWidth).Render(v.editText.View()),
		"",
		"Priority:",
		priorityStyle.Width(inputWidth).Render(strings.Join(priorities, " ")),
		"",
		dateHint,
		dateStyle.Width(inputWidth).Render(v.editDate.View()),
		"",
		btnStyle.Render(" Save "),
		errLine,
		"",
		s.TitleMuted.Render("Tab: next • ←→: priority • Ctrl+S: save • Esc: cancel"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *BoardView) renderSortPrompt() string {
	s := v.styles
	return s.Help.Render(
		fmt.Sprintf("Reorder every task by: %s status • %s date • %s priority • %s cancel",
			s.HelpKey.Render("s"),
			s.HelpKey.Render("d"),
			s.HelpKey.Render("p"),
			s.HelpKey.Render("esc"),
		),
	)
}

func (v *BoardView) renderHelp() string {
	contentWidth := styles.ContentWidth(v.width)
	// At narrow widths, show hint to press ? for help
	if contentWidth > 0 && contentWidth < 80 {
		return v.styles.Help.Render(v.styles.HelpKey.Render("?") + " help")
	}

	return v.styles.Help.Render(
		fmt.Sprintf("%s new • %s edit • %s del • %s done • %s move • %s send • %s filter • %s sort • %s reorder • %s back • %s quit",
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("e"),
			v.styles.HelpKey.Render("d"),
			v.styles.HelpKey.Render("x"),
			v.styles.HelpKey.Render("m"),
			v.styles.HelpKey.Render("H/L"),
			v.styles.HelpKey.Render("f"),
			v.styles.HelpKey.Render("s"),
			v.styles.HelpKey.Render("o"),
			v.styles.HelpKey.Render("esc"),
			v.styles.HelpKey.Render("q"),
		),
	)
}

func (v *BoardView) renderHelpPopup() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	helpItems := []string{
		s.HelpKey.Render("←→ h l") + "  switch column",
		s.HelpKey.Render("↑↓ j k") + "  select task",
		s.HelpKey.Render("n") + "       new task in column",
		s.HelpKey.Render("e ↵") + "     edit task",
		s.HelpKey.Render("d") + "       delete task",
		s.HelpKey.Render("x") + "       toggle done",
		s.HelpKey.Render("m") + "       pick up and move",
		s.HelpKey.Render("H L") + "     send to next column",
		s.HelpKey.Render("f") + "       filter: " + v.filter.Next().Label(),
		s.HelpKey.Render("s") + "       sort: " + v.sort.Next().Label(),
		s.HelpKey.Render("o") + "       reorder all tasks",
		s.HelpKey.Render("esc") + "     back",
		s.HelpKey.Render("q") + "       quit",
		"",
		s.TitleMuted.Render("Press any key to close"),
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{s.Title.Render("Keyboard Shortcuts"), ""}, helpItems...)...,
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.Popup.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *BoardView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Task?"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("%q will be removed permanently.", v.deleteTargetName)),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}
