package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/podomo/internal/store"
)

type tasksPane int

const (
	paneProjects tasksPane = iota
	paneTasks
)

type tasksView struct {
	store  *store.Store
	width  int
	height int

	pane          tasksPane
	projects      []store.Project
	tasks         []store.Task
	projectCursor int
	taskCursor    int

	formActive bool
	form       *huh.Form
	formKind   string // "project" or "task"

	// Form values as pointers (survive value copies)
	nameVal     *string
	colorVal    *string
	textVal     *string
	priorityVal *string
	estimateVal *string
}

func newTasksView(s *store.Store) tasksView {
	name, color, text, prio, est := "", "", "", "", ""
	return tasksView{
		store:       s,
		nameVal:     &name,
		colorVal:    &color,
		textVal:     &text,
		priorityVal: &prio,
		estimateVal: &est,
	}
}

func (v *tasksView) setSize(w, h int) {
	v.width = w
	v.height = h
}

type tasksDataMsg struct {
	projects []store.Project
	tasks    []store.Task
}

func (v tasksView) refresh() tea.Cmd {
	return func() tea.Msg {
		projects := v.store.Projects()
		var tasks []store.Task
		if len(projects) > 0 {
			cursor := v.projectCursor
			if cursor >= len(projects) {
				cursor = len(projects) - 1
			}
			tasks = v.store.TasksForProject(projects[cursor].ID)
		}
		return tasksDataMsg{projects: projects, tasks: tasks}
	}
}

func (v tasksView) update(msg tea.Msg) (tasksView, tea.Cmd) {
	if v.formActive && v.form != nil {
		return v.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tasksDataMsg:
		v.projects = msg.projects
		v.tasks = msg.tasks
		if v.projectCursor >= len(v.projects) {
			v.projectCursor = max(0, len(v.projects)-1)
		}
		if v.taskCursor >= len(v.tasks) {
			v.taskCursor = max(0, len(v.tasks)-1)
		}
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			v.pane = paneProjects
			return v, nil
		case key.Matches(msg, keys.Right):
			v.pane = paneTasks
			return v, nil
		case key.Matches(msg, keys.Up):
			v.moveCursor(-1)
			if v.pane == paneProjects {
				return v, v.refresh()
			}
			return v, nil
		case key.Matches(msg, keys.Down):
			v.moveCursor(1)
			if v.pane == paneProjects {
				return v, v.refresh()
			}
			return v, nil
		case key.Matches(msg, keys.New):
			return v.showForm()
		case key.Matches(msg, keys.Subtask):
			return v.showSubtaskForm()
		case key.Matches(msg, keys.Delete):
			return v.deleteSelected()
		case key.Matches(msg, keys.Toggle):
			return v.toggleSelected()
		case key.Matches(msg, keys.Enter):
			return v.selectActive()
		}
	}
	return v, nil
}

func (v *tasksView) moveCursor(delta int) {
	if v.pane == paneProjects {
		v.projectCursor = clampCursor(v.projectCursor+delta, len(v.projects))
		v.taskCursor = 0
	} else {
		v.taskCursor = clampCursor(v.taskCursor+delta, len(v.tasks))
	}
}

func clampCursor(c, n int) int {
	if n == 0 {
		return 0
	}
	if c < 0 {
		return 0
	}
	if c >= n {
		return n - 1
	}
	return c
}

func (v tasksView) selectedProject() *store.Project {
	if v.projectCursor < len(v.projects) {
		return &v.projects[v.projectCursor]
	}
	return nil
}

func (v tasksView) selectedTask() *store.Task {
	if v.taskCursor < len(v.tasks) {
		return &v.tasks[v.taskCursor]
	}
	return nil
}

// selectActive makes the highlighted project/task the timer's context.
func (v tasksView) selectActive() (tasksView, tea.Cmd) {
	p := v.selectedProject()
	if p == nil {
		return v, nil
	}
	v.store.SetCurrentProject(p.ID)

	taskID := ""
	if v.pane == paneTasks {
		if t := v.selectedTask(); t != nil {
			taskID = t.ID
		}
	}
	v.store.SetCurrentTask(taskID)

	return v, func() tea.Msg {
		return taskSelectedMsg{projectID: p.ID, projectName: p.Name, taskID: taskID}
	}
}

func (v tasksView) toggleSelected() (tasksView, tea.Cmd) {
	if v.pane != paneTasks {
		return v, nil
	}
	t := v.selectedTask()
	if t == nil {
		return v, nil
	}
	if err := v.store.ToggleTask(t.ID); err != nil {
		return v, errStatus(err)
	}
	return v, v.refresh()
}

func (v tasksView) deleteSelected() (tasksView, tea.Cmd) {
	if v.pane == paneProjects {
		p := v.selectedProject()
		if p == nil {
			return v, nil
		}
		if err := v.store.DeleteProject(p.ID); err != nil {
			return v, errStatus(err)
		}
		// The deleted project may have been the timer's context.
		return v, tea.Batch(v.refresh(), textStatus("Project deleted (tasks removed)"), contextChanged)
	}
	t := v.selectedTask()
	if t == nil {
		return v, nil
	}
	if err := v.store.DeleteTask(t.ID); err != nil {
		return v, errStatus(err)
	}
	return v, tea.Batch(v.refresh(), contextChanged)
}

func (v tasksView) showForm() (tasksView, tea.Cmd) {
	if v.pane == paneProjects {
		*v.nameVal = ""
		*v.colorVal = "#6C63FF"
		v.formKind = "project"
		v.form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Project name").Value(v.nameVal),
				huh.NewInput().Title("Color (hex)").Value(v.colorVal),
			).Title("New Project"),
		).WithShowHelp(true).WithShowErrors(true)
	} else {
		if v.selectedProject() == nil {
			return v, textStatus("Create a project first")
		}
		*v.textVal = ""
		*v.priorityVal = string(store.PriorityMedium)
		*v.estimateVal = "1"
		v.formKind = "task"
		v.form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Task").Value(v.textVal),
				huh.NewSelect[string]().Title("Priority").
					Options(
						huh.NewOption("Low", string(store.PriorityLow)),
						huh.NewOption("Medium", string(store.PriorityMedium)),
						huh.NewOption("High", string(store.PriorityHigh)),
					).Value(v.priorityVal),
				huh.NewInput().Title("Estimated pomodoros").Value(v.estimateVal),
			).Title("New Task"),
		).WithShowHelp(true).WithShowErrors(true)
	}

	v.formActive = true
	return v, v.form.Init()
}

// showSubtaskForm adds a step under the highlighted task.
func (v tasksView) showSubtaskForm() (tasksView, tea.Cmd) {
	t := v.selectedTask()
	if t == nil {
		return v, textStatus("Select a task first")
	}
	*v.textVal = ""
	v.formKind = "subtask"
	v.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Subtask").Value(v.textVal),
		).Title("New Subtask"),
	).WithShowHelp(true).WithShowErrors(true)

	v.formActive = true
	return v, v.form.Init()
}

func (v tasksView) updateForm(msg tea.Msg) (tasksView, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			v.formActive = false
			v.form = nil
			return v, nil
		}
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted {
		v.formActive = false
		return v.submitForm()
	}

	return v, cmd
}

func (v tasksView) submitForm() (tasksView, tea.Cmd) {
	if v.formKind == "project" {
		if _, err := v.store.CreateProject(*v.nameVal, *v.colorVal); err != nil {
			return v, errStatus(err)
		}
		return v, v.refresh()
	}

	if v.formKind == "subtask" {
		t := v.selectedTask()
		if t == nil {
			return v, nil
		}
		if _, err := v.store.AddSubtask(t.ID, *v.textVal); err != nil {
			return v, errStatus(err)
		}
		return v, v.refresh()
	}

	p := v.selectedProject()
	if p == nil {
		return v, nil
	}
	est, err := strconv.Atoi(*v.estimateVal)
	if err != nil {
		est = 1
	}
	if _, err := v.store.CreateTask(p.ID, *v.textVal, store.Priority(*v.priorityVal), est); err != nil {
		return v, errStatus(err)
	}
	return v, v.refresh()
}

func errStatus(err error) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
	}
}

func textStatus(text string) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text}
	}
}

func (v tasksView) view() string {
	w := v.width - 4

	if v.formActive && v.form != nil {
		title := titleStyle.Render("Tasks")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", v.form.View()),
		)
	}

	leftWidth := w / 3
	rightWidth := w - leftWidth - 2

	left := v.renderProjects(leftWidth)
	right := v.renderTasks(rightWidth)

	panes := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	controls := mutedStyle.Render("  n: new  a: subtask  d: delete  x: toggle done  enter: set active  ←/→: pane")

	return lipgloss.JoinVertical(lipgloss.Left, panes, controls)
}

func (v tasksView) renderProjects(w int) string {
	currentID := v.store.CurrentProject()

	var rows []string
	rows = append(rows, titleStyle.Render("Projects"))
	if len(v.projects) == 0 {
		rows = append(rows, mutedStyle.Render("No projects yet"))
	}
	for i, p := range v.projects {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Render("●")
		cursor := "  "
		style := normalItemStyle
		if i == v.projectCursor && v.pane == paneProjects {
			cursor = "> "
			style = selectedItemStyle
		}
		marker := ""
		if p.ID == currentID {
			marker = successStyle.Render(" ◆")
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %s", cursor, dot, p.Name))+marker)
	}

	style := panelStyle
	if v.pane == paneProjects {
		style = activePanelStyle
	}
	return style.Width(w).Render(strings.Join(rows, "\n"))
}

func (v tasksView) renderTasks(w int) string {
	currentTask := v.store.CurrentTask()

	var rows []string
	rows = append(rows, titleStyle.Render("Tasks"))
	if len(v.tasks) == 0 {
		rows = append(rows, mutedStyle.Render("No tasks in this project"))
	}
	for i, t := range v.tasks {
		check := "☐"
		if t.Completed {
			check = successStyle.Render("☑")
		}
		cursor := "  "
		style := normalItemStyle
		if i == v.taskCursor && v.pane == paneTasks {
			cursor = "> "
			style = selectedItemStyle
		}
		marker := ""
		if t.ID == currentTask {
			marker = successStyle.Render(" ◆")
		}
		progress := mutedStyle.Render(fmt.Sprintf(" %d/%d", t.CompletedPomodoros, t.EstimatedPomodoros))
		prio := priorityDot(t.Priority)
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %s %s", cursor, check, prio, t.Text))+progress+marker)

		for _, sub := range t.Subtasks {
			subCheck := "☐"
			if sub.Completed {
				subCheck = "☑"
			}
			rows = append(rows, mutedStyle.Render(fmt.Sprintf("      %s %s", subCheck, sub.Text)))
		}
	}

	style := panelStyle
	if v.pane == paneTasks {
		style = activePanelStyle
	}
	return style.Width(w).Render(strings.Join(rows, "\n"))
}

func priorityDot(p store.Priority) string {
	switch p {
	case store.PriorityHigh:
		return errorStyle.Render("▲")
	case store.PriorityLow:
		return successStyle.Render("▽")
	default:
		return warningStyle.Render("•")
	}
}
