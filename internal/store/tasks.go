package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

func (s *Store) Tasks() []Task {
	var tasks []Task
	s.loadSlice(KeyTodos, &tasks)
	return tasks
}

func (s *Store) SaveTasks(tasks []Task) error {
	return s.saveSlice(KeyTodos, tasks)
}

func (s *Store) TasksForProject(projectID string) []Task {
	var out []Task
	for _, t := range s.Tasks() {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) CreateTask(projectID, text string, priority Priority, estimated int) (*Task, error) {
	if text == "" {
		return nil, fmt.Errorf("create task: empty text")
	}
	if !priority.Valid() {
		priority = PriorityMedium
	}
	if estimated < 1 {
		estimated = 1
	}
	t := Task{
		ID:                 uuid.NewString(),
		ProjectID:          projectID,
		Text:               text,
		Priority:           priority,
		EstimatedPomodoros: estimated,
		CreatedAt:          time.Now(),
	}
	tasks := append(s.Tasks(), t)
	if err := s.SaveTasks(tasks); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) GetTask(id string) (*Task, bool) {
	for _, t := range s.Tasks() {
		if t.ID == id {
			return &t, true
		}
	}
	return nil, false
}

func (s *Store) ToggleTask(id string) error {
	tasks := s.Tasks()
	for i := range tasks {
		if tasks[i].ID == id {
			tasks[i].Completed = !tasks[i].Completed
			return s.SaveTasks(tasks)
		}
	}
	return fmt.Errorf("toggle task %s: not found", id)
}

func (s *Store) DeleteTask(id string) error {
	tasks := s.Tasks()
	kept := tasks[:0]
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if err := s.SaveTasks(kept); err != nil {
		return err
	}
	if s.CurrentTask() == id {
		return s.SetCurrentTask("")
	}
	return nil
}

// IncrementTaskPomodoros bumps completedPomodoros for the task, if it
// still exists. Deleted or unselected tasks are a silent no-op so a
// stale reference can never fail the completion pipeline. The counter
// is allowed to exceed estimatedPomodoros.
func (s *Store) IncrementTaskPomodoros(id string) bool {
	if id == "" {
		return false
	}
	tasks := s.Tasks()
	for i := range tasks {
		if tasks[i].ID == id {
			tasks[i].CompletedPomodoros++
			if err := s.SaveTasks(tasks); err != nil {
				return false
			}
			return true
		}
	}
	return false
}

func (s *Store) AddSubtask(taskID, text string) (*Subtask, error) {
	if text == "" {
		return nil, fmt.Errorf("add subtask: empty text")
	}
	tasks := s.Tasks()
	for i := range tasks {
		if tasks[i].ID == taskID {
			sub := Subtask{ID: uuid.NewString(), Text: text}
			tasks[i].Subtasks = append(tasks[i].Subtasks, sub)
			if err := s.SaveTasks(tasks); err != nil {
				return nil, err
			}
			return &sub, nil
		}
	}
	return nil, fmt.Errorf("add subtask: task %s not found", taskID)
}

func (s *Store) ToggleSubtask(taskID, subtaskID string) error {
	tasks := s.Tasks()
	for i := range tasks {
		if tasks[i].ID != taskID {
			continue
		}
		for j := range tasks[i].Subtasks {
			if tasks[i].Subtasks[j].ID == subtaskID {
				tasks[i].Subtasks[j].Completed = !tasks[i].Subtasks[j].Completed
				return s.SaveTasks(tasks)
			}
		}
	}
	return fmt.Errorf("toggle subtask %s: not found", subtaskID)
}

func (s *Store) AddQuickNote(text string) (*QuickNote, error) {
	if text == "" {
		return nil, fmt.Errorf("add note: empty text")
	}
	n := QuickNote{ID: uuid.NewString(), Text: text, CreatedAt: time.Now()}
	notes := append(s.QuickNotes(), n)
	if err := s.SaveQuickNotes(notes); err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *Store) DeleteQuickNote(id string) error {
	notes := s.QuickNotes()
	kept := notes[:0]
	for _, n := range notes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	return s.SaveQuickNotes(kept)
}
