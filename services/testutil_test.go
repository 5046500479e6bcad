package services

import (
	"testing"

	"kanban-project/board-service/models"
	"kanban-project/board-service/repositories"
)

type testServices struct {
	projects *ProjectService
	columns  *ColumnService
	tasks    *TaskService
	comments *CommentService
	board    *BoardService
}

func newTestServices() *testServices {
	projectStore := repositories.NewMemoryProjectStore()
	columnStore := repositories.NewMemoryColumnStore()
	taskStore := repositories.NewMemoryTaskStore()
	commentStore := repositories.NewMemoryCommentStore()

	projects := NewProjectService(projectStore)
	tasks := NewTaskService(taskStore, columnStore, commentStore)
	columns := NewColumnService(columnStore, tasks)
	comments := NewCommentService(commentStore, taskStore)
	board := NewBoardService(projects, columns, tasks, comments, nil)

	return &testServices{
		projects: projects,
		columns:  columns,
		tasks:    tasks,
		comments: comments,
		board:    board,
	}
}

func (ts *testServices) mustCreateProject(t *testing.T, name, ownerID string) *models.Project {
	t.Helper()
	project, err := ts.projects.CreateProject(name, "", ownerID)
	if err != nil {
		t.Fatalf("CreateProject %q: %v", name, err)
	}
	return project
}

func (ts *testServices) mustCreateColumn(t *testing.T, projectID, name string, status models.Status, order int) *models.Column {
	t.Helper()
	column, err := ts.columns.CreateColumn(projectID, CreateColumnInput{Name: name, Status: status, Order: order})
	if err != nil {
		t.Fatalf("CreateColumn %q: %v", name, err)
	}
	return column
}

func (ts *testServices) mustCreateTask(t *testing.T, projectID, columnID, title string) *models.Task {
	t.Helper()
	task, err := ts.tasks.CreateTask(projectID, CreateTaskInput{Title: title, ColumnID: columnID})
	if err != nil {
		t.Fatalf("CreateTask %q: %v", title, err)
	}
	return task
}

// assertDense checks that the order values in the column are exactly
// 0..n-1 with no duplicates.
func (ts *testServices) assertDense(t *testing.T, columnID string) {
	t.Helper()
	colTasks, err := ts.tasks.GetTasksForColumn(columnID)
	if err != nil {
		t.Fatalf("GetTasksForColumn %s: %v", columnID, err)
	}
	seen := make(map[int]string, len(colTasks))
	for _, task := range colTasks {
		if task.Order < 0 || task.Order >= len(colTasks) {
			t.Fatalf("column %s: task %s has order %d outside [0,%d)", columnID, task.ID, task.Order, len(colTasks))
		}
		if other, dup := seen[task.Order]; dup {
			t.Fatalf("column %s: tasks %s and %s share order %d", columnID, other, task.ID, task.Order)
		}
		seen[task.Order] = task.ID
	}
}

func (ts *testServices) orderOf(t *testing.T, taskID string) int {
	t.Helper()
	task, err := ts.tasks.GetTask(taskID)
	if err != nil {
		t.Fatalf("GetTask %s: %v", taskID, err)
	}
	return task.Order
}
