package services

import (
	"math/rand"
	"testing"

	"kanban-project/board-service/models"
)

func TestCreateTask_AppendsToEndOfColumn(t *testing.T) {
	ts := newTestServices()
	project := ts.mustCreateProject(t, "Alpha", "u1")
	backlog := ts.mustCreateColumn(t, project.ID, "Backlog", models.StatusBacklog, 0)

	t1 := ts.mustCreateTask(t, project.ID, backlog.ID, "T1")
	t2 := ts.mustCreateTask(t, project.ID, backlog.ID, "T2")

	if t1.Order != 0 {
		t.Errorf("first task order = %d, want 0", t1.Order)
	}
	if t2.Order != 1 {
		t.Errorf("second task order = %d, want 1", t2.Order)
	}
	if t1.Status != models.StatusBacklog {
		t.Errorf("task status = %s, want %s", t1.Status, models.StatusBacklog)
	}
	ts.assertDense(t, backlog.ID)
}

func TestCreateTask_InvalidColumn(t *testing.T) {
	ts := newTestServices()
	project := ts.mustCreateProject(t, "Alpha", "u1")
	other := ts.mustCreateProject(t, "Beta", "u1")
	otherColumn := ts.mustCreateColumn(t, other.ID, "Todo", models.StatusTodo, 0)

	// Missing column.
	_, err := ts.tasks.CreateTask(project.ID, CreateTaskInput{Title: "T1", ColumnID: "no-such-column"})
	if !models.IsValidation(err) {
		t.Errorf("CreateTask with missing column: got %v, want ValidationError", err)
	}

	// Column from another project.
	_, err = ts.tasks.CreateTask(project.ID, CreateTaskInput{Title: "T1", ColumnID: otherColumn.ID})
	if !models.IsValidation(err) {
		t.Errorf("CreateTask with foreign column: got %v, want ValidationError", err)
	}
}

func TestCreateTask_Validation(t *testing.T) {
	ts := newTestServices()
	project := ts.mustCreateProject(t, "Alpha", "u1")
	column := ts.mustCreateColumn(t, project.ID, "Backlog", models.StatusBacklog, 0)

	longTitle := make([]byte, 201)
	for i := range longTitle {
		longTitle[i] = 'x'
	}

	cases := []struct {
		name  string
		input CreateTaskInput
	}{
		{"empty title", CreateTaskInput{Title: "   ", ColumnID: column.ID}},
		{"title too long", CreateTaskInput{Title: string(longTitle), ColumnID: column.ID}},
		{"bad priority", CreateTaskInput{Title: "T1", ColumnID: column.ID, Priority: "critical"}},
	}
	for _, tc := range cases {
		if _, err := ts.tasks.CreateTask(project.ID, tc.input); !models.IsValidation(err) {
			t.Errorf("%s: got %v, want ValidationError", tc.name, err)
		}
	}
}

func TestCreateTask_DefaultsPriorityToMedium(t *testing.T) {
	ts := newTestServices()
	project := ts.mustCreateProject(t, "Alpha", "u1")
	column := ts.mustCreateColumn(t, project.ID, "Backlog", models.StatusBacklog, 0)

	task := ts.mustCreateTask(t, project.ID, column.ID, "T1")
	if task.Priority != models.PriorityMedium {
		t.Errorf("priority = %s, want %s", task.Priority, models.PriorityMedium)
	}
}

func TestMoveTask_AcrossColumns(t *testing.T) {
	ts := newTestServices()
	project := ts.mustCreateProject(t, "Alpha", "u1")
	backlog := ts.mustCreateColumn(t, project.ID, "Backlog", models.StatusBacklog, 0)
	todo := ts.mustCreateColumn(t, project.ID, "Todo", models.StatusTodo, 1)

	t1 := ts.mustCreateTask(t, project.ID, backlog.ID, "T1")
	t2 := ts.mustCreateTask(t, project.ID, backlog.ID, "T2")

	// Move T2 to the head of the empty Todo column.
	moved, err := ts.tasks.MoveTask(t2.ID, todo.ID, 0)
	if err != nil {
		t.Fatalf("MoveTask T2: %v", err)
	}
	if moved.ColumnID != todo.ID || moved.Order != 0 {
		t.Errorf("T2 = column %s order %d, want column %s order 0", moved.ColumnID, moved.Order, todo.ID)
	}
	if moved.Status != models.StatusTodo {
		t.Errorf("T2 status = %s, want %s after move", moved.Status, models.StatusTodo)
	}
	if got := ts.orderOf(t, t1.ID); got != 0 {
		t.Errorf("T1 order = %d, want 0 after gap closes", got)
	}

	// Move T1 in front of T2.
	if _, err := ts.tasks.MoveTask(t1.ID, todo.ID, 0); err != nil {
		t.Fatalf("MoveTask T1: %v", err)
	}
	if got := ts.orderOf(t, t1.ID); got != 0 {
		t.Errorf("T1 order = %d, want 0", got)
	}
	if got := ts.orderOf(t, t2.ID); got != 1 {
		t.Errorf("T2 order = %d, want 1 after slot opens", got)
	}

	ts.assertDense(t, backlog.ID)
	ts.assertDense(t, todo.ID)

	backlogTasks, _ := ts.tasks.GetTasksForColumn(backlog.ID)
	if len(backlogTasks) != 0 {
		t.Errorf("backlog has %d tasks, want 0", len(backlogTasks))
	}
}

func TestMoveTask_WithinColumn(t *testing.T) {
	ts := newTestServices()
	project := ts.mustCreateProject(t, "Alpha", "u1")
	column := ts.mustCreateColumn(t, project.ID, "Backlog", models.StatusBacklog, 0)

	var ids []string
	for _, title := range []string{"A", "B", "C", "D"} {
		ids = append(ids, ts.mustCreateTask(t, project.ID, column.ID, title).ID)
	}

	// Move A (order 0) down to order 2: B and C shift up.
	if _, err := ts.tasks.MoveTask(ids[0], column.ID, 2); err != nil {
		t.Fatalf("MoveTask down: %v", err)
	}
	wantDown := map[string]int{ids[0]: 2, ids[1]: 0, ids[2]: 1, ids[3]: 3}
	for id, want := range wantDown {
		if got := ts.orderOf(t, id); got != want {
			t.Errorf("after move down: task %s order = %d, want %d", id, got, want)
		}
	}
	ts.assertDense(t, column.ID)

	// Move D (order 3) up to order 0: everyone else shifts down.
	if _, err := ts.tasks.MoveTask(ids[3], column.ID, 0); err != nil {
		t.Fatalf("MoveTask up: %v", err)
	}
	wantUp := map[string]int{ids[3]: 0, ids[1]: 1, ids[2]: 2, ids[0]: 3}
	for id, want := range wantUp {
		if got := ts.orderOf(t, id); got != want {
			t.Errorf("after move up: task %s order = %d, want %d", id, got, want)
		}
	}
	ts.assertDense(t, column.ID)
}

func TestMoveTask_SamePositionIsNoOp(t *testing.T) {
	ts := newTestServices()
	project := ts.mustCreateProject(t, "Alpha", "u1")
	column := ts.mustCreateColumn(t, project.ID, "Backlog", models.StatusBacklog, 0)

	a := ts.mustCreateTask(t, project.ID, column.ID, "A")
	b := ts.mustCreateTask(t, project.ID, column.ID, "B")
	c := ts.mustCreateTask(t, project.ID, column.ID, "C")

	if _, err := ts.tasks.MoveTask(b.ID, column.ID, 1); err != nil {
		t.Fatalf("MoveTask onto own position: %v", err)
	}

	for id, want := range map[string]int{a.ID: 0, b.ID: 1, c.ID: 2} {
		if got := ts.orderOf(t, id); got != want {
			t.Errorf("task %s order = %d, want %d (no-op move must not shift anything)", id, got, want)
		}
	}
}

func TestMoveTask_ClampsTargetOrder(t *testing.T) {
	ts := newTestServices()
	project := ts.mustCreateProject(t, "Alpha", "u1")
	backlog := ts.mustCreateColumn(t, project.ID, "Backlog", models.StatusBacklog, 0)
	todo := ts.mustCreateColumn(t, project.ID, "Todo", models.StatusTodo, 1)

	a := ts.mustCreateTask(t, project.ID, backlog.ID, "A")
	ts.mustCreateTask(t, project.ID, todo.ID, "B")

	// Order 99 lands at the end of the target column, not beyond it.
	moved, err := ts.tasks.MoveTask(a.ID, todo.ID, 99)
	if err != nil {
		t.Fatalf("MoveTask: %v", err)
	}
	if moved.Order != 1 {
		t.Errorf("clamped order = %d, want 1", moved.Order)
	}
	ts.assertDense(t, todo.ID)
}

func TestMoveTask_Errors(t *testing.T) {
	ts := newTestServices()
	project := ts.mustCreateProject(t, "Alpha", "u1")
	other := ts.mustCreateProject(t, "Beta", "u1")
	backlog := ts.mustCreateColumn(t, project.ID, "Backlog", models.StatusBacklog, 0)
	foreign := ts.mustCreateColumn(t, other.ID, "Todo", models.StatusTodo, 0)
	task := ts.mustCreateTask(t, project.ID, backlog.ID, "T1")

	if _, err := ts.tasks.MoveTask("no-such-task", backlog.ID, 0); !models.IsNotFound(err) {
		t.Errorf("move of missing task: got %v, want NotFoundError", err)
	}
	if _, err := ts.tasks.MoveTask(task.ID, "no-such-column", 0); !models.IsNotFound(err) {
		t.Errorf("move to missing column: got %v, want NotFoundError", err)
	}
	if _, err := ts.tasks.MoveTask(task.ID, foreign.ID, 0); !models.IsValidation(err) {
		t.Errorf("move to foreign project column: got %v, want ValidationError", err)
	}
	if _, err := ts.tasks.MoveTask(task.ID, backlog.ID, -1); !models.IsValidation(err) {
		t.Errorf("move to negative order: got %v, want ValidationError", err)
	}
}

func TestDeleteTask_ClosesGapAndCascadesComments(t *testing.T) {
	ts := newTestServices()
	project := ts.mustCreateProject(t, "Alpha", "u1")
	column := ts.mustCreateColumn(t, project.ID, "Todo", models.StatusTodo, 0)

	t1 := ts.mustCreateTask(t, project.ID, column.ID, "T1")
	t2 := ts.mustCreateTask(t, project.ID, column.ID, "T2")

	if _, err := ts.comments.AddComment(t1.ID, "u1", "first"); err != nil {
		t.Fatalf("AddComment: %v", err)
	}

	if err := ts.tasks.DeleteTask(t1.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}

	if got := ts.orderOf(t, t2.ID); got != 0 {
		t.Errorf("T2 order = %d, want 0 after T1 deleted", got)
	}
	ts.assertDense(t, column.ID)

	comments, err := ts.comments.GetCommentsForTask(t1.ID)
	if err != nil {
		t.Fatalf("GetCommentsForTask: %v", err)
	}
	if len(comments) != 0 {
		t.Errorf("deleted task still has %d comments", len(comments))
	}
}

func TestUpdateTask_RejectsColumnChange(t *testing.T) {
	ts := newTestServices()
	project := ts.mustCreateProject(t, "Alpha", "u1")
	backlog := ts.mustCreateColumn(t, project.ID, "Backlog", models.StatusBacklog, 0)
	todo := ts.mustCreateColumn(t, project.ID, "Todo", models.StatusTodo, 1)
	task := ts.mustCreateTask(t, project.ID, backlog.ID, "T1")

	_, err := ts.tasks.UpdateTask(task.ID, UpdateTaskInput{ColumnID: &todo.ID})
	if !models.IsValidation(err) {
		t.Fatalf("update with column change: got %v, want ValidationError", err)
	}

	// Passing the current column id is harmless.
	if _, err := ts.tasks.UpdateTask(task.ID, UpdateTaskInput{ColumnID: &backlog.ID}); err != nil {
		t.Errorf("update with unchanged column id: %v", err)
	}
}

func TestUpdateTask_Fields(t *testing.T) {
	ts := newTestServices()
	project := ts.mustCreateProject(t, "Alpha", "u1")
	column := ts.mustCreateColumn(t, project.ID, "Backlog", models.StatusBacklog, 0)
	task := ts.mustCreateTask(t, project.ID, column.ID, "T1")

	title := "Renamed"
	priority := models.PriorityUrgent
	assignee := "u2"
	updated, err := ts.tasks.UpdateTask(task.ID, UpdateTaskInput{
		Title:      &title,
		Priority:   &priority,
		AssigneeID: &assignee,
	})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if updated.Title != "Renamed" || updated.Priority != models.PriorityUrgent || updated.AssigneeID != "u2" {
		t.Errorf("updated task = %+v", updated)
	}
	if updated.Order != task.Order {
		t.Errorf("update changed order from %d to %d", task.Order, updated.Order)
	}

	if _, err := ts.tasks.UpdateTask("no-such-task", UpdateTaskInput{Title: &title}); !models.IsNotFound(err) {
		t.Errorf("update of missing task: got %v, want NotFoundError", err)
	}
}

func TestAssignTask(t *testing.T) {
	ts := newTestServices()
	project := ts.mustCreateProject(t, "Alpha", "u1")
	column := ts.mustCreateColumn(t, project.ID, "Backlog", models.StatusBacklog, 0)
	task := ts.mustCreateTask(t, project.ID, column.ID, "T1")

	assigned, err := ts.tasks.AssignTask(task.ID, "u2")
	if err != nil {
		t.Fatalf("AssignTask: %v", err)
	}
	if assigned.AssigneeID != "u2" {
		t.Errorf("assignee = %q, want u2", assigned.AssigneeID)
	}

	cleared, err := ts.tasks.AssignTask(task.ID, "")
	if err != nil {
		t.Fatalf("AssignTask clear: %v", err)
	}
	if cleared.AssigneeID != "" {
		t.Errorf("assignee = %q, want cleared", cleared.AssigneeID)
	}
}

// Density must survive an arbitrary sequence of moves, not just the
// hand-picked ones above.
func TestMoveTask_DensityAfterRandomMoves(t *testing.T) {
	ts := newTestServices()
	project := ts.mustCreateProject(t, "Alpha", "u1")

	columns := []*models.Column{
		ts.mustCreateColumn(t, project.ID, "Backlog", models.StatusBacklog, 0),
		ts.mustCreateColumn(t, project.ID, "Doing", models.StatusInProgress, 1),
		ts.mustCreateColumn(t, project.ID, "Done", models.StatusDone, 2),
	}

	var taskIDs []string
	for i := 0; i < 9; i++ {
		task := ts.mustCreateTask(t, project.ID, columns[i%3].ID, "task")
		taskIDs = append(taskIDs, task.ID)
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		id := taskIDs[rng.Intn(len(taskIDs))]
		target := columns[rng.Intn(len(columns))]
		if _, err := ts.tasks.MoveTask(id, target.ID, rng.Intn(10)); err != nil {
			t.Fatalf("random move %d: %v", i, err)
		}
		for _, column := range columns {
			ts.assertDense(t, column.ID)
		}
	}

	// Status must mirror the current column throughout.
	for _, id := range taskIDs {
		task, err := ts.tasks.GetTask(id)
		if err != nil {
			t.Fatalf("GetTask: %v", err)
		}
		for _, column := range columns {
			if task.ColumnID == column.ID && task.Status != column.Status {
				t.Errorf("task %s status = %s, column status = %s", id, task.Status, column.Status)
			}
		}
	}
}

func TestGetTasksForColumn_SortedByOrder(t *testing.T) {
	ts := newTestServices()
	project := ts.mustCreateProject(t, "Alpha", "u1")
	column := ts.mustCreateColumn(t, project.ID, "Backlog", models.StatusBacklog, 0)

	a := ts.mustCreateTask(t, project.ID, column.ID, "A")
	b := ts.mustCreateTask(t, project.ID, column.ID, "B")
	c := ts.mustCreateTask(t, project.ID, column.ID, "C")

	if _, err := ts.tasks.MoveTask(c.ID, column.ID, 0); err != nil {
		t.Fatalf("MoveTask: %v", err)
	}

	colTasks, err := ts.tasks.GetTasksForColumn(column.ID)
	if err != nil {
		t.Fatalf("GetTasksForColumn: %v", err)
	}
	wantOrder := []string{c.ID, a.ID, b.ID}
	for i, task := range colTasks {
		if task.ID != wantOrder[i] {
			t.Errorf("position %d = task %s, want %s", i, task.ID, wantOrder[i])
		}
	}
}
