package picker

// Scheduler runs work after the current event has been fully processed and
// the host has laid out the result.
type Scheduler interface {
	Defer(task func())
}

// TaskQueue is a Scheduler that holds tasks until Flush is called
type TaskQueue struct {
	tasks []func()
}

// Defer queues task
func (q *TaskQueue) Defer(task func()) {
	q.tasks = append(q.tasks, task)
}

// Pending returns the number of queued tasks
func (q *TaskQueue) Pending() int {
	return len(q.tasks)
}

// Flush runs the queued tasks in order. Tasks deferred while flushing run on
// the next Flush.
func (q *TaskQueue) Flush() {
	tasks := q.tasks
	q.tasks = nil
	for _, task := range tasks {
		task()
	}
}
