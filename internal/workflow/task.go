package workflow

import "sync"

// Task is the completion handle of one asynchronous flow
type Task struct {
	done chan struct{}
	once sync.Once
}

func newTask() *Task {
	return &Task{done: make(chan struct{})}
}

// resolvedTask returns a task that is already complete
func resolvedTask() *Task {
	t := newTask()
	t.resolve()
	return t
}

func (t *Task) resolve() {
	t.once.Do(func() { close(t.done) })
}

// Done is closed once the flow has reconciled its outcome into state
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the flow is complete
func (t *Task) Wait() {
	<-t.done
}
