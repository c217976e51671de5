package state

// Task is the future returned by every container action
type Task struct {
	done chan struct{}
	err  error
}

func newTask() *Task {
	return &Task{done: make(chan struct{})}
}

func (t *Task) finish(err error) {
	t.err = err
	close(t.done)
}

// Wait blocks until the action has settled and the container has been
// updated, then returns the action's error
func (t *Task) Wait() error {
	<-t.done
	return t.err
}

// Done is closed once the action has settled
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Err returns the action's error, or nil while it is still running
func (t *Task) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}
