package structs

// TaskUpdate is a partial update of a stored task. Nil fields are left alone.
type TaskUpdate struct {
	State       *State
	Error       *string
	Retries     *int
	Nodes       []string
	SplitStatus *int
	JumpStatus  *int
	ResumeToken *string

	// WhereStates, if given, restricts the update to a task currently in one of
	// these states. The check & the write happen atomically in the store.
	WhereStates []State
}

// UpdateFromTask builds an update carrying the mutable fields of t.
//
// SplitStatus is left out: the split watermark is only ever written on its own,
// as each child task is created, and a task being requeued may carry a stale copy.
func UpdateFromTask(t *Task) *TaskUpdate {
	st := t.State
	msg := t.Error
	retries := t.Retries
	jump := t.JumpStatus
	token := t.ResumeToken
	return &TaskUpdate{
		State:       &st,
		Error:       &msg,
		Retries:     &retries,
		Nodes:       append([]string{}, t.Nodes...),
		JumpStatus:  &jump,
		ResumeToken: &token,
	}
}

// Guard restricts the update to tasks in the given states
func (u *TaskUpdate) Guard(states ...State) *TaskUpdate {
	u.WhereStates = states
	return u
}
