// Package state holds the client-side caches of server data.
//
// Each container exposes actions (Fetch, Toggle, ...) that return a *Task
// immediately. The pending phase is applied before the action returns; the
// request then runs on its own goroutine and settles the container as
// fulfilled or rejected when its result arrives. Results are applied in
// arrival order, so of two concurrent actions the one that settles last
// wins. Callers that need strict ordering wait on each Task before issuing
// the next action.
//
// Snapshots are copies: mutating a returned snapshot never affects the
// container.
package state
