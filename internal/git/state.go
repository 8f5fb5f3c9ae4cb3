package git

import (
	"context"
	"fmt"
	"slices"

	"github.com/cjfuller/labdb-manager/internal/command"
)

// State is the staging state of the repository. It is never stored; it is
// derived from the presence of the staging branch and of MERGE_HEAD.
type State int

const (
	NoStaging State = iota
	Staging
	Reverting
)

func (s State) String() string {
	switch s {
	case NoStaging:
		return "no-staging"
	case Staging:
		return "staging"
	case Reverting:
		return "reverting"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Operation names one step of the staging workflow.
type Operation string

const (
	OpCheckStaging        Operation = "check-staging-exists"
	OpCleanUpStaging      Operation = "clean-up-staging"
	OpCreateStaging       Operation = "create-staging"
	OpFetchRemote         Operation = "fetch-remote"
	OpMergeIntoStaging    Operation = "merge-remote-into-staging"
	OpMergeIntoProduction Operation = "merge-staging-into-production"
	OpRevertMerge         Operation = "revert-merge"
)

// Transition describes which states an operation may start from and the
// state it leaves behind when it succeeds.
type Transition struct {
	Op   Operation
	From []State
	To   State
	Keep bool // state is unchanged (probes)
}

var allStates = []State{NoStaging, Staging, Reverting}

// Transitions is the staging state machine. A failed merge into staging
// leaves the repository in Reverting; that edge is taken at run time, not
// planned.
var Transitions = []Transition{
	{Op: OpCheckStaging, From: allStates, Keep: true},
	{Op: OpCleanUpStaging, From: []State{Staging}, To: NoStaging},
	{Op: OpCreateStaging, From: []State{NoStaging}, To: Staging},
	{Op: OpFetchRemote, From: []State{Staging}, To: Staging},
	{Op: OpMergeIntoStaging, From: []State{Staging}, To: Staging},
	// the staging branch stays until the next update cleans it up
	{Op: OpMergeIntoProduction, From: []State{Staging}, To: Staging},
	{Op: OpRevertMerge, From: []State{Reverting}, To: NoStaging},
}

// Next returns the state after op succeeds from state from.
func Next(from State, op Operation) (State, bool) {
	for _, t := range Transitions {
		if t.Op != op || !slices.Contains(t.From, from) {
			continue
		}
		if t.Keep {
			return from, true
		}
		return t.To, true
	}
	return from, false
}

// Plan enqueues git operations while tracking the state they will leave
// the repository in, rejecting sequences the state machine does not allow.
type Plan struct {
	state State
	names Names
	queue *command.Queue
}

// NewPlan starts a plan from the given state.
func NewPlan(initial State, names Names, queue *command.Queue) *Plan {
	return &Plan{state: initial, names: names, queue: queue}
}

// State returns the state the repository will be in once every applied
// operation has succeeded.
func (p *Plan) State() State {
	return p.state
}

// Apply enqueues op if it is valid from the current planned state.
func (p *Plan) Apply(op Operation) error {
	next, ok := Next(p.state, op)
	if !ok {
		return fmt.Errorf("cannot %s while in state %s", op, p.state)
	}
	cmd, err := CommandFor(op, p.names)
	if err != nil {
		return err
	}
	p.queue.Enqueue(cmd)
	p.state = next
	return nil
}

// StagingExists runs the staging probe immediately.
func StagingExists(ctx context.Context, exec command.CommandExecutor, n Names) (bool, error) {
	result, err := exec.Execute(ctx, CheckStaging(n))
	if err != nil {
		return false, fmt.Errorf("failed to check for staging branch: %w", err)
	}
	return result.Succeeded(), nil
}

// DetectState probes the repository for an unfinished merge and for the
// staging branch.
func DetectState(ctx context.Context, exec command.CommandExecutor, n Names) (State, error) {
	result, err := exec.Execute(ctx, CheckMergeInProgress())
	if err != nil {
		return NoStaging, fmt.Errorf("failed to check for merge in progress: %w", err)
	}
	if result.Succeeded() {
		return Reverting, nil
	}

	exists, err := StagingExists(ctx, exec, n)
	if err != nil {
		return NoStaging, err
	}
	if exists {
		return Staging, nil
	}
	return NoStaging, nil
}
