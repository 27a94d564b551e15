package dispatch

import "testing"

func TestTurnMachineCalculatorPath(t *testing.T) {
	m := newTurnMachine()
	if m.State() != StateDeciding {
		t.Fatalf("expected initial state DECIDING, got %s", m.State())
	}
	for _, next := range []State{StateSanitizing, StateExecuting, StateResponding} {
		if err := m.Transition(next); err != nil {
			t.Fatalf("transition to %s: %v", next, err)
		}
	}
}

func TestTurnMachineSearchPath(t *testing.T) {
	m := newTurnMachine()
	if err := m.Transition(StateExecuting); err != nil {
		t.Fatalf("transition error: %v", err)
	}
	if err := m.Transition(StateResponding); err != nil {
		t.Fatalf("transition error: %v", err)
	}
}

func TestTurnMachineDirectResponse(t *testing.T) {
	m := newTurnMachine()
	if err := m.Transition(StateResponding); err != nil {
		t.Fatalf("transition error: %v", err)
	}
}

func TestTurnMachineFailedOnlyFromDeciding(t *testing.T) {
	m := newTurnMachine()
	if err := m.Transition(StateFailed); err != nil {
		t.Fatalf("expected DECIDING -> FAILED valid, got %v", err)
	}

	m = newTurnMachine()
	if err := m.Transition(StateExecuting); err != nil {
		t.Fatalf("transition error: %v", err)
	}
	if err := m.Transition(StateFailed); err == nil {
		t.Fatalf("expected EXECUTING -> FAILED invalid")
	}
}

func TestTurnMachineInvalidTransitions(t *testing.T) {
	m := newTurnMachine()
	if err := m.Transition(StateResponding); err != nil {
		t.Fatalf("transition error: %v", err)
	}
	if err := m.Transition(StateExecuting); err == nil {
		t.Fatalf("expected terminal state to reject transitions")
	}

	m = newTurnMachine()
	if err := m.Transition(StateSanitizing); err != nil {
		t.Fatalf("transition error: %v", err)
	}
	if err := m.Transition(StateResponding); err == nil {
		t.Fatalf("expected SANITIZING -> RESPONDING invalid")
	}
}
