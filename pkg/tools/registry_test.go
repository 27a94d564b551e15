package tools

import (
	"context"
	"testing"

	"github.com/kiranalabs/kirana/pkg/errorsx"
)

func specFixture(name string) ToolSpec {
	return ToolSpec{
		Name:        name,
		Description: "test tool",
		Params:      []ParamSpec{{Name: "input", Type: "string", Required: true}},
	}
}

func okHandler(ctx context.Context, args map[string]any) Result {
	return Ok("test", "done")
}

func TestRegisterAndLookup(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(Entry{Spec: specFixture("alpha"), Handler: okHandler}); err != nil {
		t.Fatalf("register error: %v", err)
	}
	entry, err := reg.Lookup("alpha")
	if err != nil {
		t.Fatalf("lookup error: %v", err)
	}
	if entry.Spec.Name != "alpha" {
		t.Fatalf("expected spec alpha, got %s", entry.Spec.Name)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(Entry{Spec: specFixture("alpha"), Handler: okHandler}); err != nil {
		t.Fatalf("register error: %v", err)
	}
	err := reg.Register(Entry{Spec: specFixture("alpha"), Handler: okHandler})
	if err == nil {
		t.Fatalf("expected duplicate error")
	}
	if !errorsx.HasReason(err, errorsx.ReasonDuplicateTool) {
		t.Fatalf("expected duplicate reason, got %s", errorsx.Reason(err))
	}
}

func TestLookupUnknown(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Lookup("ghost")
	if err == nil {
		t.Fatalf("expected unknown tool error")
	}
	if !errorsx.HasReason(err, errorsx.ReasonUnknownTool) {
		t.Fatalf("expected unknown tool reason, got %s", errorsx.Reason(err))
	}
}

func TestRegisterAfterFreeze(t *testing.T) {
	reg := NewRegistry()
	reg.Freeze()
	if err := reg.Register(Entry{Spec: specFixture("late"), Handler: okHandler}); err == nil {
		t.Fatalf("expected error registering after freeze")
	}
}

func TestSpecsStableOrder(t *testing.T) {
	reg := NewRegistry()
	names := []string{"charlie", "alpha", "bravo"}
	for _, name := range names {
		if err := reg.Register(Entry{Spec: specFixture(name), Handler: okHandler}); err != nil {
			t.Fatalf("register error: %v", err)
		}
	}
	for i := 0; i < 3; i++ {
		specs := reg.Specs()
		if len(specs) != len(names) {
			t.Fatalf("expected %d specs, got %d", len(names), len(specs))
		}
		for i, name := range names {
			if specs[i].Name != name {
				t.Fatalf("expected %s at index %d, got %s", name, i, specs[i].Name)
			}
		}
	}
}

func TestValidateArguments(t *testing.T) {
	spec := specFixture("alpha")
	if err := ValidateArguments(spec, map[string]any{"input": "hello"}); err != nil {
		t.Fatalf("expected valid arguments, got %v", err)
	}
	err := ValidateArguments(spec, map[string]any{})
	if err == nil {
		t.Fatalf("expected missing argument error")
	}
	if !errorsx.HasReason(err, errorsx.ReasonMalformedArguments) {
		t.Fatalf("expected malformed reason, got %s", errorsx.Reason(err))
	}
	if err := ValidateArguments(spec, map[string]any{"input": 42}); err == nil {
		t.Fatalf("expected type mismatch error")
	}
}
