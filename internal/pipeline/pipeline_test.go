package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/Adimir123/manscan/internal/model"
)

// fakeStep records execution for testing.
type fakeStep struct {
	name     string
	err      error
	executed bool
}

func (s *fakeStep) Do(_ context.Context, _ *model.Report) error {
	s.executed = true
	return s.err
}

func (s *fakeStep) Name() string { return s.name }

// TestPipelineExecute tests sequential step execution.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	first := &fakeStep{name: "first"}
	second := &fakeStep{name: "second"}

	p := New()
	p.AddSteps(first, second)

	if p.StepCount() != 2 {
		t.Fatalf("expected 2 steps, got %d", p.StepCount())
	}

	report := model.NewReport("com.example.app")
	if err := p.Execute(context.Background(), report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !first.executed || !second.executed {
		t.Error("expected both steps to execute")
	}
}

// TestPipelineStopsOnError tests the default stop-on-error behavior.
func TestPipelineStopsOnError(t *testing.T) {
	t.Parallel()

	stepErr := errors.New("step failed")
	failing := &fakeStep{name: "failing", err: stepErr}
	after := &fakeStep{name: "after"}

	p := New()
	p.AddSteps(failing, after)

	err := p.Execute(context.Background(), model.NewReport("com.example.app"))
	if !errors.Is(err, stepErr) {
		t.Fatalf("expected step error, got %v", err)
	}
	if after.executed {
		t.Error("expected execution to stop after the failing step")
	}
}

// TestPipelineContinueOnError tests the continue-on-error option.
func TestPipelineContinueOnError(t *testing.T) {
	t.Parallel()

	failing := &fakeStep{name: "failing", err: errors.New("step failed")}
	after := &fakeStep{name: "after"}

	p := New(WithContinueOnError(true))
	p.AddSteps(failing, after)

	if err := p.Execute(context.Background(), model.NewReport("com.example.app")); err != nil {
		t.Fatalf("unexpected error with continueOnError: %v", err)
	}
	if !after.executed {
		t.Error("expected execution to continue past the failing step")
	}
}

// TestPipelineCancellation tests that a cancelled context stops execution.
func TestPipelineCancellation(t *testing.T) {
	t.Parallel()

	step := &fakeStep{name: "never"}
	p := New()
	p.AddStep(step)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Execute(ctx, model.NewReport("com.example.app"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if step.executed {
		t.Error("expected no steps to run after cancellation")
	}
}

// TestPipelineStepNames tests step name reporting.
func TestPipelineStepNames(t *testing.T) {
	t.Parallel()

	p := New()
	p.AddSteps(&fakeStep{name: "components"}, &fakeStep{name: "permissions"}, &fakeStep{name: "deeplinks"})

	names := p.StepNames()
	expected := []string{"components", "permissions", "deeplinks"}
	if len(names) != len(expected) {
		t.Fatalf("expected %d names, got %d", len(expected), len(names))
	}
	for i, name := range expected {
		if names[i] != name {
			t.Errorf("step %d: expected %q, got %q", i, name, names[i])
		}
	}
}
