package keyword

import (
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"
)

type fakeEngine struct {
	tags  []string
	err   error
	panic bool
	calls int
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) Extract(text string) []string {
	tags, _ := f.TryExtract(text)
	return tags
}

func (f *fakeEngine) TryExtract(string) ([]string, error) {
	f.calls++
	if f.panic {
		panic("model exploded")
	}
	return f.tags, f.err
}

func TestFallbackUsesPrimaryWhenHealthy(t *testing.T) {
	primary := &fakeEngine{tags: []string{"#brooklyn"}}
	fb := NewFallback(primary, NewHeuristic(10), zap.NewNop())

	got := fb.Extract("anything at all")
	if !reflect.DeepEqual(got, []string{"#brooklyn"}) {
		t.Fatalf("Extract() = %v", got)
	}
	if fb.Name() != "fake" {
		t.Fatalf("Name() = %s", fb.Name())
	}
}

func TestFallbackSwitchesOnError(t *testing.T) {
	primary := &fakeEngine{err: errors.New("tagger offline")}
	fb := NewFallback(primary, NewHeuristic(10), zap.NewNop())

	got := fb.Extract("workout workout protein")
	want := []string{"#workout", "#protein"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Extract() = %v, want %v", got, want)
	}
	if primary.calls != 1 {
		t.Fatalf("primary called %d times", primary.calls)
	}
}

func TestFallbackRecoversFromPanic(t *testing.T) {
	primary := &fakeEngine{panic: true}
	fb := NewFallback(primary, NewHeuristic(10), zap.NewNop())

	got := fb.Extract("mansion mansion tour")
	if len(got) == 0 || got[0] != "#mansion" {
		t.Fatalf("expected heuristic output after panic, got %v", got)
	}
}

func TestNewHonoursHeuristicStrategy(t *testing.T) {
	ex := New(StrategyHeuristic, 10, zap.NewNop())
	if ex.Name() != StrategyHeuristic {
		t.Fatalf("expected heuristic engine, got %s", ex.Name())
	}

	ex = New("spacy", 10, zap.NewNop())
	if ex.Name() != StrategyHeuristic {
		t.Fatalf("unknown strategy must use heuristic, got %s", ex.Name())
	}
}
