package deckjs

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/reusee/taideck/nodes"
)

func TestRun(t *testing.T) {
	unit, err := Compile("card", `
function entry({ props }) {
	return Element('div', { className: 'card' },
		Element('span', null, 'hello'),
		'world',
	);
}
`)
	if err != nil {
		t.Fatal(err)
	}
	value, err := unit.Run(context.Background(), Call{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	node, ok := value.(*nodes.Node)
	if !ok {
		t.Fatalf("expected node, got %T", value)
	}
	if node.Tag != "div" {
		t.Fatalf("got tag %q", node.Tag)
	}
	if v, _ := node.Attr("className"); v != "card" {
		t.Fatalf("got className %v", v)
	}
	if len(node.Children) != 2 {
		t.Fatalf("got %d children", len(node.Children))
	}
	if node.Children[1].Kind != nodes.KindText || node.Children[1].Text != "world" {
		t.Fatalf("got %+v", node.Children[1])
	}
}

func TestRunMissingBinding(t *testing.T) {
	unit, err := Compile("c", `
function entry() {
	return Element('div', null, barHeight);
}
`)
	if err != nil {
		t.Fatal(err)
	}
	_, err = unit.Run(context.Background(), Call{}, nil)
	var missing MissingBindingError
	if !errors.As(err, &missing) {
		t.Fatalf("got %v", err)
	}
	if missing.Name != "barHeight" {
		t.Fatalf("got name %q", missing.Name)
	}
}

func TestRunEnvBinding(t *testing.T) {
	unit, err := Compile("c", `function entry() { return foo; }`)
	if err != nil {
		t.Fatal(err)
	}

	env := &Env{}
	env.Def("foo", 7)
	value, err := unit.Run(context.Background(), Call{}, env)
	if err != nil {
		t.Fatal(err)
	}
	if value != int64(7) {
		t.Fatalf("got %v (%T)", value, value)
	}
}

func TestRunEnvDoesNotLeak(t *testing.T) {
	// each run gets a fresh runtime, so a binding applied for one run is
	// gone the moment the next run starts without it
	unit, err := Compile("c", `function entry() { return foo; }`)
	if err != nil {
		t.Fatal(err)
	}

	env := &Env{}
	env.Def("foo", 1)
	if _, err := unit.Run(context.Background(), Call{}, env); err != nil {
		t.Fatal(err)
	}

	_, err = unit.Run(context.Background(), Call{}, nil)
	var missing MissingBindingError
	if !errors.As(err, &missing) {
		t.Fatalf("binding leaked across runs: %v", err)
	}
}

func TestRunEnvChildShadowsParent(t *testing.T) {
	unit, err := Compile("c", `function entry() { return spacing; }`)
	if err != nil {
		t.Fatal(err)
	}

	parent := &Env{}
	parent.Def("spacing", 12)
	child := parent.NewChild()
	child.Def("spacing", 16)

	value, err := unit.Run(context.Background(), Call{}, child)
	if err != nil {
		t.Fatal(err)
	}
	if value != int64(16) {
		t.Fatalf("got %v", value)
	}
}

func TestRunContext(t *testing.T) {
	unit, err := Compile("c", `
function entry({ props, state, id, isThumbnail }) {
	return Element('div', null,
		props.width, ' ', state, ' ', id, ' ', isThumbnail ? 'thumb' : 'full');
}
`)
	if err != nil {
		t.Fatal(err)
	}
	value, err := unit.Run(context.Background(), Call{
		Props:       map[string]any{"width": 800},
		State:       "s1",
		InstanceID:  "inst-1",
		IsThumbnail: true,
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	node := value.(*nodes.Node)
	var texts []string
	for _, child := range node.Children {
		texts = append(texts, child.Text)
	}
	got := strings.Join(texts, "")
	if got != "800 s1 inst-1 thumb" {
		t.Fatalf("got %q", got)
	}
}

func TestRunUpdateState(t *testing.T) {
	unit, err := Compile("c", `
function entry({ state, updateState }) {
	updateState(state + 1);
	return Element('div', null, state);
}
`)
	if err != nil {
		t.Fatal(err)
	}
	var next any
	_, err = unit.Run(context.Background(), Call{
		State:       1,
		UpdateState: func(v any) { next = v },
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if next != int64(2) {
		t.Fatalf("got %v (%T)", next, next)
	}
}

func TestRunThrown(t *testing.T) {
	unit, err := Compile("c", `
function entry() {
	throw new Error("boom");
}
`)
	if err != nil {
		t.Fatal(err)
	}
	_, err = unit.Run(context.Background(), Call{}, nil)
	var re RuntimeError
	if !errors.As(err, &re) {
		t.Fatalf("got %v", err)
	}
	if !strings.Contains(re.Message, "boom") {
		t.Fatalf("got %q", re.Message)
	}
}

func TestRunNoEntry(t *testing.T) {
	unit, err := Compile("c", `const a = 1;`)
	if err != nil {
		t.Fatal(err)
	}
	_, err = unit.Run(context.Background(), Call{}, nil)
	var re RuntimeError
	if !errors.As(err, &re) {
		t.Fatalf("got %v", err)
	}
	if !strings.Contains(re.Message, "entry is not defined as a function") {
		t.Fatalf("got %q", re.Message)
	}
}

func TestRunBudget(t *testing.T) {
	unit, err := Compile("c", `
function entry() {
	for (;;) {}
}
`)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = unit.Run(ctx, Call{}, nil)
	if !errors.Is(err, ErrBudgetExceeded) {
		t.Fatalf("got %v", err)
	}
}

func TestRunAsyncEntry(t *testing.T) {
	unit, err := Compile("c", `
const entry = async ({ props }) => Element('div', null, 'async');
`)
	if err != nil {
		t.Fatal(err)
	}
	value, err := unit.Run(context.Background(), Call{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	node, ok := value.(*nodes.Node)
	if !ok {
		t.Fatalf("expected node, got %T", value)
	}
	if len(node.Children) != 1 || node.Children[0].Text != "async" {
		t.Fatalf("got %+v", node)
	}
}

func TestRunAsyncRejection(t *testing.T) {
	unit, err := Compile("c", `
const entry = async () => { throw new Error("late boom"); };
`)
	if err != nil {
		t.Fatal(err)
	}
	_, err = unit.Run(context.Background(), Call{}, nil)
	var re RuntimeError
	if !errors.As(err, &re) {
		t.Fatalf("got %v", err)
	}
	if !strings.Contains(re.Message, "late boom") {
		t.Fatalf("got %q", re.Message)
	}
}

func TestRunBareStringResult(t *testing.T) {
	unit, err := Compile("c", `function entry() { return '<b>raw</b>'; }`)
	if err != nil {
		t.Fatal(err)
	}
	value, err := unit.Run(context.Background(), Call{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if value != "<b>raw</b>" {
		t.Fatalf("got %v (%T)", value, value)
	}
}
