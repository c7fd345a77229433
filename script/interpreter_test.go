package script

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/rasterfx"
	"github.com/gogpu/rasterfx/codec"
)

// newTestInterpreter returns an interpreter rooted in a temporary
// directory holding a 4x2 gradient as "src.ppm".
func newTestInterpreter(t *testing.T) (*Interpreter, *bytes.Buffer, string) {
	t.Helper()
	dir := t.TempDir()
	rows := make([][]rasterfx.RGB, 2)
	for y := range rows {
		for x := 0; x < 4; x++ {
			v := uint8(40*x + 20*y + 10)
			rows[y] = append(rows[y], rasterfx.RGB{R: v, G: v / 2, B: 255 - v})
		}
	}
	src, err := rasterfx.FromRows(rows)
	if err != nil {
		t.Fatal(err)
	}
	if err := codec.Save(filepath.Join(dir, "src.ppm"), src); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	return New(WithBaseDir(dir), WithOutput(&out)), &out, dir
}

func mustImage(t *testing.T, in *Interpreter, name string) *rasterfx.Raster {
	t.Helper()
	r, ok := in.Image(name)
	if !ok {
		t.Fatalf("image %q not found; have %v", name, in.Names())
	}
	return r
}

func TestLoadTransformSave(t *testing.T) {
	in, out, dir := newTestInterpreter(t)
	ctx := context.Background()

	script := `
# flip and blur the left half
load src.ppm img
horizontal-flip img flipped
blur flipped soft split 50
save soft.png soft
`
	if err := in.Run(ctx, strings.NewReader(script)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	src := mustImage(t, in, "img")
	flipped, _ := rasterfx.FlipHorizontal(src)
	want, _ := rasterfx.Blur(flipped, 50)
	if !mustImage(t, in, "soft").Equal(want) {
		t.Error("soft differs from FlipHorizontal+Blur")
	}

	saved, err := codec.Load(filepath.Join(dir, "soft.png"))
	if err != nil {
		t.Fatalf("codec.Load() error = %v", err)
	}
	if !saved.Equal(want) {
		t.Error("saved PNG differs from the in-memory result")
	}
	if !strings.Contains(out.String(), "img loaded") {
		t.Errorf("output %q lacks load message", out.String())
	}
}

func TestSplitDefaultsToFull(t *testing.T) {
	in, _, _ := newTestInterpreter(t)
	ctx := context.Background()
	for _, line := range []string{"load src.ppm img", "sepia img a", "sepia img b split 100"} {
		if err := in.Execute(ctx, line); err != nil {
			t.Fatalf("Execute(%q) error = %v", line, err)
		}
	}
	if !mustImage(t, in, "a").Equal(mustImage(t, in, "b")) {
		t.Error("sepia without split differs from split 100")
	}
}

func TestCommandNamesFoldCase(t *testing.T) {
	in, _, _ := newTestInterpreter(t)
	ctx := context.Background()
	for _, line := range []string{"LOAD src.ppm img", "Vertical-Flip img v", "greyscale img g SPLIT 30"} {
		if err := in.Execute(ctx, line); err != nil {
			t.Errorf("Execute(%q) error = %v", line, err)
		}
	}
}

func TestExecuteErrors(t *testing.T) {
	in, _, _ := newTestInterpreter(t)
	ctx := context.Background()
	if err := in.Execute(ctx, "load src.ppm img"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		line string
		want error
	}{
		{"frobnicate img x", ErrUnknownCommand},
		{"blur img", ErrUsage},
		{"blur img x split", ErrUsage},
		{"blur img x slice 50", ErrUsage},
		{"blur img x split fifty", ErrUsage},
		{"blur img x split 150", rasterfx.ErrInvalidArgument},
		{"blur missing x", ErrImageNotFound},
		{"brighten lots img x", ErrUsage},
		{"levels-adjust 100 50 200 img x", rasterfx.ErrInvalidArgument},
		{"levels-adjust 10 10 200 img x", rasterfx.ErrInvalidArgument},
		{"levels-adjust 10 50 256 img x", rasterfx.ErrInvalidArgument},
		{"downscale 0 2 img x", rasterfx.ErrInvalidArgument},
		{"compress much img x", ErrUsage},
		{"load nothing.ppm y", os.ErrNotExist},
		{"save out.gif img", codec.ErrUnsupportedFormat},
	}
	for _, tt := range tests {
		err := in.Execute(ctx, tt.line)
		if !errors.Is(err, tt.want) {
			t.Errorf("Execute(%q) error = %v, want %v", tt.line, err, tt.want)
		}
	}
}

func TestErrorsNameTheCommand(t *testing.T) {
	in := New()
	err := in.Execute(context.Background(), "sharpen ghost x")
	if err == nil || !strings.HasPrefix(err.Error(), "sharpen: ") {
		t.Errorf("error = %v, want sharpen: prefix", err)
	}
}

func TestChannelCommands(t *testing.T) {
	in, _, _ := newTestInterpreter(t)
	ctx := context.Background()
	lines := []string{
		"load src.ppm img",
		"rgb-split img r g b",
		"rgb-combine joined r g b",
		"red-component img r2",
		"value-component img v",
		"intensity-component img i",
		"luma-component img l",
		"brighten -30 img dark",
		"histogram img h",
		"color-correct img cc split 40",
		"levels-adjust 20 100 200 img lv",
		"compress 0 img z",
		"downscale 2 1 img small",
	}
	for _, line := range lines {
		if err := in.Execute(ctx, line); err != nil {
			t.Fatalf("Execute(%q) error = %v", line, err)
		}
	}

	src := mustImage(t, in, "img")
	if !mustImage(t, in, "joined").Equal(src) {
		t.Error("rgb-combine of rgb-split differs from the source")
	}
	if !mustImage(t, in, "r").Equal(mustImage(t, in, "r2")) {
		t.Error("rgb-split red differs from red-component")
	}
	if h := mustImage(t, in, "h"); h.Width() != 256 || h.Height() != 256 {
		t.Errorf("histogram size = %dx%d", h.Width(), h.Height())
	}
	if s := mustImage(t, in, "small"); s.Width() != 2 || s.Height() != 1 {
		t.Errorf("downscale size = %dx%d", s.Width(), s.Height())
	}

	want := []string{"b", "cc", "dark", "g", "h", "i", "img", "joined", "l", "lv", "r", "r2", "small", "v", "z"}
	if diff := cmp.Diff(want, in.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

func TestRunContinuesAfterFailure(t *testing.T) {
	in, out, _ := newTestInterpreter(t)
	script := "load src.ppm img\nblur ghost x\nsepia img s\n"
	err := in.Run(context.Background(), strings.NewReader(script))
	if !errors.Is(err, ErrImageNotFound) {
		t.Fatalf("Run() error = %v, want ErrImageNotFound", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error %q lacks the line number", err)
	}
	if _, ok := in.Image("s"); !ok {
		t.Error("commands after the failure did not run")
	}
	if !strings.Contains(out.String(), "error: line 2") {
		t.Errorf("output %q lacks the error report", out.String())
	}
}

func TestRunNestedScript(t *testing.T) {
	in, _, dir := newTestInterpreter(t)
	inner := "load src.ppm img\ngreyscale img grey\n"
	if err := os.WriteFile(filepath.Join(dir, "inner.txt"), []byte(inner), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := in.Execute(context.Background(), "run inner.txt"); err != nil {
		t.Fatalf("Execute(run) error = %v", err)
	}
	if _, ok := in.Image("grey"); !ok {
		t.Error("nested script did not run")
	}
}

func TestRunRecursionIsBounded(t *testing.T) {
	in, _, dir := newTestInterpreter(t)
	if err := os.WriteFile(filepath.Join(dir, "loop.txt"), []byte("run loop.txt\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	err := in.Execute(context.Background(), "run loop.txt")
	if !errors.Is(err, ErrUsage) {
		t.Errorf("Execute(run loop) error = %v, want ErrUsage", err)
	}
}

func TestRunCancelled(t *testing.T) {
	in, _, _ := newTestInterpreter(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := in.Run(ctx, strings.NewReader("load src.ppm img\n"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if _, ok := in.Image("img"); ok {
		t.Error("command ran after cancellation")
	}
}

func TestInteractive(t *testing.T) {
	in, out, _ := newTestInterpreter(t)
	input := "load src.ppm img\nblur nope x\n  EXIT  \nsepia img never\n"
	if err := in.Interactive(context.Background(), strings.NewReader(input), "> "); err != nil {
		t.Fatalf("Interactive() error = %v", err)
	}
	if _, ok := in.Image("img"); !ok {
		t.Error("load did not run")
	}
	if _, ok := in.Image("never"); ok {
		t.Error("commands after exit ran")
	}
	if !strings.Contains(out.String(), "error: blur:") {
		t.Errorf("output %q lacks the blur error", out.String())
	}
}

func TestInteractiveEOF(t *testing.T) {
	in := New()
	if err := in.Interactive(context.Background(), strings.NewReader("# only a comment"), ""); err != nil {
		t.Errorf("Interactive() error = %v, want nil at end of input", err)
	}
}

func TestCommandTable(t *testing.T) {
	names := CommandNames()
	if !slices.IsSorted(names) {
		t.Errorf("CommandNames() not sorted: %v", names)
	}
	want := []string{
		"load", "save", "horizontal-flip", "vertical-flip", "value-component",
		"intensity-component", "luma-component", "brighten", "red-component",
		"green-component", "blue-component", "rgb-split", "rgb-combine", "sepia",
		"greyscale", "blur", "sharpen", "histogram", "color-correct",
		"levels-adjust", "compress", "downscale", "run",
	}
	slices.Sort(want)
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("CommandNames() mismatch (-want +got):\n%s", diff)
	}

	for _, c := range Commands() {
		if c.Usage == "" || c.Description == "" || !strings.HasPrefix(c.Usage, c.Name) {
			t.Errorf("command %q has incomplete help: %+v", c.Name, c)
		}
	}
}
