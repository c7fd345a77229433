// Package script runs rasterfx commands against a table of named images.
//
// A script is a sequence of lines, each holding one command and its
// space-separated arguments:
//
//	load photo.ppm img
//	blur img soft split 50
//	save soft.png soft
//
// Blank lines and lines starting with '#' are skipped. Command names are
// matched case-insensitively. See [Commands] for the full list.
package script

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/cases"

	"github.com/gogpu/rasterfx"
	"github.com/gogpu/rasterfx/codec"
)

// Interpreter errors.
var (
	// ErrUnknownCommand is returned for a command name not in the table.
	ErrUnknownCommand = errors.New("script: unknown command")

	// ErrUsage is returned for a wrong argument count or a malformed argument.
	ErrUsage = errors.New("script: usage")

	// ErrImageNotFound is returned when a command names an image that was
	// never loaded or produced.
	ErrImageNotFound = errors.New("script: image not found")
)

// MaxRunDepth bounds nested "run" commands.
const MaxRunDepth = 8

// Interpreter holds named images and dispatches commands. It is not safe
// for concurrent use.
type Interpreter struct {
	images    map[string]*rasterfx.Raster
	commands  map[string]*CommandSpec
	log       *slog.Logger
	out       io.Writer
	baseDir   string
	codecOpts []codec.Option
	depth     int
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithLogger sets the logger. The default is rasterfx.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(in *Interpreter) {
		if l != nil {
			in.log = l
		}
	}
}

// WithOutput sets where status messages are written. The default discards
// them.
func WithOutput(w io.Writer) Option {
	return func(in *Interpreter) {
		if w != nil {
			in.out = w
		}
	}
}

// WithBaseDir resolves relative paths in load, save and run against dir.
func WithBaseDir(dir string) Option {
	return func(in *Interpreter) {
		in.baseDir = dir
	}
}

// WithCodecOptions sets the encoder options used by save.
func WithCodecOptions(opts ...codec.Option) Option {
	return func(in *Interpreter) {
		in.codecOpts = append(in.codecOpts, opts...)
	}
}

// New creates an interpreter with an empty image table.
func New(opts ...Option) *Interpreter {
	in := &Interpreter{
		images:   make(map[string]*rasterfx.Raster),
		commands: make(map[string]*CommandSpec),
		log:      rasterfx.Logger(),
		out:      io.Discard,
	}
	for _, c := range builtins() {
		in.commands[c.Name] = &c
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Image returns the image stored under name.
func (in *Interpreter) Image(name string) (*rasterfx.Raster, bool) {
	r, ok := in.images[name]
	return r, ok
}

// SetImage stores r under name, replacing any previous image.
func (in *Interpreter) SetImage(name string, r *rasterfx.Raster) {
	in.images[name] = r
}

// Names returns the sorted names of all stored images.
func (in *Interpreter) Names() []string {
	names := lo.Keys(in.images)
	slices.Sort(names)
	return names
}

// Execute runs a single command line. Blank lines and comments succeed
// without doing anything.
func (in *Interpreter) Execute(ctx context.Context, line string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}

	name := fold(fields[0])
	cmd, ok := in.commands[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, fields[0])
	}
	args := fields[1:]
	if minArgs, maxArgs := cmd.arity(); len(args) < minArgs || len(args) > maxArgs {
		return fmt.Errorf("%s: %w: %s", name, ErrUsage, cmd.Usage)
	}

	in.log.Info("script: execute", "command", name, "args", args)
	msg, err := cmd.run(ctx, in, args)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	_, _ = fmt.Fprintln(in.out, msg)
	return nil
}

// Run executes every line read from r. A failing command is reported to the
// output and the logger and does not stop the script; all failures are
// returned joined. Cancelling ctx stops the script before the next line.
func (in *Interpreter) Run(ctx context.Context, r io.Reader) error {
	var errs []error
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		if err := in.Execute(ctx, sc.Text()); err != nil {
			if ctx.Err() != nil {
				return errors.Join(append(errs, err)...)
			}
			err = fmt.Errorf("line %d: %w", n, err)
			in.log.Warn("script: command failed", "error", err)
			_, _ = fmt.Fprintln(in.out, "error:", err)
			errs = append(errs, err)
		}
	}
	if err := sc.Err(); err != nil {
		errs = append(errs, fmt.Errorf("script: read: %w", err))
	}
	return errors.Join(errs...)
}

// Interactive reads commands from r until "exit" (any case) or end of
// input, writing prompt before each line. Command failures are reported and
// the session continues.
func (in *Interpreter) Interactive(ctx context.Context, r io.Reader, prompt string) error {
	sc := bufio.NewScanner(r)
	for {
		_, _ = io.WriteString(in.out, prompt)
		if !sc.Scan() {
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if fold(line) == "exit" {
			_, _ = fmt.Fprintln(in.out, "bye")
			return nil
		}
		if err := in.Execute(ctx, line); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			_, _ = fmt.Fprintln(in.out, "error:", err)
		}
	}
}

func (in *Interpreter) lookup(name string) (*rasterfx.Raster, error) {
	r, ok := in.images[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrImageNotFound, name)
	}
	return r, nil
}

func (in *Interpreter) resolve(path string) string {
	if in.baseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(in.baseDir, path)
}

func (in *Interpreter) load(path string) (*rasterfx.Raster, error) {
	return codec.Load(in.resolve(path))
}

func (in *Interpreter) save(path string, r *rasterfx.Raster) error {
	return codec.Save(in.resolve(path), r, in.codecOpts...)
}

func (in *Interpreter) runFile(ctx context.Context, path string) error {
	if in.depth >= MaxRunDepth {
		return fmt.Errorf("%w: run nested deeper than %d", ErrUsage, MaxRunDepth)
	}
	f, err := os.Open(filepath.Clean(in.resolve(path)))
	if err != nil {
		return fmt.Errorf("script: open: %w", err)
	}
	defer func() { _ = f.Close() }()

	in.depth++
	defer func() { in.depth-- }()
	return in.Run(ctx, f)
}

// fold returns the case-folded form used to match command names and
// keywords.
func fold(s string) string {
	return cases.Fold().String(s)
}
