package script

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/gogpu/rasterfx"
)

// ArgSpec describes a single command argument. Fields are textual and used
// for help output and arity checks.
type ArgSpec struct {
	Name        string
	Type        string // "int", "float", "name", "path"
	Required    bool
	Description string
}

// Handler runs a command with its arguments (the command name removed) and
// returns a status message.
type Handler func(ctx context.Context, in *Interpreter, args []string) (string, error)

// CommandSpec defines a single command and its expected arguments.
type CommandSpec struct {
	Name        string
	Args        []ArgSpec
	Usage       string
	Description string

	// Split marks commands accepting a trailing "split <percent>".
	Split bool

	run Handler
}

// arity returns the minimum and maximum argument counts.
func (c *CommandSpec) arity() (minArgs, maxArgs int) {
	minArgs = len(lo.Filter(c.Args, func(a ArgSpec, _ int) bool { return a.Required }))
	maxArgs = len(c.Args)
	if c.Split {
		maxArgs += 2
	}
	return minArgs, maxArgs
}

var (
	srcArg = ArgSpec{"src", "name", true, "source image name"}
	dstArg = ArgSpec{"dst", "name", true, "destination image name"}
)

func unary(name, desc string, op func(*rasterfx.Raster) (*rasterfx.Raster, error)) CommandSpec {
	return CommandSpec{
		Name:        name,
		Args:        []ArgSpec{srcArg, dstArg},
		Usage:       name + " <src> <dst>",
		Description: desc,
		run: func(_ context.Context, in *Interpreter, args []string) (string, error) {
			src, err := in.lookup(args[0])
			if err != nil {
				return "", err
			}
			out, err := op(src)
			if err != nil {
				return "", err
			}
			in.SetImage(args[1], out)
			return fmt.Sprintf("%s of %s saved as %s", name, args[0], args[1]), nil
		},
	}
}

func splitOp(name, desc string, op func(*rasterfx.Raster, int) (*rasterfx.Raster, error)) CommandSpec {
	return CommandSpec{
		Name:        name,
		Args:        []ArgSpec{srcArg, dstArg},
		Usage:       name + " <src> <dst> [split <percent>]",
		Description: desc,
		Split:       true,
		run: func(_ context.Context, in *Interpreter, args []string) (string, error) {
			split, err := parseSplit(args, 2)
			if err != nil {
				return "", err
			}
			src, err := in.lookup(args[0])
			if err != nil {
				return "", err
			}
			out, err := op(src, split)
			if err != nil {
				return "", err
			}
			in.SetImage(args[1], out)
			return fmt.Sprintf("%s of %s with split at %d%% saved as %s", name, args[0], split, args[1]), nil
		},
	}
}

func channelOp(ch rasterfx.Channel) CommandSpec {
	return unary(ch.String()+"-component", "Show the "+ch.String()+" channel as greyscale.",
		func(r *rasterfx.Raster) (*rasterfx.Raster, error) {
			return rasterfx.VisualizeChannel(r, ch)
		})
}

// builtins returns the command table.
func builtins() []CommandSpec {
	return []CommandSpec{
		{
			Name:        "load",
			Args:        []ArgSpec{{"path", "path", true, "image file"}, {"name", "name", true, "image name"}},
			Usage:       "load <path> <name>",
			Description: "Load an image file under a name.",
			run:         runLoad,
		},
		{
			Name:        "save",
			Args:        []ArgSpec{{"path", "path", true, "image file"}, {"name", "name", true, "image name"}},
			Usage:       "save <path> <name>",
			Description: "Save a named image; the format follows the extension.",
			run:         runSave,
		},
		unary("horizontal-flip", "Mirror left to right.", rasterfx.FlipHorizontal),
		unary("vertical-flip", "Mirror top to bottom.", rasterfx.FlipVertical),
		unary("value-component", "Greyscale from max(R, G, B).", rasterfx.Value),
		unary("intensity-component", "Greyscale from the channel mean.", rasterfx.Intensity),
		unary("luma-component", "Greyscale from Rec. 709 luma.", rasterfx.Luma),
		channelOp(rasterfx.Red),
		channelOp(rasterfx.Green),
		channelOp(rasterfx.Blue),
		unary("histogram", "Render the RGB histogram as a 256x256 image.", rasterfx.HistogramImage),
		{
			Name:        "brighten",
			Args:        []ArgSpec{{"delta", "int", true, "amount added to every channel"}, srcArg, dstArg},
			Usage:       "brighten <delta> <src> <dst>",
			Description: "Add a constant to every channel.",
			run:         runBrighten,
		},
		{
			Name: "rgb-split",
			Args: []ArgSpec{srcArg,
				{"red", "name", true, "red channel image"},
				{"green", "name", true, "green channel image"},
				{"blue", "name", true, "blue channel image"}},
			Usage:       "rgb-split <src> <red> <green> <blue>",
			Description: "Split into three channel images.",
			run:         runSplitRGB,
		},
		{
			Name: "rgb-combine",
			Args: []ArgSpec{dstArg,
				{"red", "name", true, "red channel image"},
				{"green", "name", true, "green channel image"},
				{"blue", "name", true, "blue channel image"}},
			Usage:       "rgb-combine <dst> <red> <green> <blue>",
			Description: "Combine three channel images.",
			run:         runCombineRGB,
		},
		splitOp("sepia", "Apply the sepia tone matrix.", rasterfx.Sepia),
		splitOp("greyscale", "Convert to luma greyscale.", rasterfx.Greyscale),
		splitOp("blur", "Apply the 3x3 blur kernel.", rasterfx.Blur),
		splitOp("sharpen", "Apply the 5x5 sharpen kernel.", rasterfx.Sharpen),
		splitOp("color-correct", "Align the histogram peaks of the channels.", rasterfx.ColorCorrect),
		{
			Name: "levels-adjust",
			Args: []ArgSpec{
				{"black", "int", true, "black point"},
				{"mid", "int", true, "mid point"},
				{"white", "int", true, "white point"},
				srcArg, dstArg},
			Usage:       "levels-adjust <black> <mid> <white> <src> <dst> [split <percent>]",
			Description: "Three-point levels adjustment; requires 0 <= black < mid < white <= 255.",
			Split:       true,
			run:         runLevels,
		},
		{
			Name:        "compress",
			Args:        []ArgSpec{{"threshold", "float", true, "coefficient threshold"}, srcArg, dstArg},
			Usage:       "compress <threshold> <src> <dst>",
			Description: "Haar wavelet compression.",
			run:         runCompress,
		},
		{
			Name: "downscale",
			Args: []ArgSpec{
				{"width", "int", true, "target width"},
				{"height", "int", true, "target height"},
				srcArg, dstArg},
			Usage:       "downscale <width> <height> <src> <dst>",
			Description: "Bilinear resize.",
			run:         runDownscale,
		},
		{
			Name:        "run",
			Args:        []ArgSpec{{"script", "path", true, "script file"}},
			Usage:       "run <script>",
			Description: "Execute the commands in a script file.",
			run:         runScript,
		},
	}
}

// Commands returns the command table sorted by name.
func Commands() []CommandSpec {
	cmds := builtins()
	slices.SortFunc(cmds, func(a, b CommandSpec) int {
		return strings.Compare(a.Name, b.Name)
	})
	return cmds
}

// CommandNames returns the sorted command names.
func CommandNames() []string {
	return lo.Map(Commands(), func(c CommandSpec, _ int) string { return c.Name })
}

func runLoad(_ context.Context, in *Interpreter, args []string) (string, error) {
	r, err := in.load(args[0])
	if err != nil {
		return "", err
	}
	in.SetImage(args[1], r)
	return args[1] + " loaded", nil
}

func runSave(_ context.Context, in *Interpreter, args []string) (string, error) {
	r, err := in.lookup(args[1])
	if err != nil {
		return "", err
	}
	if err := in.save(args[0], r); err != nil {
		return "", err
	}
	return args[1] + " saved to " + args[0], nil
}

func runBrighten(_ context.Context, in *Interpreter, args []string) (string, error) {
	delta, err := parseInt("delta", args[0])
	if err != nil {
		return "", err
	}
	src, err := in.lookup(args[1])
	if err != nil {
		return "", err
	}
	out, err := rasterfx.AdjustBrightness(src, delta)
	if err != nil {
		return "", err
	}
	in.SetImage(args[2], out)
	return fmt.Sprintf("%s brightened by %d and saved as %s", args[1], delta, args[2]), nil
}

func runSplitRGB(_ context.Context, in *Interpreter, args []string) (string, error) {
	src, err := in.lookup(args[0])
	if err != nil {
		return "", err
	}
	r, g, b, err := rasterfx.SplitRGB(src)
	if err != nil {
		return "", err
	}
	in.SetImage(args[1], r)
	in.SetImage(args[2], g)
	in.SetImage(args[3], b)
	return args[0] + " split into RGB components", nil
}

func runCombineRGB(_ context.Context, in *Interpreter, args []string) (string, error) {
	var chans [3]*rasterfx.Raster
	for i, name := range args[1:4] {
		r, err := in.lookup(name)
		if err != nil {
			return "", err
		}
		chans[i] = r
	}
	out, err := rasterfx.CombineRGB(chans[0], chans[1], chans[2])
	if err != nil {
		return "", err
	}
	in.SetImage(args[0], out)
	return "RGB components combined and saved as " + args[0], nil
}

func runLevels(_ context.Context, in *Interpreter, args []string) (string, error) {
	var pts [3]int
	for i, what := range []string{"black", "mid", "white"} {
		v, err := parseInt(what, args[i])
		if err != nil {
			return "", err
		}
		pts[i] = v
	}
	b, m, w := pts[0], pts[1], pts[2]
	if b < 0 || b >= m || m >= w || w > 255 {
		return "", fmt.Errorf("%w: levels %d %d %d must satisfy 0 <= black < mid < white <= 255",
			rasterfx.ErrInvalidArgument, b, m, w)
	}
	split, err := parseSplit(args, 5)
	if err != nil {
		return "", err
	}
	src, err := in.lookup(args[3])
	if err != nil {
		return "", err
	}
	out, err := rasterfx.LevelsAdjust(src, b, m, w, split)
	if err != nil {
		return "", err
	}
	in.SetImage(args[4], out)
	return fmt.Sprintf("levels-adjust of %s with split at %d%% saved as %s", args[3], split, args[4]), nil
}

func runCompress(_ context.Context, in *Interpreter, args []string) (string, error) {
	threshold, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return "", fmt.Errorf("%w: threshold %q is not a number", ErrUsage, args[0])
	}
	src, err := in.lookup(args[1])
	if err != nil {
		return "", err
	}
	out, err := rasterfx.Compress(src, threshold)
	if err != nil {
		return "", err
	}
	in.SetImage(args[2], out)
	return fmt.Sprintf("%s compressed and saved as %s", args[1], args[2]), nil
}

func runDownscale(_ context.Context, in *Interpreter, args []string) (string, error) {
	w, err := parseInt("width", args[0])
	if err != nil {
		return "", err
	}
	h, err := parseInt("height", args[1])
	if err != nil {
		return "", err
	}
	src, err := in.lookup(args[2])
	if err != nil {
		return "", err
	}
	out, err := rasterfx.Downscale(src, w, h)
	if err != nil {
		return "", err
	}
	in.SetImage(args[3], out)
	return fmt.Sprintf("%s downscaled to %dx%d and saved as %s", args[2], w, h, args[3]), nil
}

func runScript(ctx context.Context, in *Interpreter, args []string) (string, error) {
	if err := in.runFile(ctx, args[0]); err != nil {
		return "", err
	}
	return args[0] + " finished", nil
}

// parseSplit reads the optional "split <percent>" suffix starting at
// args[at]. Without it the split is 100.
func parseSplit(args []string, at int) (int, error) {
	switch len(args) - at {
	case 0:
		return 100, nil
	case 2:
		if fold(args[at]) != "split" {
			return 0, fmt.Errorf("%w: expected \"split\", got %q", ErrUsage, args[at])
		}
		return parseInt("split percent", args[at+1])
	default:
		return 0, fmt.Errorf("%w: trailing arguments %q", ErrUsage, args[at:])
	}
}

func parseInt(what, s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", ErrUsage, what, s)
	}
	return v, nil
}
