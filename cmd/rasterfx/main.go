// Command rasterfx runs image transformation scripts.
//
// Usage:
//
//	rasterfx run edits.txt
//	rasterfx repl
//	rasterfx commands
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gogpu/rasterfx"
	"github.com/gogpu/rasterfx/codec"
	"github.com/gogpu/rasterfx/script"
)

type config struct {
	logLevel    string
	baseDir     string
	jpegQuality int
	ppmRaw      bool
}

func (c *config) bind(fs *pflag.FlagSet) {
	fs.StringVar(&c.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	fs.StringVar(&c.baseDir, "base-dir", "", "directory relative image and script paths are resolved against")
	fs.IntVar(&c.jpegQuality, "jpeg-quality", codec.DefaultJPEGQuality, "JPEG quality (1-100) used by save")
	fs.BoolVar(&c.ppmRaw, "ppm-raw", false, "write binary P6 instead of plain P3 PPM files")
}

// interpreter builds the logger and interpreter the flags describe.
func (c *config) interpreter(stdout, stderr io.Writer) (*script.Interpreter, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.logLevel)); err != nil {
		return nil, fmt.Errorf("--log-level: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	rasterfx.SetLogger(logger)

	ppm := codec.PPMPlain
	if c.ppmRaw {
		ppm = codec.PPMRaw
	}
	return script.New(
		script.WithLogger(logger),
		script.WithOutput(stdout),
		script.WithBaseDir(c.baseDir),
		script.WithCodecOptions(codec.WithJPEGQuality(c.jpegQuality), codec.WithPPMFormat(ppm)),
	), nil
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	cfg := &config{}
	root := &cobra.Command{
		Use:           "rasterfx",
		Short:         "Apply raster transforms from scripts or an interactive prompt",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	cfg.bind(root.PersistentFlags())

	root.AddCommand(&cobra.Command{
		Use:   "run <script>",
		Short: "Execute every command in a script file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := cfg.interpreter(cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return in.Execute(cmd.Context(), "run "+args[0])
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "repl",
		Short: "Read commands interactively until \"exit\"",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := cfg.interpreter(cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			cmd.Println("Type commands to execute, or 'exit' to quit.")
			return in.Interactive(cmd.Context(), cmd.InOrStdin(), "> ")
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "commands",
		Short: "List the available script commands",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, c := range script.Commands() {
				cmd.Printf("  %-70s %s\n", c.Usage, c.Description)
			}
		},
	})
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "rasterfx:", err)
		stop()
		os.Exit(1)
	}
}
