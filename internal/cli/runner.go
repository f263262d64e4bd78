package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Makepad-fr/doit/internal/config"
	"github.com/Makepad-fr/doit/internal/event"
	"github.com/Makepad-fr/doit/internal/export"
	"github.com/Makepad-fr/doit/internal/logging"
	"github.com/Makepad-fr/doit/internal/session"
	"github.com/Makepad-fr/doit/internal/store"
	"github.com/Makepad-fr/doit/internal/tui"
	"github.com/Makepad-fr/doit/internal/ui"
)

// Runner carries the process boundaries so tests can replace them.
type Runner struct {
	Stdin          io.Reader
	Stdout, Stderr io.Writer
	Now            func() time.Time
	RunTUI         func(*session.Session, tui.Options) error
}

// Run dispatches subcommands against the real terminal and returns an exit
// code (0 ok, 1 error, 2 usage).
func Run(args []string) int {
	r := &Runner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Now:    time.Now,
		RunTUI: tui.Run,
	}
	return r.Run(args)
}

// Run parses root flags, builds the session and dispatches the subcommand.
func (r *Runner) Run(args []string) int {
	fs := flag.NewFlagSet("doit", flag.ContinueOnError)
	fs.SetOutput(r.Stderr)
	fs.Usage = func() { PrintHelp(r.Stderr) }

	cfg, err := config.Load(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		ui.Fail(r.Stderr, err.Error())
		if errors.Is(err, config.ErrInvalid) {
			return 2
		}
		return 1
	}
	ui.SetTheme(cfg.Theme)

	log, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		ui.Fail(r.Stderr, "log: "+err.Error())
		return 1
	}
	defer log.Close()

	ids, err := store.NewIDFunc(cfg.IDStrategy)
	if err != nil {
		ui.Fail(r.Stderr, err.Error())
		return 2
	}
	sess := session.New(store.New(store.WithIDs(ids)), log.Logger)

	rest := fs.Args()
	cmd, a := "tui", []string(nil)
	if len(rest) > 0 {
		cmd, a = rest[0], rest[1:]
	}
	log.Debug().Str("cmd", cmd).Strs("config_files", cfg.Files).Msg("start")

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(r.Stdout)
		return 0

	case "tui":
		return r.doTUI(sess, cfg)

	case "replay":
		return r.doReplay(sess, a)

	case "config":
		return r.doConfig(cfg)
	}

	ui.Fail(r.Stderr, "unknown subcommand: "+cmd)
	fmt.Fprintln(r.Stderr)
	PrintHelp(r.Stderr)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `doit - lists and todos for the terminal

Usage:
  doit [flags] [subcommand] [args]

Subcommands:
  tui                        Interactive lists and todos (default)
  replay [-group] [-export file] <script|->
                             Apply a YAML event script to an empty session
                             and print the result
  config                     Print the effective configuration
  help                       Show this help

Flags:
  -config file       Config file (default ./doit.toml)
  -theme name        classic, neon or mono
  -ids strategy      uuid or counter
  -log-file file     Write JSON logs here
  -log-level level   trace, debug, info, warn, error or disabled
  -export-dir dir    Where the TUI writes exports
  -export-format f   json or yaml
  -splash=false      Skip the splash screen

Nothing is kept between runs; use export (x in the TUI) to save a copy.

Examples:
  doit
  doit -theme neon -ids counter
  doit replay groceries.yaml
  cat groceries.yaml | doit replay -group -export out.json -
`)
}

// -------------- subcommand impls ----------------

func (r *Runner) doTUI(sess *session.Session, cfg *config.Config) int {
	err := r.RunTUI(sess, tui.Options{
		Splash:       cfg.Splash,
		ExportDir:    cfg.ExportDir,
		ExportFormat: cfg.ExportFormat,
		Now:          r.Now,
	})
	if err != nil {
		ui.Fail(r.Stderr, "tui: "+err.Error())
		return 1
	}
	return 0
}

func (r *Runner) doReplay(sess *session.Session, args []string) int {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	fs.SetOutput(r.Stderr)
	group := fs.Bool("group", false, "group todos by pending/done")
	out := fs.String("export", "", "also write the final snapshot to this file (.json or .yaml)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		ui.Fail(r.Stderr, "usage: doit replay [-group] [-export file] <script|->")
		return 2
	}

	script, err := r.readScript(fs.Arg(0))
	if err != nil {
		ui.Fail(r.Stderr, err.Error())
		return 1
	}
	res := sess.Run(script)

	lines := ui.SnapshotLines(sess.Lists(), *group)
	lines = append(lines, "")
	lines = append(lines, ui.Current().Muted.Render(
		fmt.Sprintf("%d events: %d applied, %d ignored", len(script.Events), res.Applied, res.Ignored)))
	ui.Panel(r.Stdout, lines)

	if *out != "" {
		snap := export.Snapshot{ExportedAt: r.Now(), Lists: sess.Lists()}
		if err := export.ToFile(*out, snap, export.FormatFromPath(*out)); err != nil {
			ui.Fail(r.Stderr, "export: "+err.Error())
			return 1
		}
		ui.OK(r.Stdout, "exported to "+*out)
	}
	return 0
}

func (r *Runner) readScript(name string) (*event.Script, error) {
	if name == "-" {
		return event.ReadScript(r.Stdin)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()
	return event.ReadScript(f)
}

func (r *Runner) doConfig(cfg *config.Config) int {
	fmt.Fprint(r.Stdout, cfg.String())
	if len(cfg.Files) == 0 {
		fmt.Fprintln(r.Stdout, ui.Current().Muted.Render("# no config files, defaults + env + flags"))
		return 0
	}
	for _, f := range cfg.Files {
		fmt.Fprintln(r.Stdout, ui.Current().Muted.Render("# from "+f))
	}
	return 0
}
