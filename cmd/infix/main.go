package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/zephyrtronium/infix"
	"github.com/zephyrtronium/infix/internal/config"
	"github.com/zephyrtronium/infix/internal/logger"
	"github.com/zephyrtronium/infix/internal/repl"
	"github.com/zephyrtronium/infix/internal/server"
	"github.com/zephyrtronium/infix/internal/tables"
)

func main() {
	log.SetFlags(0)
	var (
		inname, verb, cfgname string
		mode, locale, cmp     string
		tabname, addr         string
		with                  [][2]string
		nl, echo, interactive bool
		nostd                 bool
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&verb, "fmt", "%v", "result formatting string")
	flag.StringVar(&cfgname, "config", "", "configuration file (default infix.yaml if present)")
	flag.StringVar(&mode, "mode", "", "result type: math, logic, or any")
	flag.StringVar(&locale, "locale", "", "language tag selecting the decimal separator")
	flag.StringVar(&cmp, "cmp", "", "function name matching: ordinal, ignorecase, culture, or cultureignorecase")
	flag.StringVar(&tabname, "tables", "", "YAML file of lookup tables to use as functions")
	flag.Func("given", "name=value variable definition, available as v.name (any number of times)", addwith)
	flag.BoolVar(&nl, "n", false, "parse separate input lines as separate expressions")
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.BoolVar(&interactive, "i", false, "start an interactive session")
	flag.BoolVar(&nostd, "nostd", false, "disable the standard functions")
	flag.Parse()

	cfg, err := config.Load(cfgname)
	if err != nil {
		log.Fatal(err)
	}
	// Flags override the configuration file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			cfg.Mode = mode
		case "locale":
			cfg.Locale = locale
		case "cmp":
			cfg.Compare = cmp
		case "tables":
			cfg.Tables = tabname
		case "nostd":
			cfg.Standard = !nostd
		}
	})
	lg, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer lg.Sync()

	ctx, tab, err := newContext(cfg)
	if err != nil {
		log.Fatal(err)
	}
	opts := []infix.ParseOption{infix.WithContext(ctx), infix.WithLogger(lg)}

	vars := make(map[string]float64, len(with))
	for _, d := range with {
		v, err := infix.EvalString(d[1], opts...)
		if err != nil {
			log.Fatalf("setting %s: %v", d[0], err)
		}
		if v.Type != infix.TypeNumber {
			log.Fatalf("setting %s: %s is not a number", d[0], d[1])
		}
		vars[d[0]] = v.Num
	}

	args := flag.Args()
	if len(args) > 0 && args[0] == "serve" {
		fs := flag.NewFlagSet("serve", flag.ExitOnError)
		fs.StringVar(&addr, "addr", cfg.Server.Addr, "address to listen on")
		fs.Parse(args[1:])
		cfg.Server.Addr = addr
		if err := serve(cfg, ctx, tab, lg); err != nil {
			log.Fatal(err)
		}
		return
	}

	if interactive {
		p, err := infix.NewParser1[map[string]float64, infix.Value](infix.MapParam("v"), opts...)
		if err != nil {
			log.Fatal(err)
		}
		s := repl.NewSession(p, vars, os.Stdout)
		hist := ""
		if dir, err := os.UserCacheDir(); err == nil {
			hist = filepath.Join(dir, "infix_history")
		}
		if err := repl.Run(s, hist); err != nil {
			log.Fatal(err)
		}
		return
	}

	ev, err := newEvaluator(cfg.Mode, verb, opts...)
	if err != nil {
		log.Fatal(err)
	}
	srcs, err := sources(inname, args, nl)
	if err != nil {
		log.Fatal(err)
	}
	failed := false
	for _, src := range srcs {
		f, err := ev.parse(src)
		if err != nil {
			failed = true
			var ie infix.InputError
			if errors.As(err, &ie) {
				fmt.Fprintln(os.Stderr, infix.Caret(src, ie))
			}
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if echo {
			t, _ := ev.explain(src)
			fmt.Printf("%s : ", t)
		}
		fmt.Println(f(vars))
	}
	if failed {
		os.Exit(1)
	}
}

// newContext creates the parser context described by cfg.
func newContext(cfg *config.Config) (*infix.Context, tables.Tables, error) {
	var opts []infix.ContextOption
	if cfg.Locale != "" {
		tag, err := language.Parse(cfg.Locale)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, infix.Locale(tag))
	}
	if cfg.Compare != "" {
		c, ok := infix.ParseComparison(cfg.Compare)
		if !ok {
			return nil, nil, fmt.Errorf("unknown comparison %q", cfg.Compare)
		}
		opts = append(opts, infix.Compare(c))
	}
	ctx, err := infix.NewContext(opts...)
	if err != nil {
		return nil, nil, err
	}
	var tab tables.Tables
	if cfg.Tables != "" {
		tab, err = tables.Load(cfg.Tables)
		if err != nil {
			return nil, nil, err
		}
	}
	if err := tab.Install(ctx, cfg.Standard); err != nil {
		return nil, nil, err
	}
	return ctx, tab, nil
}

// sources collects the expressions to evaluate.
func sources(inname string, args []string, nl bool) ([]string, error) {
	var srcs []string
	in, err := infile(inname, len(args) == 0)
	if err != nil {
		return nil, err
	}
	if in != nil {
		if nl {
			sc := bufio.NewScanner(in)
			for sc.Scan() {
				if strings.TrimSpace(sc.Text()) != "" {
					srcs = append(srcs, sc.Text())
				}
			}
			if err := sc.Err(); err != nil {
				return nil, err
			}
		} else {
			b, err := io.ReadAll(in)
			if err != nil {
				return nil, err
			}
			srcs = append(srcs, string(b))
		}
	}
	return append(srcs, args...), nil
}

func infile(inname string, std bool) (io.Reader, error) {
	switch {
	case inname != "" && inname != "-":
		return os.Open(inname)
	case inname == "-", std:
		return os.Stdin, nil
	}
	return nil, nil
}

// serve runs the HTTP evaluator until interrupted, reloading tables when
// their file changes.
func serve(cfg *config.Config, ctx *infix.Context, tab tables.Tables, lg *zap.Logger) error {
	sc := server.Config{
		Addr:      cfg.Server.Addr,
		Rate:      cfg.Server.Rate,
		Burst:     cfg.Server.Burst,
		CacheSize: cfg.Server.CacheSize,
		Standard:  cfg.Standard,
	}
	s, err := server.New(sc, ctx, lg)
	if err != nil {
		return err
	}
	sig, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if cfg.Tables != "" {
		w, err := tables.Watch(sig, cfg.Tables, lg, func(t tables.Tables) {
			if err := s.SetTables(t); err != nil {
				lg.Warn("tables not installed", zap.Error(err))
			}
		})
		if err != nil {
			return err
		}
		defer w.Close()
	}
	lg.Info("serving", zap.String("addr", sc.Addr), zap.Strings("tables", tab.Names()))
	return s.Run(sig)
}
