package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/peterbourgon/ff/v3"

	"github.com/HammadMal/STRP-1/internal/coursefile"
	"github.com/HammadMal/STRP-1/internal/engine"
	"github.com/HammadMal/STRP-1/internal/grid"
	"github.com/HammadMal/STRP-1/internal/identity"
	"github.com/HammadMal/STRP-1/internal/locate"
	"github.com/HammadMal/STRP-1/internal/util"
)

type options struct {
	asJSON     bool
	workers    int
	remote     string
	checkNames bool
	engine     engine.Config
}

func main() {

	fs := flag.NewFlagSet("strp", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: strp [flags] <workbook.xlsx | folder>...\n\n")
		fs.PrintDefaults()
	}
	var (
		_          = fs.String("config", "", "config file (optional), json format.")
		asJSON     = fs.Bool("json", false, "print reports as json instead of tables")
		workers    = fs.Int("workers", 4, "number of workbooks processed at once")
		remote     = fs.String("remote", "", "address of a running strp-service (host:port), workbooks are scored there instead of locally")
		domain     = fs.String("domain", identity.DefaultDomain, "mail domain appended to canonical student ids")
		fallback   = fs.Int("anchor-fallback-row", locate.NoFallback, "row to treat as the module row when no Modules anchor is found, -1 to fail instead")
		shortRow   = fs.Int("short-row-limit", grid.DefaultShortRowLimit, "rows with this many characters or fewer are dropped")
		checkNames = fs.Bool("check-names", true, "skip workbooks not named SEMESTER-DEPT-COURSE-SECTION.xlsx")
		verbose    = fs.Bool("v", false, "log every skipped cell")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.JSONParser),
		ff.WithEnvVarPrefix("STRP"),
	); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(2)
	}

	// stdout carries the reports
	log.SetOutput(os.Stderr)
	lg := log.New("strp")
	lg.SetOutput(os.Stderr)
	lg.SetLevel(log.ERROR)
	if *verbose {
		lg.SetLevel(log.INFO)
	}

	cfg := engine.DefaultConfig()
	cfg.EmailDomain = *domain
	cfg.Locate.FallbackAnchorRow = *fallback
	cfg.Clean.ShortRowLimit = *shortRow
	cfg.Logger = lg

	opts := options{
		asJSON:     *asJSON,
		workers:    *workers,
		remote:     *remote,
		checkNames: *checkNames,
		engine:     cfg,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(run(ctx, fs.Args(), opts, os.Stdout, os.Stderr))

}

//
// run processes every workbook named by args and returns the exit
// status: 0 when all succeeded, 1 when any input was rejected or
// failed to score.
//
func run(ctx context.Context, args []string, opts options, stdout, stderr io.Writer) int {
	defer util.TimeTrack(time.Now(), "strp batch")

	files, err := collect(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	rejected := 0
	if opts.checkNames {
		b := coursefile.Check(files)
		if len(b.Invalid) > 0 {
			fmt.Fprint(stderr, b.Summary())
		}
		files, rejected = b.Valid, len(b.Invalid)
	}
	if len(files) == 0 {
		fmt.Fprintln(stderr, "no workbooks to process")
		return 1
	}

	score := localScorer(engine.New(opts.engine))
	if opts.remote != "" {
		score = remoteScorer(opts.remote)
	}
	results := runBatch(ctx, files, opts.workers, score)

	if opts.asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	} else {
		printResults(stdout, results)
	}
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(stderr, "%s: %s\n", r.Path, r.Error)
		}
	}

	if rejected > 0 || failures(results) > 0 {
		return 1
	}
	return 0
}
