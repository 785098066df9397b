// Command contractbench times repeated block contractions into one output
// buffer and prints the largest absolute entry of the final buffer.
//
// By default the output is never reset, so it ends up holding the sum of all
// iterations' contributions; -reset zeroes it before every call.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/katalvlaran/blockcontract/contract"
	"github.com/katalvlaran/blockcontract/internal/benchdata"
	"github.com/katalvlaran/blockcontract/matrix"
)

// DefaultIters is the default number of kernel invocations.
const DefaultIters = 1000000

var errBadFlags = errors.New("contractbench: iters and nodes must be >= 0")

type config struct {
	iters     int
	seed      int64
	nodes     int  // 0 selects the fixed fixture
	reset     bool // zero the output before every call
	unchecked bool // hot loop runs with contract.WithUncheckedShape
}

// result is what one run produced; main prints it, tests inspect it.
type result struct {
	out     *matrix.Dense
	peak    float64
	nodes   int
	elapsed time.Duration
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("contractbench", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&cfg.iters, "iters", DefaultIters, "number of kernel invocations")
	fs.Int64Var(&cfg.seed, "seed", 1, "seed for the random map (and random nodes)")
	fs.IntVar(&cfg.nodes, "nodes", 0, "number of random nodes (0 = fixed 10-node fixture)")
	fs.BoolVar(&cfg.reset, "reset", false, "zero the output before every invocation")
	fs.BoolVar(&cfg.unchecked, "unchecked", false, "skip the per-call shape check after validating once")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if cfg.iters < 0 || cfg.nodes < 0 {
		fs.PrintDefaults()
		return cfg, errBadFlags
	}

	return cfg, nil
}

// run builds the inputs from cfg, makes one checked call, then times
// cfg.iters calls through a single Contractor.
func run(cfg config) (result, error) {
	var res result

	rng := rand.New(rand.NewSource(cfg.seed))
	f := benchdata.RandomMat3(rng)

	a := benchdata.Fixture()
	if cfg.nodes > 0 {
		var err error
		if a, err = benchdata.RandomNodes(rng, cfg.nodes); err != nil {
			return res, fmt.Errorf("generate nodes: %w", err)
		}
	}

	dim := contract.OutputDim(a.Cols())
	out, err := matrix.NewDense(dim, dim)
	if err != nil {
		return res, fmt.Errorf("allocate output: %w", err)
	}

	// One checked call up front; the hot loop may then drop the check.
	if err = contract.NewContractor().Contract(out, f, a); err != nil {
		return res, fmt.Errorf("contract: %w", err)
	}
	out.Zero()

	var opts []contract.Option
	if cfg.unchecked {
		opts = append(opts, contract.WithUncheckedShape())
	}
	k := contract.NewContractor(opts...)

	start := time.Now()
	for i := 0; i < cfg.iters; i++ {
		if cfg.reset {
			out.Zero()
		}
		if err = k.Contract(out, f, a); err != nil {
			return res, fmt.Errorf("contract (iteration %d): %w", i, err)
		}
	}
	res.elapsed = time.Since(start)

	if res.peak, err = matrix.MaxAbs(out); err != nil {
		return res, fmt.Errorf("summarize: %w", err)
	}
	res.out, res.nodes = out, a.Cols()

	return res, nil
}

func report(w io.Writer, cfg config, res result) {
	fmt.Fprintf(w, "Output: %g\n", res.peak)
	fmt.Fprintf(w, "Nodes: %d, iterations: %d, elapsed: %s", res.nodes, cfg.iters, res.elapsed)
	if cfg.iters > 0 {
		fmt.Fprintf(w, " (%s/call)", res.elapsed/time.Duration(cfg.iters))
	}
	fmt.Fprintln(w)
}

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	res, err := run(cfg)
	if err != nil {
		log.Fatal(err)
	}
	report(os.Stdout, cfg, res)
}
