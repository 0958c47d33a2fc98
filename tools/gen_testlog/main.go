// gen_testlog generates synthetic PokerStars-style hand-history files for
// testing and benchmarking the parser.
//
// Usage:
//
//	go run ./tools/gen_testlog [flags]
//
// Flags:
//
//	--output-dir  where to write generated files (default: "./testdata/generated")
//	--files       number of files to generate (default: 10)
//	--hands       hands per file (default: 200)
//	--seed        random seed; 0 = use current time (default: 0)
//	--start-date  base date for timestamps, YYYY-MM-DD (default: 2025-01-01)
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cardstream/pokertracker/internal/poker"
)

var names = []string{"Alice", "Bob", "Carol", "Dave", "Erin", "Frank"}

func main() {
	outputDir := flag.String("output-dir", "./testdata/generated", "output directory")
	files := flag.Int("files", 10, "number of files")
	hands := flag.Int("hands", 200, "hands per file")
	seed := flag.Int64("seed", 0, "random seed, 0 = current time")
	startDate := flag.String("start-date", "2025-01-01", "base date YYYY-MM-DD")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	base, err := time.Parse("2006-01-02", *startDate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad start date: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create output dir: %v\n", err)
		os.Exit(1)
	}

	handID := int64(240000000001)
	ts := base
	for f := 0; f < *files; f++ {
		var sb strings.Builder
		for i := 0; i < *hands; i++ {
			sb.WriteString(genHand(rng, handID, ts))
			sb.WriteString("\n\n")
			handID++
			ts = ts.Add(time.Duration(30+rng.Intn(120)) * time.Second)
		}
		path := filepath.Join(*outputDir, fmt.Sprintf("session_%03d.txt", f))
		if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", path, err)
			os.Exit(1)
		}
	}
	fmt.Printf("generated %d files x %d hands (seed %d) in %s\n", *files, *hands, *seed, *outputDir)
}

func genHand(rng *rand.Rand, id int64, ts time.Time) string {
	deck := poker.NewDeck(rng.Int63())
	deck.Shuffle()

	players := names[:2+rng.Intn(4)]
	hero := players[rng.Intn(len(players))]

	var sb strings.Builder
	fmt.Fprintf(&sb, "PokerStars Hand #%d: Hold'em No Limit (€0.01/€0.02 EUR) - %s CET\n",
		id, ts.Format("2006/01/02 15:04:05"))
	fmt.Fprintf(&sb, "Table 'Synthetic' 6-max Seat #1 is the button\n")
	for i, name := range players {
		fmt.Fprintf(&sb, "Seat %d: %s (€%.2f in chips)\n", i+1, name, 2.0+rng.Float64()*8)
	}
	if len(players) >= 2 {
		fmt.Fprintf(&sb, "%s: posts small blind €0.01\n", players[0])
		fmt.Fprintf(&sb, "%s: posts big blind €0.02\n", players[1])
	}

	sb.WriteString("*** HOLE CARDS ***\n")
	c1, _ := deck.Draw()
	c2, _ := deck.Draw()
	fmt.Fprintf(&sb, "Dealt to %s [%s %s]\n", hero, c1, c2)

	pot := 0.03
	raiser := players[rng.Intn(len(players))]
	raiseTo := 0.04 + float64(rng.Intn(6))*0.02
	fmt.Fprintf(&sb, "%s: raises €%.2f to €%.2f\n", raiser, raiseTo-0.02, raiseTo)
	pot += raiseTo
	caller := ""
	for _, name := range players {
		if name != raiser && rng.Intn(2) == 0 {
			caller = name
			fmt.Fprintf(&sb, "%s: calls €%.2f\n", name, raiseTo)
			pot += raiseTo
			break
		}
	}
	winner := raiser

	if caller != "" {
		f1, _ := deck.Draw()
		f2, _ := deck.Draw()
		f3, _ := deck.Draw()
		fmt.Fprintf(&sb, "*** FLOP *** [%s %s %s]\n", f1, f2, f3)
		fmt.Fprintf(&sb, "%s: checks\n", raiser)
		fmt.Fprintf(&sb, "%s: checks\n", caller)
		if rng.Intn(2) == 0 {
			winner = caller
		}
	} else {
		fmt.Fprintf(&sb, "Uncalled bet (€%.2f) returned to %s\n", raiseTo-0.02, raiser)
		pot -= raiseTo - 0.02
	}

	rake := 0.0
	if pot >= 0.10 {
		rake = 0.01
	}
	sb.WriteString("*** SUMMARY ***\n")
	fmt.Fprintf(&sb, "Total pot €%.2f | Rake €%.2f\n", pot, rake)
	fmt.Fprintf(&sb, "%s collected (€%.2f)\n", winner, pot-rake)
	return sb.String()
}
