package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"

	"github.com/Garsondee/Artillery-Duel/internal/config"
	"github.com/Garsondee/Artillery-Duel/internal/duel"
	"github.com/Garsondee/Artillery-Duel/internal/logging"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// tickChunk is how many ticks a run advances between cancellation checks.
const tickChunk = 500

type runStats struct {
	runIndex int
	seed     int64
	ticks    int

	rounds    int
	scores    [2]int
	shots     [2]int
	hits      [2]int
	terrain   [2]int
	outOfBnds [2]int
	falls     [2]int

	firstHitRound int
	firstHitTick  int

	decisions int
	missSum   float64
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var configDir string
	var jsonLogs bool
	var parallel int

	flag.IntVar(&runs, "runs", 5, "number of headless duels")
	flag.IntVar(&ticks, "ticks", 20000, "ticks per duel")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&configDir, "config", ".", "directory containing "+config.FileName)
	flag.BoolVar(&jsonLogs, "json", false, "log as JSON instead of console lines")
	flag.IntVar(&parallel, "parallel", 4, "duels to run concurrently")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		os.Exit(2)
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		os.Exit(2)
	}
	if parallel <= 0 {
		parallel = 1
	}

	settings, err := config.Load(configDir)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
	log := logging.New(settings.LogLevel, os.Stderr, !jsonLogs)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("=== Headless Duel Report ===\n")
	fmt.Printf("runs=%d ticks=%d seed_base=%d seed_step=%d parallel=%d field=%dx%d\n\n",
		runs, ticks, seedBase, seedStep, parallel, settings.Duel.Width, settings.Duel.Height)

	all, err := runAll(ctx, settings.Duel, log, runs, ticks, seedBase, seedStep, parallel)
	if err != nil {
		log.Error().Err(err).Msg("report aborted")
		os.Exit(1)
	}
	for _, rs := range all {
		printRun(rs)
		log.Info().
			Int("run", rs.runIndex).
			Int64("seed", rs.seed).
			Int("rounds", rs.rounds).
			Int("scoreA", rs.scores[duel.SideA]).
			Int("scoreB", rs.scores[duel.SideB]).
			Float64("meanMiss", rs.meanMiss()).
			Msg("run complete")
	}
	printAggregate(all)
}

// runAll plays every duel, at most parallel at a time. Results keep run order.
func runAll(ctx context.Context, cfg duel.Config, log zerolog.Logger, runs, ticks int, seedBase, seedStep int64, parallel int) ([]runStats, error) {
	all := make([]runStats, runs)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		g.Go(func() error {
			rs, err := runDuel(ctx, cfg, log.With().Int("run", i+1).Logger(), i+1, seed, ticks)
			if err != nil {
				return fmt.Errorf("run %d (seed %d): %w", i+1, seed, err)
			}
			all[i] = rs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return all, nil
}

func runDuel(ctx context.Context, cfg duel.Config, log zerolog.Logger, runIndex int, seed int64, ticks int) (runStats, error) {
	ts, err := duel.NewTestSim(
		duel.WithConfig(cfg),
		duel.WithSimSeed(seed),
		duel.WithSimLogger(log),
	)
	if err != nil {
		return runStats{}, err
	}
	for done := 0; done < ticks; done += tickChunk {
		if err := ctx.Err(); err != nil {
			return runStats{}, err
		}
		ts.RunTicks(min(tickChunk, ticks-done))
	}

	rs := summarize(ts.SimLog.Entries())
	rs.runIndex = runIndex
	rs.seed = seed
	rs.ticks = ticks
	rs.rounds = ts.Duel.Rounds()
	rs.scores = ts.Duel.Scores()
	return rs, nil
}

func sideIndex(label string) (int, bool) {
	switch label {
	case duel.SideA.String():
		return int(duel.SideA), true
	case duel.SideB.String():
		return int(duel.SideB), true
	}
	return 0, false
}

// summarize folds a duel's event log into per-side counters.
func summarize(entries []duel.SimLogEntry) runStats {
	rs := runStats{firstHitRound: -1, firstHitTick: -1}
	for _, e := range entries {
		s, ok := sideIndex(e.Side)
		if !ok {
			continue
		}
		switch e.Category {
		case "shot":
			if e.Key == "fire" {
				rs.shots[s]++
			}
		case "impact":
			switch e.Key {
			case duel.HitTarget.String():
				rs.hits[s]++
				if rs.firstHitRound < 0 {
					rs.firstHitRound, rs.firstHitTick = e.Round, e.Tick
				}
			case duel.HitTerrain.String():
				rs.terrain[s]++
			case duel.OutOfBounds.String():
				rs.outOfBnds[s]++
			}
		case "tank":
			if e.Key == "fell" {
				rs.falls[s]++
			}
		case "ai":
			if e.Key == "decision" {
				rs.decisions++
				rs.missSum += math.Sqrt(e.NumVal)
			}
		}
	}
	return rs
}

func (rs runStats) meanMiss() float64 {
	if rs.decisions == 0 {
		return 0
	}
	return rs.missSum / float64(rs.decisions)
}

func hitRate(hits, shots int) string {
	if shots == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", float64(hits)/float64(shots)*100)
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("rounds=%d score: A=%d B=%d\n", rs.rounds, rs.scores[duel.SideA], rs.scores[duel.SideB])
	for s := duel.SideA; s <= duel.SideB; s++ {
		fmt.Printf("side %s: shots=%d hits=%d terrain=%d out=%d fell=%d hit_rate=%s\n",
			s, rs.shots[s], rs.hits[s], rs.terrain[s], rs.outOfBnds[s], rs.falls[s], hitRate(rs.hits[s], rs.shots[s]))
	}
	if rs.firstHitRound >= 0 {
		fmt.Printf("first_hit: round=%d tick=%d\n", rs.firstHitRound, rs.firstHitTick)
	} else {
		fmt.Println("first_hit: none")
	}
	fmt.Printf("ai: decisions=%d mean_predicted_miss=%.1fpx\n", rs.decisions, rs.meanMiss())
	fmt.Println()
}

func printAggregate(all []runStats) {
	var shots, hits, terrain, out [2]int
	var rounds, decisions int
	var missSum float64
	firstHits := make([]int, 0, len(all))
	for _, rs := range all {
		for s := range shots {
			shots[s] += rs.shots[s]
			hits[s] += rs.hits[s]
			terrain[s] += rs.terrain[s]
			out[s] += rs.outOfBnds[s]
		}
		rounds += rs.rounds
		decisions += rs.decisions
		missSum += rs.missSum
		if rs.firstHitRound == 1 {
			firstHits = append(firstHits, rs.firstHitTick)
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d avg_rounds=%.1f\n", len(all), avg(rounds, len(all)))
	for s := duel.SideA; s <= duel.SideB; s++ {
		fmt.Printf("side %s: avg_shots=%.1f avg_hits=%.1f avg_terrain=%.1f avg_out=%.1f hit_rate=%s\n",
			s, avg(shots[s], len(all)), avg(hits[s], len(all)), avg(terrain[s], len(all)), avg(out[s], len(all)),
			hitRate(hits[s], shots[s]))
	}
	fmt.Printf("first_round_hit_avg_tick=%s\n", avgTickString(firstHits))
	if decisions > 0 {
		fmt.Printf("ai_mean_predicted_miss=%.1fpx over %d decisions\n", missSum/float64(decisions), decisions)
	}
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
