package main

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/Garsondee/Artillery-Duel/internal/duel"
	"github.com/rs/zerolog"
)

func TestSummarize_CountsPerSide(t *testing.T) {
	entries := []duel.SimLogEntry{
		{Round: 1, Tick: 1, Side: "--", Category: "round", Key: "start"},
		{Round: 1, Tick: 60, Side: "A", Category: "shot", Key: "fire"},
		{Round: 1, Tick: 140, Side: "A", Category: "impact", Key: "hit_terrain"},
		{Round: 1, Tick: 141, Side: "B", Category: "ai", Key: "decision", NumVal: 400},
		{Round: 1, Tick: 141, Side: "B", Category: "shot", Key: "fire"},
		{Round: 1, Tick: 230, Side: "B", Category: "impact", Key: "out_of_bounds"},
		{Round: 1, Tick: 231, Side: "A", Category: "ai", Key: "decision", NumVal: 0},
		{Round: 1, Tick: 231, Side: "A", Category: "shot", Key: "fire"},
		{Round: 1, Tick: 300, Side: "A", Category: "impact", Key: "hit_target"},
		{Round: 2, Tick: 40, Side: "B", Category: "tank", Key: "fell"},
		{Round: 3, Tick: 90, Side: "A", Category: "impact", Key: "hit_target"},
	}

	rs := summarize(entries)
	if rs.shots != [2]int{2, 1} {
		t.Fatalf("shots = %v", rs.shots)
	}
	if rs.hits != [2]int{2, 0} || rs.terrain != [2]int{1, 0} || rs.outOfBnds != [2]int{0, 1} {
		t.Fatalf("impacts hits=%v terrain=%v out=%v", rs.hits, rs.terrain, rs.outOfBnds)
	}
	if rs.falls != [2]int{0, 1} {
		t.Fatalf("falls = %v", rs.falls)
	}
	if rs.firstHitRound != 1 || rs.firstHitTick != 300 {
		t.Fatalf("first hit at round %d tick %d, want round 1 tick 300", rs.firstHitRound, rs.firstHitTick)
	}
	if rs.decisions != 2 || math.Abs(rs.meanMiss()-10) > 1e-9 {
		t.Fatalf("decisions=%d meanMiss=%v, want 2 and 10", rs.decisions, rs.meanMiss())
	}
}

func TestSummarize_NoHits(t *testing.T) {
	rs := summarize(nil)
	if rs.firstHitRound != -1 || rs.firstHitTick != -1 {
		t.Fatalf("expected no first hit, got round %d tick %d", rs.firstHitRound, rs.firstHitTick)
	}
	if rs.meanMiss() != 0 {
		t.Fatalf("meanMiss = %v with no decisions", rs.meanMiss())
	}
}

func TestHitRate(t *testing.T) {
	if got := hitRate(0, 0); got != "n/a" {
		t.Fatalf("hitRate(0,0) = %q", got)
	}
	if got := hitRate(1, 4); got != "25.0%" {
		t.Fatalf("hitRate(1,4) = %q", got)
	}
}

func TestAvgTickString(t *testing.T) {
	if got := avgTickString(nil); got != "n/a" {
		t.Fatalf("got %q", got)
	}
	if got := avgTickString([]int{10, 20}); got != "15.0" {
		t.Fatalf("got %q", got)
	}
}

func TestRunAll_KeepsRunOrder(t *testing.T) {
	all, err := runAll(context.Background(), duel.DefaultConfig(), zerolog.Nop(), 3, 1200, 42, 1, 2)
	if err != nil {
		t.Fatalf("runAll: %v", err)
	}
	for i, rs := range all {
		if rs.runIndex != i+1 || rs.seed != 42+int64(i) {
			t.Fatalf("slot %d holds run %d seed %d", i, rs.runIndex, rs.seed)
		}
		if rs.ticks != 1200 || rs.rounds < 1 {
			t.Fatalf("run %d: ticks=%d rounds=%d", rs.runIndex, rs.ticks, rs.rounds)
		}
	}
}

func TestRunDuel_StopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := runDuel(ctx, duel.DefaultConfig(), zerolog.Nop(), 1, 1, 10000)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
