package main

import (
	"flag"
	"os"
	"time"

	"github.com/Garsondee/Artillery-Duel/internal/config"
	"github.com/Garsondee/Artillery-Duel/internal/duel"
	"github.com/Garsondee/Artillery-Duel/internal/game"
	"github.com/Garsondee/Artillery-Duel/internal/logging"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configDir := flag.String("config", ".", "directory containing "+config.FileName)
	seed := flag.Int64("seed", 0, "RNG seed (0 picks one from the clock)")
	watch := flag.Bool("watch", false, "let the computer play both sides")
	flag.Parse()

	settings, err := config.Load(*configDir)
	log := logging.New(settings.LogLevel, os.Stderr, true)
	if err != nil {
		log.Fatal().Err(err).Msg("loading settings")
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	sides := []duel.Side{duel.SideB}
	if *watch {
		sides = append(sides, duel.SideA)
	}
	d, err := duel.New(settings.Duel,
		duel.WithLogger(log),
		duel.WithSeed(*seed),
		duel.WithAutopilot(sides...),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("starting duel")
	}
	log.Info().Int64("seed", *seed).Bool("watch", *watch).Msg("duel ready")

	ebiten.SetWindowTitle("Artillery Duel")
	ebiten.SetWindowSize(settings.Duel.Width*2, settings.Duel.Height*2)
	if err := ebiten.RunGame(game.New(d, log)); err != nil {
		log.Fatal().Err(err).Msg("game exited")
	}
}
