// Command simulate runs one or more matches between two configurable
// policies and reports the outcome, following the teacher's main2.go
// idiom: the stdlib flag package, no subcommands, a single run-then-
// report main body.
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"scrimmage/bench"
	"scrimmage/dice"
	"scrimmage/game"
	"scrimmage/macro"
	"scrimmage/meta"
	"scrimmage/roster"
	"scrimmage/searcher"
	"scrimmage/simulator"
)

func main() {
	homeKind := flag.String("home", "random", "home policy: random, greedy, mcts, macro_mcts")
	awayKind := flag.String("away", "random", "away policy: random, greedy, mcts, macro_mcts")
	homeRoster := flag.String("home-roster", "Humans", "home team roster name")
	awayRoster := flag.String("away-roster", "Orcs", "away team roster name")
	games := flag.Int("games", 1, "number of matches to run")
	goroutines := flag.Int("goroutines", meta.GoRoutines, "search goroutines, for mcts policies")
	episodes := flag.Int("episodes", meta.Episodes, "search episodes per decision, for mcts policies")
	duration := flag.Duration("time", 0, "search time budget per decision, overrides episodes if nonzero")
	exploration := flag.Float64("exploration", 0, "PUCT exploration constant override for the mcts policy, 0 keeps the searcher's default")
	seed := flag.Uint64("seed", 1, "dice and search RNG seed")
	outDir := flag.String("out", "", "if set, write a CSV batch report to this directory via the bench package")
	verbose := flag.Bool("verbose", false, "log each match's index as it starts")
	flag.Parse()

	rosters := roster.CreateRosters()
	home, ok := rosters[*homeRoster]
	if !ok {
		log.Fatal().Str("roster", *homeRoster).Msg("simulate: unknown home roster")
	}
	away, ok := rosters[*awayRoster]
	if !ok {
		log.Fatal().Str("roster", *awayRoster).Msg("simulate: unknown away roster")
	}

	records := bench.RunMatches(*games, *homeKind, *awayKind, func(id int) *simulator.Match {
		homePolicy := buildPolicy(*homeKind, *goroutines, *episodes, *duration, *exploration, *seed+uint64(id)*2)
		awayPolicy := buildPolicy(*awayKind, *goroutines, *episodes, *duration, *exploration, *seed+uint64(id)*2+1)

		var sink game.Events
		source := dice.NewSeeded(*seed + uint64(id))
		match := simulator.New(home, away, homePolicy, awayPolicy, roster.OffensiveFourOnLOS, source, &sink)

		if *verbose {
			log.Info().Int("game", id).Msg("simulate: starting match")
		}
		return match
	})

	if *outDir != "" {
		writer, err := bench.NewWriter(*outDir)
		if err != nil {
			log.Fatal().Err(err).Msg("simulate: failed to create report writer")
		}
		if err := writer.WriteGameRecords(records); err != nil {
			log.Fatal().Err(err).Msg("simulate: failed to write report")
		}
	}

	report(records)
}

func buildPolicy(kind string, goroutines, episodes int, duration time.Duration, exploration float64, seed uint64) simulator.Policy {
	switch kind {
	case "random":
		return simulator.RandomPolicy{}
	case "greedy":
		return simulator.NewGreedyPolicy(nil)
	case "mcts":
		opts := []searcher.Option{searcher.WithSeed(seed), searcher.WithExploration(exploration)}
		if duration > 0 {
			opts = append(opts, searcher.WithDuration(duration))
		} else {
			opts = append(opts, searcher.WithEpisodes(episodes))
		}
		return simulator.NewMCTSPolicy(searcher.New(goroutines, opts...))
	case "macro_mcts":
		return macro.NewMCTSPolicy(nil, episodes, seed)
	default:
		log.Fatal().Str("policy", kind).Msg("simulate: unknown policy kind")
		return nil
	}
}

func report(records []bench.GameRecord) {
	var homeWins, awayWins, draws int
	for _, r := range records {
		switch {
		case !r.Decided:
			draws++
		case r.Winner == "home":
			homeWins++
		case r.Winner == "away":
			awayWins++
		}
	}

	fmt.Printf("%d games: home %d, away %d, draws %d\n", len(records), homeWins, awayWins, draws)
	fmt.Printf("throughput: %.1f decisions/sec\n", bench.Throughput(records))
}
