package main

import (
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/bossrush/internal/arena"
	"github.com/tomz197/bossrush/internal/boss"
	"github.com/tomz197/bossrush/internal/config"
)

const defaultMaxGameTime = 10 * time.Minute

type batchConfig struct {
	Runs         int
	Workers      int
	StartWave    int
	Waves        int
	BossInterval int
	MaxGameTime  time.Duration
	Seed         int64
	Tables       *config.TableSource
	// Resume restores the first boss of every run.
	Resume *boss.Snapshot
	Logger *log.Logger
}

type runResult struct {
	Win            bool
	TimedOut       bool
	Wave           int
	Score          int
	BossesDefeated int
	GameTime       time.Duration
	// DiedToTier is the tier of the boss alive at death, 0 if none.
	DiedToTier int
}

type summary struct {
	Runs           int         `json:"runs"`
	Wins           int         `json:"wins"`
	Timeouts       int         `json:"timeouts"`
	WinRate        float64     `json:"win_rate"`
	AvgWave        float64     `json:"avg_wave"`
	AvgScore       float64     `json:"avg_score"`
	AvgGameSeconds float64     `json:"avg_game_seconds"`
	BossesDefeated int         `json:"bosses_defeated"`
	DeathsByTier   map[int]int `json:"deaths_by_tier"`
}

// runBatch fans the runs out over a worker pool. Each worker owns its arena
// for the whole run; only the tables are shared.
func runBatch(cfg batchConfig) summary {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}

	sum := summary{Runs: cfg.Runs, DeathsByTier: map[int]int{}}
	var mu sync.Mutex
	var wg sync.WaitGroup
	var waves, score int
	var gameTime time.Duration

	jobs := make(chan int, cfg.Runs)
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				res := simulate(cfg, i)

				mu.Lock()
				switch {
				case res.Win:
					sum.Wins++
				case res.TimedOut:
					sum.Timeouts++
				default:
					sum.DeathsByTier[res.DiedToTier]++
				}
				waves += res.Wave
				score += res.Score
				gameTime += res.GameTime
				sum.BossesDefeated += res.BossesDefeated
				mu.Unlock()
			}
		}()
	}
	for i := 0; i < cfg.Runs; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if cfg.Runs > 0 {
		n := float64(cfg.Runs)
		sum.WinRate = float64(sum.Wins) / n
		sum.AvgWave = float64(waves) / n
		sum.AvgScore = float64(score) / n
		sum.AvgGameSeconds = gameTime.Seconds() / n
	}
	return sum
}

// simulate plays run i to a win, a death or the time cap. The seed depends
// only on i, so a batch is reproducible regardless of worker count.
func simulate(cfg batchConfig, i int) runResult {
	seed := cfg.Seed + int64(i)*7919
	d, err := arena.New(arena.Options{
		Tables:       cfg.Tables,
		BossInterval: cfg.BossInterval,
		StartWave:    cfg.StartWave,
		Rand:         rand.New(rand.NewSource(seed)),
		Logger:       cfg.Logger.With("run", i),
		Resume:       cfg.Resume,
	})
	if err != nil {
		cfg.Logger.Error("create arena", "run", i, "err", err)
		return runResult{}
	}
	pilot := arena.NewAutopilot(rand.New(rand.NewSource(seed + 1)))

	res := runResult{}
	for {
		d.Tick(pilot.Intent(d))
		d.DrainEvents()
		pilot.ChooseUpgrade(d)

		if d.Stage() == arena.StageGameOver {
			if b := d.Boss(); b != nil {
				res.DiedToTier = b.Tier
			}
			break
		}
		if d.Stage() == arena.StageIntermission && d.Wave()-cfg.StartWave >= cfg.Waves {
			res.Win = true
			break
		}
		if d.Now() >= cfg.MaxGameTime {
			res.TimedOut = true
			break
		}
	}
	res.Wave = d.Wave()
	res.Score = d.Score()
	res.BossesDefeated = d.BossesDefeated()
	res.GameTime = d.Now()
	return res
}
