package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/canyon-defense/core"
	"github.com/lixenwraith/canyon-defense/engine"
	"github.com/lixenwraith/canyon-defense/indicator"
	"github.com/lixenwraith/canyon-defense/input"
	"github.com/lixenwraith/canyon-defense/parameter"
	"github.com/lixenwraith/canyon-defense/render"
	"github.com/lixenwraith/canyon-defense/status"
)

func main() {
	if err := loadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "canyon-defense: %v\n", err)
		os.Exit(1)
	}

	cfg, err := resolveConfig(os.Args[1:], os.Getenv, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "canyon-defense: %v\n", err)
		os.Exit(1)
	}

	logFile := setupLogging(cfg.debug)
	if logFile != nil {
		defer logFile.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	// Crash handler restores the terminal for every core.Go task and the main goroutine
	core.SetCrashReset(screen.Fini)
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	runErr := run(screen, cfg)
	screen.Fini()
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "canyon-defense: %v\n", runErr)
		os.Exit(1)
	}
}

// run wires every task to one session and serves terminal events until quit
func run(screen tcell.Screen, cfg *appConfig) error {
	width, _ := screen.Size()
	c, err := parameter.BuildWithOverrides(cfg.preset, float64(width), cfg.overrides)
	if err != nil {
		return err
	}

	seed := cfg.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	reg := status.NewRegistry()
	session := engine.NewSession(c)
	sampler := input.NewSampler(nil, input.DefaultHoldWindow)
	keyboard := input.NewKeyboard(cfg.keys, sampler)

	eng, err := engine.NewEngine(session, sampler, reg, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}

	leds := render.NewLEDPanel()
	renderer := render.NewTerminalRenderer(screen, session, c, leds, reg)
	chargeLED := indicator.New("led-charge", &leds.Charge, session, c, indicator.ChargePattern)
	evacLED := indicator.New("led-evac", &leds.Evac, session, c, indicator.EvacuationPattern)

	schedulers := []*engine.ClockScheduler{
		eng.NewScheduler(),
		engine.NewClockScheduler("slider", c.SliderPeriod(), sampler.SampleSlider, nil),
		renderer.NewScheduler(),
		chargeLED.NewScheduler(),
		evacLED.NewScheduler(),
	}

	stop := make(chan struct{})
	var buttons sync.WaitGroup
	buttons.Add(1)
	core.Go(func() {
		defer buttons.Done()
		sampler.RunButtons(stop)
	})

	for _, s := range schedulers {
		s.Start()
	}
	defer func() {
		close(stop)
		for _, s := range schedulers {
			s.Stop()
		}
		buttons.Wait()
		log.Printf("shutdown: %s", reg.Summary())
	}()

	log.Printf("canyon-defense: preset %s, canyon %.1f, policy %s, seed %d",
		cfg.preset, c.Castle.CanyonSize, eng.Policy().Method(), seed)

	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			// Screen finalized
			return nil
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			switch keyboard.HandleKey(ev) {
			case input.ActionStart:
				if !session.Active() {
					keyboard.Reset()
					session.Start()
				}
			case input.ActionQuit:
				return nil
			case input.ActionDebug:
				renderer.ToggleDebug()
			}
		}
	}
}
