// cmd/ppiscope/main.go
// Copyright(c) 2024-2026 ppiscope contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// ppiscope draws a simulated PPI radar scope in the terminal: a single
// maneuverable target with an EPR-based blip signature, boiling sea
// clutter, a procedural coastline, and a fading position-history trail.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/peterbourgon/ff"
	"golang.org/x/sync/errgroup"

	"ppiscope/pkg/log"
	"ppiscope/pkg/renderer"
	"ppiscope/pkg/sim"
)

const redrawInterval = 100 * time.Millisecond
const statsInterval = 15 * time.Second

func main() {
	fs := flag.NewFlagSet("ppiscope", flag.ExitOnError)
	var (
		configPath = fs.String("config", "", "path to YAML config file")
		logLevel   = fs.String("loglevel", "info", "logging level: debug, info, warn, error")
		logDir     = fs.String("logdir", "", "directory to write log files to")
		tick       = fs.Duration("tick", 500*time.Millisecond, "kinematics tick interval")
		seed       = fs.Int64("seed", time.Now().UnixNano(), "random seed for target, clutter, and coastline")
	)
	ff.Parse(fs, os.Args[1:], ff.WithEnvVarNoPrefix())

	lg := log.New(*logLevel, *logDir)

	config, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "unable to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	session := sim.NewSession(config.Parameters(), *tick, *seed, lg)
	defer session.Destroy()

	w, h := screen.Size()
	session.OnSurfaceResized(w, h)

	if err := run(screen, session, lg); err != nil {
		screen.Fini()
		lg.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(screen tcell.Screen, session *sim.Session, lg *log.Logger) error {
	tty := NewTTYRenderer(screen, lg)
	defer tty.Dispose()

	sub := session.Events().Subscribe()
	defer sub.Unsubscribe()

	events := make(chan tcell.Event)
	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		// Pump terminal events; PollEvent returns nil once the screen
		// has been finalized, which is how quitting unblocks us.
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	g.Go(func() error {
		stats := Stats{startTime: time.Now()}
		var statusLine string

		redraw := time.NewTicker(redrawInterval)
		defer redraw.Stop()
		logStats := time.NewTicker(statsInterval)
		defer logStats.Stop()

		for {
			select {
			case <-ctx.Done():
				return ctx.Err()

			case ev := <-events:
				if quit := handleEvent(ev, screen, session, tty); quit {
					screen.Fini()
					return nil
				}

			case <-redraw.C:
				for _, ev := range sub.Get() {
					statusLine = ev.Message
				}

				cb := renderer.GetCommandBuffer()
				session.Render(cb)
				stats.draw.Merge(tty.RenderCommandBuffer(cb))
				renderer.ReturnCommandBuffer(cb)
				stats.redraws++

				tty.Present()
				drawOverlay(screen, session, statusLine)
				screen.Show()

			case <-logStats.C:
				lg.Info("stats", "stats", stats.LogValue(lg))
			}
		}
	})

	return g.Wait()
}

// handleEvent processes one terminal event and reports whether the
// application should quit.
func handleEvent(ev tcell.Event, screen tcell.Screen, session *sim.Session, tty *TTYRenderer) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		session.OnSurfaceResized(w, h)
		tty.Resize(w, h)
		screen.Sync()

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyUp:
			session.SetRange(session.Parameters().Range + 0.5)
		case tcell.KeyDown:
			session.SetRange(session.Parameters().Range - 0.5)
		case tcell.KeyLeft:
			session.SetBearing(session.Parameters().Bearing - 5)
		case tcell.KeyRight:
			session.SetBearing(session.Parameters().Bearing + 5)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return true
			case ' ':
				if session.Moving() {
					session.StopMovement()
				} else {
					session.StartMovement()
				}
			case 'r':
				session.RandomizeTarget()
			case 'c':
				session.RandomizeClutter()
			case 'n':
				session.RegenerateCoastline()
			case 't':
				session.SetShowTrails(!session.Parameters().ShowTrails)
			case 'l':
				session.SetShowCoastline(!session.Parameters().ShowCoastline)
			case 'f':
				session.SetShowDataBlock(!session.Parameters().ShowDataBlock)
			case '+', '=':
				session.SetEPR(session.Parameters().EPR + 0.5)
			case '-':
				session.SetEPR(session.Parameters().EPR - 0.5)
			case 'a':
				session.SetAspectAngle(session.Parameters().AspectAngle + 5)
			case 'A':
				session.SetAspectAngle(session.Parameters().AspectAngle - 5)
			}
		}
	}
	return false
}

// drawOverlay puts the target summary and the latest status message in
// the top-left corner, over the rendered frame.
func drawOverlay(screen tcell.Screen, session *sim.Session, statusLine string) {
	style := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	y := 0
	for _, line := range append(strings.Split(session.TargetInfo(), "\n"), statusLine) {
		x := 0
		for _, ch := range line {
			screen.SetContent(x, y, ch, nil, style)
			x++
		}
		y++
	}
}
