// SPDX-License-Identifier: Unlicense OR MIT

// Command underlaydemo runs underlay surfaces beneath an overlay tab
// bar in a terminal. Mouse input goes through the same arbitration as
// touch input on a device: the surface scrolls while dragged, and a
// press on the tab bar claims the pointer away from it.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"gioui.org/x/underlay/app"
	"gioui.org/x/underlay/io/command"
	"gioui.org/x/underlay/io/system"
)

var (
	configPath = flag.String("config", "surfaces.toml", "surface configuration file")
	logPath    = flag.String("log", "", "write log output to file")
)

func main() {
	flag.Parse()
	if err := mainErr(); err != nil {
		fmt.Fprintf(os.Stderr, "underlaydemo: %v\n", err)
		os.Exit(1)
	}
}

func mainErr() error {
	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	logger := log.New(io.Discard, "", 0)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		logger = log.New(f, "underlaydemo: ", log.LstdFlags)
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.EnableFocus()

	d := newDemo(screen, cfg, logger)
	return d.run()
}

type demo struct {
	screen tcell.Screen
	host   *app.Host
	stack  *stack
	tabs   *tabBar
	mouse  mouse
	logger *log.Logger
}

var errQuit = errors.New("quit")

func newDemo(screen tcell.Screen, cfg *config, logger *log.Logger) *demo {
	d := &demo{
		screen: screen,
		stack:  newStack(),
		logger: logger,
		mouse:  mouse{start: time.Now()},
	}
	var invoke func(command.Call) (interface{}, error)
	d.tabs = newTabBar(cfg.Surfaces, func(c command.Call) (interface{}, error) {
		return invoke(c)
	}, logger)
	d.host = app.NewHost(
		app.Overlay(d.tabs),
		app.Logger(logger),
		app.CancelOnDisable(cfg.CancelOnDisable),
	)
	invoke = d.host.Invoke
	for _, s := range cfg.Surfaces {
		d.host.RegisterFactory(s.Key, newListView(s, logger))
	}
	d.host.Attach(screen, d.stack)
	return d
}

func (d *demo) run() error {
	defer d.shutdown()
	d.host.Broadcast(system.StageEvent{Stage: system.StageStarted})
	d.host.Broadcast(system.StageEvent{Stage: system.StageResumed})
	if len(d.tabs.tabs) > 0 {
		d.tabs.show(d.tabs.tabs[0].Key)
	}
	d.draw()
	for {
		ev := d.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if err := d.handle(ev); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			return err
		}
		d.draw()
	}
}

func (d *demo) handle(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		if e, ok := d.mouse.convert(ev); ok {
			d.host.DispatchPointer(e)
		}
	case *tcell.EventFocus:
		if ev.Focused {
			d.host.Broadcast(system.StageEvent{Stage: system.StageResumed})
		} else {
			d.host.Broadcast(system.StageEvent{Stage: system.StagePaused})
		}
	case *tcell.EventResize:
		d.screen.Sync()
	case *tcell.EventKey:
		return d.key(ev)
	}
	return nil
}

func (d *demo) key(ev *tcell.EventKey) error {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		return errQuit
	}
	if ev.Key() != tcell.KeyRune {
		return nil
	}
	active, _ := d.host.Registry().ActiveKey()
	switch r := ev.Rune(); r {
	case 'q':
		return errQuit
	case 'g':
		enabled := d.host.Arbiter().Enabled()
		_, err := d.host.Invoke(command.Call{
			Method: command.SetArbitrationEnabled,
			Args:   map[string]interface{}{command.ArgEnabled: !enabled},
		})
		return err
	case 'h', 'x':
		if active == "" {
			return nil
		}
		method := command.HideSurface
		if r == 'x' {
			method = command.RemoveSurface
		}
		_, err := d.host.Invoke(command.Call{
			Method: method,
			Args:   map[string]interface{}{command.ArgKey: active},
		})
		return err
	case 'm':
		d.host.Broadcast(system.LowMemoryEvent{})
	default:
		if i := int(r - '1'); i >= 0 && i < len(d.tabs.tabs) {
			d.tabs.show(d.tabs.tabs[i].Key)
		}
	}
	return nil
}

func (d *demo) shutdown() {
	d.host.Broadcast(system.StageEvent{Stage: system.StagePaused})
	d.host.Broadcast(system.StageEvent{Stage: system.StageStopped})
	state := make(map[string][]byte)
	d.host.Broadcast(system.SaveStateEvent{State: state})
	for k, v := range state {
		d.logger.Printf("saved %s: %s", k, v)
	}
	d.host.Destroy()
}

func (d *demo) draw() {
	s := d.screen
	s.Clear()
	width, height := s.Size()
	if l := d.stack.top(); l != nil {
		l.draw(s, width, height-1)
	}
	active, _ := d.host.Registry().ActiveKey()
	d.tabs.draw(s, width, active)
	arb := "on"
	if !d.host.Arbiter().Enabled() {
		arb = "off"
	}
	if active == "" {
		active = "none"
	}
	status := fmt.Sprintf(" arbitration %s | active %s | 1-%d show  g toggle  h hide  x remove  m low memory  q quit",
		arb, active, len(d.tabs.tabs))
	style := tcell.StyleDefault.Reverse(true)
	for x := 0; x < width; x++ {
		s.SetContent(x, height-1, ' ', nil, style)
	}
	drawText(s, 0, height-1, style, status)
	s.Show()
}
