package patrol

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/df-mc/dragonfly/server"
	"github.com/df-mc/dragonfly/server/cmd"
	"github.com/df-mc/dragonfly/server/player"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/sandertv/gophertunnel/minecraft/text"
	"github.com/smell-of-curry/pokebedrock-patrol/patrol/command"
	"github.com/smell-of-curry/pokebedrock-patrol/patrol/internal"
	"github.com/smell-of-curry/pokebedrock-patrol/patrol/route"
	"github.com/smell-of-curry/pokebedrock-patrol/patrol/skins"
	"github.com/smell-of-curry/pokebedrock-patrol/patrol/status"
)

// Patrol represents the main server struct.
// It holds configuration, logging, and the patrolling NPCs of the world.
type Patrol struct {
	log  *slog.Logger
	conf Config

	srv   *server.Server
	skins *skins.Manager
	http  *http.Server

	c chan struct{}
}

// NewPatrol creates a new instance of Patrol.
func NewPatrol(log *slog.Logger, conf Config) (*Patrol, error) {
	skinManager := skins.NewManager(log, conf.Patrol.SkinPath)
	skinManager.Prompt = conf.Patrol.SkinPrompt
	if _, err := os.Stat(conf.Patrol.SkinPack); err == nil {
		if err = skinManager.Unpack(conf.Patrol.SkinPack); err != nil {
			log.Error("failed to unpack skin pack", "error", err)
		}
	}

	log.Info("Starting Server...")

	c, err := conf.UserConfig.Config(log)
	if err != nil {
		return nil, err
	}

	p := &Patrol{
		log:  log,
		conf: conf,

		c:     make(chan struct{}),
		skins: skinManager,
	}
	p.setupGin()

	cmd.Register(command.NewPatrol(conf.Patrol.Operators))

	c.ReadOnlyWorld = true
	c.Generator = func(dim world.Dimension) world.Generator { // ensures that no new chunks are generated.
		return world.NopGenerator{}
	}
	c.StatusProvider = status.NewProvider(c.Name, c.MaxPlayers)

	p.srv = c.New()
	p.srv.CloseOnProgramEnd()

	return p, nil
}

// Start begins the server's main loop, accepting connections and handling players.
// It blocks until the server is closed.
func (p *Patrol) Start() {
	p.srv.Listen()
	p.handleWorld()
	go p.serveStatus()

	for pl := range p.srv.Accept() {
		p.accept(pl)
	}

	p.Close()
}

// handleWorld initializes and configures the world settings.
// It loads the patrol routes and starts ticking them.
func (p *Patrol) handleWorld() {
	w := p.World()

	w.StopWeatherCycle()
	w.StopRaining()
	w.StopThundering()
	w.SetDefaultGameMode(world.GameModeAdventure)
	w.SetTime(internal.DefaultWorldTime)
	w.StopTime()
	w.SetTickRange(0)

	p.loadRoutes()
	go p.startTicking()
}

// setupGin sets up the router serving patrol snapshots.
func (p *Patrol) setupGin() {
	gin.SetMode(gin.ReleaseMode)

	p.http = &http.Server{
		Addr:    p.conf.Service.StatusAddress,
		Handler: status.NewRouter(p.conf.Service.StatusKey),
	}
}

// serveStatus ...
func (p *Patrol) serveStatus() {
	p.log.Info("Serving patrol status", "address", p.http.Addr)
	if err := p.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		p.log.Error("status server stopped", "error", err)
		sentry.CaptureException(err)
	}
}

// loadRoutes loads all the route configurations from the specified path, registers a patroller
// for each of them and spawns their NPCs. It panics if any route cannot be read or built.
func (p *Patrol) loadRoutes() {
	w := p.World()
	cfgs, err := route.ReadAll(p.conf.Patrol.RoutePath)
	if err != nil {
		panic(err)
	}
	if _, err = route.LoadAll(p.log, cfgs); err != nil {
		panic(err)
	}

	<-w.Exec(func(tx *world.Tx) {
		route.SpawnAll(p.log, tx, p.skins)
	})
	p.log.Info("Loaded patrol routes", "count", route.Count())
}

// startTicking steps every patroller once per tick until the server is closed.
func (p *Patrol) startTicking() {
	defer sentry.Recover()

	w := p.World()
	t := time.NewTicker(p.conf.Patrol.TickInterval.Std())
	defer t.Stop()

	for {
		select {
		case <-p.c:
			return
		case <-t.C:
			w.Exec(func(tx *world.Tx) {
				route.UpdateAll(p.log, tx)
			})
		}
	}
}

// accept handles a new player joining the server.
func (p *Patrol) accept(pl *player.Player) {
	p.log.Debug("player joined", "name", pl.Name())
	pl.Message(text.Colourf("<grey>There are</grey> <aqua>%d</aqua> <grey>patrols in this world.</grey>", route.Count()))
}

// Close closes the server and all its associated services.
func (p *Patrol) Close() {
	p.log.Debug("Stopping Status Server...")
	ctx, cancel := context.WithTimeout(context.Background(), internal.ShutdownTimeout)
	defer cancel()
	if err := p.http.Shutdown(ctx); err != nil {
		p.log.Warn("failed to shut down status server", "error", err)
	}
	p.log.Debug("Stopping Patrol Ticker...")
	close(p.c)
}

// World returns the default world.
func (p *Patrol) World() *world.World {
	return p.srv.World()
}
