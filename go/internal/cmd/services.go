package main

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/mcdev12/gridiron/go/internal/engine"
	"github.com/mcdev12/gridiron/go/internal/leagueconfig"
	"github.com/mcdev12/gridiron/go/internal/ledger"
	"github.com/mcdev12/gridiron/go/internal/notify"
	"github.com/mcdev12/gridiron/go/internal/picks"
	"github.com/mcdev12/gridiron/go/internal/players"
	"github.com/mcdev12/gridiron/go/internal/poach"
	"github.com/mcdev12/gridiron/go/internal/roster"
	"github.com/mcdev12/gridiron/go/internal/schedule"
	"github.com/mcdev12/gridiron/go/internal/sqlutil"
	"github.com/mcdev12/gridiron/go/internal/superpriority"
	"github.com/mcdev12/gridiron/go/internal/teams"
	"github.com/mcdev12/gridiron/go/internal/waivers"
)

type Services struct {
	Engine  *engine.App
	Leagues *leagueconfig.Repository
	Rosters *roster.Repository
}

// newStores binds every engine-writable repository to one executor, either
// the shared pool or a single transaction.
func newStores(db sqlx.ExtContext) engine.Stores {
	return engine.Stores{
		Roster:        roster.NewRepository(db),
		Ledger:        ledger.NewRepository(db),
		Waivers:       waivers.NewRepository(db),
		Poaches:       poach.NewRepository(db),
		SuperPriority: superpriority.NewRepository(db),
		Picks:         picks.NewRepository(db),
	}
}

// txRunner gives the engine's apply phase a transaction-bound Stores bundle.
type txRunner struct {
	db *sqlx.DB
}

func (t *txRunner) InTx(ctx context.Context, fn func(s engine.Stores) error) error {
	return sqlutil.RunTx(ctx, t.db, func(tx *sqlx.Tx) error {
		return fn(newStores(tx))
	})
}

func setupServices(database *sqlx.DB, notifier *notify.Dispatcher) *Services {
	// Database layer -> repository layer -> engine.
	leagueRepo := leagueconfig.NewRepository(database)
	teamRepo := teams.NewRepository(database)
	playerRepo := players.NewRepository(database)
	scheduleRepo := schedule.NewRepository(database)
	rosterRepo := roster.NewRepository(database)

	app := engine.NewApp(engine.Deps{
		Config:   leagueRepo,
		Teams:    teamRepo,
		Players:  playerRepo,
		Schedule: scheduleRepo,
		Stores:   newStores(database),
		Tx:       &txRunner{db: database},
		Notifier: notifier,
	})

	return &Services{
		Engine:  app,
		Leagues: leagueRepo,
		Rosters: rosterRepo,
	}
}
