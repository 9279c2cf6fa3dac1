package world

import (
	"go.uber.org/zap"

	"github.com/gridfort/sim/internal/core/event"
)

// Ledger is the economy and base-health bookkeeping service. It consumes
// EnemyKilled / EnemyReachedEnd events from the bus and emits change
// notifications. Single instance, injected by reference — no globals.
type Ledger struct {
	log      *zap.Logger
	bus      *event.Bus
	money    int
	health   int
	gameOver bool
}

func NewLedger(startMoney, startHealth int, bus *event.Bus, log *zap.Logger) *Ledger {
	l := &Ledger{
		log:    log,
		bus:    bus,
		money:  startMoney,
		health: startHealth,
	}
	event.Subscribe(bus, func(ev event.EnemyKilled) {
		l.AddMoney(ev.Reward)
	})
	event.Subscribe(bus, func(ev event.EnemyReachedEnd) {
		l.TakeDamage(ev.Damage)
	})
	return l
}

// SpendMoney deducts amount if affordable and reports whether it did.
func (l *Ledger) SpendMoney(amount int) bool {
	if amount < 0 || l.money < amount {
		return false
	}
	l.money -= amount
	event.Emit(l.bus, event.MoneyChanged{Money: l.money})
	return true
}

func (l *Ledger) AddMoney(amount int) {
	if amount <= 0 {
		return
	}
	l.money += amount
	event.Emit(l.bus, event.MoneyChanged{Money: l.money})
}

// TakeDamage reduces base health, clamped at zero. Crossing zero emits
// GameOver exactly once.
func (l *Ledger) TakeDamage(amount int) {
	if amount <= 0 || l.gameOver {
		return
	}
	l.health -= amount
	if l.health <= 0 {
		l.health = 0
		l.gameOver = true
		event.Emit(l.bus, event.GameOver{})
		l.log.Info("base destroyed")
	}
	event.Emit(l.bus, event.BaseHealthChanged{Health: l.health})
}

func (l *Ledger) Money() int       { return l.money }
func (l *Ledger) Health() int      { return l.health }
func (l *Ledger) IsGameOver() bool { return l.gameOver }
