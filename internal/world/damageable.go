package world

// Damageable is the capability every attack target implements. Towers and
// enemies both satisfy it; queries resolve through the registries so a pooled
// instance can never be reached through a stale handle.
type Damageable interface {
	TakeDamage(amount float64)
	Health() float64
	Alive() bool
}
