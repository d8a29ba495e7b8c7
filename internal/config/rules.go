// Package config holds game balance rules and runtime settings.
package config

import "time"

// Rules are the balance constants of the tower. Every timing and rate the
// engine and controller use comes from here.
type Rules struct {
	EnergyRate float64 // energy per second of passive accrual
	ManaRate   float64
	LoreRate   float64 // lore progress per second

	FocusCadence time.Duration
	StudyCadence time.Duration
	StudyCost    float64 // mana per lore

	RestDuration time.Duration
	MeditateGain float64
	IntentCap    int
	IntentClick  int
	IntentHold   time.Duration
	IntentUnlock int // completed meditations required for intent
	StudyUnlock  int // lore required for study
	ClimbUnlock  int // lore required for climb
	EventChance  float64
	DropChance   float64
	SprintWindow time.Duration
	TickInterval time.Duration
	AutoRefresh  time.Duration
}

// Default returns the stock balance.
func Default() Rules {
	return Rules{
		EnergyRate:   0.2,
		ManaRate:     0.1,
		LoreRate:     0.05,
		FocusCadence: 250 * time.Millisecond,
		StudyCadence: 500 * time.Millisecond,
		StudyCost:    5,
		RestDuration: 5 * time.Second,
		MeditateGain: 5,
		IntentCap:    50,
		IntentClick:  10,
		IntentHold:   1000 * time.Millisecond,
		IntentUnlock: 3,
		StudyUnlock:  2,
		ClimbUnlock:  4,
		EventChance:  0.5,
		DropChance:   0.3,
		SprintWindow: 120 * time.Second,
		TickInterval: time.Second,
		AutoRefresh:  30 * time.Second,
	}
}
