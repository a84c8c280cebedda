package survival

import "time"

const (
	StatMin = 0
	StatMax = 100

	InitialHealth = 100
	InitialHunger = 100
	InitialThirst = 100
	InitialEnergy = 100

	CollectMinutes = 5
	CraftMinutes   = 15
	UseMinutes     = 2
	TravelMinutes  = 30

	CraftEnergyCost  = 10
	TravelEnergyCost = 20

	DecayHunger = 1.0
	DecayThirst = 1.5
	DecayEnergy = 0.5

	// StarvationHealthLoss applies on every decay tick while hunger or
	// thirst sits at zero.
	StarvationHealthLoss = 2.0

	DefaultDropAmount = 1

	TickMinutes = 1

	CriticalHealthThreshold = 15
	LowEnergyThreshold      = 20
)

// TickInterval is the real-time cadence that advances TickMinutes of game time.
const TickInterval = 3 * time.Second

// ConsumableCategories lists item categories that UseItem accepts.
var ConsumableCategories = map[Category]bool{
	CategoryFood:     true,
	CategoryMedicine: true,
}
