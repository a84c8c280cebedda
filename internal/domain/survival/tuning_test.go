package survival

import (
	"testing"
	"time"
)

func TestGameplayTuning_Defaults(t *testing.T) {
	if CollectMinutes != 5 || CraftMinutes != 15 || UseMinutes != 2 || TravelMinutes != 30 {
		t.Fatalf("action minutes = (%d,%d,%d,%d), want (5,15,2,30)", CollectMinutes, CraftMinutes, UseMinutes, TravelMinutes)
	}
	if CraftEnergyCost != 10 || TravelEnergyCost != 20 {
		t.Fatalf("energy costs = (%d,%d), want (10,20)", CraftEnergyCost, TravelEnergyCost)
	}
	if DecayHunger != 1.0 || DecayThirst != 1.5 || DecayEnergy != 0.5 {
		t.Fatalf("decay = (%v,%v,%v), want (1,1.5,0.5)", DecayHunger, DecayThirst, DecayEnergy)
	}
	if StarvationHealthLoss != 2.0 {
		t.Fatalf("StarvationHealthLoss = %v, want 2", StarvationHealthLoss)
	}
	if CriticalHealthThreshold != 15 || LowEnergyThreshold != 20 {
		t.Fatalf("status thresholds = (%d,%d), want (15,20)", CriticalHealthThreshold, LowEnergyThreshold)
	}
}

func TestGameplayTuning_Tick(t *testing.T) {
	if TickInterval != 3*time.Second {
		t.Fatalf("TickInterval = %s, want 3s", TickInterval)
	}
	if TickMinutes != 1 {
		t.Fatalf("TickMinutes = %d, want 1", TickMinutes)
	}
	if !ConsumableCategories[CategoryFood] || !ConsumableCategories[CategoryMedicine] || ConsumableCategories[CategoryTool] {
		t.Fatalf("unexpected consumable categories: %v", ConsumableCategories)
	}
}
