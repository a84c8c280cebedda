package survival

import "encoding/json"

type StackKind string

const (
	StackResource StackKind = "resource"
	StackItem     StackKind = "item"
)

// Stack is an inventory entry. The only implementations are ResourceStack
// and ItemStack; switch on the concrete type to reach the payload.
type Stack interface {
	StackID() string
	Kind() StackKind
	Count() int
	withCount(n int) Stack
}

type ResourceStack struct {
	Resource Resource
	Quantity int
}

func (s ResourceStack) StackID() string { return s.Resource.ID }
func (s ResourceStack) Kind() StackKind { return StackResource }
func (s ResourceStack) Count() int      { return s.Quantity }

func (s ResourceStack) withCount(n int) Stack {
	s.Quantity = n
	return s
}

func (s ResourceStack) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind     StackKind `json:"kind"`
		ID       string    `json:"id"`
		Quantity int       `json:"quantity"`
		Resource Resource  `json:"resource"`
	}{StackResource, s.Resource.ID, s.Quantity, s.Resource})
}

type ItemStack struct {
	Item     Item
	Quantity int
}

func (s ItemStack) StackID() string { return s.Item.ID }
func (s ItemStack) Kind() StackKind { return StackItem }
func (s ItemStack) Count() int      { return s.Quantity }

func (s ItemStack) withCount(n int) Stack {
	s.Quantity = n
	return s
}

func (s ItemStack) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind     StackKind `json:"kind"`
		ID       string    `json:"id"`
		Quantity int       `json:"quantity"`
		Item     Item      `json:"item"`
	}{StackItem, s.Item.ID, s.Quantity, s.Item})
}

// Inventory keeps stacks in insertion order with at most one stack per id
// and only positive quantities. Every method returns a new slice and leaves
// the receiver untouched.
type Inventory []Stack

func (inv Inventory) Find(id string) (Stack, bool) {
	i := inv.index(id)
	if i < 0 {
		return nil, false
	}
	return inv[i], true
}

func (inv Inventory) Quantity(id string) int {
	if s, ok := inv.Find(id); ok {
		return s.Count()
	}
	return 0
}

func (inv Inventory) index(id string) int {
	for i, s := range inv {
		if s.StackID() == id {
			return i
		}
	}
	return -1
}

func (inv Inventory) clone() Inventory {
	out := make(Inventory, len(inv), len(inv)+1)
	copy(out, inv)
	return out
}

// Add merges amount units of entry into the stack with the same id, or
// appends a new stack.
func (inv Inventory) Add(entry Stack, amount int) Inventory {
	if entry == nil || amount <= 0 || entry.StackID() == "" {
		return inv
	}
	out := inv.clone()
	if i := out.index(entry.StackID()); i >= 0 {
		out[i] = out[i].withCount(out[i].Count() + amount)
		return out
	}
	return append(out, entry.withCount(amount))
}

// Consume removes exactly amount units of id and reports false, leaving the
// inventory unchanged, when fewer are held.
func (inv Inventory) Consume(id string, amount int) (Inventory, bool) {
	if amount <= 0 || id == "" {
		return inv, false
	}
	i := inv.index(id)
	if i < 0 || inv[i].Count() < amount {
		return inv, false
	}
	return inv.Remove(id, amount), true
}

// Remove takes up to amount units of id; a stack that would reach zero or
// less is deleted. Unknown ids are ignored.
func (inv Inventory) Remove(id string, amount int) Inventory {
	i := inv.index(id)
	if i < 0 || amount <= 0 {
		return inv
	}
	out := inv.clone()
	if remaining := out[i].Count() - amount; remaining > 0 {
		out[i] = out[i].withCount(remaining)
		return out
	}
	return append(out[:i], out[i+1:]...)
}

func (inv Inventory) Resources() []ResourceStack {
	out := make([]ResourceStack, 0, len(inv))
	for _, s := range inv {
		if rs, ok := s.(ResourceStack); ok {
			out = append(out, rs)
		}
	}
	return out
}

func (inv Inventory) Items() []ItemStack {
	out := make([]ItemStack, 0, len(inv))
	for _, s := range inv {
		if is, ok := s.(ItemStack); ok {
			out = append(out, is)
		}
	}
	return out
}

// StackRecord is the flat stored form of a stack. Catalog.RestoreInventory
// turns records back into typed stacks.
type StackRecord struct {
	Kind     StackKind `json:"kind"`
	ID       string    `json:"id"`
	Quantity int       `json:"quantity"`
}

func (inv Inventory) Records() []StackRecord {
	out := make([]StackRecord, 0, len(inv))
	for _, s := range inv {
		out = append(out, StackRecord{Kind: s.Kind(), ID: s.StackID(), Quantity: s.Count()})
	}
	return out
}
