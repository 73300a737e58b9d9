package arena

import (
	"encoding/json"
	"math/rand"

	"github.com/EtomicBomb/ethan-ws/internal/statslog"
	"github.com/EtomicBomb/ethan-ws/internal/tenant"
	"github.com/EtomicBomb/ethan-ws/internal/wsproto"
)

// killEvent is the terminal stats record written to the append-only
// log whenever a laser hits a player whose shield is already zero.
type killEvent struct {
	Victim uint64 `json:"victim"`
	Killer uint64 `json:"killer"`
}

// Tenant is the arena application: a single shared World, broadcast
// to every connected peer after any mutation and once per tick.
type Tenant struct {
	world   *World
	handles map[tenant.PeerID]*tenant.Handle
	stats   *statslog.Recorder
}

// NewTenant builds an arena tenant quizzing from bank. stats may be
// nil, in which case kill events are not recorded.
func NewTenant(bank *TermBank, stats *statslog.Recorder) *Tenant {
	return &Tenant{
		world:   NewWorld(bank, rand.New(rand.NewSource(1))),
		handles: make(map[tenant.PeerID]*tenant.Handle),
		stats:   stats,
	}
}

// OnConnect implements tenant.Tenant: seats the new player and
// announces the updated state to everyone.
func (t *Tenant) OnConnect(id tenant.PeerID, handle *tenant.Handle) {
	t.handles[id] = handle
	t.world.Join(uint64(id))
	t.announce()
}

// OnMessage implements tenant.Tenant.
func (t *Tenant) OnMessage(id tenant.PeerID, msg wsproto.Message) error {
	if !t.world.Has(uint64(id)) {
		return tenant.ErrDisconnect
	}

	var envelope inboundEnvelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		return tenant.ErrDisconnect
	}

	switch envelope.Kind {
	case "updateFacing":
		var cmd updateFacingCommand
		if err := json.Unmarshal(msg.Payload, &cmd); err != nil {
			return tenant.ErrDisconnect
		}
		t.world.UpdateFacing(uint64(id), cmd.NewFacing)
		t.announce()
		return nil

	case "guess":
		var cmd guessCommand
		if err := json.Unmarshal(msg.Payload, &cmd); err != nil {
			return tenant.ErrDisconnect
		}
		if !t.world.Guess(uint64(id), cmd.GuessIsLeft) {
			return tenant.ErrDisconnect
		}
		t.announce()
		return nil

	case "fire":
		killed := t.world.Fire(uint64(id))
		for _, victim := range killed {
			t.recordKill(victim, uint64(id))
			t.kill(tenant.PeerID(victim))
		}
		t.announce()
		return nil

	default:
		return tenant.ErrDisconnect
	}
}

func (t *Tenant) recordKill(victim, killer uint64) {
	if t.stats == nil {
		return
	}
	_ = t.stats.Record("arena_kill", killEvent{Victim: victim, Killer: killer})
}

func (t *Tenant) kill(id tenant.PeerID) {
	if handle, ok := t.handles[id]; ok {
		_ = handle.SendText(encodeKill())
	}
	t.world.Leave(uint64(id))
	delete(t.handles, id)
}

func (t *Tenant) announce() {
	for id, handle := range t.handles {
		_ = handle.SendText(encodeGameState(t.world, uint64(id)))
	}
}

// OnDisconnect implements tenant.Tenant.
func (t *Tenant) OnDisconnect(id tenant.PeerID) {
	t.world.Leave(uint64(id))
	delete(t.handles, id)
	t.announce()
}

// OnTick implements tenant.Tenant: advances physics and rebroadcasts
// state to every connected peer once per period.
func (t *Tenant) OnTick() {
	t.world.Update()
	t.announce()
}
