package link

import (
	"sync"

	"github.com/google/btree"
	"github.com/soypat/cop1"
	"github.com/soypat/cop1/clcw"
	"github.com/soypat/cop1/tc"
)

// entry is a registered virtual channel. Exactly one of sender or receiver is set.
type entry struct {
	key      Key
	sender   *Sender
	receiver *Receiver
}

func entryLess(a, b entry) bool { return a.key.less(b.key) }

// Registry indexes the virtual channels of one end of a link by spacecraft and
// virtual channel identifier and demultiplexes inbound frames and CLCWs to them.
// Registry is safe for concurrent use.
type Registry struct {
	mu   sync.RWMutex
	tree *btree.BTreeG[entry]
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{tree: btree.NewG(8, entryLess)}
}

// AddSender registers a configured sender under its key.
func (reg *Registry) AddSender(s *Sender) error {
	return reg.add(entry{key: s.Key(), sender: s})
}

// AddReceiver registers a configured receiver under its key.
func (reg *Registry) AddReceiver(r *Receiver) error {
	return reg.add(entry{key: r.Key(), receiver: r})
}

func (reg *Registry) add(e entry) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if _, exists := reg.tree.Get(e); exists {
		return errDuplicateVC
	}
	reg.tree.ReplaceOrInsert(e)
	return nil
}

// Remove unregisters the virtual channel with key k. It returns false if none was registered.
func (reg *Registry) Remove(k Key) bool {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	_, ok := reg.tree.Delete(entry{key: k})
	return ok
}

// Len returns the number of registered virtual channels.
func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.tree.Len()
}

func (reg *Registry) get(k Key) (entry, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.tree.Get(entry{key: k})
}

// Sender returns the sender registered under k.
func (reg *Registry) Sender(k Key) (*Sender, bool) {
	e, ok := reg.get(k)
	return e.sender, ok && e.sender != nil
}

// Receiver returns the receiver registered under k.
func (reg *Registry) Receiver(k Key) (*Receiver, bool) {
	e, ok := reg.get(k)
	return e.receiver, ok && e.receiver != nil
}

// Ascend calls fn for every registered channel in ascending key order until fn
// returns false. Exactly one of s and r is non-nil. fn is called without the
// registry lock held so it may call into the registry.
func (reg *Registry) Ascend(fn func(k Key, s *Sender, r *Receiver) bool) {
	reg.mu.RLock()
	entries := make([]entry, 0, reg.tree.Len())
	reg.tree.Ascend(func(e entry) bool {
		entries = append(entries, e)
		return true
	})
	reg.mu.RUnlock()
	for _, e := range entries {
		if !fn(e.key, e.sender, e.receiver) {
			return
		}
	}
}

// Route hands an inbound transfer frame to the receiver of the virtual
// channel named in its primary header.
func (reg *Registry) Route(frame []byte) (cop1.FarmResult, error) {
	frm, err := tc.NewFrame(frame)
	if err != nil {
		return cop1.FarmDiscard, err
	}
	r, ok := reg.Receiver(Key{SCID: frm.SCID(), VCID: frm.VCID()})
	if !ok {
		return cop1.FarmDiscard, errNoReceiver
	}
	return r.Recv(frame)
}

// RouteCLCW hands a CLCW received on the telemetry link of spacecraft scid
// to the sender of the virtual channel it reports on.
func (reg *Registry) RouteCLCW(scid uint16, word []byte) (cop1.Notification, error) {
	report, err := clcw.Parse(word)
	if err != nil {
		return cop1.Ignore, err
	}
	s, ok := reg.Sender(Key{SCID: scid, VCID: report.VCID})
	if !ok {
		return cop1.Ignore, errNoSender
	}
	return s.HandleCLCW(report), nil
}
