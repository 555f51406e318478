package state

import (
	"sync"

	"github.com/Kleo07/MindSpaceX/pkg/assessment/types"
	localstore "github.com/Kleo07/MindSpaceX/pkg/local-store"
)

// RecordCache is the slice of the local store the container depends on.
type RecordCache interface {
	ReadAll(namespace string) types.AssessmentRecord
	WriteMany(namespace string, record types.AssessmentRecord)
	Clear(namespace string)
}

// Container owns the in-memory assessment record for the active user. Every
// mutation shallow-merges into the previous record, persists the full snapshot
// to the cache under the active namespace and notifies subscribers. It is the
// only component that writes the record; the caches are write-through copies.
type Container struct {
	mu          sync.Mutex
	cache       RecordCache
	namespace   string
	record      types.AssessmentRecord
	subscribers map[int]func(types.AssessmentRecord)
	nextSubID   int
}

func NewContainer(cache RecordCache) *Container {
	c := &Container{
		cache:       cache,
		namespace:   localstore.GUEST_NAMESPACE,
		subscribers: map[int]func(types.AssessmentRecord){},
	}
	c.record = cache.ReadAll(c.namespace)
	return c
}

// Namespace returns the cache namespace the container currently writes to.
func (c *Container) Namespace() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.namespace
}

// Record returns a snapshot of the current record. The snapshot is detached:
// mutating it does not affect the container.
func (c *Container) Record() types.AssessmentRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.record.Clone()
}

// ActivateUser switches the container to the namespace of the given user id
// (or the guest namespace when empty), discarding the in-memory record and
// reloading from the cache. This is the guard against a previous user's
// answers leaking into a new session.
func (c *Container) ActivateUser(userID string) {
	namespace := localstore.GUEST_NAMESPACE
	if userID != "" {
		namespace = userID
	}

	c.mu.Lock()
	if c.namespace == namespace {
		c.mu.Unlock()
		return
	}
	c.namespace = namespace
	c.record = c.cache.ReadAll(namespace)
	snapshot := c.record.Clone()
	subs := c.currentSubscribers()
	c.mu.Unlock()

	notify(subs, snapshot)
}

// Set shallow-merges the set fields of update over the current record.
func (c *Container) Set(update types.AssessmentRecord) {
	c.apply(func(prev types.AssessmentRecord) types.AssessmentRecord {
		return update
	})
}

// SetFunc computes the update from the previous record, then shallow-merges it.
func (c *Container) SetFunc(updater func(prev types.AssessmentRecord) types.AssessmentRecord) {
	c.apply(updater)
}

// Replace discards the current record and cache content for the active
// namespace and installs the given record wholesale. Used by the sync
// coordinator when the remote document wins.
func (c *Container) Replace(record types.AssessmentRecord) {
	record.Sanitize()

	c.mu.Lock()
	c.record = record
	c.cache.Clear(c.namespace)
	c.cache.WriteMany(c.namespace, record)
	snapshot := c.record.Clone()
	subs := c.currentSubscribers()
	c.mu.Unlock()

	notify(subs, snapshot)
}

// Clear empties the in-memory record and the namespaced cache entries.
func (c *Container) Clear() {
	c.mu.Lock()
	c.record = types.AssessmentRecord{}
	c.cache.Clear(c.namespace)
	subs := c.currentSubscribers()
	c.mu.Unlock()

	notify(subs, types.AssessmentRecord{})
}

// Subscribe registers an observer called with the record snapshot after every
// change, and returns its unsubscribe function.
func (c *Container) Subscribe(fn func(types.AssessmentRecord)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subscribers, id)
	}
}

func (c *Container) apply(updater func(prev types.AssessmentRecord) types.AssessmentRecord) {
	c.mu.Lock()
	update := updater(c.record)
	merged := types.Merge(c.record, update)
	merged.Sanitize()
	c.record = merged

	// full snapshot resync: the cache eventually agrees with memory even if a
	// single field write was missed before
	c.cache.WriteMany(c.namespace, merged)
	snapshot := merged.Clone()
	subs := c.currentSubscribers()
	c.mu.Unlock()

	notify(subs, snapshot)
}

func (c *Container) currentSubscribers() []func(types.AssessmentRecord) {
	subs := make([]func(types.AssessmentRecord), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subs = append(subs, fn)
	}
	return subs
}

func notify(subs []func(types.AssessmentRecord), snapshot types.AssessmentRecord) {
	for _, fn := range subs {
		fn(snapshot)
	}
}
