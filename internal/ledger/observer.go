package ledger

// Subscribe registers a callback invoked synchronously after every committed
// mutation with a snapshot of the new state. The returned function removes
// the subscription.
func (l *Ledger) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	l.mu.Lock()
	id := l.nextObserver
	l.nextObserver++
	l.observers[id] = fn
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		delete(l.observers, id)
		l.mu.Unlock()
	}
}

// commitLocked captures the snapshot and observer list for notification.
// Callbacks run after the lock is released so they may call back into the
// ledger safely.
func (l *Ledger) commitLocked() (Snapshot, []func(Snapshot)) {
	snap := l.snapshotLocked()

	subs := make([]func(Snapshot), 0, len(l.observers))
	for _, fn := range l.observers {
		subs = append(subs, fn)
	}

	return snap, subs
}

func notify(subs []func(Snapshot), snap Snapshot) {
	for _, fn := range subs {
		fn(snap)
	}
}
