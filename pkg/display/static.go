package display

import (
	"context"
	"sync"
)

// StaticEnumerator is an in-memory display list. Add and Remove notify
// watchers the same way a hotplug would.
type StaticEnumerator struct {
	mu       sync.Mutex
	displays []Descriptor
	watchers []chan Event
}

// NewStaticEnumerator returns an enumerator over ds.
func NewStaticEnumerator(ds ...Descriptor) *StaticEnumerator {
	e := &StaticEnumerator{displays: append([]Descriptor(nil), ds...)}
	sortDescriptors(e.displays)
	return e
}

// ParseStatic builds an enumerator from geometry strings accepted by
// ParseDescriptor.
func ParseStatic(specs []string) (*StaticEnumerator, error) {
	ds := make([]Descriptor, 0, len(specs))
	for i, s := range specs {
		d, err := ParseDescriptor(s, i)
		if err != nil {
			return nil, err
		}
		ds = append(ds, d)
	}
	return NewStaticEnumerator(ds...), nil
}

// Displays implements Enumerator.
func (e *StaticEnumerator) Displays(ctx context.Context) ([]Descriptor, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Descriptor(nil), e.displays...), nil
}

// Watch implements Enumerator.
func (e *StaticEnumerator) Watch(ctx context.Context) (<-chan Event, error) {
	ch := make(chan Event, 16)
	e.mu.Lock()
	e.watchers = append(e.watchers, ch)
	e.mu.Unlock()

	go func() {
		<-ctx.Done()
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, w := range e.watchers {
			if w == ch {
				e.watchers = append(e.watchers[:i], e.watchers[i+1:]...)
				break
			}
		}
		close(ch)
	}()
	return ch, nil
}

// Add connects a display and notifies watchers.
func (e *StaticEnumerator) Add(d Descriptor) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if d.Available.Empty() {
		d.Available = d.Geometry
	}
	e.displays = append(e.displays, d)
	sortDescriptors(e.displays)
	e.notify(Event{Kind: DisplayAdded, Display: e.displays[indexOf(e.displays, d.Identity())]})
}

// Remove disconnects the display at index i and notifies watchers. It
// reports whether i was valid.
func (e *StaticEnumerator) Remove(i int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i < 0 || i >= len(e.displays) {
		return false
	}
	d := e.displays[i]
	e.displays = append(e.displays[:i], e.displays[i+1:]...)
	sortDescriptors(e.displays)
	e.notify(Event{Kind: DisplayRemoved, Display: d})
	return true
}

// notify must be called with mu held. Slow watchers drop events; a
// refresh always re-reads the full list.
func (e *StaticEnumerator) notify(ev Event) {
	for _, w := range e.watchers {
		select {
		case w <- ev:
		default:
		}
	}
}
