package invoiceprint

import (
	"slices"
	"sync"
)

// KeyEscape is the key name dispatched for the Escape key.
const KeyEscape = "Escape"

// Host is the page environment a Modal mounts into. Registrations return
// a func that undoes them.
type Host interface {
	AddMeta(name, content string) (remove func())
	AddKeyListener(fn func(key string)) (remove func())
	Meta() []MetaTag
}

var _ Host = (*Document)(nil)

// Document is an in-memory Host: a registry of head meta tags and
// document-level key listeners. The zero value is ready to use and safe for
// concurrent use.
type Document struct {
	mu        sync.Mutex
	nextID    int
	meta      []metaEntry
	listeners []listenerEntry
}

type metaEntry struct {
	id  int
	tag MetaTag
}

type listenerEntry struct {
	id int
	fn func(key string)
}

// AddMeta adds a <meta> tag. The returned func removes exactly this tag and
// may be called more than once.
func (d *Document) AddMeta(name, content string) func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	id := d.nextID
	d.meta = append(d.meta, metaEntry{id: id, tag: MetaTag{Name: name, Content: content}})

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.meta = slices.DeleteFunc(d.meta, func(e metaEntry) bool { return e.id == id })
	}
}

// AddKeyListener registers fn for key presses. The returned func removes
// the listener and may be called more than once.
func (d *Document) AddKeyListener(fn func(key string)) func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	id := d.nextID
	d.listeners = append(d.listeners, listenerEntry{id: id, fn: fn})

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.listeners = slices.DeleteFunc(d.listeners, func(e listenerEntry) bool { return e.id == id })
	}
}

// DispatchKey delivers a key press to every listener registered at the
// time of the call, in registration order. Listeners may add or remove
// registrations.
func (d *Document) DispatchKey(key string) {
	d.mu.Lock()
	listeners := slices.Clone(d.listeners)
	d.mu.Unlock()

	for _, l := range listeners {
		l.fn(key)
	}
}

// Meta returns the current meta tags in insertion order.
func (d *Document) Meta() []MetaTag {
	d.mu.Lock()
	defer d.mu.Unlock()

	tags := make([]MetaTag, len(d.meta))
	for i, e := range d.meta {
		tags[i] = e.tag
	}
	return tags
}

// Listeners returns the number of registered key listeners.
func (d *Document) Listeners() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners)
}
