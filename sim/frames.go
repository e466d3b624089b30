// sim/frames.go
package sim

import (
	"fmt"

	"github.com/pagesim/pagesim/sim/trace"
)

// frame is a node of the FrameSet's intrusive doubly linked list.
type frame struct {
	page trace.PageID
	prev *frame
	next *frame
}

// FrameSet is the bounded set of resident pages. Residents are kept in a total
// order: the head is the eviction end (oldest for FIFO, least recently used for
// LRU) and the tail is the newest end. What the order means is decided by the
// active EvictionPolicy; the FrameSet only maintains it.
type FrameSet struct {
	capacity int
	index    map[trace.PageID]*frame // page -> list node
	head     *frame                  // eviction end
	tail     *frame                  // newest end
	size     int
}

// NewFrameSet creates an empty FrameSet holding at most capacity pages.
func NewFrameSet(capacity int) (*FrameSet, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidFrameCount, capacity)
	}
	return &FrameSet{
		capacity: capacity,
		index:    make(map[trace.PageID]*frame, capacity),
	}, nil
}

// Cap returns the maximum number of resident pages.
func (fs *FrameSet) Cap() int { return fs.capacity }

// Len returns the number of resident pages.
func (fs *FrameSet) Len() int { return fs.size }

// Full reports whether the set is at capacity.
func (fs *FrameSet) Full() bool { return fs.size == fs.capacity }

// Contains reports whether page is resident.
func (fs *FrameSet) Contains(page trace.PageID) bool {
	_, ok := fs.index[page]
	return ok
}

// Front returns the page at the eviction end.
func (fs *FrameSet) Front() (trace.PageID, bool) {
	if fs.head == nil {
		return "", false
	}
	return fs.head.page, true
}

// Insert places page at the newest end.
func (fs *FrameSet) Insert(page trace.PageID) error {
	if fs.size >= fs.capacity {
		return fmt.Errorf("%w: inserting %q into %d/%d frames", ErrCapacityExceeded, page, fs.size, fs.capacity)
	}
	if fs.Contains(page) {
		return fmt.Errorf("%w: %q", ErrDuplicatePage, page)
	}
	f := &frame{page: page}
	fs.appendFrame(f)
	fs.index[page] = f
	fs.size++
	return nil
}

// Evict removes page from the set.
func (fs *FrameSet) Evict(page trace.PageID) error {
	f, ok := fs.index[page]
	if !ok {
		return fmt.Errorf("%w: cannot evict %q", ErrPageNotResident, page)
	}
	fs.unlink(f)
	delete(fs.index, page)
	fs.size--
	return nil
}

// MoveToBack moves a resident page to the newest end without changing membership.
func (fs *FrameSet) MoveToBack(page trace.PageID) error {
	f, ok := fs.index[page]
	if !ok {
		return fmt.Errorf("%w: cannot reorder %q", ErrPageNotResident, page)
	}
	if f == fs.tail {
		return nil
	}
	fs.unlink(f)
	fs.appendFrame(f)
	return nil
}

// Snapshot returns the resident pages in order, eviction end first.
func (fs *FrameSet) Snapshot() []trace.PageID {
	out := make([]trace.PageID, 0, fs.size)
	for f := fs.head; f != nil; f = f.next {
		out = append(out, f.page)
	}
	return out
}

// appendFrame links f at the tail.
func (fs *FrameSet) appendFrame(f *frame) {
	f.next = nil
	// either both head and tail are nil, or neither is
	if fs.tail != nil {
		fs.tail.next = f
		f.prev = fs.tail
		fs.tail = f
	} else {
		fs.head = f
		fs.tail = f
		f.prev = nil
	}
}

// unlink detaches f from the list.
func (fs *FrameSet) unlink(f *frame) {
	if f.prev != nil {
		// a - f - b => a - b
		f.prev.next = f.next
	} else {
		fs.head = f.next
	}
	if f.next != nil {
		f.next.prev = f.prev
	} else {
		fs.tail = f.prev
	}
	f.next = nil
	f.prev = nil
}
