// Copyright (c) The lstee authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package bus

import (
	"sync"
)

// WriteHook transforms a register write, receiving the accessible
// address, the current register value and the value being written. The
// returned value is stored. Hooks model device-side write semantics,
// such as lock bits masking further updates.
type WriteHook func(va uint32, old uint32, val uint32) uint32

type region struct {
	start uint32
	size  int
}

func (r region) contains(pa uint32, size int) bool {
	return pa >= r.start && uint64(pa)+uint64(size) <= uint64(r.start)+uint64(r.size)
}

// MemMap is a simulated register space implementing Bus, used by tests
// and emulated runs. Translation is the identity function for mapped
// regions; unmapped regions translate to the Unmapped sentinel until
// Map is invoked, unless mapping has been explicitly refused.
//
// MemMap is safe for concurrent use by multiple goroutines.
type MemMap struct {
	mu     sync.Mutex
	words  map[uint32]uint32
	mapped []region
	denied []region
	hooks  map[region]WriteHook
}

// NewMemMap returns an empty simulated register space with no mapped
// regions.
func NewMemMap() *MemMap {
	return &MemMap{
		words: make(map[uint32]uint32),
		hooks: make(map[region]WriteHook),
	}
}

// MapRegion establishes a static mapping, the equivalent of a boot-time
// register_phys_mem entry.
func (m *MemMap) MapRegion(pa uint32, size int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.mapped = append(m.mapped, region{pa, size})
}

// RefuseMapping marks a region as unmappable, Map requests within it
// fail.
func (m *MemMap) RefuseMapping(pa uint32, size int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.denied = append(m.denied, region{pa, size})
}

// HookRegion installs a write hook covering size bytes at pa.
func (m *MemMap) HookRegion(pa uint32, size int, fn WriteHook) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hooks[region{pa, size}] = fn
}

// Read32 implements Bus.
func (m *MemMap) Read32(va uint32) uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.words[va&^3]
}

// Write32 implements Bus.
func (m *MemMap) Write32(va uint32, val uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	va &^= 3

	for r, fn := range m.hooks {
		if r.contains(va, 4) {
			val = fn(va, m.words[va], val)
		}
	}

	m.words[va] = val
}

// PhysToVirt implements Bus.
func (m *MemMap) PhysToVirt(pa uint32) uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.mapped {
		if r.contains(pa, 4) {
			return pa
		}
	}

	return Unmapped
}

// Map implements Bus.
func (m *MemMap) Map(pa uint32, size int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.denied {
		if r.contains(pa, size) {
			return false
		}
	}

	m.mapped = append(m.mapped, region{pa, size})

	return true
}

// Barrier implements Bus. The simulated space is sequentially
// consistent, no reordering can be observed.
func (m *MemMap) Barrier() {}
