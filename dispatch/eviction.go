package dispatch

import "sort"

// maybeEvict implements spec §4.C "Cache eviction": when the compiled-pass
// count exceeds the high-water mark, sort by age (epoch - last_use_epoch)
// descending and evict every pass in the second half of that order (the
// more recently used half) whose age is at least minEvictionAge. If nothing
// in that half is old enough, double the high-water mark instead of
// evicting.
func (e *Engine) maybeEvict() {
	total := 0
	for _, list := range e.entries {
		total += len(list)
	}
	if total <= e.highWater {
		return
	}

	type ref struct {
		sig uint64
		idx int
		age uint64
	}
	all := make([]ref, 0, total)
	for sig, list := range e.entries {
		for i, cp := range list {
			all = append(all, ref{sig, i, e.epoch - cp.lastUseEpoch})
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].age > all[j].age })

	secondHalf := all[len(all)/2:]
	toEvict := make(map[uint64]map[int]bool)
	for _, r := range secondHalf {
		if r.age < minEvictionAge {
			continue
		}
		if toEvict[r.sig] == nil {
			toEvict[r.sig] = make(map[int]bool)
		}
		toEvict[r.sig][r.idx] = true
	}

	if len(toEvict) == 0 {
		e.highWater *= 2
		return
	}

	for sig, idxs := range toEvict {
		list := e.entries[sig]
		kept := list[:0:0]
		for i, cp := range list {
			if idxs[i] {
				e.destroyCompiledPass(cp)
				continue
			}
			kept = append(kept, cp)
		}
		if len(kept) == 0 {
			delete(e.entries, sig)
		} else {
			e.entries[sig] = kept
		}
	}
}

func (e *Engine) destroyCompiledPass(cp *compiledPass) {
	if cp.pass != nil {
		e.device.DestroyPass(cp.pass)
	}
	if cp.uboBuffer != nil {
		e.device.DestroyBuffer(cp.uboBuffer)
	}
}
