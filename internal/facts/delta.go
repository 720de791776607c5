package facts

import "strconv"

// Delta captures added and removed rows between two inventories.
type Delta struct {
	Added   Tables `json:"added"`
	Removed Tables `json:"removed"`
}

// ComputeDelta computes row-level additions and removals between two snapshots.
func ComputeDelta(prev, next Tables) Delta {
	return Delta{
		Added:   diffTables(prev, next),
		Removed: diffTables(next, prev),
	}
}

// Empty reports whether the two snapshots were identical.
func (d Delta) Empty() bool {
	return d.Added.Len() == 0 && d.Removed.Len() == 0
}

// Len is the total row count over all relations.
func (t Tables) Len() int {
	return len(t.Modules) + len(t.Ports) + len(t.Params) +
		len(t.Signals) + len(t.Instances) + len(t.Bindings)
}

func diffTables(from, to Tables) Tables {
	out := emptyTables()

	out.Modules = diffRows(from.Modules, to.Modules, func(r ModuleRow) string {
		return r.Name + "|" + r.File
	})
	out.Ports = diffRows(from.Ports, to.Ports, func(r PortRow) string {
		return r.Module + "|" + r.Name + "|" + r.Direction + "|" + uintKey(r.Width) + "|" + strconv.FormatBool(r.Reg)
	})
	out.Params = diffRows(from.Params, to.Params, func(r ParamRow) string {
		return r.Module + "|" + r.Name + "|" + r.Value
	})
	out.Signals = diffRows(from.Signals, to.Signals, func(r SignalRow) string {
		return r.Module + "|" + r.Name + "|" + r.Kind + "|" + uintKey(r.Width)
	})
	out.Instances = diffRows(from.Instances, to.Instances, func(r InstanceRow) string {
		return r.Module + "|" + r.Name + "|" + r.Target
	})
	out.Bindings = diffRows(from.Bindings, to.Bindings, func(r BindingRow) string {
		return r.Module + "|" + r.Instance + "|" + r.Kind + "|" + r.Name + "|" + r.Value
	})

	return out
}

func diffRows[T any](from, to []T, key func(T) string) []T {
	fromSet := make(map[string]struct{}, len(from))
	for _, row := range from {
		fromSet[key(row)] = struct{}{}
	}

	diff := []T{}
	for _, row := range to {
		if _, ok := fromSet[key(row)]; !ok {
			diff = append(diff, row)
		}
	}

	return diff
}

func uintKey(v uint64) string {
	return strconv.FormatUint(v, 10)
}
