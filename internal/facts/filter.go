package facts

// FilterTablesByModules returns a new Tables object containing only rows that
// belong to one of the named modules.
func FilterTablesByModules(tables Tables, modules map[string]bool) Tables {
	out := emptyTables()
	if len(modules) == 0 {
		return out
	}

	for _, row := range tables.Modules {
		if modules[row.Name] {
			out.Modules = append(out.Modules, row)
		}
	}
	for _, row := range tables.Ports {
		if modules[row.Module] {
			out.Ports = append(out.Ports, row)
		}
	}
	for _, row := range tables.Params {
		if modules[row.Module] {
			out.Params = append(out.Params, row)
		}
	}
	for _, row := range tables.Signals {
		if modules[row.Module] {
			out.Signals = append(out.Signals, row)
		}
	}
	for _, row := range tables.Instances {
		if modules[row.Module] {
			out.Instances = append(out.Instances, row)
		}
	}
	for _, row := range tables.Bindings {
		if modules[row.Module] {
			out.Bindings = append(out.Bindings, row)
		}
	}

	return out
}

// FilterDeltaByModules applies FilterTablesByModules to both sides of delta.
func FilterDeltaByModules(delta Delta, modules map[string]bool) Delta {
	return Delta{
		Added:   FilterTablesByModules(delta.Added, modules),
		Removed: FilterTablesByModules(delta.Removed, modules),
	}
}
