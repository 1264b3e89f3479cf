package lspserver

import "slide/internal/registry"

func toRegistryPosition(p position) registry.Position {
	return registry.Position{Line: p.Line, Character: p.Character}
}

func toLSPPosition(p registry.Position) position {
	return position{Line: p.Line, Character: p.Character}
}

func toRegistryRange(r lspRange) registry.Range {
	return registry.Range{Start: toRegistryPosition(r.Start), End: toRegistryPosition(r.End)}
}

func toLSPRange(r registry.Range) lspRange {
	return lspRange{Start: toLSPPosition(r.Start), End: toLSPPosition(r.End)}
}
