// Package cache holds the two caches a brush tip shares with its clones.
//
// # Shared[T]
//
// A lazily built value published once and read lock-free afterwards.
// Raster tips keep their resampling pyramid in one:
//
//	var pyr cache.Shared[*pyramid.Pyramid]
//	p := pyr.Get(func() *pyramid.Pyramid { return pyramid.Build(img, true) })
//
// # Cache[K, V]
//
// A bounded LRU map. Procedural tips keep recently rendered dabs in one,
// keyed by the exact render geometry.
//
// Both types are safe for concurrent use and must not be copied.
package cache
