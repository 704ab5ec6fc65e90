// Package osd is a handle-indexed software 2D rasterization engine.
//
// The engine draws into pixel buffers that the caller owns: a canvas is
// created over a pre-allocated premultiplied-RGBA8 slice and never
// reallocates or resizes it. All resources (canvases, paths, transforms,
// fonts) are addressed by small positive integer handles so the API can be
// driven across a narrow, stable call boundary.
//
// Every operation executes synchronously on the calling goroutine. The
// package is safe for concurrent use: operations on distinct handles
// proceed in parallel, operations on the same handle serialize.
//
// Invalid handles are never fatal; drawing calls become silent no-ops and
// queries return a documented sentinel (0, -1 or false).
package osd
