// Package analyzer reduces the difference between two RGBA8 frames to a single
// bounding box of changed pixels.
//
// The reduction is a pure function of its inputs. Partial results are Regions,
// which merge with Union, so a frame can be split into bands and reduced
// concurrently (see ReduceParallel).
package analyzer
