// Package window provides sliding-window algorithms over sequences and
// strings.
//
// A sliding window keeps a contiguous index range plus an accumulator for
// the elements inside it, and moves both bounds forward only. Each element
// enters and leaves the window at most once, so every algorithm here runs in
// linear time.
package window
