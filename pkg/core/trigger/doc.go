// Package trigger decides when an expansion is recomputed.
//
// The cascade core is a pure function of its inputs. This package re-invokes
// it whenever the tracked input tuple changes, and reverses the previous push
// first so that at most one expansion is applied at a time.
//
// Two modes are provided:
//
//   - [Watcher] runs synchronously inside [Watcher.Observe].
//   - [DeferredWatcher] schedules the run as a zero-delay task at the end of a
//     single-threaded [Queue], so other layout work already queued settles
//     first. If the inputs change again before the task fires, the pending
//     task is cancelled through its [Token] and replaced.
//
// The deferred mode is additionally keyed on two version counters (see
// [Key]) so that loading new nodes or edges recomputes even when the
// expansion inputs themselves are unchanged.
//
// Rapid triggers may each see a slightly stale snapshot. The next run
// reverses and recomputes, so this corrects itself.
package trigger
