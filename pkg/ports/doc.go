/*
Package ports defines the driven ports (interfaces) for folio.

These interfaces decouple the carousel core from where slides come from and how
state changes travel to presentation layers running in other goroutines or
other processes.

# Key Interfaces

  - SlideSource: Yields the ordered slide list (e.g., from Loam or Memory).
  - Broadcaster: Fans out state diffs to subscribers of a session channel.

Each interface ships with a contract suite (RunSlideSourceContract,
RunBroadcasterContract) that adapters run from their own tests.
*/
package ports
