// Package navtree provides a navigation tree and deep-link router: a
// UI-framework-agnostic model of an application's navigation state with a
// value-routing send queue for driving multi-step flows.
//
// # Architecture
//
// The library is organized around a tree of navigation nodes, each owning a
// path of destinations and modal presentation slots:
//
//	┌─────────────────────────────────────┐
//	│            Tree                     │  Send routing, locking,
//	│  (observers, actions, paused tail)  │  paused-queue resume
//	└─────────────────────────────────────┘
//	           ↓ owns
//	┌─────────────────────────────────────┐
//	│            Nodes                    │  Paths, checkpoints,
//	│   (root + presented modal scopes)   │  sheets and covers,
//	└─────────────────────────────────────┘  typed receivers
//	           ↓ processed on
//	┌─────────────────────────────────────┐
//	│          Run Loop                   │  Serial executor for
//	│   (runloop.Loop or host-supplied)   │  all tree mutations
//	└─────────────────────────────────────┘
//
// Core packages:
//
//   - navigator: the tree, nodes, send routing, checkpoints, locking, and
//     state persistence
//   - send: queue values — resume decisions, navigation actions, pending
//     entries
//   - destination: destinations, presentation methods, and the payload
//     registry used for typed state restoration
//   - checkpoint: per-node checkpoint records and resolution
//   - runloop: the serial executor navigation mutations run on
//   - statestore: pluggable persistence backends (in-memory, SQLite)
//   - eventstream: optional NATS publisher for navigation change events
//   - metric: Prometheus collectors for queue and tree activity
//   - config: file-based configuration with validation
//
// # Deep Links
//
// A deep link is a plain value slice handed to Node.Send. Each value is
// either a navigation action (pop-all, dismiss-all, reset) or routed to the
// first registered receiver whose type matches; the receiver navigates and
// returns a resume decision that controls how the remaining values proceed.
// Receivers can pause the queue across asynchronous work (authentication,
// network fetches) and resume or cancel it later.
//
// All tree mutations must happen on a single goroutine; use runloop.Loop or
// supply your own executor via navigator.WithExecutor.
package navtree
