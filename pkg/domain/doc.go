/*
Package domain contains the core domain models of the folio portfolio.

It defines the carousel vocabulary (Slides, Intents, the State snapshot and its
Diff), the lifecycle hooks used for observability, and the static portfolio
content rendered around the carousel. This package is kept pure and free of
I/O, timers or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Slide: One promotional project card shown by the carousel.
  - Intent: A normalized request to change the active slide or playback, regardless of origin.
  - State: A read-only snapshot of a carousel (active index, slide count, paused, transitioning).
  - StateDiff: The changes between two snapshots, serialized for live clients.
  - Portfolio: The localized content sections (About, Skills, Timeline, Case Studies, Blog, Contacts).
*/
package domain
