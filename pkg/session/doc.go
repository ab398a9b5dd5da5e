/*
Package session keeps one carousel controller per visitor session.

Controllers are created lazily by a Factory the first time a session ID is
seen, kept mounted while they are used and unmounted after an idle TTL by Reap
(or Run, which reaps periodically). Creation is serialized per session ID with
reference-counted locks, so concurrent first requests share one controller.

When a Broadcaster is configured, every state change of every managed
controller is published as a domain.StateDiff on the channel named after the
session ID. Nothing is persisted: an unmounted session starts over on its
next request.
*/
package session
