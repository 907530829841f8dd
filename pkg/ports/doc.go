/*
Package ports defines the boundary interfaces of the Bramble engine.

Following Hexagonal Architecture, the engine core depends only on these
contracts; hosts plug in script sources (driven side) and consume the session
API (driving side). Host functions cross the dispatcher boundary.
*/
package ports
