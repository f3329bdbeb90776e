/*
Package session keeps live menu instances in memory, keyed by session ID.

Each session owns one binder. Binders are not safe for concurrent use, so
every access goes through Manager.Do, which serializes callers per session
while leaving distinct sessions independent.
*/
package session
