// Package remote exposes a live navigator over HTTP, in the manner of a TV
// remote control.
//
// # Routes
//
//	GET  /health                       liveness probe
//	GET  /state                        focus, section and lifecycle state
//	GET  /sections                     registered sections in order
//	POST /sections/{id}/enable         enable a section
//	POST /sections/{id}/disable        disable a section
//	GET  /elements                     every element with its section
//	POST /move/{direction}             move focus up, down, left or right
//	GET  /peek/{direction}             where a move would land, without moving
//	POST /focus                        focus the default section
//	POST /focus/{target}?silent=true   focus a section, element id or selector
//	POST /key/{key}                    press and release a key, e.g. shift+up
//	POST /pause, POST /resume          suspend and resume navigation
//	GET  /navmap?format=svg            the directional neighbour map
//	GET  /screen?cols=80&rows=24       the scene drawn as text
//
// The navigator is single-threaded, so every request runs under one mutex.
// Errors are answered as JSON with the status from [errors.HTTPStatus]:
//
//	{"error": "section \"menu\" not found", "code": "SECTION_NOT_FOUND"}
package remote
