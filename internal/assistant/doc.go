// Package assistant is the command layer of the address book: it maps a
// parsed command line (verb and arguments) to operations on a
// types.AddressBook and renders the outcome as reply text.
//
// Handlers return (text, error). Errors are turned into "Error: ..." replies
// by Render, in one place, so no handler prints or formats failures itself.
package assistant
