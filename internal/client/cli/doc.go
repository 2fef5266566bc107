// Package cli provides the interactive srsp command-line client.
//
// It wires configuration, local storage, the REST client and the application
// services behind an interactive REPL. Typical flow: restore the persisted
// session, resolve it against the backend, and execute user commands.
//
// Every command is bound to a logical route (see Route); before a command
// runs, the guard evaluates the route against the current session state and
// either admits it, asks the user to log in, or shows the redirect target's
// view instead. Role logic lives in one place, the capability table.
//
// Key features:
//   - Register / Login / Logout backed by a cookie session that survives
//     restarts
//   - Student commands: dashboard, upload, mine, resubmit, delete, download
//   - Admin commands: pending, approve, reject, remove, stats, logs, export
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, Evaluate, and runREPL for details.
package cli
