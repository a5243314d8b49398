// Package termview keeps an editor view in sync with a live terminal.
//
// It emulates a VT220-compatible screen from raw terminal output and
// translates state changes into the minimal set of text edits, highlight
// regions, and cursor moves an editor buffer needs to mirror it. Full
// redraws never happen: only rows that changed since the last pass are
// touched.
//
// # Quick Start
//
// Implement [ViewBuffer] for your editor surface, then create a session
// and feed it terminal output:
//
//	session := termview.NewSession(view,
//	    termview.WithSize(24, 80),
//	    termview.WithScrollback(1000),
//	)
//
//	session.Feed(output)  // decode ANSI, mark dirty rows
//	session.Render()      // apply minimal edits to the view
//
// # Architecture
//
// The package is organized around these core types:
//
//   - [Screen]: the emulated terminal state (grid, cursor, scrollback)
//   - [Synchronizer]: diffs dirty rows into ViewBuffer edits
//   - [Coordinator]: queues scroll/resize requests between passes
//   - [Session]: serializes feeding and rendering behind one lock
//   - [Shell]: runs a command on a PTY as the output producer
//
// # Dirty Rows and Incremental Rendering
//
// Every mutation marks the affected rows dirty. A render pass walks the
// dirty rows in ascending order, rewrites each changed line, swaps its
// highlight regions, and finally moves the cursor if it changed.
// Rendering twice without intervening output performs no edits at all.
//
// # Colors
//
// Cell attributes are quantized to the 16 standard terminal colors and
// compressed into per-row runs of (offset, length, pair). Runs in the
// baseline pair (white on black) are omitted; hosts map each
// [ColorPair.Key] like "black_red" onto a scope or style of their own.
//
// # Scrollback Paging
//
// Lines scrolled off the top of the primary screen land in a ring sized
// to the configured depth. The viewport can detach from live output and
// page through history; feeding new output snaps it back to live before
// anything mutates.
//
// # Running a Shell
//
// [StartShell] launches a command on a PTY. Wire its output into a
// session with [Session.Pump] and its input to your key handler:
//
//	shell, _ := termview.StartShell(cfg, 24, 80)
//	go session.Pump(ctx, shell)
//	shell.SendKey("enter", false, false, false)
package termview
