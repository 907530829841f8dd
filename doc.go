/*
Package bramble is a parser and session engine for BDL, a line-oriented
branching-dialogue description language.

Scripts declare metadata, global and local variables, and named nodes whose
bodies mix text, host function calls and branches. The engine parses script
files into immutable Documents, keeps two-tier session state (session-wide
globals, per-file locals), dispatches calls to host-registered functions and
navigates between nodes — across files when a branch transfers to another
script.

A minimal host looks like:

	src := memory.NewSource(map[string]string{"main.bdl": script})
	eng, err := bramble.New(src)
	if err != nil { ... }
	eng.Register("getUserInput", bramble.InputFunc())

	session := eng.NewSession()
	out, err := session.Start(ctx)
	for !out.Exited {
		out, err = session.Submit(ctx, readLine())
	}

The cmd/bdl command wraps this loop in an interactive terminal shell.
*/
package bramble
