/*
main.go - Roster CLI entry point

PURPOSE:
  Command-line companion to the HTTP server. Loads workspace documents
  from YAML/JSON files, runs the solver, and manages published baselines
  without needing a running server.

SEE ALSO:
  - root.go: Command tree and shared helpers
  - cmd/server/main.go: HTTP server entry point
*/
package main

func main() {
	execute()
}
