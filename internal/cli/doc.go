// Package cli implements the commitcard command-line interface.
//
// # Commands
//
//   - serve: Run the HTTP card server
//   - render: Render one card to a file or stdout
//   - batch: Render every card listed in a TOML manifest
//   - themes: List the built-in themes and fonts
//   - version: Print build information
//
// # Configuration
//
// The GitHub token, API backend and transport settings come from the file
// given by --config, a .env file in the working directory and the
// GITHUB_TOKEN, PORT and COMMITCARD_API environment variables, in that
// order of increasing precedence. Command flags override all of them.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs every GitHub request and pipeline stage. Loggers are passed through
// context.Context.
package cli
