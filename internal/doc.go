// Package internal contains the implementation packages for panelkit.
//
// # Package Organization
//
//   - layout: panel state store, cookie codec, groups, panel controllers
//     and the toggle/open/close actions
//   - splitter: the resizable splitter model the panel controllers drive
//   - blocks: the gallery's layout blocks and their registry
//   - ui: html primitives for groups, panels, handles and action buttons
//   - pages: the site's pages composed from the ui primitives
//   - docs: markdown docs pages with frontmatter
//   - highlight: syntax highlighting for block sources
//   - server: HTTP server, layout API and the hot reload websocket hub
//   - watcher: debounced file watching for the docs directory
//   - config, logging, errors, version: ambient support
//
// # Request Flow
//
// Each request decodes the layout cookie into its own layout.Provider,
// which travels in the request context. Rendering reads the provider and
// never writes; panel actions and group settles mutate it, and every
// effective mutation appends one Set-Cookie to the response.
package internal
