// Package layout implements the resizable, collapsible panel layout engine.
//
// A Provider owns the panel open/closed map for one request (or one browser
// session in the client script) and persists every change through a
// Persister, normally a CookieSession. Groups distribute an initial size
// vector across their regions and forward committed drags back to the
// provider. Panel controllers reconcile the provider's boolean with an
// imperative splitter widget, and Trigger, OpenAction and CloseAction are the
// three click affordances that mutate the map.
//
// The persisted record is decoded before any panel is rendered, so the first
// paint already reflects the visitor's last layout.
//
// Example:
//
//	session := layout.NewCookieSession(w, r, layout.DefaultCookieOptions(), logger)
//	record := session.Record()
//	provider := layout.NewProvider(record.PanelStates(defaults), session,
//		layout.WithLayouts(record.Groups))
//	ctx := layout.WithProvider(r.Context(), provider)
package layout
