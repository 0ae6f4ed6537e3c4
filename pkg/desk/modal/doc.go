// Package modal runs the desk's modal dialogs: one shell, one body slot and
// a Manager that keeps at most one named modal open at a time.
//
// Components are registered by name and render into the body when opened.
// Opening a modal closes the current one first (running its cleanup), and
// Escape, a click on the backdrop or a click on the close control all close
// the open modal.
//
// # Quick Start
//
//	shell := modal.NewShell(modal.WithWidth(56))
//	body := modal.NewBody()
//	mgr := modal.NewManager(shell, body)
//
//	mgr.Register("help", modal.ComponentFunc(func(b *modal.Body, _ any) {
//	    b.Mount(modal.Text("Press ? for help"))
//	}))
//
//	// In Update():
//	if handled, cmd := mgr.Update(msg); handled {
//	    return m, cmd
//	}
//	case "?":
//	    return m, mgr.Open("help", nil)
//
//	// In View():
//	return mgr.View(background, m.width, m.height)
//
// # Components
//
//   - Render(body, data) mounts a Content into the body
//   - Cleanup() (optional, see Cleaner) runs once when the modal closes
//   - Content that implements Focuser gets focus shortly after opening
//
// # Stale results
//
// Every open and close bumps the manager's generation. Messages that
// implement Generational and carry an older generation are dropped, so a
// request that finishes after its modal closed never reaches the next modal.
//
// # Built-in Content
//
//   - Text(s string) - static text, wrapped to the shell width
//   - List(id string, items []ListItem, opts...) - scrollable selection list
package modal
