// Package watcher reports application leftovers as bundles disappear.
//
// The Watcher subscribes to filesystem events on every application root.
// When a bundle is removed or renamed away (dragged to the Trash, deleted by
// another tool), it runs the associated-file scan for that application's name
// and hands any leftovers to a callback. It never deletes anything itself.
//
// Key features:
//   - fsnotify subscription on the configured application roots
//   - Roots that do not exist yet are skipped
//   - Foreground mode with SIGTERM/SIGINT handling
//
// Example usage:
//
//	c, err := cleaner.New(paths)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	w, err := watcher.New(c, func(app cleaner.Application, leftovers []string) {
//		fmt.Printf("%s left %d items behind\n", app.Name(), len(leftovers))
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Blocks until the context ends or a shutdown signal arrives
//	if err := w.Run(ctx); err != nil {
//		log.Fatal(err)
//	}
package watcher
