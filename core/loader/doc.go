// Package loader provides the plugin-like feature loading system.
//
// Each feature implements the Feature interface, which defines its lifecycle hooks
// and route registration logic.
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager holds the registry: Register adds features and LoadAll loads
// the enabled ones in registration order. The reconcile and history features
// are developed and tested in isolation and only meet in the start command.
package loader
