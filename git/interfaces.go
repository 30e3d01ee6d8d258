package git

import "context"

// RootDiscoverer locates the top of the working tree containing a directory.
type RootDiscoverer interface {
	DiscoverRoot(ctx context.Context, dir string) (string, error)
}

// HooksPathReader reads core.hooksPath.
type HooksPathReader interface {
	GetHooksPath(ctx context.Context, root string) (string, bool, error)
}

// HooksPathWriter writes core.hooksPath.
type HooksPathWriter interface {
	SetHooksPath(ctx context.Context, root, hooksDir string) error
}

// Ensure Configurator implements the interfaces
var (
	_ RootDiscoverer  = (*Configurator)(nil)
	_ HooksPathReader = (*Configurator)(nil)
	_ HooksPathWriter = (*Configurator)(nil)
)
