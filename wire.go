//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package bubbo

import (
	"io/fs"

	"github.com/google/wire"
)

// InitializeApp builds the App and its services.
func InitializeApp(cfg Config, fsys fs.FS) (*App, error) {
	wire.Build(ProviderSet)
	return nil, nil
}
