package db

import (
	"github.com/pkg/errors"

	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/internal/profile"
	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/store"
	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/store/db/sqlite"
)

// NewDBDriver creates a new DB driver based on profile.
func NewDBDriver(profile *profile.Profile) (store.Driver, error) {
	var driver store.Driver
	var err error

	switch profile.Driver {
	case "sqlite":
		driver, err = sqlite.NewDB(profile)
	default:
		return nil, errors.New("unknown db driver")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create db driver")
	}
	return driver, nil
}
