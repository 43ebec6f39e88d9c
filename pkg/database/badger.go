package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/dgraph-io/badger"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"

	"github.com/agubarev/firmtown/pkg/util"
)

// BadgerConnection opens the embedded key-value store at the given
// directory, defaulting to ~/.firmtown/registry when dir is empty.
func BadgerConnection(dir string) (*badger.DB, error) {
	if dir == "" {
		home, err := homedir.Dir()
		if err != nil {
			return nil, errors.Wrap(err, "failed to obtain user home directory")
		}

		dir = filepath.Join(home, ".firmtown", "registry")
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, errors.Wrapf(err, "failed to create badger directory: %s", dir)
	}

	db, err := badger.Open(badger.DefaultOptions(dir))
	if err != nil {
		return nil, errors.Wrap(err, "failed to open badger database")
	}

	return db, nil
}

// BadgerForTesting opens a throwaway badger database in a random
// temporary directory. The caller is responsible for removing dir.
func BadgerForTesting() (db *badger.DB, dir string, err error) {
	if !isTestMode() {
		log.Fatal("BadgerForTesting() can only be called during testing")
	}

	dir = filepath.Join(os.TempDir(), fmt.Sprintf("firmtown-testdb-%s", util.NewULID()))

	db, err = badger.Open(badger.DefaultOptions(dir))
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to open test badger database")
	}

	return db, dir, nil
}
