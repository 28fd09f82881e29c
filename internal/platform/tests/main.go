package tests

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/uiachain/uianode/internal/amount"
	"github.com/uiachain/uianode/internal/platform/db"
	"github.com/uiachain/uianode/internal/platform/node"
	"github.com/uiachain/uianode/internal/pool"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Test holds the shared fixtures for package level tests: a standalone
// filesystem backed db under a temp root, a node config and an empty
// unconfirmed pool.
type Test struct {
	NodeConfig  node.Config
	MasterDB    *db.DB
	Pool        *pool.Pool
	storagePath string
}

// New builds the test fixtures.
func New() (*Test, error) {
	test := Test{}

	uid, _ := uuid.NewRandom()
	test.storagePath = filepath.Join(os.TempDir(), fmt.Sprintf("uianode-test-%s", uid))

	var err error
	test.MasterDB, err = db.New(&db.StorageConfig{
		Bucket: "standalone",
		Root:   test.storagePath,
	})
	if err != nil {
		return nil, errors.Wrap(err, "Failed to create DB")
	}

	feeValue, err := amount.Parse("10000000")
	if err != nil {
		return nil, errors.Wrap(err, "Failed to parse fee value")
	}

	test.NodeConfig = node.Config{
		OperatorName: "UIATest",
		Version:      "TestVersion",
		FeeValue:     feeValue,
		IsTest:       true,
	}

	test.Pool = pool.New()

	return &test, nil
}

// Context returns a context carrying a development logger and fresh
// pipeline values.
func (test *Test) Context() context.Context {
	ctx := node.ContextWithLogger(context.Background(), true, true, "")
	return node.ContextWithValues(ctx, time.Now())
}

// ResetDB clears all ledger state between tests.
func (test *Test) ResetDB(ctx context.Context) error {
	test.Pool.Reset()

	for _, path := range []string{"assets", "acl", "holdings", "transfers"} {
		if err := test.MasterDB.Clear(ctx, path); err != nil {
			return err
		}
	}

	return nil
}

// Close releases the fixtures and removes the temp storage root.
func (test *Test) Close() {
	if test.MasterDB != nil {
		test.MasterDB.Close()
	}
	os.RemoveAll(test.storagePath)
}
