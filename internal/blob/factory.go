package blob

import (
	"context"
	"fmt"
	"os"

	blobfs "dukacore/internal/infra/blob/fs"
	blobmem "dukacore/internal/infra/blob/memory"
	blobs3 "dukacore/internal/infra/blob/s3"
)

// Open selects a blob.Store implementation using environment variables.
//
//	DUKACORE_BLOB_DRIVER: fs|s3|memory (default fs)
//	DUKACORE_BLOB_FS_ROOT: directory root when driver=fs (default ./exports)
//	(S3 specific variables documented in internal/infra/blob/s3)
func Open(ctx context.Context) (Store, error) {
	driver := os.Getenv("DUKACORE_BLOB_DRIVER")
	if driver == "" {
		driver = string(DriverFilesystem)
	}
	switch Driver(driver) {
	case DriverFilesystem:
		return blobfs.New(os.Getenv("DUKACORE_BLOB_FS_ROOT"))
	case DriverS3:
		return blobs3.OpenFromEnv(ctx)
	case DriverMemory:
		return blobmem.New(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", driver)
	}
}
