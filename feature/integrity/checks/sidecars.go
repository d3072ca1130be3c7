package checks

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"asset-variants/core/storage"
	"asset-variants/core/store/objectstore"

	"github.com/minio/minio-go/v7"
)

// CheckSidecars returns the variant objects below prefix that have no sidecar.
// Variants copied by a run that failed before committing end up here.
func CheckSidecars(ctx context.Context, client storage.Client, bucket, prefix string) ([]string, error) {
	opts := minio.ListObjectsOptions{Prefix: folderKey(prefix), Recursive: true}

	objects := make(map[string]struct{})
	sidecars := make(map[string]struct{})
	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", prefix, obj.Err)
		}
		switch {
		case obj.Key == "" || strings.HasSuffix(obj.Key, "/"):
		case objectstore.IsInternal(obj.Key):
			sidecars[obj.Key] = struct{}{}
		default:
			objects[obj.Key] = struct{}{}
		}
	}

	var missing []string
	for key := range objects {
		if _, ok := sidecars[objectstore.SidecarKey(key)]; !ok {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing, nil
}
