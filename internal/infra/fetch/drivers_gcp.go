//go:build gcp

package fetch

import (
	_ "gocloud.dev/blob/gcsblob"
)
