//go:build aws

package fetch

import (
	_ "gocloud.dev/blob/s3blob"
)
