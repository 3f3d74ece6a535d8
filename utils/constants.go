// File: utils/constants.go
package utils

// SnapshotCacheKey is the Redis key under which the merged booking snapshot is stored.
const SnapshotCacheKey = "orders:snapshot"
