// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret keeps credentials such as the ticketing API bearer
// token out of swappable, dumpable Go heap memory.
//
// [Buffer] allocates memory outside the Go heap via mmap(MAP_ANONYMOUS),
// locks it into physical RAM via mlock, and marks it excluded from core
// dumps via madvise(MADV_DONTDUMP). On Close, the memory is zeroed,
// unlocked, and unmapped.
//
// Constructors:
//
//   - [New] -- allocates a zero-filled buffer of a given size
//   - [NewFromBytes] -- copies into protected memory, zeros the source
//   - [ReadFile] -- loads a token file, trimming surrounding whitespace
//
// Access via [Buffer.Bytes] (slice into the mmap region) or
// [Buffer.String] (heap copy for API boundaries such as HTTP headers).
// After Close, any access panics. Close is idempotent.
//
// Depends on golang.org/x/sys/unix. No storefront-internal dependencies.
package secret
