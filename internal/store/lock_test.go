// SPDX-License-Identifier: MPL-2.0

package store

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestAcquireAndRelease(t *testing.T) {
	t.Parallel()

	lockPath := filepath.Join(t.TempDir(), ".lock")
	lock, err := Acquire(lockPath, "test")
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	lock.Release()

	// Release is idempotent.
	lock.Release()

	// The lock must be acquirable again after release.
	lock2, err := Acquire(lockPath, "test")
	if err != nil {
		t.Fatalf("re-Acquire failed: %v", err)
	}
	lock2.Release()
}

func TestAcquireFailsWithoutParentDir(t *testing.T) {
	t.Parallel()

	lockPath := filepath.Join(t.TempDir(), "missing", ".lock")
	_, err := Acquire(lockPath, "test")
	if err == nil {
		t.Fatal("expected error when the parent directory does not exist")
	}
	var lockErr *LockError
	if !errors.As(err, &lockErr) {
		t.Errorf("expected LockError, got %T", err)
	}
}

func TestLockSerializesConcurrentHolders(t *testing.T) {
	t.Parallel()

	lockPath := filepath.Join(t.TempDir(), ".lock")

	const holders = 8
	var (
		wg       sync.WaitGroup
		inside   int
		maxSeen  int
		sampleMu sync.Mutex
	)

	for range holders {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lock, err := Acquire(lockPath, "test")
			if err != nil {
				t.Errorf("Acquire failed: %v", err)
				return
			}
			defer lock.Release()

			// Track how many goroutines are ever inside the critical
			// section at once; the lock must keep it at exactly one.
			sampleMu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			sampleMu.Unlock()

			time.Sleep(5 * time.Millisecond)

			sampleMu.Lock()
			inside--
			sampleMu.Unlock()
		}()
	}

	wg.Wait()
	if maxSeen != 1 {
		t.Errorf("expected at most one concurrent holder, saw %d", maxSeen)
	}
}

func TestStoreLockUsesPrimaryPath(t *testing.T) {
	t.Parallel()

	primary := t.TempDir()
	shadow := t.TempDir()
	st, err := New([]string{primary, shadow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lock, err := st.Lock()
	if err != nil {
		t.Fatalf("Lock failed: %v", err)
	}
	defer lock.Release()

	if lock.path != filepath.Join(primary, lockFileName) {
		t.Errorf("expected lock file under the primary path, got %s", lock.path)
	}
}
