package process

// Notes:
// - Real termination is only exercised through the browser integration
//   tests; killing arbitrary PIDs from a unit test is unsafe.
// - PID 0 and negative PIDs are rejected before any syscall, so they can be
//   tested here without touching the test runner's own process group.

import (
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// TestKillProcessGroup - PID Validation
// ---------------------------------------------------------------------------

func TestKillProcessGroup_RejectsNonPositivePID(t *testing.T) {
	t.Parallel()

	for _, pid := range []int{0, -1, -4242} {
		err := KillProcessGroup(pid)
		if !errors.Is(err, ErrInvalidPID) {
			t.Errorf("KillProcessGroup(%d) error = %v, want ErrInvalidPID", pid, err)
		}
	}
}

func TestKillProcessGroup_MissingProcessDoesNotPanic(t *testing.T) {
	t.Parallel()

	// The result depends on the platform (ESRCH is swallowed on Unix,
	// taskkill exits non-zero on Windows); only the absence of a panic and
	// of ErrInvalidPID matters.
	err := KillProcessGroup(999999999)
	if errors.Is(err, ErrInvalidPID) {
		t.Errorf("KillProcessGroup(999999999) rejected a positive PID: %v", err)
	}
}
