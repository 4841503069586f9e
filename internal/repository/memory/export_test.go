package memory

// Len returns the number of keys currently held or waited on.
func (lm *LockManager) Len() int {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	return len(lm.locks)
}
