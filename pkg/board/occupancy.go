package board

// TryClaim marks every hole in keys as USED, but only if all of them
// exist and are currently FREE. On any conflict nothing changes and
// the conflicting key is reported; partial claims never happen.
func (m Matrix) TryClaim(keys []Key) (bool, Key) {
	for _, k := range keys {
		h := m[k]
		if h == nil || h.State != Free {
			return false, k
		}
	}
	for _, k := range keys {
		m[k].State = Used
	}
	return true, Key{}
}

// Release marks every hole in keys as FREE. Releasing a hole that is
// already free (or absent) is a no-op, so callers can release a claim
// set without tracking which claims succeeded.
func (m Matrix) Release(keys []Key) {
	for _, k := range keys {
		if h := m[k]; h != nil {
			h.State = Free
		}
	}
}

