// Package system groups directive handlers with host-level side effects:
// external program invocation and archive/storage operations.
package system

// Host identifies where external programs run.  The zero value means the
// local host; a remote URL requires SSH credentials resolvable by name.
type Host struct {
	URL         string `json:"url,omitempty" description:"host URL, bash://localhost/ when empty"`
	Credentials string `json:"credentials,omitempty" description:"named SSH credentials for remote hosts"`
}

// IsLocal reports whether commands run on the local host
func (h *Host) IsLocal() bool {
	return h == nil || h.URL == "" || h.URL == "bash://localhost/"
}
