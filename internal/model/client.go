// Package model defines the domain types shared across the application.
package model

// UnknownClientName is displayed when a ledger record points at a client id
// that is no longer in the directory.
const UnknownClientName = "Unknown"

// Client is a directory entry for a shop customer. Instances are
// server-assigned and immutable on this side: the directory is only ever
// replaced wholesale after a fetch or a post-mutation refresh.
type Client struct {
	Name string `json:"name"`
	ID   int64  `json:"id"`
}

// ResolveClientName returns the name for id out of the given directory
// snapshot, or UnknownClientName when the id dangles.
func ResolveClientName(clients []Client, id int64) string {
	for _, c := range clients {
		if c.ID == id {
			return c.Name
		}
	}
	return UnknownClientName
}
